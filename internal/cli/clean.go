package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove all provisioned binaries from the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, root, _, err := resolveEnvironment("")
			if err != nil {
				return err
			}
			if err := os.RemoveAll(root); err != nil {
				return err
			}
			cmd.Printf("removed %s\n", root)
			return nil
		},
	}
}
