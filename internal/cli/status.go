package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"esbuildrun/internal/paths"
	"esbuildrun/internal/tui"
)

// VersionStatus describes one provisioned release found in the cache root.
type VersionStatus struct {
	Version string `json:"version"`
	Path    string `json:"path"`
	Size    int64  `json:"size_bytes"`
}

// listInstalled scans the cache root for version directories holding the
// executable. A missing root means nothing is provisioned yet.
func listInstalled(root string) ([]VersionStatus, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache root: %w", err)
	}

	var statuses []VersionStatus
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		executable := paths.ExecutablePath(root, entry.Name())
		info, err := os.Stat(executable)
		if err != nil {
			continue
		}
		statuses = append(statuses, VersionStatus{
			Version: entry.Name(),
			Path:    executable,
			Size:    info.Size(),
		})
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Version < statuses[j].Version })
	return statuses, nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List provisioned esbuild versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, root, _, err := resolveEnvironment("")
			if err != nil {
				return err
			}

			statuses, err := listInstalled(root)
			if err != nil {
				return err
			}

			if outputJSON {
				payload, err := json.MarshalIndent(statuses, "", "  ")
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				cmd.Println(string(payload))
				return nil
			}

			if len(statuses) == 0 {
				cmd.Printf("no versions provisioned under %s\n", root)
				return nil
			}

			cmd.Println(tui.HeaderStyle.Render(fmt.Sprintf("%-12s %s", "VERSION", "PATH")))
			for _, s := range statuses {
				version := tui.StatusStyle("cached").Render(fmt.Sprintf("%-12s", s.Version))
				cmd.Printf("%s %s\n", version, s.Path)
			}
			return nil
		},
	}
}
