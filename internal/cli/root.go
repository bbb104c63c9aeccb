// Package cli implements the esbuildrun command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"esbuildrun/internal/config"
	"esbuildrun/internal/paths"
)

var (
	cacheDirFlag string
	outputJSON   bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "esbuildrun",
		Short: "Download, cache, and run the esbuild binary",
	}

	cmd.PersistentFlags().StringVar(&cacheDirFlag, "cache-dir", "", "Path to the binary cache root")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// resolveEnvironment loads the settings file and resolves the cache root and
// the effective pinned version (flag wins over config; empty means latest).
func resolveEnvironment(flagVersion string) (config.Settings, string, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Settings{}, "", "", err
	}

	root, err := paths.Resolve(cacheDirFlag, cfg)
	if err != nil {
		return config.Settings{}, "", "", err
	}

	version := flagVersion
	if version == "" {
		version = cfg.Version
	}
	return cfg, root, version, nil
}
