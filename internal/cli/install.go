package cli

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"esbuildrun/internal/logx"
	"esbuildrun/internal/provision"
	"esbuildrun/internal/registry"
	"esbuildrun/internal/tui"
)

func newInstallCmd() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Provision the esbuild binary into the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, root, pinned, err := resolveEnvironment(version)
			if err != nil {
				return err
			}

			request := registry.LatestRequest()
			if pinned != "" {
				request = registry.FixedRequest(pinned)
			}

			client := registry.NewClient(cfg.RegistryURL)
			downloader := provision.NewDownloader(client, logx.New(cmd.ErrOrStderr()))

			if outputJSON {
				path, err := downloader.Download(cmd.Context(), request, root)
				if err != nil {
					return err
				}
				payload, err := json.MarshalIndent(map[string]string{"path": path}, "", "  ")
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				cmd.Println(string(payload))
				return nil
			}

			label, err := client.PackageName(cmd.Context())
			if err != nil {
				return err
			}

			program := tea.NewProgram(tui.NewDownloadModel(label), tea.WithOutput(cmd.OutOrStdout()))
			downloader.Progress = func(n int64) {
				program.Send(tui.ProgressMsg(n))
			}

			go func() {
				path, err := downloader.Download(cmd.Context(), request, root)
				if err != nil {
					program.Send(tui.ErrorMsg{Err: err})
					return
				}
				program.Send(tui.WorkDoneMsg{Path: path})
			}()

			final, err := program.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(tui.DownloadModel); ok && m.Err() != nil {
				return m.Err()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "esbuild release to install (default: latest)")
	return cmd
}
