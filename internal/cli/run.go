package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"esbuildrun/internal/logx"
	"esbuildrun/pkg/esbuild"
)

type runFlags struct {
	bundle       bool
	outfile      string
	outdir       string
	defines      []string
	externals    []string
	format       string
	loaders      []string
	minify       bool
	watch        bool
	watchForever bool
	sourcemap    string
	splitting    bool
	targets      []string
	platform     string
	serve        string
	packages     string
	rawArgs      []string
}

// toOptions translates the parsed flags into the typed option sequence. Flag
// order on the command line is not recoverable from cobra, so options are
// emitted in a fixed order with raw passthrough arguments last.
func (f runFlags) toOptions() ([]esbuild.Option, error) {
	var options []esbuild.Option

	if f.bundle {
		options = append(options, esbuild.Bundle())
	}
	if f.outfile != "" {
		options = append(options, esbuild.Outfile(f.outfile))
	}
	if f.outdir != "" {
		options = append(options, esbuild.Outdir(f.outdir))
	}
	for _, pair := range f.defines {
		key, value, ok := splitPair(pair, '=')
		if !ok {
			return nil, fmt.Errorf("malformed --define %q: want K=V", pair)
		}
		options = append(options, esbuild.Define(key, value))
	}
	for _, pattern := range f.externals {
		options = append(options, esbuild.External(pattern))
	}
	if f.format != "" {
		options = append(options, esbuild.OutputFormat(esbuild.Format(f.format)))
	}
	for _, pair := range f.loaders {
		ext, loader, ok := splitPair(pair, ':')
		if !ok {
			return nil, fmt.Errorf("malformed --loader %q: want EXT:LOADER", pair)
		}
		options = append(options, esbuild.Loader(ext, loader))
	}
	if f.minify {
		options = append(options, esbuild.Minify())
	}
	if f.watch || f.watchForever {
		options = append(options, esbuild.Watch(f.watchForever))
	}
	if f.sourcemap != "" {
		if f.sourcemap == "default" {
			options = append(options, esbuild.Sourcemap())
		} else {
			options = append(options, esbuild.Sourcemap(esbuild.SourcemapMode(f.sourcemap)))
		}
	}
	if f.splitting {
		options = append(options, esbuild.Splitting())
	}
	if len(f.targets) > 0 {
		options = append(options, esbuild.Target(f.targets...))
	}
	if f.platform != "" {
		options = append(options, esbuild.TargetPlatform(esbuild.Platform(f.platform)))
	}
	if f.serve != "" {
		if f.serve == "default" {
			options = append(options, esbuild.Serve())
		} else {
			options = append(options, esbuild.Serve(f.serve))
		}
	}
	if f.packages != "" {
		options = append(options, esbuild.Packages(f.packages))
	}
	if len(f.rawArgs) > 0 {
		options = append(options, esbuild.Arguments(f.rawArgs...))
	}
	return options, nil
}

func splitPair(s string, sep byte) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

func newRunCmd() *cobra.Command {
	var (
		flags   runFlags
		version string
		workDir string
	)

	cmd := &cobra.Command{
		Use:   "run ENTRYPOINT [-- RAW_ARGS...]",
		Short: "Run esbuild on an entry point, provisioning the binary if needed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, pinned, err := resolveEnvironment(version)
			if err != nil {
				return err
			}

			if at := cmd.ArgsLenAtDash(); at >= 0 {
				flags.rawArgs = args[at:]
				args = args[:at]
			}
			entryPoint := args[0]

			release := esbuild.Latest()
			if pinned != "" {
				release = esbuild.Fixed(pinned)
			}

			options, err := flags.toOptions()
			if err != nil {
				return err
			}

			eb := esbuild.New(release,
				esbuild.WithCacheDir(root),
				esbuild.WithRegistryURL(cfg.RegistryURL),
				esbuild.WithLogger(logx.New(cmd.ErrOrStderr())),
			)

			if workDir != "" {
				return eb.RunIn(cmd.Context(), entryPoint, workDir, options...)
			}
			return eb.Run(cmd.Context(), entryPoint, options...)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "esbuild release to use (default: latest)")
	cmd.Flags().StringVar(&workDir, "workdir", "", "Working directory (default: the entry point's directory)")
	cmd.Flags().BoolVar(&flags.bundle, "bundle", false, "Bundle all dependencies into the output")
	cmd.Flags().StringVar(&flags.outfile, "outfile", "", "Output file path")
	cmd.Flags().StringVar(&flags.outdir, "outdir", "", "Output directory")
	cmd.Flags().StringArrayVar(&flags.defines, "define", nil, "Substitute K=V while bundling (repeatable)")
	cmd.Flags().StringArrayVar(&flags.externals, "external", nil, "Exclude matching import paths (repeatable)")
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: iife, esm, or cjs")
	cmd.Flags().StringArrayVar(&flags.loaders, "loader", nil, "Map EXT:LOADER (repeatable)")
	cmd.Flags().BoolVar(&flags.minify, "minify", false, "Minify the output")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "Rebuild on file changes")
	cmd.Flags().BoolVar(&flags.watchForever, "watch-forever", false, "Keep watching even if the first build fails")
	cmd.Flags().StringVar(&flags.sourcemap, "sourcemap", "", "Source map mode: default, linked, inline, external, or both")
	cmd.Flags().BoolVar(&flags.splitting, "splitting", false, "Enable code splitting")
	cmd.Flags().StringSliceVar(&flags.targets, "target", nil, "Target environments, comma separated")
	cmd.Flags().StringVar(&flags.platform, "platform", "", "Platform: browser, node, or neutral")
	cmd.Flags().StringVar(&flags.serve, "serve", "", "Serve spec ([host:]port, or \"default\")")
	cmd.Flags().StringVar(&flags.packages, "packages", "", "Package import handling, e.g. external")

	return cmd
}
