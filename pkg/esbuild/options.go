package esbuild

import "strings"

// Format selects the output module format.
type Format string

const (
	FormatIIFE Format = "iife"
	FormatESM  Format = "esm"
	FormatCJS  Format = "cjs"
)

// Platform selects the environment the output targets.
type Platform string

const (
	PlatformBrowser Platform = "browser"
	PlatformNode    Platform = "node"
	PlatformNeutral Platform = "neutral"
)

// SourcemapMode selects how source maps are emitted.
type SourcemapMode string

const (
	SourcemapLinked   SourcemapMode = "linked"
	SourcemapInline   SourcemapMode = "inline"
	SourcemapExternal SourcemapMode = "external"
	SourcemapBoth     SourcemapMode = "both"
)

// Option is one configurable behavior of the wrapped tool, carrying the
// exact flag strings it expands to. Options translate to flags in the order
// the caller supplies them.
type Option struct {
	flags []string
}

// Flags returns the command-line flags this option emits.
func (o Option) Flags() []string {
	return append([]string(nil), o.flags...)
}

func option(flags ...string) Option {
	return Option{flags: flags}
}

// Bundle inlines all dependencies into the output.
func Bundle() Option {
	return option("--bundle")
}

// Outfile sets the output file path.
func Outfile(path string) Option {
	return option("--outfile=" + path)
}

// Outdir sets the output directory for multiple entry points.
func Outdir(path string) Option {
	return option("--outdir=" + path)
}

// Define substitutes key with value while bundling.
func Define(key, value string) Option {
	return option("--define:" + key + "=" + value)
}

// External excludes import paths matching pattern from the bundle.
func External(pattern string) Option {
	return option("--external:" + pattern)
}

// OutputFormat sets the output module format.
func OutputFormat(f Format) Option {
	return option("--format=" + string(f))
}

// Loader maps a file extension to a loader.
func Loader(extension, loader string) Option {
	return option("--loader:" + extension + ":" + loader)
}

// Minify shrinks the generated output.
func Minify() Option {
	return option("--minify")
}

// Watch rebuilds on file changes. With forever, the process keeps watching
// even when the initial build fails.
func Watch(forever bool) Option {
	if forever {
		return option("--watch=forever")
	}
	return option("--watch")
}

// Sourcemap enables source map generation. Called bare it emits the default
// mode; with a mode it selects linked, inline, external, or both.
func Sourcemap(mode ...SourcemapMode) Option {
	if len(mode) == 0 || mode[0] == "" {
		return option("--sourcemap")
	}
	return option("--sourcemap=" + string(mode[0]))
}

// Splitting enables code splitting between shared chunks.
func Splitting() Option {
	return option("--splitting")
}

// Target restricts output syntax to the given environments, e.g.
// "es2020", "chrome58", "node12". Called with no environments it emits
// nothing rather than an empty --target=.
func Target(environments ...string) Option {
	if len(environments) == 0 {
		return Option{}
	}
	return option("--target=" + strings.Join(environments, ","))
}

// TargetPlatform sets the platform the output runs on.
func TargetPlatform(p Platform) Option {
	return option("--platform=" + string(p))
}

// Serve starts the built-in development server. Called bare it uses the
// default listen address; spec takes "[host:]port".
func Serve(spec ...string) Option {
	if len(spec) == 0 || spec[0] == "" {
		return option("--serve")
	}
	return option("--serve=" + spec[0])
}

// Packages controls how package imports are handled, e.g. "external".
func Packages(mode string) Option {
	return option("--packages=" + mode)
}

// Arguments passes literal flags through to the tool unchanged.
func Arguments(args ...string) Option {
	return option(args...)
}

// flatten expands the options into one flag list, preserving caller order.
func flatten(options []Option) []string {
	var out []string
	for _, o := range options {
		out = append(out, o.flags...)
	}
	return out
}
