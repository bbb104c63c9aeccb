// Package esbuild provisions the esbuild binary on demand and runs it as a
// child process with typed options.
package esbuild

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"

	"esbuildrun/internal/execx"
	"esbuildrun/internal/logx"
	"esbuildrun/internal/paths"
	"esbuildrun/internal/provision"
	"esbuildrun/internal/registry"
)

// Version selects which esbuild release the facade provisions.
type Version struct {
	req registry.VersionRequest
}

// Latest tracks the registry's latest dist-tag.
func Latest() Version {
	return Version{req: registry.LatestRequest()}
}

// Fixed pins a concrete release, e.g. "0.19.11".
func Fixed(version string) Version {
	return Version{req: registry.FixedRequest(version)}
}

// Esbuild downloads the esbuild binary on first use, caches it on disk, and
// invokes it as a subprocess. It is the main entry point of this module.
type Esbuild struct {
	version    Version
	cacheDir   string
	downloader provision.Downloading
	runner     execx.Executing
	logger     *log.Logger
}

// A Setting customizes the facade at construction time.
type Setting func(*settings)

type settings struct {
	cacheDir    string
	registryURL string
	logger      *log.Logger
}

// WithCacheDir replaces the default cache root.
func WithCacheDir(dir string) Setting {
	return func(s *settings) { s.cacheDir = dir }
}

// WithRegistryURL points the facade at a different registry endpoint.
func WithRegistryURL(baseURL string) Setting {
	return func(s *settings) { s.registryURL = baseURL }
}

// WithLogger replaces the default stderr logger.
func WithLogger(logger *log.Logger) Setting {
	return func(s *settings) { s.logger = logger }
}

// newClient builds the registry client. Overridable in tests to pin the
// detected architecture.
var newClient = registry.NewClient

// New returns a facade for the given release. By default it provisions into
// the default cache root, talks to the public npm registry, and logs to
// stderr.
func New(version Version, opts ...Setting) *Esbuild {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.cacheDir == "" {
		s.cacheDir = paths.DefaultCacheRoot()
	}
	if s.logger == nil {
		s.logger = logx.New(nil)
	}
	return &Esbuild{
		version:    version,
		cacheDir:   s.cacheDir,
		downloader: provision.NewDownloader(newClient(s.registryURL), s.logger),
		runner:     execx.NewStreamRunner(s.logger),
		logger:     s.logger,
	}
}

// Executable makes sure the configured release is provisioned and returns
// its on-disk path. An already-cached release performs no network I/O.
func (e *Esbuild) Executable(ctx context.Context) (string, error) {
	return e.downloader.Download(ctx, e.version.req, e.cacheDir)
}

// Run invokes esbuild on entryPoint, using the entry point's directory as
// the working directory.
func (e *Esbuild) Run(ctx context.Context, entryPoint string, options ...Option) error {
	return e.RunIn(ctx, entryPoint, filepath.Dir(entryPoint), options...)
}

// RunIn invokes esbuild on entryPoint from dir. The argument vector is the
// entry point followed by each option's flags in caller order; the process
// exit status and output are reported exactly as the runner sees them.
func (e *Esbuild) RunIn(ctx context.Context, entryPoint, dir string, options ...Option) error {
	executable, err := e.Executable(ctx)
	if err != nil {
		return err
	}
	args := append([]string{entryPoint}, flatten(options)...)
	return e.runner.Run(ctx, executable, dir, args)
}
