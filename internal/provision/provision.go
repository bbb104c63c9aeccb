// Package provision downloads esbuild release binaries from the registry and
// places them in the on-disk cache.
package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"esbuildrun/internal/extract"
	"esbuildrun/internal/paths"
	"esbuildrun/internal/registry"
)

// Downloading resolves and provisions a release binary, returning its cache
// path.
type Downloading interface {
	Download(ctx context.Context, version registry.VersionRequest, dir string) (string, error)
}

// VersionNotFoundError reports a version missing from the registry metadata.
type VersionNotFoundError struct {
	Version string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %s not found in registry metadata", e.Version)
}

// archiveName is the local file name for the downloaded tarball.
const archiveName = "esbuild.tgz"

// binaryRelPath is where the executable sits inside the extracted archive.
var binaryRelPath = filepath.Join("package", "bin")

// Downloader provisions esbuild binaries. Concurrent calls for the same
// uncached version race: both download and the last rename wins. Callers
// needing at-most-once semantics must serialize externally.
type Downloader struct {
	Registry  *registry.Client
	Extractor extract.Extracting
	Logger    *log.Logger

	// Progress, when set, receives the cumulative archive byte count.
	Progress func(int64)
}

// NewDownloader returns a production downloader backed by the given registry
// client.
func NewDownloader(client *registry.Client, logger *log.Logger) *Downloader {
	return &Downloader{
		Registry:  client,
		Extractor: extract.TarExtractor{},
		Logger:    logger,
	}
}

// DownloadLatest provisions the latest release into the default cache root.
func (d *Downloader) DownloadLatest(ctx context.Context) (string, error) {
	return d.Download(ctx, registry.LatestRequest(), paths.DefaultCacheRoot())
}

// Download makes sure the requested version's executable exists under dir
// and returns its path. An existing cache path short-circuits all further
// network and filesystem work; for pinned versions not even metadata is
// fetched on a hit.
func (d *Downloader) Download(ctx context.Context, version registry.VersionRequest, dir string) (string, error) {
	pkg, err := d.Registry.PackageName(ctx)
	if err != nil {
		return "", err
	}

	var meta registry.PackageMetadata
	haveMeta := false

	resolved := version.Normalized()
	if version.IsLatest() {
		meta, err = d.Registry.Metadata(ctx, pkg)
		if err != nil {
			return "", err
		}
		haveMeta = true
		resolved = meta.DistTags.Latest
	}

	cachePath := paths.ExecutablePath(dir, resolved)
	if _, err := os.Stat(cachePath); err == nil {
		d.Logger.Debug("cache hit", "version", resolved, "path", cachePath)
		return cachePath, nil
	}

	if !haveMeta {
		meta, err = d.Registry.Metadata(ctx, pkg)
		if err != nil {
			return "", err
		}
	}

	release, ok := meta.Versions[resolved]
	if !ok {
		return "", &VersionNotFoundError{Version: resolved}
	}

	// Scratch space lives under the cache root so the final rename never
	// crosses filesystems.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("prepare cache root: %w", err)
	}
	tmpDir, err := os.MkdirTemp(dir, "download-")
	if err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	archivePath := filepath.Join(tmpDir, archiveName)
	d.Logger.Info("downloading", "package", pkg, "version", resolved)
	if err := d.Registry.FetchArchive(ctx, release.Dist.Tarball, archivePath, d.Progress); err != nil {
		return "", err
	}

	if err := d.Extractor.Extract(ctx, archivePath); err != nil {
		return "", err
	}

	binary := filepath.Join(tmpDir, binaryRelPath, paths.ExecutableName())
	if err := os.Chmod(binary, 0o755); err != nil {
		return "", fmt.Errorf("mark executable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return "", fmt.Errorf("prepare cache dir: %w", err)
	}
	if err := os.Rename(binary, cachePath); err != nil {
		return "", fmt.Errorf("commit executable: %w", err)
	}

	// Scratch space is removed on success only; failed runs leave their
	// debris behind.
	_ = os.RemoveAll(tmpDir)

	d.Logger.Info("provisioned", "version", resolved, "path", cachePath)
	return cachePath, nil
}

var _ Downloading = (*Downloader)(nil)
