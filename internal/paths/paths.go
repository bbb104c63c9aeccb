package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"esbuildrun/internal/config"
)

const cacheFolderName = "esbuildrun"

// cacheDirEnv overrides the cache root when set.
const cacheDirEnv = "ESBUILDRUN_CACHE_DIR"

// ExecutableName is the wrapped tool's binary name for this OS.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return "esbuild.exe"
	}
	return "esbuild"
}

// DefaultCacheRoot is the platform temporary directory plus a fixed
// subfolder.
func DefaultCacheRoot() string {
	return filepath.Join(os.TempDir(), cacheFolderName)
}

// ExecutablePath is the deterministic cache location for one resolved
// version: {root}/{version}/{executable}. Its existence means "already
// provisioned".
func ExecutablePath(root, version string) string {
	return filepath.Join(root, version, ExecutableName())
}

// Resolve picks the cache root from, in order: the explicit override (flag),
// the ESBUILDRUN_CACHE_DIR environment variable, the configured cache_dir,
// and finally the default root.
func Resolve(override string, cfg config.Settings) (string, error) {
	for _, candidate := range []string{override, os.Getenv(cacheDirEnv), cfg.CacheDir} {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", fmt.Errorf("resolve cache root: %w", err)
		}
		return abs, nil
	}
	return DefaultCacheRoot(), nil
}
