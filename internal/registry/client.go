// Package registry resolves and fetches esbuild release artifacts from the
// npm registry.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"esbuildrun/internal/arch"
)

const (
	// DefaultBaseURL is the public npm registry.
	DefaultBaseURL = "https://registry.npmjs.org"

	// Scope is the npm scope holding the per-platform esbuild packages.
	Scope = "@esbuild"

	userAgent = "esbuildrun/1.0"

	metadataTimeout = 30 * time.Second

	// metadataSizeLimit caps the metadata body read at 1 MiB.
	metadataSizeLimit = 1 << 20
)

// ErrUnresolvedPackageName signals that no registry package exists for the
// host platform/architecture combination.
var ErrUnresolvedPackageName = errors.New("cannot resolve registry package name for this platform")

// Client queries the registry for package metadata and fetches release
// archives.
type Client struct {
	BaseURL string

	// Detect resolves the host architecture. Defaults to arch.Detect;
	// tests pin it to stay independent of the machine they run on.
	Detect func(context.Context) (arch.Architecture, bool)
}

// NewClient returns a registry client. An empty baseURL selects the public
// npm registry.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{BaseURL: baseURL, Detect: arch.Detect}
}

// PackageName builds the platform-qualified package name, e.g.
// "@esbuild/darwin-arm64". It fails with ErrUnresolvedPackageName when the
// architecture cannot be detected or has no registry token.
func (c *Client) PackageName(ctx context.Context) (string, error) {
	a, ok := c.Detect(ctx)
	if !ok {
		return "", ErrUnresolvedPackageName
	}
	token := a.RegistryToken()
	if token == "" {
		return "", ErrUnresolvedPackageName
	}
	return fmt.Sprintf("%s/%s-%s", Scope, runtime.GOOS, token), nil
}

// Metadata fetches the registry document for pkg. The request is bounded by
// a 30s client timeout and the body read is capped at 1 MiB.
func (c *Client) Metadata(ctx context.Context, pkg string) (PackageMetadata, error) {
	client := &http.Client{Timeout: metadataTimeout}
	defer client.CloseIdleConnections()

	endpoint := strings.TrimSuffix(c.BaseURL, "/") + "/" + pkg
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return PackageMetadata{}, fmt.Errorf("create metadata request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return PackageMetadata{}, fmt.Errorf("fetch metadata for %s: %w", pkg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return PackageMetadata{}, fmt.Errorf("fetch metadata for %s: unexpected status %s", pkg, resp.Status)
	}

	var meta PackageMetadata
	if err := json.NewDecoder(io.LimitReader(resp.Body, metadataSizeLimit)).Decode(&meta); err != nil {
		return PackageMetadata{}, fmt.Errorf("decode metadata for %s: %w", pkg, err)
	}
	return meta, nil
}

// FetchArchive streams the archive at downloadURL into dest, reporting the
// cumulative byte count through progress when non-nil.
func (c *Client) FetchArchive(ctx context.Context, downloadURL, dest string, progress func(int64)) error {
	client := &http.Client{}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("create archive request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", downloadURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download %s: unexpected status %s", downloadURL, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}

	var body io.Reader = resp.Body
	if progress != nil {
		body = &countingReader{r: resp.Body, report: progress}
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		return fmt.Errorf("write archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close archive file: %w", err)
	}
	return nil
}

type countingReader struct {
	r      io.Reader
	total  int64
	report func(int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.total += int64(n)
		c.report(c.total)
	}
	return n, err
}
