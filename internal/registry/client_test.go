package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"esbuildrun/internal/arch"
)

func pinnedClient(baseURL string, a arch.Architecture, ok bool) *Client {
	c := NewClient(baseURL)
	c.Detect = func(_ context.Context) (arch.Architecture, bool) {
		return a, ok
	}
	return c
}

func TestPackageName(t *testing.T) {
	c := pinnedClient("", arch.ARM64, true)
	name, err := c.PackageName(context.Background())
	if err != nil {
		t.Fatalf("PackageName: %v", err)
	}
	want := fmt.Sprintf("@esbuild/%s-arm64", runtime.GOOS)
	if name != want {
		t.Fatalf("PackageName = %q; want %q", name, want)
	}
}

func TestPackageNameTokens(t *testing.T) {
	for _, a := range []arch.Architecture{arch.ARM, arch.ARM64, arch.X64, arch.X8664, arch.IA32, arch.PPC64, arch.RISCV64, arch.S390X} {
		c := pinnedClient("", a, true)
		name, err := c.PackageName(context.Background())
		if err != nil {
			t.Fatalf("PackageName(%s): %v", a, err)
		}
		want := fmt.Sprintf("@esbuild/%s-%s", runtime.GOOS, a.RegistryToken())
		if name != want {
			t.Errorf("PackageName(%s) = %q; want %q", a, name, want)
		}
	}
}

func TestPackageNameUnresolved(t *testing.T) {
	// Undetectable architecture.
	c := pinnedClient("", "", false)
	if _, err := c.PackageName(context.Background()); !errors.Is(err, ErrUnresolvedPackageName) {
		t.Fatalf("expected ErrUnresolvedPackageName, got %v", err)
	}

	// Detected but with an empty registry token.
	c = pinnedClient("", arch.Loong64, true)
	if _, err := c.PackageName(context.Background()); !errors.Is(err, ErrUnresolvedPackageName) {
		t.Fatalf("expected ErrUnresolvedPackageName for loong64, got %v", err)
	}
}

func TestMetadata(t *testing.T) {
	var gotUserAgent, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotContentType = r.Header.Get("Content-Type")
		if r.URL.Path != "/@esbuild/linux-x64" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{
			"name": "@esbuild/linux-x64",
			"dist-tags": {"latest": "v0.19.11"},
			"versions": {
				"v0.19.11": {"dist": {"tarball": "http://example.test/esbuild.tgz", "shasum": "abc", "integrity": "sha512-def"}}
			}
		}`)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	meta, err := c.Metadata(context.Background(), "@esbuild/linux-x64")
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}

	if meta.Name != "@esbuild/linux-x64" {
		t.Errorf("Name = %q", meta.Name)
	}
	if meta.DistTags.Latest != "v0.19.11" {
		t.Errorf("latest = %q", meta.DistTags.Latest)
	}
	release, ok := meta.Versions["v0.19.11"]
	if !ok {
		t.Fatal("missing version entry")
	}
	if release.Dist.Tarball != "http://example.test/esbuild.tgz" {
		t.Errorf("tarball = %q", release.Dist.Tarball)
	}
	if release.Dist.Shasum != "abc" || release.Dist.Integrity != "sha512-def" {
		t.Errorf("checksum fields = %+v", release.Dist)
	}
	if gotUserAgent == "" {
		t.Error("request missing User-Agent header")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestMetadataNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if _, err := c.Metadata(context.Background(), "@esbuild/linux-x64"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestMetadataMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"name": `)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if _, err := c.Metadata(context.Background(), "@esbuild/linux-x64"); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestFetchArchive(t *testing.T) {
	payload := []byte("not really a tarball but plenty of bytes for progress")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "esbuild.tgz")
	var reported int64
	c := NewClient(server.URL)
	if err := c.FetchArchive(context.Background(), server.URL, dest, func(n int64) { reported = n }); err != nil {
		t.Fatalf("FetchArchive: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if string(data) != string(payload) {
		t.Fatalf("archive content mismatch")
	}
	if reported != int64(len(payload)) {
		t.Fatalf("progress reported %d bytes; want %d", reported, len(payload))
	}
}

func TestFetchArchiveNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "esbuild.tgz")
	c := NewClient(server.URL)
	if err := c.FetchArchive(context.Background(), server.URL, dest, nil); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
