package registry

import "testing"

func TestVersionRequestResolve(t *testing.T) {
	meta := PackageMetadata{
		DistTags: DistTags{Latest: "v0.19.11"},
		Versions: map[string]VersionMetadata{
			"v0.19.11": {},
			"v0.18.0":  {},
		},
	}

	if got := LatestRequest().Resolve(meta); got != "v0.19.11" {
		t.Errorf("latest resolved to %q", got)
	}
	if got := FixedRequest("0.18.0").Resolve(meta); got != "v0.18.0" {
		t.Errorf("fixed 0.18.0 resolved to %q; want prefix normalization", got)
	}
	if got := FixedRequest("v0.18.0").Resolve(meta); got != "v0.18.0" {
		t.Errorf("fixed v0.18.0 resolved to %q; prefix must not double up", got)
	}
}

func TestVersionRequestKind(t *testing.T) {
	if !LatestRequest().IsLatest() {
		t.Error("LatestRequest should report IsLatest")
	}
	if FixedRequest("0.19.11").IsLatest() {
		t.Error("FixedRequest should not report IsLatest")
	}
	if got := LatestRequest().Normalized(); got != "" {
		t.Errorf("latest Normalized = %q; want empty", got)
	}
}
