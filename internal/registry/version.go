package registry

import "strings"

// VersionRequest selects which release to provision: the registry's latest
// dist-tag or a caller-pinned version string.
type VersionRequest struct {
	fixed string
}

// LatestRequest tracks the registry's latest dist-tag.
func LatestRequest() VersionRequest {
	return VersionRequest{}
}

// FixedRequest pins a concrete version, e.g. "0.19.11".
func FixedRequest(version string) VersionRequest {
	return VersionRequest{fixed: version}
}

// IsLatest reports whether the request tracks the latest dist-tag.
func (r VersionRequest) IsLatest() bool {
	return r.fixed == ""
}

// Normalized returns the pinned version carrying the registry tag prefix, or
// the empty string for latest requests. The normalized string is both the
// metadata lookup key and the cache directory segment.
func (r VersionRequest) Normalized() string {
	if r.IsLatest() {
		return ""
	}
	if strings.HasPrefix(r.fixed, "v") {
		return r.fixed
	}
	return "v" + r.fixed
}

// Resolve maps the request to a concrete version string using fetched
// metadata.
func (r VersionRequest) Resolve(meta PackageMetadata) string {
	if r.IsLatest() {
		return meta.DistTags.Latest
	}
	return r.Normalized()
}
