package registry

// PackageMetadata mirrors the registry document returned for one
// platform-qualified package.
type PackageMetadata struct {
	Name     string                     `json:"name"`
	DistTags DistTags                   `json:"dist-tags"`
	Versions map[string]VersionMetadata `json:"versions"`
}

// DistTags carries the registry's symbolic version tags.
type DistTags struct {
	Latest string `json:"latest"`
}

// VersionMetadata wraps the download descriptor for one published version.
type VersionMetadata struct {
	Dist DownloadDescriptor `json:"dist"`
}

// DownloadDescriptor locates one version's archive. Shasum and Integrity are
// carried as the registry reports them; nothing verifies them yet.
type DownloadDescriptor struct {
	Tarball   string `json:"tarball"`
	Shasum    string `json:"shasum"`
	Integrity string `json:"integrity"`
}
