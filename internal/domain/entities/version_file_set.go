package entities

// VersionFileSet holds the artifacts located for one named version.
// Regular is the primary snapshot file; Fix is an optional correction
// overlay. An empty string means the artifact is absent.
type VersionFileSet struct {
	Regular string
	Fix     string
}

// HasFix returns true when a fix overlay was located for this version.
func (s VersionFileSet) HasFix() bool {
	return s.Fix != ""
}
