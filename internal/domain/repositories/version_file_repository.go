package repositories

import (
	"github.com/patchtrail/patchtrail/internal/domain/entities"
)

// VersionFileRepository locates the snapshot artifacts for a named version
// under a base directory.
type VersionFileRepository interface {
	// Locate scans baseDir recursively and returns the file set for the
	// given version label. It fails with entities.MissingArtifactError when
	// no regular snapshot matches; a missing fix overlay is not an error.
	Locate(baseDir, version string) (entities.VersionFileSet, error)
}
