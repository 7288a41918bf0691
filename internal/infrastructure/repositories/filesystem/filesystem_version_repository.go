package filesystem

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
	"github.com/patchtrail/patchtrail/internal/domain/repositories"
)

// timestampPrefix matches the 14-digit compact ISO 8601 timestamp that
// leads every snapshot file name (8 digits date, literal T, 6 digits time,
// literal Z).
const timestampPrefix = `^\d{8}T\d{6}Z-`

// FilesystemVersionRepository implements repositories.VersionFileRepository
// by scanning a directory tree for snapshot files named
// <timestamp>-<version>.json and <timestamp>-<version>-fix.json.
type FilesystemVersionRepository struct{}

// NewFilesystemVersionRepository creates a new filesystem-backed locator.
func NewFilesystemVersionRepository() repositories.VersionFileRepository {
	return &FilesystemVersionRepository{}
}

// Locate scans baseDir recursively for the given version's files.
// When multiple files match a pattern, the lexicographically smallest
// relative path wins, so the pick is stable across repeated runs regardless
// of filesystem enumeration order.
func (it *FilesystemVersionRepository) Locate(
	baseDir, version string,
) (entities.VersionFileSet, error) {
	quoted := regexp.QuoteMeta(version)
	regularPattern := regexp.MustCompile(timestampPrefix + quoted + `\.json$`)
	fixPattern := regexp.MustCompile(timestampPrefix + quoted + `-fix\.json$`)

	var regulars, fixes []string

	walkErr := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		switch {
		case fixPattern.MatchString(name):
			fixes = append(fixes, path)
		case regularPattern.MatchString(name):
			regulars = append(regulars, path)
		}
		return nil
	})
	if walkErr != nil {
		return entities.VersionFileSet{}, fmt.Errorf(
			"failed to scan %q for version %q: %w", baseDir, version, walkErr,
		)
	}

	sort.Strings(regulars)
	sort.Strings(fixes)

	if len(regulars) == 0 {
		return entities.VersionFileSet{}, &entities.MissingArtifactError{Version: version}
	}
	if len(regulars) > 1 {
		logger.Warnf(
			"Multiple snapshot files match version %q, using %q", version, regulars[0],
		)
	}

	set := entities.VersionFileSet{Regular: regulars[0]}
	if len(fixes) > 0 {
		set.Fix = fixes[0]
	}

	logger.Debugf("Located version %q: regular=%q fix=%q", version, set.Regular, set.Fix)
	return set, nil
}
