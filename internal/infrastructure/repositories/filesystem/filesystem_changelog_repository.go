package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
	"github.com/patchtrail/patchtrail/internal/domain/repositories"
)

const changelogFileMode = 0o644

// FilesystemChangelogRepository implements repositories.ChangelogRepository
// with a read-modify-write cycle on a single markdown file.
type FilesystemChangelogRepository struct{}

// NewFilesystemChangelogRepository creates a new file-backed changelog store.
func NewFilesystemChangelogRepository() repositories.ChangelogRepository {
	return &FilesystemChangelogRepository{}
}

// Append inserts a new entry for the given version immediately after the
// leading heading, creating the file with the canonical heading when absent.
func (it *FilesystemChangelogRepository) Append(
	settings *entities.Settings, version, text string,
) error {
	path := settings.ChangelogPath

	if settings.DryRun {
		logger.Infof("[dry-run] would append changelog entry for %s to %s", version, path)
		return nil
	}

	content := entities.InitialChangelogContent()
	data, readErr := os.ReadFile(path)
	switch {
	case readErr == nil:
		content = string(data)
	case errors.Is(readErr, fs.ErrNotExist):
		logger.Debugf("Changelog %q does not exist, initializing it", path)
	default:
		return fmt.Errorf("failed to read changelog %q: %w", path, readErr)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	updated := entities.InsertChangelogEntry(content, version, timestamp, text)

	if writeErr := os.WriteFile(path, []byte(updated), changelogFileMode); writeErr != nil {
		return fmt.Errorf("failed to write changelog %q: %w", path, writeErr)
	}

	logger.Infof("Appended changelog entry for %s to %s", version, path)
	return nil
}
