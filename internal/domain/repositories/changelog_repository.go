package repositories

import (
	"github.com/patchtrail/patchtrail/internal/domain/entities"
)

// ChangelogRepository persists timestamped entries to the changelog file,
// creating it with the canonical heading when absent. Entries are inserted
// most-recent-first.
type ChangelogRepository interface {
	Append(settings *entities.Settings, version, text string) error
}
