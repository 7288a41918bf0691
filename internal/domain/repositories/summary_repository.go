package repositories

import (
	"context"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
)

// SummaryRepository turns a patch document into human-readable prose.
// Implementations degrade gracefully: a transport or API failure returns
// fallback text describing the failure rather than an error, so
// summarization can never abort the pipeline.
type SummaryRepository interface {
	Summarize(ctx context.Context, settings *entities.Settings, patchContent string) (string, error)
}
