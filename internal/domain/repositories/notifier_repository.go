package repositories

import (
	"context"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
)

// NotifierRepository delivers a structured message to the configured
// webhook. Delivery is best-effort: callers log the returned error and
// continue.
type NotifierRepository interface {
	Post(ctx context.Context, settings *entities.Settings, payload entities.NotificationPayload) error
}
