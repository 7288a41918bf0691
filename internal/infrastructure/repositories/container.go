package repositories

import (
	"go.uber.org/dig"

	"github.com/patchtrail/patchtrail/internal/infrastructure/repositories/filesystem"
	"github.com/patchtrail/patchtrail/internal/infrastructure/repositories/jsondiff"
	"github.com/patchtrail/patchtrail/internal/infrastructure/repositories/llm"
	"github.com/patchtrail/patchtrail/internal/infrastructure/repositories/webhook"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(filesystem.NewFilesystemVersionRepository); err != nil {
		return err
	}
	if err := container.Provide(filesystem.NewFilesystemChangelogRepository); err != nil {
		return err
	}
	if err := container.Provide(jsondiff.NewJSONDiffEngineRepository); err != nil {
		return err
	}
	if err := container.Provide(llm.NewLLMSummaryRepository); err != nil {
		return err
	}
	if err := container.Provide(webhook.NewWebhookNotifierRepository); err != nil {
		return err
	}

	return nil
}
