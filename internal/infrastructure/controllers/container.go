package controllers

import (
	"go.uber.org/dig"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewProcessController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the App.
func NewControllers(
	processController *ProcessController,
) *[]entities.Controller {
	return &[]entities.Controller{
		processController,
	}
}
