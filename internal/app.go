package internal

import (
	"github.com/patchtrail/patchtrail/internal/domain/entities"
)

// App aggregates every controller the CLI exposes.
type App struct {
	controllers []entities.Controller
}

// NewApp creates the application aggregate from the registered controllers.
func NewApp(controllers *[]entities.Controller) *App {
	return &App{controllers: *controllers}
}

// GetControllers returns all registered controllers.
func (it *App) GetControllers() []entities.Controller {
	return it.controllers
}
