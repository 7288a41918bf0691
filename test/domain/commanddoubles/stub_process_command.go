//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/patchtrail/patchtrail/internal/domain/commands"
	"github.com/patchtrail/patchtrail/internal/domain/entities"
)

// StubProcessCommand is a stub implementation of commands.Process.
type StubProcessCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
}

var _ commands.Process = (*StubProcessCommand)(nil)

func (s *StubProcessCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.ExecuteErr
}
