package repositories

import (
	"context"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
)

// DiffEngineRepository abstracts the external diff/patch collaborator.
// Every operation writes its captured output to outPath as a side effect.
// A binary that cannot be started surfaces as entities.EngineInvocationError;
// a non-zero exit from a binary that did start is not an error (diff tools
// exit non-zero when the inputs differ, which is the expected case here).
type DiffEngineRepository interface {
	// ComputeChangesPatch diffs two full snapshots, from source to target.
	ComputeChangesPatch(ctx context.Context, settings *entities.Settings, fromPath, toPath, outPath string) error

	// ComputeFixPatch diffs a version's regular snapshot against its fix
	// overlay, producing the correction patch.
	ComputeFixPatch(ctx context.Context, settings *entities.Settings, regularPath, fixPath, outPath string) error

	// ApplyFixPatch applies a fix patch onto the target version's regular
	// snapshot, producing a corrected document.
	ApplyFixPatch(ctx context.Context, settings *entities.Settings, targetPath, patchPath, outPath string) error
}
