package jsondiff

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
	"github.com/patchtrail/patchtrail/internal/domain/repositories"
)

const patchFileMode = 0o644

// JSONDiffEngineRepository implements repositories.DiffEngineRepository by
// invoking an external jd-compatible binary and capturing its standard
// output into the artifact file.
//
// The binary's exit status is not a failure signal: jd exits non-zero
// whenever the inputs differ, which is the expected case for this pipeline.
// Only a start failure is fatal.
type JSONDiffEngineRepository struct{}

// NewJSONDiffEngineRepository creates a new subprocess-backed engine adapter.
func NewJSONDiffEngineRepository() repositories.DiffEngineRepository {
	return &JSONDiffEngineRepository{}
}

// ComputeChangesPatch diffs two full snapshots into an RFC 6902 patch.
func (it *JSONDiffEngineRepository) ComputeChangesPatch(
	ctx context.Context, settings *entities.Settings, fromPath, toPath, outPath string,
) error {
	return it.run(ctx, settings, []string{"-f", "patch", fromPath, toPath}, outPath)
}

// ComputeFixPatch diffs a regular snapshot against its fix overlay.
func (it *JSONDiffEngineRepository) ComputeFixPatch(
	ctx context.Context, settings *entities.Settings, regularPath, fixPath, outPath string,
) error {
	return it.run(ctx, settings, []string{"-f", "patch", regularPath, fixPath}, outPath)
}

// ApplyFixPatch applies a fix patch onto the target snapshot.
func (it *JSONDiffEngineRepository) ApplyFixPatch(
	ctx context.Context, settings *entities.Settings, targetPath, patchPath, outPath string,
) error {
	return it.run(ctx, settings, []string{"-f", "patch", "-p", patchPath, targetPath}, outPath)
}

// run is the shared subprocess primitive. In dry-run mode it only logs the
// command it would execute; otherwise it executes the binary, writes the
// captured stdout to outPath, and logs stderr at debug level.
func (it *JSONDiffEngineRepository) run(
	ctx context.Context, settings *entities.Settings, args []string, outPath string,
) error {
	bin := settings.EngineBin
	display := bin + " " + strings.Join(args, " ")

	if settings.DryRun {
		logger.Infof("[dry-run] would run: %s > %s", display, outPath)
		return nil
	}

	logger.Debugf("Running: %s > %s", display, outPath)

	cmd := exec.CommandContext(ctx, bin, args...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	output, runErr := cmd.Output()
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return &entities.EngineInvocationError{Bin: bin, Err: runErr}
		}
		// Started but exited non-zero: expected when the inputs differ.
		logger.Debugf("Engine exited non-zero (%v), keeping captured output", exitErr)
	}

	if stderr.Len() > 0 && settings.Verbose {
		logger.Debugf("Engine stderr:\n%s", stderr.String())
	}

	if writeErr := os.WriteFile(outPath, output, patchFileMode); writeErr != nil {
		return fmt.Errorf("failed to write engine output to %q: %w", outPath, writeErr)
	}

	return nil
}
