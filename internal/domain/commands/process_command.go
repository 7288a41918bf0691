package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
	"github.com/patchtrail/patchtrail/internal/domain/repositories"
)

const summaryFileMode = 0o644

// Process is the interface for the process command (the versioned-patch
// pipeline).
type Process interface {
	Execute(ctx context.Context, settings *entities.Settings) error
}

// pipelineStep pairs a guard condition with a context-producing step.
// A skipped step leaves the context unchanged.
type pipelineStep struct {
	name  string
	guard func(pc entities.PipelineContext) bool
	run   func(ctx context.Context, pc entities.PipelineContext) (entities.PipelineContext, error)
}

// ProcessCommand orchestrates the versioned-patch pipeline: locate the input
// snapshots, compute the changes patch, optionally compute and forward-apply
// a fix patch, summarize, persist a changelog entry, and notify.
//
// The step sequence is a single linear pass; each step appends to the
// pipeline context and never mutates existing fields. Only a missing input
// artifact or an engine start failure aborts the run.
type ProcessCommand struct {
	versions   repositories.VersionFileRepository
	engine     repositories.DiffEngineRepository
	summarizer repositories.SummaryRepository
	changelog  repositories.ChangelogRepository
	notifier   repositories.NotifierRepository
}

// NewProcessCommand creates a new ProcessCommand with the given collaborators.
func NewProcessCommand(
	versions repositories.VersionFileRepository,
	engine repositories.DiffEngineRepository,
	summarizer repositories.SummaryRepository,
	changelog repositories.ChangelogRepository,
	notifier repositories.NotifierRepository,
) *ProcessCommand {
	return &ProcessCommand{
		versions:   versions,
		engine:     engine,
		summarizer: summarizer,
		changelog:  changelog,
		notifier:   notifier,
	}
}

// Execute runs the pipeline for one pair of versions. On a fatal failure it
// performs one best-effort failure notification (outside dry-run) before
// returning the error.
func (it *ProcessCommand) Execute(
	ctx context.Context, settings *entities.Settings,
) (err error) {
	if settings.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	defer func() {
		if err != nil {
			it.notifyFailure(ctx, settings, err)
		}
	}()

	steps := []pipelineStep{
		{
			name:  "Locate",
			guard: func(entities.PipelineContext) bool { return true },
			run:   it.locate,
		},
		{
			name:  "ComputeChangesPatch",
			guard: func(entities.PipelineContext) bool { return true },
			run:   it.computeChangesPatch,
		},
		{
			name:  "ComputeFixPatch",
			guard: func(pc entities.PipelineContext) bool { return pc.FromFiles.HasFix() },
			run:   it.computeFixPatch,
		},
		{
			name:  "ApplyFixPatch",
			guard: func(pc entities.PipelineContext) bool { return pc.FixPatchPath != "" },
			run:   it.applyFixPatch,
		},
		{
			name:  "Summarize",
			guard: func(entities.PipelineContext) bool { return settings.LLMEndpoint != "" },
			run:   it.summarize,
		},
		{
			name:  "UpdateChangelog",
			guard: func(entities.PipelineContext) bool { return true },
			run:   it.updateChangelog,
		},
		{
			name:  "Notify",
			guard: func(entities.PipelineContext) bool { return settings.WebhookURL != "" },
			run:   it.notify,
		},
	}

	pc := entities.NewPipelineContext(settings)
	for _, step := range steps {
		if !step.guard(pc) {
			logger.Debugf("[%s] skipped", step.name)
			continue
		}

		pc, err = step.run(ctx, pc)
		if err != nil {
			logger.Errorf("[%s] failed: %v", step.name, err)
			return err
		}
	}

	logger.Infof(
		"Processed %s -> %s (changes patch: %s)",
		settings.FromVersion, settings.ToVersion, pc.ChangesPatchPath,
	)
	return nil
}

// locate resolves the snapshot files for both versions. A missing regular
// file for either version is fatal.
func (it *ProcessCommand) locate(
	_ context.Context, pc entities.PipelineContext,
) (entities.PipelineContext, error) {
	settings := pc.Settings

	fromFiles, fromErr := it.versions.Locate(settings.BaseDir, settings.FromVersion)
	if fromErr != nil {
		return pc, fromErr
	}

	toFiles, toErr := it.versions.Locate(settings.BaseDir, settings.ToVersion)
	if toErr != nil {
		return pc, toErr
	}

	return pc.WithFiles(fromFiles, toFiles), nil
}

// computeChangesPatch diffs the two regular snapshots.
func (it *ProcessCommand) computeChangesPatch(
	ctx context.Context, pc entities.PipelineContext,
) (entities.PipelineContext, error) {
	settings := pc.Settings
	outPath := filepath.Join(settings.BaseDir, fmt.Sprintf(
		"patch-changes-%s-%s.json", settings.FromVersion, settings.ToVersion,
	))

	if err := it.engine.ComputeChangesPatch(
		ctx, settings, pc.FromFiles.Regular, pc.ToFiles.Regular, outPath,
	); err != nil {
		return pc, err
	}

	return pc.WithChangesPatch(outPath), nil
}

// computeFixPatch diffs the source version's regular snapshot against its
// fix overlay.
func (it *ProcessCommand) computeFixPatch(
	ctx context.Context, pc entities.PipelineContext,
) (entities.PipelineContext, error) {
	settings := pc.Settings
	outPath := filepath.Join(settings.BaseDir, fmt.Sprintf(
		"patch-fix-%s.json", settings.FromVersion,
	))

	if err := it.engine.ComputeFixPatch(
		ctx, settings, pc.FromFiles.Regular, pc.FromFiles.Fix, outPath,
	); err != nil {
		return pc, err
	}

	return pc.WithFixPatch(outPath), nil
}

// applyFixPatch forward-applies the fix patch onto the target version's
// regular snapshot, producing a corrected sibling file.
func (it *ProcessCommand) applyFixPatch(
	ctx context.Context, pc entities.PipelineContext,
) (entities.PipelineContext, error) {
	outPath := strings.TrimSuffix(pc.ToFiles.Regular, ".json") + "-fix.json"

	if err := it.engine.ApplyFixPatch(
		ctx, pc.Settings, pc.ToFiles.Regular, pc.FixPatchPath, outPath,
	); err != nil {
		return pc, err
	}

	return pc.WithFixApplied(outPath), nil
}

// summarize generates the human-readable text from the changes patch and,
// outside dry-run, persists it next to the target snapshot. Summarization
// failure degrades into fallback text, never an abort.
func (it *ProcessCommand) summarize(
	ctx context.Context, pc entities.PipelineContext,
) (entities.PipelineContext, error) {
	settings := pc.Settings

	patchContent := it.readArtifact(pc.ChangesPatchPath)

	text, sumErr := it.summarizer.Summarize(ctx, settings, patchContent)
	if sumErr != nil {
		logger.Errorf("Summarization failed: %v", sumErr)
		text = fmt.Sprintf("Failed to generate human-readable text: %v", sumErr)
	}

	summaryPath := strings.TrimSuffix(pc.ToFiles.Regular, ".json") + "-changes.md"
	if settings.DryRun {
		logger.Infof("[dry-run] would write summary to %s", summaryPath)
		return pc.WithSummary(text, summaryPath), nil
	}

	if text != "" {
		if writeErr := os.WriteFile(summaryPath, []byte(text+"\n"), summaryFileMode); writeErr != nil {
			logger.Errorf("Failed to write summary file %q: %v", summaryPath, writeErr)
		}
	}

	return pc.WithSummary(text, summaryPath), nil
}

// updateChangelog appends the entry for the target version. Persistence
// failure is logged and swallowed.
func (it *ProcessCommand) updateChangelog(
	_ context.Context, pc entities.PipelineContext,
) (entities.PipelineContext, error) {
	settings := pc.Settings

	if err := it.changelog.Append(settings, settings.ToVersion, pc.HumanReadableText); err != nil {
		logger.Errorf("Changelog update failed: %v", err)
	}

	return pc, nil
}

// notify posts the success message: target version, human-readable text,
// and the pretty-printed changes patch. Delivery failure is logged and
// swallowed.
func (it *ProcessCommand) notify(
	ctx context.Context, pc entities.PipelineContext,
) (entities.PipelineContext, error) {
	settings := pc.Settings

	payload := entities.NotificationPayload{
		Text: fmt.Sprintf(
			"Snapshot %s processed.\n\n%s\n\n```%s```",
			settings.ToVersion,
			pc.HumanReadableText,
			it.prettyPatch(pc.ChangesPatchPath),
		),
	}

	if err := it.notifier.Post(ctx, settings, payload); err != nil {
		logger.Errorf("Notification failed: %v", err)
	}

	return pc, nil
}

// notifyFailure performs the best-effort failure notification on the fatal
// exit path. Skipped in dry-run or when no webhook is configured.
func (it *ProcessCommand) notifyFailure(
	ctx context.Context, settings *entities.Settings, cause error,
) {
	if settings.DryRun || settings.WebhookURL == "" {
		return
	}

	payload := entities.NotificationPayload{
		Text: fmt.Sprintf(
			"Pipeline failed for %s -> %s at %s: %v",
			settings.FromVersion,
			settings.ToVersion,
			time.Now().UTC().Format(time.RFC3339),
			cause,
		),
	}

	if err := it.notifier.Post(ctx, settings, payload); err != nil {
		logger.Errorf("Failure notification failed: %v", err)
	}
}

// readArtifact reads a patch artifact, returning empty content when the
// file is not readable (dry-run runs never write it).
func (it *ProcessCommand) readArtifact(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debugf("Patch artifact %q not readable: %v", path, err)
		return ""
	}
	return string(data)
}

// prettyPatch returns the changes patch pretty-printed for the webhook
// message, falling back to the raw content when it is not valid JSON.
func (it *ProcessCommand) prettyPatch(path string) string {
	raw := it.readArtifact(path)
	if raw == "" {
		return "(patch unavailable)"
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}
