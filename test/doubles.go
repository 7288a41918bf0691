// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
	"github.com/patchtrail/patchtrail/internal/domain/repositories"
)

// ---------------------------------------------------------------------------
// SpyVersionFileRepository
// ---------------------------------------------------------------------------

// SpyVersionFileRepository implements repositories.VersionFileRepository as a
// configurable spy. Map version labels to file sets; unmapped versions fail
// with MissingArtifactError like the real locator.
type SpyVersionFileRepository struct {
	// --- Locate ---
	Sets map[string]entities.VersionFileSet
	// spy: versions that were requested
	LocatedVersions []string
}

var _ repositories.VersionFileRepository = (*SpyVersionFileRepository)(nil)

func (r *SpyVersionFileRepository) Locate(
	_ string, version string,
) (entities.VersionFileSet, error) {
	r.LocatedVersions = append(r.LocatedVersions, version)
	if r.Sets != nil {
		if set, ok := r.Sets[version]; ok {
			return set, nil
		}
	}
	return entities.VersionFileSet{}, &entities.MissingArtifactError{Version: version}
}

// ---------------------------------------------------------------------------
// SpyDiffEngineRepository
// ---------------------------------------------------------------------------

// EngineCall records a single engine invocation.
type EngineCall struct {
	InputA  string
	InputB  string
	OutPath string
}

// SpyDiffEngineRepository implements repositories.DiffEngineRepository as a
// configurable spy.
type SpyDiffEngineRepository struct {
	// --- errors per operation ---
	ChangesErr error
	FixErr     error
	ApplyErr   error

	// spy: calls received
	ChangesCalls []EngineCall
	FixCalls     []EngineCall
	ApplyCalls   []EngineCall
}

var _ repositories.DiffEngineRepository = (*SpyDiffEngineRepository)(nil)

func (r *SpyDiffEngineRepository) ComputeChangesPatch(
	_ context.Context, _ *entities.Settings, fromPath, toPath, outPath string,
) error {
	r.ChangesCalls = append(r.ChangesCalls, EngineCall{fromPath, toPath, outPath})
	return r.ChangesErr
}

func (r *SpyDiffEngineRepository) ComputeFixPatch(
	_ context.Context, _ *entities.Settings, regularPath, fixPath, outPath string,
) error {
	r.FixCalls = append(r.FixCalls, EngineCall{regularPath, fixPath, outPath})
	return r.FixErr
}

func (r *SpyDiffEngineRepository) ApplyFixPatch(
	_ context.Context, _ *entities.Settings, targetPath, patchPath, outPath string,
) error {
	r.ApplyCalls = append(r.ApplyCalls, EngineCall{targetPath, patchPath, outPath})
	return r.ApplyErr
}

// ---------------------------------------------------------------------------
// SpySummaryRepository
// ---------------------------------------------------------------------------

// SpySummaryRepository implements repositories.SummaryRepository as a
// configurable spy.
type SpySummaryRepository struct {
	// --- Summarize ---
	Text string
	Err  error
	// spy: patch contents received
	Inputs []string
}

var _ repositories.SummaryRepository = (*SpySummaryRepository)(nil)

func (r *SpySummaryRepository) Summarize(
	_ context.Context, _ *entities.Settings, patchContent string,
) (string, error) {
	r.Inputs = append(r.Inputs, patchContent)
	return r.Text, r.Err
}

// ---------------------------------------------------------------------------
// SpyChangelogRepository
// ---------------------------------------------------------------------------

// ChangelogCall records a single Append invocation.
type ChangelogCall struct {
	Version string
	Text    string
}

// SpyChangelogRepository implements repositories.ChangelogRepository as a
// configurable spy.
type SpyChangelogRepository struct {
	// --- Append ---
	Err error
	// spy: entries received
	Entries []ChangelogCall
}

var _ repositories.ChangelogRepository = (*SpyChangelogRepository)(nil)

func (r *SpyChangelogRepository) Append(
	_ *entities.Settings, version, text string,
) error {
	r.Entries = append(r.Entries, ChangelogCall{Version: version, Text: text})
	return r.Err
}

// ---------------------------------------------------------------------------
// SpyNotifierRepository
// ---------------------------------------------------------------------------

// SpyNotifierRepository implements repositories.NotifierRepository as a
// configurable spy.
type SpyNotifierRepository struct {
	// --- Post ---
	Err error
	// spy: payloads received
	Payloads []entities.NotificationPayload
}

var _ repositories.NotifierRepository = (*SpyNotifierRepository)(nil)

func (r *SpyNotifierRepository) Post(
	_ context.Context, _ *entities.Settings, payload entities.NotificationPayload,
) error {
	r.Payloads = append(r.Payloads, payload)
	return r.Err
}
