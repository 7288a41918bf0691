//go:build unit

package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchtrail/patchtrail/internal/domain/commands"
	"github.com/patchtrail/patchtrail/internal/domain/entities"
	testdoubles "github.com/patchtrail/patchtrail/test"
	"github.com/patchtrail/patchtrail/test/domain/entitybuilders"
)

type fixture struct {
	versions   *testdoubles.SpyVersionFileRepository
	engine     *testdoubles.SpyDiffEngineRepository
	summarizer *testdoubles.SpySummaryRepository
	changelog  *testdoubles.SpyChangelogRepository
	notifier   *testdoubles.SpyNotifierRepository
	command    *commands.ProcessCommand
}

func newFixture(sets map[string]entities.VersionFileSet) *fixture {
	f := &fixture{
		versions:   &testdoubles.SpyVersionFileRepository{Sets: sets},
		engine:     &testdoubles.SpyDiffEngineRepository{},
		summarizer: &testdoubles.SpySummaryRepository{Text: "two fields changed"},
		changelog:  &testdoubles.SpyChangelogRepository{},
		notifier:   &testdoubles.SpyNotifierRepository{},
	}
	f.command = commands.NewProcessCommand(
		f.versions, f.engine, f.summarizer, f.changelog, f.notifier,
	)
	return f
}

func snapshotSets(baseDir string, withFix bool) map[string]entities.VersionFileSet {
	v1 := entities.VersionFileSet{
		Regular: filepath.Join(baseDir, "20250101T000000Z-v1.json"),
	}
	if withFix {
		v1.Fix = filepath.Join(baseDir, "20250102T000000Z-v1-fix.json")
	}
	return map[string]entities.VersionFileSet{
		"v1": v1,
		"v2": {Regular: filepath.Join(baseDir, "20250103T000000Z-v2.json")},
	}
}

func TestProcessCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should run every step when a fix overlay exists", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, true))
		settings := entitybuilders.NewSettingsBuilder().
			WithBaseDir(baseDir).
			WithLLMEndpoint("https://llm.example.com/v1").
			WithWebhook("https://hooks.example.com/T123", "token").
			BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"v1", "v2"}, f.versions.LocatedVersions)
		require.Len(t, f.engine.ChangesCalls, 1)
		assert.Equal(t, filepath.Join(baseDir, "patch-changes-v1-v2.json"), f.engine.ChangesCalls[0].OutPath)
		require.Len(t, f.engine.FixCalls, 1)
		assert.Equal(t, filepath.Join(baseDir, "patch-fix-v1.json"), f.engine.FixCalls[0].OutPath)
		require.Len(t, f.engine.ApplyCalls, 1)
		assert.Equal(t, filepath.Join(baseDir, "20250103T000000Z-v2-fix.json"), f.engine.ApplyCalls[0].OutPath)
		assert.Equal(t, filepath.Join(baseDir, "patch-fix-v1.json"), f.engine.ApplyCalls[0].InputB)
		require.Len(t, f.changelog.Entries, 1)
		assert.Equal(t, "v2", f.changelog.Entries[0].Version)
		assert.Equal(t, "two fields changed", f.changelog.Entries[0].Text)
		require.Len(t, f.notifier.Payloads, 1)
		assert.Contains(t, f.notifier.Payloads[0].Text, "v2")
		assert.Contains(t, f.notifier.Payloads[0].Text, "two fields changed")
	})

	t.Run("should skip the fix steps when no fix overlay exists", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, false))
		settings := entitybuilders.NewSettingsBuilder().WithBaseDir(baseDir).BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		assert.Len(t, f.engine.ChangesCalls, 1)
		assert.Empty(t, f.engine.FixCalls)
		assert.Empty(t, f.engine.ApplyCalls)
	})

	t.Run("should skip the summarizer when no endpoint is configured", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, false))
		settings := entitybuilders.NewSettingsBuilder().WithBaseDir(baseDir).BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		assert.Empty(t, f.summarizer.Inputs)
		require.Len(t, f.changelog.Entries, 1)
		assert.Empty(t, f.changelog.Entries[0].Text)
	})

	t.Run("should skip the notifier when no webhook is configured", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, false))
		settings := entitybuilders.NewSettingsBuilder().WithBaseDir(baseDir).BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		assert.Empty(t, f.notifier.Payloads)
	})

	t.Run("should abort with MissingArtifactError and notify the webhook", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, false))
		settings := entitybuilders.NewSettingsBuilder().
			WithBaseDir(baseDir).
			WithVersions("v1", "v3").
			WithWebhook("https://hooks.example.com/T123", "").
			BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		var missing *entities.MissingArtifactError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "v3", missing.Version)
		assert.Empty(t, f.engine.ChangesCalls)
		assert.Empty(t, f.changelog.Entries)
		require.Len(t, f.notifier.Payloads, 1)
		assert.Contains(t, f.notifier.Payloads[0].Text, "Pipeline failed")
	})

	t.Run("should not send the failure notification in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, false))
		settings := entitybuilders.NewSettingsBuilder().
			WithBaseDir(baseDir).
			WithVersions("v1", "v3").
			WithWebhook("https://hooks.example.com/T123", "").
			WithDryRun().
			BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		require.Error(t, err)
		assert.Empty(t, f.notifier.Payloads)
	})

	t.Run("should abort when the engine cannot be started", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, false))
		f.engine.ChangesErr = &entities.EngineInvocationError{Bin: "jd"}
		settings := entitybuilders.NewSettingsBuilder().WithBaseDir(baseDir).BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		var invocation *entities.EngineInvocationError
		require.ErrorAs(t, err, &invocation)
		assert.Empty(t, f.changelog.Entries)
	})

	t.Run("should degrade a summarizer failure into fallback changelog text", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, false))
		f.summarizer.Text = ""
		f.summarizer.Err = assert.AnError
		settings := entitybuilders.NewSettingsBuilder().
			WithBaseDir(baseDir).
			WithLLMEndpoint("https://llm.example.com/v1").
			BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		require.Len(t, f.changelog.Entries, 1)
		assert.Contains(t, f.changelog.Entries[0].Text, "Failed to generate human-readable text")
	})

	t.Run("should swallow changelog and notification failures", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, false))
		f.changelog.Err = assert.AnError
		f.notifier.Err = assert.AnError
		settings := entitybuilders.NewSettingsBuilder().
			WithBaseDir(baseDir).
			WithWebhook("https://hooks.example.com/T123", "").
			BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		assert.Len(t, f.changelog.Entries, 1)
		assert.Len(t, f.notifier.Payloads, 1)
	})

	t.Run("should feed the patch artifact content to the summarizer", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, false))
		patchPath := filepath.Join(baseDir, "patch-changes-v1-v2.json")
		patchContent := `[{"op":"replace","path":"/a","value":1}]`
		require.NoError(t, os.WriteFile(patchPath, []byte(patchContent), 0o644))
		settings := entitybuilders.NewSettingsBuilder().
			WithBaseDir(baseDir).
			WithLLMEndpoint("https://llm.example.com/v1").
			BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		require.Len(t, f.summarizer.Inputs, 1)
		assert.Equal(t, patchContent, f.summarizer.Inputs[0])
	})

	t.Run("should write the summary file next to the target snapshot", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, false))
		settings := entitybuilders.NewSettingsBuilder().
			WithBaseDir(baseDir).
			WithLLMEndpoint("https://llm.example.com/v1").
			BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		summaryPath := filepath.Join(baseDir, "20250103T000000Z-v2-changes.md")
		data, readErr := os.ReadFile(summaryPath)
		require.NoError(t, readErr)
		assert.Contains(t, string(data), "two fields changed")
	})

	t.Run("should not write the summary file in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		baseDir := t.TempDir()
		f := newFixture(snapshotSets(baseDir, true))
		settings := entitybuilders.NewSettingsBuilder().
			WithBaseDir(baseDir).
			WithLLMEndpoint("https://llm.example.com/v1").
			WithDryRun().
			BuildSettings()

		// when
		err := f.command.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		entries, readErr := os.ReadDir(baseDir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})
}
