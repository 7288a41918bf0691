//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/patchtrail/patchtrail/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	baseDir       string
	fromVersion   string
	toVersion     string
	dryRun        bool
	llmEndpoint   string
	llmModel      string
	webhookURL    string
	webhookToken  string
	changelogPath string
	engineBin     string
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		baseDir:       ".",
		fromVersion:   "v1",
		toVersion:     "v2",
		llmModel:      entities.DefaultLLMModel,
		changelogPath: entities.DefaultChangelogPath,
		engineBin:     entities.DefaultEngineBin,
	}
}

// WithBaseDir sets the base directory.
func (b *SettingsBuilder) WithBaseDir(dir string) *SettingsBuilder {
	b.baseDir = dir
	return b
}

// WithVersions sets the source and target version labels.
func (b *SettingsBuilder) WithVersions(from, to string) *SettingsBuilder {
	b.fromVersion = from
	b.toVersion = to
	return b
}

// WithDryRun enables dry-run mode.
func (b *SettingsBuilder) WithDryRun() *SettingsBuilder {
	b.dryRun = true
	return b
}

// WithLLMEndpoint sets the LLM endpoint.
func (b *SettingsBuilder) WithLLMEndpoint(endpoint string) *SettingsBuilder {
	b.llmEndpoint = endpoint
	return b
}

// WithWebhook sets the webhook URL and token.
func (b *SettingsBuilder) WithWebhook(url, token string) *SettingsBuilder {
	b.webhookURL = url
	b.webhookToken = token
	return b
}

// WithChangelogPath sets the changelog file path.
func (b *SettingsBuilder) WithChangelogPath(path string) *SettingsBuilder {
	b.changelogPath = path
	return b
}

// WithEngineBin sets the diff/patch binary.
func (b *SettingsBuilder) WithEngineBin(bin string) *SettingsBuilder {
	b.engineBin = bin
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	return &entities.Settings{
		BaseDir:       b.baseDir,
		FromVersion:   b.fromVersion,
		ToVersion:     b.toVersion,
		DryRun:        b.dryRun,
		LLMEndpoint:   b.llmEndpoint,
		LLMModel:      b.llmModel,
		WebhookURL:    b.webhookURL,
		WebhookToken:  b.webhookToken,
		ChangelogPath: b.changelogPath,
		EngineBin:     b.engineBin,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.baseDir = "."
	b.fromVersion = "v1"
	b.toVersion = "v2"
	b.dryRun = false
	b.llmEndpoint = ""
	b.llmModel = entities.DefaultLLMModel
	b.webhookURL = ""
	b.webhookToken = ""
	b.changelogPath = entities.DefaultChangelogPath
	b.engineBin = entities.DefaultEngineBin
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		baseDir:       b.baseDir,
		fromVersion:   b.fromVersion,
		toVersion:     b.toVersion,
		dryRun:        b.dryRun,
		llmEndpoint:   b.llmEndpoint,
		llmModel:      b.llmModel,
		webhookURL:    b.webhookURL,
		webhookToken:  b.webhookToken,
		changelogPath: b.changelogPath,
		engineBin:     b.engineBin,
	}
}
