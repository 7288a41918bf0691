package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/patchtrail/patchtrail/internal/domain/commands"
	"github.com/patchtrail/patchtrail/internal/domain/entities"
)

// ProcessController handles the "process" subcommand.
type ProcessController struct {
	command commands.Process
}

// NewProcessController creates a new ProcessController.
func NewProcessController(command commands.Process) *ProcessController {
	return &ProcessController{command: command}
}

// GetBind returns the Cobra command metadata for the process controller.
func (it *ProcessController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "process <from-version> <to-version>",
		Short: "Process the changes between two snapshot versions",
		Long: `Process the changes between two timestamped JSON snapshot versions.

Locates the snapshot files for both versions under the base directory,
computes a JSON Patch describing what changed, optionally forward-applies
a fix overlay found for the source version, generates a human-readable
summary via an LLM endpoint (when configured), appends an entry to the
changelog, and posts a notification to a webhook (when configured).`,
	}
}

// AddFlags registers the process-specific flags on the Cobra command.
func (it *ProcessController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("base-dir", ".",
		"Directory scanned recursively for snapshot files")
	cmd.Flags().String("llm-endpoint", "",
		"OpenAI-compatible endpoint for summary generation (env PATCHTRAIL_LLM_ENDPOINT)")
	cmd.Flags().String("llm-api-key", "",
		"API key for the LLM endpoint (env PATCHTRAIL_LLM_API_KEY)")
	cmd.Flags().String("llm-model", "",
		fmt.Sprintf("Model for summary generation (default %q)", entities.DefaultLLMModel))
	cmd.Flags().String("webhook-url", "",
		"Webhook URL notified on completion and failure (env PATCHTRAIL_WEBHOOK_URL)")
	cmd.Flags().String("webhook-token", "",
		"Bearer token for the webhook (env PATCHTRAIL_WEBHOOK_TOKEN)")
	cmd.Flags().String("changelog", "",
		fmt.Sprintf("Changelog file to update (default %q)", entities.DefaultChangelogPath))
	cmd.Flags().String("engine", "",
		fmt.Sprintf("Diff/patch binary to invoke (default %q)", entities.DefaultEngineBin))
}

// Execute assembles the settings from flags, environment and the optional
// config file, then runs the pipeline.
func (it *ProcessController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if len(args) != 2 {
		return fmt.Errorf("expected <from-version> <to-version>, got %d argument(s)", len(args))
	}

	baseDir, _ := cmd.Flags().GetString("base-dir")
	llmEndpoint, _ := cmd.Flags().GetString("llm-endpoint")
	llmAPIKey, _ := cmd.Flags().GetString("llm-api-key")
	llmModel, _ := cmd.Flags().GetString("llm-model")
	webhookURL, _ := cmd.Flags().GetString("webhook-url")
	webhookToken, _ := cmd.Flags().GetString("webhook-token")
	changelogPath, _ := cmd.Flags().GetString("changelog")
	engineBin, _ := cmd.Flags().GetString("engine")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	settings := &entities.Settings{
		BaseDir:       baseDir,
		FromVersion:   args[0],
		ToVersion:     args[1],
		DryRun:        dryRun,
		Verbose:       verbose,
		LLMEndpoint:   llmEndpoint,
		LLMAPIKey:     llmAPIKey,
		LLMModel:      llmModel,
		WebhookURL:    webhookURL,
		WebhookToken:  webhookToken,
		ChangelogPath: changelogPath,
		EngineBin:     engineBin,
	}
	settings.Resolve(it.loadFileSettings())

	return it.command.Execute(ctx, settings)
}

// loadFileSettings discovers and parses the optional config file. A missing
// file is normal; a broken one is only worth a warning.
func (it *ProcessController) loadFileSettings() *entities.FileSettings {
	path, findErr := entities.FindConfigFile()
	if findErr != nil {
		return nil
	}

	logger.Debugf("Using config file: %s", path)

	fs, loadErr := entities.LoadFileSettings(path)
	if loadErr != nil {
		logger.Warnf("Ignoring config file: %v", loadErr)
		return nil
	}
	return fs
}
