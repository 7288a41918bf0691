package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	logger "github.com/sirupsen/logrus"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
	"github.com/patchtrail/patchtrail/internal/domain/repositories"
)

// DryRunSummary is returned instead of calling the LLM in dry-run mode.
const DryRunSummary = "(dry-run) human-readable summary not generated"

// summaryInstruction is the fixed preamble sent ahead of the patch content.
const summaryInstruction = "The following is a JSON Patch (RFC 6902) document describing " +
	"the changes between two versions of a dataset. Write a short, plain-prose " +
	"summary of what changed, suitable for a changelog entry. Do not repeat the " +
	"patch itself.\n\n"

// LLMSummaryRepository implements repositories.SummaryRepository against any
// OpenAI-compatible chat-completions endpoint.
type LLMSummaryRepository struct{}

// NewLLMSummaryRepository creates a new LLM-backed summarizer.
func NewLLMSummaryRepository() repositories.SummaryRepository {
	return &LLMSummaryRepository{}
}

// Summarize sends the patch content as a single user message and returns the
// first completion's content, trimmed. Any transport or API failure degrades
// into fallback text describing the failure; the error return is always nil
// so summarization can never abort the pipeline.
func (it *LLMSummaryRepository) Summarize(
	ctx context.Context, settings *entities.Settings, patchContent string,
) (string, error) {
	if settings.DryRun {
		logger.Infof("[dry-run] would request summary from %s", settings.LLMEndpoint)
		return DryRunSummary, nil
	}

	cfg := openai.DefaultConfig(settings.LLMAPIKey)
	if settings.LLMEndpoint != "" {
		cfg.BaseURL = settings.LLMEndpoint
	}
	client := openai.NewClientWithConfig(cfg)

	logger.Debugf("Requesting summary from %s (model %s)", cfg.BaseURL, settings.LLMModel)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: settings.LLMModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: summaryInstruction + patchContent,
			},
		},
	})
	if err != nil {
		logger.Errorf("Summary generation failed: %v", err)
		return fmt.Sprintf("Failed to generate human-readable text: %v", err), nil
	}

	if len(resp.Choices) == 0 {
		logger.Error("Summary generation returned no choices")
		return "Failed to generate human-readable text: empty response", nil
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
