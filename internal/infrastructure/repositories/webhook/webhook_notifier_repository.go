package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
	"github.com/patchtrail/patchtrail/internal/domain/repositories"
)

const (
	retryMax     = 2
	retryWaitMin = 200 * time.Millisecond
	retryWaitMax = 2 * time.Second
)

// WebhookNotifierRepository implements repositories.NotifierRepository with
// a single JSON POST to the configured webhook URL.
type WebhookNotifierRepository struct {
	client *retryablehttp.Client
}

// NewWebhookNotifierRepository creates a new webhook notifier.
func NewWebhookNotifierRepository() repositories.NotifierRepository {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.Logger = nil

	return &WebhookNotifierRepository{client: client}
}

// Post sends the payload as a JSON body, attaching the bearer token when
// configured. In dry-run mode it only logs the payload.
func (it *WebhookNotifierRepository) Post(
	ctx context.Context, settings *entities.Settings, payload entities.NotificationPayload,
) error {
	if settings.DryRun {
		logger.Infof("[dry-run] would post to %s:\n%s", settings.WebhookURL, payload.Text)
		return nil
	}

	body, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", marshalErr)
	}

	req, reqErr := retryablehttp.NewRequestWithContext(
		ctx, http.MethodPost, settings.WebhookURL, bytes.NewReader(body),
	)
	if reqErr != nil {
		return fmt.Errorf("failed to build webhook request: %w", reqErr)
	}

	req.Header.Set("Content-Type", "application/json")
	if settings.WebhookToken != "" {
		req.Header.Set("Authorization", "Bearer "+settings.WebhookToken)
	}

	resp, doErr := it.client.Do(req)
	if doErr != nil {
		return fmt.Errorf("webhook delivery failed: %w", doErr)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	logger.Debugf("Webhook notified (%d)", resp.StatusCode)
	return nil
}
