//go:build unit

package webhook_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchtrail/patchtrail/internal/domain/entities"
	"github.com/patchtrail/patchtrail/internal/infrastructure/repositories/webhook"
	"github.com/patchtrail/patchtrail/test/domain/entitybuilders"
)

func TestWebhookNotifierRepositoryPost(t *testing.T) {
	t.Parallel()

	t.Run("should post the payload as a JSON body", func(t *testing.T) {
		t.Parallel()

		// given
		var gotBody []byte
		var gotContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
			gotContentType = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		settings := entitybuilders.NewSettingsBuilder().WithWebhook(server.URL, "").BuildSettings()
		repo := webhook.NewWebhookNotifierRepository()

		// when
		err := repo.Post(context.Background(), settings, entities.NotificationPayload{Text: "v2 processed"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "application/json", gotContentType)
		var payload entities.NotificationPayload
		require.NoError(t, json.Unmarshal(gotBody, &payload))
		assert.Equal(t, "v2 processed", payload.Text)
	})

	t.Run("should attach the bearer token when configured", func(t *testing.T) {
		t.Parallel()

		// given
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		settings := entitybuilders.NewSettingsBuilder().
			WithWebhook(server.URL, "secret-token").
			BuildSettings()
		repo := webhook.NewWebhookNotifierRepository()

		// when
		err := repo.Post(context.Background(), settings, entities.NotificationPayload{Text: "hi"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Bearer secret-token", gotAuth)
	})

	t.Run("should return an error on a non-200 response", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		settings := entitybuilders.NewSettingsBuilder().WithWebhook(server.URL, "").BuildSettings()
		repo := webhook.NewWebhookNotifierRepository()

		// when
		err := repo.Post(context.Background(), settings, entities.NotificationPayload{Text: "hi"})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("should only log the payload in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			calls++
		}))
		defer server.Close()

		settings := entitybuilders.NewSettingsBuilder().
			WithWebhook(server.URL, "").
			WithDryRun().
			BuildSettings()
		repo := webhook.NewWebhookNotifierRepository()

		// when
		err := repo.Post(context.Background(), settings, entities.NotificationPayload{Text: "hi"})

		// then
		require.NoError(t, err)
		assert.Zero(t, calls)
	})
}
