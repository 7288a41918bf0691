//go:build unit

package llm_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchtrail/patchtrail/internal/infrastructure/repositories/llm"
	"github.com/patchtrail/patchtrail/test/domain/entitybuilders"
)

func completionResponse(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func TestLLMSummaryRepositorySummarize(t *testing.T) {
	t.Parallel()

	t.Run("should return the first completion trimmed", func(t *testing.T) {
		t.Parallel()

		// given
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(completionResponse("  two fields were renamed  "))
		}))
		defer server.Close()

		settings := entitybuilders.NewSettingsBuilder().WithLLMEndpoint(server.URL).BuildSettings()
		repo := llm.NewLLMSummaryRepository()

		// when
		text, err := repo.Summarize(context.Background(), settings, `[{"op":"replace","path":"/a","value":1}]`)

		// then
		require.NoError(t, err)
		assert.Equal(t, "two fields were renamed", text)
		assert.Contains(t, string(gotBody), `\"op\":\"replace\"`)
	})

	t.Run("should degrade a non-200 response into fallback text", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
		}))
		defer server.Close()

		settings := entitybuilders.NewSettingsBuilder().WithLLMEndpoint(server.URL).BuildSettings()
		repo := llm.NewLLMSummaryRepository()

		// when
		text, err := repo.Summarize(context.Background(), settings, "[]")

		// then
		require.NoError(t, err)
		assert.Contains(t, text, "Failed to generate human-readable text:")
	})

	t.Run("should degrade an empty choice list into fallback text", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`))
		}))
		defer server.Close()

		settings := entitybuilders.NewSettingsBuilder().WithLLMEndpoint(server.URL).BuildSettings()
		repo := llm.NewLLMSummaryRepository()

		// when
		text, err := repo.Summarize(context.Background(), settings, "[]")

		// then
		require.NoError(t, err)
		assert.Contains(t, text, "Failed to generate human-readable text:")
	})

	t.Run("should return the placeholder without a network call in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			calls++
		}))
		defer server.Close()

		settings := entitybuilders.NewSettingsBuilder().
			WithLLMEndpoint(server.URL).
			WithDryRun().
			BuildSettings()
		repo := llm.NewLLMSummaryRepository()

		// when
		text, err := repo.Summarize(context.Background(), settings, "[]")

		// then
		require.NoError(t, err)
		assert.Equal(t, llm.DryRunSummary, text)
		assert.Zero(t, calls)
	})
}
