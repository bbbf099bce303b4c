package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"apidocgen/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.LLMConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	})
}

func TestGenerate_SendsChatCompletionsRequest(t *testing.T) {
	var captured chatRequest
	var auth, path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"openapi: 3.0.0"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Generate(context.Background(), "document this", 10000)
	require.NoError(t, err)

	assert.Equal(t, "openapi: 3.0.0", text)
	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.Equal(t, 10000, captured.MaxTokens)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Equal(t, "document this", captured.Messages[0].Content)
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	client := NewClient(config.LLMConfig{BaseURL: "http://127.0.0.1:1", Model: "gpt-4o-mini"})

	_, err := client.Generate(context.Background(), "prompt", 100)
	require.Error(t, err)

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "API key")
}

func TestGenerate_Non200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"insufficient quota"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Generate(context.Background(), "prompt", 100)
	require.Error(t, err)

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Contains(t, se.Message, "insufficient quota")
}

func TestGenerate_APIErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"model not found","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Generate(context.Background(), "prompt", 100)
	require.Error(t, err)

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Message, "model not found")
}

func TestGenerate_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Generate(context.Background(), "prompt", 100)
	require.Error(t, err)
	assert.True(t, IsServiceError(err))
}

func TestGenerate_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	_, err := newTestClient(server.URL).Generate(context.Background(), "prompt", 100)
	require.Error(t, err)

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.NotNil(t, se.Err)
}

func TestGenerate_SingleAttempt(t *testing.T) {
	// One failed call aborts the run; the client must not retry.
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Generate(context.Background(), "prompt", 100)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestIsServiceError(t *testing.T) {
	assert.True(t, IsServiceError(&ServiceError{Message: "boom"}))
	assert.False(t, IsServiceError(context.Canceled))
	assert.False(t, IsServiceError(nil))
}
