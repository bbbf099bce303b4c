// Package llm is the text-generation service boundary: a prompt goes in, the
// model's raw text comes out. Any OpenAI-compatible chat-completions API
// works; provider, model, and credentials come from the configuration.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"apidocgen/internal/config"
	"apidocgen/internal/logging"
)

// Generator is the capability the pipeline stages depend on.
type Generator interface {
	// Generate sends prompt to the service and returns the generated text.
	// maxTokens bounds the output length. All failures are *ServiceError.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ServiceError reports a failed text-generation call: transport failure,
// non-200 status, API-level error payload, or an empty completion.
type ServiceError struct {
	StatusCode int    // zero when the request never reached the service
	Message    string // provider-supplied detail, when available
	Err        error  // underlying transport error, when any
}

func (e *ServiceError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("text-generation request failed: %v", e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("text-generation request failed with status %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("text-generation request failed: %s", e.Message)
	}
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a client from the LLM section of the configuration.
func NewClient(cfg config.LLMConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate sends a single chat-completions request. There is no retry or
// backoff: the pipeline is run at most twice per invocation and a failure
// aborts the whole run.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", &ServiceError{Message: "API key not configured"}
	}

	// Apply the client timeout as a deadline when the caller supplied none.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	start := time.Now()
	logging.Debug("generating response: model=%s prompt_len=%d max_tokens=%d", c.model, len(prompt), maxTokens)

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ServiceError{Message: "failed to marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", &ServiceError{Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ServiceError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ServiceError{Message: "failed to read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ServiceError{Message: "failed to parse response", Err: err}
	}
	if parsed.Error != nil {
		return "", &ServiceError{Message: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return "", &ServiceError{Message: "no completion returned"}
	}

	text := parsed.Choices[0].Message.Content
	logging.Debug("generation completed in %v response_len=%d", time.Since(start), len(text))
	return text, nil
}

// IsServiceError reports whether err is (or wraps) a ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
