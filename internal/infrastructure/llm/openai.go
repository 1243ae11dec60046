// Package llm implements the model client against OpenAI-compatible
// responses endpoints.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"PaperReview/internal/config"
	"PaperReview/internal/ports"
)

// Client talks to an OpenAI-compatible responses API.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

var _ ports.ModelClient = (*Client)(nil)

// New builds a client from configuration. Every invocation carries the
// configured timeout so a stuck call cannot occupy a worker forever.
func New(cfg config.OpenAIConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Submit posts one request and returns the response's text payload.
func (c *Client) Submit(ctx context.Context, model, instructions, input string, maxOutputTokens int) (string, error) {
	if c.apiKey == "" || c.endpoint == "" {
		return "", fmt.Errorf("model client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model":             model,
		"instructions":      instructions,
		"input":             input,
		"max_output_tokens": maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal model payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit model request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("model error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	return decodeOutputText(resp.Body)
}

// decodeOutputText pulls the text payload out of a responses-API body,
// preferring the flattened output_text field when present.
func decodeOutputText(r io.Reader) (string, error) {
	var payload struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}
	if payload.Error != nil {
		return "", fmt.Errorf("model returned error: %s", payload.Error.Message)
	}
	if payload.OutputText != "" {
		return payload.OutputText, nil
	}

	var b strings.Builder
	for _, item := range payload.Output {
		for _, content := range item.Content {
			if content.Type == "output_text" {
				b.WriteString(content.Text)
			}
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("model response has no text output")
	}
	return b.String(), nil
}
