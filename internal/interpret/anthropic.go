// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interpret

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// anthropicAPIURL is the Messages API endpoint used when BaseURL is empty.
// Package-level var for test substitution.
var anthropicAPIURL = "https://api.anthropic.com/v1/messages"

const defaultAnthropicModel = "claude-3-5-haiku-latest"

// AnthropicBackend calls the Messages API over plain HTTP.
type AnthropicBackend struct {
	APIKey    string
	Model     string
	MaxTokens int
	URL       string
	Client    *http.Client
}

// NewAnthropicBackend builds an AnthropicBackend from cfg. httpClient may be nil.
func NewAnthropicBackend(cfg types.AIConfig, httpClient *http.Client) *AnthropicBackend {
	b := &AnthropicBackend{
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		URL:       cfg.BaseURL,
		Client:    httpClient,
	}
	if b.Model == "" {
		b.Model = defaultAnthropicModel
	}
	if b.MaxTokens <= 0 {
		b.MaxTokens = defaultMaxTokens
	}
	return b
}

// anthropicRequest is the request body for the Messages API.
type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is the response body from the Messages API.
type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Name returns the backend identifier.
func (b *AnthropicBackend) Name() string { return string(types.ProviderAnthropic) }

// Complete posts one user message with the system prompt and returns the
// first text block of the reply.
func (b *AnthropicBackend) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := anthropicRequest{
		Model:     b.Model,
		MaxTokens: b.MaxTokens,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: user}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := b.URL
	if endpoint == "" {
		endpoint = anthropicAPIURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", b.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Anthropic API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("Anthropic API returned %d: %s", resp.StatusCode, string(body))
	}

	var aResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&aResp); err != nil {
		return "", fmt.Errorf("decoding Anthropic response: %w", err)
	}

	for _, block := range aResp.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", fmt.Errorf("no text content in Anthropic API response")
}
