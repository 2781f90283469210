// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interpret

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiBackend calls the Gemini API with a JSON response schema.
type GeminiBackend struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

// NewGeminiBackend builds a GeminiBackend from cfg. httpClient may be nil.
func NewGeminiBackend(ctx context.Context, cfg types.AIConfig, httpClient *http.Client) (*GeminiBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &GeminiBackend{
		client:    client,
		model:     model,
		maxTokens: int32(maxTokens),
	}, nil
}

// Name returns the backend identifier.
func (b *GeminiBackend) Name() string { return string(types.ProviderGemini) }

// Complete sends the query with the system prompt as system instruction.
func (b *GeminiBackend) Complete(ctx context.Context, system, user string) (string, error) {
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: user}}},
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		MaxOutputTokens:   b.maxTokens,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    parametersSchema(),
	})
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func parametersSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"keywords":         {Type: genai.TypeString, Description: "Key search terms as one phrase."},
			"year":             {Type: genai.TypeString, Description: "Publication year as YYYY."},
			"affiliation_type": {Type: genai.TypeString, Description: "Type of author affiliation, or empty."},
		},
		Required: []string{"keywords", "year", "affiliation_type"},
	}
}
