// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interpret

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// NewBackend returns the Backend selected by cfg.Provider. An empty
// provider selects OpenAI. The provider's API key must be set.
func NewBackend(ctx context.Context, cfg types.AIConfig, httpClient *http.Client) (Backend, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = types.ProviderOpenAI
	}

	switch provider {
	case types.ProviderOpenAI, types.ProviderGemini, types.ProviderAnthropic:
	default:
		return nil, fmt.Errorf("unknown interpreter provider %q (want openai, gemini, or anthropic)", provider)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for interpreter provider %q", provider)
	}

	switch provider {
	case types.ProviderGemini:
		return NewGeminiBackend(ctx, cfg, httpClient)
	case types.ProviderAnthropic:
		return NewAnthropicBackend(cfg, httpClient), nil
	default:
		return NewOpenAIBackend(cfg, httpClient), nil
	}
}
