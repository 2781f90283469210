// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the run configuration from viper and fills
// credentials from the secrets store.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/get-papers-list/internal/classify"
	"github.com/pdiddy/get-papers-list/internal/secrets"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// EnvPrefix prefixes every environment override, e.g.
// GET_PAPERS_PUBMED_MAX_RESULTS.
const EnvPrefix = "GET_PAPERS"

// Default values.
const (
	DefaultPubMedBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	DefaultDatabase      = "pubmed"
	DefaultMaxResults    = 30
	DefaultTool          = "get-papers-list"
	DefaultTimeout       = 30 * time.Second
	DefaultMaxTokens     = 200
)

// UserAgent is sent on every outbound request.
var UserAgent = "get-papers-list/dev"

// SetDefaults registers every configuration key with its default. Keys
// must be registered for AutomaticEnv to reach them through Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("metrics_file", "")

	v.SetDefault("pubmed.base_url", DefaultPubMedBaseURL)
	v.SetDefault("pubmed.database", DefaultDatabase)
	v.SetDefault("pubmed.max_results", DefaultMaxResults)
	v.SetDefault("pubmed.api_key", "")
	v.SetDefault("pubmed.tool", DefaultTool)
	v.SetDefault("pubmed.email", "")
	v.SetDefault("pubmed.timeout", DefaultTimeout)
	v.SetDefault("pubmed.user_agent", UserAgent)

	v.SetDefault("interpreter.provider", string(types.ProviderOpenAI))
	v.SetDefault("interpreter.model", "")
	v.SetDefault("interpreter.api_key", "")
	v.SetDefault("interpreter.base_url", "")
	v.SetDefault("interpreter.max_tokens", DefaultMaxTokens)
	v.SetDefault("interpreter.timeout", DefaultTimeout)
	v.SetDefault("interpreter.user_agent", UserAgent)

	v.SetDefault("classifier.keywords", classify.DefaultKeywords)

	v.SetDefault("output.file", "")
	v.SetDefault("output.format", "")
}

// BindEnv maps GET_PAPERS_<SECTION>_<KEY> environment variables onto
// dotted configuration keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and checks the values that would make a
// run fail later.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}

	cfg.Interpreter.Provider = types.Provider(strings.ToLower(strings.TrimSpace(string(cfg.Interpreter.Provider))))
	if cfg.Interpreter.Provider == "" {
		cfg.Interpreter.Provider = types.ProviderOpenAI
	}
	switch cfg.Interpreter.Provider {
	case types.ProviderOpenAI, types.ProviderGemini, types.ProviderAnthropic:
	default:
		return types.Config{}, fmt.Errorf("interpreter.provider: unknown provider %q", cfg.Interpreter.Provider)
	}

	if cfg.PubMed.MaxResults <= 0 {
		return types.Config{}, fmt.Errorf("pubmed.max_results must be positive, got %d", cfg.PubMed.MaxResults)
	}
	if cfg.PubMed.BaseURL == "" {
		cfg.PubMed.BaseURL = DefaultPubMedBaseURL
	}
	if cfg.PubMed.Database == "" {
		cfg.PubMed.Database = DefaultDatabase
	}

	return cfg, nil
}

// ApplySecrets fills credentials the configuration leaves empty. The
// interpreter key is chosen by provider.
func ApplySecrets(cfg *types.Config, s secrets.Store) {
	var key string
	switch cfg.Interpreter.Provider {
	case types.ProviderGemini:
		key = secrets.GeminiAPIKey
	case types.ProviderAnthropic:
		key = secrets.AnthropicAPIKey
	default:
		key = secrets.OpenAIAPIKey
	}
	cfg.Interpreter.APIKey = s.Value(key, cfg.Interpreter.APIKey)
	cfg.PubMed.APIKey = s.Value(secrets.NCBIAPIKey, cfg.PubMed.APIKey)
	cfg.PubMed.Email = s.Value(secrets.NCBIEmail, cfg.PubMed.Email)
}
