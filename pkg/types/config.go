// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "get-papers-list/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// PubMedConfig holds settings for the NCBI E-utilities endpoints.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the E-utilities root, e.g. "https://eutils.ncbi.nlm.nih.gov/entrez/eutils".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Database is the Entrez database name (default "pubmed").
	Database string `json:"database" yaml:"database" mapstructure:"database"`

	// MaxResults is the retmax sent to esearch (default 30).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// APIKey is the optional NCBI API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Tool and Email identify the caller to NCBI.
	Tool  string `json:"tool,omitempty" yaml:"tool,omitempty" mapstructure:"tool"`
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
}

// Provider names a language model backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// AIConfig holds settings for the language model that interprets queries.
type AIConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the backend: openai, gemini, or anthropic.
	Provider Provider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier (e.g. "gpt-3.5-turbo").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint (OpenAI-compatible gateways, tests).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// MaxTokens caps the completion length (default 200).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ClassifierConfig holds the affiliation keyword list.
type ClassifierConfig struct {
	// Keywords are matched case-insensitively as substrings of an
	// author's affiliation text.
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}

// OutputConfig selects where and how classified records are written.
type OutputConfig struct {
	// File is the output path. Empty prints to stdout.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`

	// Format overrides the format inferred from File's extension.
	Format string `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format"`
}

// Config groups the settings for one run.
type Config struct {
	Debug       bool             `json:"debug" yaml:"debug" mapstructure:"debug"`
	MetricsFile string           `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" mapstructure:"metrics_file"`
	PubMed      PubMedConfig     `json:"pubmed" yaml:"pubmed" mapstructure:"pubmed"`
	Interpreter AIConfig         `json:"interpreter" yaml:"interpreter" mapstructure:"interpreter"`
	Classifier  ClassifierConfig `json:"classifier" yaml:"classifier" mapstructure:"classifier"`
	Output      OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
}
