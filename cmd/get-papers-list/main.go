// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the get-papers-list CLI. It turns a
// free-text research question into a PubMed search and lists the papers
// that have at least one author with a company affiliation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/get-papers-list/internal/config"
	"github.com/pdiddy/get-papers-list/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir holds one file per credential.
const secretsDir = ".secrets/"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Store

// rootCmd runs a single query.
var rootCmd = &cobra.Command{
	Use:   "get-papers-list QUERY",
	Short: "List PubMed papers with pharmaceutical or biotech authors",
	Long: `get-papers-list sends a free-text research question to a language model,
which extracts keywords, a publication year, and an optional affiliation type.
The resulting query is run against PubMed; each returned record is fetched and
kept when at least one author has a non-academic affiliation.

Results are printed to stdout, or written to --file. The output format follows
the file extension (.csv, .tsv, .xlsx, .json, .yaml, .db) unless --format is
given.`,
	Example: `  get-papers-list "AI in healthcare papers from 2020 by biotech companies"
  get-papers-list -f papers.csv "CRISPR therapies published in 2023"
  get-papers-list --provider gemini --dry-run "cancer immunotherapy 2022"`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secretsDir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 && viper.GetBool("debug") {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
	RunE: runQuery,
}

func init() {
	cobra.OnInitialize(initConfig)

	config.UserAgent = "get-papers-list/" + version
	config.SetDefaults(viper.GetViper())

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./get-papers-list.yaml or ~/.config/get-papers-list/get-papers-list.yaml)")

	flags := rootCmd.Flags()
	flags.StringP("file", "f", "", "output file name; results are printed to the console when omitted")
	flags.BoolP("debug", "d", false, "print debug information during execution")
	flags.String("format", "", "output format: csv, tsv, xlsx, json, yaml, or sqlite (default: from file extension)")
	flags.String("provider", "", "language model provider: openai, gemini, or anthropic")
	flags.String("model", "", "language model identifier")
	flags.Int("max-results", config.DefaultMaxResults, "maximum number of PubMed ids to fetch")
	flags.String("metrics-file", "", "write run metrics in Prometheus text format to this file")
	flags.Bool("dry-run", false, "print the constructed PubMed query and exit without searching")

	bind := map[string]string{
		"output.file":          "file",
		"debug":                "debug",
		"output.format":        "format",
		"interpreter.provider": "provider",
		"interpreter.model":    "model",
		"pubmed.max_results":   "max-results",
		"metrics_file":         "metrics-file",
	}
	for key, flag := range bind {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("get-papers-list")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "get-papers-list"))
		}
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("debug") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
