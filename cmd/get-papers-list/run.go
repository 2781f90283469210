// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/get-papers-list/internal/classify"
	"github.com/pdiddy/get-papers-list/internal/config"
	"github.com/pdiddy/get-papers-list/internal/httputil"
	"github.com/pdiddy/get-papers-list/internal/interpret"
	"github.com/pdiddy/get-papers-list/internal/logger"
	"github.com/pdiddy/get-papers-list/internal/metrics"
	"github.com/pdiddy/get-papers-list/internal/pipeline"
	"github.com/pdiddy/get-papers-list/internal/pubmed"
	"github.com/pdiddy/get-papers-list/internal/report"
)

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	config.ApplySecrets(&cfg, loadedSecrets)

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Resolve the output format before any network call.
	var format report.Format
	if cfg.Output.File != "" {
		if format, err = report.ResolveFormat(cfg.Output.File, cfg.Output.Format); err != nil {
			return err
		}
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	log = log.With(zap.String("run_id", uuid.NewString()))
	ctx := logger.WithContext(cmd.Context(), log)

	rec := metrics.New()
	if cfg.MetricsFile != "" {
		defer func() {
			if werr := rec.WriteTextfile(cfg.MetricsFile); werr != nil {
				log.Warn("could not write metrics file", zap.String("path", cfg.MetricsFile), zap.Error(werr))
			}
		}()
	}

	backend, err := interpret.NewBackend(ctx, cfg.Interpreter, httputil.NewClient(cfg.Interpreter.HTTPConfig))
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Interpreter: interpret.New(backend, log, rec),
		Fetcher: pubmed.NewClient(
			cfg.PubMed,
			httputil.NewClient(cfg.PubMed.HTTPConfig),
			classify.New(cfg.Classifier.Keywords),
			log,
			rec,
		),
		DryRun: dryRun,
	}

	res, err := p.Run(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintln(out, res.Query)
		return nil
	}

	if cfg.Output.File == "" {
		report.PrintRecords(out, res.Records)
		return nil
	}

	log.Debug("saving papers", zap.String("path", cfg.Output.File), zap.String("format", string(format)))
	if err := report.WriteFile(cfg.Output.File, format, res.Records); err != nil {
		return err
	}
	report.PrintSaved(out, cfg.Output.File)
	return nil
}
