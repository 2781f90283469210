// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the four stages of a papers query in order:
// interpret, build, search and fetch with classification.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers-list/internal/logger"
	"github.com/pdiddy/get-papers-list/internal/pubmed"
	"github.com/pdiddy/get-papers-list/internal/query"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// Interpreter turns free text into search parameters.
type Interpreter interface {
	Interpret(ctx context.Context, freeText string) (types.SearchParameters, error)
}

// Fetcher searches PubMed and returns the classified records that have a
// non-academic author.
type Fetcher interface {
	Search(ctx context.Context, term string) ([]string, error)
	FetchDetails(ctx context.Context, ids []string) ([]types.ClassifiedRecord, pubmed.FetchSummary)
}

// Pipeline wires the stages for one run. Stage tracing goes to the logger
// carried by the context passed to Run.
type Pipeline struct {
	Interpreter Interpreter
	Fetcher     Fetcher

	// DryRun stops after the query is built.
	DryRun bool
}

// Result carries the output of every stage that ran.
type Result struct {
	Params  types.SearchParameters
	Query   string
	IDs     []string
	Records []types.ClassifiedRecord
	Summary pubmed.FetchSummary
}

// Run executes the pipeline. Interpretation and search failures end the
// run; per-record fetch failures are absorbed by the Fetcher.
func (p *Pipeline) Run(ctx context.Context, freeText string) (Result, error) {
	log := logger.FromContext(ctx)
	var res Result

	log.Debug("query received", zap.String("query", freeText))
	params, err := p.Interpreter.Interpret(ctx, freeText)
	if err != nil {
		return res, fmt.Errorf("interpreting query: %w", err)
	}
	res.Params = params

	res.Query = query.Build(params)
	log.Debug("constructed PubMed query", zap.String("term", res.Query))
	if p.DryRun {
		return res, nil
	}

	ids, err := p.Fetcher.Search(ctx, res.Query)
	if err != nil {
		return res, fmt.Errorf("searching PubMed: %w", err)
	}
	res.IDs = ids
	log.Debug("search complete", zap.Strings("ids", ids))

	if len(ids) == 0 {
		res.Records = []types.ClassifiedRecord{}
		return res, nil
	}

	res.Records, res.Summary = p.Fetcher.FetchDetails(ctx, ids)
	if res.Records == nil {
		res.Records = []types.ClassifiedRecord{}
	}
	log.Debug("total papers fetched",
		zap.Int("kept", res.Summary.Kept),
		zap.Int("dropped", res.Summary.Dropped),
		zap.Int("failed", res.Summary.Failed),
	)
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}
