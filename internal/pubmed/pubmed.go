// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed searches PubMed through the NCBI E-utilities and turns
// fetched records into classified report rows.
package pubmed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers-list/internal/classify"
	"github.com/pdiddy/get-papers-list/internal/httputil"
	"github.com/pdiddy/get-papers-list/internal/metrics"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// eutilsBase is the E-utilities root used when the config leaves BaseURL
// empty. Declared as a var so tests can substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	defaultDatabase   = "pubmed"
	defaultMaxResults = 30
)

// ErrNotFound reports an efetch response that carries no usable article:
// the id is unknown, restricted, or not a journal article.
var ErrNotFound = errors.New("record not found or restricted")

// Client issues esearch and efetch calls sequentially.
type Client struct {
	cfg        types.PubMedConfig
	http       *http.Client
	classifier *classify.Classifier
	logger     *zap.Logger
	metrics    *metrics.Recorder
}

// NewClient builds a Client. A nil logger discards output; a nil recorder
// records nothing.
func NewClient(cfg types.PubMedConfig, httpClient *http.Client, classifier *classify.Classifier, logger *zap.Logger, rec *metrics.Recorder) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = eutilsBase
	}
	if cfg.Database == "" {
		cfg.Database = defaultDatabase
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if classifier == nil {
		classifier = classify.New(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		http:       httpClient,
		classifier: classifier,
		logger:     logger,
		metrics:    rec,
	}
}

// FetchSummary holds counts from a FetchDetails run.
type FetchSummary struct {
	Kept    int
	Dropped int
	Failed  int
}

// Total returns the number of ids processed.
func (s FetchSummary) Total() int {
	return s.Kept + s.Dropped + s.Failed
}

// Search runs esearch for term and returns the matching PubMed ids. Any
// failure is returned to the caller; there is no partial result.
func (c *Client) Search(ctx context.Context, term string) ([]string, error) {
	c.logger.Debug("searching PubMed", zap.String("term", term))

	params := c.baseParams()
	params.Set("term", term)
	params.Set("retmax", strconv.Itoa(c.cfg.MaxResults))

	start := time.Now()
	body, err := httputil.Get(ctx, c.http, c.cfg.BaseURL+"/esearch.fcgi", params, c.cfg.UserAgent)
	c.metrics.ObserveDuration("esearch", start)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PubMed API: %w", err)
	}

	var res eSearchResult
	if err := decodeXML(body, &res); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	if res.Error != "" {
		return nil, fmt.Errorf("esearch error: %s", res.Error)
	}

	c.logger.Debug("esearch response received",
		zap.String("count", res.Count),
		zap.Strings("ids", res.IDs),
		zap.Strings("phrases_not_found", res.Errors),
	)
	c.metrics.ObserveIDs(len(res.IDs))

	if res.IDs == nil {
		return []string{}, nil
	}
	return res.IDs, nil
}

// FetchDetails fetches each id in turn and returns the records with at
// least one non-academic author, in id order. A failing id is logged and
// skipped; records with only academic authors are dropped. It stops early
// only when ctx is done.
func (c *Client) FetchDetails(ctx context.Context, ids []string) ([]types.ClassifiedRecord, FetchSummary) {
	var (
		records []types.ClassifiedRecord
		summary FetchSummary
	)

	for _, id := range ids {
		if ctx.Err() != nil {
			c.logger.Warn("fetch interrupted", zap.Error(ctx.Err()), zap.Int("remaining", len(ids)-summary.Total()))
			break
		}

		c.logger.Debug("fetching details", zap.String("pmid", id))

		rec, kept, err := c.fetchOne(ctx, id)
		if err != nil {
			c.logFailure(id, err)
			summary.Failed++
			continue
		}
		c.metrics.ObserveRecord(kept)
		if !kept {
			c.logger.Debug("no non-academic authors, dropping", zap.String("pmid", id))
			summary.Dropped++
			continue
		}
		records = append(records, rec)
		summary.Kept++
	}

	c.logger.Debug("fetch complete",
		zap.Int("kept", summary.Kept),
		zap.Int("dropped", summary.Dropped),
		zap.Int("failed", summary.Failed),
	)
	return records, summary
}

// fetchOne runs efetch for a single id and classifies its authors.
func (c *Client) fetchOne(ctx context.Context, id string) (types.ClassifiedRecord, bool, error) {
	params := c.baseParams()
	params.Set("id", id)

	start := time.Now()
	body, err := httputil.Get(ctx, c.http, c.cfg.BaseURL+"/efetch.fcgi", params, c.cfg.UserAgent)
	c.metrics.ObserveDuration("efetch", start)
	if err != nil {
		return types.ClassifiedRecord{}, false, err
	}

	var set pubmedArticleSet
	if err := decodeXML(body, &set); err != nil {
		return types.ClassifiedRecord{}, false, &decodeError{err: err}
	}
	if len(set.Articles) == 0 {
		return types.ClassifiedRecord{}, false, ErrNotFound
	}

	art := set.Articles[0].Citation.Article
	if art == nil {
		return types.ClassifiedRecord{}, false, ErrNotFound
	}

	res := c.classifier.Classify(classifierInputs(art.Authors))
	if res.MissingAffiliation > 0 {
		c.logger.Debug("authors without affiliation info",
			zap.String("pmid", id),
			zap.Int("count", res.MissingAffiliation),
		)
	}
	if !res.NonAcademic {
		return types.ClassifiedRecord{}, false, nil
	}
	// The title is only required for records that are kept.
	if art.Title == nil {
		return types.ClassifiedRecord{}, false, ErrNotFound
	}

	return types.NewClassifiedRecord(id, art.Title.collapsed(), art.PubDate.date(), res.Authors), true, nil
}

func (c *Client) baseParams() url.Values {
	params := url.Values{
		"db":      {c.cfg.Database},
		"retmode": {"xml"},
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	if c.cfg.Tool != "" {
		params.Set("tool", c.cfg.Tool)
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	return params
}

// decodeError marks a response body that was not valid efetch XML.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "parsing efetch response: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// logFailure reports a skipped id at warn level, classified by cause.
func (c *Client) logFailure(id string, err error) {
	var (
		statusErr *httputil.StatusError
		decErr    *decodeError
	)
	switch {
	case errors.As(err, &statusErr):
		c.metrics.ObserveFailure(metrics.ReasonHTTP)
		c.logger.Warn("HTTP error occurred for PubMed ID", zap.String("pmid", id), zap.Int("status", statusErr.StatusCode), zap.Error(err))
	case errors.Is(err, ErrNotFound):
		c.metrics.ObserveFailure(metrics.ReasonNotFound)
		c.logger.Warn("PubMed ID not found or restricted", zap.String("pmid", id))
	case errors.As(err, &decErr):
		c.metrics.ObserveFailure(metrics.ReasonDecode)
		c.logger.Warn("malformed record for PubMed ID", zap.String("pmid", id), zap.Error(err))
	default:
		c.metrics.ObserveFailure(metrics.ReasonTransport)
		c.logger.Warn("request error occurred for PubMed ID", zap.String("pmid", id), zap.Error(err))
	}
}
