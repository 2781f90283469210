// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/get-papers-list/internal/classify"
	"github.com/pdiddy/get-papers-list/internal/interpret"
	"github.com/pdiddy/get-papers-list/internal/logger"
	"github.com/pdiddy/get-papers-list/internal/pubmed"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

type stubBackend struct {
	reply string
	err   error
}

func (s stubBackend) Name() string { return "stub" }

func (s stubBackend) Complete(context.Context, string, string) (string, error) {
	return s.reply, s.err
}

const esearchXML = `<?xml version="1.0" encoding="UTF-8" ?>
<eSearchResult><Count>3</Count><RetMax>3</RetMax><RetStart>0</RetStart>
<IdList><Id>9001</Id><Id>9002</Id><Id>9003</Id></IdList>
</eSearchResult>`

func articleXML(pmid, title, affiliation string) string {
	return fmt.Sprintf(`<?xml version="1.0" ?>
<PubmedArticleSet><PubmedArticle><MedlineCitation>
<PMID>%s</PMID>
<Article>
  <Journal><JournalIssue><PubDate><Year>2020</Year><Month>Jan</Month><Day>02</Day></PubDate></JournalIssue></Journal>
  <ArticleTitle>%s</ArticleTitle>
  <AuthorList>
    <Author><LastName>Doe</LastName><ForeName>Ann</ForeName>
      <AffiliationInfo><Affiliation>%s</Affiliation></AffiliationInfo>
    </Author>
  </AuthorList>
</Article>
</MedlineCitation></PubmedArticle></PubmedArticleSet>`, pmid, title, affiliation)
}

// newUpstream serves a fixed esearch result and three efetch records: one
// industry, one academic, and one that fails with 500.
func newUpstream(t *testing.T, terms *[]string) (*httptest.Server, *int32) {
	t.Helper()
	var efetches int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/esearch.fcgi"):
			if terms != nil {
				*terms = append(*terms, r.URL.Query().Get("term"))
			}
			fmt.Fprint(w, esearchXML)
		case strings.HasSuffix(r.URL.Path, "/efetch.fcgi"):
			atomic.AddInt32(&efetches, 1)
			switch r.URL.Query().Get("id") {
			case "9001":
				fmt.Fprint(w, articleXML("9001", "Industry paper", "Globex Pharma Ltd, ann@globex.com"))
			case "9002":
				fmt.Fprint(w, articleXML("9002", "Academic paper", "University of Somewhere"))
			default:
				http.Error(w, "boom", http.StatusInternalServerError)
			}
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts, &efetches
}

func newPipeline(baseURL string, backend interpret.Backend) *Pipeline {
	return &Pipeline{
		Interpreter: interpret.New(backend, nil, nil),
		Fetcher:     pubmed.NewClient(types.PubMedConfig{BaseURL: baseURL}, nil, classify.New(nil), nil, nil),
	}
}

const goodReply = `{"keywords": "drug discovery", "year": "2020", "affiliation_type": ""}`

func TestRunEndToEnd(t *testing.T) {
	var terms []string
	ts, efetches := newUpstream(t, &terms)
	p := newPipeline(ts.URL, stubBackend{reply: goodReply})

	res, err := p.Run(context.Background(), "drug discovery papers from 2020")
	require.NoError(t, err)

	assert.Equal(t, types.SearchParameters{Keywords: "drug discovery", Year: "2020"}, res.Params)
	assert.Equal(t, "drug discovery AND 2020", res.Query)
	assert.Equal(t, []string{"drug discovery AND 2020"}, terms)
	assert.Equal(t, []string{"9001", "9002", "9003"}, res.IDs)
	assert.Equal(t, int32(3), atomic.LoadInt32(efetches))

	require.Len(t, res.Records, 1)
	assert.Equal(t, types.ClassifiedRecord{
		PubmedID:        "9001",
		Title:           "Industry paper",
		PublicationDate: "02/Jan/2020",
		Authors:         "Doe Ann",
		Affiliations:    "Globex Pharma Ltd,",
		Emails:          "ann@globex.com",
	}, res.Records[0])
	assert.Equal(t, pubmed.FetchSummary{Kept: 1, Dropped: 1, Failed: 1}, res.Summary)
}

func TestRunIsRepeatable(t *testing.T) {
	ts, _ := newUpstream(t, nil)
	p := newPipeline(ts.URL, stubBackend{reply: goodReply})

	first, err := p.Run(context.Background(), "q")
	require.NoError(t, err)
	second, err := p.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, first.Records, second.Records)
}

func TestRunDryRunSkipsPubMed(t *testing.T) {
	var terms []string
	ts, efetches := newUpstream(t, &terms)
	p := newPipeline(ts.URL, stubBackend{reply: `{"keywords": "AI", "year": "2021", "affiliation_type": "biotech"}`})
	p.DryRun = true

	res, err := p.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "AI AND 2021 AND biotech", res.Query)
	assert.Empty(t, terms)
	assert.Equal(t, int32(0), atomic.LoadInt32(efetches))
	assert.Nil(t, res.Records)
}

func TestRunInterpreterFailureStopsRun(t *testing.T) {
	var terms []string
	ts, _ := newUpstream(t, &terms)

	p := newPipeline(ts.URL, stubBackend{reply: "not json"})
	_, err := p.Run(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, interpret.ErrUnparseable))

	p = newPipeline(ts.URL, stubBackend{err: errors.New("quota exceeded")})
	_, err = p.Run(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	assert.Empty(t, terms)
}

func TestRunSearchFailureIsFatal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	p := newPipeline(ts.URL, stubBackend{reply: goodReply})
	_, err := p.Run(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "searching PubMed")
	assert.Contains(t, err.Error(), "503")
}

func TestRunNoMatches(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/efetch.fcgi") {
			t.Errorf("efetch called with no ids")
		}
		fmt.Fprint(w, `<eSearchResult><Count>0</Count><IdList/></eSearchResult>`)
	}))
	defer ts.Close()

	p := newPipeline(ts.URL, stubBackend{reply: goodReply})
	res, err := p.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, res.IDs)
	assert.NotNil(t, res.Records)
	assert.Empty(t, res.Records)
}

func TestRunTracesToContextLogger(t *testing.T) {
	ts, _ := newUpstream(t, nil)
	p := newPipeline(ts.URL, stubBackend{reply: goodReply})

	var logs bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.NewWriter(&logs, zapcore.DebugLevel))
	_, err := p.Run(ctx, "drug discovery papers from 2020")
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "query received")
	assert.Contains(t, out, "constructed PubMed query")
	assert.Contains(t, out, "drug discovery AND 2020")
	assert.Contains(t, out, "total papers fetched")
}
