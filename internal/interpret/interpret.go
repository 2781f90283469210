// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package interpret turns a free-text research question into structured
// PubMed search parameters using a language model.
package interpret

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers-list/internal/metrics"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// ErrUnparseable reports a model response that is not the expected JSON
// object or fails validation.
var ErrUnparseable = errors.New("language model response is not valid search parameters")

// Backend sends one system/user exchange to a language model and returns
// the text of its reply. Implementations make a single attempt.
type Backend interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// Interpreter maps free text to SearchParameters through a Backend.
type Interpreter struct {
	backend Backend
	logger  *zap.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// New returns an Interpreter. A nil logger discards output; a nil recorder
// records nothing.
func New(backend Backend, logger *zap.Logger, rec *metrics.Recorder) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{
		backend: backend,
		logger:  logger,
		metrics: rec,
		now:     time.Now,
	}
}

// Interpret asks the model for the parameters of query. The call is made
// once; a transport error is returned as is, a malformed reply wraps
// ErrUnparseable.
func (i *Interpreter) Interpret(ctx context.Context, query string) (types.SearchParameters, error) {
	i.logger.Debug("processing query with language model",
		zap.String("query", query),
		zap.String("provider", i.backend.Name()),
	)

	system, err := renderSystemPrompt(i.now().Format("2006-01-02"))
	if err != nil {
		return types.SearchParameters{}, fmt.Errorf("rendering prompt: %w", err)
	}

	reply, err := i.backend.Complete(ctx, system, query)
	i.metrics.ObserveLLM(i.backend.Name(), err)
	if err != nil {
		return types.SearchParameters{}, fmt.Errorf("%s request: %w", i.backend.Name(), err)
	}
	i.logger.Debug("language model response received", zap.String("reply", reply))

	params, err := ParseParameters(reply)
	if err != nil {
		return types.SearchParameters{}, err
	}
	i.logger.Debug("search parameters",
		zap.String("keywords", params.Keywords),
		zap.String("year", params.Year),
		zap.String("affiliation_type", params.AffiliationType),
	)
	return params, nil
}

// ParseParameters decodes a model reply into SearchParameters. Surrounding
// whitespace and a Markdown code fence are tolerated; a year given as a JSON
// number is accepted.
func ParseParameters(reply string) (types.SearchParameters, error) {
	body := stripCodeFence(reply)

	var raw struct {
		Keywords        flexString `json:"keywords"`
		Year            flexString `json:"year"`
		AffiliationType flexString `json:"affiliation_type"`
	}
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(&raw); err != nil {
		return types.SearchParameters{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	params := types.SearchParameters{
		Keywords:        strings.TrimSpace(string(raw.Keywords)),
		Year:            strings.TrimSpace(string(raw.Year)),
		AffiliationType: strings.TrimSpace(string(raw.AffiliationType)),
	}
	if err := params.Validate(); err != nil {
		return types.SearchParameters{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return params, nil
}

// stripCodeFence removes a leading ``` or ```json line and a trailing ```.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// flexString decodes a JSON string, number, or null into a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*f = flexString(n.String())
		return nil
	}
}
