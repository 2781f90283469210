// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the get-papers-list pipeline:
// the structured search parameters produced by the query interpreter, the
// authors derived from a PubMed record, and the classified records written to
// the report.
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SearchParameters is the structured form of a free-text research query.
// It is produced once per run and not modified afterwards.
type SearchParameters struct {
	// Keywords are the topical search terms.
	Keywords string `json:"keywords" yaml:"keywords" validate:"required"`

	// Year is the publication year as YYYY: exactly four ASCII digits.
	Year string `json:"year" yaml:"year" validate:"omitempty,len=4,number"`

	// AffiliationType describes the kind of organisation of interest
	// (e.g. "biotech companies"). May be empty.
	AffiliationType string `json:"affiliation_type" yaml:"affiliation_type"`
}

// Validate checks the parameters against their field rules.
func (p SearchParameters) Validate() error {
	if err := validate.Struct(p); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "len":
			msgs = append(msgs, fmt.Sprintf("%s must be %s characters", field, e.Param()))
		case "number":
			msgs = append(msgs, fmt.Sprintf("%s must contain only digits", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
