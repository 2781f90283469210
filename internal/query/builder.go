// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query turns structured search parameters into a PubMed term.
package query

import "github.com/pdiddy/get-papers-list/pkg/types"

// Build joins the parameters into an esearch term of the form
// "<keywords> AND <year>", adding " AND <affiliation_type>" when the
// affiliation type is set. Terms are passed through unescaped.
func Build(p types.SearchParameters) string {
	q := p.Keywords + " AND " + p.Year
	if p.AffiliationType != "" {
		q += " AND " + p.AffiliationType
	}
	return q
}
