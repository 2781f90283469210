// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify derives author names, affiliations, and emails from a
// PubMed author list and decides whether any author is affiliated with a
// commercial or industry organisation.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// DefaultKeywords are the affiliation terms associated with companies.
// Matching is a case-insensitive substring test, so short terms such as
// "AG" and "SA" also match inside longer words.
var DefaultKeywords = []string{
	"Pharma", "Biotech", "Therapeutics", "Biosciences", "Inc.", "Ltd", "LLC", "Corp.",
	"Corporation", "AG", "SA", "BV", "Group", "Ventures", "Holdings", "Solutions",
	"Innovations", "Analytics", "Manufacturing", "Diagnostics", "MedTech", "Healthcare",
}

// emailRe matches email-looking substrings inside affiliation text.
var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Input is one author entry as decoded from a record.
type Input struct {
	LastName string
	ForeName string

	// Affiliations lists every affiliation string in the author's
	// AffiliationInfo entries, in document order.
	Affiliations []string

	// HasAffiliationInfo reports whether the author carried any
	// AffiliationInfo element at all. Without it, or when every
	// affiliation string is blank, the author gets the sentinel.
	HasAffiliationInfo bool
}

// Result is the outcome of classifying one record's author list.
type Result struct {
	Authors []types.Author

	// NonAcademic is true when at least one author's affiliation matches
	// a company keyword.
	NonAcademic bool

	// MissingAffiliation counts authors without affiliation info. Their
	// Affiliation and Email are NotAvailable.
	MissingAffiliation int
}

// Classifier tests affiliation text against a keyword list.
type Classifier struct {
	keywords []string // lowercased
}

// New returns a Classifier for the given keywords. A nil or empty list
// selects DefaultKeywords. Blank keywords are ignored.
func New(keywords []string) *Classifier {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		lowered = append(lowered, strings.ToLower(kw))
	}
	return &Classifier{keywords: lowered}
}

// Classify derives one Author per input, in order, and ORs the
// non-academic test across all of them.
func (c *Classifier) Classify(authors []Input) Result {
	var res Result
	res.Authors = make([]types.Author, 0, len(authors))

	for _, in := range authors {
		a := types.Author{
			Name:        in.LastName + " " + in.ForeName,
			Affiliation: types.NotAvailable,
			Email:       types.NotAvailable,
		}

		var parts []string
		for _, aff := range in.Affiliations {
			if aff = strings.TrimSpace(aff); aff != "" {
				parts = append(parts, aff)
			}
		}
		if !in.HasAffiliationInfo || len(parts) == 0 {
			res.MissingAffiliation++
			res.Authors = append(res.Authors, a)
			continue
		}

		text := strings.Join(parts, ", ")
		if c.IsNonAcademic(text) {
			res.NonAcademic = true
		}
		if emails := ExtractEmails(text); len(emails) > 0 {
			a.Email = strings.Join(emails, ", ")
		}
		a.Affiliation = StripEmails(text)

		res.Authors = append(res.Authors, a)
	}
	return res
}

// IsNonAcademic reports whether text contains any keyword, ignoring case.
func (c *Classifier) IsNonAcademic(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractEmails returns the email addresses found in text, in order.
func ExtractEmails(text string) []string {
	return emailRe.FindAllString(text, -1)
}

// StripEmails removes every email address from text and trims the result.
func StripEmails(text string) string {
	return strings.TrimSpace(emailRe.ReplaceAllString(text, ""))
}
