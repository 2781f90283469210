// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// NotAvailable marks an author field the record does not carry.
const NotAvailable = "N/A"

// Author is one author of a record as seen by the classifier.
type Author struct {
	// Name is "LastName ForeName". Either part may be blank.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the joined affiliation text with email addresses removed,
	// or NotAvailable when the author has no affiliation info.
	Affiliation string `json:"affiliation" yaml:"affiliation"`

	// Email holds the comma-joined addresses found in the affiliation text,
	// or NotAvailable.
	Email string `json:"email" yaml:"email"`
}

// PublicationDate is a journal issue date whose components may each be blank.
type PublicationDate struct {
	Day   string `json:"day,omitempty" yaml:"day,omitempty"`
	Month string `json:"month,omitempty" yaml:"month,omitempty"`
	Year  string `json:"year,omitempty" yaml:"year,omitempty"`
}

// String formats the date as D/M/Y, keeping blank components blank.
func (d PublicationDate) String() string {
	return d.Day + "/" + d.Month + "/" + d.Year
}

// ClassifiedRecord is a PubMed record with at least one non-academic author.
type ClassifiedRecord struct {
	PubmedID        string `json:"pubmed_id" yaml:"pubmed_id"`
	Title           string `json:"title" yaml:"title"`
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// Authors, Affiliations, and Emails are newline-joined, one line per author.
	Authors      string `json:"authors" yaml:"authors"`
	Affiliations string `json:"affiliations" yaml:"affiliations"`
	Emails       string `json:"emails" yaml:"emails"`
}

// NewClassifiedRecord joins the author-derived fields, one line per author.
func NewClassifiedRecord(id, title string, date PublicationDate, authors []Author) ClassifiedRecord {
	names := make([]string, len(authors))
	affs := make([]string, len(authors))
	emails := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
		affs[i] = a.Affiliation
		emails[i] = a.Email
	}
	return ClassifiedRecord{
		PubmedID:        id,
		Title:           title,
		PublicationDate: date.String(),
		Authors:         strings.Join(names, "\n"),
		Affiliations:    strings.Join(affs, "\n"),
		Emails:          strings.Join(emails, "\n"),
	}
}
