// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParametersValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  SearchParameters
		wantErr string
	}{
		{name: "full", params: SearchParameters{Keywords: "AI", Year: "2020", AffiliationType: "biotech"}},
		{name: "no year", params: SearchParameters{Keywords: "AI"}},
		{name: "missing keywords", params: SearchParameters{Year: "2020"}, wantErr: "keywords is required"},
		{name: "short year", params: SearchParameters{Keywords: "AI", Year: "20"}, wantErr: "year must be 4 characters"},
		{name: "long year", params: SearchParameters{Keywords: "AI", Year: "20201"}, wantErr: "year must be 4 characters"},
		{name: "letters", params: SearchParameters{Keywords: "AI", Year: "abcd"}, wantErr: "year must contain only digits"},
		{name: "decimal", params: SearchParameters{Keywords: "AI", Year: "20.1"}, wantErr: "year must contain only digits"},
		{name: "plus sign", params: SearchParameters{Keywords: "AI", Year: "+202"}, wantErr: "year must contain only digits"},
		{name: "minus sign", params: SearchParameters{Keywords: "AI", Year: "-202"}, wantErr: "year must contain only digits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestPublicationDateString(t *testing.T) {
	tests := []struct {
		name string
		date PublicationDate
		want string
	}{
		{"full", PublicationDate{Day: "5", Month: "Mar", Year: "2020"}, "5/Mar/2020"},
		{"year only", PublicationDate{Year: "2020"}, "//2020"},
		{"no day", PublicationDate{Month: "Dec", Year: "1999"}, "/Dec/1999"},
		{"empty", PublicationDate{}, "//"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.String())
		})
	}
}

func TestNewClassifiedRecord(t *testing.T) {
	r := NewClassifiedRecord("42", "A title", PublicationDate{Year: "2021"}, []Author{
		{Name: "Smith Jane", Affiliation: "Acme Biotech", Email: "jane@acme.com"},
		{Name: "Roe Sam", Affiliation: NotAvailable, Email: NotAvailable},
	})

	assert.Equal(t, ClassifiedRecord{
		PubmedID:        "42",
		Title:           "A title",
		PublicationDate: "//2021",
		Authors:         "Smith Jane\nRoe Sam",
		Affiliations:    "Acme Biotech\nN/A",
		Emails:          "jane@acme.com\nN/A",
	}, r)
}

func TestNewClassifiedRecordNoAuthors(t *testing.T) {
	r := NewClassifiedRecord("1", "T", PublicationDate{}, nil)
	assert.Empty(t, r.Authors)
	assert.Empty(t, r.Affiliations)
	assert.Empty(t, r.Emails)
}
