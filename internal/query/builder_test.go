// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"testing"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		params types.SearchParameters
		want   string
	}{
		{
			name:   "no affiliation type",
			params: types.SearchParameters{Keywords: "AI", Year: "2020"},
			want:   "AI AND 2020",
		},
		{
			name:   "with affiliation type",
			params: types.SearchParameters{Keywords: "AI", Year: "2020", AffiliationType: "biotech"},
			want:   "AI AND 2020 AND biotech",
		},
		{
			name:   "keywords are not escaped",
			params: types.SearchParameters{Keywords: `"gene therapy" OR crispr`, Year: "2021"},
			want:   `"gene therapy" OR crispr AND 2021`,
		},
		{
			name:   "empty year keeps the clause",
			params: types.SearchParameters{Keywords: "cancer"},
			want:   "cancer AND ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.params); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}
