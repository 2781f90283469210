// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// PrintRecords writes one block per record to w, followed by a count line.
// Multi-line author fields are indented under their label.
func PrintRecords(w io.Writer, records []types.ClassifiedRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No papers with non-academic authors found.")
		return
	}

	for i, r := range records {
		if i > 0 {
			fmt.Fprintln(w, strings.Repeat("-", 72))
		}
		printField(w, "PubmedID", r.PubmedID)
		printField(w, "Title", r.Title)
		printField(w, "PublicationDate", r.PublicationDate)
		printField(w, "Authors", r.Authors)
		printField(w, "Affiliation", r.Affiliations)
		printField(w, "Email", r.Emails)
	}

	noun := "papers"
	if len(records) == 1 {
		noun = "paper"
	}
	fmt.Fprintf(w, "\n%d %s with non-academic authors\n", len(records), noun)
}

func printField(w io.Writer, label, value string) {
	lines := strings.Split(value, "\n")
	fmt.Fprintf(w, "%-16s %s\n", label+":", lines[0])
	for _, l := range lines[1:] {
		fmt.Fprintf(w, "%-16s %s\n", "", l)
	}
}

// PrintSaved confirms that results were written to path.
func PrintSaved(w io.Writer, path string) {
	fmt.Fprintf(w, "Results saved to %s\n", path)
}
