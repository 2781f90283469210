// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"bytes"
	"encoding/xml"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/pdiddy/get-papers-list/internal/classify"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// decodeXML unmarshals an E-utilities response, accepting any encoding the
// document declares.
func decodeXML(body []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel
	return dec.Decode(v)
}

// markupText collects the character data of an element and all of its
// descendants, so titles with inline markup such as <i> keep their words.
type markupText string

func (m *markupText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				*m = markupText(b.String())
				return nil
			}
			depth--
		}
	}
}

// collapsed returns the text with runs of whitespace folded to one space.
func (m markupText) collapsed() string {
	return strings.Join(strings.Fields(string(m)), " ")
}

// esearch XML structures.
type eSearchResult struct {
	Count  string   `xml:"Count"`
	IDs    []string `xml:"IdList>Id"`
	Error  string   `xml:"ERROR"`
	Errors []string `xml:"ErrorList>PhraseNotFound"`
}

// efetch XML structures.
type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string   `xml:"PMID"`
	Article *article `xml:"Article"`
}

type article struct {
	Title   *markupText `xml:"ArticleTitle"`
	PubDate pubDate     `xml:"Journal>JournalIssue>PubDate"`
	Authors []author    `xml:"AuthorList>Author"`
}

type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type author struct {
	LastName        string            `xml:"LastName"`
	ForeName        string            `xml:"ForeName"`
	AffiliationInfo []affiliationInfo `xml:"AffiliationInfo"`
}

type affiliationInfo struct {
	Affiliation *markupText `xml:"Affiliation"`
}

var yearRe = regexp.MustCompile(`\b\d{4}\b`)

// date converts the PubDate element. When only MedlineDate is present
// (e.g. "1998 Dec-1999 Jan") its first four-digit year is used.
func (p pubDate) date() types.PublicationDate {
	d := types.PublicationDate{Day: p.Day, Month: p.Month, Year: p.Year}
	if d.Year == "" && p.MedlineDate != "" {
		d.Year = yearRe.FindString(p.MedlineDate)
	}
	return d
}

// classifierInputs maps decoded authors to classifier inputs. Repeated
// Author and AffiliationInfo elements always decode into slices, so a lone
// author is a one-element list.
func classifierInputs(authors []author) []classify.Input {
	inputs := make([]classify.Input, 0, len(authors))
	for _, a := range authors {
		in := classify.Input{
			LastName: a.LastName,
			ForeName: a.ForeName,
		}
		for _, info := range a.AffiliationInfo {
			if info.Affiliation == nil {
				continue
			}
			if text := strings.TrimSpace(string(*info.Affiliation)); text != "" {
				in.Affiliations = append(in.Affiliations, text)
			}
		}
		// AffiliationInfo elements without affiliation text count as absent.
		in.HasAffiliationInfo = len(in.Affiliations) > 0
		inputs = append(inputs, in)
	}
	return inputs
}
