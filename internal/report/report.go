// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes classified records to files and to the console.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// Columns is the header row shared by every tabular format.
var Columns = []string{"PubmedID", "Title", "PublicationDate", "Authors", "Affiliation", "Email"}

// Format names an output encoding.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatTSV    Format = "tsv"
	FormatXLSX   Format = "xlsx"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatCSV, FormatTSV, FormatXLSX, FormatJSON, FormatYAML, FormatSQLite}

// ParseFormat validates a format name. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want csv, tsv, xlsx, json, yaml, or sqlite)", s)
}

// FormatFromPath infers the format from the file extension. Unrecognised
// extensions are written as CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return FormatTSV
	case ".xlsx":
		return FormatXLSX
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

// ResolveFormat returns override when set, otherwise the format inferred
// from path.
func ResolveFormat(path, override string) (Format, error) {
	if override != "" {
		return ParseFormat(override)
	}
	return FormatFromPath(path), nil
}

// Writer persists a full result set.
type Writer interface {
	Write(records []types.ClassifiedRecord) error
}

// NewWriter returns the Writer for format targeting path.
func NewWriter(path string, format Format) (Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is empty")
	}
	switch format {
	case FormatCSV:
		return &streamWriter{path: path, encode: func(w io.Writer, r []types.ClassifiedRecord) error {
			return EncodeDelimited(w, r, ',')
		}}, nil
	case FormatTSV:
		return &streamWriter{path: path, encode: func(w io.Writer, r []types.ClassifiedRecord) error {
			return EncodeDelimited(w, r, '\t')
		}}, nil
	case FormatJSON:
		return &streamWriter{path: path, encode: EncodeJSON}, nil
	case FormatYAML:
		return &streamWriter{path: path, encode: EncodeYAML}, nil
	case FormatXLSX:
		return &XLSXWriter{Path: path}, nil
	case FormatSQLite:
		return &SQLiteWriter{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// WriteFile writes records to path in format.
func WriteFile(path string, format Format, records []types.ClassifiedRecord) error {
	w, err := NewWriter(path, format)
	if err != nil {
		return err
	}
	return w.Write(records)
}

// streamWriter creates path and hands it to an io.Writer encoder.
type streamWriter struct {
	path   string
	encode func(io.Writer, []types.ClassifiedRecord) error
}

func (s *streamWriter) Write(records []types.ClassifiedRecord) error {
	if err := ensureDir(s.path); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", s.path, err)
	}
	if err := s.encode(f, records); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return f.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// row returns a record's cells in Columns order.
func row(r types.ClassifiedRecord) []string {
	return []string{r.PubmedID, r.Title, r.PublicationDate, r.Authors, r.Affiliations, r.Emails}
}

// EncodeDelimited writes a header and one row per record. Multi-line cells
// are quoted.
func EncodeDelimited(w io.Writer, records []types.ClassifiedRecord, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeJSON writes records as an indented JSON array. An empty result set
// is written as [].
func EncodeJSON(w io.Writer, records []types.ClassifiedRecord) error {
	if records == nil {
		records = []types.ClassifiedRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// EncodeYAML writes records as a YAML sequence.
func EncodeYAML(w io.Writer, records []types.ClassifiedRecord) error {
	if records == nil {
		records = []types.ClassifiedRecord{}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(records)
}
