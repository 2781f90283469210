// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// SQLiteWriter stores records in the papers table of a SQLite database.
// The table is rebuilt on every Write so a rerun leaves exactly the rows of
// the latest result set.
type SQLiteWriter struct {
	Path string
}

// Write replaces the papers table at Path with records.
func (s *SQLiteWriter) Write(records []types.ClassifiedRecord) error {
	if err := ensureDir(s.Path); err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", s.Path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DROP TABLE IF EXISTS papers`,
		`CREATE TABLE papers (
			pubmed_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			publication_date TEXT,
			authors TEXT,
			affiliation TEXT,
			email TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO papers
		(pubmed_id, title, publication_date, authors, affiliation, email)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.PubmedID, r.Title, r.PublicationDate, r.Authors, r.Affiliations, r.Emails); err != nil {
			return fmt.Errorf("inserting paper %s: %w", r.PubmedID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// ReadSQLite loads the papers table at path ordered by pubmed_id.
func ReadSQLite(path string) ([]types.ClassifiedRecord, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT pubmed_id, title, publication_date, authors, affiliation, email
		FROM papers ORDER BY pubmed_id`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var out []types.ClassifiedRecord
	for rows.Next() {
		var r types.ClassifiedRecord
		if err := rows.Scan(&r.PubmedID, &r.Title, &r.PublicationDate, &r.Authors, &r.Affiliations, &r.Emails); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
