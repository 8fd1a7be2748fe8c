// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/journal-search/pkg/types"
)

// snapshotEncoding is reported as Dataset.Encoding for snapshots.
const snapshotEncoding = "sqlite"

var snapshotSchema = []string{
	`CREATE TABLE articles (
		position INTEGER PRIMARY KEY,
		id INTEGER NOT NULL,
		title TEXT NOT NULL,
		authors TEXT NOT NULL,
		type TEXT NOT NULL,
		year INTEGER NOT NULL,
		issue TEXT NOT NULL,
		citation TEXT NOT NULL
	)`,
	`CREATE TABLE meta (
		key TEXT PRIMARY KEY,
		value TEXT
	)`,
}

// WriteSnapshot stores ds as a SQLite file at path, replacing any existing
// file. Rows keep their dataset order. The file is built under a temporary
// name and renamed into place so readers never see a partial snapshot.
func WriteSnapshot(ctx context.Context, path string, ds *Dataset) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.db")
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := writeSnapshotDB(ctx, tmpPath, ds); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("installing snapshot: %w", err)
	}
	return nil
}

func writeSnapshotDB(ctx context.Context, path string, ds *Dataset) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range snapshotSchema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating snapshot schema: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles (position, id, title, authors, type, year, issue, citation)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range ds.records {
		if _, err := stmt.ExecContext(ctx,
			i, a.ID, a.Title, a.Authors, a.Type, a.Year, a.Issue, a.Citation,
		); err != nil {
			return fmt.Errorf("inserting article %d: %w", a.ID, err)
		}
	}

	meta := map[string]string{
		"source":     ds.Source,
		"encoding":   ds.Encoding,
		"skipped":    fmt.Sprint(ds.Skipped),
		"written_at": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("writing snapshot metadata: %w", err)
		}
	}

	return tx.Commit()
}

// ReadSnapshot loads a dataset written by WriteSnapshot. Failures are
// reported as *LoadError.
func ReadSnapshot(ctx context.Context, path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("opening snapshot: %w", err)}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, title, authors, type, year, issue, citation
		 FROM articles ORDER BY position`)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("querying snapshot: %w", err)}
	}
	defer rows.Close()

	ds := &Dataset{Source: path, Encoding: snapshotEncoding}
	for rows.Next() {
		var a types.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Authors, &a.Type, &a.Year, &a.Issue, &a.Citation); err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("scanning row: %w", err)}
		}
		ds.records = append(ds.records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return ds, nil
}

// SnapshotMeta returns the metadata recorded when the snapshot was written.
func SnapshotMeta(ctx context.Context, path string) (map[string]string, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k string
		var v sql.NullString
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning metadata: %w", err)
		}
		meta[k] = v.String
	}
	return meta, rows.Err()
}
