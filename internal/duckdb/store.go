// Package duckdb stores validation runs and their findings in DuckDB so
// that results can be queried across runs.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for validation results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS validation_runs (
		run_id VARCHAR PRIMARY KEY,
		path VARCHAR,
		size BIGINT,
		mod_time TIMESTAMP,
		started_at TIMESTAMP,
		line_count BIGINT,
		warnings BIGINT,
		errors BIGINT
	)`); err != nil {
		return err
	}

	// line is 0 for whole-file findings.
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS validation_findings (
		run_id VARCHAR,
		seq BIGINT,
		category VARCHAR,
		line BIGINT,
		content VARCHAR,
		code VARCHAR,
		name VARCHAR,
		level VARCHAR,
		message VARCHAR,
		PRIMARY KEY (run_id, seq)
	)`)
	return err
}
