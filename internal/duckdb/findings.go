package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-lint/internal/rule"
	"github.com/inodb/vibe-lint/internal/validator"
)

// FindingRow is one stored finding. Line is 0 for whole-file findings.
type FindingRow struct {
	Seq      int64
	Category string
	Line     int64
	Content  string
	Code     string
	Name     string
	Level    rule.Level
	Message  string
}

// WriteReport records run and every finding of report. The run's counts
// are filled in from the report.
func (s *Store) WriteReport(run *Run, report *validator.Report) error {
	run.Lines = report.Lines
	run.Warnings = report.Count(rule.Warning)
	run.Errors = report.Count(rule.Error)

	if _, err := s.db.Exec(`INSERT INTO validation_runs
		(run_id, path, size, mod_time, started_at, line_count, warnings, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.File.Path, run.File.Size, run.File.ModTime, run.StartedAt,
		int64(run.Lines), int64(run.Warnings), int64(run.Errors),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	entries := report.Findings()
	if len(entries) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "validation_findings")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for i, e := range entries {
		var line int64
		var content string
		if e.Content != nil {
			line = int64(e.Content.Line)
			content = e.Content.Text
		}
		if err := appender.AppendRow(
			run.ID, int64(i), string(e.Category), line, content,
			e.Error.Code, e.Error.Name, string(e.Error.Level), e.Error.Message,
		); err != nil {
			return fmt.Errorf("append finding: %w", err)
		}
	}

	return appender.Flush()
}

// Runs returns every stored run, oldest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`SELECT
		run_id, path, size, mod_time, started_at, line_count, warnings, errors
		FROM validation_runs
		ORDER BY started_at, run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var lines, warnings, errs int64
		if err := rows.Scan(
			&r.ID, &r.File.Path, &r.File.Size, &r.File.ModTime, &r.StartedAt,
			&lines, &warnings, &errs,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Lines, r.Warnings, r.Errors = int(lines), int(warnings), int(errs)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Findings returns the findings of a run in report order.
func (s *Store) Findings(runID string) ([]FindingRow, error) {
	rows, err := s.db.Query(`SELECT
		seq, category, line, content, code, name, level, message
		FROM validation_findings
		WHERE run_id=?
		ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	var out []FindingRow
	for rows.Next() {
		var f FindingRow
		var level string
		if err := rows.Scan(
			&f.Seq, &f.Category, &f.Line, &f.Content,
			&f.Code, &f.Name, &level, &f.Message,
		); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		f.Level = rule.Level(level)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate findings: %w", err)
	}
	return out, nil
}

// RuleCounts returns the number of stored findings per rule name across
// all runs.
func (s *Store) RuleCounts() (map[string]int64, error) {
	rows, err := s.db.Query(`SELECT name, count(*) FROM validation_findings GROUP BY name`)
	if err != nil {
		return nil, fmt.Errorf("query rule counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan rule count: %w", err)
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

// ClearRuns removes all stored runs and findings.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM validation_findings"); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM validation_runs")
	return err
}
