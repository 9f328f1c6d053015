// Package store persists digest runs in a local sqlite database so repeated
// processing of the same input can be detected and past runs queried.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/avolkov/dealbrief/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS digests (
	run_id       TEXT PRIMARY KEY,
	source       TEXT NOT NULL,
	content_hash TEXT NOT NULL UNIQUE,
	processed_at TEXT NOT NULL,
	deal_count   INTEGER NOT NULL,
	report_json  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS deals (
	run_id           TEXT NOT NULL REFERENCES digests(run_id) ON DELETE CASCADE,
	deal_id          TEXT NOT NULL,
	intelligence_id  TEXT NOT NULL,
	title            TEXT NOT NULL,
	sector           TEXT NOT NULL,
	geography        TEXT NOT NULL,
	value_millions   REAL,
	currency         TEXT,
	size_category    TEXT NOT NULL,
	confidence_grade TEXT NOT NULL,
	confidence_score REAL NOT NULL,
	risk_level       TEXT NOT NULL,
	risk_score       REAL NOT NULL,
	rationale        TEXT NOT NULL,
	PRIMARY KEY (run_id, deal_id)
);

CREATE INDEX IF NOT EXISTS idx_deals_sector ON deals(sector);
CREATE INDEX IF NOT EXISTS idx_deals_geography ON deals(geography);
`

// Store wraps the sqlite database holding past digest runs.
type Store struct {
	db *sql.DB
}

// RunSummary is one row of the run history listing.
type RunSummary struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	ContentHash string    `json:"content_hash"`
	ProcessedAt time.Time `json:"processed_at"`
	DealCount   int       `json:"deal_count"`
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "open database %s", path)
	}

	// Single writer; WAL keeps readers unblocked during saves.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "apply %s", pragma)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "apply schema")
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport persists one digest run. A report whose content hash already
// exists replaces the earlier run for that input; the returned bool reports
// whether such a replacement happened.
func (s *Store) SaveReport(ctx context.Context, report *model.DigestReport) (string, bool, error) {
	blob, err := json.Marshal(report)
	if err != nil {
		return "", false, eris.Wrap(err, "marshal report")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, eris.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	var prior string
	err = tx.QueryRowContext(ctx,
		`SELECT run_id FROM digests WHERE content_hash = ?`, report.ContentHash).Scan(&prior)
	replaced := err == nil
	if err != nil && err != sql.ErrNoRows {
		return "", false, eris.Wrap(err, "query content hash")
	}
	if replaced {
		if _, err := tx.ExecContext(ctx, `DELETE FROM digests WHERE run_id = ?`, prior); err != nil {
			return "", false, eris.Wrap(err, "delete prior run")
		}
	}

	runID := ulid.Make().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO digests (run_id, source, content_hash, processed_at, deal_count, report_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, report.Source, report.ContentHash,
		report.ProcessedAt.UTC().Format(time.RFC3339), len(report.Deals), string(blob))
	if err != nil {
		return "", false, eris.Wrap(err, "insert digest")
	}

	for _, d := range report.Deals {
		var value interface{}
		var currency interface{}
		if d.Financial.HasValue() {
			value = d.Financial.MaxValue()
			currency = d.Financial.Currency
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO deals (run_id, deal_id, intelligence_id, title, sector, geography,
			                    value_millions, currency, size_category,
			                    confidence_grade, confidence_score, risk_level, risk_score, rationale)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, d.ID, d.IntelligenceID, d.Title, d.Sector, d.PrimaryGeography,
			value, currency, d.SizeCategory,
			d.ConfidenceGrade, d.ConfidenceScore, string(d.Risk.Level), d.Risk.OverallScore,
			d.Rationale.Primary)
		if err != nil {
			return "", false, eris.Wrapf(err, "insert deal %s", d.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", false, eris.Wrap(err, "commit")
	}
	return runID, replaced, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source, content_hash, processed_at, deal_count
		 FROM digests ORDER BY processed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "query runs")
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var ts string
		if err := rows.Scan(&r.RunID, &r.Source, &r.ContentHash, &ts, &r.DealCount); err != nil {
			return nil, eris.Wrap(err, "scan run")
		}
		r.ProcessedAt, _ = time.Parse(time.RFC3339, ts)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadReport reloads a full report by run id.
func (s *Store) LoadReport(ctx context.Context, runID string) (*model.DigestReport, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT report_json FROM digests WHERE run_id = ?`, runID).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "query run")
	}

	var report model.DigestReport
	if err := json.Unmarshal([]byte(blob), &report); err != nil {
		return nil, eris.Wrapf(err, "unmarshal report for run %s", runID)
	}
	return &report, nil
}

// HasContent reports whether a digest with the given content hash was
// already saved, returning its run id when so.
func (s *Store) HasContent(ctx context.Context, contentHash string) (string, bool, error) {
	var runID string
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id FROM digests WHERE content_hash = ?`, contentHash).Scan(&runID)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrap(err, "query content hash")
	}
	return runID, true, nil
}
