// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists completed generation runs and their call logs in a
// local SQLite database for later inspection.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/article-engine/pkg/types"
)

const dbFile = "runs.db"

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at dir/runs.db, creating the
// schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic TEXT NOT NULL,
			article_chars INTEGER,
			research_chars INTEGER,
			critique_passed INTEGER,
			revisions_made INTEGER,
			research_calls INTEGER,
			additional_research_calls INTEGER,
			export_status TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS calls (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			call_id INTEGER NOT NULL,
			agent_name TEXT NOT NULL,
			call_type TEXT NOT NULL,
			revision_count INTEGER,
			research_calls INTEGER,
			additional_research_calls INTEGER,
			timestamp TEXT,
			PRIMARY KEY (run_id, call_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_calls_agent ON calls(agent_name)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun inserts a completed run and its call log, returning the run ID.
func (s *Store) RecordRun(ctx context.Context, output *types.FinalOutput) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (topic, article_chars, research_chars, critique_passed,
			revisions_made, research_calls, additional_research_calls,
			export_status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		output.Topic,
		len(output.Article),
		len(output.ResearchData),
		output.CritiquePassed,
		output.RevisionsMade,
		output.ResearchCallCount,
		output.AdditionalResearchCallCount,
		string(output.ExportStatus),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, rec := range output.CallLog {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO calls (run_id, call_id, agent_name, call_type,
				revision_count, research_calls, additional_research_calls, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, rec.CallID, rec.AgentName, rec.CallType,
			rec.RevisionCount, rec.ResearchCallCount, rec.AdditionalResearchCallCount,
			rec.Timestamp.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return 0, fmt.Errorf("inserting call %d: %w", rec.CallID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunSummary is one row of the runs listing.
type RunSummary struct {
	ID                          int64
	Topic                       string
	ArticleChars                int
	CritiquePassed              bool
	RevisionsMade               int
	AdditionalResearchCallCount int
	ExportStatus                string
	CreatedAt                   time.Time
}

// List returns the most recent runs, newest first. limit values below 1
// default to 20.
func (s *Store) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, article_chars, critique_passed, revisions_made,
			additional_research_calls, export_status, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var created string
		if err := rows.Scan(&r.ID, &r.Topic, &r.ArticleChars, &r.CritiquePassed,
			&r.RevisionsMade, &r.AdditionalResearchCallCount, &r.ExportStatus, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Run holds one recorded run with its full call log.
type Run struct {
	RunSummary
	ResearchChars     int
	ResearchCallCount int
	Calls             []types.CallRecord
}

// Get returns a recorded run by ID, or an error when it does not exist.
func (s *Store) Get(ctx context.Context, id int64) (*Run, error) {
	var r Run
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, topic, article_chars, research_chars, critique_passed,
			revisions_made, research_calls, additional_research_calls,
			export_status, created_at
		 FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Topic, &r.ArticleChars, &r.ResearchChars, &r.CritiquePassed,
			&r.RevisionsMade, &r.ResearchCallCount, &r.AdditionalResearchCallCount,
			&r.ExportStatus, &created)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run %d: %w", id, err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, created)

	rows, err := s.db.QueryContext(ctx,
		`SELECT call_id, agent_name, call_type, revision_count, research_calls,
			additional_research_calls, timestamp
		 FROM calls WHERE run_id = ? ORDER BY call_id`, id)
	if err != nil {
		return nil, fmt.Errorf("querying calls for run %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec types.CallRecord
		var ts string
		if err := rows.Scan(&rec.CallID, &rec.AgentName, &rec.CallType,
			&rec.RevisionCount, &rec.ResearchCallCount,
			&rec.AdditionalResearchCallCount, &ts); err != nil {
			return nil, fmt.Errorf("scanning call: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		r.Calls = append(r.Calls, rec)
	}
	return &r, rows.Err()
}

// Stats summarizes the recorded history.
type Stats struct {
	Runs          int
	Passed        int
	AvgRevisions  float64
	CallsPerAgent map[string]int
}

// Summarize aggregates run and per-agent call counts across all history.
func (s *Store) Summarize(ctx context.Context) (*Stats, error) {
	st := &Stats{CallsPerAgent: make(map[string]int)}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(critique_passed), 0),
			COALESCE(AVG(revisions_made), 0)
		 FROM runs`).
		Scan(&st.Runs, &st.Passed, &st.AvgRevisions)
	if err != nil {
		return nil, fmt.Errorf("querying run stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT agent_name, COUNT(*) FROM calls GROUP BY agent_name`)
	if err != nil {
		return nil, fmt.Errorf("querying call stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scanning call stats: %w", err)
		}
		st.CallsPerAgent[name] = count
	}
	return st, rows.Err()
}
