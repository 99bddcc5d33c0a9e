package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/evaluation"
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/matching"
)

// UnitKey returns the stable correlation key for one (source file, column,
// algorithm) unit of work. The key survives across runs, so validated data
// can be correlated back to the run that produced it.
func UnitKey(sourceFile, column, algorithm string) string {
	h := xxhash.New()
	h.WriteString(sourceFile)
	h.WriteString("\x00")
	h.WriteString(column)
	h.WriteString("\x00")
	h.WriteString(algorithm)
	return fmt.Sprintf("%016x", h.Sum64())
}

// RunRecord describes one stored matching run.
type RunRecord struct {
	RunID        string        `json:"run_id"`
	SourceFile   string        `json:"source_file"`
	Column       string        `json:"column"`
	Algorithm    string        `json:"algorithm"`
	UnitKey      string        `json:"unit_key"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	QueryCount   int           `json:"query_count"`
	FailureCount int           `json:"failure_count"`
}

// NewRunRecord builds a record with a fresh run ID and derived unit key.
func NewRunRecord(sourceFile, column, algorithm string, stats matching.RunStats) RunRecord {
	return RunRecord{
		RunID:        uuid.NewString(),
		SourceFile:   sourceFile,
		Column:       column,
		Algorithm:    algorithm,
		UnitKey:      UnitKey(sourceFile, column, algorithm),
		StartedAt:    time.Now().Add(-stats.Duration),
		Duration:     stats.Duration,
		QueryCount:   stats.Queries,
		FailureCount: stats.Failed,
	}
}

// Store persists matching runs, their result tables and evaluation metrics
// for the review API.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS matching_run (
	run_id        TEXT PRIMARY KEY,
	source_file   TEXT NOT NULL,
	column_name   TEXT NOT NULL,
	algorithm     TEXT NOT NULL,
	unit_key      TEXT NOT NULL,
	started_at    TEXT NOT NULL,
	duration_ms   INTEGER NOT NULL,
	query_count   INTEGER NOT NULL,
	failure_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_matching_run_unit ON matching_run(unit_key);

CREATE TABLE IF NOT EXISTS match_result (
	run_id      TEXT NOT NULL REFERENCES matching_run(run_id),
	query_index INTEGER NOT NULL,
	query       TEXT NOT NULL,
	best_match  TEXT,
	score       REAL,
	accepted    INTEGER NOT NULL,
	PRIMARY KEY (run_id, query_index)
);

CREATE TABLE IF NOT EXISTS eval_metric (
	dataset   TEXT NOT NULL,
	algorithm TEXT NOT NULL,
	metric    TEXT NOT NULL,
	value     REAL NOT NULL,
	PRIMARY KEY (dataset, algorithm, metric)
);
`

// OpenStore opens (and if needed creates) the run store below dataDir.
func OpenStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "runs.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening run store: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// SaveRun stores one run and its result table atomically.
func (s *Store) SaveRun(ctx context.Context, run RunRecord, results []matching.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO matching_run (
			run_id, source_file, column_name, algorithm, unit_key,
			started_at, duration_ms, query_count, failure_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.SourceFile, run.Column, run.Algorithm, run.UnitKey,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Duration.Milliseconds(), run.QueryCount, run.FailureCount,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO match_result (run_id, query_index, query, best_match, score, accepted)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing result insert: %w", err)
	}
	defer stmt.Close()

	for _, result := range results {
		var bestMatch, score interface{}
		if result.BestMatch != nil {
			bestMatch = *result.BestMatch
		}
		if result.Score != nil {
			score = *result.Score
		}
		accepted := 0
		if result.Accepted {
			accepted = 1
		}
		if _, err := stmt.ExecContext(ctx, run.RunID, result.QueryIndex,
			result.Query, bestMatch, score, accepted); err != nil {
			return fmt.Errorf("inserting result %d: %w", result.QueryIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// ListRuns returns all stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, source_file, column_name, algorithm, unit_key,
		       started_at, duration_ms, query_count, failure_count
		FROM matching_run
		ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		var startedAt string
		var durationMs int64
		if err := rows.Scan(&run.RunID, &run.SourceFile, &run.Column, &run.Algorithm,
			&run.UnitKey, &startedAt, &durationMs, &run.QueryCount, &run.FailureCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunResults returns the stored result table of one run in query order.
func (s *Store) RunResults(ctx context.Context, runID string) ([]matching.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT query_index, query, best_match, score, accepted
		FROM match_result
		WHERE run_id = ?
		ORDER BY query_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading results for run %s: %w", runID, err)
	}
	defer rows.Close()

	var results []matching.Result
	for rows.Next() {
		var result matching.Result
		var bestMatch sql.NullString
		var score sql.NullFloat64
		var accepted int
		if err := rows.Scan(&result.QueryIndex, &result.Query, &bestMatch, &score, &accepted); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		if bestMatch.Valid {
			v := bestMatch.String
			result.BestMatch = &v
		}
		if score.Valid {
			v := score.Float64
			result.Score = &v
		}
		result.Accepted = accepted != 0
		results = append(results, result)
	}
	return results, rows.Err()
}

// SaveMetrics stores (replacing) one dataset's evaluation metrics.
func (s *Store) SaveMetrics(ctx context.Context, dataset string, metrics map[string]evaluation.MetricSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	names := evaluation.MetricNames()
	for algo, set := range metrics {
		values := set.Values()
		for i, name := range names {
			if _, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO eval_metric (dataset, algorithm, metric, value)
				VALUES (?, ?, ?, ?)`,
				dataset, algo, name, values[i]); err != nil {
				return fmt.Errorf("inserting metric %s/%s: %w", algo, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing metrics: %w", err)
	}
	return nil
}

// Metrics loads one dataset's stored metrics keyed by algorithm.
func (s *Store) Metrics(ctx context.Context, dataset string) (map[string]map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT algorithm, metric, value
		FROM eval_metric
		WHERE dataset = ?
		ORDER BY algorithm, metric`, dataset)
	if err != nil {
		return nil, fmt.Errorf("loading metrics for %s: %w", dataset, err)
	}
	defer rows.Close()

	out := make(map[string]map[string]float64)
	for rows.Next() {
		var algo, metric string
		var value float64
		if err := rows.Scan(&algo, &metric, &value); err != nil {
			return nil, fmt.Errorf("scanning metric: %w", err)
		}
		if out[algo] == nil {
			out[algo] = make(map[string]float64)
		}
		out[algo][metric] = value
	}
	return out, rows.Err()
}
