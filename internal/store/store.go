// Package store persists completed simulation runs so cohorts can be
// normalized and fused across invocations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/quantbio/qemd/internal/models"
)

// RunRecord is one persisted simulation run.
type RunRecord struct {
	ID        string            `json:"id"`
	SampleID  string            `json:"sample_id"`
	CreatedAt time.Time         `json:"created_at"`
	Params    models.Parameters `json:"params"`
	Result    models.Result     `json:"result"`
}

// RunStore persists runs in a SQLite database.
type RunStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// Open creates or opens the run database at dir/runs.db.
func Open(dir string) (*RunStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "runs.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &RunStore{db: db, dbPath: dbPath}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id                  TEXT PRIMARY KEY,
			sample_id           TEXT NOT NULL DEFAULT '',
			created_at          TEXT NOT NULL,
			params              TEXT NOT NULL,
			ete_peak            REAL NOT NULL,
			coherence_lifetime  REAL NOT NULL,
			gamma_star          REAL NOT NULL,
			composite_score     REAL NOT NULL,
			resilience          REAL NOT NULL,
			computation_time_ms REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
		CREATE INDEX IF NOT EXISTS idx_runs_sample_id ON runs(sample_id);
	`)
	return err
}

// SaveRun persists one completed run and returns its generated ID.
func (s *RunStore) SaveRun(ctx context.Context, sampleID string, params models.Parameters, res models.Result) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to marshal parameters: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, sample_id, created_at, params, ete_peak,
			coherence_lifetime, gamma_star, composite_score, resilience,
			computation_time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, sampleID, time.Now().UTC().Format(time.RFC3339Nano), string(paramsJSON),
		res.ETEPeak, res.CoherenceLifetime, res.GammaStar, res.CompositeScore,
		res.Resilience, res.ComputationTimeMS,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	return id, nil
}

// ListRuns returns the most recent runs, newest first. A limit of 0 returns
// all runs.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, sample_id, created_at, params, ete_peak,
			coherence_lifetime, gamma_star, composite_score, resilience,
			computation_time_ms
		FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdAt, paramsJSON string
		if err := rows.Scan(&rec.ID, &rec.SampleID, &createdAt, &paramsJSON,
			&rec.Result.ETEPeak, &rec.Result.CoherenceLifetime,
			&rec.Result.GammaStar, &rec.Result.CompositeScore,
			&rec.Result.Resilience, &rec.Result.ComputationTimeMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		if err := json.Unmarshal([]byte(paramsJSON), &rec.Params); err != nil {
			return nil, fmt.Errorf("failed to unmarshal parameters for run %s: %w", rec.ID, err)
		}
		rec.Result.Verified = true
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CohortSamples returns every stored run as a cohort sample, oldest first.
// Runs without an explicit sample ID use their run ID.
func (s *RunStore) CohortSamples(ctx context.Context) ([]models.CohortSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sample_id, ete_peak, coherence_lifetime, gamma_star, resilience
		FROM runs ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohort: %w", err)
	}
	defer rows.Close()

	var samples []models.CohortSample
	for rows.Next() {
		var id, sampleID string
		var cs models.CohortSample
		if err := rows.Scan(&id, &sampleID, &cs.ETEPeak, &cs.CoherenceLifetime,
			&cs.GammaStar, &cs.Resilience); err != nil {
			return nil, fmt.Errorf("failed to scan cohort sample: %w", err)
		}
		cs.SampleID = sampleID
		if cs.SampleID == "" {
			cs.SampleID = id
		}
		samples = append(samples, cs)
	}
	return samples, rows.Err()
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
