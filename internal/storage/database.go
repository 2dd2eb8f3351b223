// Package storage persists the audit trail of handler decisions.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"

	"github.com/sevigo/volatility-agent/internal/core"
)

// Store defines the interface for all database operations.
//
//go:generate mockgen -destination=../../mocks/mock_store.go -package=mocks . Store
type Store interface {
	SaveOutcome(ctx context.Context, outcome *core.Outcome) error
	GetOutcomesForJob(ctx context.Context, jobID int64) ([]*core.Outcome, error)
	GetRecentOutcomes(ctx context.Context, limit int) ([]*core.Outcome, error)
}

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a new Store
func NewStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// SaveOutcome inserts a new outcome record and fills in its id and timestamp.
func (s *postgresStore) SaveOutcome(ctx context.Context, outcome *core.Outcome) error {
	if outcome.CreatedAt.IsZero() {
		outcome.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO job_outcomes (job_id, entry_id, phase, action, detail, created_at)
		VALUES (:job_id, :entry_id, :phase, :action, :detail, :created_at)
		RETURNING id`

	rows, err := s.db.NamedQueryContext(ctx, query, outcome)
	if err != nil {
		return fmt.Errorf("failed to save outcome for job %d: %w", outcome.JobID, err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&outcome.ID); err != nil {
			return fmt.Errorf("failed to read outcome id: %w", err)
		}
	}
	return rows.Err()
}

// GetOutcomesForJob returns every recorded decision for a job, oldest first.
func (s *postgresStore) GetOutcomesForJob(ctx context.Context, jobID int64) ([]*core.Outcome, error) {
	query := `
		SELECT id, job_id, entry_id, phase, action, detail, created_at
		FROM job_outcomes
		WHERE job_id = $1
		ORDER BY created_at ASC, id ASC`

	var outcomes []*core.Outcome
	if err := s.db.SelectContext(ctx, &outcomes, query, jobID); err != nil {
		return nil, fmt.Errorf("failed to load outcomes for job %d: %w", jobID, err)
	}
	return outcomes, nil
}

// GetRecentOutcomes returns the latest decisions across all jobs, newest first.
func (s *postgresStore) GetRecentOutcomes(ctx context.Context, limit int) ([]*core.Outcome, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, job_id, entry_id, phase, action, detail, created_at
		FROM job_outcomes
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	var outcomes []*core.Outcome
	if err := s.db.SelectContext(ctx, &outcomes, query, limit); err != nil {
		return nil, fmt.Errorf("failed to load recent outcomes: %w", err)
	}
	return outcomes, nil
}
