package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wander-ads/internal/core/port"
)

// RunRepository persists batch-pass summaries for auditability.
type RunRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository returns a new repository instance.
func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// RecordRun stores one finished pass.
func (r *RunRepository) RecordRun(ctx context.Context, run *port.EngineRun) error {
	raw, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("encode run summary: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO engine_runs (id, kind, started_at, finished_at, summary)
		 VALUES ($1,$2,$3,$4,$5)`,
		run.ID, run.Kind, run.StartedAt, run.FinishedAt, raw)
	return err
}

// ListRuns returns the most recent passes, newest first.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]port.EngineRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, kind, started_at, finished_at, summary
		 FROM engine_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (port.EngineRun, error) {
		var (
			run port.EngineRun
			raw []byte
		)
		if err := row.Scan(&run.ID, &run.Kind, &run.StartedAt, &run.FinishedAt, &raw); err != nil {
			return run, err
		}
		if err := json.Unmarshal(raw, &run.Summary); err != nil {
			return run, fmt.Errorf("decode run summary: %w", err)
		}
		return run, nil
	})
}
