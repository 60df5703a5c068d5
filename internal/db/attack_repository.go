package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EldenRingDatabase/erdb-sub000/internal/armament"
)

// ErrReportNotFound is returned when no report matches a job.
var ErrReportNotFound = errors.New("report not found")

// AttackRepository stores armament evaluation reports keyed by job.
type AttackRepository struct {
	pool *pgxpool.Pool
}

// NewAttackRepository creates a new AttackRepository.
func NewAttackRepository(pool *pgxpool.Pool) *AttackRepository {
	return &AttackRepository{pool: pool}
}

// SaveReports upserts reports in one transaction.
func (r *AttackRepository) SaveReports(ctx context.Context, reports []armament.Report) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "reports", len(reports), "error", err)
		}
	}()

	batch := &pgx.Batch{}
	for _, rep := range reports {
		attrs, err := json.Marshal(rep.Job.Attributes)
		if err != nil {
			return fmt.Errorf("encoding attributes of %s: %w", rep.Job.Name, err)
		}
		body, err := json.Marshal(rep)
		if err != nil {
			return fmt.Errorf("encoding report of %s: %w", rep.Job.Name, err)
		}
		batch.Queue(`
			INSERT INTO attack_power (armament, affinity, level, attributes, report)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (armament, affinity, level, attributes)
			DO UPDATE SET report = EXCLUDED.report, computed_at = now()
		`, rep.Job.Name, rep.Job.Affinity, rep.Job.Level, string(attrs), string(body))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upserting reports: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing reports: %w", err)
	}
	return nil
}

// LoadReport returns the stored report for job.
func (r *AttackRepository) LoadReport(ctx context.Context, job armament.Job) (armament.Report, error) {
	attrs, err := json.Marshal(job.Attributes)
	if err != nil {
		return armament.Report{}, fmt.Errorf("encoding attributes of %s: %w", job.Name, err)
	}

	var body []byte
	err = r.pool.QueryRow(ctx, `
		SELECT report FROM attack_power
		WHERE armament = $1 AND affinity = $2 AND level = $3 AND attributes = $4::jsonb
	`, job.Name, job.Affinity, job.Level, string(attrs)).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return armament.Report{}, fmt.Errorf("%w: %s %s +%d", ErrReportNotFound, job.Affinity, job.Name, job.Level)
		}
		return armament.Report{}, fmt.Errorf("querying report of %s: %w", job.Name, err)
	}

	var rep armament.Report
	if err := json.Unmarshal(body, &rep); err != nil {
		return armament.Report{}, fmt.Errorf("decoding report of %s: %w", job.Name, err)
	}
	return rep, nil
}

// CountReports returns the number of stored reports for an armament.
func (r *AttackRepository) CountReports(ctx context.Context, name string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM attack_power WHERE armament = $1`, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting reports of %s: %w", name, err)
	}
	return n, nil
}
