package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EldenRingDatabase/erdb-sub000/internal/effect"
)

// EffectRepository stores synthesized effects per parameter row.
type EffectRepository struct {
	pool *pgxpool.Pool
}

// NewEffectRepository creates a new EffectRepository.
func NewEffectRepository(pool *pgxpool.Pool) *EffectRepository {
	return &EffectRepository{pool: pool}
}

// SaveRow replaces the stored effects of a row in one transaction.
// Effects keep their order through the position column.
func (r *EffectRepository) SaveRow(ctx context.Context, rowIndex int, effects []effect.Effect) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "row", rowIndex, "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM effects WHERE row_index = $1`, rowIndex); err != nil {
		return fmt.Errorf("deleting effects of row %d: %w", rowIndex, err)
	}

	batch := &pgx.Batch{}
	for i, e := range effects {
		key := e.Key()
		batch.Queue(
			`INSERT INTO effects (row_index, position, attribute, value, model, polarity, conditions, tick_interval, value_pvp, effect_key)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			rowIndex, i, string(e.Attribute), e.Value, string(e.Model), string(e.Polarity),
			e.Conditions, e.TickInterval, e.ValuePvP, key[:],
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting effects of row %d: %w", rowIndex, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing effects of row %d: %w", rowIndex, err)
	}
	return nil
}

// LoadRow returns the stored effects of a row in saved order.
// A row that was never saved yields an empty slice.
func (r *EffectRepository) LoadRow(ctx context.Context, rowIndex int) ([]effect.Effect, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT attribute, value, model, polarity, conditions, tick_interval, value_pvp
		FROM effects
		WHERE row_index = $1
		ORDER BY position
	`, rowIndex)
	if err != nil {
		return nil, fmt.Errorf("querying effects of row %d: %w", rowIndex, err)
	}
	defer rows.Close()

	effects := make([]effect.Effect, 0, 8)
	for rows.Next() {
		var (
			e                     effect.Effect
			attr, model, polarity string
		)
		if err := rows.Scan(&attr, &e.Value, &model, &polarity, &e.Conditions, &e.TickInterval, &e.ValuePvP); err != nil {
			return nil, fmt.Errorf("scanning effect row: %w", err)
		}
		e.Attribute = effect.Attribute(attr)
		e.Model = effect.ValueModel(model)
		e.Polarity = effect.Polarity(polarity)
		effects = append(effects, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating effect rows: %w", err)
	}
	return effects, nil
}

// RowsWithAttribute returns the indices of rows holding an effect on attr.
func (r *EffectRepository) RowsWithAttribute(ctx context.Context, attr effect.Attribute) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT row_index FROM effects WHERE attribute = $1 ORDER BY row_index`,
		string(attr),
	)
	if err != nil {
		return nil, fmt.Errorf("querying rows with %s: %w", attr, err)
	}
	indices, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("collecting rows with %s: %w", attr, err)
	}
	return indices, nil
}
