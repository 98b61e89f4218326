package repository

import (
	"context"
	"errors"
	"time"

	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BlackoutRepository struct {
	pool *pgxpool.Pool
}

func NewBlackoutRepository(pool *pgxpool.Pool) *BlackoutRepository {
	return &BlackoutRepository{pool: pool}
}

const blackoutColumns = `id, start_date, end_date, reason, recurrence_rule, created_at, updated_at`

// ListOverlapping returns windows that can produce an occurrence inside
// [from, to]. Recurring windows are always returned; their stored dates
// are only an anchor, expansion happens in the domain.
func (r *BlackoutRepository) ListOverlapping(ctx context.Context, from, to time.Time) ([]*schedule.BlackoutWindow, error) {
	query := `
		SELECT ` + blackoutColumns + `
		FROM blackout_windows
		WHERE recurrence_rule <> '' OR (start_date <= $2::date AND end_date >= $1::date)
		ORDER BY start_date
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blackout windows", err)
	}
	defer rows.Close()

	var windows []*schedule.BlackoutWindow
	for rows.Next() {
		w, err := scanBlackoutRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan blackout window", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blackout windows", err)
	}
	return windows, nil
}

func (r *BlackoutRepository) List(ctx context.Context) ([]*schedule.BlackoutWindow, error) {
	// Wide enough for any practical admin listing.
	return r.ListOverlapping(ctx, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))
}

func (r *BlackoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.BlackoutWindow, error) {
	query := `SELECT ` + blackoutColumns + ` FROM blackout_windows WHERE id = $1`

	w, err := scanBlackoutRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("blackout window not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find blackout window", err)
	}
	return w, nil
}

func (r *BlackoutRepository) Upsert(ctx context.Context, w *schedule.BlackoutWindow) error {
	const query = `
		INSERT INTO blackout_windows (id, start_date, end_date, reason, recurrence_rule)
		VALUES ($1, $2::date, $3::date, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			reason = EXCLUDED.reason,
			recurrence_rule = EXCLUDED.recurrence_rule,
			updated_at = now()
	`

	_, err := r.pool.Exec(ctx, query,
		w.ID(), pgconv.DateToPgtype(w.StartDate()), pgconv.DateToPgtype(w.EndDate()),
		w.Reason(), string(w.Recurrence()))
	if err != nil {
		return infra.WrapRepoErr("failed to upsert blackout window", err)
	}
	return nil
}

func (r *BlackoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blackout_windows WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete blackout window", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("blackout window not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanBlackoutRow(row pgx.Row) (*schedule.BlackoutWindow, error) {
	var (
		id                   uuid.UUID
		startDate, endDate   pgtype.Date
		reason, rule         string
		createdAt, updatedAt time.Time
	)

	err := row.Scan(&id, &startDate, &endDate, &reason, &rule, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return schedule.ReconstructBlackoutWindow(
		id, pgconv.DateFromPgtype(startDate), pgconv.DateFromPgtype(endDate), reason,
		schedule.RecurrenceRule(rule),
		createdAt, updatedAt,
	), nil
}
