package repository

import (
	"context"
	"errors"
	"time"

	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotTemplateRepository struct {
	pool *pgxpool.Pool
}

func NewSlotTemplateRepository(pool *pgxpool.Pool) *SlotTemplateRepository {
	return &SlotTemplateRepository{pool: pool}
}

func (r *SlotTemplateRepository) querier(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.pool
}

const templateColumns = `id, day_of_week, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), max_bookings, is_available, created_at, updated_at`

func (r *SlotTemplateRepository) List(ctx context.Context) ([]*schedule.SlotTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM slot_templates ORDER BY day_of_week, start_time`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slot templates", err)
	}
	defer rows.Close()

	var templates []*schedule.SlotTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot templates", err)
	}
	return templates, nil
}

func (r *SlotTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.SlotTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM slot_templates WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	t, err := scanTemplateRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("slot template not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot template", err)
	}
	return t, nil
}

// LockForSlot locks the template row matching (weekday, start) with
// FOR UPDATE. Concurrent booking attempts against the same slot key
// serialize on this lock; the lock is released at commit, before any
// calendar work starts.
func (r *SlotTemplateRepository) LockForSlot(ctx context.Context, tx pgx.Tx, dayOfWeek time.Weekday, start schedule.TimeOfDay) (*schedule.SlotTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM slot_templates
		WHERE day_of_week = $1 AND start_time = $2::time AND is_available
		FOR UPDATE
	`

	row := r.querier(tx).QueryRow(ctx, query, int(dayOfWeek), start.String())
	t, err := scanTemplateRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("no open template for slot", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock slot template", err)
	}
	return t, nil
}

func (r *SlotTemplateRepository) Upsert(ctx context.Context, t *schedule.SlotTemplate) error {
	const query = `
		INSERT INTO slot_templates (id, day_of_week, start_time, end_time, max_bookings, is_available)
		VALUES ($1, $2, $3::time, $4::time, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			day_of_week = EXCLUDED.day_of_week,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			max_bookings = EXCLUDED.max_bookings,
			is_available = EXCLUDED.is_available,
			updated_at = now()
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID(), int(t.DayOfWeek()), t.StartTime().String(), t.EndTime().String(),
		t.MaxBookings(), t.IsAvailable())
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("template already exists for slot", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to upsert slot template", err)
	}
	return nil
}

func (r *SlotTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM slot_templates WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete slot template", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot template not found", nil, infra.KindNotFound)
	}
	return nil
}

// HasFutureActiveBookings reports whether any active booking still sits
// on a future projection of the template. Such templates are disabled
// instead of deleted.
func (r *SlotTemplateRepository) HasFutureActiveBookings(ctx context.Context, t *schedule.SlotTemplate, now time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE status IN ('pending', 'confirmed')
			  AND booked_at > $1
			  AND EXTRACT(DOW FROM booked_at) = $2
			  AND booked_at::time = $3::time
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, now, int(t.DayOfWeek()), t.StartTime().String()).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check future bookings", err)
	}
	return exists, nil
}

func scanTemplate(rows pgx.Rows) (*schedule.SlotTemplate, error) {
	t, err := scanTemplateRow(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan slot template", err)
	}
	return t, nil
}

func scanTemplateRow(row pgx.Row) (*schedule.SlotTemplate, error) {
	var (
		id                   uuid.UUID
		dayOfWeek            int
		startStr, endStr     string
		maxBookings          int
		isAvailable          bool
		createdAt, updatedAt time.Time
	)

	err := row.Scan(&id, &dayOfWeek, &startStr, &endStr, &maxBookings, &isAvailable, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	start, err := schedule.ParseTimeOfDay(startStr)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseTimeOfDay(endStr)
	if err != nil {
		return nil, err
	}

	return schedule.ReconstructSlotTemplate(
		id, dayOfWeek,
		start, end,
		maxBookings, isAvailable,
		createdAt, updatedAt,
	), nil
}
