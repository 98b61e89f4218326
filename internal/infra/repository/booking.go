package repository

import (
	"context"
	"errors"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) querier(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.pool
}

// querier is the overlap of *pgxpool.Pool and pgx.Tx that the
// repositories use, so the same method can run inside or outside a
// transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const bookingColumns = `
	id, customer_name, customer_email, customer_phone,
	business_name, business_type, business_notes,
	booked_at, status, calendar_event_id, meet_link,
	calendar_sync_status, calendar_sync_error, created_at, updated_at`

// CountActiveAt counts capacity-consuming bookings at the exact slot
// start. Callers that need the count to stay stable until their insert
// commits must hold the slot template row lock first.
func (r *BookingRepository) CountActiveAt(ctx context.Context, tx pgx.Tx, at time.Time) (int, error) {
	const query = `
		SELECT count(*) FROM bookings
		WHERE booked_at = $1 AND status IN ('pending', 'confirmed')
	`

	var count int
	if err := r.querier(tx).QueryRow(ctx, query, at).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count active bookings", err)
	}
	return count, nil
}

func (r *BookingRepository) Insert(ctx context.Context, tx pgx.Tx, b *booking.Booking) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (
			id, customer_name, customer_email, customer_phone,
			business_name, business_type, business_notes,
			booked_at, status, calendar_sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id uuid.UUID
	err := r.querier(tx).QueryRow(ctx, query,
		b.ID(),
		b.CustomerName().String(),
		b.CustomerEmail().String(),
		b.CustomerPhone(),
		b.Business().Name,
		b.Business().Type,
		b.Business().Notes,
		b.BookedAt(),
		b.Status().String(),
		string(b.SyncStatus()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert booking", err)
	}

	return id, nil
}

// FindByIDForUpdate hydrates the aggregate under a row lock so a status
// transition reads and writes the same version.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return r.scanBooking(r.querier(tx).QueryRow(ctx, query, id))
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.pool.QueryRow(ctx, query, id))
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status booking.Status) error {
	const query = `UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := r.querier(tx).Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// UpdateCalendarSync persists sync outcome independently of status.
func (r *BookingRepository) UpdateCalendarSync(ctx context.Context, tx pgx.Tx, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET calendar_event_id = $2, meet_link = $3,
		    calendar_sync_status = $4, calendar_sync_error = $5,
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := r.querier(tx).Exec(ctx, query,
		b.ID(), b.CalendarEventID(), b.MeetLink(), string(b.SyncStatus()), b.SyncError())
	if err != nil {
		return infra.WrapRepoErr("failed to update calendar sync state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// Delete is the unconditional administrative hard delete.
func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// ListSyncRetryable returns ids of bookings whose calendar push failed
// or never got picked up, and is worth another attempt. The pending
// grace period keeps freshly created bookings out while their initial
// queue entry is still in flight.
func (r *BookingRepository) ListSyncRetryable(ctx context.Context, limit int) ([]uuid.UUID, error) {
	const query = `
		SELECT id FROM bookings
		WHERE status IN ('pending', 'confirmed')
		  AND (calendar_sync_status = 'failed'
		       OR (calendar_sync_status = 'pending' AND created_at < now() - interval '2 minutes'))
		ORDER BY updated_at ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list retryable bookings", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate retryable bookings", err)
	}
	return ids, nil
}

func (r *BookingRepository) scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id                              uuid.UUID
		name, email, phone              string
		bizName, bizType, bizNotes      string
		bookedAt, createdAt, updatedAt  time.Time
		status, syncStatus              string
		eventID, meetLink, syncErrorMsg string
	)

	err := row.Scan(
		&id, &name, &email, &phone,
		&bizName, &bizType, &bizNotes,
		&bookedAt, &status, &eventID, &meetLink,
		&syncStatus, &syncErrorMsg, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan booking", err)
	}

	return booking.ReconstructBooking(
		id, name, email, phone,
		booking.BusinessProfile{Name: bizName, Type: bizType, Notes: bizNotes},
		bookedAt,
		booking.Status(status),
		eventID, meetLink,
		booking.SyncStatus(syncStatus),
		syncErrorMsg,
		createdAt, updatedAt,
	), nil
}
