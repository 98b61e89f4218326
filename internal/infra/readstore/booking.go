package readstore

import (
	"context"
	"errors"
	"time"

	"booking-engine/internal/infra"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

const bookingViewColumns = `
	id, customer_name, customer_email, customer_phone,
	business_name, business_type, business_notes,
	booked_at, status, calendar_event_id, meet_link,
	calendar_sync_status, calendar_sync_error, created_at, updated_at`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `SELECT ` + bookingViewColumns + ` FROM bookings WHERE id = $1`

	view, err := scanBookingView(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) ListByEmail(ctx context.Context, email string) ([]*queries.BookingView, error) {
	query := `SELECT ` + bookingViewColumns + ` FROM bookings WHERE customer_email = $1 ORDER BY booked_at DESC`
	return r.list(ctx, query, email)
}

// ListRange lists bookings with booked_at in the half-open [from, to).
func (r *BookingReadStore) ListRange(ctx context.Context, from, to time.Time) ([]*queries.BookingView, error) {
	query := `SELECT ` + bookingViewColumns + ` FROM bookings WHERE booked_at >= $1 AND booked_at < $2 ORDER BY booked_at`
	return r.list(ctx, query, from, to)
}

// ActiveCounts returns, per exact slot start, how many bookings still
// consume capacity in the half-open [from, to). The read path takes no
// locks; the ledger re-checks capacity at write time.
func (r *BookingReadStore) ActiveCounts(ctx context.Context, from, to time.Time) (map[time.Time]int, error) {
	const query = `
		SELECT booked_at, count(*)
		FROM bookings
		WHERE status IN ('pending', 'confirmed')
		  AND booked_at >= $1 AND booked_at < $2
		GROUP BY booked_at
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count active bookings", err)
	}
	defer rows.Close()

	counts := make(map[time.Time]int)
	for rows.Next() {
		var at time.Time
		var n int
		if err := rows.Scan(&at, &n); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking count", err)
		}
		counts[at.UTC()] = n
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking counts", err)
	}
	return counts, nil
}

func (r *BookingReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.BookingView, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return views, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.CustomerName, &v.CustomerEmail, &v.CustomerPhone,
		&v.BusinessName, &v.BusinessType, &v.BusinessNotes,
		&v.BookedAt, &v.Status, &v.CalendarEventID, &v.MeetLink,
		&v.CalendarSyncStatus, &v.CalendarSyncError, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
