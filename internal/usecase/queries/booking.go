package queries

import (
	"context"
	"time"

	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByEmail(ctx context.Context, email string) ([]*BookingView, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*BookingView, error)
	ActiveCounts(ctx context.Context, from, to time.Time) (map[time.Time]int, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByEmail(ctx context.Context, email string) ([]*BookingView, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByEmail(ctx context.Context, email string) ([]*BookingView, error) {
	return q.store.ListByEmail(ctx, email)
}

func (q *bookingQueriesImpl) ListRange(ctx context.Context, from, to time.Time) ([]*BookingView, error) {
	return q.store.ListRange(ctx, from, to)
}
