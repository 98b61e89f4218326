//go:build unit || e2e

package builder

import (
	"time"

	dombooking "booking-engine/internal/domain/booking"
	reqdto "booking-engine/internal/handler/dto/request"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID            uuid.UUID
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	BusinessName  string
	BusinessType  string
	BusinessNotes string
	BookedAt      time.Time
	Status        dombooking.Status
	SyncStatus    dombooking.SyncStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &BookingBuilder{
		ID:            uuid.New(),
		CustomerName:  "Taro Yamada",
		CustomerEmail: "taro@example.com",
		CustomerPhone: "+81-90-0000-0000",
		BusinessName:  "Yamada Coffee",
		BusinessType:  "cafe",
		BusinessNotes: "first consultation",
		BookedAt:      now.AddDate(0, 0, 7).Truncate(24 * time.Hour).Add(10 * time.Hour),
		Status:        dombooking.StatusPending,
		SyncStatus:    dombooking.SyncPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	name, err := dombooking.NewCustomerName(b.CustomerName)
	if err != nil {
		return nil, err
	}
	email, err := dombooking.NewEmail(b.CustomerEmail)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(name, email, b.CustomerPhone, dombooking.BusinessProfile{
		Name:  b.BusinessName,
		Type:  b.BusinessType,
		Notes: b.BusinessNotes,
	}, b.BookedAt), nil
}

// BuildReconstructed hydrates a booking as if read from storage, in the
// builder's status.
func (b *BookingBuilder) BuildReconstructed() *dombooking.Booking {
	return dombooking.ReconstructBooking(
		b.ID,
		b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		dombooking.BusinessProfile{Name: b.BusinessName, Type: b.BusinessType, Notes: b.BusinessNotes},
		b.BookedAt,
		b.Status,
		"", "",
		b.SyncStatus,
		"",
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:                 b.ID,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		BusinessName:       b.BusinessName,
		BusinessType:       b.BusinessType,
		BusinessNotes:      b.BusinessNotes,
		BookedAt:           b.BookedAt,
		Status:             string(b.Status),
		CalendarSyncStatus: string(b.SyncStatus),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		BusinessName:  b.BusinessName,
		BusinessType:  b.BusinessType,
		BusinessNotes: b.BusinessNotes,
		BookedAt:      b.BookedAt,
	}
}
