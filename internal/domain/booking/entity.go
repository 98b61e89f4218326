package booking

import (
	"time"

	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrTransitionNotDue = errs.Mark(errs.New("slot time has not passed yet"), ErrInvalidTransition)

type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
)

// Booking is a customer's reservation against one slot instance.
// Status transitions run only through TransitionTo; calendar sync state
// is tracked separately and never forces the booking status anywhere.
type Booking struct {
	id              uuid.UUID
	customerName    CustomerName
	customerEmail   Email
	customerPhone   string
	business        BusinessProfile
	bookedAt        time.Time
	status          Status
	calendarEventID string
	meetLink        string
	syncStatus      SyncStatus
	syncError       string
	createdAt       time.Time
	updatedAt       time.Time
}

func NewBooking(
	name CustomerName,
	email Email,
	phone string,
	business BusinessProfile,
	bookedAt time.Time,
) *Booking {
	return &Booking{
		id:            uuid.New(),
		customerName:  name,
		customerEmail: email,
		customerPhone: phone,
		business:      business,
		bookedAt:      bookedAt,
		status:        StatusPending,
		syncStatus:    SyncPending,
	}
}

// ReconstructBooking hydrates a stored row. Raw strings are trusted as
// already validated at creation time.
func ReconstructBooking(
	id uuid.UUID,
	name, email, phone string,
	business BusinessProfile,
	bookedAt time.Time,
	status Status,
	calendarEventID, meetLink string,
	syncStatus SyncStatus,
	syncError string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		customerName:    CustomerName{value: name},
		customerEmail:   Email{value: email},
		customerPhone:   phone,
		business:        business,
		bookedAt:        bookedAt,
		status:          status,
		calendarEventID: calendarEventID,
		meetLink:        meetLink,
		syncStatus:      syncStatus,
		syncError:       syncError,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// TransitionTo enforces the status state machine. Completed and no-show
// additionally require the slot time to have passed. The receiver is
// unchanged on error.
func (b *Booking) TransitionTo(next Status, now time.Time) error {
	if !b.status.canTransitionTo(next) {
		return ErrInvalidTransition
	}
	if next.RequiresElapsedSlot() && now.Before(b.bookedAt) {
		return ErrTransitionNotDue
	}
	b.status = next
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	return b.TransitionTo(StatusCancelled, now)
}

// MarkSynced records a successful calendar push. The pending->confirmed
// status transition is driven separately by the caller.
func (b *Booking) MarkSynced(eventID, meetLink string) {
	b.calendarEventID = eventID
	b.meetLink = meetLink
	b.syncStatus = SyncSynced
	b.syncError = ""
}

func (b *Booking) MarkSyncFailed(reason string) {
	b.syncStatus = SyncFailed
	b.syncError = reason
}

func (b *Booking) IsActive() bool {
	return b.status.ConsumesCapacity()
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) CustomerName() CustomerName { return b.customerName }
func (b *Booking) CustomerEmail() Email       { return b.customerEmail }
func (b *Booking) CustomerPhone() string      { return b.customerPhone }
func (b *Booking) Business() BusinessProfile  { return b.business }
func (b *Booking) BookedAt() time.Time        { return b.bookedAt }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) CalendarEventID() string    { return b.calendarEventID }
func (b *Booking) MeetLink() string           { return b.meetLink }
func (b *Booking) SyncStatus() SyncStatus     { return b.syncStatus }
func (b *Booking) SyncError() string          { return b.syncError }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }
