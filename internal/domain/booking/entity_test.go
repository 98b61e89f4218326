//go:build unit

package booking_test

import (
	"testing"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	actual, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	require.NotNil(t, actual)

	assert.NotEqual(t, uuid.Nil, actual.ID())
	assert.Equal(t, booking.StatusPending, actual.Status())
	assert.Equal(t, booking.SyncPending, actual.SyncStatus())
	assert.True(t, actual.IsActive())
}

func TestTransitionTo(t *testing.T) {
	slotTime := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	beforeSlot := slotTime.Add(-time.Hour)
	afterSlot := slotTime.Add(time.Hour)

	statuses := []booking.Status{
		booking.StatusPending,
		booking.StatusConfirmed,
		booking.StatusCompleted,
		booking.StatusCancelled,
		booking.StatusNoShow,
	}

	allowed := map[booking.Status]map[booking.Status]bool{
		booking.StatusPending:   {booking.StatusConfirmed: true, booking.StatusCancelled: true},
		booking.StatusConfirmed: {booking.StatusCompleted: true, booking.StatusCancelled: true, booking.StatusNoShow: true},
	}

	t.Run("full transition matrix", func(t *testing.T) {
		for _, from := range statuses {
			for _, to := range statuses {
				b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
					b.Status = from
					b.BookedAt = slotTime
				}).BuildReconstructed()

				err := b.TransitionTo(to, afterSlot)
				if allowed[from][to] {
					assert.NoError(t, err, "%s -> %s should be allowed", from, to)
					assert.Equal(t, to, b.Status())
				} else {
					assert.ErrorIs(t, err, booking.ErrInvalidTransition, "%s -> %s should be rejected", from, to)
					assert.Equal(t, from, b.Status(), "status must be unchanged on error")
				}
			}
		}
	})

	t.Run("completed requires elapsed slot time", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusConfirmed
			b.BookedAt = slotTime
		}).BuildReconstructed()

		err := b.TransitionTo(booking.StatusCompleted, beforeSlot)
		assert.ErrorIs(t, err, booking.ErrTransitionNotDue)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusConfirmed, b.Status())

		require.NoError(t, b.TransitionTo(booking.StatusCompleted, afterSlot))
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("no-show requires elapsed slot time", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusConfirmed
			b.BookedAt = slotTime
		}).BuildReconstructed()

		assert.ErrorIs(t, b.TransitionTo(booking.StatusNoShow, beforeSlot), booking.ErrTransitionNotDue)
		require.NoError(t, b.TransitionTo(booking.StatusNoShow, afterSlot))
	})

	t.Run("cancel works before the slot time", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusConfirmed
			b.BookedAt = slotTime
		}).BuildReconstructed()

		require.NoError(t, b.Cancel(beforeSlot))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.False(t, b.IsActive())
	})
}

func TestCalendarSyncMarks(t *testing.T) {
	t.Run("MarkSynced records event without touching status", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		b.MarkSynced("evt-123", "https://meet.example.com/abc")

		assert.Equal(t, booking.SyncSynced, b.SyncStatus())
		assert.Equal(t, "evt-123", b.CalendarEventID())
		assert.Equal(t, "https://meet.example.com/abc", b.MeetLink())
		assert.Empty(t, b.SyncError())
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("MarkSyncFailed keeps the booking alive", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		b.MarkSyncFailed("calendar unreachable")

		assert.Equal(t, booking.SyncFailed, b.SyncStatus())
		assert.Equal(t, "calendar unreachable", b.SyncError())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.True(t, b.IsActive())
	})

	t.Run("MarkSynced clears a previous failure", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		b.MarkSyncFailed("timeout")
		b.MarkSynced("evt-456", "")

		assert.Equal(t, booking.SyncSynced, b.SyncStatus())
		assert.Empty(t, b.SyncError())
	})
}

func TestStatusParsing(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "completed", "cancelled", "no-show"} {
		parsed, err := booking.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, parsed.String())
	}

	_, err := booking.ParseStatus("archived")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
}

func TestConsumesCapacity(t *testing.T) {
	assert.True(t, booking.StatusPending.ConsumesCapacity())
	assert.True(t, booking.StatusConfirmed.ConsumesCapacity())
	assert.False(t, booking.StatusCancelled.ConsumesCapacity())
	assert.False(t, booking.StatusCompleted.ConsumesCapacity())
	assert.False(t, booking.StatusNoShow.ConsumesCapacity())
}
