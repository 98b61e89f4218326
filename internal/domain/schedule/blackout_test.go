//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"booking-engine/internal/domain/schedule"
	"booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewBlackoutWindow(t *testing.T) {
	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := schedule.NewBlackoutWindow(date(2026, 5, 10), date(2026, 5, 1), "", schedule.RecurrenceNone)
		assert.ErrorIs(t, err, schedule.ErrInvalidDateRange)
	})

	t.Run("rejects unknown recurrence rule", func(t *testing.T) {
		_, err := schedule.NewBlackoutWindow(date(2026, 5, 1), date(2026, 5, 10), "", schedule.RecurrenceRule("monthly"))
		assert.ErrorIs(t, err, schedule.ErrUnknownRecurrenceRule)
	})

	t.Run("single-day window is valid", func(t *testing.T) {
		w, err := schedule.NewBlackoutWindow(date(2026, 5, 1), date(2026, 5, 1), "maintenance", schedule.RecurrenceNone)
		require.NoError(t, err)
		assert.False(t, w.IsRecurring())
	})

	t.Run("truncates timestamps to dates", func(t *testing.T) {
		w, err := schedule.NewBlackoutWindow(
			time.Date(2026, 5, 1, 13, 45, 0, 0, time.UTC),
			time.Date(2026, 5, 2, 1, 0, 0, 0, time.UTC),
			"", schedule.RecurrenceNone,
		)
		require.NoError(t, err)
		assert.Equal(t, date(2026, 5, 1), w.StartDate())
		assert.Equal(t, date(2026, 5, 2), w.EndDate())
	})
}

func TestOccurrencesWithin(t *testing.T) {
	t.Run("one-off window returned once when overlapping", func(t *testing.T) {
		w, err := builder.NewBlackoutBuilder().BuildDomain()
		require.NoError(t, err)

		occs := w.OccurrencesWithin(date(2026, 12, 1), date(2027, 1, 31))
		require.Len(t, occs, 1)
		assert.Equal(t, date(2026, 12, 29), occs[0].Start)
		assert.Equal(t, date(2027, 1, 3), occs[0].End)

		assert.Empty(t, w.OccurrencesWithin(date(2027, 2, 1), date(2027, 3, 1)))
	})

	t.Run("expansion is deterministic", func(t *testing.T) {
		w, err := builder.NewBlackoutBuilder().With(func(b *builder.BlackoutBuilder) {
			b.Recurrence = schedule.RecurrenceYearly
		}).BuildDomain()
		require.NoError(t, err)

		first := w.OccurrencesWithin(date(2026, 1, 1), date(2030, 12, 31))
		second := w.OccurrencesWithin(date(2026, 1, 1), date(2030, 12, 31))
		assert.Equal(t, first, second)
	})

	t.Run("yearly window recurs each year in range", func(t *testing.T) {
		w, err := schedule.NewBlackoutWindow(date(2025, 8, 10), date(2025, 8, 15), "summer break", schedule.RecurrenceYearly)
		require.NoError(t, err)

		occs := w.OccurrencesWithin(date(2026, 1, 1), date(2028, 12, 31))
		require.Len(t, occs, 3)
		assert.Equal(t, date(2026, 8, 10), occs[0].Start)
		assert.Equal(t, date(2027, 8, 10), occs[1].Start)
		assert.Equal(t, date(2028, 8, 10), occs[2].Start)
		for _, occ := range occs {
			assert.Equal(t, occ.Start.AddDate(0, 0, 5), occ.End)
		}
	})

	t.Run("year-end recurrence spills into the next year", func(t *testing.T) {
		w, err := schedule.NewBlackoutWindow(date(2025, 12, 29), date(2026, 1, 3), "holidays", schedule.RecurrenceYearly)
		require.NoError(t, err)

		// The occurrence anchored to Dec 2026 reaches Jan 2027.
		occs := w.OccurrencesWithin(date(2027, 1, 1), date(2027, 1, 2))
		require.Len(t, occs, 1)
		assert.Equal(t, date(2026, 12, 29), occs[0].Start)
		assert.Equal(t, date(2027, 1, 3), occs[0].End)
	})

	t.Run("Feb 29 anchors shift to Feb 28 on non-leap years", func(t *testing.T) {
		w, err := schedule.NewBlackoutWindow(date(2024, 2, 29), date(2024, 2, 29), "audit day", schedule.RecurrenceYearly)
		require.NoError(t, err)

		occs := w.OccurrencesWithin(date(2025, 2, 1), date(2025, 3, 1))
		require.Len(t, occs, 1)
		assert.Equal(t, date(2025, 2, 28), occs[0].Start)

		occs = w.OccurrencesWithin(date(2028, 2, 1), date(2028, 3, 1))
		require.Len(t, occs, 1)
		assert.Equal(t, date(2028, 2, 29), occs[0].Start)
	})
}

func TestCovers(t *testing.T) {
	w, err := schedule.NewBlackoutWindow(date(2025, 12, 29), date(2026, 1, 3), "holidays", schedule.RecurrenceYearly)
	require.NoError(t, err)

	assert.True(t, w.Covers(date(2026, 12, 31)))
	assert.True(t, w.Covers(date(2027, 1, 2)))
	assert.True(t, w.Covers(time.Date(2026, 12, 29, 18, 30, 0, 0, time.UTC)))
	assert.False(t, w.Covers(date(2026, 6, 15)))
	assert.False(t, w.Covers(date(2027, 1, 4)))
}

func TestCoversComparesCalendarDays(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	pst := time.FixedZone("PST", -8*60*60)

	// Hydrated windows carry midnight-UTC dates; queries arrive in the
	// business timezone.
	w := schedule.ReconstructBlackoutWindow(
		uuid.New(), date(2026, 9, 7), date(2026, 9, 7), "maintenance",
		schedule.RecurrenceNone, date(2026, 1, 1), date(2026, 1, 1),
	)

	assert.True(t, w.Covers(time.Date(2026, 9, 7, 10, 0, 0, 0, jst)),
		"Sep 7 blackout must cover Sep 7 morning east of UTC")
	assert.True(t, w.Covers(time.Date(2026, 9, 7, 22, 0, 0, 0, pst)),
		"Sep 7 blackout must cover Sep 7 evening west of UTC")
	assert.False(t, w.Covers(time.Date(2026, 9, 6, 23, 0, 0, 0, jst)))
	assert.False(t, w.Covers(time.Date(2026, 9, 8, 1, 0, 0, 0, pst)))

	occs := w.OccurrencesWithin(
		time.Date(2026, 9, 7, 0, 0, 0, 0, jst),
		time.Date(2026, 9, 7, 0, 0, 0, 0, jst),
	)
	require.Len(t, occs, 1)
	assert.True(t, occs[0].Contains(time.Date(2026, 9, 7, 8, 30, 0, 0, jst)))
}
