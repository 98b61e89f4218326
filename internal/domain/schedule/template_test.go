//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"booking-engine/internal/domain/schedule"
	"booking-engine/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotTemplate(t *testing.T) {
	t.Run("valid template", func(t *testing.T) {
		tmpl, err := builder.NewSlotTemplateBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, time.Monday, tmpl.DayOfWeek())
		assert.Equal(t, "10:00", tmpl.StartTime().String())
		assert.Equal(t, "11:00", tmpl.EndTime().String())
		assert.True(t, tmpl.IsAvailable())
	})

	cases := []struct {
		name   string
		mutate func(*builder.SlotTemplateBuilder)
		errIs  error
	}{
		{
			name:   "weekday below range",
			mutate: func(b *builder.SlotTemplateBuilder) { b.DayOfWeek = -1 },
			errIs:  schedule.ErrInvalidWeekday,
		},
		{
			name:   "weekday above range",
			mutate: func(b *builder.SlotTemplateBuilder) { b.DayOfWeek = 7 },
			errIs:  schedule.ErrInvalidWeekday,
		},
		{
			name:   "start equals end",
			mutate: func(b *builder.SlotTemplateBuilder) { b.EndHour = b.StartHour; b.EndMinute = b.StartMinute },
			errIs:  schedule.ErrInvalidTimeRange,
		},
		{
			name:   "start after end",
			mutate: func(b *builder.SlotTemplateBuilder) { b.StartHour = 14; b.EndHour = 9 },
			errIs:  schedule.ErrInvalidTimeRange,
		},
		{
			name:   "zero capacity",
			mutate: func(b *builder.SlotTemplateBuilder) { b.MaxBookings = 0 },
			errIs:  schedule.ErrInvalidCapacity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.NewSlotTemplateBuilder().With(tc.mutate).BuildDomain()
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestMatches(t *testing.T) {
	tmpl, err := builder.NewSlotTemplateBuilder().BuildDomain()
	require.NoError(t, err)

	monday10 := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC) // a Monday

	assert.True(t, tmpl.Matches(monday10))
	assert.False(t, tmpl.Matches(monday10.Add(30*time.Minute)), "off-grid time must not match")
	assert.False(t, tmpl.Matches(monday10.AddDate(0, 0, 1)), "different weekday must not match")

	tmpl.Disable()
	assert.False(t, tmpl.Matches(monday10), "disabled template never matches")
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := schedule.ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, tod.Hour())
	assert.Equal(t, 30, tod.Minute())
	assert.Equal(t, "09:30", tod.String())

	for _, v := range []string{"", "9:3", "24:00", "10:60", "abc"} {
		_, err := schedule.ParseTimeOfDay(v)
		assert.ErrorIs(t, err, schedule.ErrInvalidTimeOfDay, "value: %q", v)
	}
}
