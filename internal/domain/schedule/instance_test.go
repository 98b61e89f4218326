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

func TestProject(t *testing.T) {
	monday, err := builder.NewSlotTemplateBuilder().BuildDomain() // Mon 10:00-11:00
	require.NoError(t, err)
	wednesday, err := builder.NewSlotTemplateBuilder().With(func(b *builder.SlotTemplateBuilder) {
		b.DayOfWeek = 3
		b.StartHour = 14
		b.EndHour = 15
	}).BuildDomain()
	require.NoError(t, err)

	// 2026-09-07 is a Monday; two full weeks.
	from := date(2026, 9, 7)
	to := date(2026, 9, 20)

	t.Run("projects each template onto its weekday", func(t *testing.T) {
		instances := schedule.Project(from, to, []*schedule.SlotTemplate{monday, wednesday}, nil)
		require.Len(t, instances, 4)

		assert.Equal(t, date(2026, 9, 7), instances[0].Date)
		assert.Equal(t, monday.ID(), instances[0].TemplateID)
		assert.Equal(t, date(2026, 9, 9), instances[1].Date)
		assert.Equal(t, wednesday.ID(), instances[1].TemplateID)
		assert.Equal(t, date(2026, 9, 14), instances[2].Date)
		assert.Equal(t, date(2026, 9, 16), instances[3].Date)

		assert.Equal(t, 2, instances[0].Capacity)
		assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), instances[0].StartAt(time.UTC))
	})

	t.Run("blackout days are dropped", func(t *testing.T) {
		w, err := schedule.NewBlackoutWindow(date(2026, 9, 14), date(2026, 9, 16), "", schedule.RecurrenceNone)
		require.NoError(t, err)

		instances := schedule.Project(from, to, []*schedule.SlotTemplate{monday, wednesday}, []*schedule.BlackoutWindow{w})
		require.Len(t, instances, 2)
		assert.Equal(t, date(2026, 9, 7), instances[0].Date)
		assert.Equal(t, date(2026, 9, 9), instances[1].Date)
	})

	t.Run("recurring blackout hits every projected year", func(t *testing.T) {
		w, err := schedule.NewBlackoutWindow(date(2020, 9, 14), date(2020, 9, 14), "", schedule.RecurrenceYearly)
		require.NoError(t, err)

		instances := schedule.Project(from, to, []*schedule.SlotTemplate{monday}, []*schedule.BlackoutWindow{w})
		require.Len(t, instances, 1)
		assert.Equal(t, date(2026, 9, 7), instances[0].Date)
	})

	t.Run("disabled templates are skipped", func(t *testing.T) {
		monday.Disable()

		instances := schedule.Project(from, to, []*schedule.SlotTemplate{monday, wednesday}, nil)
		require.Len(t, instances, 2)
		for _, inst := range instances {
			assert.Equal(t, wednesday.ID(), inst.TemplateID)
		}
	})

	t.Run("empty range yields nothing", func(t *testing.T) {
		instances := schedule.Project(to, from, []*schedule.SlotTemplate{wednesday}, nil)
		assert.Empty(t, instances)
	})
}

func TestProjectWithBusinessTimezoneRange(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)

	monday, err := builder.NewSlotTemplateBuilder().BuildDomain() // Mon 10:00-11:00
	require.NoError(t, err)

	// The resolver truncates the query range in the business location,
	// so Project receives JST midnights; stored blackouts stay in UTC.
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, jst)
	to := time.Date(2026, 9, 20, 0, 0, 0, 0, jst)

	instances := schedule.Project(from, to, []*schedule.SlotTemplate{monday}, nil)
	require.Len(t, instances, 2)
	assert.Equal(t, date(2026, 9, 7), instances[0].Date)
	assert.Equal(t, date(2026, 9, 14), instances[1].Date)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, jst), instances[0].StartAt(jst))

	w, err := schedule.NewBlackoutWindow(date(2026, 9, 14), date(2026, 9, 14), "", schedule.RecurrenceNone)
	require.NoError(t, err)

	instances = schedule.Project(from, to, []*schedule.SlotTemplate{monday}, []*schedule.BlackoutWindow{w})
	require.Len(t, instances, 1)
	assert.Equal(t, date(2026, 9, 7), instances[0].Date)
}
