package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FaizGusion00/fgadmin-sub000/internal/domain"
)

func event(id string, start time.Time) *domain.CalendarEvent {
	return &domain.CalendarEvent{ID: id, Title: id, StartTime: start, EndTime: start.Add(time.Hour)}
}

func TestSameDayIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)
	night := time.Date(2025, time.March, 15, 23, 59, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(morning, morning.AddDate(0, 0, 1)))
	// Same day-of-month in a different month or year is not the same day.
	assert.False(t, SameDay(morning, time.Date(2025, time.April, 15, 9, 0, 0, 0, time.UTC)))
	assert.False(t, SameDay(morning, time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)))
}

func TestBucketingIgnoresTimeOfDay(t *testing.T) {
	early := event("early", time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC))
	late := event("late", time.Date(2025, time.March, 15, 23, 59, 0, 0, time.UTC))
	other := event("other", time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))

	ix := BuildIndex([]*domain.CalendarEvent{early, late, other})

	day := date(2025, time.March, 15)
	require.Len(t, ix.On(day), 2)
	assert.Equal(t, "early", ix.On(day)[0].ID)
	assert.Equal(t, "late", ix.On(day)[1].ID)
	assert.Len(t, ix.On(date(2025, time.March, 16)), 1)
	assert.Empty(t, ix.On(date(2025, time.March, 17)))
}

func TestScanAndIndexStrategiesAgree(t *testing.T) {
	events := []*domain.CalendarEvent{
		event("a", time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)),
		event("b", time.Date(2025, time.March, 10, 17, 30, 0, 0, time.UTC)),
		event("c", time.Date(2025, time.March, 11, 12, 0, 0, 0, time.UTC)),
		event("d", time.Date(2025, time.April, 10, 12, 0, 0, 0, time.UTC)),
	}

	ix := BuildIndex(events)
	for day := date(2025, time.March, 9); day.Before(date(2025, time.April, 12)); day = day.AddDate(0, 0, 1) {
		assert.Equal(t, EventsOn(events, day), ix.On(day), "day %s", day.Format("2006-01-02"))
	}
}

func TestAttachEvents(t *testing.T) {
	today := date(2025, time.February, 14)
	cells := BuildGrid(date(2025, time.February, 1), ViewModeMonth, today)

	ix := BuildIndex([]*domain.CalendarEvent{
		event("in-period", time.Date(2025, time.February, 14, 10, 0, 0, 0, time.UTC)),
		event("leading", time.Date(2025, time.January, 27, 9, 0, 0, 0, time.UTC)),
		event("outside-grid", time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)),
	})

	cells = AttachEvents(cells, ix)

	// Events land on their cells, including out-of-period leading days.
	require.Len(t, cells[0].Events, 1)
	assert.Equal(t, "leading", cells[0].Events[0].ID)

	var total int
	for _, cell := range cells {
		total += len(cell.Events)
	}
	assert.Equal(t, 2, total)
}

func TestDayKeyOf(t *testing.T) {
	assert.Equal(t, DayKey("2025-03-15"), DayKeyOf(time.Date(2025, time.March, 15, 23, 59, 0, 0, time.UTC)))
}
