package calendar

import (
	"time"

	"github.com/FaizGusion00/fgadmin-sub000/internal/domain"
)

// DayKey is a date with the time of day stripped, used to bucket events
// for same-day membership tests.
type DayKey string

// DayKeyOf returns the bucket key for t's calendar day.
func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Format("2006-01-02"))
}

// SameDay reports whether a and b fall on the same calendar day.
// Equality is on year+month+day only; time of day is ignored.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// EventsOn returns the events whose start falls on d's calendar day,
// preserving input order. This is the direct-scan strategy: fine at small
// scale, O(cells x events) when applied per grid cell.
func EventsOn(events []*domain.CalendarEvent, d time.Time) []*domain.CalendarEvent {
	var out []*domain.CalendarEvent
	for _, e := range events {
		if SameDay(e.StartTime, d) {
			out = append(out, e)
		}
	}
	return out
}

// EventIndex buckets events by calendar day so the grid step can look
// each cell up in O(1). Build it once per fetch.
type EventIndex map[DayKey][]*domain.CalendarEvent

// BuildIndex groups events by the day their start falls on.
func BuildIndex(events []*domain.CalendarEvent) EventIndex {
	ix := make(EventIndex, len(events))
	for _, e := range events {
		key := DayKeyOf(e.StartTime)
		ix[key] = append(ix[key], e)
	}
	return ix
}

// On returns the events bucketed under d's calendar day.
func (ix EventIndex) On(d time.Time) []*domain.CalendarEvent {
	return ix[DayKeyOf(d)]
}

// AttachEvents fills each cell's event list from the index and returns
// the same slice for chaining.
func AttachEvents(cells []GridCell, ix EventIndex) []GridCell {
	for i := range cells {
		cells[i].Events = ix.On(cells[i].Date)
	}
	return cells
}
