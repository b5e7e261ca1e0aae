package calendar

import (
	"fmt"
	"time"
)

// ViewMode selects how the calendar is rendered and how the visible date
// range is derived from the anchor date.
type ViewMode string

const (
	ViewModeDay   ViewMode = "day"
	ViewModeWeek  ViewMode = "week"
	ViewModeMonth ViewMode = "month"
)

// ParseViewMode parses a view mode from its string form.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewModeDay, ViewModeWeek, ViewModeMonth:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	switch m {
	case ViewModeDay, ViewModeWeek, ViewModeMonth:
		return true
	}
	return false
}

// DateRange is an inclusive [From, To] span of calendar days. It is always
// derived from an anchor date and a view mode, never stored on its own.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether d falls within the range, comparing calendar
// days only.
func (r DateRange) Contains(d time.Time) bool {
	day := StartOfDay(d)
	return !day.Before(StartOfDay(r.From)) && !day.After(StartOfDay(r.To))
}

// StartOfDay strips the time of day, keeping the location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday on or before d. Sunday is treated as
// weekday 7 so the offset is uniformly weekday-1 days back.
func WeekStart(d time.Time) time.Time {
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	return StartOfDay(d).AddDate(0, 0, -(wd - 1))
}

// MonthGridOrigin returns the Monday on or before the 1st of d's month,
// the first cell of the fixed 6x7 month grid.
func MonthGridOrigin(d time.Time) time.Time {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	return WeekStart(first)
}

// Range derives the visible date range for the given anchor and mode.
// A zero anchor falls back to today (injected, so callers stay
// deterministic under test).
func Range(anchor time.Time, mode ViewMode, today time.Time) DateRange {
	anchor = orToday(anchor, today)
	switch mode {
	case ViewModeWeek:
		start := WeekStart(anchor)
		return DateRange{From: start, To: start.AddDate(0, 0, 6)}
	case ViewModeMonth:
		origin := MonthGridOrigin(anchor)
		return DateRange{From: origin, To: origin.AddDate(0, 0, GridCells-1)}
	default:
		day := StartOfDay(anchor)
		return DateRange{From: day, To: day}
	}
}

func orToday(anchor, today time.Time) time.Time {
	if anchor.IsZero() {
		return StartOfDay(today)
	}
	return anchor
}

// ViewState is the session-scoped calendar state: the active mode, the
// focused anchor date and the current selection. It resets to today on a
// fresh load and is never persisted.
type ViewState struct {
	Mode      ViewMode
	Anchor    time.Time
	Selection Selection
}

// NewViewState returns the initial state: month view anchored on today.
func NewViewState(today time.Time) ViewState {
	anchor := StartOfDay(today)
	return ViewState{
		Mode:      ViewModeMonth,
		Anchor:    anchor,
		Selection: SingleSelection(anchor),
	}
}

// SetMode switches the representation while keeping the focused date
// within the new period. The selection value is converted between the
// scalar and range shapes instead of erroring on a mismatch.
func (s *ViewState) SetMode(mode ViewMode, today time.Time) {
	if !mode.Valid() {
		return
	}
	s.Mode = mode
	s.Anchor = orToday(s.Anchor, today)
	s.Selection = s.Selection.ForMode(mode, s.Anchor)
}

// SetAnchor focuses d and realigns the selection to the active mode.
func (s *ViewState) SetAnchor(d time.Time, today time.Time) {
	s.Anchor = StartOfDay(orToday(d, today))
	s.Selection = SingleSelection(s.Anchor).ForMode(s.Mode, s.Anchor)
}

// Range derives the visible range for the current state.
func (s *ViewState) Range(today time.Time) DateRange {
	return Range(s.Anchor, s.Mode, today)
}
