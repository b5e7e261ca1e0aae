package calendar

import (
	"fmt"
	"time"
)

// Direction is a navigation step direction.
type Direction string

const (
	DirectionPrev Direction = "prev"
	DirectionNext Direction = "next"
)

// ParseDirection parses a direction from its string form.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionPrev, DirectionNext:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Navigate computes the next anchor for a prev/next step in the given
// mode: one day, seven days, or one month. Month steps preserve the
// day of month where possible and clamp to the last valid day of the
// target month otherwise (Jan 31 -> Feb 28), so a next/prev pair is
// invertible for day and week modes but not for month mode once the
// clamp fires; that is accepted behavior, not a bug.
func Navigate(anchor time.Time, mode ViewMode, dir Direction, today time.Time) time.Time {
	anchor = StartOfDay(orToday(anchor, today))
	step := 1
	if dir == DirectionPrev {
		step = -1
	}

	switch mode {
	case ViewModeWeek:
		return anchor.AddDate(0, 0, 7*step)
	case ViewModeMonth:
		return addMonthsClamped(anchor, step)
	default:
		return anchor.AddDate(0, 0, step)
	}
}

// addMonthsClamped shifts d by the given number of months without the
// stdlib's overflow rollover (Jan 31 + 1 month would otherwise become
// Mar 3).
func addMonthsClamped(d time.Time, months int) time.Time {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	target := first.AddDate(0, months, 0)
	day := d.Day()
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, d.Location())
}

// daysInMonth returns the number of days in the given month. Day zero of
// the following month is the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
