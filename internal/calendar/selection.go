package calendar

import "time"

// SelectionKind tags the shape of a selection value.
type SelectionKind string

const (
	SelectionSingle SelectionKind = "single"
	SelectionRange  SelectionKind = "range"
)

// Selection is the value reported to the hosting page when the user picks
// a date. Day and month views select a single date; week view selects a
// {from, to} pair. The shape legitimately changes when the mode changes
// between renders, so consumers switch on Kind rather than probing fields.
type Selection struct {
	Kind SelectionKind
	Date time.Time // set when Kind == SelectionSingle
	From time.Time // set when Kind == SelectionRange
	To   time.Time
}

// SingleSelection selects a single calendar day.
func SingleSelection(d time.Time) Selection {
	return Selection{Kind: SelectionSingle, Date: StartOfDay(d)}
}

// RangeSelection selects an inclusive day range.
func RangeSelection(from, to time.Time) Selection {
	return Selection{Kind: SelectionRange, From: StartOfDay(from), To: StartOfDay(to)}
}

// ForMode converts the selection to the shape the given mode expects. A
// mismatched or empty selection falls back to the anchor date instead of
// failing: the stored value may carry the previous mode's shape.
func (s Selection) ForMode(mode ViewMode, anchor time.Time) Selection {
	if mode == ViewModeWeek {
		var seed time.Time
		switch s.Kind {
		case SelectionRange:
			return s
		case SelectionSingle:
			seed = s.Date
		default:
			seed = anchor
		}
		start := WeekStart(StartOfDay(seed))
		return RangeSelection(start, start.AddDate(0, 0, 6))
	}

	switch s.Kind {
	case SelectionSingle:
		return s
	case SelectionRange:
		// Collapse to a scalar: keep the anchor if it sits inside the
		// selected range, otherwise take the range start.
		if (DateRange{From: s.From, To: s.To}).Contains(anchor) {
			return SingleSelection(anchor)
		}
		return SingleSelection(s.From)
	default:
		return SingleSelection(anchor)
	}
}
