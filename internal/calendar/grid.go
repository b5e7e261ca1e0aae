package calendar

import (
	"time"

	"github.com/FaizGusion00/fgadmin-sub000/internal/domain"
)

// GridCells is the fixed size of the month grid: 6 weeks of 7 days,
// regardless of how many days the month has or how many leading
// out-of-period days are needed.
const GridCells = 42

// GridCell is one renderable date slot. Cells are ephemeral: the grid is
// fully recomputed from (anchor, mode) on every call and never patched
// incrementally.
type GridCell struct {
	Date            time.Time
	IsCurrentPeriod bool
	IsToday         bool
	Events          []*domain.CalendarEvent
}

// BuildGrid maps (anchor, mode) to the ordered cell sequence for that
// view. Month view yields exactly GridCells cells starting at the grid
// origin, with out-of-period cells flagged but still present (they stay
// selectable). Week view yields 7 cells Monday through Sunday. Day view
// yields the single cell backing the agenda list.
func BuildGrid(anchor time.Time, mode ViewMode, today time.Time) []GridCell {
	anchor = StartOfDay(orToday(anchor, today))
	today = StartOfDay(today)

	switch mode {
	case ViewModeMonth:
		origin := MonthGridOrigin(anchor)
		cells := make([]GridCell, 0, GridCells)
		for i := 0; i < GridCells; i++ {
			date := origin.AddDate(0, 0, i)
			cells = append(cells, GridCell{
				Date:            date,
				IsCurrentPeriod: date.Month() == anchor.Month() && date.Year() == anchor.Year(),
				IsToday:         date.Equal(today),
			})
		}
		return cells
	case ViewModeWeek:
		start := WeekStart(anchor)
		cells := make([]GridCell, 0, 7)
		for i := 0; i < 7; i++ {
			date := start.AddDate(0, 0, i)
			cells = append(cells, GridCell{
				Date:            date,
				IsCurrentPeriod: true,
				IsToday:         date.Equal(today),
			})
		}
		return cells
	default:
		return []GridCell{{
			Date:            anchor,
			IsCurrentPeriod: true,
			IsToday:         anchor.Equal(today),
		}}
	}
}
