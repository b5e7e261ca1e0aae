package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/FaizGusion00/fgadmin-sub000/internal/domain"
)

// FKNone is the sentinel the form sends when no project/client is chosen.
// It maps to a null reference, never to the literal string.
const FKNone = "none"

// EventForm is the raw dialog state for creating or editing an event.
// Date is "2006-01-02"; the time fields are "15:04" and are ignored
// entirely when AllDay is set.
type EventForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	AllDay      bool   `json:"all_day"`
	Location    string `json:"location"`
	EventType   string `json:"event_type"`
	ProjectID   string `json:"project_id"`
	ClientID    string `json:"client_id"`
}

// ValidationError marks a form field as invalid. It blocks submission and
// is shown inline at the offending field; the user recovers by editing
// and resubmitting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ComposeEvent validates the form and builds the persistable event for
// the given owner. All-day events collapse start and end to the date at
// local midnight. Timed events combine the date with each time field
// independently; an end before the start is deliberately accepted — the
// composer records what the form said and enforces no ordering.
func ComposeEvent(form EventForm, userID string, loc *time.Location) (*domain.CalendarEvent, error) {
	if loc == nil {
		loc = time.Local
	}

	if strings.TrimSpace(form.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}

	date, err := time.ParseInLocation("2006-01-02", form.Date, loc)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "invalid date"}
	}

	eventType := domain.EventType(form.EventType)
	if form.EventType == "" {
		eventType = domain.EventTypeOther
	} else if !eventType.Valid() {
		return nil, &ValidationError{Field: "event_type", Message: "unknown event type"}
	}

	start := date
	end := date
	if !form.AllDay {
		if start, err = combine(date, form.StartTime); err != nil {
			return nil, &ValidationError{Field: "start_time", Message: "invalid start time"}
		}
		if end, err = combine(date, form.EndTime); err != nil {
			return nil, &ValidationError{Field: "end_time", Message: "invalid end time"}
		}
	}

	return &domain.CalendarEvent{
		UserID:      userID,
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		StartTime:   start,
		EndTime:     end,
		AllDay:      form.AllDay,
		Type:        eventType,
		ProjectID:   foreignKey(form.ProjectID),
		ClientID:    foreignKey(form.ClientID),
	}, nil
}

// combine merges a calendar date with an "HH:MM" time of day.
func combine(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// foreignKey maps the form's reference value to an optional key: empty
// and the FKNone sentinel both mean no reference.
func foreignKey(v string) *string {
	if v == "" || v == FKNone {
		return nil
	}
	return &v
}
