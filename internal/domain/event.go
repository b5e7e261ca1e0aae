package domain

import "time"

// EventType categorizes a calendar event.
type EventType string

const (
	EventTypeMeeting  EventType = "meeting"
	EventTypeCall     EventType = "call"
	EventTypeInternal EventType = "internal"
	EventTypeDeadline EventType = "deadline"
	EventTypeOther    EventType = "other"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeMeeting, EventTypeCall, EventTypeInternal, EventTypeDeadline, EventTypeOther:
		return true
	}
	return false
}

// CalendarEvent represents a scheduled event owned by a single user.
// ProjectID/ClientID are optional foreign keys; ProjectName/ClientName are
// denormalized display names filled in by the event store when the
// references are set.
type CalendarEvent struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
	Type        EventType
	ProjectID   *string
	ClientID    *string
	ProjectName string
	ClientName  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FormatTime returns the time span for display.
func (e *CalendarEvent) FormatTime() string {
	if e.AllDay {
		return "All day"
	}
	if e.EndTime.IsZero() {
		return e.StartTime.Format("15:04")
	}
	return e.StartTime.Format("15:04") + "-" + e.EndTime.Format("15:04")
}

// FormatDate returns the event's start date for display.
func (e *CalendarEvent) FormatDate() string {
	return e.StartTime.Format("2006-01-02")
}
