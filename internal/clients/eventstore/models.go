package eventstore

import (
	"time"

	"github.com/FaizGusion00/fgadmin-sub000/internal/domain"
)

// EventRecord is the wire shape of a calendar event as the remote data
// service returns it. Instants are ISO-8601; project/client come back as
// optional nested refs carrying the display name.
type EventRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AllDay      bool      `json:"all_day"`
	EventType   string    `json:"event_type"`
	ProjectID   *string   `json:"project_id,omitempty"`
	ClientID    *string   `json:"client_id,omitempty"`
	Project     *NamedRef `json:"project,omitempty"`
	Client      *NamedRef `json:"client,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// NamedRef is a joined foreign-key row reduced to its display name.
type NamedRef struct {
	Name string `json:"name"`
}

// CreateEventRequest is the body for creating or updating an event.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AllDay      bool      `json:"all_day"`
	EventType   string    `json:"event_type"`
	ProjectID   *string   `json:"project_id"`
	ClientID    *string   `json:"client_id"`
	UserID      string    `json:"user_id"`
}

// ToDomain converts the wire record to the domain event.
func (r *EventRecord) ToDomain() *domain.CalendarEvent {
	e := &domain.CalendarEvent{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		AllDay:      r.AllDay,
		Type:        domain.EventType(r.EventType),
		ProjectID:   r.ProjectID,
		ClientID:    r.ClientID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Project != nil {
		e.ProjectName = r.Project.Name
	}
	if r.Client != nil {
		e.ClientName = r.Client.Name
	}
	return e
}

func requestFromDomain(e *domain.CalendarEvent) CreateEventRequest {
	return CreateEventRequest{
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		AllDay:      e.AllDay,
		EventType:   string(e.Type),
		ProjectID:   e.ProjectID,
		ClientID:    e.ClientID,
		UserID:      e.UserID,
	}
}
