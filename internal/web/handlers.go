package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/FaizGusion00/fgadmin-sub000/internal/calendar"
	"github.com/FaizGusion00/fgadmin-sub000/internal/domain"
	"github.com/FaizGusion00/fgadmin-sub000/internal/service"
)

const dateLayout = "2006-01-02"

// Handler serves the calendar view and event CRUD endpoints.
type Handler struct {
	svc *service.CalendarViewService
	log *logrus.Logger
}

func NewHandler(svc *service.CalendarViewService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// eventJSON is the wire shape of an event in responses.
type eventJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AllDay      bool      `json:"all_day"`
	EventType   string    `json:"event_type"`
	ProjectID   *string   `json:"project_id,omitempty"`
	ClientID    *string   `json:"client_id,omitempty"`
	ProjectName string    `json:"project_name,omitempty"`
	ClientName  string    `json:"client_name,omitempty"`
}

type cellJSON struct {
	Date            string      `json:"date"`
	IsCurrentPeriod bool        `json:"is_current_period"`
	IsToday         bool        `json:"is_today"`
	Events          []eventJSON `json:"events"`
}

// selectionJSON is the tagged selection variant: a scalar date for
// day/month modes, a from/to pair for week mode.
type selectionJSON struct {
	Kind string `json:"kind"`
	Date string `json:"date,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

func toEventJSON(e *domain.CalendarEvent) eventJSON {
	return eventJSON{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		AllDay:      e.AllDay,
		EventType:   string(e.Type),
		ProjectID:   e.ProjectID,
		ClientID:    e.ClientID,
		ProjectName: e.ProjectName,
		ClientName:  e.ClientName,
	}
}

func toSelectionJSON(s calendar.Selection) selectionJSON {
	if s.Kind == calendar.SelectionRange {
		return selectionJSON{
			Kind: string(s.Kind),
			From: s.From.Format(dateLayout),
			To:   s.To.Format(dateLayout),
		}
	}
	return selectionJSON{Kind: string(s.Kind), Date: s.Date.Format(dateLayout)}
}

// parseViewParams reads the optional mode and anchor query parameters.
func parseViewParams(c *gin.Context) (calendar.ViewMode, time.Time, error) {
	var mode calendar.ViewMode
	if m := c.Query("mode"); m != "" {
		parsed, err := calendar.ParseViewMode(m)
		if err != nil {
			return "", time.Time{}, err
		}
		mode = parsed
	}

	var anchor time.Time
	if a := c.Query("anchor"); a != "" {
		parsed, err := time.ParseInLocation(dateLayout, a, time.Local)
		if err != nil {
			return "", time.Time{}, errors.New("invalid anchor date")
		}
		anchor = parsed
	}
	return mode, anchor, nil
}

// GetCalendar returns the rendered view: derived range, cell grid with
// matching events attached, and the selection in the mode's shape.
// GET /api/calendar?mode=month&anchor=2025-02-01
func (h *Handler) GetCalendar(c *gin.Context) {
	userID := currentUserID(c)

	mode, anchor, err := parseViewParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := h.svc.View(c.Request.Context(), userID, mode, anchor)

	cells := make([]cellJSON, 0, len(view.Cells))
	for _, cell := range view.Cells {
		events := make([]eventJSON, 0, len(cell.Events))
		for _, e := range cell.Events {
			events = append(events, toEventJSON(e))
		}
		cells = append(cells, cellJSON{
			Date:            cell.Date.Format(dateLayout),
			IsCurrentPeriod: cell.IsCurrentPeriod,
			IsToday:         cell.IsToday,
			Events:          events,
		})
	}

	resp := gin.H{
		"mode":   string(view.Mode),
		"anchor": view.Anchor.Format(dateLayout),
		"range": gin.H{
			"from": view.Range.From.Format(dateLayout),
			"to":   view.Range.To.Format(dateLayout),
		},
		"cells":     cells,
		"selection": toSelectionJSON(view.Selection),
	}
	if view.Notice != "" {
		resp["notice"] = view.Notice
	}
	c.JSON(http.StatusOK, resp)
}

// Navigate steps the anchor one period in the given direction.
// POST /api/calendar/navigate {"mode": "month", "anchor": "2025-01-31", "direction": "next"}
func (h *Handler) Navigate(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		Mode      string `json:"mode"`
		Anchor    string `json:"anchor"`
		Direction string `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	dir, err := calendar.ParseDirection(req.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var mode calendar.ViewMode
	if req.Mode != "" {
		if mode, err = calendar.ParseViewMode(req.Mode); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var anchor time.Time
	if req.Anchor != "" {
		if anchor, err = time.ParseInLocation(dateLayout, req.Anchor, time.Local); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anchor date"})
			return
		}
	}

	next := h.svc.Navigate(userID, mode, anchor, dir)
	c.JSON(http.StatusOK, gin.H{"anchor": next.Format(dateLayout)})
}

// Select focuses a clicked date and returns the resulting selection.
// POST /api/calendar/select {"date": "2025-01-27"}
func (h *Handler) Select(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	sel := h.svc.Select(userID, date)
	c.JSON(http.StatusOK, gin.H{"selection": toSelectionJSON(sel)})
}

// CreateEvent submits the create dialog's form.
// POST /api/events
func (h *Handler) CreateEvent(c *gin.Context) {
	userID := currentUserID(c)

	var form calendar.EventForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	event, err := h.svc.CreateEvent(c.Request.Context(), userID, form)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEventJSON(event))
}

// UpdateEvent submits the edit dialog's form against an existing event.
// PUT /api/events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	userID := currentUserID(c)
	eventID := c.Param("id")

	var form calendar.EventForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	event, err := h.svc.UpdateEvent(c.Request.Context(), userID, eventID, form)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventJSON(event))
}

// DeleteEvent removes an event. The UI asks for confirmation first; the
// handler refuses the call without confirm=true so an accidental request
// cannot delete anything.
// DELETE /api/events/:id?confirm=true
func (h *Handler) DeleteEvent(c *gin.Context) {
	userID := currentUserID(c)
	eventID := c.Param("id")

	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deletion requires confirm=true"})
		return
	}

	if err := h.svc.DeleteEvent(c.Request.Context(), userID, eventID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// writeError maps service errors to responses: validation failures are
// 422 with the offending field, store failures are 502, unknown events
// are 404.
func (h *Handler) writeError(c *gin.Context, err error) {
	var ve *calendar.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"field":   ve.Field,
			"message": ve.Message,
		})
		return
	}

	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	var fe *service.FetchError
	if errors.As(err, &fe) {
		h.log.WithError(err).Error("event store call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "event store unavailable"})
		return
	}

	h.log.WithError(err).Error("unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
