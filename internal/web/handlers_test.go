package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FaizGusion00/fgadmin-sub000/internal/domain"
	"github.com/FaizGusion00/fgadmin-sub000/internal/service"
)

var testSecret = []byte("test-secret")

type memStore struct {
	events []*domain.CalendarEvent
}

func (m *memStore) ListEvents(ctx context.Context, userID string) ([]*domain.CalendarEvent, error) {
	var out []*domain.CalendarEvent
	for _, e := range m.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) CreateEvent(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	e.ID = "evt-1"
	m.events = append(m.events, e)
	return e, nil
}

func (m *memStore) UpdateEvent(ctx context.Context, e *domain.CalendarEvent) error {
	for i, existing := range m.events {
		if existing.ID == e.ID && existing.UserID == e.UserID {
			m.events[i] = e
			return nil
		}
	}
	return service.ErrNotFound
}

func (m *memStore) DeleteEvent(ctx context.Context, id, userID string) error {
	for i, e := range m.events {
		if e.ID == id && e.UserID == userID {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

func testRouter(store service.EventStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	now := func() time.Time { return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC) }
	svc := service.NewCalendarViewService(store, log, time.UTC, now)
	return NewRouter(svc, testSecret, log)
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCalendarRequiresAuth(t *testing.T) {
	router := testRouter(&memStore{})

	w := doRequest(t, router, http.MethodGet, "/api/calendar", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A token signed with a different key is rejected.
	bad := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "user-1"})
	badSigned, err := bad.SignedString([]byte("other-key"))
	require.NoError(t, err)
	w = doRequest(t, router, http.MethodGet, "/api/calendar", badSigned, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCalendarMonth(t *testing.T) {
	store := &memStore{events: []*domain.CalendarEvent{{
		ID:        "evt-0",
		UserID:    "user-1",
		Title:     "Kickoff",
		StartTime: time.Date(2025, time.February, 14, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, time.February, 14, 10, 0, 0, 0, time.UTC),
		Type:      domain.EventTypeMeeting,
	}}}
	router := testRouter(store)
	token := signToken(t, "user-1")

	w := doRequest(t, router, http.MethodGet, "/api/calendar?mode=month&anchor=2025-02-01", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Mode   string `json:"mode"`
		Anchor string `json:"anchor"`
		Range  struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"range"`
		Cells []struct {
			Date            string `json:"date"`
			IsCurrentPeriod bool   `json:"is_current_period"`
			Events          []struct {
				ID string `json:"id"`
			} `json:"events"`
		} `json:"cells"`
		Selection struct {
			Kind string `json:"kind"`
			Date string `json:"date"`
		} `json:"selection"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "month", resp.Mode)
	assert.Equal(t, "2025-02-01", resp.Anchor)
	assert.Equal(t, "2025-01-27", resp.Range.From)
	require.Len(t, resp.Cells, 42)
	assert.Equal(t, "2025-01-27", resp.Cells[0].Date)
	assert.False(t, resp.Cells[0].IsCurrentPeriod)
	assert.Equal(t, "single", resp.Selection.Kind)

	var found bool
	for _, cell := range resp.Cells {
		if cell.Date == "2025-02-14" {
			require.Len(t, cell.Events, 1)
			assert.Equal(t, "evt-0", cell.Events[0].ID)
			found = true
		}
	}
	assert.True(t, found)
}

func TestGetCalendarWeekSelection(t *testing.T) {
	router := testRouter(&memStore{})
	token := signToken(t, "user-1")

	w := doRequest(t, router, http.MethodGet, "/api/calendar?mode=week&anchor=2025-03-15", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Selection struct {
			Kind string `json:"kind"`
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"selection"`
		Cells []json.RawMessage `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Cells, 7)
	assert.Equal(t, "range", resp.Selection.Kind)
	assert.Equal(t, "2025-03-10", resp.Selection.From)
	assert.Equal(t, "2025-03-16", resp.Selection.To)
}

func TestGetCalendarRejectsBadParams(t *testing.T) {
	router := testRouter(&memStore{})
	token := signToken(t, "user-1")

	w := doRequest(t, router, http.MethodGet, "/api/calendar?mode=year", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/calendar?anchor=15-03-2025", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNavigateEndpoint(t *testing.T) {
	router := testRouter(&memStore{})
	token := signToken(t, "user-1")

	body := `{"mode": "month", "anchor": "2025-01-31", "direction": "next"}`
	w := doRequest(t, router, http.MethodPost, "/api/calendar/navigate", token, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Anchor string `json:"anchor"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-02-28", resp.Anchor)
}

func TestCreateEventValidation(t *testing.T) {
	store := &memStore{}
	router := testRouter(store)
	token := signToken(t, "user-1")

	body := `{"title": "   ", "date": "2025-04-01", "all_day": true}`
	w := doRequest(t, router, http.MethodPost, "/api/events", token, body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "title", resp.Field)
	assert.Empty(t, store.events, "invalid form must not persist")
}

func TestCreateEventAllDay(t *testing.T) {
	store := &memStore{}
	router := testRouter(store)
	token := signToken(t, "user-1")

	body := `{"title": "Audit", "date": "2025-04-01", "all_day": true, "event_type": "deadline", "project_id": "none"}`
	w := doRequest(t, router, http.MethodPost, "/api/events", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, store.events, 1)
	e := store.events[0]
	assert.Equal(t, "user-1", e.UserID)
	assert.True(t, e.AllDay)
	assert.Equal(t, e.StartTime, e.EndTime)
	assert.Nil(t, e.ProjectID)
}

func TestDeleteEventRequiresConfirmation(t *testing.T) {
	store := &memStore{events: []*domain.CalendarEvent{{
		ID: "evt-0", UserID: "user-1", Title: "Kickoff",
		StartTime: time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC),
	}}}
	router := testRouter(store)
	token := signToken(t, "user-1")

	w := doRequest(t, router, http.MethodDelete, "/api/events/evt-0", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, store.events, 1)

	w = doRequest(t, router, http.MethodDelete, "/api/events/evt-0?confirm=true", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.events)
}

func TestDeleteMissingEvent(t *testing.T) {
	router := testRouter(&memStore{})
	token := signToken(t, "user-1")

	w := doRequest(t, router, http.MethodDelete, "/api/events/nope?confirm=true", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
