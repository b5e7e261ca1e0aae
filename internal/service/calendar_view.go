package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/FaizGusion00/fgadmin-sub000/internal/calendar"
	"github.com/FaizGusion00/fgadmin-sub000/internal/domain"
)

// CalendarViewService owns the calendar view state per user: the active
// mode and anchor, the last fetched event list, and the day index built
// from it. All derived data (range, grid, selection) is recomputed from
// that state on every call.
type CalendarViewService struct {
	store EventStore
	log   *logrus.Logger
	loc   *time.Location
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// session is the state for one user's active view. fetchToken correlates
// the most recently issued fetch with its completion so a stale response
// cannot overwrite newer state.
type session struct {
	state      calendar.ViewState
	events     []*domain.CalendarEvent
	index      calendar.EventIndex
	loaded     bool
	fetchToken string
	notice     string
}

// ViewData is what the hosting page renders for one view.
type ViewData struct {
	Mode      calendar.ViewMode
	Anchor    time.Time
	Range     calendar.DateRange
	Cells     []calendar.GridCell
	Selection calendar.Selection
	Notice    string
}

// NewCalendarViewService creates the service. now is injected so range
// and grid computation stay deterministic under test.
func NewCalendarViewService(store EventStore, log *logrus.Logger, loc *time.Location, now func() time.Time) *CalendarViewService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &CalendarViewService{
		store:    store,
		log:      log,
		loc:      loc,
		now:      now,
		sessions: make(map[string]*session),
	}
}

func (s *CalendarViewService) today() time.Time {
	return calendar.StartOfDay(s.now().In(s.loc))
}

// sessionFor returns the user's session, creating a fresh one anchored on
// today if none exists. Caller must hold s.mu.
func (s *CalendarViewService) sessionFor(userID string) *session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{state: calendar.NewViewState(s.today())}
		s.sessions[userID] = sess
	}
	return sess
}

// Refresh fetches the user's events and replaces the session's event
// list. Each fetch carries a correlation token; if a newer fetch was
// issued while this one was in flight, the late result is discarded. A
// failed refresh leaves previously loaded events intact and records a
// transient notice; a failed initial load leaves the view empty.
func (s *CalendarViewService) Refresh(ctx context.Context, userID string) error {
	s.mu.Lock()
	sess := s.sessionFor(userID)
	token := uuid.NewString()
	sess.fetchToken = token
	s.mu.Unlock()

	events, err := s.store.ListEvents(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.fetchToken != token {
		s.log.WithFields(logrus.Fields{"user_id": userID, "fetch_token": token}).
			Debug("discarding stale event fetch")
		return nil
	}

	if err != nil {
		sess.notice = "failed to load events"
		s.log.WithFields(logrus.Fields{"user_id": userID, "fetch_token": token}).
			WithError(err).Error("event fetch failed")
		return &FetchError{Op: "list", Err: err}
	}

	sess.events = events
	sess.index = calendar.BuildIndex(events)
	sess.loaded = true
	return nil
}

// View applies the requested mode/anchor to the user's session and
// returns the data for one render: the derived range, the cell grid with
// events attached, and the selection in the mode's shape. A zero anchor
// keeps the session's current focus. The first call for a user triggers
// the initial event load; if that load fails the view renders empty
// rather than erroring.
func (s *CalendarViewService) View(ctx context.Context, userID string, mode calendar.ViewMode, anchor time.Time) ViewData {
	s.mu.Lock()
	sess := s.sessionFor(userID)
	loaded := sess.loaded
	s.mu.Unlock()

	if !loaded {
		// Initial load; Refresh records the notice on failure.
		_ = s.Refresh(ctx, userID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	if mode.Valid() {
		sess.state.SetMode(mode, today)
	}
	if !anchor.IsZero() {
		sess.state.SetAnchor(anchor, today)
	}

	cells := calendar.BuildGrid(sess.state.Anchor, sess.state.Mode, today)
	cells = calendar.AttachEvents(cells, sess.index)

	notice := sess.notice
	sess.notice = ""

	return ViewData{
		Mode:      sess.state.Mode,
		Anchor:    sess.state.Anchor,
		Range:     sess.state.Range(today),
		Cells:     cells,
		Selection: sess.state.Selection,
		Notice:    notice,
	}
}

// Navigate steps the user's anchor in the given direction and returns the
// new anchor.
func (s *CalendarViewService) Navigate(userID string, mode calendar.ViewMode, anchor time.Time, dir calendar.Direction) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionFor(userID)
	today := s.today()
	if mode.Valid() {
		sess.state.SetMode(mode, today)
	}
	if anchor.IsZero() {
		anchor = sess.state.Anchor
	}

	next := calendar.Navigate(anchor, sess.state.Mode, dir, today)
	sess.state.SetAnchor(next, today)
	return next
}

// Select focuses the clicked date (out-of-period month cells included)
// and returns the selection in the active mode's shape.
func (s *CalendarViewService) Select(userID string, date time.Time) calendar.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionFor(userID)
	sess.state.SetAnchor(date, s.today())
	return sess.state.Selection
}

// CreateEvent composes the form into an event and persists it. The new
// event is applied to the in-memory list optimistically relative to the
// next background refresh.
func (s *CalendarViewService) CreateEvent(ctx context.Context, userID string, form calendar.EventForm) (*domain.CalendarEvent, error) {
	event, err := calendar.ComposeEvent(form, userID, s.loc)
	if err != nil {
		return nil, err
	}

	created, err := s.store.CreateEvent(ctx, event)
	if err != nil {
		return nil, &FetchError{Op: "create", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessionFor(userID)
	sess.events = append(sess.events, created)
	sess.index = calendar.BuildIndex(sess.events)
	return created, nil
}

// UpdateEvent composes the form into an update of an existing event.
func (s *CalendarViewService) UpdateEvent(ctx context.Context, userID, eventID string, form calendar.EventForm) (*domain.CalendarEvent, error) {
	event, err := calendar.ComposeEvent(form, userID, s.loc)
	if err != nil {
		return nil, err
	}
	event.ID = eventID

	if err := s.store.UpdateEvent(ctx, event); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, &FetchError{Op: "update", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessionFor(userID)
	for i, e := range sess.events {
		if e.ID == eventID {
			sess.events[i] = event
			break
		}
	}
	sess.index = calendar.BuildIndex(sess.events)
	return event, nil
}

// DeleteEvent removes the event. The web layer requires an explicit
// confirmation before calling this.
func (s *CalendarViewService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	if err := s.store.DeleteEvent(ctx, eventID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return &FetchError{Op: "delete", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessionFor(userID)
	for i, e := range sess.events {
		if e.ID == eventID {
			sess.events = append(sess.events[:i], sess.events[i+1:]...)
			break
		}
	}
	sess.index = calendar.BuildIndex(sess.events)
	return nil
}

// ActiveUsers returns the users with a live view session, for the
// background refresher.
func (s *CalendarViewService) ActiveUsers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		users = append(users, id)
	}
	return users
}
