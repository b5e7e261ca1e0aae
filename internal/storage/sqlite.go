package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/FaizGusion00/fgadmin-sub000/internal/domain"
	"github.com/FaizGusion00/fgadmin-sub000/internal/service"

	_ "github.com/mattn/go-sqlite3"
)

// Storage is the sqlite-backed event store used when the app runs against
// its own database instead of the remote data service.
type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT DEFAULT '',
			location TEXT DEFAULT '',
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			all_day INTEGER DEFAULT 0,
			event_type TEXT DEFAULT 'other',
			project_id TEXT REFERENCES projects(id),
			client_id TEXT REFERENCES clients(id),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_user_id ON events(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_start_time ON events(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_user_id ON projects(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_clients_user_id ON clients(user_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

const eventColumns = `e.id, e.user_id, e.title, e.description, e.location,
	e.start_time, e.end_time, e.all_day, e.event_type,
	e.project_id, e.client_id, p.name, c.name, e.created_at, e.updated_at`

// ListEvents returns the user's events with project/client names joined
// in, ordered by start time.
func (s *Storage) ListEvents(ctx context.Context, userID string) ([]*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + `
		FROM events e
		LEFT JOIN projects p ON e.project_id = p.id
		LEFT JOIN clients c ON e.client_id = c.id
		WHERE e.user_id = ?
		ORDER BY e.start_time ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEvent returns a single event owned by the user.
func (s *Storage) GetEvent(ctx context.Context, id, userID string) (*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + `
		FROM events e
		LEFT JOIN projects p ON e.project_id = p.id
		LEFT JOIN clients c ON e.client_id = c.id
		WHERE e.id = ? AND e.user_id = ?`

	row := s.db.QueryRowContext(ctx, query, id, userID)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEvent inserts a new event and returns it with names joined in.
func (s *Storage) CreateEvent(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, user_id, title, description, location, start_time, end_time, all_day, event_type, project_id, client_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Title, e.Description, e.Location, e.StartTime, e.EndTime, e.AllDay, string(e.Type), e.ProjectID, e.ClientID, now, now,
	)
	if err != nil {
		return nil, err
	}

	return s.GetEvent(ctx, e.ID, e.UserID)
}

// UpdateEvent replaces the stored event's fields.
func (s *Storage) UpdateEvent(ctx context.Context, e *domain.CalendarEvent) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET title = ?, description = ?, location = ?, start_time = ?, end_time = ?, all_day = ?, event_type = ?, project_id = ?, client_id = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		e.Title, e.Description, e.Location, e.StartTime, e.EndTime, e.AllDay, string(e.Type), e.ProjectID, e.ClientID, time.Now(), e.ID, e.UserID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.ErrNotFound
	}
	return nil
}

// DeleteEvent removes the user's event.
func (s *Storage) DeleteEvent(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.ErrNotFound
	}
	return nil
}

// CreateProject inserts a project reference row for the user.
func (s *Storage) CreateProject(ctx context.Context, userID, name string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `INSERT INTO projects (id, user_id, name) VALUES (?, ?, ?)`, id, userID, name)
	if err != nil {
		return "", err
	}
	return id, nil
}

// CreateClient inserts a client reference row for the user.
func (s *Storage) CreateClient(ctx context.Context, userID, name string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `INSERT INTO clients (id, user_id, name) VALUES (?, ?, ?)`, id, userID, name)
	if err != nil {
		return "", err
	}
	return id, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row scanner) (*domain.CalendarEvent, error) {
	e := &domain.CalendarEvent{}
	var desc, loc, eventType sql.NullString
	var projectID, clientID, projectName, clientName sql.NullString

	err := row.Scan(&e.ID, &e.UserID, &e.Title, &desc, &loc,
		&e.StartTime, &e.EndTime, &e.AllDay, &eventType,
		&projectID, &clientID, &projectName, &clientName, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	e.Description = desc.String
	e.Location = loc.String
	e.Type = domain.EventType(eventType.String)
	if projectID.Valid {
		v := projectID.String
		e.ProjectID = &v
	}
	if clientID.Valid {
		v := clientID.String
		e.ClientID = &v
	}
	e.ProjectName = projectName.String
	e.ClientName = clientName.String
	return e, nil
}
