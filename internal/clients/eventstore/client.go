package eventstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/FaizGusion00/fgadmin-sub000/internal/domain"
	"github.com/FaizGusion00/fgadmin-sub000/internal/service"
)

// Client talks to the remote event data service. No timeouts beyond the
// HTTP client's own and no retries; a failed call surfaces to the caller
// and the user re-triggers the action.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsConfigured returns true if the client has a base URL.
func (c *Client) IsConfigured() bool {
	return c.baseURL != ""
}

// doRequest performs an HTTP request with auth.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, resp.StatusCode, nil
}

// ListEvents returns all events owned by the user.
func (c *Client) ListEvents(ctx context.Context, userID string) ([]*domain.CalendarEvent, error) {
	path := "/events?user_id=" + url.QueryEscape(userID)

	data, _, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var records []EventRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal events: %w", err)
	}

	events := make([]*domain.CalendarEvent, 0, len(records))
	for i := range records {
		events = append(events, records[i].ToDomain())
	}
	return events, nil
}

// CreateEvent persists a new event and returns the stored record.
func (c *Client) CreateEvent(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	data, _, err := c.doRequest(ctx, http.MethodPost, "/events", requestFromDomain(e))
	if err != nil {
		return nil, err
	}

	var record EventRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal created event: %w", err)
	}
	return record.ToDomain(), nil
}

// UpdateEvent replaces the stored event's fields.
func (c *Client) UpdateEvent(ctx context.Context, e *domain.CalendarEvent) error {
	_, status, err := c.doRequest(ctx, http.MethodPut, "/events/"+url.PathEscape(e.ID), requestFromDomain(e))
	if err != nil {
		if status == http.StatusNotFound {
			return service.ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteEvent removes the event.
func (c *Client) DeleteEvent(ctx context.Context, id, userID string) error {
	path := "/events/" + url.PathEscape(id) + "?user_id=" + url.QueryEscape(userID)
	_, status, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		if status == http.StatusNotFound {
			return service.ErrNotFound
		}
		return err
	}
	return nil
}
