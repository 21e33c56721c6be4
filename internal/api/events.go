package api

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/jcvera/migrapanel/internal/model"
)

// ListEvents fetches all calendar events, sorted by start time.
// Events with an unparseable start sort first, so they stay visible.
func (c *Client) ListEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.get(ctx, "/api/events", &events); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	sort.SliceStable(events, func(i, j int) bool {
		ti, _ := events[i].StartTime()
		tj, _ := events[j].StartTime()
		return ti.Before(tj)
	})
	return events, nil
}

// CreateEvent posts a new event.
func (c *Client) CreateEvent(ctx context.Context, e *model.Event) error {
	if err := c.send(ctx, http.MethodPost, "/api/events", e, nil); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// UpdateEvent PUTs an existing event.
func (c *Client) UpdateEvent(ctx context.Context, e *model.Event) error {
	path := fmt.Sprintf("/api/events/%d", e.ID)
	if err := c.send(ctx, http.MethodPut, path, e, nil); err != nil {
		return fmt.Errorf("update event %d: %w", e.ID, err)
	}
	return nil
}

// DeleteEvent deletes an event by id.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/events/%d", id)
	if err := c.send(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}
