package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jcvera/migrapanel/internal/model"
)

// ListProjects fetches the full project snapshot.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.get(ctx, "/api/projects", &projects); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateProject posts a new project. The backend expects the initial
// phase marker alongside the document: fase "Despliegue", dated today.
// It is injected here rather than in the form; it is an audit-trail
// field, not user input.
func (c *Client) CreateProject(ctx context.Context, p *model.Project) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("rebuild project document: %w", err)
	}
	doc["fase"] = "Despliegue"
	doc["fase_date"] = time.Now().Format("2006-01-02")

	if err := c.send(ctx, http.MethodPost, "/api/projects", doc, nil); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// UpdateProject PUTs the full document for an existing project.
func (c *Client) UpdateProject(ctx context.Context, p *model.Project) error {
	path := fmt.Sprintf("/api/projects/%d", p.ID)
	if err := c.send(ctx, http.MethodPut, path, p, nil); err != nil {
		return fmt.Errorf("update project %d: %w", p.ID, err)
	}
	return nil
}

// UpdateProjectStatus updates a single field of a project.
func (c *Client) UpdateProjectStatus(ctx context.Context, id int64, fieldName, newStatus string) error {
	body := map[string]string{
		"field_name": fieldName,
		"new_status": newStatus,
	}
	path := fmt.Sprintf("/api/projects/%d/status", id)
	if err := c.send(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("update status of project %d: %w", id, err)
	}
	return nil
}

// Stats fetches the monthly project-start counts, optionally scoped to
// a year (0 = all years).
func (c *Client) Stats(ctx context.Context, year int) (model.Stats, error) {
	path := "/api/projects/stats"
	if year != 0 {
		path = fmt.Sprintf("%s?year=%d", path, year)
	}
	var stats model.Stats
	if err := c.get(ctx, path, &stats); err != nil {
		return model.Stats{}, fmt.Errorf("project stats: %w", err)
	}
	return stats, nil
}
