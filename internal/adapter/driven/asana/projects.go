package asana

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agenttools/agenttools/internal/domain/model"
	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

const defaultProjectLimit = 50

// ListProjects lists projects in the workspace, default scope applying when
// opts.Workspace is empty.
func (c *Client) ListProjects(ctx context.Context, opts driven.ProjectListOptions) ([]model.Project, error) {
	workspace, err := c.resolveWorkspace(ctx, opts.Workspace)
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultProjectLimit
	}

	query := url.Values{
		"workspace":  {workspace},
		"archived":   {strconv.FormatBool(opts.Archived)},
		"opt_fields": {"name,owner.name,due_on"},
		"limit":      {strconv.Itoa(limit)},
	}

	var projects []model.Project
	if err := c.getData(ctx, http.MethodGet, "projects", query, nil, &projects); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// ListSections lists the sections of a project.
func (c *Client) ListSections(ctx context.Context, projectGID string) ([]model.Section, error) {
	query := url.Values{"opt_fields": {"name"}}
	var sections []model.Section
	path := "projects/" + projectGID + "/sections"
	if err := c.getData(ctx, http.MethodGet, path, query, nil, &sections); err != nil {
		return nil, fmt.Errorf("list sections for project %s: %w", projectGID, err)
	}
	return sections, nil
}
