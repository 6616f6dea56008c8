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

const (
	defaultTaskLimit = 100
	maxSearchLimit   = 100

	taskListFields   = "name,due_on,completed,assignee.name,projects.name"
	taskDetailFields = "name,notes,due_on,completed,assignee.name,projects.name," +
		"tags.name,memberships.section.name,dependencies,dependents"
)

// GetTask fetches full task details.
func (c *Client) GetTask(ctx context.Context, taskGID string) (*model.Task, error) {
	query := url.Values{"opt_fields": {taskDetailFields}}
	var task model.Task
	if err := c.getData(ctx, http.MethodGet, "tasks/"+taskGID, query, nil, &task); err != nil {
		return nil, fmt.Errorf("get task %s: %w", taskGID, err)
	}
	return &task, nil
}

// ListTasks lists tasks from a project, a section, or by assignee. The
// service's ordering is preserved; no client-side re-sorting happens.
func (c *Client) ListTasks(ctx context.Context, opts driven.TaskListOptions) ([]model.Task, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultTaskLimit
	}

	query := url.Values{
		"opt_fields": {taskListFields},
		"limit":      {strconv.Itoa(limit)},
	}

	var path string
	switch {
	case opts.Project != "":
		path = "projects/" + opts.Project + "/tasks"
	case opts.Section != "":
		path = "sections/" + opts.Section + "/tasks"
	case opts.Assignee != "":
		workspace, err := c.resolveWorkspace(ctx, opts.Workspace)
		if err != nil {
			return nil, err
		}
		path = "tasks"
		query.Set("assignee", opts.Assignee)
		query.Set("workspace", workspace)
	default:
		return nil, ErrNoTaskFilter
	}

	// The API filters incomplete tasks via completed_since=now; there is no
	// symmetric filter for completed-only, so only the false case maps.
	if opts.Completed != nil && !*opts.Completed {
		query.Set("completed_since", "now")
	}

	var tasks []model.Task
	if err := c.getData(ctx, http.MethodGet, path, query, nil, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// SearchTasks performs a full-text workspace search. Sorting by last
// modified time descending is requested from the server via query
// parameters, not applied client-side.
func (c *Client) SearchTasks(ctx context.Context, opts driven.TaskSearchOptions) ([]model.Task, error) {
	workspace, err := c.resolveWorkspace(ctx, opts.Workspace)
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 || limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	query := url.Values{
		"opt_fields":     {taskListFields},
		"limit":          {strconv.Itoa(limit)},
		"sort_by":        {"modified_at"},
		"sort_ascending": {"false"},
	}
	if opts.Text != "" {
		query.Set("text", opts.Text)
	}
	if opts.Assignee != "" {
		query.Set("assignee.any", opts.Assignee)
	}
	if opts.Projects != "" {
		query.Set("projects.any", opts.Projects)
	}
	if opts.Completed != nil {
		query.Set("completed", strconv.FormatBool(*opts.Completed))
	}

	var tasks []model.Task
	path := "workspaces/" + workspace + "/tasks/search"
	if err := c.getData(ctx, http.MethodGet, path, query, nil, &tasks); err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a task from the explicitly provided fields. When
// opts.Section is set, the task is moved there with a second call after
// creation. The two calls are not atomic: if the move fails, the created
// task is returned alongside the error and stays outside the section.
func (c *Client) CreateTask(ctx context.Context, opts driven.TaskCreateOptions) (*model.Task, error) {
	data := map[string]any{"name": opts.Name}
	if opts.Project != "" {
		data["projects"] = []string{opts.Project}
	}
	if opts.Assignee != "" {
		data["assignee"] = opts.Assignee
	}
	if opts.DueOn != "" {
		data["due_on"] = opts.DueOn
	}
	if opts.Notes != "" {
		data["notes"] = opts.Notes
	}

	// A task needs a parent container: either a project or a workspace.
	if opts.Project == "" {
		workspace, err := c.resolveWorkspace(ctx, opts.Workspace)
		if err != nil {
			return nil, err
		}
		data["workspace"] = workspace
	}

	var task model.Task
	if err := c.getData(ctx, http.MethodPost, "tasks", nil, map[string]any{"data": data}, &task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if opts.Section != "" && task.GID != "" {
		body := map[string]any{"data": map[string]string{"task": task.GID}}
		path := "sections/" + opts.Section + "/addTask"
		if err := c.getData(ctx, http.MethodPost, path, nil, body, nil); err != nil {
			return &task, fmt.Errorf("move task %s to section %s: %w", task.GID, opts.Section, err)
		}
	}

	return &task, nil
}

// UpdateTask applies the non-nil fields of update to a task. All-nil
// updates fail fast with ErrNoUpdates before any network call.
func (c *Client) UpdateTask(ctx context.Context, taskGID string, update driven.TaskUpdate) (*model.Task, error) {
	data := map[string]any{}
	if update.Name != nil {
		data["name"] = *update.Name
	}
	if update.Completed != nil {
		data["completed"] = *update.Completed
	}
	if update.Assignee != nil {
		data["assignee"] = *update.Assignee
	}
	if update.DueOn != nil {
		data["due_on"] = *update.DueOn
	}
	if update.Notes != nil {
		data["notes"] = *update.Notes
	}
	if len(data) == 0 {
		return nil, ErrNoUpdates
	}

	var task model.Task
	if err := c.getData(ctx, http.MethodPut, "tasks/"+taskGID, nil, map[string]any{"data": data}, &task); err != nil {
		return nil, fmt.Errorf("update task %s: %w", taskGID, err)
	}
	return &task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskGID string) error {
	if err := c.getData(ctx, http.MethodDelete, "tasks/"+taskGID, nil, nil, nil); err != nil {
		return fmt.Errorf("delete task %s: %w", taskGID, err)
	}
	return nil
}

// ListSubtasks lists the direct subtasks of a task.
func (c *Client) ListSubtasks(ctx context.Context, taskGID string) ([]model.Task, error) {
	query := url.Values{"opt_fields": {"name,completed,due_on,assignee.name"}}
	var tasks []model.Task
	path := "tasks/" + taskGID + "/subtasks"
	if err := c.getData(ctx, http.MethodGet, path, query, nil, &tasks); err != nil {
		return nil, fmt.Errorf("list subtasks of %s: %w", taskGID, err)
	}
	return tasks, nil
}

// CreateSubtask creates a subtask under the given parent. Project, Section,
// and Workspace in opts are ignored; the parent determines placement.
func (c *Client) CreateSubtask(ctx context.Context, parentGID string, opts driven.TaskCreateOptions) (*model.Task, error) {
	data := map[string]any{"name": opts.Name}
	if opts.Assignee != "" {
		data["assignee"] = opts.Assignee
	}
	if opts.DueOn != "" {
		data["due_on"] = opts.DueOn
	}
	if opts.Notes != "" {
		data["notes"] = opts.Notes
	}

	var task model.Task
	path := "tasks/" + parentGID + "/subtasks"
	if err := c.getData(ctx, http.MethodPost, path, nil, map[string]any{"data": data}, &task); err != nil {
		return nil, fmt.Errorf("create subtask of %s: %w", parentGID, err)
	}
	return &task, nil
}
