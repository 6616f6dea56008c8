package driven

import (
	"context"

	"github.com/agenttools/agenttools/internal/domain/model"
)

// ProjectListOptions filters ListProjects. Workspace falls back to the
// client's default workspace when empty.
type ProjectListOptions struct {
	Workspace string
	Archived  bool
	Limit     int
}

// TaskListOptions selects which task collection to list. Exactly one of
// Project, Section, or Assignee must be set; Workspace only applies to
// assignee queries. Completed == false (non-nil) restricts to incomplete
// tasks; nil means no completion filter.
type TaskListOptions struct {
	Project   string
	Section   string
	Assignee  string
	Workspace string
	Completed *bool
	Limit     int
}

// TaskSearchOptions filters full-text task search within a workspace.
// Results are sorted by last-modified time descending; the server does the
// sorting, requested via query parameters.
type TaskSearchOptions struct {
	Text      string
	Assignee  string
	Projects  string
	Workspace string
	Completed *bool
	Limit     int
}

// TaskCreateOptions describes a task to create. Only Name is required.
// When Section is set the creation is a two-step composite: create, then
// move into the section. Workspace is only consulted when no Project is
// given.
type TaskCreateOptions struct {
	Name      string
	Project   string
	Section   string
	Assignee  string
	DueOn     string
	Notes     string
	Workspace string
}

// TaskUpdate carries the fields to change on a task. Nil pointers are
// omitted from the request entirely; an update with every field nil is
// rejected before any network call.
type TaskUpdate struct {
	Name      *string
	Completed *bool
	Assignee  *string
	DueOn     *string
	Notes     *string
}

// TaskTracker defines the driven port for the task-tracking service.
// Every read is a live remote call; the implementation caches nothing
// except its resolved default workspace.
type TaskTracker interface {
	ListWorkspaces(ctx context.Context) ([]model.Workspace, error)
	Me(ctx context.Context) (*model.User, error)

	ListProjects(ctx context.Context, opts ProjectListOptions) ([]model.Project, error)
	ListSections(ctx context.Context, projectGID string) ([]model.Section, error)

	ListTasks(ctx context.Context, opts TaskListOptions) ([]model.Task, error)
	GetTask(ctx context.Context, taskGID string) (*model.Task, error)
	SearchTasks(ctx context.Context, opts TaskSearchOptions) ([]model.Task, error)
	// CreateTask creates the task and, when opts.Section is set, moves it
	// there as a second call. On a failed move the created task is returned
	// alongside the error; there is no rollback.
	CreateTask(ctx context.Context, opts TaskCreateOptions) (*model.Task, error)
	UpdateTask(ctx context.Context, taskGID string, update TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, taskGID string) error

	ListSubtasks(ctx context.Context, taskGID string) ([]model.Task, error)
	CreateSubtask(ctx context.Context, parentGID string, opts TaskCreateOptions) (*model.Task, error)

	// ListComments returns only user-authored comments, filtered from the
	// task's activity stories.
	ListComments(ctx context.Context, taskGID string, limit int) ([]model.Story, error)
	AddComment(ctx context.Context, taskGID, text string) (*model.Story, error)

	ListDependencies(ctx context.Context, taskGID string) ([]model.Task, error)
	AddDependency(ctx context.Context, taskGID, dependsOnGID string) error
}
