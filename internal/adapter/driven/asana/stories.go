package asana

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agenttools/agenttools/internal/domain/model"
)

const defaultCommentLimit = 50

// ListComments returns the user-authored comments on a task, filtered from
// its activity stories (the API mixes comments with system events).
func (c *Client) ListComments(ctx context.Context, taskGID string, limit int) ([]model.Story, error) {
	if limit <= 0 {
		limit = defaultCommentLimit
	}

	query := url.Values{
		"opt_fields": {"created_at,created_by.name,text,type,resource_subtype"},
		"limit":      {strconv.Itoa(limit)},
	}

	var stories []model.Story
	path := "tasks/" + taskGID + "/stories"
	if err := c.getData(ctx, http.MethodGet, path, query, nil, &stories); err != nil {
		return nil, fmt.Errorf("list comments on task %s: %w", taskGID, err)
	}

	comments := make([]model.Story, 0, len(stories))
	for _, s := range stories {
		if s.IsComment() {
			comments = append(comments, s)
		}
	}
	return comments, nil
}

// AddComment posts a comment on a task.
func (c *Client) AddComment(ctx context.Context, taskGID, text string) (*model.Story, error) {
	body := map[string]any{"data": map[string]string{"text": text}}
	var story model.Story
	path := "tasks/" + taskGID + "/stories"
	if err := c.getData(ctx, http.MethodPost, path, nil, body, &story); err != nil {
		return nil, fmt.Errorf("add comment to task %s: %w", taskGID, err)
	}
	return &story, nil
}

// ListDependencies returns the tasks this task depends on.
func (c *Client) ListDependencies(ctx context.Context, taskGID string) ([]model.Task, error) {
	query := url.Values{"opt_fields": {"name,completed"}}
	var tasks []model.Task
	path := "tasks/" + taskGID + "/dependencies"
	if err := c.getData(ctx, http.MethodGet, path, query, nil, &tasks); err != nil {
		return nil, fmt.Errorf("list dependencies of %s: %w", taskGID, err)
	}
	return tasks, nil
}

// AddDependency makes taskGID depend on dependsOnGID.
func (c *Client) AddDependency(ctx context.Context, taskGID, dependsOnGID string) error {
	body := map[string]any{"data": map[string]any{"dependencies": []string{dependsOnGID}}}
	path := "tasks/" + taskGID + "/addDependencies"
	if err := c.getData(ctx, http.MethodPost, path, nil, body, nil); err != nil {
		return fmt.Errorf("add dependency %s to %s: %w", dependsOnGID, taskGID, err)
	}
	return nil
}
