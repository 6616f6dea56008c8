// Package asana implements the TaskTracker port against the Asana REST API
// using the shared httpapi request executor.
package asana

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/agenttools/agenttools/internal/adapter/driven/httpapi"
	"github.com/agenttools/agenttools/internal/domain/model"
	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// DefaultBaseURL is the production Asana API root.
const DefaultBaseURL = "https://app.asana.com/api/1.0"

// Compile-time interface satisfaction check.
var _ driven.TaskTracker = (*Client)(nil)

// Client is an Asana REST API client. It caches nothing except the resolved
// default workspace; every read is a live remote call.
type Client struct {
	exec   *httpapi.Executor
	logger *slog.Logger

	mu        sync.Mutex
	workspace string // Memoized default workspace GID; empty until resolved.
}

// NewClient creates a Client for the production API. token is required;
// workspace is the optional default workspace GID, resolved lazily from the
// service when empty.
func NewClient(token, workspace string) (*Client, error) {
	return newClient(token, workspace, DefaultBaseURL, nil)
}

// NewClientWithBaseURL creates a Client against a custom base URL with an
// injected http.Client. Intended for tests backed by an httptest server.
func NewClientWithBaseURL(token, workspace, baseURL string, httpClient *http.Client) (*Client, error) {
	return newClient(token, workspace, baseURL, httpClient)
}

func newClient(token, workspace, baseURL string, httpClient *http.Client) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	exec := httpapi.NewExecutor(httpapi.Options{
		BaseURL:    baseURL,
		Token:      token,
		AuthHint:   tokenHint,
		HTTPClient: httpClient,
	})

	return &Client{
		exec:      exec,
		logger:    slog.Default(),
		workspace: workspace,
	}, nil
}

// envelope is the {"data": ...} wrapper every Asana response uses.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// getData performs a request and unmarshals the enveloped data payload into out.
func (c *Client) getData(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.exec.Do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// resolveWorkspace returns the workspace GID to use for a scope-less
// operation. An explicit value wins and is never cached. Otherwise the
// memoized default is used, resolving it with a single list call on first
// use. The mutex keeps concurrent first calls from resolving twice.
func (c *Client) resolveWorkspace(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.workspace != "" {
		return c.workspace, nil
	}

	workspaces, err := c.ListWorkspaces(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve default workspace: %w", err)
	}
	if len(workspaces) == 0 {
		return "", ErrNoWorkspace
	}

	c.workspace = workspaces[0].GID
	c.logger.Debug("default workspace resolved", "workspace", c.workspace)
	return c.workspace, nil
}

// ListWorkspaces lists all workspaces the credential can access.
func (c *Client) ListWorkspaces(ctx context.Context) ([]model.Workspace, error) {
	query := url.Values{"opt_fields": {"name,is_organization"}}
	var workspaces []model.Workspace
	if err := c.getData(ctx, http.MethodGet, "workspaces", query, nil, &workspaces); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return workspaces, nil
}

// Me returns the user the credential belongs to.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	query := url.Values{"opt_fields": {"name,email"}}
	var user model.User
	if err := c.getData(ctx, http.MethodGet, "users/me", query, nil, &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &user, nil
}
