// Package toolreg implements the ToolRegistry port against a Letta-style
// tool server, reusing the shared httpapi request executor.
package toolreg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/agenttools/agenttools/internal/adapter/driven/httpapi"
	"github.com/agenttools/agenttools/internal/domain/model"
	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// DefaultServerURL is where a locally-run tool server listens.
const DefaultServerURL = "http://localhost:8283"

// Compile-time interface satisfaction check.
var _ driven.ToolRegistry = (*Client)(nil)

// Client is a tool-registry API client. The server is usually a local
// process without authentication; token may be empty.
type Client struct {
	exec   *httpapi.Executor
	logger *slog.Logger
}

// NewClient creates a Client for the given server URL. An empty serverURL
// falls back to DefaultServerURL.
func NewClient(serverURL, token string) *Client {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	return &Client{
		exec: httpapi.NewExecutor(httpapi.Options{
			BaseURL: serverURL,
			Token:   token,
		}),
		logger: slog.Default(),
	}
}

// NewClientWithHTTPClient creates a Client with an injected http.Client,
// for tests backed by an httptest server.
func NewClientWithHTTPClient(serverURL, token string, httpClient *http.Client) *Client {
	c := NewClient(serverURL, token)
	c.exec = httpapi.NewExecutor(httpapi.Options{
		BaseURL:    serverURL,
		Token:      token,
		HTTPClient: httpClient,
	})
	return c
}

// ListTools returns every registered tool. Unlike the task tracker, the
// tool server returns a bare JSON array with no envelope.
func (c *Client) ListTools(ctx context.Context) ([]model.Tool, error) {
	raw, err := c.exec.Do(ctx, http.MethodGet, "v1/tools", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	var tools []model.Tool
	if err := json.Unmarshal(raw, &tools); err != nil {
		return nil, fmt.Errorf("decode tool list: %w", err)
	}
	return tools, nil
}

// RegisterTool registers one tool and returns the server's record of it,
// including the assigned ID.
func (c *Client) RegisterTool(ctx context.Context, tool model.Tool) (*model.Tool, error) {
	raw, err := c.exec.Do(ctx, http.MethodPost, "v1/tools", nil, tool)
	if err != nil {
		return nil, fmt.Errorf("register tool %q: %w", tool.Name, err)
	}

	var created model.Tool
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("decode registered tool %q: %w", tool.Name, err)
	}
	return &created, nil
}

// RegisterAll registers each tool not already present by name. Tools that
// fail to register are counted and logged; the first error does not stop
// the rest.
func (c *Client) RegisterAll(ctx context.Context, tools []model.Tool) (driven.RegistrationSummary, error) {
	existing, err := c.ListTools(ctx)
	if err != nil {
		return driven.RegistrationSummary{}, err
	}
	existingNames := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		existingNames[t.Name] = struct{}{}
	}

	var summary driven.RegistrationSummary
	for _, tool := range tools {
		if _, ok := existingNames[tool.Name]; ok {
			c.logger.Info("tool already registered, skipping", "tool", tool.Name)
			summary.Skipped++
			continue
		}

		created, err := c.RegisterTool(ctx, tool)
		if err != nil {
			c.logger.Error("tool registration failed", "tool", tool.Name, "error", err)
			summary.Failed++
			continue
		}

		c.logger.Info("tool registered", "tool", tool.Name, "id", created.ID)
		summary.Registered++
	}

	return summary, nil
}

// DeleteTool deletes a tool by server-assigned ID.
func (c *Client) DeleteTool(ctx context.Context, toolID string) error {
	if _, err := c.exec.Do(ctx, http.MethodDelete, "v1/tools/"+toolID, nil, nil); err != nil {
		return fmt.Errorf("delete tool %s: %w", toolID, err)
	}
	return nil
}

// DeleteByName deletes every registered tool whose name is in names.
// Names that are not registered are ignored.
func (c *Client) DeleteByName(ctx context.Context, names []string) (int, error) {
	existing, err := c.ListTools(ctx)
	if err != nil {
		return 0, err
	}
	byName := make(map[string]string, len(existing))
	for _, t := range existing {
		byName[t.Name] = t.ID
	}

	deleted := 0
	for _, name := range names {
		id, ok := byName[name]
		if !ok {
			continue
		}
		if err := c.DeleteTool(ctx, id); err != nil {
			return deleted, err
		}
		c.logger.Info("tool deleted", "tool", name)
		deleted++
	}
	return deleted, nil
}
