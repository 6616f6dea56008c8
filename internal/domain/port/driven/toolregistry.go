package driven

import (
	"context"

	"github.com/agenttools/agenttools/internal/domain/model"
)

// RegistrationSummary reports the outcome of a bulk tool registration.
type RegistrationSummary struct {
	Registered int
	Skipped    int
	Failed     int
}

// ToolRegistry defines the driven port for the tool-registry server that
// agents load their tools from.
type ToolRegistry interface {
	ListTools(ctx context.Context) ([]model.Tool, error)
	RegisterTool(ctx context.Context, tool model.Tool) (*model.Tool, error)
	// RegisterAll registers each tool that is not already present by name.
	// Individual failures are counted, not fatal.
	RegisterAll(ctx context.Context, tools []model.Tool) (RegistrationSummary, error)
	DeleteTool(ctx context.Context, toolID string) error
	// DeleteByName deletes every registered tool whose name is in names and
	// returns how many were deleted.
	DeleteByName(ctx context.Context, names []string) (int, error)
}
