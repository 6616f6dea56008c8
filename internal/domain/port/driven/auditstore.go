package driven

import (
	"context"

	"github.com/agenttools/agenttools/internal/domain/model"
)

// AuditStore defines the driven port for the tool-call audit trail.
type AuditStore interface {
	// Record persists one audit event. The event's Summary must already be
	// redacted; the store does not inspect it.
	Record(ctx context.Context, event model.ToolEvent) error
	// List returns the most recent events, newest first, up to limit.
	List(ctx context.Context, limit int) ([]model.ToolEvent, error)
	// Summary returns per-tool event counts, highest count first.
	Summary(ctx context.Context) ([]model.ToolCount, error)
}
