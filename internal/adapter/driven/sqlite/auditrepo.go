package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/agenttools/agenttools/internal/domain/model"
	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AuditStore = (*AuditRepo)(nil)

// defaultListLimit bounds List when the caller passes no limit.
const defaultListLimit = 50

// AuditRepo is the SQLite implementation of the AuditStore port.
type AuditRepo struct {
	db *DB
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Record persists one audit event. A zero OccurredAt defaults to now.
func (r *AuditRepo) Record(ctx context.Context, event model.ToolEvent) error {
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO tool_events (occurred_at, event_type, tool_name, summary, agent_id, working_dir)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.Writer.ExecContext(ctx, query,
		occurredAt.UTC().Format(time.RFC3339Nano),
		event.EventType,
		event.ToolName,
		event.Summary,
		event.AgentID,
		event.WorkingDir,
	)
	if err != nil {
		return fmt.Errorf("record tool event: %w", err)
	}
	return nil
}

// List returns the most recent events, newest first.
func (r *AuditRepo) List(ctx context.Context, limit int) ([]model.ToolEvent, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	const query = `
		SELECT id, occurred_at, event_type, tool_name, summary, agent_id, working_dir
		FROM tool_events
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?`
	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list tool events: %w", err)
	}
	defer rows.Close()

	var events []model.ToolEvent
	for rows.Next() {
		var ev model.ToolEvent
		var occurredAt string
		if err := rows.Scan(&ev.ID, &occurredAt, &ev.EventType, &ev.ToolName, &ev.Summary, &ev.AgentID, &ev.WorkingDir); err != nil {
			return nil, fmt.Errorf("scan tool event: %w", err)
		}
		ev.OccurredAt, err = parseTime(occurredAt)
		if err != nil {
			return nil, fmt.Errorf("parse occurred_at for event %d: %w", ev.ID, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tool events: %w", err)
	}

	return events, nil
}

// Summary returns per-tool event counts, highest count first.
func (r *AuditRepo) Summary(ctx context.Context) ([]model.ToolCount, error) {
	const query = `
		SELECT tool_name, COUNT(*) AS n
		FROM tool_events
		GROUP BY tool_name
		ORDER BY n DESC, tool_name ASC`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summarize tool events: %w", err)
	}
	defer rows.Close()

	var counts []model.ToolCount
	for rows.Next() {
		var tc model.ToolCount
		if err := rows.Scan(&tc.ToolName, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan tool count: %w", err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tool counts: %w", err)
	}

	return counts, nil
}

// parseTime handles both RFC3339 timestamps written by Record and the
// SQLite strftime default applied when a row is inserted without one.
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
