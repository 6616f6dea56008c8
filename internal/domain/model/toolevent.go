package model

import "time"

// ToolEvent is one persisted audit-trail entry for a tool invocation.
// Summary is a short human-readable description with secrets already
// redacted; raw tool input is never stored.
type ToolEvent struct {
	ID         int64
	OccurredAt time.Time
	EventType  string
	ToolName   string
	Summary    string
	AgentID    string
	WorkingDir string
}

// ToolCount is an aggregate row for audit summaries: how many events were
// recorded per tool.
type ToolCount struct {
	ToolName string
	Count    int
}
