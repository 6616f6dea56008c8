package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"

	"github.com/agenttools/agenttools/internal/domain/model"
	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// maxCommandSummary caps how much of a raw Bash command is kept in a
// summary line.
const maxCommandSummary = 100

// redactPatterns scrub credential-looking substrings before a summary is
// persisted. Order matters: the specific token prefixes run after the
// generic assignment patterns so partial overlaps still collapse.
var redactPatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)[A-Za-z_]*API_KEY[=:]\s*\S+`), "[REDACTED_KEY]"},
	{regexp.MustCompile(`(?i)[A-Za-z_]*PASSWORD[=:]\s*\S+`), "[REDACTED]"},
	{regexp.MustCompile(`(?i)[A-Za-z_]*SECRET[=:]\s*\S+`), "[REDACTED]"},
	{regexp.MustCompile(`(?i)[A-Za-z_]*TOKEN[=:]\s*\S+`), "[REDACTED]"},
	{regexp.MustCompile(`(?i)Bearer\s+\S+`), "Bearer [REDACTED]"},
	{regexp.MustCompile(`sk-[A-Za-z0-9]+`), "[REDACTED_SK]"},
	{regexp.MustCompile(`ghp_[A-Za-z0-9]+`), "[REDACTED_GH]"},
}

// Redact replaces credential-looking substrings in text with placeholder
// markers.
func Redact(text string) string {
	for _, p := range redactPatterns {
		text = p.re.ReplaceAllString(text, p.replacement)
	}
	return text
}

// AuditService turns tool calls into redacted audit events and persists
// them.
type AuditService struct {
	store  driven.AuditStore
	logger *slog.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(store driven.AuditStore) *AuditService {
	return &AuditService{store: store, logger: slog.Default()}
}

// RecordToolUse builds a one-line summary for the call and records it.
// Secrets are redacted before anything touches the store.
func (s *AuditService) RecordToolUse(ctx context.Context, call model.ToolCall) error {
	event := model.ToolEvent{
		EventType:  call.EventType,
		ToolName:   call.ToolName,
		Summary:    Redact(summarize(call)),
		AgentID:    call.AgentID,
		WorkingDir: call.WorkingDir,
	}

	if err := s.store.Record(ctx, event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	s.logger.Debug("logged tool use", "tool", call.ToolName)
	return nil
}

// summarize builds a human-readable one-liner per tool. For Bash the
// description is preferred over the raw command so commands with embedded
// secrets rarely reach the log at all.
func summarize(call model.ToolCall) string {
	switch call.ToolName {
	case "Bash":
		if desc := call.InputString("description"); desc != "" {
			return desc
		}
		cmd := call.InputString("command")
		if len(cmd) > maxCommandSummary {
			cmd = cmd[:maxCommandSummary]
		}
		return "ran: " + cmd
	case "Edit":
		return "edited " + baseOrUnknown(call.InputString("file_path"))
	case "Write":
		return "wrote " + baseOrUnknown(call.InputString("file_path"))
	case "Task":
		desc := call.InputString("description")
		if desc == "" {
			desc = "task"
		}
		if agentType := call.InputString("subagent_type"); agentType != "" {
			return fmt.Sprintf("%s (%s)", desc, agentType)
		}
		return desc
	default:
		if desc := call.InputString("description"); desc != "" {
			return desc
		}
		return call.ToolName
	}
}

func baseOrUnknown(path string) string {
	if path == "" {
		return "unknown"
	}
	return filepath.Base(path)
}
