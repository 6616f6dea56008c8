package model

// Tool-call hook event types as delivered on the hook binaries' stdin.
const (
	EventPreToolUse  = "PreToolUse"
	EventPostToolUse = "PostToolUse"
)

// ToolCall is one tool invocation as reported to a hook: which tool the
// agent is calling (or just called) and the tool's input fields. ToolInput
// is an opaque bag; hooks only inspect well-known keys like "command" or
// "file_path".
type ToolCall struct {
	EventType  string         `json:"event_type"`
	ToolName   string         `json:"tool_name"`
	ToolInput  map[string]any `json:"tool_input"`
	WorkingDir string         `json:"working_directory,omitempty"`

	// AgentID identifies the calling agent in multi-agent setups. It arrives
	// via the environment rather than the event payload, so the hook main
	// fills it in.
	AgentID string `json:"-"`
}

// InputString returns the string value of a tool-input field, or "" when the
// field is absent or not a string.
func (c ToolCall) InputString(key string) string {
	if s, ok := c.ToolInput[key].(string); ok {
		return s
	}
	return ""
}
