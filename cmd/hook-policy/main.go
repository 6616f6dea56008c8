// hook-policy is a PreToolUse gate. It reads one JSON tool-call event from
// stdin and exits 0 to allow or 2 to block, printing the violation to
// stderr. Anything it cannot parse or load is allowed through: a broken
// policy must not brick the agent.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/agenttools/agenttools/internal/application"
	"github.com/agenttools/agenttools/internal/config"
	"github.com/agenttools/agenttools/internal/domain/model"
)

const (
	exitAllow = 0
	exitBlock = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var call model.ToolCall
	if err := json.NewDecoder(os.Stdin).Decode(&call); err != nil {
		fmt.Fprintf(os.Stderr, "POLICY: failed to parse input: %v\n", err)
		return exitAllow
	}

	if call.EventType != model.EventPreToolUse {
		return exitAllow
	}
	call.AgentID = os.Getenv("LETTA_AGENT_ID")

	policy := application.DefaultPolicyConfig()
	cfg, err := config.Load()
	if err == nil && cfg.PolicyFile != "" {
		loaded, err := application.LoadPolicyConfig(cfg.PolicyFile)
		if err != nil {
			slog.Warn("policy file unreadable, using defaults", "path", cfg.PolicyFile, "error", err)
		} else {
			policy = loaded
		}
	}

	svc, err := application.NewPolicyService(policy)
	if err != nil {
		slog.Warn("policy rules invalid, allowing", "error", err)
		return exitAllow
	}

	decision := svc.Evaluate(call)
	if decision.Allowed {
		return exitAllow
	}

	command := call.InputString("command")
	if len(command) > 100 {
		command = command[:100] + "..."
	}
	fmt.Fprintf(os.Stderr,
		"POLICY VIOLATION: Command blocked.\n\nCommand: %s\nReason: %s\n\n"+
			"If this is intentional, adjust the policy file or ask the user to run the command manually.\n",
		command, decision.Reason,
	)
	return exitBlock
}
