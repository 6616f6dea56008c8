// hook-audit is a PostToolUse logger. It reads one JSON tool-call event
// from stdin and records a redacted summary in the audit database. It
// always exits 0; auditing must never block the agent.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agenttools/agenttools/internal/adapter/driven/sqlite"
	"github.com/agenttools/agenttools/internal/application"
	"github.com/agenttools/agenttools/internal/config"
	"github.com/agenttools/agenttools/internal/domain/model"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "AUDIT: %v\n", err)
	}
	os.Exit(0)
}

func run() error {
	var call model.ToolCall
	if err := json.NewDecoder(os.Stdin).Decode(&call); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	if call.EventType != model.EventPostToolUse {
		return nil
	}
	call.AgentID = os.Getenv("LETTA_AGENT_ID")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.AuditDBPath), 0o755); err != nil {
		return fmt.Errorf("create audit db directory: %w", err)
	}
	db, err := sqlite.NewDB(cfg.AuditDBPath)
	if err != nil {
		return fmt.Errorf("open audit db: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate audit db: %w", err)
	}

	svc := application.NewAuditService(sqlite.NewAuditRepo(db))
	if err := svc.RecordToolUse(context.Background(), call); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Logged: %s\n", call.ToolName)
	return nil
}
