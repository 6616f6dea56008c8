// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agenttools/agenttools/internal/adapter/driven/asana"
	"github.com/agenttools/agenttools/internal/adapter/driven/toolreg"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	AsanaToken     string
	AsanaWorkspace string
	AsanaBaseURL   string
	ToolServerURL  string
	AuditDBPath    string
	PolicyFile     string
}

// HasAsanaToken returns true when an Asana access token is configured.
// Commands that talk to Asana refuse to run without one; the audit and
// tool-registry commands do not need it.
func (c *Config) HasAsanaToken() bool {
	return c.AsanaToken != ""
}

// Load reads configuration from environment variables. ASANA_ACCESS_TOKEN is
// optional at load time so that non-Asana commands work without it. Optional
// variables with defaults: ASANA_BASE_URL (the public API), TOOL_SERVER_URL
// (http://localhost:8283), AGENTTOOLS_AUDIT_DB (~/.agenttools/audit.db).
func Load() (*Config, error) {
	cfg := &Config{
		AsanaToken:     os.Getenv("ASANA_ACCESS_TOKEN"),
		AsanaWorkspace: os.Getenv("ASANA_WORKSPACE"),
		AsanaBaseURL:   asana.DefaultBaseURL,
		ToolServerURL:  toolreg.DefaultServerURL,
		PolicyFile:     os.Getenv("AGENTTOOLS_POLICY_FILE"),
	}

	if v, ok := os.LookupEnv("ASANA_BASE_URL"); ok && v != "" {
		cfg.AsanaBaseURL = v
	}
	if v, ok := os.LookupEnv("TOOL_SERVER_URL"); ok && v != "" {
		cfg.ToolServerURL = v
	}

	if v, ok := os.LookupEnv("AGENTTOOLS_AUDIT_DB"); ok && v != "" {
		cfg.AuditDBPath = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory for audit db: %w", err)
		}
		cfg.AuditDBPath = filepath.Join(home, ".agenttools", "audit.db")
	}

	return cfg, nil
}
