package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agenttools/agenttools/internal/adapter/driven/asana"
	"github.com/agenttools/agenttools/internal/adapter/driven/sqlite"
	"github.com/agenttools/agenttools/internal/adapter/driven/toolreg"
	"github.com/agenttools/agenttools/internal/config"
	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// NewRootCmd builds the agenttools command tree. Clients are constructed
// lazily inside each command so that, say, audit commands work without an
// Asana token.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	var jsonOut, verbose bool

	root := &cobra.Command{
		Use:           "agenttools",
		Short:         "Task tracker, tool registry, and audit trail for agent workflows",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output JSON")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show GIDs in task listings")

	outputFn := func() *Output { return NewOutput(jsonOut) }
	verboseFn := func() bool { return verbose }

	trackerFn := func() (driven.TaskTracker, error) {
		return asana.NewClientWithBaseURL(cfg.AsanaToken, cfg.AsanaWorkspace, cfg.AsanaBaseURL, nil)
	}
	registryFn := func() driven.ToolRegistry {
		return toolreg.NewClient(cfg.ToolServerURL, "")
	}
	auditFn := func() (driven.AuditStore, func(), error) {
		return openAuditStore(cfg.AuditDBPath)
	}

	root.AddCommand(
		NewWorkspaceCmd(trackerFn, outputFn),
		NewWhoamiCmd(trackerFn, outputFn),
		NewProjectCmd(trackerFn, outputFn),
		NewTaskCmd(trackerFn, outputFn, verboseFn),
		NewSearchCmd(trackerFn, outputFn, verboseFn),
		NewMyTasksCmd(trackerFn, outputFn, verboseFn),
		NewToolCmd(registryFn, outputFn),
		NewAuditCmd(auditFn, outputFn),
	)

	return root
}

// openAuditStore opens (and migrates) the audit database, creating its
// parent directory on first use. The returned func closes the database.
func openAuditStore(dbPath string) (driven.AuditStore, func(), error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create audit db directory: %w", err)
	}

	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit db: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate audit db: %w", err)
	}

	return sqlite.NewAuditRepo(db), func() { _ = db.Close() }, nil
}
