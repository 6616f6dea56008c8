package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// NewAuditCmd creates the audit command group, reading the local audit
// database written by the hook binaries.
func NewAuditCmd(auditFn func() (driven.AuditStore, func(), error), outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the tool-call audit trail",
	}

	cmd.AddCommand(
		newAuditListCmd(auditFn, outputFn),
		newAuditSummaryCmd(auditFn, outputFn),
	)

	return cmd
}

func newAuditListCmd(auditFn func() (driven.AuditStore, func(), error), outputFn func() *Output) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent tool calls, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := auditFn()
			if err != nil {
				return err
			}
			defer closeFn()
			out := outputFn()

			events, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			headers := []string{"TIME", "TOOL", "SUMMARY"}
			rows := make([][]string, len(events))
			for i, ev := range events {
				rows[i] = []string{
					ev.OccurredAt.Local().Format(time.DateTime),
					ev.ToolName,
					ev.Summary,
				}
			}

			out.Print(headers, rows, events)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of events")

	return cmd
}

func newAuditSummaryCmd(auditFn func() (driven.AuditStore, func(), error), outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show per-tool usage counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := auditFn()
			if err != nil {
				return err
			}
			defer closeFn()
			out := outputFn()

			counts, err := store.Summary(cmd.Context())
			if err != nil {
				return err
			}

			headers := []string{"TOOL", "CALLS"}
			rows := make([][]string, len(counts))
			for i, tc := range counts {
				rows[i] = []string{tc.ToolName, strconv.Itoa(tc.Count)}
			}

			out.Print(headers, rows, counts)
			return nil
		},
	}
}
