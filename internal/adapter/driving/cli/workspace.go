package cli

import (
	"github.com/spf13/cobra"

	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// NewWorkspaceCmd creates the workspace command group.
func NewWorkspaceCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage workspaces",
	}

	cmd.AddCommand(newWorkspaceListCmd(trackerFn, outputFn))

	return cmd
}

func newWorkspaceListCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accessible workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			workspaces, err := tracker.ListWorkspaces(cmd.Context())
			if err != nil {
				return err
			}

			headers := []string{"GID", "NAME", "ORGANIZATION"}
			rows := make([][]string, len(workspaces))
			for i, ws := range workspaces {
				org := "No"
				if ws.IsOrganization {
					org = "Yes"
				}
				rows[i] = []string{ws.GID, ws.Name, org}
			}

			out.Print(headers, rows, workspaces)
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command, showing the authenticated user.
func NewWhoamiCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			user, err := tracker.Me(cmd.Context())
			if err != nil {
				return err
			}

			out.Print(
				[]string{"GID", "NAME", "EMAIL"},
				[][]string{{user.GID, user.Name, user.Email}},
				user,
			)
			return nil
		},
	}
}
