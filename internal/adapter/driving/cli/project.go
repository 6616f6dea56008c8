package cli

import (
	"github.com/spf13/cobra"

	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// NewProjectCmd creates the project command group.
func NewProjectCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(trackerFn, outputFn),
		newProjectSectionsCmd(trackerFn, outputFn),
	)

	return cmd
}

func newProjectListCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	var workspace string
	var archived bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			projects, err := tracker.ListProjects(cmd.Context(), driven.ProjectListOptions{
				Workspace: workspace,
				Archived:  archived,
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			headers := []string{"GID", "DUE", "NAME"}
			rows := make([][]string, len(projects))
			for i, p := range projects {
				due := p.DueOn
				if due == "" {
					due = "-"
				}
				rows[i] = []string{p.GID, due, p.Name}
			}

			out.Print(headers, rows, projects)
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace GID (default workspace when omitted)")
	cmd.Flags().BoolVar(&archived, "archived", false, "List archived projects")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of projects")

	return cmd
}

func newProjectSectionsCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "sections PROJECT_GID",
		Short: "List sections in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			sections, err := tracker.ListSections(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			headers := []string{"GID", "NAME"}
			rows := make([][]string, len(sections))
			for i, s := range sections {
				rows[i] = []string{s.GID, s.Name}
			}

			out.Print(headers, rows, sections)
			return nil
		},
	}
}
