package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenttools/agenttools/internal/domain/model"
	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// taskHeaders returns the task table headers, GID first in verbose mode.
func taskHeaders(verbose bool) []string {
	headers := []string{"", "DUE", "ASSIGNEE", "NAME"}
	if verbose {
		headers = append([]string{"GID"}, headers...)
	}
	return headers
}

// taskRow formats one task table row: completion glyph, due date, assignee,
// name, plus the GID in verbose mode.
func taskRow(t model.Task, verbose bool) []string {
	status := "[ ]"
	if t.Completed {
		status = "[x]"
	}
	due := t.DueOn
	if due == "" {
		due = "-"
	}
	assignee := t.AssigneeName()
	if assignee == "" {
		assignee = "-"
	}

	row := []string{status, due, assignee, t.Name}
	if verbose {
		row = append([]string{t.GID}, row...)
	}
	return row
}

// printTasks renders a task collection plus a trailing count line.
func printTasks(out *Output, tasks []model.Task, verbose bool) {
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		rows[i] = taskRow(t, verbose)
	}
	out.Print(taskHeaders(verbose), rows, tasks)
	if !out.JSONMode() {
		out.Success(fmt.Sprintf("(%d tasks)", len(tasks)))
	}
}

// incompleteFilter converts the --incomplete flag into the tracker's
// completion filter: nil means no filter.
func incompleteFilter(incomplete bool) *bool {
	if !incomplete {
		return nil
	}
	f := false
	return &f
}

// NewTaskCmd creates the task command group.
func NewTaskCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output, verboseFn func() bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(trackerFn, outputFn, verboseFn),
		newTaskShowCmd(trackerFn, outputFn),
		newTaskCreateCmd(trackerFn, outputFn),
		newTaskUpdateCmd(trackerFn, outputFn),
		newTaskDeleteCmd(trackerFn, outputFn),
		newTaskSubtasksCmd(trackerFn, outputFn, verboseFn),
		newTaskAddSubtaskCmd(trackerFn, outputFn),
		newTaskCommentsCmd(trackerFn, outputFn),
		newTaskCommentCmd(trackerFn, outputFn),
		newTaskDepsCmd(trackerFn, outputFn, verboseFn),
		newTaskAddDepCmd(trackerFn, outputFn),
	)

	return cmd
}

func newTaskListCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output, verboseFn func() bool) *cobra.Command {
	var project, section, assignee, workspace string
	var incomplete bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a project, section, or by assignee",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			tasks, err := tracker.ListTasks(cmd.Context(), driven.TaskListOptions{
				Project:   project,
				Section:   section,
				Assignee:  assignee,
				Workspace: workspace,
				Completed: incompleteFilter(incomplete),
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			printTasks(out, tasks, verboseFn())
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project GID")
	cmd.Flags().StringVarP(&section, "section", "s", "", "Section GID")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Assignee (GID or 'me')")
	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace GID for assignee queries")
	cmd.Flags().BoolVarP(&incomplete, "incomplete", "i", false, "Only incomplete tasks")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of tasks")

	return cmd
}

func newTaskShowCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show TASK_GID",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			task, err := tracker.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if out.JSONMode() {
				out.JSON(task)
				return nil
			}

			completed := "No"
			if task.Completed {
				completed = "Yes"
			}
			due := task.DueOn
			if due == "" {
				due = "None"
			}
			assignee := task.AssigneeName()
			if assignee == "" {
				assignee = "Unassigned"
			}

			out.Line("Task: %s", task.Name)
			out.Line("GID: %s", task.GID)
			out.Line("Completed: %s", completed)
			out.Line("Due: %s", due)
			out.Line("Assignee: %s", assignee)

			if len(task.Projects) > 0 {
				names := make([]string, len(task.Projects))
				for i, p := range task.Projects {
					names[i] = p.Name
				}
				out.Line("Projects: %s", strings.Join(names, ", "))
			}
			if task.Notes != "" {
				out.Line("")
				out.Line("Description:")
				out.Line("%s", task.Notes)
			}
			return nil
		},
	}
}

func newTaskCreateCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	var project, section, assignee, due, notes, workspace string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			task, err := tracker.CreateTask(cmd.Context(), driven.TaskCreateOptions{
				Name:      args[0],
				Project:   project,
				Section:   section,
				Assignee:  assignee,
				DueOn:     due,
				Notes:     notes,
				Workspace: workspace,
			})
			// The section move can fail after the task exists. Report what was
			// created before surfacing the error.
			if task != nil {
				out.Success(fmt.Sprintf("Created: %s (GID %s)", task.Name, task.GID))
				if out.JSONMode() {
					out.JSON(task)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project GID")
	cmd.Flags().StringVarP(&section, "section", "s", "", "Section GID to move the task into after creation")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Assignee (GID or 'me')")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Task description")
	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace GID when no project is given")

	return cmd
}

func newTaskUpdateCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	var name, completed, assignee, due, notes string

	cmd := &cobra.Command{
		Use:   "update TASK_GID",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			update := driven.TaskUpdate{}
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("completed") {
				b, err := strconv.ParseBool(completed)
				if err != nil {
					return fmt.Errorf("invalid value for --completed: %s", completed)
				}
				update.Completed = &b
			}
			if cmd.Flags().Changed("assignee") {
				update.Assignee = &assignee
			}
			if cmd.Flags().Changed("due") {
				update.DueOn = &due
			}
			if cmd.Flags().Changed("notes") {
				update.Notes = &notes
			}

			task, err := tracker.UpdateTask(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Updated: %s", task.Name))
			if out.JSONMode() {
				out.JSON(task)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New task name")
	cmd.Flags().StringVarP(&completed, "completed", "c", "", "Completion status (true/false)")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Assignee (GID or 'me')")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Task description")

	return cmd
}

func newTaskDeleteCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TASK_GID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			if err := tracker.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Deleted task %s", args[0]))
			return nil
		},
	}
}

func newTaskSubtasksCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output, verboseFn func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "subtasks TASK_GID",
		Short: "List subtasks of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			subtasks, err := tracker.ListSubtasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printTasks(out, subtasks, verboseFn())
			return nil
		},
	}
}

func newTaskAddSubtaskCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	var assignee, due, notes string

	cmd := &cobra.Command{
		Use:   "add-subtask PARENT_GID NAME",
		Short: "Create a subtask under a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			subtask, err := tracker.CreateSubtask(cmd.Context(), args[0], driven.TaskCreateOptions{
				Name:     args[1],
				Assignee: assignee,
				DueOn:    due,
				Notes:    notes,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Created subtask: %s (GID %s)", subtask.Name, subtask.GID))
			if out.JSONMode() {
				out.JSON(subtask)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Assignee (GID or 'me')")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Subtask description")

	return cmd
}

func newTaskCommentsCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "comments TASK_GID",
		Short: "List comments on a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			comments, err := tracker.ListComments(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			headers := []string{"CREATED", "AUTHOR", "TEXT"}
			rows := make([][]string, len(comments))
			for i, c := range comments {
				author := "-"
				if c.CreatedBy != nil {
					author = c.CreatedBy.Name
				}
				rows[i] = []string{c.CreatedAt, author, c.Text}
			}

			out.Print(headers, rows, comments)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of comments")

	return cmd
}

func newTaskCommentCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "comment TASK_GID TEXT",
		Short: "Add a comment to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			story, err := tracker.AddComment(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Added comment to task %s", args[0]))
			if out.JSONMode() {
				out.JSON(story)
			}
			return nil
		},
	}
}

func newTaskDepsCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output, verboseFn func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "deps TASK_GID",
		Short: "List tasks this task depends on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			deps, err := tracker.ListDependencies(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printTasks(out, deps, verboseFn())
			return nil
		},
	}
}

func newTaskAddDepCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "add-dep TASK_GID DEPENDS_ON_GID",
		Short: "Add a dependency to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			if err := tracker.AddDependency(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Task %s now depends on %s", args[0], args[1]))
			return nil
		},
	}
}

// NewSearchCmd creates the top-level search command.
func NewSearchCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output, verboseFn func() bool) *cobra.Command {
	var assignee, projects, workspace string
	var incomplete bool
	var limit int

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search tasks by text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			tasks, err := tracker.SearchTasks(cmd.Context(), driven.TaskSearchOptions{
				Text:      args[0],
				Assignee:  assignee,
				Projects:  projects,
				Workspace: workspace,
				Completed: incompleteFilter(incomplete),
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			printTasks(out, tasks, verboseFn())
			return nil
		},
	}

	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Restrict to an assignee (GID or 'me')")
	cmd.Flags().StringVarP(&projects, "projects", "p", "", "Comma-separated project GIDs")
	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace GID (default workspace when omitted)")
	cmd.Flags().BoolVarP(&incomplete, "incomplete", "i", false, "Only incomplete tasks")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of tasks")

	return cmd
}

// NewMyTasksCmd creates the top-level my-tasks command, a shorthand for
// listing tasks assigned to the authenticated user.
func NewMyTasksCmd(trackerFn func() (driven.TaskTracker, error), outputFn func() *Output, verboseFn func() bool) *cobra.Command {
	var workspace string
	var incomplete bool
	var limit int

	cmd := &cobra.Command{
		Use:   "my-tasks",
		Short: "List tasks assigned to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := trackerFn()
			if err != nil {
				return err
			}
			out := outputFn()

			tasks, err := tracker.ListTasks(cmd.Context(), driven.TaskListOptions{
				Assignee:  "me",
				Workspace: workspace,
				Completed: incompleteFilter(incomplete),
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			printTasks(out, tasks, verboseFn())
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace GID (default workspace when omitted)")
	cmd.Flags().BoolVarP(&incomplete, "incomplete", "i", false, "Only incomplete tasks")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of tasks")

	return cmd
}
