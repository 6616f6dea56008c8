package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenttools/agenttools/internal/domain/model"
	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// fakeTracker records the options each call received and serves canned
// results. Methods not stubbed here panic via the nil embedded interface.
type fakeTracker struct {
	driven.TaskTracker

	tasks    []model.Task
	task     *model.Task
	listOpts driven.TaskListOptions
	search   driven.TaskSearchOptions
	update   driven.TaskUpdate
}

func (f *fakeTracker) ListTasks(_ context.Context, opts driven.TaskListOptions) ([]model.Task, error) {
	f.listOpts = opts
	return f.tasks, nil
}

func (f *fakeTracker) SearchTasks(_ context.Context, opts driven.TaskSearchOptions) ([]model.Task, error) {
	f.search = opts
	return f.tasks, nil
}

func (f *fakeTracker) GetTask(_ context.Context, taskGID string) (*model.Task, error) {
	return f.task, nil
}

func (f *fakeTracker) UpdateTask(_ context.Context, taskGID string, update driven.TaskUpdate) (*model.Task, error) {
	f.update = update
	return f.task, nil
}

// runCmd executes cmd with args. Command output goes through the injected
// Output; cobra's own writer is silenced.
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

// newTestDeps wires a command factory to a fake tracker and buffered output.
func newTestDeps(tracker *fakeTracker, jsonMode, verbose bool) (func() (driven.TaskTracker, error), func() *Output, func() bool, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	trackerFn := func() (driven.TaskTracker, error) { return tracker, nil }
	outputFn := func() *Output { return NewOutputTo(jsonMode, &stdout, &stderr) }
	verboseFn := func() bool { return verbose }
	return trackerFn, outputFn, verboseFn, &stdout, &stderr
}

func sampleTasks() []model.Task {
	return []model.Task{
		{GID: "101", Name: "Write report", DueOn: "2026-09-01", Assignee: &model.User{GID: "u1", Name: "Ada"}},
		{GID: "102", Name: "Ship release", Completed: true},
	}
}

func TestTaskList_Table(t *testing.T) {
	tracker := &fakeTracker{tasks: sampleTasks()}
	trackerFn, outputFn, verboseFn, stdout, stderr := newTestDeps(tracker, false, false)

	cmd := NewTaskCmd(trackerFn, outputFn, verboseFn)
	err := runCmd(t, cmd, "list", "--project", "P1", "--incomplete", "--limit", "10")
	require.NoError(t, err)

	assert.Equal(t, "P1", tracker.listOpts.Project)
	require.NotNil(t, tracker.listOpts.Completed)
	assert.False(t, *tracker.listOpts.Completed)
	assert.Equal(t, 10, tracker.listOpts.Limit)

	out := stdout.String()
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "2026-09-01")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "[x]")
	assert.NotContains(t, out, "101") // GIDs only in verbose mode
	assert.Contains(t, stderr.String(), "(2 tasks)")
}

func TestTaskList_VerboseShowsGIDs(t *testing.T) {
	tracker := &fakeTracker{tasks: sampleTasks()}
	trackerFn, outputFn, verboseFn, stdout, _ := newTestDeps(tracker, false, true)

	cmd := NewTaskCmd(trackerFn, outputFn, verboseFn)
	err := runCmd(t, cmd, "list", "--project", "P1")
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "101")
	assert.Contains(t, stdout.String(), "GID")
}

func TestTaskList_JSON(t *testing.T) {
	tracker := &fakeTracker{tasks: sampleTasks()}
	trackerFn, outputFn, verboseFn, stdout, stderr := newTestDeps(tracker, true, false)

	cmd := NewTaskCmd(trackerFn, outputFn, verboseFn)
	err := runCmd(t, cmd, "list", "--project", "P1")
	require.NoError(t, err)

	var decoded []model.Task
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Write report", decoded[0].Name)
	assert.Empty(t, stderr.String(), "no count line in JSON mode")
}

func TestTaskShow_Detail(t *testing.T) {
	tracker := &fakeTracker{task: &model.Task{
		GID:      "101",
		Name:     "Write report",
		Notes:    "Quarterly numbers",
		DueOn:    "2026-09-01",
		Projects: []model.Project{{GID: "P1", Name: "Ops"}},
	}}
	trackerFn, outputFn, verboseFn, stdout, _ := newTestDeps(tracker, false, false)

	cmd := NewTaskCmd(trackerFn, outputFn, verboseFn)
	err := runCmd(t, cmd, "show", "101")
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Task: Write report")
	assert.Contains(t, out, "GID: 101")
	assert.Contains(t, out, "Assignee: Unassigned")
	assert.Contains(t, out, "Projects: Ops")
	assert.Contains(t, out, "Quarterly numbers")
}

func TestTaskUpdate_ChangedFlagsOnly(t *testing.T) {
	tracker := &fakeTracker{task: &model.Task{GID: "101", Name: "Renamed"}}
	trackerFn, outputFn, verboseFn, _, _ := newTestDeps(tracker, false, false)

	cmd := NewTaskCmd(trackerFn, outputFn, verboseFn)
	err := runCmd(t, cmd, "update", "101", "--name", "Renamed", "--completed", "true")
	require.NoError(t, err)

	require.NotNil(t, tracker.update.Name)
	assert.Equal(t, "Renamed", *tracker.update.Name)
	require.NotNil(t, tracker.update.Completed)
	assert.True(t, *tracker.update.Completed)
	assert.Nil(t, tracker.update.Assignee)
	assert.Nil(t, tracker.update.DueOn)
	assert.Nil(t, tracker.update.Notes)
}

func TestTaskUpdate_InvalidCompletedValue(t *testing.T) {
	tracker := &fakeTracker{}
	trackerFn, outputFn, verboseFn, _, _ := newTestDeps(tracker, false, false)

	cmd := NewTaskCmd(trackerFn, outputFn, verboseFn)
	err := runCmd(t, cmd, "update", "101", "--completed", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--completed")
}

func TestSearch_PassesOptions(t *testing.T) {
	tracker := &fakeTracker{tasks: sampleTasks()}
	trackerFn, outputFn, verboseFn, _, _ := newTestDeps(tracker, false, false)

	cmd := NewSearchCmd(trackerFn, outputFn, verboseFn)
	err := runCmd(t, cmd, "report", "--assignee", "me", "--incomplete")
	require.NoError(t, err)

	assert.Equal(t, "report", tracker.search.Text)
	assert.Equal(t, "me", tracker.search.Assignee)
	require.NotNil(t, tracker.search.Completed)
	assert.False(t, *tracker.search.Completed)
}

func TestMyTasks_AssigneeIsMe(t *testing.T) {
	tracker := &fakeTracker{tasks: nil}
	trackerFn, outputFn, verboseFn, _, stderr := newTestDeps(tracker, false, false)

	cmd := NewMyTasksCmd(trackerFn, outputFn, verboseFn)
	err := runCmd(t, cmd, "--incomplete")
	require.NoError(t, err)

	assert.Equal(t, "me", tracker.listOpts.Assignee)
	require.NotNil(t, tracker.listOpts.Completed)
	assert.Contains(t, stderr.String(), "(0 tasks)")
}
