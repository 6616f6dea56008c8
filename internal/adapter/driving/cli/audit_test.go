package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenttools/agenttools/internal/domain/model"
	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

type fakeAuditStore struct {
	events    []model.ToolEvent
	counts    []model.ToolCount
	lastLimit int
}

func (f *fakeAuditStore) Record(_ context.Context, event model.ToolEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAuditStore) List(_ context.Context, limit int) ([]model.ToolEvent, error) {
	f.lastLimit = limit
	return f.events, nil
}

func (f *fakeAuditStore) Summary(_ context.Context) ([]model.ToolCount, error) {
	return f.counts, nil
}

func TestAuditList(t *testing.T) {
	store := &fakeAuditStore{events: []model.ToolEvent{
		{ID: 2, OccurredAt: time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC), ToolName: "Bash", Summary: "ran: make test"},
		{ID: 1, OccurredAt: time.Date(2026, 8, 27, 10, 29, 0, 0, time.UTC), ToolName: "Edit", Summary: "edited main.go"},
	}}
	var stdout, stderr bytes.Buffer
	var closed bool
	auditFn := func() (driven.AuditStore, func(), error) {
		return store, func() { closed = true }, nil
	}
	outputFn := func() *Output { return NewOutputTo(false, &stdout, &stderr) }

	cmd := NewAuditCmd(auditFn, outputFn)
	err := runCmd(t, cmd, "list", "--limit", "25")
	require.NoError(t, err)

	assert.Equal(t, 25, store.lastLimit)
	assert.Contains(t, stdout.String(), "ran: make test")
	assert.Contains(t, stdout.String(), "edited main.go")
	assert.True(t, closed, "store must be closed after the command")
}

func TestAuditSummary(t *testing.T) {
	store := &fakeAuditStore{counts: []model.ToolCount{
		{ToolName: "Bash", Count: 12},
		{ToolName: "Edit", Count: 3},
	}}
	var stdout, stderr bytes.Buffer
	auditFn := func() (driven.AuditStore, func(), error) {
		return store, func() {}, nil
	}
	outputFn := func() *Output { return NewOutputTo(false, &stdout, &stderr) }

	cmd := NewAuditCmd(auditFn, outputFn)
	err := runCmd(t, cmd, "summary")
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Bash")
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "Edit")
}
