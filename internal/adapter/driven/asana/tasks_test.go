package asana_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenttools/agenttools/internal/adapter/driven/asana"
	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// fakeTracker is a minimal in-memory task service handling the endpoints
// the create/get round trip exercises.
type fakeTracker struct {
	mu     sync.Mutex
	nextID int
	tasks  map[string]map[string]any
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{nextID: 1, tasks: map[string]map[string]any{}}
}

func (f *fakeTracker) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tasks", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Data map[string]any `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		gid := "task-" + strconv.Itoa(f.nextID)
		f.nextID++
		task := map[string]any{"gid": gid, "name": req.Data["name"], "completed": false}
		if projects, ok := req.Data["projects"].([]any); ok {
			var refs []map[string]any
			for _, p := range projects {
				refs = append(refs, map[string]any{"gid": p, "name": "Project " + fmt.Sprint(p)})
			}
			task["projects"] = refs
		}
		f.tasks[gid] = task
		f.mu.Unlock()

		json.NewEncoder(w).Encode(map[string]any{"data": task})
	})
	mux.HandleFunc("GET /tasks/{gid}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		task, ok := f.tasks[r.PathValue("gid")]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":[{"message":"Not Found"}]}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": task})
	})
	return mux
}

func TestCreateThenGetTask(t *testing.T) {
	fake := newFakeTracker()
	client := newTestClient(t, "ws-1", fake.handler())
	ctx := context.Background()

	created, err := client.CreateTask(ctx, driven.TaskCreateOptions{Name: "X", Project: "P"})
	require.NoError(t, err)
	require.NotEmpty(t, created.GID)

	got, err := client.GetTask(ctx, created.GID)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Name)
	assert.True(t, got.InProject("P"))
}

func TestCreateTask_WithoutProjectUsesWorkspace(t *testing.T) {
	var gotData map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotData = req.Data
		w.Write([]byte(`{"data":{"gid":"t-1","name":"X"}}`))
	})

	client := newTestClient(t, "ws-9", handler)
	_, err := client.CreateTask(context.Background(), driven.TaskCreateOptions{Name: "X"})

	require.NoError(t, err)
	assert.Equal(t, "ws-9", gotData["workspace"])
	assert.NotContains(t, gotData, "projects")
}

func TestCreateTask_SectionMoveFailureIsNotRolledBack(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tasks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"gid":"t-1","name":"X"}}`))
	})
	mux.HandleFunc("POST /sections/{gid}/addTask", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"message":"section: Unknown object"}]}`))
	})

	client := newTestClient(t, "ws-1", mux)
	task, err := client.CreateTask(context.Background(), driven.TaskCreateOptions{
		Name:    "X",
		Project: "P",
		Section: "sec-404",
	})

	// The error names the failed step and the created task is still returned.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "move task t-1 to section sec-404")
	require.NotNil(t, task)
	assert.Equal(t, "t-1", task.GID)
}

func TestUpdateTask_NoFieldsFailsFast(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected for an empty update")
	})

	client := newTestClient(t, "ws-1", handler)
	_, err := client.UpdateTask(context.Background(), "t-1", driven.TaskUpdate{})

	require.ErrorIs(t, err, asana.ErrNoUpdates)
}

func TestUpdateTask_OnlyProvidedFieldsSent(t *testing.T) {
	var gotData map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var req struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotData = req.Data
		w.Write([]byte(`{"data":{"gid":"t-1","name":"Renamed","completed":true}}`))
	})

	client := newTestClient(t, "ws-1", handler)
	name := "Renamed"
	completed := true
	task, err := client.UpdateTask(context.Background(), "t-1", driven.TaskUpdate{
		Name:      &name,
		Completed: &completed,
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Renamed", "completed": true}, gotData)
	assert.True(t, task.Completed)
}

func TestListTasks_RequiresFilter(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected without a filter")
	})

	client := newTestClient(t, "ws-1", handler)
	_, err := client.ListTasks(context.Background(), driven.TaskListOptions{})

	require.ErrorIs(t, err, asana.ErrNoTaskFilter)
}

func TestListTasks_IncompleteFilter(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/P/tasks", r.URL.Path)
		assert.Equal(t, "now", r.URL.Query().Get("completed_since"))
		w.Write([]byte(`{"data":[{"gid":"t-1","name":"A","due_on":"2026-09-01","assignee":{"name":"Bob"}}]}`))
	})

	client := newTestClient(t, "ws-1", handler)
	completed := false
	tasks, err := client.ListTasks(context.Background(), driven.TaskListOptions{
		Project:   "P",
		Completed: &completed,
	})

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Bob", tasks[0].AssigneeName())
	assert.Equal(t, "2026-09-01", tasks[0].DueOn)
}

func TestSearchTasks_ServerSideSortRequested(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/workspaces/ws-1/tasks/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "modified_at", q.Get("sort_by"))
		assert.Equal(t, "false", q.Get("sort_ascending"))
		assert.Equal(t, "deploy", q.Get("text"))
		w.Write([]byte(`{"data":[]}`))
	})

	client := newTestClient(t, "ws-1", handler)
	_, err := client.SearchTasks(context.Background(), driven.TaskSearchOptions{Text: "deploy"})

	require.NoError(t, err)
}

func TestGetTask_PreservesUnknownFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"gid":"t-1","name":"A","num_hearts":3,"permalink_url":"https://app.asana.com/t-1"}}`))
	})

	client := newTestClient(t, "ws-1", handler)
	task, err := client.GetTask(context.Background(), "t-1")

	require.NoError(t, err)
	require.Contains(t, task.Extra, "num_hearts")
	require.Contains(t, task.Extra, "permalink_url")

	// Unknown fields survive re-serialization.
	out, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"num_hearts":3`)
}

func TestListComments_FiltersSystemStories(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"gid":"s-1","text":"assigned to Bob","resource_subtype":"assigned"},
			{"gid":"s-2","text":"looks good","resource_subtype":"comment_added","created_by":{"name":"Alice"}}
		]}`))
	})

	client := newTestClient(t, "ws-1", handler)
	comments, err := client.ListComments(context.Background(), "t-1", 0)

	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "looks good", comments[0].Text)
	assert.Equal(t, "Alice", comments[0].CreatedBy.Name)
}
