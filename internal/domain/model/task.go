package model

import "encoding/json"

// taskKnownFields lists the JSON members Task models with named fields.
// Anything else the service returns lands in Extra.
var taskKnownFields = []string{
	"gid", "name", "notes", "due_on", "completed", "assignee", "projects",
}

// Task is a lightly-typed view of a remote task record. Known fields are
// named; unrecognized fields are preserved verbatim in Extra so that newer
// remote-service fields survive a round trip through this client.
type Task struct {
	GID       string    `json:"gid"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	DueOn     string    `json:"due_on,omitempty"` // YYYY-MM-DD as sent by the service; empty when unset.
	Completed bool      `json:"completed"`
	Assignee  *User     `json:"assignee,omitempty"`
	Projects  []Project `json:"projects,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// taskAlias avoids recursing into Task's own UnmarshalJSON/MarshalJSON.
type taskAlias Task

// UnmarshalJSON decodes the named fields and captures everything else in Extra.
func (t *Task) UnmarshalJSON(data []byte) error {
	var a taskAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extraFields(data, taskKnownFields)
	if err != nil {
		return err
	}
	a.Extra = extra
	*t = Task(a)
	return nil
}

// MarshalJSON re-emits the named fields plus any preserved Extra members.
func (t Task) MarshalJSON() ([]byte, error) {
	return mergeExtra(taskAlias(t), t.Extra)
}

// AssigneeName returns the assignee's display name, or "" when unassigned.
func (t Task) AssigneeName() string {
	if t.Assignee == nil {
		return ""
	}
	return t.Assignee.Name
}

// InProject reports whether the task belongs to the project with the given GID.
func (t Task) InProject(projectGID string) bool {
	for _, p := range t.Projects {
		if p.GID == projectGID {
			return true
		}
	}
	return false
}
