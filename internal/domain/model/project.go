package model

import "encoding/json"

var projectKnownFields = []string{"gid", "name", "due_on", "owner"}

// Project is a lightly-typed view of a remote project record.
// Unrecognized fields are preserved in Extra.
type Project struct {
	GID   string `json:"gid"`
	Name  string `json:"name"`
	DueOn string `json:"due_on,omitempty"`
	Owner *User  `json:"owner,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type projectAlias Project

// UnmarshalJSON decodes the named fields and captures everything else in Extra.
func (p *Project) UnmarshalJSON(data []byte) error {
	var a projectAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extraFields(data, projectKnownFields)
	if err != nil {
		return err
	}
	a.Extra = extra
	*p = Project(a)
	return nil
}

// MarshalJSON re-emits the named fields plus any preserved Extra members.
func (p Project) MarshalJSON() ([]byte, error) {
	return mergeExtra(projectAlias(p), p.Extra)
}
