package model

// StorySubtypeComment is the resource_subtype the service assigns to
// user-authored comments, as opposed to system activity stories.
const StorySubtypeComment = "comment_added"

// Story is an activity entry on a task. Comments are stories with
// ResourceSubtype == StorySubtypeComment; everything else is system noise
// (assignments, completions, section moves).
type Story struct {
	GID             string `json:"gid"`
	Text            string `json:"text"`
	Type            string `json:"type,omitempty"`
	ResourceSubtype string `json:"resource_subtype,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	CreatedBy       *User  `json:"created_by,omitempty"`
}

// IsComment reports whether the story is a user-authored comment.
func (s Story) IsComment() bool {
	return s.ResourceSubtype == StorySubtypeComment
}
