package model

// User is a remote-service user reference as embedded in tasks and stories.
type User struct {
	GID   string `json:"gid,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
