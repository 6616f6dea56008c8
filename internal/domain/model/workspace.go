package model

// Workspace is a top-level container for projects and tasks. One workspace
// serves as the client's default scope when operations don't name one.
type Workspace struct {
	GID            string `json:"gid"`
	Name           string `json:"name"`
	IsOrganization bool   `json:"is_organization"`
}
