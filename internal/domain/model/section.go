package model

// Section is a named column or grouping within a project.
type Section struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}
