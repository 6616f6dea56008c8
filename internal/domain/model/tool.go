package model

import "encoding/json"

// Tool is a tool definition as stored by the tool-registry server.
// ID is assigned by the server; Name is the registration identity used to
// skip duplicates.
type Tool struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SourceCode  string          `json:"source_code,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	JSONSchema  json.RawMessage `json:"json_schema,omitempty"`
}
