package asana

import "errors"

// tokenHint tells the user where to obtain a valid credential. Shared by
// the missing-token construction error and rejected-token (401) responses.
const tokenHint = "set ASANA_ACCESS_TOKEN; get a Personal Access Token at https://app.asana.com/0/my-apps"

// ErrMissingToken is returned at construction when no access token is
// available.
var ErrMissingToken = errors.New("no Asana token provided: " + tokenHint)

// ErrNoWorkspace is returned when no default workspace can be resolved
// because the credential has access to zero workspaces.
var ErrNoWorkspace = errors.New("no workspaces found for this user")

// ErrNoUpdates is returned by UpdateTask when every update field is nil.
// It fires before any network call.
var ErrNoUpdates = errors.New("no updates provided")

// ErrNoTaskFilter is returned by ListTasks when no collection is selected.
var ErrNoTaskFilter = errors.New("one of project, section, or assignee is required")
