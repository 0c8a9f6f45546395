package tree

import "net/url"

// NavigationRequest is the intent produced by activating a row. The caller
// decides how to follow it.
type NavigationRequest struct {
	ProjectID string
	NodeID    string
	Path      string
}

// StructurePath returns the dashboard route of a node.
func StructurePath(projectID, nodeID string) string {
	return "/projects/" + url.PathEscape(projectID) + "/structure/" + url.PathEscape(nodeID)
}
