// Package tree holds the in-memory view hierarchy of a project together with
// its expansion state, search filtering, and derived display status.
package tree

import (
	"time"

	"viewtree/internal/views"
)

// CaptureKind names a reality-capture medium.
type CaptureKind string

const (
	CapturePhoneImage CaptureKind = views.CapturePhoneImage
	Capture360Image   CaptureKind = views.Capture360Image
	Capture360Video   CaptureKind = views.Capture360Video
	CaptureDroneImage CaptureKind = views.CaptureDroneImage
)

// CaptureKinds lists the capture kinds in display order.
var CaptureKinds = []CaptureKind{CapturePhoneImage, Capture360Image, Capture360Video, CaptureDroneImage}

// Snapshot is the latest reality capture of a node.
type Snapshot struct {
	State         string
	CapturedAt    time.Time
	CapturedAtRaw string
}

// SnapshotCounts tallies a node's snapshots by review state.
type SnapshotCounts struct {
	Active   int
	Inactive int
	Review   int
}

// Node is one view of the project hierarchy. Nodes are produced by Build and
// must be treated as read-only afterwards.
type Node struct {
	ID           string
	Name         string
	ParentID     string
	Type         string
	IsExterior   bool
	ServerStatus string
	Project      string

	Parent   *Node
	Children []*Node

	DesignCount int
	// Latest is nil when the node has no reality capture.
	Latest    *Snapshot
	Snapshots SnapshotCounts

	// LastUpdated is zero when LastUpdatedRaw is empty or unparseable.
	LastUpdated    time.Time
	LastUpdatedRaw string

	IssueCount int
	TaskCount  int
	// Captures holds reported capture counts. A missing kind is unknown.
	Captures map[CaptureKind]int
}

// HasChildren reports whether the node has any children.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// CaptureCount returns the count for kind and whether the source reported it.
func (n *Node) CaptureCount(kind CaptureKind) (int, bool) {
	if n == nil {
		return 0, false
	}
	count, ok := n.Captures[kind]
	return count, ok
}

// Processed reports whether the node has a processed capture date.
func (n *Node) Processed() bool {
	return n != nil && n.LastUpdatedRaw != ""
}

// Ancestors returns the chain from the root down to the node's parent.
func (n *Node) Ancestors() []*Node {
	if n == nil {
		return nil
	}
	var chain []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Walk visits n and its descendants in pre-order, stopping a branch when fn
// returns false.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	var walk func(*Node, int)
	walk = func(cur *Node, depth int) {
		if cur == nil || !fn(cur, depth) {
			return
		}
		for _, child := range cur.Children {
			walk(child, depth+1)
		}
	}
	walk(n, 0)
}
