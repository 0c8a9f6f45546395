// Package views provides clients that fetch a project's view hierarchy.
package views

// Capture kinds reported by the sectionList endpoint.
const (
	CapturePhoneImage = "Phone Image"
	Capture360Image   = "360 Image"
	Capture360Video   = "360 Video"
	CaptureDroneImage = "Drone Image"
)

// SnapshotStateInactive is the latest-snapshot state of a capture still being processed.
const SnapshotStateInactive = "Inactive"

// RawView is one node of the sectionList payload. Optional fields are
// pointers so that an absent value is distinguishable from zero.
type RawView struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	Type        string         `json:"type,omitempty"`
	IsExterior  bool           `json:"isExterior,omitempty"`
	Project     string         `json:"project,omitempty"`
	Parent      *string        `json:"parent,omitempty"`
	Children    []*RawView     `json:"children,omitempty"`
	Designs     []Design       `json:"designs,omitempty"`
	DesignTotal *int           `json:"designCount,omitempty"`
	Status      string         `json:"status,omitempty"`
	LastUpdated *string        `json:"lastUpdated,omitempty"`
	TaskCount   *int           `json:"taskCount,omitempty"`
	IssueCount  *int           `json:"issueCount,omitempty"`
	Capture     map[string]int `json:"capture,omitempty"`
	Snapshots   *Snapshots     `json:"snapshots,omitempty"`
}

// DesignCount returns the number of designs attached to the view. Sources
// that only carry a count (the SQLite export) set DesignTotal instead of
// listing every design.
func (v *RawView) DesignCount() int {
	if v == nil {
		return 0
	}
	if v.DesignTotal != nil {
		return *v.DesignTotal
	}
	return len(v.Designs)
}

// Design is a drawing or model attached to a view.
type Design struct {
	ID     string `json:"_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
}

// Snapshots summarizes the reality captures processed for a view.
type Snapshots struct {
	ActiveCount    *int            `json:"snapshotActiveCount,omitempty"`
	InactiveCount  *int            `json:"snapshotInActiveCount,omitempty"`
	ReviewCount    *int            `json:"snapshotReviewCount,omitempty"`
	LatestSnapshot *LatestSnapshot `json:"latestSnapshot,omitempty"`
}

// LatestSnapshot is the most recent reality capture of a view.
type LatestSnapshot struct {
	CaptureDateTime string `json:"captureDateTime,omitempty"`
	State           string `json:"state,omitempty"`
}

// Latest returns the latest snapshot or nil when the view has none.
func (v *RawView) Latest() *LatestSnapshot {
	if v == nil || v.Snapshots == nil {
		return nil
	}
	return v.Snapshots.LatestSnapshot
}

// Walk visits v and its descendants in pre-order. Nil children are skipped.
func (v *RawView) Walk(fn func(view *RawView, depth int)) {
	var walk func(*RawView, int)
	walk = func(n *RawView, depth int) {
		if n == nil {
			return
		}
		fn(n, depth)
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	walk(v, 0)
}

// Count returns the number of views in the subtree rooted at v.
func (v *RawView) Count() int {
	total := 0
	v.Walk(func(*RawView, int) { total++ })
	return total
}
