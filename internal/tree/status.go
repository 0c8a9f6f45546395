package tree

import "viewtree/internal/views"

// Kind is the severity of a status badge.
type Kind int

const (
	KindWarning Kind = iota + 1
	KindInfo
)

func (k Kind) String() string {
	switch k {
	case KindWarning:
		return "warning"
	case KindInfo:
		return "info"
	default:
		return "none"
	}
}

// Canonical status labels.
const (
	LabelNoDesign   = "No Design"
	LabelNoReality  = "No Reality"
	LabelProcessing = "Processing"
)

var shortLabels = map[string]string{
	LabelNoDesign:   "ND",
	LabelNoReality:  "NR",
	LabelProcessing: "P",
}

// Status is the derived display status of a node.
type Status struct {
	Label string
	Kind  Kind
}

// Short returns the compact label used in narrow columns.
func (s Status) Short() string {
	if short, ok := shortLabels[s.Label]; ok {
		return short
	}
	return s.Label
}

// IsZero reports whether s carries no badge.
func (s Status) IsZero() bool {
	return s.Label == ""
}

// ResolveStatus derives the badge for n. The checks are ordered and the
// first match wins, so a node without designs is "No Design" even when its
// latest capture is still processing.
func ResolveStatus(n *Node) (Status, bool) {
	switch {
	case n == nil:
		return Status{}, false
	case n.DesignCount == 0:
		return Status{Label: LabelNoDesign, Kind: KindWarning}, true
	case n.Latest == nil:
		return Status{Label: LabelNoReality, Kind: KindWarning}, true
	case n.Latest.State == views.SnapshotStateInactive:
		return Status{Label: LabelProcessing, Kind: KindInfo}, true
	default:
		return Status{}, false
	}
}
