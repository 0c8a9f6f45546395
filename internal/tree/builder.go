package tree

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"viewtree/internal/debug"
	"viewtree/internal/views"
)

// AnomalyKind classifies a coercion applied while building a tree.
type AnomalyKind string

const (
	AnomalyBlankID        AnomalyKind = "blank_id"
	AnomalyDuplicateID    AnomalyKind = "duplicate_id"
	AnomalyNilChild       AnomalyKind = "nil_child"
	AnomalyCycle          AnomalyKind = "cycle"
	AnomalyNegativeCount  AnomalyKind = "negative_count"
	AnomalyBadTimestamp   AnomalyKind = "bad_timestamp"
	AnomalyParentMismatch AnomalyKind = "parent_mismatch"
)

// Anomaly records one defaulted or dropped piece of input.
type Anomaly struct {
	Kind   AnomalyKind
	NodeID string
	Detail string
}

func (a Anomaly) String() string {
	if a.NodeID == "" {
		return fmt.Sprintf("%s: %s", a.Kind, a.Detail)
	}
	return fmt.Sprintf("%s %s: %s", a.Kind, a.NodeID, a.Detail)
}

// syntheticIDPrefix marks ids generated for views that arrived without one.
const syntheticIDPrefix = "~"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Builder converts a fetched payload into a validated Node tree.
type Builder struct{}

// NewBuilder creates a new Builder instance.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build copies raw into a fresh tree. It never fails: missing counters become
// zero, negative counters are clamped, blank ids get a positional id, and a
// repeated id drops the later view together with its subtree. Every coercion
// is returned as an Anomaly. A nil payload yields a nil root.
func (Builder) Build(raw *views.RawView) (*Node, []Anomaly) {
	if raw == nil {
		return nil, nil
	}
	b := &buildState{
		seen:    make(map[string]bool),
		visited: make(map[*views.RawView]bool),
	}
	root := b.copy(raw, nil, "0")
	for _, a := range b.anomalies {
		debug.Logf("tree: %s", a)
	}
	return root, b.anomalies
}

type buildState struct {
	seen      map[string]bool
	visited   map[*views.RawView]bool
	anomalies []Anomaly
}

func (b *buildState) note(kind AnomalyKind, id, format string, args ...any) {
	b.anomalies = append(b.anomalies, Anomaly{Kind: kind, NodeID: id, Detail: fmt.Sprintf(format, args...)})
}

func (b *buildState) copy(raw *views.RawView, parent *Node, position string) *Node {
	if b.visited[raw] {
		b.note(AnomalyCycle, raw.ID, "view object repeated in payload")
		return nil
	}
	b.visited[raw] = true

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = syntheticIDPrefix + position
		b.note(AnomalyBlankID, id, "view %q has no id", raw.Name)
	}
	if b.seen[id] {
		b.note(AnomalyDuplicateID, id, "repeated view dropped with its subtree")
		return nil
	}
	b.seen[id] = true

	n := &Node{
		ID:           id,
		Name:         raw.Name,
		Type:         raw.Type,
		IsExterior:   raw.IsExterior,
		ServerStatus: raw.Status,
		Project:      raw.Project,
		Parent:       parent,
		DesignCount:  raw.DesignCount(),
		IssueCount:   b.count(id, "issueCount", raw.IssueCount),
		TaskCount:    b.count(id, "taskCount", raw.TaskCount),
		Captures:     make(map[CaptureKind]int, len(raw.Capture)),
	}
	if n.DesignCount < 0 {
		b.note(AnomalyNegativeCount, id, "designCount %d clamped to 0", n.DesignCount)
		n.DesignCount = 0
	}
	if parent != nil {
		n.ParentID = parent.ID
		if raw.Parent != nil && *raw.Parent != "" && *raw.Parent != parent.ID {
			b.note(AnomalyParentMismatch, id, "declares parent %s but is nested under %s", *raw.Parent, parent.ID)
		}
	}
	for kind, count := range raw.Capture {
		n.Captures[CaptureKind(kind)] = b.count(id, "capture "+kind, &count)
	}
	if raw.LastUpdated != nil {
		n.LastUpdatedRaw = strings.TrimSpace(*raw.LastUpdated)
		n.LastUpdated = b.timestamp(id, "lastUpdated", n.LastUpdatedRaw)
	}
	if s := raw.Snapshots; s != nil {
		n.Snapshots = SnapshotCounts{
			Active:   b.count(id, "snapshotActiveCount", s.ActiveCount),
			Inactive: b.count(id, "snapshotInActiveCount", s.InactiveCount),
			Review:   b.count(id, "snapshotReviewCount", s.ReviewCount),
		}
		if latest := raw.Latest(); latest != nil {
			n.Latest = &Snapshot{
				State:         latest.State,
				CapturedAtRaw: latest.CaptureDateTime,
				CapturedAt:    b.timestamp(id, "captureDateTime", latest.CaptureDateTime),
			}
		}
	}

	for i, child := range raw.Children {
		childPos := position + "." + strconv.Itoa(i)
		if child == nil {
			b.note(AnomalyNilChild, id, "child %d is null", i)
			continue
		}
		if c := b.copy(child, n, childPos); c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func (b *buildState) count(id, field string, v *int) int {
	if v == nil {
		return 0
	}
	if *v < 0 {
		b.note(AnomalyNegativeCount, id, "%s %d clamped to 0", field, *v)
		return 0
	}
	return *v
}

func (b *buildState) timestamp(id, field, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	b.note(AnomalyBadTimestamp, id, "%s %q is not a timestamp", field, raw)
	return time.Time{}
}
