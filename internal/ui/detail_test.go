package ui

import (
	"strings"
	"testing"
	"time"

	"viewtree/internal/tree"
)

func TestDetailMarkdown(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })

	parent := &tree.Node{ID: "F1", Name: "Floor_1"}
	n := &tree.Node{
		ID:             "F1-K",
		Name:           "Kitchen",
		Type:           "room",
		Parent:         parent,
		ServerStatus:   "active",
		DesignCount:    2,
		IssueCount:     3,
		LastUpdated:    now.Add(-48 * time.Hour),
		LastUpdatedRaw: "2024-03-08T12:00:00Z",
		Latest:         &tree.Snapshot{State: "Inactive"},
		Snapshots:      tree.SnapshotCounts{Active: 1, Review: 2},
		Captures:       map[tree.CaptureKind]int{tree.CapturePhoneImage: 5},
	}
	parent.Children = []*tree.Node{n}

	md := detailMarkdown(n)
	for _, want := range []string{
		"# Kitchen",
		`Floor\_1`,
		"**Status:** Processing (server: active)",
		"**Issues:** 3",
		"**Tasks:** -",
		"| Phone Image | 5 |",
		"updated 2 days ago",
		"1 active, 0 inactive, 2 in review",
		"Latest snapshot is **Inactive**",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestDetailMarkdownUnprocessed(t *testing.T) {
	md := detailMarkdown(&tree.Node{ID: "X", Name: "Roof"})
	if !strings.Contains(md, "No processed capture yet.") {
		t.Fatalf("markdown = %s", md)
	}
	if detailMarkdown(nil) != "" {
		t.Fatalf("nil node should render nothing")
	}
}

func TestDetailMarkdownFencesIDWithBackticks(t *testing.T) {
	cases := map[string]string{
		"F1-K":   "`F1-K`",
		"a`b":    "``a`b``",
		"x``y":   "```x``y```",
		"`start": "`` `start ``",
	}
	for id, want := range cases {
		if got := codeSpan(id); got != want {
			t.Fatalf("codeSpan(%q) = %q, want %q", id, got, want)
		}
	}

	md := detailMarkdown(&tree.Node{ID: "room`7", Name: "Odd"})
	if !strings.Contains(md, "- **ID:** ``room`7``\n") {
		t.Fatalf("id should sit in a longer fence:\n%s", md)
	}
}
