package tree

import "testing"

func TestFilterKeepsAncestorChainsInOrder(t *testing.T) {
	root, _ := NewBuilder().Build(siteTree())

	results := FilterChildren(root, "bath")
	if len(results) != 2 {
		t.Fatalf("top-level results = %d, want 2", len(results))
	}
	f1, f2 := results[0], results[1]
	if f1.Node.ID != "F1" || f2.Node.ID != "F2" {
		t.Fatalf("order not preserved: %s, %s", f1.Node.ID, f2.Node.ID)
	}
	if f1.Matched || f1.Depth != 1 {
		t.Fatalf("Floor 1 survives as ancestor at depth 1, got matched=%v depth=%d", f1.Matched, f1.Depth)
	}
	if len(f1.Children) != 1 || f1.Children[0].Node.ID != "F1-B" || !f1.Children[0].Matched || f1.Children[0].Depth != 2 {
		t.Fatalf("unexpected Floor 1 children: %+v", f1.Children)
	}
	if len(f2.Children) != 1 || f2.Children[0].Node.ID != "F2-B" {
		t.Fatalf("Office branch should be pruned")
	}

	ids := SurvivingIDs(results)
	if !equalStrings(ids, []string{"F1", "F1-B", "F2", "F2-B"}) {
		t.Fatalf("SurvivingIDs = %v", ids)
	}
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	root, _ := NewBuilder().Build(siteTree())
	q := NormalizeQuery("  CLOS ")
	if q != "clos" {
		t.Fatalf("NormalizeQuery = %q", q)
	}
	results := FilterChildren(root, q)
	if got := SurvivingIDs(results); !equalStrings(got, []string{"F2", "F2-O", "F2-O-C"}) {
		t.Fatalf("SurvivingIDs = %v", got)
	}
}

func TestFilterMatchedParentKeepsOnlyMatchingChildren(t *testing.T) {
	root, _ := NewBuilder().Build(siteTree())
	results := FilterChildren(root, "floor 2")
	if len(results) != 1 || !results[0].Matched {
		t.Fatalf("expected Floor 2 to match on its own name")
	}
	if len(results[0].Children) != 0 {
		t.Fatalf("children that do not match are dropped even under a matching parent")
	}
}

func TestFilterNoMatch(t *testing.T) {
	root, _ := NewBuilder().Build(siteTree())
	if results := FilterChildren(root, "zzz"); results != nil {
		t.Fatalf("expected nil results, got %d", len(results))
	}
	if Filter(nil, "x", 0) != nil || FilterChildren(nil, "x") != nil {
		t.Fatalf("nil input should filter to nil")
	}
}

func TestFilterNeverMutatesTree(t *testing.T) {
	root, _ := NewBuilder().Build(siteTree())
	before := root.Children[1].Children
	FilterChildren(root, "closet")
	if len(root.Children) != 3 || len(root.Children[1].Children) != len(before) {
		t.Fatalf("filtering changed the source tree")
	}
}
