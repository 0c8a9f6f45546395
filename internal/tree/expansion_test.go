package tree

import "testing"

func TestExpansionStoreToggleIsIdempotentInPairs(t *testing.T) {
	s := NewExpansionStore()
	if s.Toggle("A") != true || !s.IsExpanded("A") {
		t.Fatalf("first toggle should expand")
	}
	if s.Toggle("A") != false || s.IsExpanded("A") {
		t.Fatalf("second toggle should collapse")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %v", s.IDs())
	}
}

func TestExpansionStoreExpandAllReplaces(t *testing.T) {
	s := NewExpansionStore()
	s.Toggle("old")
	s.ExpandAll([]string{"b", "a", "b"})
	if got := s.IDs(); !equalStrings(got, []string{"a", "b"}) {
		t.Fatalf("IDs = %v, want [a b]", got)
	}
	if s.IsExpanded("old") {
		t.Fatalf("ExpandAll should replace the previous set")
	}
}

func TestExpansionStoreMergeReportsAdditions(t *testing.T) {
	s := NewExpansionStore()
	s.Toggle("a")
	added := s.Merge([]string{"a", "b", "c"})
	if !equalStrings(added, []string{"b", "c"}) {
		t.Fatalf("added = %v, want [b c]", added)
	}
	s.Remove(added)
	if got := s.IDs(); !equalStrings(got, []string{"a"}) {
		t.Fatalf("IDs after remove = %v", got)
	}
}

func TestExpansionStoreSetAndReset(t *testing.T) {
	s := NewExpansionStore()
	if !s.Set("x", true) || s.Set("x", true) {
		t.Fatalf("Set should report a change only once")
	}
	if !s.Set("x", false) || s.IsExpanded("x") {
		t.Fatalf("Set(false) should collapse")
	}
	s.Merge([]string{"a", "b"})
	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("Reset left %v", s.IDs())
	}
}
