package ui

import (
	"strings"
	"testing"
)

func TestRenderHelpOverlay(t *testing.T) {
	keys := DefaultKeyMap()
	overlay := renderHelpOverlay(keys)

	if !strings.Contains(overlay, "VIEWTREE HELP") {
		t.Fatalf("missing title")
	}
	for _, section := range []string{"NAVIGATION", "ACTIONS", "SEARCH"} {
		if !strings.Contains(overlay, section) {
			t.Errorf("missing section %q", section)
		}
	}
	for _, b := range []string{keys.Up.Help().Desc, keys.Enter.Help().Desc, keys.ExpandAll.Help().Desc, keys.Escape.Help().Desc} {
		if !strings.Contains(overlay, b) {
			t.Errorf("missing binding %q", b)
		}
	}
}

func TestHelpSectionsCoverBindings(t *testing.T) {
	total := 0
	for _, s := range helpSections(DefaultKeyMap()) {
		for _, row := range s.rows {
			if len(row) != 2 || row[0] == "" || row[1] == "" {
				t.Fatalf("section %s has an incomplete row %v", s.title, row)
			}
			total++
		}
	}
	if total < 15 {
		t.Fatalf("expected the help to list every binding, got %d rows", total)
	}
}
