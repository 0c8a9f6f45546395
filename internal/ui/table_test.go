package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"viewtree/internal/tree"
)

func columnTitles(l tableLayout) []string {
	out := make([]string, len(l.columns))
	for i, c := range l.columns {
		out[i] = c.Title
	}
	return out
}

func TestLayoutColumnsHidesLowPriorityFirst(t *testing.T) {
	wide := layoutColumns(200)
	if len(wide.columns) != len(defaultDataColumns) {
		t.Fatalf("wide terminal should show every column, got %v", columnTitles(wide))
	}

	narrow := layoutColumns(60)
	titles := strings.Join(columnTitles(narrow), ",")
	if strings.Contains(titles, "Drone") {
		t.Fatalf("drone column has the lowest priority and should hide first: %s", titles)
	}
	if !strings.Contains(titles, "Status") {
		t.Fatalf("status column should survive: %s", titles)
	}
	if narrow.nameWidth < minNameWidth {
		t.Fatalf("name column = %d, want at least %d", narrow.nameWidth, minNameWidth)
	}

	tiny := layoutColumns(10)
	if len(tiny.columns) != 0 || tiny.nameWidth != 10 {
		t.Fatalf("tiny layout = %+v", tiny)
	}
}

func TestLayoutKeepsDisplayOrder(t *testing.T) {
	l := layoutColumns(120)
	titles := columnTitles(l)
	if titles[0] != "Status" {
		t.Fatalf("columns = %v", titles)
	}
	if last := titles[len(titles)-1]; last != "Last Processed" {
		t.Fatalf("last processed should stay rightmost, got %v", titles)
	}
}

func TestLayoutCompactsStatusBeforeHiding(t *testing.T) {
	l := layoutColumns(100)
	if len(l.columns) != len(defaultDataColumns) {
		t.Fatalf("compacting status should make room for every column, got %v", columnTitles(l))
	}
	if l.columns[0].Title != "St" || l.columns[0].Width != compactWidth {
		t.Fatalf("status column = %+v", l.columns[0])
	}

	c := tree.NewController()
	raw := rawView("S", "Site")
	raw.Status = "active"
	raw.Designs = nil
	c.Load("PRJ1", raw)
	rows, _ := c.VisibleRows("")

	line := ansi.Strip(l.renderRow(rows[0], false, false))
	if !strings.Contains(line, " ND ") || strings.Contains(line, "No Design") {
		t.Fatalf("narrow status should use the short label: %q", line)
	}
	if ansi.StringWidth(line) != 100 {
		t.Fatalf("row width = %d, want 100", ansi.StringWidth(line))
	}
}

func TestRenderRowCells(t *testing.T) {
	c := tree.NewController()
	raw := rawView("S", "Site", rawView("F1", "Floor 1"))
	raw.IssueCount = intPtr(1200)
	raw.TaskCount = intPtr(0)
	raw.Capture = map[string]int{"Phone Image": 4, "360 Video": 0}
	raw.Status = "active"
	raw.Designs = nil
	c.Load("PRJ1", raw)
	rows, _ := c.VisibleRows("")

	line := ansi.Strip(layoutColumns(200).renderRow(rows[0], false, false))
	for _, want := range []string{"▶ Site", "No Design", "1,200", "Mar 1, 2024"} {
		if !strings.Contains(line, want) {
			t.Fatalf("row %q missing %q", line, want)
		}
	}
	if strings.Count(line, " - ") < 3 {
		t.Fatalf("zero tasks and missing captures should render '-': %q", line)
	}
}

func TestRenderRowHidesBadgeWithoutServerStatus(t *testing.T) {
	c := tree.NewController()
	raw := rawView("S", "Site")
	raw.Designs = nil
	c.Load("PRJ1", raw)
	rows, _ := c.VisibleRows("")

	line := ansi.Strip(layoutColumns(200).renderRow(rows[0], false, false))
	if strings.Contains(line, "No Design") {
		t.Fatalf("badge should need a server status: %q", line)
	}
}

func TestNameCellIndentsAndTruncates(t *testing.T) {
	c := tree.NewController()
	c.Load("PRJ1", rawView("S", "Site", rawView("F1", "A floor with a very long descriptive name")))
	c.Toggle("S")
	rows, _ := c.VisibleRows("")

	l := tableLayout{nameWidth: 20}
	cell := ansi.Strip(l.nameCell(rows[1], styleNormalText, false))
	if !strings.HasPrefix(cell, "    A floor") {
		t.Fatalf("child should be indented past the marker column: %q", cell)
	}
	if ansi.StringWidth(cell) != 20 || !strings.HasSuffix(cell, "…") {
		t.Fatalf("cell should be cut to width with an ellipsis: %q", cell)
	}

	root := ansi.Strip(l.nameCell(rows[0], styleNormalText, false))
	if !strings.HasPrefix(root, "▼ Site") {
		t.Fatalf("expanded root marker missing: %q", root)
	}
}

func TestFitCell(t *testing.T) {
	if got := fitCell("42", 5, lipgloss.Right); got != "   42" {
		t.Fatalf("right aligned = %q", got)
	}
	if got := fitCell("abc", 5, lipgloss.Left); got != "abc  " {
		t.Fatalf("left aligned = %q", got)
	}
	if got := fitCell("abcdefgh", 4, lipgloss.Left); got != "abc…" {
		t.Fatalf("truncated = %q", got)
	}
	if got := fitCell("x", 0, lipgloss.Left); got != "" {
		t.Fatalf("zero width = %q", got)
	}
}
