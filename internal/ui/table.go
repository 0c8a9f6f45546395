package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"viewtree/internal/tree"
)

const (
	columnSeparator = " │ "
	minNameWidth    = 18
	compactWidth    = 4
	ellipsis        = "…"
)

var columnSeparatorWidth = lipgloss.Width(columnSeparator)

// dataColumn is a fixed-width column to the right of the name. Columns with a
// lower priority are hidden first when the terminal is narrow.
type dataColumn struct {
	Title    string
	Width    int
	Priority int
	Align    lipgloss.Position
	Render   func(tree.Row) string
	// Badge cells are pre-styled and padded outside the row style.
	Badge    bool
	// Compact, when set, is the narrow form tried before hiding columns.
	Compact  *dataColumn
}

var defaultDataColumns = []dataColumn{
	{Title: "Status", Width: 12, Priority: 9, Align: lipgloss.Left, Render: renderStatusCell, Badge: true, Compact: &compactStatusColumn},
	{Title: "Issues", Width: 6, Priority: 7, Align: lipgloss.Right, Render: func(r tree.Row) string { return FormatCount(r.Node.IssueCount) }},
	{Title: "Tasks", Width: 6, Priority: 6, Align: lipgloss.Right, Render: func(r tree.Row) string { return FormatCount(r.Node.TaskCount) }},
	{Title: "Phone", Width: 6, Priority: 5, Align: lipgloss.Right, Render: captureCell(tree.CapturePhoneImage)},
	{Title: "360", Width: 6, Priority: 4, Align: lipgloss.Right, Render: captureCell(tree.Capture360Image)},
	{Title: "Video", Width: 6, Priority: 3, Align: lipgloss.Right, Render: captureCell(tree.Capture360Video)},
	{Title: "Drone", Width: 6, Priority: 2, Align: lipgloss.Right, Render: captureCell(tree.CaptureDroneImage)},
	{Title: "Last Processed", Width: 14, Priority: 8, Align: lipgloss.Left, Render: func(r tree.Row) string { return FormatDate(r.Node) }},
}

var compactStatusColumn = dataColumn{Title: "St", Width: compactWidth, Priority: 9, Align: lipgloss.Left, Render: renderShortStatusCell, Badge: true}

func captureCell(kind tree.CaptureKind) func(tree.Row) string {
	return func(r tree.Row) string { return FormatCapture(r.Node, kind) }
}

func renderStatusCell(r tree.Row) string {
	status, ok := DisplayStatus(r)
	if !ok {
		return ""
	}
	return badgeStyle(status.Kind == tree.KindWarning).Render(status.Label)
}

func renderShortStatusCell(r tree.Row) string {
	status, ok := DisplayStatus(r)
	if !ok {
		return ""
	}
	return badgeStyle(status.Kind == tree.KindWarning).Render(status.Short())
}

// tableLayout is the set of columns that fit the current width.
type tableLayout struct {
	nameWidth int
	columns   []dataColumn
}

// layoutColumns keeps the name column at least minNameWidth cells wide. It
// first swaps columns for their compact form, then drops the lowest priority
// columns.
func layoutColumns(totalWidth int) tableLayout {
	cols := append([]dataColumn(nil), defaultDataColumns...)
	compacted := false
	for {
		used := 0
		for _, col := range cols {
			used += columnSeparatorWidth + col.Width
		}
		if nameWidth := totalWidth - used; nameWidth >= minNameWidth || len(cols) == 0 {
			return tableLayout{nameWidth: max(nameWidth, 1), columns: cols}
		}
		if !compacted {
			compacted = true
			for i, col := range cols {
				if col.Compact != nil {
					cols[i] = *col.Compact
				}
			}
			continue
		}
		cols = dropLowestPriority(cols)
	}
}

func dropLowestPriority(cols []dataColumn) []dataColumn {
	lowest := 0
	for i, col := range cols {
		if col.Priority < cols[lowest].Priority {
			lowest = i
		}
	}
	return append(cols[:lowest:lowest], cols[lowest+1:]...)
}

func (l tableLayout) header() string {
	var b strings.Builder
	b.WriteString(styleColumnHeader.Render(fitCell("View Name", l.nameWidth, lipgloss.Left)))
	for _, col := range l.columns {
		b.WriteString(styleColumnSeparator.Render(columnSeparator))
		b.WriteString(styleColumnHeader.Render(fitCell(col.Title, col.Width, col.Align)))
	}
	return b.String()
}

func (l tableLayout) rule() string {
	width := l.nameWidth
	for _, col := range l.columns {
		width += columnSeparatorWidth + col.Width
	}
	return styleColumnRule.Render(strings.Repeat("─", width))
}

// renderRow draws one tree row. Selected rows win over the unprocessed
// highlight.
func (l tableLayout) renderRow(row tree.Row, selected, searching bool) string {
	base := styleNormalText
	switch {
	case selected:
		base = styleSelected
	case !row.Node.Processed():
		base = styleUnprocessed
	}

	var b strings.Builder
	b.WriteString(l.nameCell(row, base, searching))
	for _, col := range l.columns {
		b.WriteString(base.Render(columnSeparator))
		value := col.Render(row)
		if col.Badge {
			pad := max(col.Width-lipgloss.Width(value), 0)
			b.WriteString(ansi.Truncate(value, col.Width, ""))
			b.WriteString(base.Render(strings.Repeat(" ", pad)))
			continue
		}
		b.WriteString(base.Render(fitCell(value, col.Width, col.Align)))
	}
	return b.String()
}

func (l tableLayout) nameCell(row tree.Row, base lipgloss.Style, searching bool) string {
	indent := strings.Repeat("  ", row.Depth)
	marker := "  "
	if row.HasChildren {
		marker = "▶ "
		if row.IsExpanded {
			marker = "▼ "
		}
	}
	prefix := indent + marker
	room := l.nameWidth - lipgloss.Width(prefix)
	if room < 1 {
		return base.Render(fitCell(prefix, l.nameWidth, lipgloss.Left))
	}

	name := ansi.Truncate(row.Node.Name, room, ellipsis)
	pad := strings.Repeat(" ", max(room-lipgloss.Width(name), 0))
	nameStyle := base
	if searching && row.IsMatch {
		nameStyle = styleMatchText.Inherit(base)
	}
	return base.Render(indent) + styleMarker.Inherit(base).Render(marker) + nameStyle.Render(name) + base.Render(pad)
}

// fitCell truncates or pads s to exactly width cells.
func fitCell(s string, width int, align lipgloss.Position) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, ellipsis)
	pad := strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
	if align == lipgloss.Right {
		return pad + s
	}
	return s + pad
}
