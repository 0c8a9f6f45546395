package ui

import (
	"fmt"
	"strings"

	"viewtree/internal/tree"
)

// detailMarkdown summarizes a view for the detail pane.
func detailMarkdown(n *tree.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(n.Name))

	var path []string
	for _, a := range n.Ancestors() {
		path = append(path, escapeMarkdown(a.Name))
	}
	if len(path) > 0 {
		fmt.Fprintf(&b, "_%s_\n\n", strings.Join(path, " › "))
	}

	fmt.Fprintf(&b, "- **ID:** %s\n", codeSpan(n.ID))
	if n.Type != "" {
		fmt.Fprintf(&b, "- **Type:** %s\n", escapeMarkdown(n.Type))
	}
	if n.IsExterior {
		b.WriteString("- **Exterior:** yes\n")
	}
	if status, ok := tree.ResolveStatus(n); ok {
		fmt.Fprintf(&b, "- **Status:** %s", status.Label)
		if n.ServerStatus != "" {
			fmt.Fprintf(&b, " (server: %s)", escapeMarkdown(n.ServerStatus))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "- **Designs:** %s\n", FormatCount(n.DesignCount))
	fmt.Fprintf(&b, "- **Issues:** %s\n", FormatCount(n.IssueCount))
	fmt.Fprintf(&b, "- **Tasks:** %s\n", FormatCount(n.TaskCount))
	if n.HasChildren() {
		fmt.Fprintf(&b, "- **Sub-views:** %d\n", len(n.Children))
	}

	b.WriteString("\n## Captures\n\n")
	b.WriteString("| Kind | Count |\n| --- | ---: |\n")
	for _, kind := range tree.CaptureKinds {
		fmt.Fprintf(&b, "| %s | %s |\n", kind, FormatCapture(n, kind))
	}

	b.WriteString("\n## Reality\n\n")
	if n.Processed() {
		fmt.Fprintf(&b, "Last processed capture **%s**", FormatDate(n))
		if rel := FormatRelative(n.LastUpdated); rel != "" {
			fmt.Fprintf(&b, ", updated %s", rel)
		}
		b.WriteString(".\n")
	} else {
		b.WriteString("No processed capture yet.\n")
	}
	s := n.Snapshots
	if s.Active+s.Inactive+s.Review > 0 {
		fmt.Fprintf(&b, "\nSnapshots: %d active, %d inactive, %d in review.\n", s.Active, s.Inactive, s.Review)
	}
	if latest := n.Latest; latest != nil {
		fmt.Fprintf(&b, "\nLatest snapshot is **%s**", escapeMarkdown(latest.State))
		if !latest.CapturedAt.IsZero() {
			fmt.Fprintf(&b, ", captured %s", FormatRelative(latest.CapturedAt))
		}
		b.WriteString(".\n")
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"|", `\|`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// codeSpan wraps s in a backtick fence longer than any backtick run inside
// it. Backslashes do not escape inside code spans.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}

// updateViewportContent re-renders the detail pane for the row under the
// cursor.
func (m *App) updateViewportContent() {
	if !m.showDetails {
		return
	}
	row, ok := m.currentRow()
	if !ok {
		m.viewport.SetContent("")
		m.detailID = ""
		return
	}
	if m.detailID != row.Node.ID {
		m.viewport.GotoTop()
		m.detailID = row.Node.ID
	}
	if m.markdownWidth != m.viewport.Width || m.renderMarkdown == nil {
		m.renderMarkdown = buildMarkdownRenderer(m.outputFormat, max(m.viewport.Width-2, 10))
		m.markdownWidth = m.viewport.Width
	}
	m.viewport.SetContent(m.renderMarkdown(detailMarkdown(row.Node)))
}
