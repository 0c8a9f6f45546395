package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint is a short key hint for the footer bar.
type footerHint struct {
	key  string
	desc string
}

var globalFooterHints = []footerHint{
	{"/", "Search"},
	{"⏎", "Open"},
	{"⇥", "Detail"},
	{"q", "Quit"},
	{"?", "Help"},
}

var treeFooterHints = []footerHint{
	{"↑↓", "Navigate"},
	{"←→", "Expand"},
}

var detailsFooterHints = []footerHint{
	{"↑↓", "Scroll"},
}

// renderFooter renders the key hints with the project id right aligned.
func (m *App) renderFooter() string {
	var hints []footerHint
	switch m.focus {
	case FocusTree:
		hints = append(hints, treeFooterHints...)
	case FocusDetails:
		hints = append(hints, detailsFooterHints...)
	}
	hints = append(hints, globalFooterHints...)

	project := styleFooterMuted.Render("Project: " + m.projectID)
	projectWidth := lipgloss.Width(project)
	hints = trimHintsToFit(hints, m.width-projectWidth-4)

	left := renderHints(hints)
	spacing := max(m.width-lipgloss.Width(left)-projectWidth, 2)
	return left + strings.Repeat(" ", spacing) + project
}

func keyPill(key, desc string) string {
	return styleKeyPill.Render(" "+key+" ") + " " + styleKeyDesc.Render(desc)
}

func renderHints(hints []footerHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return strings.Join(parts, "  ")
}

// trimHintsToFit drops context hints first, then globals from the end.
func trimHintsToFit(hints []footerHint, availableWidth int) []footerHint {
	globalCount := len(globalFooterHints)
	for len(hints) > 0 && lipgloss.Width(renderHints(hints)) > availableWidth {
		if len(hints) > globalCount {
			hints = hints[1:]
		} else {
			hints = hints[:len(hints)-1]
		}
	}
	return hints
}
