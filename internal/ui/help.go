package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// helpSection is a titled group of keybindings.
type helpSection struct {
	title string
	rows  [][]string
}

// helpSections derives its text from the bindings so the help overlay and the
// key map cannot drift apart.
func helpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "NAVIGATION",
			rows: [][]string{
				{keys.Up.Help().Key, keys.Up.Help().Desc},
				{keys.Left.Help().Key, keys.Left.Help().Desc},
				{keys.Space.Help().Key, keys.Space.Help().Desc},
				{keys.Home.Help().Key, keys.Home.Help().Desc},
				{keys.End.Help().Key, keys.End.Help().Desc},
				{keys.PageUp.Help().Key, keys.PageUp.Help().Desc},
				{keys.PageDown.Help().Key, keys.PageDown.Help().Desc},
				{keys.ExpandAll.Help().Key, keys.ExpandAll.Help().Desc},
				{keys.CollapseAll.Help().Key, keys.CollapseAll.Help().Desc},
			},
		},
		{
			title: "ACTIONS",
			rows: [][]string{
				{keys.Enter.Help().Key, keys.Enter.Help().Desc},
				{keys.Tab.Help().Key, keys.Tab.Help().Desc},
				{keys.ShiftTab.Help().Key, keys.ShiftTab.Help().Desc},
				{keys.Refresh.Help().Key, keys.Refresh.Help().Desc},
				{keys.Copy.Help().Key, keys.Copy.Help().Desc},
				{keys.Quit.Help().Key, keys.Quit.Help().Desc},
			},
		},
		{
			title: "SEARCH",
			rows: [][]string{
				{keys.Search.Help().Key, keys.Search.Help().Desc},
				{keys.Enter.Help().Key, "Confirm"},
				{keys.Escape.Help().Key, keys.Escape.Help().Desc},
			},
		},
	}
}

// renderHelpOverlay builds the help modal. The caller positions it.
func renderHelpOverlay(keys KeyMap) string {
	sections := helpSections(keys)

	leftCol := renderHelpSectionTable(sections[0])
	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSectionTable(sections[1]),
		"",
		renderHelpSectionTable(sections[2]),
	)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "    ", rightCol)

	title := styleHelpTitle.Render("✦ VIEWTREE HELP ✦")
	divider := styleHelpDivider.Render(strings.Repeat("─", max(lipgloss.Width(columns), 40)))
	footer := styleHelpFooter.Render("Press ? or Esc to close")

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		divider,
		"",
		columns,
		"",
		footer,
	)
	return styleHelpOverlay.Render(content)
}

func renderHelpSectionTable(section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHelpKey.Width(14)
			}
			return styleHelpDesc
		}).
		Rows(section.rows...)

	header := styleHelpSectionHeader.Render(section.title)
	underline := styleHelpUnderline.Render(strings.Repeat("─", len(section.title)))

	// Hidden borders still emit an empty top row.
	tableStr := strings.TrimPrefix(t.String(), "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		underline,
		tableStr,
	)
}
