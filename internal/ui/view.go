package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	appErrors "viewtree/internal/errors"
	"viewtree/internal/tree"
)

// View implements tea.Model.
func (m *App) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	body := m.renderBody()
	var bottomBar string
	if m.searching {
		bottomBar = m.textInput.View()
	} else {
		bottomBar = m.renderFooter()
	}
	frame := fmt.Sprintf("%s\n%s\n%s", header, body, bottomBar)

	overlay := ""
	if m.showHelp {
		overlay = renderHelpOverlay(m.keys)
	}
	toast := m.renderToast()
	if overlay == "" && toast == "" {
		return frame
	}

	canvas := NewCanvas(m.width, m.height)
	canvas.DrawStringAt(0, 0, frame)
	if overlay != "" {
		canvas.Center(overlay, 1, 1)
	}
	if toast != "" {
		canvas.BottomRight(toast, 2)
	}
	return canvas.Render()
}

func (m *App) renderHeader() string {
	title := "VIEWTREE"
	if m.version != "" {
		title = fmt.Sprintf("VIEWTREE v%s", m.version)
	}
	left := styleAppHeader.Render(title) + " " + m.headerStatus()
	if m.refreshInFlight && m.controller.Loaded() {
		left += " " + styleStatsDim.Render("refreshing…")
	}
	if m.refreshErr == nil {
		return left
	}
	right := styleErrorIndicator.Render("⚠ Refresh error")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *App) headerStatus() string {
	if !m.controller.Loaded() {
		return styleStatsDim.Render("Project " + m.projectID)
	}
	st := m.stats
	status := fmt.Sprintf("Views: %d", st.Total)

	var breakdown []string
	if st.NoDesign > 0 {
		breakdown = append(breakdown, fmt.Sprintf("%d %s", st.NoDesign, tree.LabelNoDesign))
	}
	if st.NoReality > 0 {
		breakdown = append(breakdown, fmt.Sprintf("%d %s", st.NoReality, tree.LabelNoReality))
	}
	if st.Processing > 0 {
		breakdown = append(breakdown, fmt.Sprintf("%d %s", st.Processing, tree.LabelProcessing))
	}
	if len(breakdown) > 0 {
		status += " • " + strings.Join(breakdown, " • ")
	}
	if m.query != "" {
		status += " " + styleFilterInfo.Render(fmt.Sprintf("Search: %s", m.query))
	}
	if !m.lastRefresh.IsZero() {
		status += " " + styleStatsDim.Render(fmt.Sprintf("Δ %s (%s)", FormatRelative(m.lastRefresh), m.lastElapsed.Round(time.Millisecond)))
	}
	return status
}

func (m *App) renderBody() string {
	listHeight := clampDimension(m.height-4, minListHeight, m.height-2)
	treeWidth := m.width - 2
	if m.showDetails {
		treeWidth = m.width - m.viewport.Width - 4
	}
	treeWidth = max(treeWidth, 1)
	treeView := m.renderTreeView(treeWidth)

	if !m.showDetails {
		return stylePane.Width(treeWidth).Height(listHeight).Render(treeView)
	}
	leftStyle, rightStyle := stylePane, stylePane
	if m.focus == FocusTree {
		leftStyle = stylePaneFocused
	} else {
		rightStyle = stylePaneFocused
	}
	left := leftStyle.Width(treeWidth).Height(listHeight).Render(treeView)
	right := rightStyle.Width(max(m.viewport.Width, 1)).Height(listHeight).Render(m.viewport.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderTreeView draws the table or the state that replaces it.
func (m *App) renderTreeView(width int) string {
	switch {
	case m.loading && !m.controller.Loaded():
		return m.spinner.View() + " " + styleEmptyState.Render("Loading views for project "+m.projectID+"…")
	case m.loadErr != nil:
		return renderLoadError(m.loadErr)
	case m.outcome == tree.OutcomeEmpty:
		return styleEmptyState.Render("No views loaded.")
	}

	layout := layoutColumns(width)
	lines := []string{layout.header(), layout.rule()}
	if m.outcome == tree.OutcomeNoResults {
		lines = append(lines, styleEmptyState.Render("No results found"))
		return strings.Join(lines, "\n")
	}

	end := min(m.treeTop+m.treeBodyHeight(), len(m.rows))
	for i := m.treeTop; i < end; i++ {
		lines = append(lines, layout.renderRow(m.rows[i], i == m.cursor, m.query != ""))
	}
	return strings.Join(lines, "\n")
}

func renderLoadError(err error) string {
	var hint string
	switch code := appErrors.CodeOf(err); {
	case code == appErrors.CodeUnauthorized:
		hint = "Check the API token, then press r to retry."
	case code == appErrors.CodeNotFound:
		hint = "Check the project id."
	case appErrors.Retryable(err):
		hint = "Press r to retry."
	default:
		hint = "Check the view source configuration (" + string(code) + ")."
	}
	return styleErrorText.Render("⚠ "+err.Error()) + "\n\n" + styleEmptyState.Render(hint)
}

func (m *App) renderToast() string {
	if !m.toastVisible() {
		return ""
	}
	remaining := max(int((m.toastTTL - time.Since(m.toastStart)).Seconds()), 0)
	countdown := fmt.Sprintf("[%ds]", remaining)
	width := max(lipgloss.Width(m.toast), 30)
	content := m.toast + "\n" + strings.Repeat(" ", max(width-len(countdown), 0)) + countdown
	if m.toastError {
		return styleErrorToast.Render("⚠ Error\n" + content)
	}
	return styleSuccessToast.Render(content)
}
