package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"viewtree/internal/debug"
)

// Update implements tea.Model.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case treeLoadedMsg:
		return m, m.applyLoaded(msg)
	case tickMsg:
		var cmds []tea.Cmd
		if m.controller.Loaded() {
			cmds = append(cmds, m.startRefresh())
		}
		cmds = append(cmds, scheduleTick(m.refreshInterval))
		return m, tea.Batch(cmds...)
	case toastTickMsg:
		if m.toastVisible() {
			return m, scheduleToastTick()
		}
		m.toast = ""
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help),
			key.Matches(msg, m.keys.Escape),
			key.Matches(msg, m.keys.Quit):
			m.showHelp = false
		}
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.focus == FocusDetails && m.showDetails {
		if handled, cmd := m.handleDetailKey(msg); handled {
			return m, cmd
		}
	}
	return m.handleGlobalKey(msg)
}

// handleSearchKey feeds the search input. Enter keeps the query and returns
// focus to the tree; Esc clears it.
func (m *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.searching = false
		m.textInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.closeSearch()
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.setQuery(m.textInput.Value())
	return m, cmd
}

func (m *App) handleDetailKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
	default:
		return false, nil
	}
	return true, nil
}

func (m *App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Search):
		m.openSearch()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		if m.toastVisible() {
			m.toast = ""
			return m, nil
		}
		if m.query != "" {
			m.closeSearch()
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.startRefresh()
	case key.Matches(msg, m.keys.Tab):
		m.showDetails = !m.showDetails
		m.focus = FocusTree
		m.updateViewportContent()
	case key.Matches(msg, m.keys.ShiftTab):
		if m.showDetails {
			if m.focus == FocusTree {
				m.focus = FocusDetails
			} else {
				m.focus = FocusTree
			}
		}
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.treeBodyHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.treeBodyHeight())
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-len(m.rows))
	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.rows))
	case key.Matches(msg, m.keys.Right):
		m.expandOrDescend()
	case key.Matches(msg, m.keys.Left):
		m.collapseOrAscend()
	case key.Matches(msg, m.keys.Space):
		if row, ok := m.currentRow(); ok && row.HasChildren && !row.Pinned {
			m.controller.Toggle(row.Node.ID)
			m.recalcVisibleRows()
		}
	case key.Matches(msg, m.keys.ExpandAll):
		m.controller.ExpandAll()
		m.recalcVisibleRows()
	case key.Matches(msg, m.keys.CollapseAll):
		m.controller.CollapseAll()
		m.recalcVisibleRows()
	case key.Matches(msg, m.keys.Enter):
		return m, m.activateRow()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCurrentID()
	}
	return m, nil
}

// openSearch focuses the search input. A fresh search first expands the
// root's direct children.
func (m *App) openSearch() {
	if m.query == "" {
		m.controller.OpenSearch()
		m.recalcVisibleRows()
	}
	m.searching = true
	m.textInput.Focus()
	m.textInput.SetValue(m.query)
	m.textInput.SetCursor(len(m.query))
}

func (m *App) closeSearch() {
	m.searching = false
	m.textInput.Blur()
	m.textInput.SetValue("")
	m.query = ""
	m.controller.CloseSearch()
	m.recalcVisibleRows()
}

func (m *App) setQuery(q string) {
	if q == m.query {
		return
	}
	m.query = q
	m.recalcVisibleRows()
}

func (m *App) expandOrDescend() {
	row, ok := m.currentRow()
	if !ok || !row.HasChildren {
		return
	}
	if !row.IsExpanded {
		m.controller.SetExpanded(row.Node.ID, true)
		m.recalcVisibleRows()
		return
	}
	m.moveCursor(1)
}

func (m *App) collapseOrAscend() {
	row, ok := m.currentRow()
	if !ok {
		return
	}
	if row.HasChildren && row.IsExpanded && !row.Pinned && m.controller.IsExpanded(row.Node.ID) {
		m.controller.SetExpanded(row.Node.ID, false)
		m.recalcVisibleRows()
		return
	}
	if parent := row.Node.Parent; parent != nil {
		if idx := m.rowIndex(parent.ID); idx >= 0 {
			m.cursor = idx
			m.ensureCursorVisible()
			m.updateViewportContent()
		}
	}
}

func (m *App) activateRow() tea.Cmd {
	row, ok := m.currentRow()
	if !ok {
		return nil
	}
	req := m.controller.OnRowActivate(row.Node.ID)
	debug.Logf("navigate %s", req.Path)
	text, err := m.navigator.Navigate(req)
	if err != nil {
		return m.showToast(err.Error(), true)
	}
	return m.showToast(text, false)
}

func (m *App) copyCurrentID() tea.Cmd {
	row, ok := m.currentRow()
	if !ok {
		return nil
	}
	if err := m.writeClipboard(row.Node.ID); err != nil {
		return m.showToast(fmt.Sprintf("copy failed: %v", err), true)
	}
	return m.showToast(fmt.Sprintf("Copied '%s' to clipboard.", row.Node.ID), false)
}
