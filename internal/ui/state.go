package ui

import "viewtree/internal/tree"

// FocusArea is the pane receiving navigation keys.
type FocusArea int

const (
	FocusTree FocusArea = iota
	FocusDetails
)

func clampDimension(value, minValue, maxValue int) int {
	if maxValue < 1 {
		maxValue = 1
	}
	if minValue < 1 {
		minValue = 1
	}
	if minValue > maxValue {
		minValue = maxValue
	}
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}

// recalcVisibleRows rebuilds the rows from the controller and keeps the
// cursor on the same view when it is still visible.
func (m *App) recalcVisibleRows() {
	currentID := ""
	if row, ok := m.currentRow(); ok {
		currentID = row.Node.ID
	}
	m.rows, m.outcome = m.controller.VisibleRows(m.query)
	m.restoreCursor(currentID)
	m.updateViewportContent()
}

func (m *App) restoreCursor(id string) {
	if id != "" {
		for i, row := range m.rows {
			if row.Node.ID == id {
				m.cursor = i
				m.ensureCursorVisible()
				return
			}
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.rows))
	m.ensureCursorVisible()
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func (m *App) currentRow() (tree.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return tree.Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *App) moveCursor(delta int) {
	m.cursor = clampCursor(m.cursor+delta, len(m.rows))
	m.ensureCursorVisible()
	m.updateViewportContent()
}

// ensureCursorVisible scrolls the tree so the cursor row is on screen.
func (m *App) ensureCursorVisible() {
	height := m.treeBodyHeight()
	if m.cursor < m.treeTop {
		m.treeTop = m.cursor
	}
	if m.cursor >= m.treeTop+height {
		m.treeTop = m.cursor - height + 1
	}
	maxTop := max(len(m.rows)-height, 0)
	m.treeTop = min(max(m.treeTop, 0), maxTop)
}

// rowIndex returns the position of id among the visible rows.
func (m *App) rowIndex(id string) int {
	for i, row := range m.rows {
		if row.Node.ID == id {
			return i
		}
	}
	return -1
}
