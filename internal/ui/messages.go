package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"viewtree/internal/views"
)

// treeLoadedMsg carries the result of a fetch back to the event loop.
type treeLoadedMsg struct {
	raw     *views.RawView
	err     error
	refresh bool
	elapsed time.Duration
}

type tickMsg struct{}

func scheduleTick(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{} })
}

type toastTickMsg struct{}

func scheduleToastTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}
