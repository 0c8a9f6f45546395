package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"viewtree/internal/debug"
	"viewtree/internal/views"
)

const defaultFetchTimeout = 30 * time.Second

// fetchTreeCmd runs the fetch off the event loop and reports back with a
// treeLoadedMsg.
func fetchTreeCmd(client views.Client, token, projectID string, timeout time.Duration, refresh bool) tea.Cmd {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		started := time.Now()
		raw, err := client.FetchTree(ctx, token, projectID)
		elapsed := time.Since(started)
		if err != nil {
			debug.Warnf("fetch project %s failed after %s: %v", projectID, elapsed, err)
		} else {
			debug.Logf("fetched project %s: %d views in %s", projectID, raw.Count(), elapsed)
		}
		return treeLoadedMsg{raw: raw, err: err, refresh: refresh, elapsed: elapsed}
	}
}
