package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"viewtree/internal/tree"
	"viewtree/internal/views"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func rawView(id, name string, children ...*views.RawView) *views.RawView {
	for _, c := range children {
		c.Parent = strPtr(id)
	}
	return &views.RawView{
		ID:       id,
		Name:     name,
		Children: children,
		Designs:  []views.Design{{ID: "d-" + id}},
		Snapshots: &views.Snapshots{
			LatestSnapshot: &views.LatestSnapshot{State: "Active", CaptureDateTime: "2024-03-01T08:00:00Z"},
		},
		LastUpdated: strPtr("2024-03-01T12:00:00Z"),
	}
}

func siteTree() *views.RawView {
	return rawView("S", "Site",
		rawView("F1", "Floor 1",
			rawView("F1-K", "Kitchen"),
			rawView("F1-B", "Bathroom"),
		),
		rawView("F2", "Floor 2",
			rawView("F2-B", "Bathroom East"),
		),
		rawView("EX", "Exterior"),
	)
}

type fakeNavigator struct {
	requests []tree.NavigationRequest
	err      error
}

func (f *fakeNavigator) Navigate(req tree.NavigationRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return "Opened " + req.Path, nil
}

// newLoadedApp builds an app whose first fetch has already completed.
func newLoadedApp(t *testing.T, raw *views.RawView, opts ...func(*Config)) (*App, *views.MockClient, *fakeNavigator) {
	t.Helper()
	client := views.NewMockClient(map[string]*views.RawView{"PRJ1": raw})
	nav := &fakeNavigator{}
	cfg := Config{Client: client, ProjectID: "PRJ1", Token: "tok", Navigator: nav}
	for _, opt := range opts {
		opt(&cfg)
	}
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.writeClipboard = func(string) error { return nil }
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 30})
	msg := fetchTreeCmd(client, cfg.Token, cfg.ProjectID, 0, false)()
	app.Update(msg)
	return app, client, nav
}

func press(app *App, keys ...string) {
	for _, k := range keys {
		app.Update(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func typeText(app *App, text string) {
	for _, r := range text {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func rowNames(app *App) []string {
	out := make([]string, len(app.rows))
	for i, r := range app.rows {
		out[i] = r.Node.Name
	}
	return out
}

func joined(names []string) string {
	return strings.Join(names, ",")
}
