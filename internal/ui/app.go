package ui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	appErrors "viewtree/internal/errors"
	"viewtree/internal/tree"
	"viewtree/internal/views"
)

const (
	minViewportWidth  = 20
	minViewportHeight = 5
	minListHeight     = 5
	// header line, table header and rule, footer, pane borders
	chromeHeight = 6

	copyToastDuration  = 5 * time.Second
	errorToastDuration = 10 * time.Second
)

// Config configures the UI application.
type Config struct {
	Client          views.Client
	ProjectID       string
	Token           string
	FetchTimeout    time.Duration
	RefreshInterval time.Duration
	CollapseOnClear bool
	WebBaseURL      string
	Navigator       Navigator
	OutputFormat    string
	Version         string
}

// App is the Bubble Tea model for browsing one project's view tree.
type App struct {
	controller *tree.Controller
	client     views.Client
	navigator  Navigator
	keys       KeyMap

	projectID       string
	token           string
	fetchTimeout    time.Duration
	refreshInterval time.Duration
	outputFormat    string
	version         string

	rows    []tree.Row
	outcome tree.Outcome
	cursor  int
	treeTop int

	query     string
	searching bool
	textInput textinput.Model

	viewport       viewport.Model
	showDetails    bool
	focus          FocusArea
	detailID       string
	renderMarkdown func(string) string
	markdownWidth  int

	spinner         spinner.Model
	loading         bool
	loadErr         error
	refreshErr      error
	refreshInFlight bool
	lastRefresh     time.Time
	lastElapsed     time.Duration
	// stats is recomputed when a fetch lands, not on every frame.
	stats           tree.Stats

	showHelp   bool
	toast      string
	toastError bool
	toastStart time.Time
	toastTTL   time.Duration

	writeClipboard func(string) error

	width  int
	height int
	ready  bool
}

// NewApp validates cfg and returns a model that fetches the tree on Init.
func NewApp(cfg Config) (*App, error) {
	if cfg.Client == nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "no view source configured", nil)
	}
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, appErrors.New(appErrors.CodeInvalidProject, "project id is required", nil)
	}

	navigator := cfg.Navigator
	if navigator == nil {
		navigator = NewClipboardNavigator(cfg.WebBaseURL)
	}

	ti := textinput.New()
	ti.Placeholder = "Search views..."
	ti.Prompt = "/"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleMarker

	app := &App{
		controller:      tree.NewController(tree.WithCollapseOnClear(cfg.CollapseOnClear)),
		client:          cfg.Client,
		navigator:       navigator,
		keys:            DefaultKeyMap(),
		projectID:       projectID,
		token:           cfg.Token,
		fetchTimeout:    cfg.FetchTimeout,
		refreshInterval: cfg.RefreshInterval,
		outputFormat:    cfg.OutputFormat,
		version:         cfg.Version,
		textInput:       ti,
		spinner:         sp,
		loading:         true,
		focus:           FocusTree,
		writeClipboard:  clipboard.WriteAll,
	}
	return app, nil
}

// Init starts the first fetch, the spinner and the refresh ticker.
func (m *App) Init() tea.Cmd {
	return tea.Batch(
		fetchTreeCmd(m.client, m.token, m.projectID, m.fetchTimeout, false),
		m.spinner.Tick,
		scheduleTick(m.refreshInterval),
	)
}

// Controller exposes the tree engine, mainly for tests.
func (m *App) Controller() *tree.Controller {
	return m.controller
}

func (m *App) applyLoaded(msg treeLoadedMsg) tea.Cmd {
	m.loading = false
	if msg.refresh {
		m.refreshInFlight = false
	}
	if msg.err != nil {
		if msg.refresh && m.controller.Loaded() {
			m.refreshErr = msg.err
			return m.showToast("Refresh failed: "+msg.err.Error(), true)
		}
		m.loadErr = msg.err
		return nil
	}

	m.loadErr = nil
	m.refreshErr = nil
	m.lastRefresh = time.Now()
	m.lastElapsed = msg.elapsed
	if msg.refresh && m.controller.Loaded() {
		m.controller.Refresh(msg.raw)
	} else {
		m.controller.Load(m.projectID, msg.raw)
		m.cursor, m.treeTop = 0, 0
	}
	m.stats = m.controller.Stats()
	m.recalcVisibleRows()
	return nil
}

func (m *App) startRefresh() tea.Cmd {
	if m.refreshInFlight {
		return nil
	}
	m.refreshInFlight = true
	if !m.controller.Loaded() {
		m.loading = true
		m.loadErr = nil
		return tea.Batch(fetchTreeCmd(m.client, m.token, m.projectID, m.fetchTimeout, true), m.spinner.Tick)
	}
	return fetchTreeCmd(m.client, m.token, m.projectID, m.fetchTimeout, true)
}

func (m *App) showToast(text string, isError bool) tea.Cmd {
	m.toast = text
	m.toastError = isError
	m.toastStart = time.Now()
	m.toastTTL = copyToastDuration
	if isError {
		m.toastTTL = errorToastDuration
	}
	return scheduleToastTick()
}

func (m *App) toastVisible() bool {
	return m.toast != "" && time.Since(m.toastStart) < m.toastTTL
}

func (m *App) treeBodyHeight() int {
	return max(clampDimension(m.height-chromeHeight, minListHeight, m.height), 1)
}

func (m *App) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	rawViewportWidth := int(float64(width)*0.4) - 2
	maxViewportWidth := width - minNameWidth - 4
	m.viewport.Width = clampDimension(rawViewportWidth, minViewportWidth, maxViewportWidth)
	m.viewport.Height = clampDimension(height-4, minViewportHeight, height-2)
	m.ensureCursorVisible()
	m.updateViewportContent()
}
