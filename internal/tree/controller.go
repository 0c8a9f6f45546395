package tree

import (
	"viewtree/internal/debug"
	"viewtree/internal/views"
)

// Option configures a Controller.
type Option func(*Controller)

// WithCollapseOnClear makes clearing a search collapse the nodes that the
// search expanded. By default expansion survives a cleared query.
func WithCollapseOnClear(enabled bool) Option {
	return func(c *Controller) {
		c.collapseOnClear = enabled
	}
}

// searchState caches the last non-empty query and what it expanded.
type searchState struct {
	query   string
	results []*FilteredNode
	// added holds ids expanded by searches since the last clear.
	added []string
}

// Controller owns the loaded tree and its expansion state. It is not safe for
// concurrent use; callers serialize access on their event loop.
type Controller struct {
	builder         *Builder
	projectID       string
	root            *Node
	index           map[string]*Node
	anomalies       []Anomaly
	store           *ExpansionStore
	search          searchState
	collapseOnClear bool
}

// NewController returns a controller with no tree loaded.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		builder: NewBuilder(),
		store:   NewExpansionStore(),
		index:   make(map[string]*Node),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the tree with raw, collapsing everything and dropping any
// cached search. A nil raw leaves the controller empty.
func (c *Controller) Load(projectID string, raw *views.RawView) {
	c.projectID = projectID
	c.store.Reset()
	c.search = searchState{}
	c.ingest(raw)
	debug.WithFields(map[string]any{
		"project":   projectID,
		"nodes":     len(c.index),
		"anomalies": len(c.anomalies),
	}).Debug("tree loaded")
}

// Refresh re-ingests a fresh fetch of the current project. Expansion is kept
// for ids that still exist and the cached search is recomputed without
// expanding anything new.
func (c *Controller) Refresh(raw *views.RawView) {
	expanded := c.store.IDs()
	c.ingest(raw)

	kept := expanded[:0]
	for _, id := range expanded {
		if _, ok := c.index[id]; ok {
			kept = append(kept, id)
		}
	}
	c.store.ExpandAll(kept)

	added := c.search.added[:0]
	for _, id := range c.search.added {
		if _, ok := c.index[id]; ok {
			added = append(added, id)
		}
	}
	c.search.added = added
	if c.search.query != "" {
		c.search.results = FilterChildren(c.root, c.search.query)
	}
	debug.Logf("tree refreshed: project=%s nodes=%d expanded=%d", c.projectID, len(c.index), len(kept))
}

func (c *Controller) ingest(raw *views.RawView) {
	c.root, c.anomalies = c.builder.Build(raw)
	c.index = make(map[string]*Node)
	c.root.Walk(func(n *Node, _ int) bool {
		c.index[n.ID] = n
		return true
	})
}

// VisibleRows returns the rows to display for query. An empty query walks the
// tree honoring expansion; a non-empty one shows the root followed by the
// matching branches of its children, expanding every surviving node the first
// time that query is seen.
func (c *Controller) VisibleRows(query string) ([]Row, Outcome) {
	if c.root == nil {
		return nil, OutcomeEmpty
	}
	q := NormalizeQuery(query)
	if q == "" {
		if c.search.query != "" {
			c.clearSearch()
		}
		return c.browseRows(), OutcomeRows
	}

	if q != c.search.query {
		c.search.query = q
		c.search.results = FilterChildren(c.root, q)
		if len(c.search.results) > 0 {
			added := c.store.Merge(SurvivingIDs(c.search.results))
			c.search.added = append(c.search.added, added...)
		}
	}
	if len(c.search.results) == 0 {
		return nil, OutcomeNoResults
	}

	root := newRow(c.root, 0, c.root.HasChildren(), true, nameMatches(c.root, q))
	root.Pinned = true
	rows := []Row{root}
	var flatten func(*FilteredNode)
	flatten = func(fn *FilteredNode) {
		expanded := c.store.IsExpanded(fn.Node.ID)
		rows = append(rows, newRow(fn.Node, fn.Depth, len(fn.Children) > 0, expanded, fn.Matched))
		if !expanded {
			return
		}
		for _, child := range fn.Children {
			flatten(child)
		}
	}
	for _, fn := range c.search.results {
		flatten(fn)
	}
	return rows, OutcomeRows
}

func (c *Controller) browseRows() []Row {
	var rows []Row
	c.root.Walk(func(n *Node, depth int) bool {
		expanded := c.store.IsExpanded(n.ID)
		rows = append(rows, newRow(n, depth, n.HasChildren(), expanded, false))
		return expanded
	})
	return rows
}

// Toggle flips the expansion of id and returns its new state. The root is
// pinned open while a search is active and toggling it is ignored.
func (c *Controller) Toggle(id string) bool {
	if c.pinned(id) {
		return true
	}
	return c.store.Toggle(id)
}

// SetExpanded forces the expansion of id and reports whether it changed.
func (c *Controller) SetExpanded(id string, expanded bool) bool {
	if c.pinned(id) {
		return false
	}
	return c.store.Set(id, expanded)
}

func (c *Controller) pinned(id string) bool {
	return c.search.query != "" && c.root != nil && id == c.root.ID
}

// IsExpanded reports whether id is expanded.
func (c *Controller) IsExpanded(id string) bool {
	return c.store.IsExpanded(id)
}

// ExpandAll expands every node that has children.
func (c *Controller) ExpandAll() {
	var ids []string
	c.root.Walk(func(n *Node, _ int) bool {
		if n.HasChildren() {
			ids = append(ids, n.ID)
		}
		return true
	})
	c.store.ExpandAll(ids)
}

// CollapseAll collapses every node.
func (c *Controller) CollapseAll() {
	c.store.Reset()
}

// ExpandedIDs returns the expanded ids sorted.
func (c *Controller) ExpandedIDs() []string {
	return c.store.IDs()
}

// OpenSearch prepares the tree for searching by expanding exactly the root's
// direct children.
func (c *Controller) OpenSearch() {
	if c.root == nil {
		return
	}
	ids := make([]string, 0, len(c.root.Children))
	for _, child := range c.root.Children {
		ids = append(ids, child.ID)
	}
	c.store.ExpandAll(ids)
	c.search = searchState{}
}

// CloseSearch forgets the cached query.
func (c *Controller) CloseSearch() {
	c.clearSearch()
}

// Query returns the active normalized query, if any.
func (c *Controller) Query() string {
	return c.search.query
}

func (c *Controller) clearSearch() {
	if c.collapseOnClear && len(c.search.added) > 0 {
		c.store.Remove(c.search.added)
	}
	c.search = searchState{}
}

// OnRowActivate returns the navigation intent for id within the loaded project.
func (c *Controller) OnRowActivate(id string) NavigationRequest {
	return NavigationRequest{
		ProjectID: c.projectID,
		NodeID:    id,
		Path:      StructurePath(c.projectID, id),
	}
}

// Node looks up a node by id.
func (c *Controller) Node(id string) (*Node, bool) {
	n, ok := c.index[id]
	return n, ok
}

// Root returns the loaded root or nil.
func (c *Controller) Root() *Node {
	return c.root
}

// ProjectID returns the project of the loaded tree.
func (c *Controller) ProjectID() string {
	return c.projectID
}

// Loaded reports whether a tree is available.
func (c *Controller) Loaded() bool {
	return c.root != nil
}

// Anomalies returns the coercions applied to the last payload.
func (c *Controller) Anomalies() []Anomaly {
	return c.anomalies
}

// Stats summarizes the loaded tree.
func (c *Controller) Stats() Stats {
	return Summarize(c.root)
}
