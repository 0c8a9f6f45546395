package tree

// Outcome describes what VisibleRows produced.
type Outcome int

const (
	// OutcomeEmpty means no tree is loaded yet.
	OutcomeEmpty Outcome = iota
	// OutcomeRows means rows were produced.
	OutcomeRows
	// OutcomeNoResults means a non-blank query matched nothing.
	OutcomeNoResults
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRows:
		return "rows"
	case OutcomeNoResults:
		return "no_results"
	default:
		return "empty"
	}
}

// Row is one line of the rendered tree. Rows are rebuilt on every request.
type Row struct {
	Node        *Node
	Depth       int
	HasChildren bool
	IsExpanded  bool
	IsMatch     bool
	// Pinned rows always show their children; toggling them is a no-op.
	Pinned      bool
	Status      Status
	HasStatus   bool
}

func newRow(n *Node, depth int, hasChildren, expanded, match bool) Row {
	status, ok := ResolveStatus(n)
	return Row{
		Node:        n,
		Depth:       depth,
		HasChildren: hasChildren,
		IsExpanded:  expanded,
		IsMatch:     match,
		Status:      status,
		HasStatus:   ok,
	}
}
