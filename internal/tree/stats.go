package tree

// Stats summarizes a loaded tree.
type Stats struct {
	Total       int
	MaxDepth    int
	NoDesign    int
	NoReality   int
	Processing  int
	Unprocessed int
	Exterior    int
	Issues      int
	Tasks       int
	Captures    map[CaptureKind]int
}

// Summarize walks the tree at root and tallies statuses and counters.
func Summarize(root *Node) Stats {
	st := Stats{Captures: make(map[CaptureKind]int)}
	root.Walk(func(n *Node, depth int) bool {
		st.Total++
		if depth > st.MaxDepth {
			st.MaxDepth = depth
		}
		if status, ok := ResolveStatus(n); ok {
			switch status.Label {
			case LabelNoDesign:
				st.NoDesign++
			case LabelNoReality:
				st.NoReality++
			case LabelProcessing:
				st.Processing++
			}
		}
		if !n.Processed() {
			st.Unprocessed++
		}
		if n.IsExterior {
			st.Exterior++
		}
		st.Issues += n.IssueCount
		st.Tasks += n.TaskCount
		for kind, count := range n.Captures {
			st.Captures[kind] += count
		}
		return true
	})
	return st
}
