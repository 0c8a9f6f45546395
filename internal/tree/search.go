package tree

import "strings"

// FilteredNode is a search result: the original node with only the children
// that match or lead to a match, in their original order.
type FilteredNode struct {
	Node     *Node
	Children []*FilteredNode
	Depth    int
	// Matched is true when the node's own name contains the query.
	Matched bool
}

// NormalizeQuery trims and lowercases a raw search string.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Filter returns the part of the subtree at n that matches query, or nil when
// neither n nor any descendant matches. query must already be normalized.
// depth is assigned to n and grows by one per level.
func Filter(n *Node, query string, depth int) *FilteredNode {
	if n == nil {
		return nil
	}
	var kept []*FilteredNode
	for _, child := range n.Children {
		if fc := Filter(child, query, depth+1); fc != nil {
			kept = append(kept, fc)
		}
	}
	matched := nameMatches(n, query)
	if !matched && len(kept) == 0 {
		return nil
	}
	return &FilteredNode{Node: n, Children: kept, Depth: depth, Matched: matched}
}

// FilterChildren filters each top-level child of root independently. The root
// itself is never filtered; its children start at depth 1.
func FilterChildren(root *Node, query string) []*FilteredNode {
	if root == nil {
		return nil
	}
	var out []*FilteredNode
	for _, child := range root.Children {
		if fn := Filter(child, query, 1); fn != nil {
			out = append(out, fn)
		}
	}
	return out
}

// SurvivingIDs lists every node id in results in pre-order.
func SurvivingIDs(results []*FilteredNode) []string {
	var ids []string
	var walk func(*FilteredNode)
	walk = func(fn *FilteredNode) {
		ids = append(ids, fn.Node.ID)
		for _, c := range fn.Children {
			walk(c)
		}
	}
	for _, fn := range results {
		walk(fn)
	}
	return ids
}

func nameMatches(n *Node, query string) bool {
	return strings.Contains(strings.ToLower(n.Name), query)
}
