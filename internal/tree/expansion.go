package tree

import "sort"

// ExpansionStore is the set of node ids whose children are shown. Display
// order never depends on it.
type ExpansionStore struct {
	ids map[string]struct{}
}

// NewExpansionStore returns an empty store.
func NewExpansionStore() *ExpansionStore {
	return &ExpansionStore{ids: make(map[string]struct{})}
}

// Toggle flips id and returns its new state.
func (s *ExpansionStore) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Set forces id to the given state and reports whether it changed.
func (s *ExpansionStore) Set(id string, expanded bool) bool {
	_, was := s.ids[id]
	if was == expanded {
		return false
	}
	if expanded {
		s.ids[id] = struct{}{}
	} else {
		delete(s.ids, id)
	}
	return true
}

// ExpandAll replaces the set with ids.
func (s *ExpansionStore) ExpandAll(ids []string) {
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Merge adds ids to the set and returns the ones that were not already present.
func (s *ExpansionStore) Merge(ids []string) []string {
	var added []string
	for _, id := range ids {
		if _, ok := s.ids[id]; ok {
			continue
		}
		s.ids[id] = struct{}{}
		added = append(added, id)
	}
	return added
}

// Remove deletes ids from the set.
func (s *ExpansionStore) Remove(ids []string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// IsExpanded reports whether id is in the set.
func (s *ExpansionStore) IsExpanded(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Reset empties the set.
func (s *ExpansionStore) Reset() {
	s.ids = make(map[string]struct{})
}

// Len returns the number of expanded ids.
func (s *ExpansionStore) Len() int {
	return len(s.ids)
}

// IDs returns the expanded ids sorted.
func (s *ExpansionStore) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
