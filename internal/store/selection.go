package store

import "sort"

// Selection is the transient set of obligation ids chosen for a bulk action.
// It is page-scoped: toggling "all" works against the ids of the visible
// page, and changing pages does not carry the set along. Never persisted.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips membership for one id.
func (s *Selection) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// ToggleAll selects exactly the given page ids, or clears the selection when
// every one of them is already selected.
func (s *Selection) ToggleAll(pageIDs []string) {
	if len(pageIDs) > 0 && s.hasAll(pageIDs) {
		s.Clear()
		return
	}
	s.ids = make(map[string]struct{}, len(pageIDs))
	for _, id := range pageIDs {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) hasAll(ids []string) bool {
	for _, id := range ids {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected ids.
func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the selected ids in sorted order for stable display and
// request bodies.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clear empties the selection. Called after a successful bulk action and at
// navigation boundaries.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}
