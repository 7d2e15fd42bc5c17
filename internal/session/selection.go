package session

import "sort"

// SelectionSet holds the row identifiers currently checked in the
// collection view. Set semantics: repeated identical toggles are no-ops
// and insertion order never leaks to consumers.
type SelectionSet struct {
	ids      map[string]struct{}
	onChange func()
}

// NewSelectionSet creates an empty selection. onChange may be nil.
func NewSelectionSet(onChange func()) *SelectionSet {
	return &SelectionSet{
		ids:      make(map[string]struct{}),
		onChange: onChange,
	}
}

// Toggle adds id when checked and absent, removes it when unchecked and
// present, and does nothing otherwise. Never errors.
func (s *SelectionSet) Toggle(id string, checked bool) {
	if checked {
		if _, ok := s.ids[id]; ok {
			return
		}
		s.ids[id] = struct{}{}
	} else {
		if _, ok := s.ids[id]; !ok {
			return
		}
		delete(s.ids, id)
	}
	s.notify()
}

// Clear empties the set. Used after destructive or completed operations.
func (s *SelectionSet) Clear() {
	if len(s.ids) == 0 {
		return
	}
	s.ids = make(map[string]struct{})
	s.notify()
}

// Len returns the selection cardinality.
func (s *SelectionSet) Len() int {
	return len(s.ids)
}

// Has reports whether id is selected.
func (s *SelectionSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs returns the selected identifiers in sorted order.
func (s *SelectionSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *SelectionSet) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
