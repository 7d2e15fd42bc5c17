// Package session holds the state owned by one collection-view session:
// the bulk selection, the active contextual overlay, and the lazy detail
// cache. It has no rendering dependencies; the TUI drives it through the
// operations here and re-renders on change notifications.
//
// Everything runs on the UI event loop. The only concurrency concern is
// detail fetches settling later, which DetailCache absorbs with its
// request tokens, so no locking is needed here.
package session

import "log/slog"

// Session bundles the three owned entities behind a single change
// listener so multiple rendering surfaces can react without re-deriving
// state.
type Session struct {
	Selection *SelectionSet
	Overlay   *OverlayCoordinator
	Details   *DetailCache

	listeners []func()
}

// New creates a session with an empty selection, no overlay, and an
// empty detail cache.
func New(logger *slog.Logger) *Session {
	s := &Session{}
	notify := s.broadcast
	s.Selection = NewSelectionSet(notify)
	s.Overlay = NewOverlayCoordinator(s.Selection, notify)
	s.Details = NewDetailCache(logger, notify)
	return s
}

// Subscribe registers fn to run after every state mutation.
func (s *Session) Subscribe(fn func()) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

// ResetForList establishes a new collection-view identity: the
// selection empties, any overlay is dismissed, and cached details whose
// id left the listed set are evicted.
func (s *Session) ResetForList(ids []string) {
	s.Selection.Clear()
	s.Overlay.Dismiss()
	s.Details.Retain(ids)
}

func (s *Session) broadcast() {
	for _, fn := range s.listeners {
		fn()
	}
}
