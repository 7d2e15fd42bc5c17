package session

// OverlayKind identifies which contextual overlay is visible.
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayConfirmDelete
	OverlayDetailDrawer
)

// Overlay is the visible overlay and its target row. Exactly one kind is
// active at any time; TargetID is empty for OverlayNone.
type Overlay struct {
	Kind     OverlayKind
	TargetID string
}

// OverlayCoordinator decides which overlay is shown from the selection
// cardinality and explicit requests. The two overlays are mutually
// exclusive by construction: a single Overlay value is the only state.
//
// The cardinality gates mirror the established policy that contextual
// overlays never appear mid bulk-select: single-item delete is blocked
// as soon as anything is selected, the drawer as soon as two rows are.
type OverlayCoordinator struct {
	current  Overlay
	sel      *SelectionSet
	onChange func()
}

// NewOverlayCoordinator creates a coordinator gated by sel. onChange may
// be nil.
func NewOverlayCoordinator(sel *SelectionSet, onChange func()) *OverlayCoordinator {
	return &OverlayCoordinator{sel: sel, onChange: onChange}
}

// Current returns the active overlay.
func (c *OverlayCoordinator) Current() Overlay {
	return c.current
}

// RequestDelete shows the confirm-delete overlay for id. Rejected while
// any bulk selection is in progress; reports whether it took effect.
func (c *OverlayCoordinator) RequestDelete(id string) bool {
	if c.sel.Len() >= 1 {
		return false
	}
	c.current = Overlay{Kind: OverlayConfirmDelete, TargetID: id}
	c.notify()
	return true
}

// RequestDetail shows the detail drawer for id. Rejected once two or
// more rows are selected; reports whether it took effect.
func (c *OverlayCoordinator) RequestDetail(id string) bool {
	if c.sel.Len() >= 2 {
		return false
	}
	c.current = Overlay{Kind: OverlayDetailDrawer, TargetID: id}
	c.notify()
	return true
}

// Dismiss returns to the no-overlay state, from any state. Successful
// delete and save actions call this implicitly.
func (c *OverlayCoordinator) Dismiss() {
	if c.current.Kind == OverlayNone {
		return
	}
	c.current = Overlay{}
	c.notify()
}

func (c *OverlayCoordinator) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
