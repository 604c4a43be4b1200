package tabs

import "sync"

// DropKind tags the target of a drag gesture.
type DropKind int

const (
	DropNone  DropKind = iota // Outside any valid target
	DropPane                  // A pane index
	DropStrip                 // The tab strip
)

// DropTarget is a tagged drop zone.
type DropTarget struct {
	Kind DropKind
	Pane int // Valid only when Kind == DropPane
}

// PaneTarget returns a drop target for the given pane.
func PaneTarget(paneIndex int) DropTarget {
	return DropTarget{Kind: DropPane, Pane: paneIndex}
}

// StripTarget returns the tab-strip drop target.
func StripTarget() DropTarget {
	return DropTarget{Kind: DropStrip}
}

// NoTarget returns the invalid drop target.
func NoTarget() DropTarget {
	return DropTarget{Kind: DropNone}
}

// DragPhase is the drag gesture state.
type DragPhase int

const (
	DragIdle      DragPhase = iota // No drag in progress
	DragActive                     // A tab is being dragged
	DragDroppable                  // The drag hovers a valid target
)

// Drag is the drag-and-drop state machine over the tab registry. Nothing
// is mutated speculatively during a drag; only Drop commits, so a drag
// ended outside any target needs no rollback.
type Drag struct {
	mu       sync.Mutex
	registry *Registry
	phase    DragPhase
	tabID    string
	target   DropTarget
}

// NewDrag creates a drag state machine over the given registry.
func NewDrag(registry *Registry) *Drag {
	return &Drag{registry: registry}
}

// Begin starts dragging a tab. Returns false if a drag is already in
// progress or the tab does not exist.
func (d *Drag) Begin(tabID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != DragIdle {
		return false
	}
	if _, ok := d.registry.Get(tabID); !ok {
		return false
	}

	d.phase = DragActive
	d.tabID = tabID
	d.target = NoTarget()
	return true
}

// Hover updates the hovered drop target. Ignored when no drag is in
// progress.
func (d *Drag) Hover(target DropTarget) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase == DragIdle {
		return
	}

	d.target = target
	if target.Kind == DropNone {
		d.phase = DragActive
	} else {
		d.phase = DragDroppable
	}
}

// Drop commits the gesture: a pane target assigns the tab to that pane, the
// tab strip unassigns it, and no target leaves all state unchanged. The
// drag returns to idle either way. Calling Drop without an active drag is
// a no-op.
func (d *Drag) Drop() {
	d.mu.Lock()
	if d.phase == DragIdle {
		d.mu.Unlock()
		return
	}

	tabID := d.tabID
	target := d.target
	d.resetLocked()
	d.mu.Unlock()

	switch target.Kind {
	case DropPane:
		d.registry.AssignToPane(tabID, target.Pane)
	case DropStrip:
		d.registry.UnassignFromPane(tabID)
	}
}

// Cancel abandons the gesture without mutating anything.
func (d *Drag) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
}

// Phase returns the current drag phase.
func (d *Drag) Phase() DragPhase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// resetLocked returns the machine to idle. Must be called with the lock
// held.
func (d *Drag) resetLocked() {
	d.phase = DragIdle
	d.tabID = ""
	d.target = NoTarget()
}
