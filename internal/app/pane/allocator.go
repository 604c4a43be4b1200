package pane

import (
	"sync"

	zlog "github.com/rs/zerolog/log"

	"github.com/panebox/panebox/internal/domain/media"
)

// Queue is the queue store interface consumed by the allocator.
type Queue interface {
	NextUnplayed(shuffle bool, exclude map[string]struct{}) *media.Item
	MarkPlayed(id string)
	ResetPlayed()
	Exhausted() bool
}

// Policy supplies the shuffle and repeat settings consulted on each
// assignment decision. Toggling them never reassigns content by itself.
type Policy interface {
	Shuffle() bool
	Repeat() RepeatMode
}

// EndOutcome describes what happened after an end-of-media notification.
type EndOutcome int

const (
	EndNoItem    EndOutcome = iota // The pane had no content
	EndReplayed                    // Repeat-one, the same item restarts from 0
	EndAdvanced                    // A next item was assigned
	EndExhausted                   // Nothing left, the pane keeps its content
)

// String returns the string representation of the outcome.
func (o EndOutcome) String() string {
	switch o {
	case EndNoItem:
		return "no_item"
	case EndReplayed:
		return "replayed"
	case EndAdvanced:
		return "advanced"
	case EndExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// fixedPolicy is the default policy before one is injected.
type fixedPolicy struct{}

func (fixedPolicy) Shuffle() bool      { return false }
func (fixedPolicy) Repeat() RepeatMode { return RepeatNone }

// Allocator owns the pane array and is the sole writer of pane content.
// Assignments pick the next unplayed queue item, excluding items already
// showing on other panes.
type Allocator struct {
	mu       sync.RWMutex
	queue    Queue
	layout   Layout
	policy   Policy
	panes    [MaxPanes]State
	onAssign func(paneIndex int, item media.Item)
}

// NewAllocator creates an allocator over the given queue and layout.
func NewAllocator(q Queue, layout Layout) *Allocator {
	return &Allocator{
		queue:  q,
		layout: layout,
		policy: fixedPolicy{},
	}
}

// SetPolicy injects the shuffle/repeat policy provider.
func (a *Allocator) SetPolicy(p Policy) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.policy = p
}

// SetAssignFunc registers a callback invoked after every content
// assignment, outside the allocator lock. Used to drive the render
// primitive.
func (a *Allocator) SetAssignFunc(fn func(paneIndex int, item media.Item)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onAssign = fn
}

// Layout returns the current layout.
func (a *Allocator) Layout() Layout {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.layout
}

// SetLayout changes the layout. Pane content is kept; only the number of
// panes considered active changes.
func (a *Allocator) SetLayout(l Layout) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.layout = l
}

// Pane returns a copy of the state of one pane.
func (a *Allocator) Pane(i int) State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if i < 0 || i >= MaxPanes {
		return State{}
	}
	return a.panes[i]
}

// Panes returns a copy of all pane states.
func (a *Allocator) Panes() [MaxPanes]State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.panes
}

// AssignNext assigns the next unplayed item to the given pane. The pane
// keeps its previous content when nothing is assignable, so the display
// does not flash to empty during queue exhaustion. Returns true if an
// item was assigned.
func (a *Allocator) AssignNext(paneIndex int) bool {
	a.mu.Lock()
	item := a.assignNextLocked(paneIndex)
	fn := a.onAssign
	a.mu.Unlock()

	if item == nil {
		return false
	}
	if fn != nil {
		fn(paneIndex, *item)
	}
	return true
}

// OnItemEnded handles an end-of-media notification for the given pane.
func (a *Allocator) OnItemEnded(paneIndex int) EndOutcome {
	a.mu.Lock()

	if paneIndex < 0 || paneIndex >= MaxPanes || a.panes[paneIndex].Current == nil {
		a.mu.Unlock()
		return EndNoItem
	}

	st := &a.panes[paneIndex]

	// Repeat-one replays the same item: no played mark, no advance.
	if a.policy.Repeat() == RepeatOne {
		st.CurrentTime = 0
		st.IsPlaying = true
		title := st.Current.Title
		a.mu.Unlock()
		zlog.Debug().Msgf("pane: repeat-one replay: pane=%d item=%s", paneIndex, title)
		return EndReplayed
	}

	a.queue.MarkPlayed(st.Current.ID)

	next := a.assignNextLocked(paneIndex)
	if next == nil && a.policy.Repeat() == RepeatAll && a.queue.Exhausted() {
		// Full-queue probe says everything has played; repeat-all starts
		// the queue over so the pane keeps advancing.
		a.queue.ResetPlayed()
		next = a.assignNextLocked(paneIndex)
	}

	fn := a.onAssign
	a.mu.Unlock()

	if next == nil {
		return EndExhausted
	}
	if fn != nil {
		fn(paneIndex, *next)
	}
	return EndAdvanced
}

// Place writes an item directly into a pane, bypassing the queue pick.
// Used for tab-driven assignment. Any other pane showing the same item is
// cleared so no two panes hold the same item.
func (a *Allocator) Place(paneIndex int, item media.Item) {
	if paneIndex < 0 || paneIndex >= MaxPanes {
		return
	}

	a.mu.Lock()
	for i := range a.panes {
		if i != paneIndex && a.panes[i].Current != nil && a.panes[i].Current.ID == item.ID {
			a.panes[i] = State{}
		}
	}
	a.panes[paneIndex] = State{
		Current:   &item,
		IsPlaying: true,
	}
	fn := a.onAssign
	a.mu.Unlock()

	if fn != nil {
		fn(paneIndex, item)
	}
}

// UpdateTransport records a position report from the render primitive.
// No-op for panes without content.
func (a *Allocator) UpdateTransport(paneIndex int, currentTime, duration float64, isPlaying bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if paneIndex < 0 || paneIndex >= MaxPanes || a.panes[paneIndex].Current == nil {
		return
	}
	st := &a.panes[paneIndex]
	st.CurrentTime = currentTime
	st.Duration = duration
	st.IsPlaying = isPlaying
}

// ActiveCount returns how many active panes currently show content.
func (a *Allocator) ActiveCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	count := 0
	for i := 0; i < a.layout.MaxActive(); i++ {
		if a.panes[i].Current != nil {
			count++
		}
	}
	return count
}

// assignNextLocked performs a single assignment. Exclusions are recomputed
// from the other panes on every call, so simultaneous multi-pane advances
// (done pane-by-pane in increasing index order) never hand the same item
// to two panes. Must be called with the lock held.
func (a *Allocator) assignNextLocked(paneIndex int) *media.Item {
	if paneIndex < 0 || paneIndex >= a.layout.MaxActive() {
		return nil
	}

	exclude := make(map[string]struct{}, MaxPanes)
	for i := range a.panes {
		if i != paneIndex && a.panes[i].Current != nil {
			exclude[a.panes[i].Current.ID] = struct{}{}
		}
	}

	item := a.queue.NextUnplayed(a.policy.Shuffle(), exclude)
	if item == nil {
		return nil
	}

	a.panes[paneIndex] = State{
		Current:   item,
		IsPlaying: true,
	}
	return item
}
