// Package tabs provides the media tab registry and drag reconciliation.
package tabs

import (
	"sync"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/panebox/panebox/internal/domain/media"
	"github.com/panebox/panebox/internal/domain/tab"
)

// PaneSink receives tab-driven direct placements. Implemented by the pane
// allocator.
type PaneSink interface {
	Place(paneIndex int, item media.Item)
}

// Registry holds the ordered set of media tabs and the active tab.
// At most one tab holds a given pane index at any time.
type Registry struct {
	mu       sync.RWMutex
	tabs     []*tab.Tab // Creation order
	activeID string
	panes    PaneSink
}

// NewRegistry creates a tab registry bridging into the given pane sink.
func NewRegistry(panes PaneSink) *Registry {
	return &Registry{
		tabs:  make([]*tab.Tab, 0),
		panes: panes,
	}
}

// Create adds a new tab, optionally carrying a media item, and makes it
// the active tab.
func (r *Registry) Create(item *media.Item) tab.Tab {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := &tab.Tab{
		ID:        uuid.New().String(),
		PaneIndex: tab.Unassigned,
	}
	if item != nil {
		carried := *item
		t.Item = &carried
		t.Title = carried.Title
	}

	r.tabs = append(r.tabs, t)
	r.activeID = t.ID
	return *t
}

// Remove deletes a tab. Removing the active tab promotes the
// most-recently-added remaining tab, or clears the active tab if none
// remain.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return
	}

	r.tabs = append(r.tabs[:idx], r.tabs[idx+1:]...)

	if r.activeID == id {
		if len(r.tabs) == 0 {
			r.activeID = ""
		} else {
			r.activeID = r.tabs[len(r.tabs)-1].ID
		}
	}
}

// AssignToPane binds a tab to a pane, evicting any other tab holding that
// pane. A tab carrying media places it directly into the pane; this is a
// direct placement, not a next-unplayed pick. The tab becomes active.
func (r *Registry) AssignToPane(tabID string, paneIndex int) {
	r.mu.Lock()

	idx := r.indexLocked(tabID)
	if idx < 0 {
		r.mu.Unlock()
		zlog.Debug().Msgf("tabs: assign to pane ignored, unknown tab: id=%s", tabID)
		return
	}

	for _, t := range r.tabs {
		if t.ID != tabID && t.PaneIndex == paneIndex {
			t.PaneIndex = tab.Unassigned
		}
	}

	target := r.tabs[idx]
	target.PaneIndex = paneIndex
	r.activeID = target.ID

	var placed *media.Item
	if target.Item != nil {
		carried := *target.Item
		placed = &carried
	}
	r.mu.Unlock()

	if placed != nil && r.panes != nil {
		r.panes.Place(paneIndex, *placed)
	}
}

// UnassignFromPane releases a tab's pane binding without touching pane
// content. Used when a tab is dragged back onto the tab strip.
func (r *Registry) UnassignFromPane(tabID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(tabID)
	if idx < 0 {
		return
	}
	r.tabs[idx].PaneIndex = tab.Unassigned
}

// SetActive makes the given tab active. Unknown IDs are a no-op.
func (r *Registry) SetActive(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(id) >= 0 {
		r.activeID = id
	}
}

// Active returns the active tab, if any.
func (r *Registry) Active() (tab.Tab, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(r.activeID)
	if idx < 0 {
		return tab.Tab{}, false
	}
	return *r.tabs[idx], true
}

// Get returns a tab by ID.
func (r *Registry) Get(id string) (tab.Tab, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return tab.Tab{}, false
	}
	return *r.tabs[idx], true
}

// Tabs returns a copy of all tabs in creation order.
func (r *Registry) Tabs() []tab.Tab {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]tab.Tab, len(r.tabs))
	for i, t := range r.tabs {
		result[i] = *t
	}
	return result
}

// Len returns the number of tabs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tabs)
}

// indexLocked returns the index of the tab with the given ID, or -1.
// Must be called with the lock held.
func (r *Registry) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range r.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}
