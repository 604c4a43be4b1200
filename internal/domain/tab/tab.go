// Package tab provides the media tab domain entity.
package tab

import "github.com/panebox/panebox/internal/domain/media"

// Unassigned is the pane index of a tab not bound to any pane.
const Unassigned = -1

// Tab represents a user-facing handle to a media item, independent of
// whether the item currently occupies a pane.
type Tab struct {
	ID        string      // Generated UUID
	Title     string      // Display title
	Item      *media.Item // Carried media, nil for an empty tab
	PaneIndex int         // Unassigned, or the pane currently showing this tab
}

// IsAssigned returns true if the tab is bound to a pane.
func (t *Tab) IsAssigned() bool {
	return t.PaneIndex >= 0
}
