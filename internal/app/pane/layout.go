// Package pane provides the pane grid and next-item allocation.
package pane

import "github.com/cockroachdb/errors"

// MaxPanes is the size of the pane array, matching the largest layout.
const MaxPanes = 4

// Layout represents the viewing grid arrangement.
type Layout int

const (
	LayoutSingle     Layout = iota // One pane
	LayoutHorizontal               // Two panes side by side
	LayoutVertical                 // Two panes stacked
	LayoutQuad                     // Four panes in a 2x2 grid
)

// String returns the string representation of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutSingle:
		return "single"
	case LayoutHorizontal:
		return "horizontal"
	case LayoutVertical:
		return "vertical"
	case LayoutQuad:
		return "quad"
	default:
		return "unknown"
	}
}

// MaxActive returns how many panes may be active under this layout.
func (l Layout) MaxActive() int {
	switch l {
	case LayoutHorizontal, LayoutVertical:
		return 2
	case LayoutQuad:
		return MaxPanes
	default:
		return 1
	}
}

// ParseLayout parses a layout name.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "single", "":
		return LayoutSingle, nil
	case "horizontal":
		return LayoutHorizontal, nil
	case "vertical":
		return LayoutVertical, nil
	case "quad":
		return LayoutQuad, nil
	default:
		return LayoutSingle, errors.Newf("unknown layout: %q", s)
	}
}
