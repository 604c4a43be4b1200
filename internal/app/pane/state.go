package pane

import "github.com/panebox/panebox/internal/domain/media"

// State holds the rendering state of a single pane.
// Panes outside the active layout are inert but keep their content, so
// switching back to a larger layout restores what they showed.
type State struct {
	Current     *media.Item // Item shown in the pane, nil when empty
	IsPlaying   bool
	CurrentTime float64 // Seconds
	Duration    float64 // Seconds, 0 when unknown
}
