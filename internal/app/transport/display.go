package transport

import (
	"fmt"
	"math"
)

// Display holds the derived values the display surface renders.
type Display struct {
	Elapsed    string  // Formatted current position
	Total      string  // Formatted duration
	Percent    float64 // Progress percentage, 0..100
	QueueCount int
	Layout     string
}

// Display returns the derived display values for the current state.
func (a *Aggregator) Display() Display {
	st := a.State()
	return Display{
		Elapsed:    FormatClock(st.CurrentTime),
		Total:      FormatClock(st.Duration),
		Percent:    st.Progress(),
		QueueCount: a.queue.Len(),
		Layout:     a.alloc.Layout().String(),
	}
}

// Progress returns the playback progress percentage, clamped to [0, 100].
// Zero when the duration is zero or unknown.
func (s State) Progress() float64 {
	if s.Duration <= 0 || math.IsNaN(s.Duration) {
		return 0
	}
	p := s.CurrentTime / s.Duration * 100
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// FormatClock formats a position in seconds as m:ss, or h:mm:ss at an hour
// and above. Negative and non-finite values format as 0:00.
func FormatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}

	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
