// Package slideshow provides timer-driven advancement of image content.
package slideshow

import (
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/panebox/panebox/internal/app/pane"
)

// Mode selects which panes advance on a tick.
type Mode int

const (
	ModeAllAtOnce Mode = iota // Every active pane advances on each tick
	ModeRotating              // One pane advances per tick, cycling in order
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAllAtOnce:
		return "all_at_once"
	case ModeRotating:
		return "rotating"
	default:
		return "unknown"
	}
}

// ParseMode parses a slideshow mode name. Unknown names fall back to
// all-at-once.
func ParseMode(s string) Mode {
	if s == "rotating" {
		return ModeRotating
	}
	return ModeAllAtOnce
}

// Phase is the timer lifecycle state.
type Phase int

const (
	PhaseIdle  Phase = iota // No wake-up pending
	PhaseArmed              // A single-shot wake-up is scheduled
)

// Settings holds the slideshow configuration.
type Settings struct {
	Enabled  bool
	Interval time.Duration // Minimum 1s, enforced on arm
	Mode     Mode
}

// Allocator is the pane allocator interface consumed by the timer.
type Allocator interface {
	AssignNext(paneIndex int) bool
	Layout() pane.Layout
}

// ImageSource reports whether the queue still holds image content.
type ImageSource interface {
	HasImages() bool
}

// Timer advances image content on a fixed interval. Each tick schedules a
// fresh single-shot wake-up rather than using a repeating interval, so an
// interval change takes effect on the very next tick.
type Timer struct {
	mu       sync.Mutex
	alloc    Allocator
	images   ImageSource
	settings Settings
	rotating int // Pane advanced by the last rotating tick
	phase    Phase
	gen      uint64 // Guards against stale wake-ups after cancel
	cancel   func()
}

// NewTimer creates a slideshow timer. It starts idle; call Refresh (or
// Configure) to arm it.
func NewTimer(alloc Allocator, images ImageSource, settings Settings) *Timer {
	return &Timer{
		alloc:    alloc,
		images:   images,
		settings: settings,
	}
}

// Configure replaces the settings. Enabling arms the timer if image
// content exists; disabling cancels any pending wake-up. An interval
// change while armed leaves the pending wake-up in place and applies on
// the next re-arm.
func (t *Timer) Configure(s Settings) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.settings = s
	if !s.Enabled {
		t.disarmLocked()
		return
	}
	if t.phase == PhaseIdle {
		t.armLocked()
	}
}

// Settings returns the current settings.
func (t *Timer) Settings() Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// Phase returns the current lifecycle phase.
func (t *Timer) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// Refresh re-evaluates the arming condition. Called after queue content
// changes so a newly added image can start an enabled slideshow.
func (t *Timer) Refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.settings.Enabled && t.phase == PhaseIdle {
		t.armLocked()
	}
}

// Stop cancels any pending wake-up. Must be called on teardown; a dangling
// wake-up firing into torn-down state is a leak.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disarmLocked()
}

// armLocked schedules a single-shot wake-up if image content exists.
// Must be called with the lock held.
func (t *Timer) armLocked() {
	if !t.images.HasImages() {
		return
	}

	// Interval floor is enforced by config validation; guard only against
	// a zero value that would spin the timer.
	interval := t.settings.Interval
	if interval <= 0 {
		interval = time.Second
	}

	t.gen++
	gen := t.gen
	timer := time.AfterFunc(interval, func() {
		t.tick(gen)
	})
	t.cancel = func() { timer.Stop() }
	t.phase = PhaseArmed
}

// disarmLocked cancels the pending wake-up. Must be called with the lock
// held.
func (t *Timer) disarmLocked() {
	t.gen++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.phase = PhaseIdle
}

// tick advances pane content, then re-arms or goes idle.
func (t *Timer) tick(gen uint64) {
	t.mu.Lock()

	// A cancelled or superseded wake-up fires into nothing.
	if gen != t.gen || t.phase != PhaseArmed {
		t.mu.Unlock()
		return
	}

	if !t.settings.Enabled || !t.images.HasImages() {
		t.disarmLocked()
		t.mu.Unlock()
		return
	}

	mode := t.settings.Mode
	maxActive := t.alloc.Layout().MaxActive()

	switch mode {
	case ModeRotating:
		// Taken mod the current active count, so shrinking the layout
		// cannot index out of range.
		next := (t.rotating + 1) % maxActive
		t.rotating = next
		t.mu.Unlock()
		t.alloc.AssignNext(next)
		t.mu.Lock()
	default:
		t.mu.Unlock()
		for i := 0; i < maxActive; i++ {
			t.alloc.AssignNext(i)
		}
		t.mu.Lock()
	}

	// Re-arm unless the slideshow was torn down during the tick.
	if gen == t.gen && t.phase == PhaseArmed {
		if t.settings.Enabled && t.images.HasImages() {
			t.armLocked()
		} else {
			t.disarmLocked()
		}
	}
	t.mu.Unlock()

	zlog.Debug().Msgf("slideshow: tick: mode=%s panes=%d", mode, maxActive)
}
