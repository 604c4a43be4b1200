package slideshow

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panebox/panebox/internal/app/pane"
)

// fakeAllocator records AssignNext calls.
type fakeAllocator struct {
	mu     sync.Mutex
	layout pane.Layout
	calls  []int
}

func (f *fakeAllocator) AssignNext(paneIndex int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, paneIndex)
	return true
}

func (f *fakeAllocator) Layout() pane.Layout {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.layout
}

func (f *fakeAllocator) Calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]int, len(f.calls))
	copy(result, f.calls)
	return result
}

// fakeImages is a settable image-content probe.
type fakeImages struct {
	mu  sync.Mutex
	has bool
}

func (f *fakeImages) HasImages() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.has
}

func (f *fakeImages) set(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.has = v
}

func TestTimer_StaysIdleWithoutImages(t *testing.T) {
	alloc := &fakeAllocator{layout: pane.LayoutSingle}
	images := &fakeImages{has: false}

	timer := NewTimer(alloc, images, Settings{Enabled: true, Interval: 10 * time.Millisecond})
	defer timer.Stop()
	timer.Refresh()

	assert.Equal(t, PhaseIdle, timer.Phase())
}

func TestTimer_ArmsWhenEnabledWithImages(t *testing.T) {
	alloc := &fakeAllocator{layout: pane.LayoutSingle}
	images := &fakeImages{has: true}

	timer := NewTimer(alloc, images, Settings{Enabled: true, Interval: 10 * time.Millisecond})
	defer timer.Stop()
	timer.Refresh()

	assert.Equal(t, PhaseArmed, timer.Phase())
}

func TestTimer_AllAtOnceAdvancesEveryActivePane(t *testing.T) {
	alloc := &fakeAllocator{layout: pane.LayoutHorizontal}
	images := &fakeImages{has: true}

	timer := NewTimer(alloc, images, Settings{
		Enabled:  true,
		Interval: 10 * time.Millisecond,
		Mode:     ModeAllAtOnce,
	})
	defer timer.Stop()
	timer.Refresh()

	require.Eventually(t, func() bool {
		return len(alloc.Calls()) >= 2
	}, time.Second, time.Millisecond)

	calls := alloc.Calls()
	assert.Equal(t, []int{0, 1}, calls[:2], "panes advance in increasing index order")
}

func TestTimer_RotatingCyclesPanes(t *testing.T) {
	alloc := &fakeAllocator{layout: pane.LayoutQuad}
	images := &fakeImages{has: true}

	timer := NewTimer(alloc, images, Settings{
		Enabled:  true,
		Interval: 10 * time.Millisecond,
		Mode:     ModeRotating,
	})
	defer timer.Stop()
	timer.Refresh()

	require.Eventually(t, func() bool {
		return len(alloc.Calls()) >= 5
	}, 2*time.Second, time.Millisecond)

	// Rotation wraps mod the active pane count: 1,2,3,0,1,...
	calls := alloc.Calls()
	assert.Equal(t, []int{1, 2, 3, 0, 1}, calls[:5])
}

func TestTimer_RotatingWrapsShrunkLayout(t *testing.T) {
	alloc := &fakeAllocator{layout: pane.LayoutQuad}
	images := &fakeImages{has: true}

	timer := NewTimer(alloc, images, Settings{
		Enabled:  true,
		Interval: 10 * time.Millisecond,
		Mode:     ModeRotating,
	})
	defer timer.Stop()
	timer.Refresh()

	require.Eventually(t, func() bool {
		return len(alloc.Calls()) >= 3
	}, 2*time.Second, time.Millisecond)

	// Shrink the layout mid-run; subsequent ticks must stay in range.
	alloc.mu.Lock()
	alloc.layout = pane.LayoutSingle
	before := len(alloc.calls)
	alloc.mu.Unlock()

	require.Eventually(t, func() bool {
		return len(alloc.Calls()) >= before+2
	}, 2*time.Second, time.Millisecond)

	for _, idx := range alloc.Calls()[before:] {
		assert.Less(t, idx, 1, "rotating index out of range after shrink")
	}
}

func TestTimer_DisableCancelsPendingTick(t *testing.T) {
	alloc := &fakeAllocator{layout: pane.LayoutSingle}
	images := &fakeImages{has: true}

	timer := NewTimer(alloc, images, Settings{Enabled: true, Interval: 50 * time.Millisecond})
	defer timer.Stop()
	timer.Refresh()
	require.Equal(t, PhaseArmed, timer.Phase())

	timer.Configure(Settings{Enabled: false, Interval: 50 * time.Millisecond})
	assert.Equal(t, PhaseIdle, timer.Phase())

	time.Sleep(120 * time.Millisecond)
	assert.Empty(t, alloc.Calls(), "cancelled wake-up must not fire")
}

func TestTimer_GoesIdleWhenImagesDisappear(t *testing.T) {
	alloc := &fakeAllocator{layout: pane.LayoutSingle}
	images := &fakeImages{has: true}

	timer := NewTimer(alloc, images, Settings{Enabled: true, Interval: 10 * time.Millisecond})
	defer timer.Stop()
	timer.Refresh()

	images.set(false)

	require.Eventually(t, func() bool {
		return timer.Phase() == PhaseIdle
	}, time.Second, time.Millisecond)
}

func TestTimer_StopIsIdempotent(t *testing.T) {
	alloc := &fakeAllocator{layout: pane.LayoutSingle}
	images := &fakeImages{has: true}

	timer := NewTimer(alloc, images, Settings{Enabled: true, Interval: 10 * time.Millisecond})
	timer.Refresh()

	timer.Stop()
	timer.Stop()
	assert.Equal(t, PhaseIdle, timer.Phase())
}
