package transport

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panebox/panebox/internal/app/pane"
	"github.com/panebox/panebox/internal/app/queue"
	"github.com/panebox/panebox/internal/domain/media"
)

// fakeRenderer records calls from the aggregator.
type fakeRenderer struct {
	mu       sync.Mutex
	loads    []string
	seeks    []float64
	playings []bool
}

func (f *fakeRenderer) Load(paneIndex int, item media.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, item.Source)
}

func (f *fakeRenderer) Seek(paneIndex int, position float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, position)
}

func (f *fakeRenderer) SetPlaying(paneIndex int, playing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playings = append(f.playings, playing)
}

func newTestAggregator(t *testing.T, layout pane.Layout, sources ...string) (*Aggregator, *pane.Allocator, *queue.Store, *fakeRenderer) {
	t.Helper()

	s := queue.NewSeededStore(1)
	specs := make([]media.Spec, len(sources))
	for i, src := range sources {
		specs[i] = media.Spec{Source: src}
	}
	s.AddItems(specs)

	alloc := pane.NewAllocator(s, layout)
	r := &fakeRenderer{}
	a := New(alloc, s, r, Options{Volume: 1})
	return a, alloc, s, r
}

func TestAggregator_AssignmentDrivesRenderer(t *testing.T) {
	_, alloc, _, r := newTestAggregator(t, pane.LayoutSingle, "a.mp4")

	require.True(t, alloc.AssignNext(0))

	assert.Equal(t, []string{"a.mp4"}, r.loads)
}

func TestAggregator_SetVolume_Clamps(t *testing.T) {
	a, _, _, _ := newTestAggregator(t, pane.LayoutSingle)

	a.SetVolume(1.5)
	assert.Equal(t, 1.0, a.State().Volume)

	a.SetVolume(-0.2)
	assert.Equal(t, 0.0, a.State().Volume)

	a.SetVolume(0.35)
	assert.Equal(t, 0.35, a.State().Volume)
}

func TestAggregator_CycleRepeat(t *testing.T) {
	a, _, _, _ := newTestAggregator(t, pane.LayoutSingle)

	assert.Equal(t, pane.RepeatNone, a.State().Repeat)
	a.CycleRepeat()
	assert.Equal(t, pane.RepeatOne, a.State().Repeat)
	a.CycleRepeat()
	assert.Equal(t, pane.RepeatAll, a.State().Repeat)
	a.CycleRepeat()
	assert.Equal(t, pane.RepeatNone, a.State().Repeat)
}

func TestAggregator_ToggleShuffle_DoesNotReassign(t *testing.T) {
	a, alloc, _, _ := newTestAggregator(t, pane.LayoutSingle, "a.mp4", "b.mp4")

	require.True(t, alloc.AssignNext(0))
	before := alloc.Pane(0).Current.ID

	a.ToggleShuffle()

	assert.True(t, a.State().Shuffled)
	assert.True(t, a.Shuffle(), "policy reflects the toggle")
	assert.Equal(t, before, alloc.Pane(0).Current.ID, "content untouched until the next assignment")
}

func TestAggregator_OnTimeUpdate(t *testing.T) {
	a, alloc, _, _ := newTestAggregator(t, pane.LayoutSingle, "a.mp4")
	require.True(t, alloc.AssignNext(0))

	a.OnTimeUpdate(0, 30, 120, true)

	st := a.State()
	assert.Equal(t, 30.0, st.CurrentTime)
	assert.Equal(t, 120.0, st.Duration)
	assert.True(t, st.IsPlaying)

	paneState := alloc.Pane(0)
	assert.Equal(t, 30.0, paneState.CurrentTime)
	assert.Equal(t, 120.0, paneState.Duration)
}

func TestAggregator_OnEnded_Advances(t *testing.T) {
	a, alloc, s, r := newTestAggregator(t, pane.LayoutSingle, "a.mp4", "b.mp4")
	require.True(t, alloc.AssignNext(0))

	a.OnEnded(0)

	assert.Equal(t, "b.mp4", alloc.Pane(0).Current.Source)
	assert.Equal(t, []string{"a.mp4", "b.mp4"}, r.loads)
	items := s.Items()
	assert.True(t, items[0].Played)
	assert.False(t, items[1].Played)
}

func TestAggregator_OnEnded_RepeatOneSeeksToZero(t *testing.T) {
	a, alloc, _, r := newTestAggregator(t, pane.LayoutSingle, "a.mp4")
	require.True(t, alloc.AssignNext(0))

	a.CycleRepeat() // none -> one
	a.OnEnded(0)

	assert.Equal(t, []float64{0}, r.seeks)
	assert.Equal(t, []bool{true}, r.playings)
	assert.Len(t, r.loads, 1, "no new load on replay")
}

func TestAggregator_OnError_KeepsContentUnplayed(t *testing.T) {
	a, alloc, s, _ := newTestAggregator(t, pane.LayoutSingle, "a.mp4")
	require.True(t, alloc.AssignNext(0))

	var gotPane int
	var gotMsg string
	a.SetErrorHandler(func(paneIndex int, message string) {
		gotPane = paneIndex
		gotMsg = message
	})

	a.OnError(0, "could not open source")

	assert.Equal(t, 0, gotPane)
	assert.Equal(t, "could not open source", gotMsg)
	assert.NotNil(t, alloc.Pane(0).Current)
	assert.False(t, s.Items()[0].Played)
}

func TestAggregator_SubscribersReceiveSnapshots(t *testing.T) {
	a, _, _, _ := newTestAggregator(t, pane.LayoutSingle)

	var got []State
	id := a.Subscribe(func(s State) { got = append(got, s) })

	a.SetVolume(0.5)
	a.ToggleMute()

	require.Len(t, got, 2)
	assert.Equal(t, 0.5, got[0].Volume)
	assert.True(t, got[1].Muted)

	a.Unsubscribe(id)
	a.SetVolume(0.9)
	assert.Len(t, got, 2, "unsubscribed callback must not fire")
}

func TestAggregator_PlayPause(t *testing.T) {
	a, alloc, _, r := newTestAggregator(t, pane.LayoutSingle, "a.mp4")
	require.True(t, alloc.AssignNext(0))

	a.Pause()
	assert.False(t, a.State().IsPlaying)

	a.Play()
	assert.True(t, a.State().IsPlaying)

	a.TogglePlay()
	assert.False(t, a.State().IsPlaying)

	assert.Equal(t, []bool{false, true, false}, r.playings)
}
