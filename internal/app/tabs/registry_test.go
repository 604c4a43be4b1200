package tabs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panebox/panebox/internal/domain/media"
	"github.com/panebox/panebox/internal/domain/tab"
)

// fakeSink records direct pane placements.
type fakeSink struct {
	mu     sync.Mutex
	placed []placement
}

type placement struct {
	pane int
	item media.Item
}

func (f *fakeSink) Place(paneIndex int, item media.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placed = append(f.placed, placement{pane: paneIndex, item: item})
}

func testItem(source string) *media.Item {
	item := media.NewItem(media.Spec{Source: source})
	return &item
}

func TestRegistry_Create(t *testing.T) {
	r := NewRegistry(&fakeSink{})

	empty := r.Create(nil)
	assert.NotEmpty(t, empty.ID)
	assert.Equal(t, tab.Unassigned, empty.PaneIndex)
	assert.Nil(t, empty.Item)

	withMedia := r.Create(testItem("a.mp4"))
	assert.Equal(t, "a.mp4", withMedia.Title)
	require.NotNil(t, withMedia.Item)

	// The newest tab is active.
	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, withMedia.ID, active.ID)
}

func TestRegistry_Remove_PromotesLastRemaining(t *testing.T) {
	r := NewRegistry(&fakeSink{})

	t1 := r.Create(nil)
	t2 := r.Create(nil)
	t3 := r.Create(nil)

	r.SetActive(t1.ID)
	r.Remove(t1.ID)

	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, t3.ID, active.ID, "most-recently-added remaining tab becomes active")

	r.Remove(t3.ID)
	active, ok = r.Active()
	require.True(t, ok)
	assert.Equal(t, t2.ID, active.ID)

	r.Remove(t2.ID)
	_, ok = r.Active()
	assert.False(t, ok)
	assert.Zero(t, r.Len())
}

func TestRegistry_Remove_InactiveKeepsActive(t *testing.T) {
	r := NewRegistry(&fakeSink{})

	t1 := r.Create(nil)
	t2 := r.Create(nil)

	r.Remove(t1.ID)

	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, t2.ID, active.ID)
}

func TestRegistry_AssignToPane_Evicts(t *testing.T) {
	r := NewRegistry(&fakeSink{})

	t1 := r.Create(testItem("a.mp4"))
	t2 := r.Create(testItem("b.mp4"))

	r.AssignToPane(t1.ID, 2)
	r.AssignToPane(t2.ID, 2)

	got1, _ := r.Get(t1.ID)
	got2, _ := r.Get(t2.ID)
	assert.Equal(t, tab.Unassigned, got1.PaneIndex)
	assert.Equal(t, 2, got2.PaneIndex)
}

func TestRegistry_AssignToPane_SinglePaneHolderInvariant(t *testing.T) {
	r := NewRegistry(&fakeSink{})

	created := make([]tab.Tab, 5)
	for i := range created {
		created[i] = r.Create(testItem("x.mp4"))
	}

	for _, c := range created {
		r.AssignToPane(c.ID, 1)
	}

	holders := 0
	for _, got := range r.Tabs() {
		if got.PaneIndex == 1 {
			holders++
		}
	}
	assert.Equal(t, 1, holders)
}

func TestRegistry_AssignToPane_PlacesCarriedMedia(t *testing.T) {
	sink := &fakeSink{}
	r := NewRegistry(sink)

	item := testItem("a.mp4")
	t1 := r.Create(item)

	r.AssignToPane(t1.ID, 3)

	require.Len(t, sink.placed, 1)
	assert.Equal(t, 3, sink.placed[0].pane)
	assert.Equal(t, item.ID, sink.placed[0].item.ID)
}

func TestRegistry_AssignToPane_EmptyTabPlacesNothing(t *testing.T) {
	sink := &fakeSink{}
	r := NewRegistry(sink)

	t1 := r.Create(nil)
	r.AssignToPane(t1.ID, 0)

	assert.Empty(t, sink.placed)
	got, _ := r.Get(t1.ID)
	assert.Equal(t, 0, got.PaneIndex)
}

func TestRegistry_AssignToPane_MakesTabActive(t *testing.T) {
	r := NewRegistry(&fakeSink{})

	t1 := r.Create(nil)
	r.Create(nil)

	r.AssignToPane(t1.ID, 0)

	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, t1.ID, active.ID)
}

func TestRegistry_UnassignFromPane(t *testing.T) {
	sink := &fakeSink{}
	r := NewRegistry(sink)

	t1 := r.Create(testItem("a.mp4"))
	r.AssignToPane(t1.ID, 1)
	placedBefore := len(sink.placed)

	r.UnassignFromPane(t1.ID)

	got, _ := r.Get(t1.ID)
	assert.Equal(t, tab.Unassigned, got.PaneIndex)
	// Pane content is untouched; only tab bookkeeping changes.
	assert.Len(t, sink.placed, placedBefore)
}

func TestRegistry_UnknownIDsAreNoOps(t *testing.T) {
	r := NewRegistry(&fakeSink{})
	t1 := r.Create(nil)

	r.Remove("no-such-tab")
	r.AssignToPane("no-such-tab", 0)
	r.UnassignFromPane("no-such-tab")
	r.SetActive("no-such-tab")

	assert.Equal(t, 1, r.Len())
	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, t1.ID, active.ID)
}
