// Package transport provides the aggregate playback state and the command
// surface between the display and the render primitive.
package transport

import (
	"sync"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/panebox/panebox/internal/app/pane"
	"github.com/panebox/panebox/internal/app/queue"
	"github.com/panebox/panebox/internal/domain/media"
)

// Renderer is the external render primitive boundary, one slot per pane.
// The core never touches decode or render internals.
type Renderer interface {
	Load(paneIndex int, item media.Item)
	Seek(paneIndex int, position float64)
	SetPlaying(paneIndex int, playing bool)
}

// State is the aggregate transport state broadcast to the display surface.
type State struct {
	IsPlaying   bool
	CurrentTime float64 // Seconds
	Duration    float64 // Seconds, 0 when unknown
	Volume      float64 // 0..1
	Muted       bool
	Shuffled    bool
	Repeat      pane.RepeatMode
}

// Subscriber receives state snapshots after every transport change.
type Subscriber func(State)

// Options holds the initial transport settings.
type Options struct {
	Volume  float64
	Shuffle bool
	Repeat  pane.RepeatMode
}

// Aggregator is the single source of truth for transport state. It consumes
// user commands and render-primitive signals, routes end-of-media into the
// allocator, and pushes snapshots to subscribers.
type Aggregator struct {
	mu       sync.RWMutex
	state    State
	alloc    *pane.Allocator
	queue    *queue.Store
	renderer Renderer
	subs     map[string]Subscriber
	errFn    func(paneIndex int, message string)
}

// New creates an aggregator and wires it as the allocator's shuffle/repeat
// policy and as the loader behind content assignments.
func New(alloc *pane.Allocator, q *queue.Store, r Renderer, opts Options) *Aggregator {
	a := &Aggregator{
		state: State{
			Volume:   clampVolume(opts.Volume),
			Shuffled: opts.Shuffle,
			Repeat:   opts.Repeat,
		},
		alloc:    alloc,
		queue:    q,
		renderer: r,
		subs:     make(map[string]Subscriber),
	}
	alloc.SetPolicy(a)
	alloc.SetAssignFunc(func(paneIndex int, item media.Item) {
		if r != nil {
			r.Load(paneIndex, item)
		}
	})
	return a
}

// Shuffle implements pane.Policy.
func (a *Aggregator) Shuffle() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.Shuffled
}

// Repeat implements pane.Policy.
func (a *Aggregator) Repeat() pane.RepeatMode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.Repeat
}

// State returns the current aggregate state.
func (a *Aggregator) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Play resumes playback on every active pane with content.
func (a *Aggregator) Play() {
	a.setPlaying(true)
}

// Pause pauses playback on every active pane with content.
func (a *Aggregator) Pause() {
	a.setPlaying(false)
}

// TogglePlay flips between playing and paused.
func (a *Aggregator) TogglePlay() {
	a.mu.RLock()
	playing := a.state.IsPlaying
	a.mu.RUnlock()
	a.setPlaying(!playing)
}

func (a *Aggregator) setPlaying(playing bool) {
	a.mu.Lock()
	a.state.IsPlaying = playing
	snapshot := a.state
	a.mu.Unlock()

	a.eachActivePane(func(i int) {
		if a.renderer != nil {
			a.renderer.SetPlaying(i, playing)
		}
		st := a.alloc.Pane(i)
		a.alloc.UpdateTransport(i, st.CurrentTime, st.Duration, playing)
	})
	a.notify(snapshot)
}

// Seek moves every active pane with content to the given position.
func (a *Aggregator) Seek(position float64) {
	if position < 0 {
		position = 0
	}

	a.mu.Lock()
	a.state.CurrentTime = position
	snapshot := a.state
	a.mu.Unlock()

	a.eachActivePane(func(i int) {
		if a.renderer != nil {
			a.renderer.Seek(i, position)
		}
	})
	a.notify(snapshot)
}

// SetVolume sets the volume, clamped to [0, 1].
func (a *Aggregator) SetVolume(v float64) {
	a.mu.Lock()
	a.state.Volume = clampVolume(v)
	snapshot := a.state
	a.mu.Unlock()
	a.notify(snapshot)
}

// ToggleMute flips the mute flag.
func (a *Aggregator) ToggleMute() {
	a.mu.Lock()
	a.state.Muted = !a.state.Muted
	snapshot := a.state
	a.mu.Unlock()
	a.notify(snapshot)
}

// ToggleShuffle flips the shuffle flag. Pane content is not reassigned;
// the new policy applies on the next assignment decision.
func (a *Aggregator) ToggleShuffle() {
	a.mu.Lock()
	a.state.Shuffled = !a.state.Shuffled
	snapshot := a.state
	a.mu.Unlock()
	a.notify(snapshot)
}

// CycleRepeat advances the repeat mode none -> one -> all -> none.
func (a *Aggregator) CycleRepeat() {
	a.mu.Lock()
	a.state.Repeat = a.state.Repeat.Next()
	snapshot := a.state
	a.mu.Unlock()
	a.notify(snapshot)
}

// OnTimeUpdate records a periodic position report from the render
// primitive for the given pane.
func (a *Aggregator) OnTimeUpdate(paneIndex int, currentTime, duration float64, isPlaying bool) {
	a.alloc.UpdateTransport(paneIndex, currentTime, duration, isPlaying)

	a.mu.Lock()
	a.state.CurrentTime = currentTime
	a.state.Duration = duration
	a.state.IsPlaying = isPlaying
	snapshot := a.state
	a.mu.Unlock()

	a.notify(snapshot)
}

// OnEnded handles an end-of-media notification from the render primitive.
func (a *Aggregator) OnEnded(paneIndex int) {
	outcome := a.alloc.OnItemEnded(paneIndex)

	if outcome == pane.EndReplayed && a.renderer != nil {
		a.renderer.Seek(paneIndex, 0)
		a.renderer.SetPlaying(paneIndex, true)
	}

	zlog.Debug().Msgf("transport: item ended: pane=%d outcome=%s", paneIndex, outcome)

	a.mu.RLock()
	snapshot := a.state
	a.mu.RUnlock()
	a.notify(snapshot)
}

// OnError handles a source-load failure. The pane keeps its prior content
// and the item is not marked played; the message is surfaced upward for
// display. Other panes keep advancing independently.
func (a *Aggregator) OnError(paneIndex int, message string) {
	zlog.Warn().Msgf("transport: render error: pane=%d message=%s", paneIndex, message)

	a.mu.RLock()
	errFn := a.errFn
	a.mu.RUnlock()

	if errFn != nil {
		errFn(paneIndex, message)
	}
}

// SetErrorHandler registers the callback receiving render errors.
func (a *Aggregator) SetErrorHandler(fn func(paneIndex int, message string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errFn = fn
}

// Subscribe registers a snapshot subscriber and returns its ID.
func (a *Aggregator) Subscribe(fn Subscriber) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := uuid.New().String()
	a.subs[id] = fn
	return id
}

// Unsubscribe removes a subscriber.
func (a *Aggregator) Unsubscribe(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.subs, id)
}

// Close removes all subscribers.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subs = make(map[string]Subscriber)
}

// notify pushes a snapshot to all subscribers, outside the lock.
func (a *Aggregator) notify(snapshot State) {
	a.mu.RLock()
	subs := make([]Subscriber, 0, len(a.subs))
	for _, fn := range a.subs {
		subs = append(subs, fn)
	}
	a.mu.RUnlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// eachActivePane invokes fn for every active pane that has content, in
// increasing index order.
func (a *Aggregator) eachActivePane(fn func(paneIndex int)) {
	maxActive := a.alloc.Layout().MaxActive()
	for i := 0; i < maxActive; i++ {
		if a.alloc.Pane(i).Current != nil {
			fn(i)
		}
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
