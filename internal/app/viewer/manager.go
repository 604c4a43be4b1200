// Package viewer wires the playback core: queue, panes, tabs, slideshow,
// and transport.
package viewer

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/panebox/panebox/internal/app/intake"
	"github.com/panebox/panebox/internal/app/pane"
	"github.com/panebox/panebox/internal/app/queue"
	"github.com/panebox/panebox/internal/app/slideshow"
	"github.com/panebox/panebox/internal/app/tabs"
	"github.com/panebox/panebox/internal/app/transport"
	"github.com/panebox/panebox/internal/domain/media"
)

// Options holds the initial settings for a manager.
type Options struct {
	Layout    pane.Layout
	Volume    float64
	Shuffle   bool
	Repeat    pane.RepeatMode
	Slideshow slideshow.Settings
	Renderer  transport.Renderer
}

// Manager owns the playback core components and routes media intake.
type Manager struct {
	queue     *queue.Store
	alloc     *pane.Allocator
	tabs      *tabs.Registry
	drag      *tabs.Drag
	slideshow *slideshow.Timer
	transport *transport.Aggregator
	intake    *intake.Chain
}

// NewManager constructs and wires the playback core.
func NewManager(opts Options) *Manager {
	q := queue.NewStore()
	alloc := pane.NewAllocator(q, opts.Layout)
	agg := transport.New(alloc, q, opts.Renderer, transport.Options{
		Volume:  opts.Volume,
		Shuffle: opts.Shuffle,
		Repeat:  opts.Repeat,
	})
	registry := tabs.NewRegistry(alloc)

	return &Manager{
		queue:     q,
		alloc:     alloc,
		tabs:      registry,
		drag:      tabs.NewDrag(registry),
		slideshow: slideshow.NewTimer(alloc, q, opts.Slideshow),
		transport: agg,
		intake:    intake.NewChain(),
	}
}

// Open runs the given specs through the intake chain, queues the accepted
// ones, and creates a tab for each. Returns the created items.
func (m *Manager) Open(specs []media.Spec) []media.Item {
	existing := m.queue.Items()

	accepted := make([]media.Spec, 0, len(specs))
	for _, spec := range specs {
		result := m.intake.Execute(spec, existing)
		if !result.Accepted {
			zlog.Info().Msgf("viewer: media rejected: code=%s source=%s", result.Code, spec.Source)
			continue
		}
		accepted = append(accepted, spec)
		// Include accepted specs in the comparison set so a batch with
		// internal duplicates is also de-duplicated.
		existing = append(existing, media.Item{Source: spec.Source})
	}

	created := m.queue.AddItems(accepted)
	for i := range created {
		m.tabs.Create(&created[i])
	}

	// New content may satisfy the slideshow arming condition.
	m.slideshow.Refresh()

	return created
}

// Start fills the active panes with initial content and arms the
// slideshow if configured.
func (m *Manager) Start() {
	for i := 0; i < m.alloc.Layout().MaxActive(); i++ {
		m.alloc.AssignNext(i)
	}
	m.slideshow.Refresh()
}

// SetLayout changes the pane layout. Pane content is retained.
func (m *Manager) SetLayout(l pane.Layout) {
	m.alloc.SetLayout(l)
}

// Queue returns the queue store.
func (m *Manager) Queue() *queue.Store { return m.queue }

// Panes returns the pane allocator.
func (m *Manager) Panes() *pane.Allocator { return m.alloc }

// Tabs returns the tab registry.
func (m *Manager) Tabs() *tabs.Registry { return m.tabs }

// Drag returns the drag state machine.
func (m *Manager) Drag() *tabs.Drag { return m.drag }

// Slideshow returns the slideshow timer.
func (m *Manager) Slideshow() *slideshow.Timer { return m.slideshow }

// Transport returns the playback state aggregator.
func (m *Manager) Transport() *transport.Aggregator { return m.transport }

// Close tears down the core: the slideshow's pending wake-up is cancelled
// and subscribers are released.
func (m *Manager) Close() {
	m.slideshow.Stop()
	m.transport.Close()
}
