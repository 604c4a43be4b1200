// Package queue provides the ordered media queue with played tracking.
package queue

import (
	"math/rand"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/panebox/panebox/internal/domain/media"
)

// Store holds the ordered collection of media items and their played state.
// None of its operations fail; an empty queue is represented by nil returns.
type Store struct {
	mu    sync.RWMutex
	items []media.Item
	rng   *rand.Rand
}

// NewStore creates a new queue store.
func NewStore() *Store {
	return NewSeededStore(time.Now().UnixNano())
}

// NewSeededStore creates a queue store with a deterministic shuffle source.
func NewSeededStore(seed int64) *Store {
	return &Store{
		items: make([]media.Item, 0),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// AddItems creates items from the given specs, appends them to the queue
// in order, and returns the created items.
func (s *Store) AddItems(specs []media.Spec) []media.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]media.Item, 0, len(specs))
	for _, spec := range specs {
		item := media.NewItem(spec)
		s.items = append(s.items, item)
		created = append(created, item)
		zlog.Debug().Msgf("queue: added item: id=%s type=%s source=%s", item.ID, item.Type, item.Source)
	}
	return created
}

// MarkPlayed marks the item with the given ID as played.
// Idempotent; unknown IDs are a no-op.
func (s *Store) MarkPlayed(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Played = true
			return
		}
	}
}

// ResetPlayed clears the played flag on every item.
// Used when repeat-all exhausts the queue.
func (s *Store) ResetPlayed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		s.items[i].Played = false
	}
}

// NextUnplayed returns the next unplayed item, skipping the given IDs.
// With shuffle, the pick is uniformly random over the remaining candidates;
// otherwise it is the first in insertion order. Returns nil if none remain.
func (s *Store) NextUnplayed(shuffle bool, exclude map[string]struct{}) *media.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]int, 0, len(s.items))
	for i := range s.items {
		if s.items[i].Played {
			continue
		}
		if _, ok := exclude[s.items[i].ID]; ok {
			continue
		}
		candidates = append(candidates, i)
	}

	if len(candidates) == 0 {
		return nil
	}

	idx := candidates[0]
	if shuffle {
		idx = candidates[s.rng.Intn(len(candidates))]
	}

	item := s.items[idx]
	return &item
}

// Exhausted returns true if every item in the queue has been played.
// An empty queue counts as exhausted.
func (s *Store) Exhausted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if !s.items[i].Played {
			return false
		}
	}
	return true
}

// HasImages returns true if the queue contains at least one image item.
func (s *Store) HasImages() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].Type == media.TypeImage {
			return true
		}
	}
	return false
}

// Items returns a copy of all items in queue order.
func (s *Store) Items() []media.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]media.Item, len(s.items))
	copy(result, s.items)
	return result
}

// Len returns the number of items in the queue.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
