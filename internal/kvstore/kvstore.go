// Package kvstore provides the durable key-value storage used for cart,
// add-on, shipping, and offer session state. The storefront engine is
// written against the Store interface so it can run on an in-memory
// store in tests and a MongoDB-backed store in production.
package kvstore

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("kvstore: store closed")

// Change describes a single key mutation. Subscribers receive one Change
// per Set or Delete; DeletePrefix emits one Change per deleted key.
type Change struct {
	Key     string
	Deleted bool
}

// Store is the persistence contract for session state.
//
// Values are opaque byte slices; callers are expected to encode their
// own payloads (the services use JSON). Subscribe registers a change
// listener and returns the channel together with an unsubscribe
// function. Delivery is best-effort: a subscriber that falls behind
// its buffer misses changes rather than blocking writers.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
	Subscribe(buffer int) (<-chan Change, func())
	Close() error
}

// broadcaster fans Change events out to registered subscribers.
// It is embedded by both store implementations.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Change
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]chan Change)}
}

func (b *broadcaster) subscribe(buffer int) (<-chan Change, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Change, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		if existing, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(existing)
		}
		b.mu.Unlock()
	}
	return ch, unsubscribe
}

// publish delivers a change to every subscriber without blocking.
func (b *broadcaster) publish(c Change) {
	b.mu.Lock()
	for _, ch := range b.subs {
		select {
		case ch <- c:
		default:
		}
	}
	b.mu.Unlock()
}

func (b *broadcaster) closeAll() {
	b.mu.Lock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	b.mu.Unlock()
}

// MemoryStore is an in-memory Store implementation. It is the default
// when MongoDB is disabled and the fake used throughout the unit tests.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
	*broadcaster
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:        make(map[string][]byte),
		broadcaster: newBroadcaster(),
	}
}

// Get returns the value stored under key, or false when absent.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate stored state.
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set stores value under key and notifies subscribers.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	s.mu.Unlock()

	s.publish(Change{Key: key})
	return nil
}

// Delete removes key. Deleting an absent key is not an error, but only
// an actual removal is broadcast.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	_, existed := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()

	if existed {
		s.publish(Change{Key: key, Deleted: true})
	}
	return nil
}

// DeletePrefix removes every key starting with prefix.
func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	var removed []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			removed = append(removed, k)
			delete(s.data, k)
		}
	}
	s.mu.Unlock()

	for _, k := range removed {
		s.publish(Change{Key: k, Deleted: true})
	}
	return nil
}

// Subscribe registers a change listener.
func (s *MemoryStore) Subscribe(buffer int) (<-chan Change, func()) {
	return s.subscribe(buffer)
}

// Close marks the store closed and closes all subscriber channels.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.closeAll()
	return nil
}

// Len reports the number of stored keys. Used by tests and readiness checks.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
