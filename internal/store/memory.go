package store

import (
	"sync"

	"github.com/jpalmerr/productboard/view"
)

const subscriberBuffer = 16

// MemoryStore is an in-memory implementation of [Store].
//
// MemoryStore holds a single [view.State] snapshot. States are immutable
// values, so readers receive them without copying.
//
// Subscribers receive updates via buffered channels. Updates are sent
// non-blocking; if a subscriber's buffer is full, the update is dropped for
// that subscriber. Since every message is a complete state, a dropped
// update is superseded by the next one.
type MemoryStore struct {
	mu          sync.RWMutex
	state       view.State
	subscribers map[chan view.State]struct{}
	subMu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory [Store] holding initial.
func NewMemoryStore(initial view.State) *MemoryStore {
	return &MemoryStore{
		state:       initial,
		subscribers: make(map[chan view.State]struct{}),
	}
}

// Update stores state and notifies all subscribers.
func (m *MemoryStore) Update(state view.State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()

	m.notifySubscribers(state)
}

// Get returns the current state.
func (m *MemoryStore) Get() view.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe creates a new subscription and returns a channel for receiving updates.
//
// Caller must call [MemoryStore.Unsubscribe] when done to prevent resource leaks.
func (m *MemoryStore) Subscribe() <-chan view.State {
	ch := make(chan view.State, subscriberBuffer)

	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
//
// Safe to call multiple times or with an unknown channel.
func (m *MemoryStore) Unsubscribe(ch <-chan view.State) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notifySubscribers sends state to all active subscribers without blocking.
func (m *MemoryStore) notifySubscribers(state view.State) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- state:
		default:
			// subscriber is slow, drop the message
		}
	}
}
