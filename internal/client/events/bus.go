// Package events is the application-wide publish/subscribe channel.
// The session core publishes on it; the UI layer subscribes.
package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// Kind identifies an event type
type Kind string

const (
	// SessionExpired is published when the session could not be recovered
	// and the user has to authenticate again.
	SessionExpired Kind = "session_expired"

	// LoggedOut is published after a user-initiated logout
	LoggedOut Kind = "logged_out"
)

// Event is one notification on the bus
type Event struct {
	Kind   Kind
	Reason string
	At     time.Time
}

// Bus fans events out to subscribers without blocking the publisher.
// A subscriber whose buffer is full loses the event; the loss is counted.
type Bus struct {
	subs    map[uint64]chan Event
	nextID  uint64
	dropped atomic.Uint64
	mu      sync.RWMutex
	closed  bool
}

// NewBus создает пустую шину событий
func NewBus() *Bus {
	return &Bus{
		subs: make(map[uint64]chan Event),
	}
}

// Publish delivers the event to every current subscriber
func (b *Bus) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Subscribe registers a subscriber with the given buffer size.
// The returned function unsubscribes and closes the channel; it is safe to call twice.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Dropped returns how many deliveries were lost to full buffers
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
