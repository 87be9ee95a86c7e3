package session

import "sync"

// watchers holds replay-latest subscribers. Each channel has a buffer of one
// that always carries the newest snapshot not yet received.
type watchers struct {
	subs   map[uint64]chan Session
	nextID uint64
	mu     sync.Mutex
}

// Subscribe returns a hot, replay-latest stream of session snapshots.
// The current value is available immediately; intermediate values may be
// skipped by a slow reader but the newest one is never lost.
// Call the returned function to unsubscribe; it closes the channel.
func (s *Store) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)

	s.watchers.mu.Lock()
	id := s.watchers.nextID
	s.watchers.nextID++
	s.watchers.subs[id] = ch
	ch <- s.Snapshot()
	s.watchers.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.watchers.mu.Lock()
			defer s.watchers.mu.Unlock()
			delete(s.watchers.subs, id)
			close(ch)
		})
	}
}

// notify sends the current snapshot to every subscriber, replacing an unread
// older value. The snapshot is loaded under the mutex, so the last delivered
// value is always the newest.
func (s *Store) notify() {
	s.watchers.mu.Lock()
	defer s.watchers.mu.Unlock()

	snap := s.Snapshot()
	for _, ch := range s.watchers.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
