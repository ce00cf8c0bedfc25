package app

import (
	"sync"
	"time"
)

// Shared guards a State with a single mutex. Callers must not block on I/O
// inside With or Update.
type Shared struct {
	mu      sync.Mutex
	state   *State
	observe func(held time.Duration)

	subsMu    sync.Mutex
	nextSubID int
	subs      map[int]chan struct{}
}

// SharedOption configures a Shared.
type SharedOption func(*Shared)

// WithHoldObserver reports how long each critical section held the lock.
func WithHoldObserver(fn func(held time.Duration)) SharedOption {
	return func(s *Shared) { s.observe = fn }
}

// NewShared wraps st.
func NewShared(st *State, opts ...SharedOption) *Shared {
	s := &Shared{state: st, subs: make(map[int]chan struct{})}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// With runs fn with exclusive access to the state.
func (s *Shared) With(fn func(*State)) {
	s.mu.Lock()
	start := time.Now()
	fn(s.state)
	held := time.Since(start)
	s.mu.Unlock()

	if s.observe != nil {
		s.observe(held)
	}
}

// Update is With followed by a change notification to subscribers.
func (s *Shared) Update(fn func(*State)) {
	s.With(fn)
	s.notify()
}

// Subscribe returns a channel that receives a value after state updates.
// Notifications coalesce: a subscriber that has not drained the channel
// sees a single pending signal.
func (s *Shared) Subscribe() (int, <-chan struct{}) {
	ch := make(chan struct{}, 1)
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = ch
	return id, ch
}

// Unsubscribe removes and closes a subscription.
func (s *Shared) Unsubscribe(id int) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if ch, ok := s.subs[id]; ok {
		close(ch)
		delete(s.subs, id)
	}
}

func (s *Shared) notify() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
