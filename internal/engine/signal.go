package engine

import "sync"

// Signal is a boolean condition source the lifecycle controller watches:
// element visibility and the reduced-motion preference. Subscribe returns
// an unsubscribe func; the controller registers once and unregisters
// exactly once on disposal.
type Signal interface {
	Current() bool
	Subscribe(fn func(bool)) (unsubscribe func())
}

// WatchSignal is a push-driven Signal fed by Set. Safe for concurrent use;
// subscribers are notified only on actual value changes.
type WatchSignal struct {
	mu     sync.Mutex
	value  bool
	nextID int
	subs   map[int]func(bool)
}

// NewWatchSignal creates a signal with an initial value.
func NewWatchSignal(initial bool) *WatchSignal {
	return &WatchSignal{value: initial, subs: make(map[int]func(bool))}
}

// Current returns the signal's current value.
func (s *WatchSignal) Current() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set updates the value, notifying subscribers when it changed.
// Callbacks run outside the signal lock.
func (s *WatchSignal) Set(v bool) {
	s.mu.Lock()
	if s.value == v {
		s.mu.Unlock()
		return
	}
	s.value = v
	fns := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Toggle flips the value, notifying subscribers, and returns the new value.
func (s *WatchSignal) Toggle() bool {
	v := !s.Current()
	s.Set(v)
	return v
}

// Subscribe registers fn for change notifications. The returned
// unsubscribe func is safe to call more than once.
func (s *WatchSignal) Subscribe(fn func(bool)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// StaticSignal is a Signal fixed at mount time. Used for the lighter
// variants where the reduced-motion preference is checked once and never
// observed reactively.
type StaticSignal bool

// Current returns the fixed value.
func (s StaticSignal) Current() bool { return bool(s) }

// Subscribe never notifies; the unsubscribe func is a no-op.
func (s StaticSignal) Subscribe(func(bool)) func() {
	return func() {}
}
