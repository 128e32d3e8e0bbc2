// Package reactive provides a small observable state primitive. Frontends
// subscribe to interaction state (hover target, navigation target) instead
// of polling the controller between frames.
package reactive

import "sync"

// debugLog is set by the host if signal tracing is wanted
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function.
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// State holds a value and notifies subscribers when it changes.
type State[T comparable] struct {
	mu    sync.RWMutex
	value T

	subsMu sync.RWMutex
	subs   map[int]func(T)
	nextID int
}

// NewState creates a state with an initial value.
func NewState[T comparable](initial T) *State[T] {
	return &State[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers. Setting the current value
// again is a no-op so cosmetic churn (hover re-entry on the same node) does
// not fan out.
func (s *State[T]) Set(value T) {
	s.mu.Lock()
	if s.value == value {
		s.mu.Unlock()
		return
	}
	s.value = value
	s.mu.Unlock()

	if debugLog != nil {
		debugLog("[State] value changed:", value)
	}
	s.notify(value)
}

// Update atomically reads, modifies, and writes the value.
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	old := s.value
	s.value = fn(old)
	next := s.value
	changed := next != old
	s.mu.Unlock()

	if changed {
		s.notify(next)
	}
}

// Subscribe registers fn to run on every change. Subscribers run
// synchronously on the goroutine that called Set. The returned function
// unsubscribes; calling it more than once is harmless.
func (s *State[T]) Subscribe(fn func(T)) func() {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *State[T]) notify(value T) {
	s.subsMu.RLock()
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.RUnlock()

	// Run subscribers outside the lock so a subscriber may unsubscribe.
	for _, fn := range subs {
		fn(value)
	}
}
