package reactive

import (
	"reflect"
	"sync"
	"sync/atomic"
)

var signalIDs atomic.Uint64

// nextID returns a process-unique identifier for signals and subscriptions.
func nextID() uint64 {
	return signalIDs.Add(1)
}

// subscription is one registered callback.
type subscription[T any] struct {
	id uint64
	fn func(T)
}

// Signal is a reactive value container.
type Signal[T any] struct {
	id uint64

	// mu protects value, subs, notifying and pending.
	mu sync.Mutex

	value T
	subs  []subscription[T]

	// notifying is set while the outermost Set is delivering notifications.
	notifying bool

	// pending holds values set re-entrantly during notification.
	pending []T

	// equal is the equality function used to decide whether Set changes the value.
	// If nil, defaultEquals is used.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		id:    nextID(),
		value: initial,
	}
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.id
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Peek returns the current value. It is identical to Get; signals in this
// package do not track readers.
func (s *Signal[T]) Peek() T {
	return s.Get()
}

// Set updates the value and notifies subscribers if the value changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	if s.equals(s.value, value) {
		s.mu.Unlock()
		return
	}
	s.value = value

	if s.notifying {
		// Re-entrant set: deliver after the current round.
		s.pending = append(s.pending, value)
		s.mu.Unlock()
		return
	}
	s.notifying = true
	s.mu.Unlock()

	s.drain(value)
}

// Update reads the current value, applies fn and sets the result.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// drain notifies subscribers with v, then with every value queued meanwhile.
func (s *Signal[T]) drain(v T) {
	defer func() {
		s.mu.Lock()
		s.notifying = false
		s.pending = nil
		s.mu.Unlock()
	}()

	for {
		s.notify(v)

		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			return
		}
		v = s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
	}
}

// notify calls every subscriber with v using copy-before-notify so callbacks
// run without holding the lock.
func (s *Signal[T]) notify(v T) {
	s.mu.Lock()
	subs := make([]subscription[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		if !s.subscribed(sub.id) {
			// Removed by an earlier subscriber in this round.
			continue
		}
		sub.fn(v)
	}
}

func (s *Signal[T]) subscribed(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		if sub.id == id {
			return true
		}
	}
	return false
}

// Subscribe registers fn and returns a function that removes it.
// Each call creates a distinct subscription. The returned function is
// safe to call more than once.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	id := nextID()
	s.mu.Lock()
	s.subs = append(s.subs, subscription[T]{id: id, fn: fn})
	s.mu.Unlock()

	return func() { s.unsubscribe(id) }
}

// unsubscribe removes the subscription with the given id, keeping order.
func (s *Signal[T]) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Signal[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// WithEquals returns the signal configured with a custom equality function.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
	return s
}

// equals checks if two values are equal using the configured equality function.
// Must be called with mu held.
func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for comparable dynamic types. Maps, slices and
// channels compare by reference, so a fresh value with equal contents
// notifies; funcs are never equal. Other incomparable values fall back to
// reflect.DeepEqual. Pointers compare by identity, so mutating a pointed-to
// value in place never notifies.
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	ta := reflect.TypeOf(av)
	if ta != reflect.TypeOf(bv) {
		return false
	}
	switch ta.Kind() {
	case reflect.Func:
		return false
	case reflect.Map, reflect.Chan:
		return reflect.ValueOf(av).UnsafePointer() == reflect.ValueOf(bv).UnsafePointer()
	case reflect.Slice:
		x, y := reflect.ValueOf(av), reflect.ValueOf(bv)
		return x.UnsafePointer() == y.UnsafePointer() && x.Len() == y.Len()
	}
	if ta.Comparable() {
		switch ta.Kind() {
		case reflect.Interface, reflect.Struct, reflect.Array:
			// May still hold incomparable values at runtime.
			return reflect.DeepEqual(av, bv)
		}
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}
