package reactive

// Signal is a mutable cell. Reads inside a Computed or Effect are tracked;
// writes invalidate every dependent.
type Signal[T any] struct {
	node
	value T
	equal func(a, b T) bool
}

// NewSignal creates a signal that ignores writes equal to its current value.
func NewSignal[T comparable](rt *Runtime, initial T) *Signal[T] {
	return NewSignalFunc(rt, initial, func(a, b T) bool { return a == b })
}

// NewSignalFunc creates a signal with a custom equality check.
// A nil equal treats every write as a change.
func NewSignalFunc[T any](rt *Runtime, initial T, equal func(a, b T) bool) *Signal[T] {
	s := &Signal[T]{value: initial, equal: equal}
	s.rt = rt
	s.notify = func() {}
	return s
}

// Get returns the current value and records the read.
func (s *Signal[T]) Get() T {
	s.rt.track(&s.node)
	return s.value
}

// Peek returns the current value without recording the read.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set stores v. Inside a snapshot pass the write is staged until the pass ends.
func (s *Signal[T]) Set(v T) {
	s.rt.write(func() { s.commit(v) })
}

// Update sets the signal to fn applied to its committed value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

func (s *Signal[T]) commit(v T) {
	if s.equal != nil && s.equal(s.value, v) {
		return
	}
	s.value = v
	s.rt.propagate(&s.node)
}
