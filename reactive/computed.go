package reactive

import "fmt"

// Computed is a derived cell. It is evaluated on first read and memoized
// until one of the cells it read is written.
type Computed[T any] struct {
	node
	fn        func() T
	value     T
	stale     bool
	computing bool
}

// NewComputed creates a derived cell. fn is not called until Get.
func NewComputed[T any](rt *Runtime, fn func() T) *Computed[T] {
	c := &Computed[T]{fn: fn, stale: true}
	c.rt = rt
	c.notify = c.invalidate
	return c
}

// Get returns the memoized value, recomputing it if a source changed.
func (c *Computed[T]) Get() T {
	c.rt.track(&c.node)
	if c.stale {
		c.recompute()
	}
	return c.value
}

func (c *Computed[T]) invalidate() {
	if c.stale {
		return
	}
	c.stale = true
	c.rt.propagate(&c.node)
}

func (c *Computed[T]) recompute() {
	if c.computing {
		panic(fmt.Sprintf("reactive: computed %p depends on itself", c))
	}
	c.computing = true
	defer func() { c.computing = false }()

	c.unlinkAll()
	var v T
	c.rt.withObserver(&c.node, func() { v = c.fn() })
	c.value = v
	c.stale = false
}
