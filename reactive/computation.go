package reactive

import mapset "github.com/deckarep/golang-set/v2"

// A Computation is a signal whose value is derived from fn. Every signal
// read while fn executes becomes a dependency, and the dependency set is
// rebuilt on each execution.
type Computation[T any] struct {
	Signal[T]

	// Function to potentially re-execute
	fn func() T
	// Nodes read during the most recent execution
	deps mapset.Set[*node]
	// waiting > 0 means that number of our dependencies are stale, so we wait for them
	// waiting == 0 means nothing upstream is mid-propagation
	waiting int
	// Whether at least one upstream pulse in this round said something changed
	fresh bool
}

func NewComputation[T any](rt *Runtime, fn func() T, opts ...SignalOption[T]) *Computation[T] {
	c := &Computation[T]{
		fn:   fn,
		deps: mapset.NewThreadUnsafeSet[*node](),
	}
	var zero T
	c.Signal.init(rt, zero, opts)

	// The first result is stored directly, there is nobody to notify yet
	c.value = c.run()
	return c
}

func (c *Computation[T]) link(n *node) {
	c.deps.Add(n)
}

func (c *Computation[T]) forget(n *node) {
	c.deps.Remove(n)
}

// unlink removes this computation from every node it depends on.
func (c *Computation[T]) unlink() {
	for _, n := range c.deps.ToSlice() {
		n.observers.Remove(c)
	}
	c.deps.Clear()
}

func (c *Computation[T]) run() T {
	c.unlink()
	c.rt.push(c)
	defer c.rt.pop()
	return c.fn()
}

// execute re-runs fn and stores the result, which notifies our own
// subscribers if it changed.
func (c *Computation[T]) execute() {
	if c.disposed {
		return
	}
	c.waiting = 0
	c.fresh = false
	c.write(c.run())
}

// stale is called by upstream nodes while they propagate.
func (c *Computation[T]) stale(change int, fresh bool) {
	// A negative pulse without a pending positive one means we already refreshed
	if c.waiting == 0 && change < 0 {
		return
	}

	// Marking computations depending on us as stale, only when going from 0 to 1
	// We don't know if something will change yet, so the pulse isn't fresh
	if c.waiting == 0 && change > 0 {
		c.notify(1, false)
	}

	c.waiting += change
	if fresh {
		c.fresh = true
	}

	if c.waiting == 0 {
		if c.fresh {
			c.execute()
		}
		// If our value changed, write already sent its own fresh pulses
		c.notify(-1, false)
	}
}

// Update replaces fn and re-executes. Functions can't be compared in Go, so
// the replacement always counts as different.
func (c *Computation[T]) Update(fn func() T) {
	c.fn = fn
	c.execute()
}

// Dependencies reports how many nodes the last execution read.
func (c *Computation[T]) Dependencies() int {
	return c.deps.Cardinality()
}

// Cleanup detaches the computation from everything it depends on and drops
// its own subscribers.
func (c *Computation[T]) Cleanup() {
	c.unlink()
	c.Signal.Cleanup()
}
