package reactive

import "fmt"

type ErrorFunc func(err error)

// Runtime owns the tracking stack, the pending batch and the queue of
// deferred listener notifications. Everything that shares a Runtime must be
// driven from a single goroutine.
type Runtime struct {
	// Stack of observers currently executing, a nil entry means reads are untracked
	frames []Observer

	// Pending values while batching, keyed by the node being written
	batch      map[*node]func()
	batchOrder []*node

	// Number of writes currently propagating, listeners are only delivered once it drops to zero
	depth     int
	queue     []func()
	flushing  bool
	scheduled bool

	schedule func(flush func())
	onError  ErrorFunc
}

type Option func(*Runtime)

// WithScheduler hands delivery of plain-callback listeners to schedule
// instead of draining them when the outermost write returns. schedule is
// called at most once per pending flush.
func WithScheduler(schedule func(flush func())) Option {
	return func(r *Runtime) {
		r.schedule = schedule
	}
}

// WithErrorHandler receives panics recovered from listeners. Without a
// handler the panic is re-raised.
func WithErrorHandler(fn ErrorFunc) Option {
	return func(r *Runtime) {
		r.onError = fn
	}
}

func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runtime) current() Observer {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

func (r *Runtime) push(o Observer) {
	r.frames = append(r.frames, o)
}

func (r *Runtime) pop() {
	r.frames = r.frames[:len(r.frames)-1]
}

// Untrack runs fn without registering any read as a dependency of the
// computation currently executing.
func Untrack[T any](r *Runtime, fn func() T) T {
	r.push(nil)
	defer r.pop()
	return fn()
}

// Batch holds onto writes until fn returns so that computations depending on
// several of the written signals execute once. Reads inside fn still see the
// old values.
func (r *Runtime) Batch(fn func()) {
	// Already batching? Nothing else to do then
	if r.batch != nil {
		fn()
		return
	}

	r.batch = map[*node]func(){}
	defer func() {
		pending, order := r.batch, r.batchOrder
		r.batch, r.batchOrder = nil, nil

		r.depth++
		// Mark everything stale at once, we don't know yet if anything will change
		for _, n := range order {
			n.notify(1, false)
		}
		for _, n := range order {
			pending[n]()
		}
		for _, n := range order {
			n.notify(-1, false)
		}
		r.depth--
		r.settle()
	}()

	fn()
}

func (r *Runtime) hold(n *node, apply func()) {
	if _, ok := r.batch[n]; !ok {
		r.batchOrder = append(r.batchOrder, n)
	}
	r.batch[n] = apply
}

func (r *Runtime) enqueue(fn func()) {
	r.queue = append(r.queue, fn)
}

// settle delivers queued listeners once no write is propagating anymore.
func (r *Runtime) settle() {
	if r.depth > 0 || r.batch != nil || len(r.queue) == 0 {
		return
	}
	if r.schedule != nil {
		if !r.scheduled {
			r.scheduled = true
			r.schedule(r.Flush)
		}
		return
	}
	r.Flush()
}

// Flush delivers every queued listener notification, including the ones
// queued by listeners while flushing.
func (r *Runtime) Flush() {
	r.scheduled = false
	if r.flushing {
		return
	}
	r.flushing = true
	defer func() {
		r.flushing = false
	}()

	for len(r.queue) > 0 {
		queue := r.queue
		r.queue = nil
		for _, fn := range queue {
			r.deliver(fn)
		}
	}
}

// Pending reports how many listener notifications wait for delivery.
func (r *Runtime) Pending() int {
	return len(r.queue)
}

func (r *Runtime) deliver(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.onError == nil {
				panic(rec)
			}
			r.onError(fmt.Errorf("listener panicked: %v", rec))
		}
	}()
	fn()
}
