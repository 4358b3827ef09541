package reactive

import (
	"reflect"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// An Observer is something that can have signals as dependencies. Only
// computations implement it.
type Observer interface {
	stale(change int, fresh bool)
	link(n *node)
	forget(n *node)
}

// node is the untyped part of a signal: its identity and the computations
// subscribed to it.
type node struct {
	rt *Runtime

	// It's a set because a computation reading a signal twice must still be refreshed only once
	observers mapset.Set[Observer]
}

func (n *node) track() {
	if o := n.rt.current(); o != nil {
		n.observers.Add(o)
		o.link(n)
	}
}

// Propagating change of the "stale" status to every observer of this node
// +1 means a node you depend on is stale, wait for it
// -1 means a node you depend on just became non-stale, maybe you can update yourself now
// fresh tells observers whether something actually changed
func (n *node) notify(change int, fresh bool) {
	for _, o := range n.observers.ToSlice() {
		o.stale(change, fresh)
	}
}

type listener[T any] struct {
	fn     func(T)
	active bool
}

// Signal is a single mutable reactive value.
type Signal[T any] struct {
	node

	value     T
	equals    func(a, b T) bool
	listeners []*listener[T]
	disposed  bool
}

type SignalOption[T any] func(*Signal[T])

// WithEquals replaces the equality used to decide whether a write changes
// the value.
func WithEquals[T any](equals func(a, b T) bool) SignalOption[T] {
	return func(s *Signal[T]) {
		s.equals = equals
	}
}

func NewSignal[T any](rt *Runtime, value T, opts ...SignalOption[T]) *Signal[T] {
	s := &Signal[T]{}
	s.init(rt, value, opts)
	return s
}

func (s *Signal[T]) init(rt *Runtime, value T, opts []SignalOption[T]) {
	s.rt = rt
	s.observers = mapset.NewThreadUnsafeSet[Observer]()
	s.value = value
	s.equals = Same[T]
	for _, opt := range opts {
		opt(s)
	}
}

// Get returns the current value and, when called while a computation is
// executing, subscribes that computation to the signal.
func (s *Signal[T]) Get() T {
	if !s.disposed {
		s.track()
	}
	return s.value
}

// Peek returns the current value without tracking.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set stores v and notifies subscribers unless v equals the current value.
func (s *Signal[T]) Set(v T) {
	if s.disposed {
		return
	}
	if s.rt.batch != nil {
		s.rt.hold(&s.node, func() {
			s.write(v)
		})
		return
	}
	s.write(v)
}

func (s *Signal[T]) write(v T) {
	if s.disposed || s.equals(s.value, v) {
		return
	}
	s.value = v

	s.rt.depth++
	// First of all the observers and their observers and so on are marked as stale,
	// then they are marked as non-stale. Both pulses say something actually changed.
	s.notify(1, true)
	s.notify(-1, true)
	for _, l := range s.listeners {
		l := l
		s.rt.enqueue(func() {
			if l.active {
				l.fn(v)
			}
		})
	}
	s.rt.depth--
	s.rt.settle()
}

// Subscribe registers a plain callback invoked with every new value once
// the write that produced it has finished propagating. By default delivery
// is synchronous, right before the outermost Set or Batch returns. A
// runtime created WithScheduler defers it to the scheduler instead.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	l := &listener[T]{fn: fn, active: true}
	s.listeners = append(s.listeners, l)
	return func() {
		l.active = false
		s.listeners = slices.DeleteFunc(s.listeners, func(x *listener[T]) bool {
			return x == l
		})
	}
}

// Unsubscribe detaches a computation from this signal.
func (s *Signal[T]) Unsubscribe(o Observer) {
	s.observers.Remove(o)
	o.forget(&s.node)
}

// Subscribers reports how many computations and callbacks are attached.
func (s *Signal[T]) Subscribers() int {
	return s.observers.Cardinality() + len(s.listeners)
}

// Cleanup drops every subscriber without notifying them. The signal must
// not be used afterwards; reads return the last value untracked and writes
// are ignored.
func (s *Signal[T]) Cleanup() {
	for _, l := range s.listeners {
		l.active = false
	}
	s.listeners = nil
	s.observers.Clear()
	s.disposed = true
}

// Same is the default equality: values of comparable dynamic type are
// compared with ==, anything else (maps, slices, funcs) always counts as a
// change.
func Same[T any](a, b T) bool {
	va, vb := any(a), any(b)
	if va == nil || vb == nil {
		return va == nil && vb == nil
	}
	if !reflect.ValueOf(va).Comparable() || !reflect.ValueOf(vb).Comparable() {
		return false
	}
	return va == vb
}
