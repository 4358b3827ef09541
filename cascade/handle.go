package cascade

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/stylesignal/reactive"
)

// Handle caches the flattened style of one component inside a Computation.
// The result is re-derived when a signal it read changes, or when the
// dependency list passed to Use changes.
type Handle struct {
	ctx  *Context
	opts Options

	comp    *reactive.Computation[*Flattened]
	sources []Source
	key     uint64
	passes  int
}

func NewHandle(ctx *Context, opts Options) (*Handle, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: nil context", ErrInvalidConfig)
	}
	return &Handle{ctx: ctx, opts: opts}, nil
}

// dependencyKey hashes a dependency list by type and printed value, so
// pointers compare by identity.
func dependencyKey(deps []any) uint64 {
	d := xxhash.New()
	for _, dep := range deps {
		fmt.Fprintf(d, "%T:%v\x00", dep, dep)
	}
	return d.Sum64()
}

func (h *Handle) flatten() *Flattened {
	h.passes++
	return Flatten(h.ctx, h.opts, h.sources...)
}

// Use returns the flattened style of sources. sources are only taken into
// account on the first call and whenever deps differ from the previous call.
func (h *Handle) Use(sources []Source, deps ...any) *Flattened {
	key := dependencyKey(deps)
	switch {
	case h.comp == nil:
		h.sources, h.key = sources, key
		h.comp = reactive.NewComputation(h.ctx.Runtime(), h.flatten)
	case key != h.key:
		h.sources, h.key = sources, key
		h.comp.Update(h.flatten)
	}
	return h.comp.Get()
}

// Current returns the last result without tracking it, nil before Use.
func (h *Handle) Current() *Flattened {
	if h.comp == nil {
		return nil
	}
	return h.comp.Peek()
}

// Subscribe calls fn after every re-derivation. It has no effect before the
// first Use.
func (h *Handle) Subscribe(fn func(*Flattened)) (unsubscribe func()) {
	if h.comp == nil {
		return func() {}
	}
	return h.comp.Subscribe(fn)
}

// Passes counts the flatten passes run so far.
func (h *Handle) Passes() int {
	return h.passes
}

func (h *Handle) Cleanup() {
	if h.comp != nil {
		h.comp.Cleanup()
	}
}
