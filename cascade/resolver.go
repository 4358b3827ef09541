package cascade

import (
	"math"
)

// getter is anything holding a value behind a tracked read, such as a
// *reactive.Signal[any] stored as a variable value.
type getter interface {
	Get() any
}

// resolver evaluates runtime-value expressions for one flatten pass.
type resolver struct {
	ctx  *Context
	env  *Environment
	opts *Options
	out  Style
	meta *Metadata

	// Variables declared by the fragments of this pass, raw, first
	// fragment in cascade order wins
	declared map[string]any
	resolved map[string]Value
	// Variables of the fragment whose properties are being resolved
	local         map[string]any
	localResolved map[string]Value
	// Variables currently being resolved, to break cycles
	resolving map[string]bool

	// Property currently being resolved
	property string
}

func newResolver(ctx *Context, opts *Options, out Style, meta *Metadata) *resolver {
	return &resolver{
		ctx:       ctx,
		env:       ctx.env,
		opts:      opts,
		out:       out,
		meta:      meta,
		declared:  map[string]any{},
		resolved:  map[string]Value{},
		resolving: map[string]bool{},
	}
}

// resolve turns a declared value into a static or lazy Value. ok is false
// when the value is undefined and the declaration must be left out.
func (r *resolver) resolve(v any) (Value, bool) {
	switch v := v.(type) {
	case nil:
		return Value{}, false
	case Value:
		return v, true
	case *Expression:
		if v == nil {
			return Value{}, false
		}
		return r.call(v)
	case Group:
		return r.group(v)
	case TransformList:
		return r.transform(v)
	case getter:
		return r.resolve(v.Get())
	}
	return Static(v), true
}

func (r *resolver) group(g Group) (Value, bool) {
	sub := Style{}
	for _, d := range g {
		if v, ok := r.resolve(d.Value); ok {
			sub[d.Property] = v
		}
	}
	if len(sub) == 0 {
		return Value{}, false
	}
	return Static(sub), true
}

func (r *resolver) transform(list TransformList) (Value, bool) {
	ops := make([]Style, 0, len(list))
	for _, d := range list {
		if v, ok := r.resolve(d.Value); ok {
			ops = append(ops, Style{d.Property: v})
		}
	}
	if len(ops) == 0 {
		return Value{}, false
	}
	return Static(ops), true
}

func (r *resolver) call(e *Expression) (Value, bool) {
	switch e.Name {
	case "var":
		return r.variable(e.Args)
	case "vw":
		return r.scaled(e.Args, func() float64 {
			return r.env.Width.Get() / 100
		})
	case "vh":
		return r.scaled(e.Args, func() float64 {
			return r.env.Height.Get() / 100
		})
	case "vmin":
		return r.scaled(e.Args, func() float64 {
			return math.Min(r.env.Width.Get(), r.env.Height.Get()) / 100
		})
	case "vmax":
		return r.scaled(e.Args, func() float64 {
			return math.Max(r.env.Width.Get(), r.env.Height.Get()) / 100
		})
	case "rem":
		return r.scaled(e.Args, func() float64 {
			return r.env.Rem.Get()
		})
	case "em":
		return r.em(e.Args)
	case "cw":
		return r.elementRelative(e.Args, r.opts.Width, r.ctx.Interaction.LayoutWidth.Get)
	case "ch":
		return r.elementRelative(e.Args, r.opts.Height, r.ctx.Interaction.LayoutHeight.Get)
	}
	if fn, ok := functions[e.Name]; ok {
		return fn(r, e)
	}
	return r.apply(e.Args, func(vals []any) (any, bool) {
		return coerce(callString(e.Name, vals)), true
	})
}

// apply resolves every argument, then computes fn over their values. If
// any argument is lazy the result is a lazy value closing over them.
func (r *resolver) apply(args []any, fn func(vals []any) (any, bool)) (Value, bool) {
	resolved := make([]Value, len(args))
	dynamic := false
	for i, a := range args {
		v, ok := r.resolve(a)
		if !ok {
			return Value{}, false
		}
		resolved[i] = v
		dynamic = dynamic || v.IsLazy()
	}

	if dynamic {
		return Lazy(func() any {
			vals := make([]any, len(resolved))
			for i, v := range resolved {
				if vals[i] = v.Get(); vals[i] == nil {
					return nil
				}
			}
			out, ok := fn(vals)
			if !ok {
				return nil
			}
			return out
		}), true
	}

	vals := make([]any, len(resolved))
	for i, v := range resolved {
		vals[i] = v.static
	}
	out, ok := fn(vals)
	if !ok || out == nil {
		return Value{}, false
	}
	return Static(out), true
}

// scaled multiplies its single numeric argument by an ambient unit.
func (r *resolver) scaled(args []any, unit func() float64) (Value, bool) {
	if len(args) != 1 {
		return Value{}, false
	}
	return r.apply(args, func(vals []any) (any, bool) {
		n, ok := toNumber(vals[0])
		if !ok {
			return nil, false
		}
		return n * unit(), true
	})
}

func (r *resolver) baseFontSize() float64 {
	if r.opts.FontSize > 0 {
		return r.opts.FontSize
	}
	return r.env.Rem.Get()
}

// em is relative to the fontSize of the same output, which may only be
// written later in the pass, so it is always lazy. A fontSize declared in
// em is relative to the base font size instead.
func (r *resolver) em(args []any) (Value, bool) {
	if len(args) != 1 {
		return Value{}, false
	}
	if r.property == "fontSize" {
		return r.scaled(args, r.baseFontSize)
	}

	ratio, ok := r.resolve(args[0])
	if !ok {
		return Value{}, false
	}
	out, opts, env := r.out, r.opts, r.env
	return Lazy(func() any {
		n, ok := toNumber(ratio.Get())
		if !ok {
			return nil
		}
		if fs, ok := out["fontSize"]; ok {
			if size, ok := toNumber(fs.Get()); ok {
				return n * size
			}
		}
		if opts.FontSize > 0 {
			return n * opts.FontSize
		}
		return n * env.Rem.Get()
	}), true
}

// elementRelative resolves cw/ch: eagerly against a static reference
// dimension, otherwise lazily against the element's measured layout.
func (r *resolver) elementRelative(args []any, static float64, measured func() float64) (Value, bool) {
	if len(args) != 1 {
		return Value{}, false
	}
	if static > 0 {
		return r.scaled(args, func() float64 {
			return static / 100
		})
	}

	r.meta.RequiresLayout = true
	ratio, ok := r.resolve(args[0])
	if !ok {
		return Value{}, false
	}
	return Lazy(func() any {
		n, ok := toNumber(ratio.Get())
		if !ok {
			return nil
		}
		return n * measured() / 100
	}), true
}

// variable resolves var(name) or var(name, fallback).
func (r *resolver) variable(args []any) (Value, bool) {
	if len(args) == 0 || len(args) > 2 {
		return Value{}, false
	}
	name, ok := args[0].(string)
	if !ok || name == "" {
		return Value{}, false
	}
	if v, ok := r.lookup(name); ok {
		return v, true
	}
	if len(args) == 2 {
		return r.resolve(args[1])
	}
	return Value{}, false
}

// enter scopes variable lookups to the variables of one fragment, nil
// leaves only the pass-wide ones.
func (r *resolver) enter(vars map[string]any) {
	r.local = vars
	r.localResolved = nil
	if len(vars) > 0 {
		r.localResolved = map[string]Value{}
	}
}

// lookup finds a variable among the ones declared by the fragment being
// resolved, then the ones declared this pass, then through the context
// chain.
func (r *resolver) lookup(name string) (Value, bool) {
	if r.resolving[name] {
		return Value{}, false
	}

	if raw, ok := r.local[name]; ok {
		if v, ok := r.localResolved[name]; ok {
			return v, true
		}
		v, ok := r.resolveVariable(name, raw)
		if ok {
			r.localResolved[name] = v
		}
		return v, ok
	}

	if v, ok := r.resolved[name]; ok {
		return v, true
	}
	if raw, ok := r.declared[name]; ok {
		// Pass-wide variables don't see the variables of whichever
		// fragment happens to reference them.
		local, localResolved := r.local, r.localResolved
		r.local, r.localResolved = nil, nil
		v, ok := r.resolveVariable(name, raw)
		r.local, r.localResolved = local, localResolved
		if ok {
			r.resolved[name] = v
		}
		return v, ok
	}

	raw, ok := r.ctx.Variable(name)
	if !ok {
		return Value{}, false
	}
	return r.resolveVariable(name, raw)
}

// resolveVariable resolves the raw value of name, which is undefined while
// name is already being resolved.
func (r *resolver) resolveVariable(name string, raw any) (Value, bool) {
	r.resolving[name] = true
	defer delete(r.resolving, name)
	return r.resolve(raw)
}
