package cascade

// Value is a resolved property value: either static, or lazy and evaluated
// again on every read.
type Value struct {
	static any
	lazy   func() any
}

func Static(v any) Value {
	return Value{static: v}
}

func Lazy(fn func() any) Value {
	return Value{lazy: fn}
}

func (v Value) IsLazy() bool {
	return v.lazy != nil
}

// Get forces the value. A lazy value returning nil is undefined.
func (v Value) Get() any {
	if v.lazy != nil {
		return v.lazy()
	}
	return v.static
}

// sameValue lets variable signals skip writes of identical static values.
// Lazy values never compare equal.
func sameValue(a, b any) bool {
	va, aok := a.(Value)
	vb, bok := b.(Value)
	if aok || bok {
		if !aok || !bok || va.IsLazy() || vb.IsLazy() {
			return false
		}
		return sameValue(va.static, vb.static)
	}
	switch a.(type) {
	case nil, string, bool, int, int64, float64, float32:
		return a == b
	}
	return false
}

// Style is a flattened property bag.
type Style map[string]Value

// Materialize forces every lazy value, recursively, into a plain map.
// Properties whose lazy value is undefined are left out.
func (s Style) Materialize() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		if x := materialize(v.Get()); x != nil {
			out[k] = x
		}
	}
	return out
}

func materialize(v any) any {
	switch v := v.(type) {
	case Style:
		return v.Materialize()
	case []Style:
		out := make([]any, 0, len(v))
		for _, s := range v {
			out = append(out, s.Materialize())
		}
		return out
	case Value:
		return materialize(v.Get())
	}
	return v
}
