package cascade

import (
	"cmp"
	"maps"
	"slices"
)

// table is a mapping whose entries are created on first access, so a read
// of a key nobody set yet still yields a signal that a later write will
// notify.
type table[K cmp.Ordered, V any] struct {
	entries map[K]V
	create  func(K) V
}

func newTable[K cmp.Ordered, V any](create func(K) V) *table[K, V] {
	return &table[K, V]{
		entries: map[K]V{},
		create:  create,
	}
}

func (t *table[K, V]) getOrCreate(key K) V {
	v, ok := t.entries[key]
	if !ok {
		v = t.create(key)
		t.entries[key] = v
	}
	return v
}

// each visits entries in key order.
func (t *table[K, V]) each(fn func(K, V)) {
	for _, k := range slices.Sorted(maps.Keys(t.entries)) {
		fn(k, t.entries[k])
	}
}

func (t *table[K, V]) reset() {
	t.entries = map[K]V{}
}
