package cascade

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSpecificity(t *testing.T) {
	order := []Specificity{
		{},
		{O: 1},
		{S: 1},
		{I: 1, S: 9, O: 9},
		{C: 1},
		{B: 1, C: 9},
		{A: 1},
		{Inline: 1},
		{Inline: 2},
	}
	for i := 1; i < len(order); i++ {
		assert.True(t, order[i-1].Less(order[i]), "%+v < %+v", order[i-1], order[i])
		assert.Equal(t, 1, Compare(order[i], order[i-1]))
	}
	assert.Equal(t, 0, Compare(Specificity{B: 2}, Specificity{B: 2}))

	a := &Fragment{ID: "a", Specificity: Specificity{B: 1}}
	b := &Fragment{ID: "b", Specificity: Specificity{A: 1}}
	c := &Fragment{ID: "c", Specificity: Specificity{B: 1}}
	list := []*Fragment{b, a, c}
	SortFragments(list)
	ids := []string{}
	for _, f := range list {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"a", "c", "b"}, ids)
}

func TestMaterialize(t *testing.T) {
	calls := 0
	s := Style{
		"color": Static("red"),
		"width": Lazy(func() any {
			calls++
			return 10.0
		}),
		"gone":   Lazy(func() any { return nil }),
		"nested": Static(Style{"x": Lazy(func() any { return 1 })}),
		"list":   Static([]Style{{"scale": Static(2)}}),
		"value":  Static(Static("wrapped")),
	}
	assert.Equal(t, 0, calls)

	want := map[string]any{
		"color":  "red",
		"width":  10.0,
		"nested": map[string]any{"x": 1},
		"list":   []any{map[string]any{"scale": 2}},
		"value":  "wrapped",
	}
	if diff := cmp.Diff(want, s.Materialize()); diff != "" {
		t.Errorf("Materialize() mismatch (-want +got):\n%s", diff)
	}
	s.Materialize()
	assert.Equal(t, 2, calls, "lazy values are evaluated on every read")
}

func TestSameValue(t *testing.T) {
	lazy := Lazy(func() any { return 1 })
	assert.True(t, sameValue(nil, nil))
	assert.True(t, sameValue("a", "a"))
	assert.True(t, sameValue(Static(1.5), Static(1.5)))
	assert.False(t, sameValue(Static(1), 1))
	assert.False(t, sameValue(lazy, lazy))
	assert.False(t, sameValue(1, 2))
	assert.False(t, sameValue([]int{1}, []int{1}))
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{3, 3, true},
		{int64(4), 4, true},
		{float32(0.5), 0.5, true},
		{"12px", 12, true},
		{"2dppx", 2, true},
		{"1.5x", 1.5, true},
		{" 16 / 9 ", 16.0 / 9, true},
		{"1/0", 0, false},
		{"NaN", 0, false},
		{"abc", 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := toNumber(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, "%v", tt.in)
		}
	}

	assert.Equal(t, 12.0, coerce("12"))
	assert.Equal(t, "12px", coerce("12px"))
	assert.Equal(t, 3, coerce(3))
	assert.Equal(t, "1.25", format(1.25))
	assert.Equal(t, "3", format(3))
	assert.Equal(t, "platformColor(a)", format(PlatformColor{Names: []string{"a"}}))
}
