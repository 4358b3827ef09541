package cascade

import (
	"cmp"
	"fmt"
	"slices"
)

// Specificity orders fragments in the cascade. Inline is zero for fragments
// coming from style sheets and the origin order for inline styles, which
// beat everything else.
type Specificity struct {
	Inline int `yaml:"inline,omitempty" json:"inline,omitempty"`
	// Id selectors
	A int `yaml:"A,omitempty" json:"A,omitempty"`
	// Class, attribute and pseudo-class selectors
	B int `yaml:"B,omitempty" json:"B,omitempty"`
	// Type selectors
	C int `yaml:"C,omitempty" json:"C,omitempty"`
	// Importance
	I int `yaml:"I,omitempty" json:"I,omitempty"`
	// Style sheet order
	S int `yaml:"S,omitempty" json:"S,omitempty"`
	// Order of appearance
	O int `yaml:"O,omitempty" json:"O,omitempty"`
}

// Compare is a three-way comparison of a and b, field by field in priority
// order.
func Compare(a, b Specificity) int {
	if c := cmp.Compare(a.Inline, b.Inline); c != 0 {
		return c
	}
	if c := cmp.Compare(a.A, b.A); c != 0 {
		return c
	}
	if c := cmp.Compare(a.B, b.B); c != 0 {
		return c
	}
	if c := cmp.Compare(a.C, b.C); c != 0 {
		return c
	}
	if c := cmp.Compare(a.I, b.I); c != 0 {
		return c
	}
	if c := cmp.Compare(a.S, b.S); c != 0 {
		return c
	}
	return cmp.Compare(a.O, b.O)
}

// Less reports whether s sorts before o.
func (s Specificity) Less(o Specificity) bool {
	return Compare(s, o) < 0
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d,%d,%d,%d)", s.Inline, s.A, s.B, s.C, s.I, s.S, s.O)
}

// SortFragments sorts fragments ascending. Equal specificities keep their
// input order so the later one still wins.
func SortFragments(fragments []*Fragment) {
	slices.SortStableFunc(fragments, func(a, b *Fragment) int {
		return Compare(a.Specificity, b.Specificity)
	})
}
