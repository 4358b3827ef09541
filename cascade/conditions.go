package cascade

import (
	"strings"
)

type ConditionOp string

const (
	OpAnd     ConditionOp = "and"
	OpOr      ConditionOp = "or"
	OpNot     ConditionOp = "not"
	OpFeature ConditionOp = "feature"
)

// Condition is a boolean tree over media or container features.
type Condition struct {
	Op         ConditionOp  `yaml:"op" json:"op"`
	Conditions []*Condition `yaml:"conditions,omitempty" json:"conditions,omitempty"`
	// Feature name, optionally prefixed with min- or max-
	Feature string `yaml:"feature,omitempty" json:"feature,omitempty"`
	// One of =, <, <=, >, >=. Empty means =, or the min-/max- prefix.
	Comparison string `yaml:"comparison,omitempty" json:"comparison,omitempty"`
	Value      any    `yaml:"value,omitempty" json:"value,omitempty"`
}

func Feature(name string, value any) *Condition {
	return &Condition{Op: OpFeature, Feature: name, Value: value}
}

func Range(name, comparison string, value any) *Condition {
	return &Condition{Op: OpFeature, Feature: name, Comparison: comparison, Value: value}
}

func And(conditions ...*Condition) *Condition {
	return &Condition{Op: OpAnd, Conditions: conditions}
}

func Or(conditions ...*Condition) *Condition {
	return &Condition{Op: OpOr, Conditions: conditions}
}

func Not(condition *Condition) *Condition {
	return &Condition{Op: OpNot, Conditions: []*Condition{condition}}
}

type MediaQuery struct {
	// all, screen or print; empty means all
	Type      string     `yaml:"type,omitempty" json:"type,omitempty"`
	Not       bool       `yaml:"not,omitempty" json:"not,omitempty"`
	Condition *Condition `yaml:"condition,omitempty" json:"condition,omitempty"`
}

type ContainerQuery struct {
	// Empty targets the nearest container
	Name          string         `yaml:"name,omitempty" json:"name,omitempty"`
	Condition     *Condition     `yaml:"condition,omitempty" json:"condition,omitempty"`
	PseudoClasses *PseudoClasses `yaml:"pseudoClasses,omitempty" json:"pseudoClasses,omitempty"`
}

// features resolves a feature name to its current value, reading the
// backing signal.
type features func(name string) (any, bool)

func (c *Condition) eval(lookup features) bool {
	if c == nil {
		return true
	}
	switch c.Op {
	case OpAnd:
		for _, sub := range c.Conditions {
			if !sub.eval(lookup) {
				return false
			}
		}
		return true
	case OpOr:
		for _, sub := range c.Conditions {
			if sub.eval(lookup) {
				return true
			}
		}
		return false
	case OpNot:
		if len(c.Conditions) != 1 {
			return false
		}
		return !c.Conditions[0].eval(lookup)
	case OpFeature, "":
		return c.testFeature(lookup)
	}
	return false
}

func (c *Condition) testFeature(lookup features) bool {
	name, comparison := c.Feature, c.Comparison
	switch {
	case strings.HasPrefix(name, "min-"):
		name, comparison = name[4:], ">="
	case strings.HasPrefix(name, "max-"):
		name, comparison = name[4:], "<="
	}
	if comparison == "" {
		comparison = "="
	}

	actual, ok := lookup(name)
	if !ok {
		return false
	}

	a, aok := toNumber(actual)
	b, bok := toNumber(c.Value)
	if aok && bok {
		switch comparison {
		case "=":
			return a == b
		case "<":
			return a < b
		case "<=":
			return a <= b
		case ">":
			return a > b
		case ">=":
			return a >= b
		}
		return false
	}

	if comparison != "=" {
		return false
	}
	as, aok := actual.(string)
	bs, bok := c.Value.(string)
	return aok && bok && as == bs
}

func orientation(width, height float64) string {
	if width > height {
		return "landscape"
	}
	return "portrait"
}

func aspectRatio(width, height float64) (any, bool) {
	if height == 0 {
		return nil, false
	}
	return width / height, true
}

// testMedia requires every query of the list to match.
func testMedia(env *Environment, queries []MediaQuery) bool {
	lookup := func(name string) (any, bool) {
		switch name {
		case "width":
			return env.Width.Get(), true
		case "height":
			return env.Height.Get(), true
		case "aspect-ratio":
			return aspectRatio(env.Width.Get(), env.Height.Get())
		case "orientation":
			return orientation(env.Width.Get(), env.Height.Get()), true
		case "prefers-color-scheme":
			return env.ColorScheme.Get(), true
		case "resolution":
			return env.PixelRatio.Get(), true
		case "platform":
			return env.Platform.Get(), true
		}
		return nil, false
	}

	for _, q := range queries {
		ok := false
		switch q.Type {
		case "", "all", "screen":
			ok = q.Condition.eval(lookup)
		}
		if q.Not {
			ok = !ok
		}
		if !ok {
			return false
		}
	}
	return true
}

// testPseudoClasses requires every requested pseudo-class to be on. Only
// the requested signals are read.
func testPseudoClasses(in *Interaction, p *PseudoClasses) bool {
	if p == nil {
		return true
	}
	if p.Hover && !in.Hover.Get() {
		return false
	}
	if p.Active && !in.Active.Get() {
		return false
	}
	if p.Focus && !in.Focus.Get() {
		return false
	}
	return true
}

// testContainers requires every query to find its container and match it.
// A container that isn't mounted yet fails the query.
func testContainers(ctx *Context, queries []ContainerQuery) bool {
	for _, q := range queries {
		ct := ctx.Container(q.Name)
		if ct == nil || ct.Interaction == nil {
			return false
		}
		if !testPseudoClasses(ct.Interaction, q.PseudoClasses) {
			return false
		}

		in := ct.Interaction
		lookup := func(name string) (any, bool) {
			switch name {
			case "width":
				return in.LayoutWidth.Get(), true
			case "height":
				return in.LayoutHeight.Get(), true
			case "aspect-ratio":
				return aspectRatio(in.LayoutWidth.Get(), in.LayoutHeight.Get())
			case "orientation":
				return orientation(in.LayoutWidth.Get(), in.LayoutHeight.Get()), true
			}
			return nil, false
		}
		if !q.Condition.eval(lookup) {
			return false
		}
	}
	return true
}
