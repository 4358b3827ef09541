package cascade

import (
	"maps"
	"slices"
)

// Declaration is one property (or variable) of a fragment. Value is a
// literal, an *Expression, a Group, a TransformList or an already resolved
// Value.
type Declaration struct {
	Property string
	Value    any
}

// Group is a composite property with fixed sub-keys, such as a shadow offset
// made of width and height.
type Group []Declaration

// TransformList is an ordered list of single-key transform operations.
type TransformList []Declaration

// Expression is a runtime-value expression embedded by the style sheet
// compiler, e.g. var(--gap) or vw(50).
type Expression struct {
	Name string
	Args []any
}

func Expr(name string, args ...any) *Expression {
	return &Expression{Name: name, Args: args}
}

// Fragment is one compiled rule targeting a component.
type Fragment struct {
	ID             string
	Specificity    Specificity
	Conditions     *Conditions
	Variables      []Declaration
	Animations     Attributes
	Transition     Attributes
	Container      *ContainerDescriptor
	RequiresLayout bool
	Properties     []Declaration
}

// Inline builds a fragment for styles passed directly to a component.
// order is the origin order among inline styles, starting at 1.
func Inline(order int, properties ...Declaration) *Fragment {
	if order < 1 {
		order = 1
	}
	return &Fragment{
		Specificity: Specificity{Inline: order},
		Properties:  properties,
	}
}

// Conditions gate a whole fragment.
type Conditions struct {
	Media         []MediaQuery     `yaml:"media,omitempty" json:"media,omitempty"`
	PseudoClasses *PseudoClasses   `yaml:"pseudoClasses,omitempty" json:"pseudoClasses,omitempty"`
	Container     []ContainerQuery `yaml:"container,omitempty" json:"container,omitempty"`
}

type PseudoClasses struct {
	Hover  bool `yaml:"hover,omitempty" json:"hover,omitempty"`
	Active bool `yaml:"active,omitempty" json:"active,omitempty"`
	Focus  bool `yaml:"focus,omitempty" json:"focus,omitempty"`
}

func (p PseudoClasses) Any() bool {
	return p.Hover || p.Active || p.Focus
}

func (p PseudoClasses) union(o PseudoClasses) PseudoClasses {
	return PseudoClasses{
		Hover:  p.Hover || o.Hover,
		Active: p.Active || o.Active,
		Focus:  p.Focus || o.Focus,
	}
}

// Attributes holds animation or transition settings keyed by sub-property
// (name, duration, timingFunction...).
type Attributes map[string]any

// ContainerDescriptor declares the component as a query container.
type ContainerDescriptor struct {
	Names []string `yaml:"names,omitempty" json:"names,omitempty"`
}

// Metadata describes what the integration layer has to wire for a
// flattened style.
type Metadata struct {
	Variables      map[string]Value
	PseudoClasses  PseudoClasses
	Animations     Attributes
	Transition     Attributes
	Container      *ContainerDescriptor
	RequiresLayout bool
}

// Flattened is the result of a flatten pass: the style and its metadata,
// returned together.
type Flattened struct {
	Style       Style
	Meta        Metadata
	Specificity Specificity
}

// VariableNames lists the variables declared by the flattened fragments.
func (f *Flattened) VariableNames() []string {
	return slices.Sorted(maps.Keys(f.Meta.Variables))
}

// Source is anything the flattener accepts: a fragment, a previously
// flattened result or a nested list of those.
type Source interface {
	entries(dst []entry) []entry
}

type Sources []Source

type entry struct {
	fragment *Fragment
	flat     *Flattened
}

func (e entry) specificity() Specificity {
	if e.flat != nil {
		return e.flat.Specificity
	}
	return e.fragment.Specificity
}

func (f *Fragment) entries(dst []entry) []entry {
	if f == nil {
		return dst
	}
	return append(dst, entry{fragment: f})
}

func (f *Flattened) entries(dst []entry) []entry {
	if f == nil {
		return dst
	}
	return append(dst, entry{flat: f})
}

func (s Sources) entries(dst []entry) []entry {
	for _, src := range s {
		if src != nil {
			dst = src.entries(dst)
		}
	}
	return dst
}

// normalize flattens nested sources and sorts them by ascending specificity.
func normalize(sources []Source) []entry {
	list := Sources(sources).entries(nil)
	slices.SortStableFunc(list, func(a, b entry) int {
		return Compare(a.specificity(), b.specificity())
	})
	return list
}
