// Package records decodes the fragment records and environment settings
// written by the style sheet compiler. Documents are YAML, JSON being a
// subset of it.
package records

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/delaneyj/stylesignal/cascade"
	"gopkg.in/yaml.v3"
)

var ErrInvalidRecord = errors.New("invalid record")

// Document is a decoded record file.
type Document struct {
	Environment cascade.EnvironmentConfig
	Fragments   []*cascade.Fragment
	State       State
}

// State is the interaction state of the component being styled.
type State struct {
	Hover  bool
	Active bool
	Focus  bool
	// Zero means the component was not measured yet
	LayoutWidth  float64
	LayoutHeight float64
	Variables    []cascade.Declaration
}

type rawDocument struct {
	Environment yaml.Node     `yaml:"environment"`
	Fragments   []rawFragment `yaml:"fragments"`
	State       rawState      `yaml:"state"`
}

type rawFragment struct {
	ID             string                       `yaml:"id"`
	Specificity    cascade.Specificity          `yaml:"specificity"`
	Conditions     *cascade.Conditions          `yaml:"conditions,omitempty"`
	Variables      yaml.Node                    `yaml:"variables,omitempty"`
	Properties     yaml.Node                    `yaml:"properties"`
	Animations     cascade.Attributes           `yaml:"animations,omitempty"`
	Transition     cascade.Attributes           `yaml:"transition,omitempty"`
	Container      *cascade.ContainerDescriptor `yaml:"container,omitempty"`
	RequiresLayout bool                         `yaml:"requiresLayout,omitempty"`
}

type rawState struct {
	Hover     bool      `yaml:"hover"`
	Active    bool      `yaml:"active"`
	Focus     bool      `yaml:"focus"`
	Layout    rawLayout `yaml:"layout"`
	Variables yaml.Node `yaml:"variables,omitempty"`
}

type rawLayout struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Load reads and decodes a record file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode reads one document. Unknown fields are rejected.
func Decode(r io.Reader) (*Document, error) {
	var raw rawDocument
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidRecord)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	doc := &Document{Environment: cascade.DefaultEnvironmentConfig()}
	if !raw.Environment.IsZero() {
		if err := raw.Environment.Decode(&doc.Environment); err != nil {
			return nil, fmt.Errorf("%w: environment: %w", ErrInvalidRecord, err)
		}
	}
	if err := doc.Environment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrInvalidRecord, err)
	}

	seen := map[string]bool{}
	for i, rf := range raw.Fragments {
		f, err := rf.fragment(i)
		if err != nil {
			return nil, err
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("%w: fragment %q declared twice", ErrInvalidRecord, f.ID)
		}
		seen[f.ID] = true
		doc.Fragments = append(doc.Fragments, f)
	}

	vars, err := declarations(&raw.State.Variables)
	if err != nil {
		return nil, fmt.Errorf("%w: state variables: %w", ErrInvalidRecord, err)
	}
	doc.State = State{
		Hover:        raw.State.Hover,
		Active:       raw.State.Active,
		Focus:        raw.State.Focus,
		LayoutWidth:  raw.State.Layout.Width,
		LayoutHeight: raw.State.Layout.Height,
		Variables:    vars,
	}
	return doc, nil
}

func (rf *rawFragment) fragment(i int) (*cascade.Fragment, error) {
	id := rf.ID
	if id == "" {
		id = fmt.Sprintf("fragment-%d", i)
	}
	s := rf.Specificity
	if s.Inline < 0 || s.A < 0 || s.B < 0 || s.C < 0 || s.I < 0 || s.S < 0 || s.O < 0 {
		return nil, fmt.Errorf("%w: fragment %q: negative specificity", ErrInvalidRecord, id)
	}

	vars, err := declarations(&rf.Variables)
	if err != nil {
		return nil, fmt.Errorf("%w: fragment %q variables: %w", ErrInvalidRecord, id, err)
	}
	props, err := declarations(&rf.Properties)
	if err != nil {
		return nil, fmt.Errorf("%w: fragment %q properties: %w", ErrInvalidRecord, id, err)
	}

	return &cascade.Fragment{
		ID:             id,
		Specificity:    s,
		Conditions:     rf.Conditions,
		Variables:      vars,
		Animations:     rf.Animations,
		Transition:     rf.Transition,
		Container:      rf.Container,
		RequiresLayout: rf.RequiresLayout,
		Properties:     props,
	}, nil
}

// Sources lists the fragments for cascade.Flatten.
func (d *Document) Sources() []cascade.Source {
	out := make([]cascade.Source, len(d.Fragments))
	for i, f := range d.Fragments {
		out[i] = f
	}
	return out
}

// Apply forwards the recorded interaction state to ctx.
func (d *Document) Apply(ctx *cascade.Context) {
	ctx.Runtime().Batch(func() {
		ctx.Interaction.Hover.Set(d.State.Hover)
		ctx.Interaction.Active.Set(d.State.Active)
		ctx.Interaction.Focus.Set(d.State.Focus)
		for _, v := range d.State.Variables {
			ctx.SetVariable(v.Property, v.Value)
		}
	})
	if d.State.LayoutWidth > 0 || d.State.LayoutHeight > 0 {
		ctx.Layout(d.State.LayoutWidth, d.State.LayoutHeight)
	}
}
