package main

import (
	"fmt"
	"slices"

	"github.com/delaneyj/stylesignal/cascade"
	"github.com/delaneyj/stylesignal/internal/records"
	"github.com/delaneyj/stylesignal/reactive"
)

// overrides are flag values that replace the ones of the record file. nil
// means not set.
type overrides struct {
	only         []string
	hover        *bool
	active       *bool
	focus        *bool
	width        *float64
	height       *float64
	layoutWidth  *float64
	layoutHeight *float64
	colorScheme  *string
}

// session is one simulated component: a runtime, an environment and a root
// context loaded from a record file.
type session struct {
	doc     *records.Document
	env     *cascade.Environment
	ctx     *cascade.Context
	sources []cascade.Source
}

func newSession(path string, o overrides) (*session, error) {
	doc, err := records.Load(path)
	if err != nil {
		return nil, err
	}

	cfg := doc.Environment
	if o.width != nil {
		cfg.Width = *o.width
	}
	if o.height != nil {
		cfg.Height = *o.height
	}
	if o.colorScheme != nil {
		cfg.ColorScheme = *o.colorScheme
	}
	env, err := cascade.NewEnvironment(reactive.NewRuntime(), cfg)
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	state := &doc.State
	if o.hover != nil {
		state.Hover = *o.hover
	}
	if o.active != nil {
		state.Active = *o.active
	}
	if o.focus != nil {
		state.Focus = *o.focus
	}
	if o.layoutWidth != nil {
		state.LayoutWidth = *o.layoutWidth
	}
	if o.layoutHeight != nil {
		state.LayoutHeight = *o.layoutHeight
	}

	s := &session{
		doc: doc,
		env: env,
		ctx: cascade.NewContext(env),
	}
	doc.Apply(s.ctx)

	for _, f := range doc.Fragments {
		if len(o.only) > 0 && !slices.Contains(o.only, f.ID) {
			continue
		}
		s.sources = append(s.sources, f)
	}
	if len(o.only) > 0 && len(s.sources) == 0 {
		return nil, fmt.Errorf("no fragment matches %v", o.only)
	}
	return s, nil
}

func (s *session) flatten(opts cascade.Options) *cascade.Flattened {
	return cascade.Flatten(s.ctx, opts, s.sources...)
}

func (s *session) cleanup() {
	s.ctx.Cleanup()
}
