package cascade

import (
	"errors"
	"fmt"

	"github.com/delaneyj/stylesignal/reactive"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	ColorSchemeLight = "light"
	ColorSchemeDark  = "dark"
)

// EnvironmentConfig seeds the process-wide ambient signals.
type EnvironmentConfig struct {
	Width         float64        `yaml:"width" json:"width"`
	Height        float64        `yaml:"height" json:"height"`
	Rem           float64        `yaml:"rem" json:"rem"`
	PixelRatio    float64        `yaml:"pixelRatio" json:"pixelRatio"`
	FontScale     float64        `yaml:"fontScale" json:"fontScale"`
	ColorScheme   string         `yaml:"colorScheme" json:"colorScheme"`
	Platform      string         `yaml:"platform" json:"platform"`
	Variables     map[string]any `yaml:"variables,omitempty" json:"variables,omitempty"`
	DarkVariables map[string]any `yaml:"darkVariables,omitempty" json:"darkVariables,omitempty"`
}

func DefaultEnvironmentConfig() EnvironmentConfig {
	return EnvironmentConfig{
		Rem:         14,
		PixelRatio:  1,
		FontScale:   1,
		ColorScheme: ColorSchemeLight,
		Platform:    "native",
	}
}

func (c EnvironmentConfig) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: negative viewport %vx%v", ErrInvalidConfig, c.Width, c.Height)
	case c.Rem <= 0:
		return fmt.Errorf("%w: rem must be positive, got %v", ErrInvalidConfig, c.Rem)
	case c.PixelRatio <= 0:
		return fmt.Errorf("%w: pixel ratio must be positive, got %v", ErrInvalidConfig, c.PixelRatio)
	case c.FontScale <= 0:
		return fmt.Errorf("%w: font scale must be positive, got %v", ErrInvalidConfig, c.FontScale)
	case c.ColorScheme != ColorSchemeLight && c.ColorScheme != ColorSchemeDark:
		return fmt.Errorf("%w: unknown color scheme %q", ErrInvalidConfig, c.ColorScheme)
	}
	return nil
}

// Environment is the explicitly owned store of ambient signals: viewport,
// root font size, scales, color scheme and the root variable scope.
// Platform notifications are forwarded to it as setter calls.
type Environment struct {
	rt  *reactive.Runtime
	cfg EnvironmentConfig

	Width       *reactive.Signal[float64]
	Height      *reactive.Signal[float64]
	Rem         *reactive.Signal[float64]
	PixelRatio  *reactive.Signal[float64]
	FontScale   *reactive.Signal[float64]
	ColorScheme *reactive.Signal[string]
	Platform    *reactive.Signal[string]

	variables     *table[string, *reactive.Signal[any]]
	darkVariables *table[string, *reactive.Signal[any]]
}

func NewEnvironment(rt *reactive.Runtime, cfg EnvironmentConfig) (*Environment, error) {
	if rt == nil {
		return nil, fmt.Errorf("%w: nil runtime", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	newVariable := func(string) *reactive.Signal[any] {
		return reactive.NewSignal[any](rt, nil, reactive.WithEquals(sameValue))
	}
	e := &Environment{
		rt:            rt,
		cfg:           cfg,
		Width:         reactive.NewSignal(rt, cfg.Width),
		Height:        reactive.NewSignal(rt, cfg.Height),
		Rem:           reactive.NewSignal(rt, cfg.Rem),
		PixelRatio:    reactive.NewSignal(rt, cfg.PixelRatio),
		FontScale:     reactive.NewSignal(rt, cfg.FontScale),
		ColorScheme:   reactive.NewSignal(rt, cfg.ColorScheme),
		Platform:      reactive.NewSignal(rt, cfg.Platform),
		variables:     newTable(newVariable),
		darkVariables: newTable(newVariable),
	}
	for name, v := range cfg.Variables {
		e.variables.getOrCreate(name).Set(v)
	}
	for name, v := range cfg.DarkVariables {
		e.darkVariables.getOrCreate(name).Set(v)
	}
	return e, nil
}

func (e *Environment) Runtime() *reactive.Runtime {
	return e.rt
}

// SetDimensions updates the viewport as a single batch.
func (e *Environment) SetDimensions(width, height float64) {
	e.rt.Batch(func() {
		e.Width.Set(width)
		e.Height.Set(height)
	})
}

func (e *Environment) SetColorScheme(scheme string) {
	if scheme != ColorSchemeLight && scheme != ColorSchemeDark {
		return
	}
	e.ColorScheme.Set(scheme)
}

func (e *Environment) SetFontScale(scale float64) {
	if scale > 0 {
		e.FontScale.Set(scale)
	}
}

func (e *Environment) SetPixelRatio(ratio float64) {
	if ratio > 0 {
		e.PixelRatio.Set(ratio)
	}
}

// SetVariable sets a root-scope variable, nil unsets it.
func (e *Environment) SetVariable(name string, v any) {
	e.variables.getOrCreate(name).Set(v)
}

// SetDarkVariable sets a root-scope variable that takes precedence while
// the color scheme is dark.
func (e *Environment) SetDarkVariable(name string, v any) {
	e.darkVariables.getOrCreate(name).Set(v)
}

// Reset restores every signal to the configuration the environment was
// created with.
func (e *Environment) Reset() {
	e.rt.Batch(func() {
		e.Width.Set(e.cfg.Width)
		e.Height.Set(e.cfg.Height)
		e.Rem.Set(e.cfg.Rem)
		e.PixelRatio.Set(e.cfg.PixelRatio)
		e.FontScale.Set(e.cfg.FontScale)
		e.ColorScheme.Set(e.cfg.ColorScheme)
		e.Platform.Set(e.cfg.Platform)
		e.variables.each(func(name string, s *reactive.Signal[any]) {
			s.Set(e.cfg.Variables[name])
		})
		e.darkVariables.each(func(name string, s *reactive.Signal[any]) {
			s.Set(e.cfg.DarkVariables[name])
		})
	})
}

// variable looks up the root scope, preferring dark variables in dark mode.
// Every read is tracked.
func (e *Environment) variable(name string) (any, bool) {
	if e.ColorScheme.Get() == ColorSchemeDark {
		if v := e.darkVariables.getOrCreate(name).Get(); v != nil {
			return v, true
		}
	}
	v := e.variables.getOrCreate(name).Get()
	return v, v != nil
}
