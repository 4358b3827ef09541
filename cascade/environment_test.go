package cascade

import (
	"testing"

	"github.com/delaneyj/stylesignal/reactive"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		cfg := DefaultEnvironmentConfig()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 14.0, cfg.Rem)
		assert.Equal(t, ColorSchemeLight, cfg.ColorScheme)
	})

	t.Run("invalid config", func(t *testing.T) {
		tests := []struct {
			name   string
			modify func(*EnvironmentConfig)
		}{
			{"negative width", func(c *EnvironmentConfig) { c.Width = -1 }},
			{"zero rem", func(c *EnvironmentConfig) { c.Rem = 0 }},
			{"zero pixel ratio", func(c *EnvironmentConfig) { c.PixelRatio = 0 }},
			{"negative font scale", func(c *EnvironmentConfig) { c.FontScale = -2 }},
			{"unknown scheme", func(c *EnvironmentConfig) { c.ColorScheme = "sepia" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := testConfig()
				tt.modify(&cfg)
				_, err := NewEnvironment(reactive.NewRuntime(), cfg)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			})
		}
	})

	t.Run("nil runtime", func(t *testing.T) {
		_, err := NewEnvironment(nil, testConfig())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("setters ignore invalid values", func(t *testing.T) {
		env, _ := newTestContext(t)
		env.SetColorScheme("sepia")
		env.SetFontScale(0)
		env.SetPixelRatio(-1)
		assert.Equal(t, ColorSchemeLight, env.ColorScheme.Peek())
		assert.Equal(t, 1.5, env.FontScale.Peek())
		assert.Equal(t, 2.0, env.PixelRatio.Peek())
	})

	t.Run("dimensions change in one batch", func(t *testing.T) {
		env, _ := newTestContext(t)
		runs := 0
		area := reactive.NewComputation(env.Runtime(), func() float64 {
			runs++
			return env.Width.Get() * env.Height.Get()
		})
		env.SetDimensions(10, 20)
		assert.Equal(t, 200.0, area.Get())
		assert.Equal(t, 2, runs)
	})

	t.Run("reset", func(t *testing.T) {
		cfg := testConfig()
		cfg.Variables = map[string]any{"--gap": 4}
		env, err := NewEnvironment(reactive.NewRuntime(), cfg)
		require.NoError(t, err)

		env.SetDimensions(1, 1)
		env.SetColorScheme(ColorSchemeDark)
		env.SetVariable("--gap", 8)
		env.SetVariable("--extra", "x")
		env.SetDarkVariable("--bg", "black")

		env.Reset()
		assert.Equal(t, 400.0, env.Width.Peek())
		assert.Equal(t, 800.0, env.Height.Peek())
		assert.Equal(t, ColorSchemeLight, env.ColorScheme.Peek())

		v, ok := env.variable("--gap")
		assert.True(t, ok)
		assert.Equal(t, 4, v)
		_, ok = env.variable("--extra")
		assert.False(t, ok)
		_, ok = env.variable("--bg")
		assert.False(t, ok)
	})
}

func TestContext(t *testing.T) {
	t.Run("identity and ancestry", func(t *testing.T) {
		env, root := newTestContext(t)
		child := root.Child()

		_, err := uuid.Parse(root.ID())
		require.NoError(t, err)
		assert.NotEqual(t, root.ID(), child.ID())
		assert.Same(t, root, child.Parent())
		assert.Nil(t, root.Parent())
		assert.Same(t, env, child.Environment())
		assert.Same(t, env.Runtime(), child.Runtime())
	})

	t.Run("local variables shadow ancestors", func(t *testing.T) {
		_, root := newTestContext(t)
		root.SetVariable("--gap", 1)
		child := root.Child()

		v, ok := child.Variable("--gap")
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		child.SetVariable("--gap", 2)
		v, _ = child.Variable("--gap")
		assert.Equal(t, 2, v)

		child.SetVariable("--gap", nil)
		v, _ = child.Variable("--gap")
		assert.Equal(t, 1, v)

		_, ok = child.Variable("--none")
		assert.False(t, ok)
	})

	t.Run("cleanup", func(t *testing.T) {
		_, root := newTestContext(t)
		root.SetVariable("--gap", 1)
		root.Cleanup()
		root.Cleanup()

		root.SetVariable("--gap", 2)
		root.Layout(10, 10)
		_, ok := root.Variable("--gap")
		assert.False(t, ok)
		assert.Equal(t, 0.0, root.Interaction.LayoutWidth.Peek())

		_, err := root.Inherit(Metadata{})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("cleaning up a child leaves its ancestors alone", func(t *testing.T) {
		_, root := newTestContext(t)
		root.SetVariable("--gap", 1)
		parent, err := root.Inherit(Metadata{Container: &ContainerDescriptor{Names: []string{"page"}}})
		require.NoError(t, err)
		parent.SetVariable("--accent", "teal")

		h, err := NewHandle(parent, Options{})
		require.NoError(t, err)
		defer h.Cleanup()
		hovered := &Fragment{
			Conditions: &Conditions{PseudoClasses: &PseudoClasses{Hover: true}},
			Properties: []Declaration{decl("color", Expr("var", "--accent"))},
		}
		assertStyle(t, map[string]any{}, h.Use([]Source{hovered}))

		child := parent.Child()
		child.SetVariable("--accent", "red")
		child.SetContainer("inner", &Container{Interaction: child.Interaction})
		v, _ := child.Variable("--gap")
		require.Equal(t, 1, v)
		require.NotNil(t, child.Container("page"))
		child.Cleanup()

		v, ok := parent.Variable("--accent")
		assert.True(t, ok)
		assert.Equal(t, "teal", v)
		v, ok = parent.Variable("--gap")
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		ct := parent.Container("page")
		require.NotNil(t, ct)
		assert.Same(t, root.Interaction, ct.Interaction)
		assert.Same(t, ct, parent.Container(""))
		assert.Nil(t, parent.Container("inner"))

		parent.Interaction.Hover.Set(true)
		assert.True(t, parent.Interaction.Hover.Get())
		assertStyle(t, map[string]any{"color": "teal"}, h.Current())
		assert.Equal(t, 2, h.Passes())

		root.SetVariable("--gap", 2)
		v, _ = parent.Variable("--gap")
		assert.Equal(t, 2, v)
	})

	t.Run("invalid container names", func(t *testing.T) {
		_, root := newTestContext(t)
		_, err := root.Inherit(Metadata{Container: &ContainerDescriptor{Names: []string{"a", "a"}}})
		assert.ErrorIs(t, err, ErrInvalidConfig)
		_, err = root.Inherit(Metadata{Container: &ContainerDescriptor{Names: []string{""}}})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("nearest container", func(t *testing.T) {
		_, root := newTestContext(t)
		assert.Nil(t, root.Container(""))

		outer, err := root.Inherit(Metadata{Container: &ContainerDescriptor{Names: []string{"page"}}})
		require.NoError(t, err)
		inner, err := outer.Child().Inherit(Metadata{Container: &ContainerDescriptor{}})
		require.NoError(t, err)

		assert.Same(t, root.Interaction, inner.Container("page").Interaction)
		assert.Same(t, outer.Parent().Interaction, root.Interaction)
		assert.NotSame(t, root.Interaction, inner.Container("").Interaction)
		assert.Same(t, root.Interaction, outer.Container("").Interaction)
	})
}
