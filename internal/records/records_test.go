package records

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/delaneyj/stylesignal/cascade"
	"github.com/delaneyj/stylesignal/reactive"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const button = `
environment:
  width: 400
  height: 800
  rem: 16
  variables:
    --accent: teal
fragments:
  - id: base
    specificity: {B: 1}
    variables:
      --gap: 8
    properties:
      color: {fn: var, args: [--accent]}
      padding: {fn: var, args: [--gap]}
      shadowOffset: {group: {width: 1, height: 2}}
      transform: {transform: [{rotate: 45deg}, {scale: 2}]}
  - id: hover
    specificity: {B: 2}
    conditions:
      pseudoClasses: {hover: true}
    properties:
      color: blue
  - specificity: {B: 3}
    conditions:
      media:
        - condition: {op: feature, feature: min-width, value: 600}
    properties:
      flexDirection: row
state:
  hover: true
  layout: {width: 200, height: 100}
  variables:
    --extra: 1
`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(button))
	require.NoError(t, err)

	t.Run("environment starts from the defaults", func(t *testing.T) {
		assert.Equal(t, 400.0, doc.Environment.Width)
		assert.Equal(t, 16.0, doc.Environment.Rem)
		assert.Equal(t, 1.0, doc.Environment.PixelRatio)
		assert.Equal(t, cascade.ColorSchemeLight, doc.Environment.ColorScheme)
		assert.Equal(t, map[string]any{"--accent": "teal"}, doc.Environment.Variables)
	})

	t.Run("fragments keep declaration order", func(t *testing.T) {
		require.Len(t, doc.Fragments, 3)
		base := doc.Fragments[0]
		assert.Equal(t, "base", base.ID)
		assert.Equal(t, cascade.Specificity{B: 1}, base.Specificity)

		want := []cascade.Declaration{
			{Property: "color", Value: cascade.Expr("var", "--accent")},
			{Property: "padding", Value: cascade.Expr("var", "--gap")},
			{Property: "shadowOffset", Value: cascade.Group{{Property: "width", Value: 1}, {Property: "height", Value: 2}}},
			{Property: "transform", Value: cascade.TransformList{{Property: "rotate", Value: "45deg"}, {Property: "scale", Value: 2}}},
		}
		if diff := cmp.Diff(want, base.Properties); diff != "" {
			t.Errorf("properties mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, []cascade.Declaration{{Property: "--gap", Value: 8}}, base.Variables)
	})

	t.Run("conditions", func(t *testing.T) {
		hover := doc.Fragments[1]
		require.NotNil(t, hover.Conditions)
		assert.Equal(t, &cascade.PseudoClasses{Hover: true}, hover.Conditions.PseudoClasses)

		media := doc.Fragments[2]
		assert.Equal(t, "fragment-2", media.ID)
		require.Len(t, media.Conditions.Media, 1)
		assert.Equal(t, cascade.Feature("min-width", 600), media.Conditions.Media[0].Condition)
	})

	t.Run("state", func(t *testing.T) {
		assert.True(t, doc.State.Hover)
		assert.False(t, doc.State.Focus)
		assert.Equal(t, 200.0, doc.State.LayoutWidth)
		assert.Equal(t, []cascade.Declaration{{Property: "--extra", Value: 1}}, doc.State.Variables)
	})

	t.Run("flattens", func(t *testing.T) {
		env, err := cascade.NewEnvironment(reactive.NewRuntime(), doc.Environment)
		require.NoError(t, err)
		ctx := cascade.NewContext(env)
		doc.Apply(ctx)
		assert.Equal(t, 200.0, ctx.Interaction.LayoutWidth.Peek())

		out := cascade.Flatten(ctx, cascade.Options{}, doc.Sources()...)
		want := map[string]any{
			"color":        "blue",
			"padding":      8,
			"shadowOffset": map[string]any{"width": 1, "height": 2},
			"transform":    []any{map[string]any{"rotate": "45deg"}, map[string]any{"scale": 2}},
		}
		if diff := cmp.Diff(want, out.Style.Materialize()); diff != "" {
			t.Errorf("style mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unknown field", "fragments:\n  - id: a\n    colour: red\n"},
		{"invalid environment", "environment:\n  rem: 0\n"},
		{"unknown color scheme", "environment:\n  colorScheme: sepia\n"},
		{"duplicate id", "fragments:\n  - id: a\n  - id: a\n"},
		{"negative specificity", "fragments:\n  - specificity: {B: -1}\n"},
		{"properties not a mapping", "fragments:\n  - properties: [a, b]\n"},
		{"unknown value shape", "fragments:\n  - properties:\n      color: {red: 1}\n"},
		{"expression without name", "fragments:\n  - properties:\n      width: {fn: '', args: [1]}\n"},
		{"expression with extra keys", "fragments:\n  - properties:\n      width: {fn: vw, args: [1], unit: px}\n"},
		{"args not a list", "fragments:\n  - properties:\n      width: {fn: vw, args: 1}\n"},
		{"transform not a list", "fragments:\n  - properties:\n      transform: {transform: {rotate: 1}}\n"},
		{"transform with two keys", "fragments:\n  - properties:\n      transform: {transform: [{rotate: 1, scale: 2}]}\n"},
		{"bad state variables", "state:\n  variables: [1]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestLoad(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "card.json"))
	require.NoError(t, err)
	require.Len(t, doc.Fragments, 2)
	assert.Equal(t, "card", doc.Fragments[0].ID)
	assert.Equal(t, []string{"card"}, doc.Fragments[0].Container.Names)
	assert.Equal(t, cascade.Expr("cw", 50), doc.Fragments[1].Properties[0].Value)

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}
