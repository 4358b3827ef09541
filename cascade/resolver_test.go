package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resolveOne(ctx *Context, v any) (any, bool) {
	out := Flatten(ctx, Options{}, &Fragment{Properties: []Declaration{decl("value", v)}})
	val, ok := out.Style["value"]
	if !ok {
		return nil, false
	}
	return val.Get(), true
}

func TestResolver(t *testing.T) {
	tests := []struct {
		name string
		expr any
		want any
	}{
		{"literal", "red", "red"},
		{"vw", Expr("vw", 50), 200.0},
		{"vh", Expr("vh", 10), 80.0},
		{"vmin", Expr("vmin", 10), 40.0},
		{"vmax", Expr("vmax", 10), 80.0},
		{"rem", Expr("rem", 2), 32.0},
		{"numeric string argument", Expr("vw", "25"), 100.0},
		{"hairline width", Expr("hairlineWidth"), 0.5},
		{"pixel ratio", Expr("pixelRatio"), 2.0},
		{"scaled by pixel ratio", Expr("pixelRatio", 3), 6.0},
		{"scaled by font scale", Expr("fontScale", 10), 15.0},
		{"round to nearest pixel", Expr("roundToNearestPixel", 10.3), 10.5},
		{"pixel size for layout size", Expr("getPixelSizeForLayoutSize", 10.3), 21.0},
		{"platform select", Expr("platformSelect", "android", "a", "ios", "i", "default", "d"), "i"},
		{"platform select default", Expr("platformSelect", "web", "w", "default", "d"), "d"},
		{"platform select resolves the chosen value", Expr("platformSelect", "ios", Expr("rem", 1)), 16.0},
		{"pixel ratio select", Expr("pixelRatioSelect", 1, "one", 2, "two"), "two"},
		{"font scale select", Expr("fontScaleSelect", 1.5, "large", "default", "normal"), "large"},
		{"platform color", Expr("platformColor", "systemRed", "red"), PlatformColor{Names: []string{"systemRed", "red"}}},
		{"rgb", Expr("rgb", 255, 0, 0), "rgb(255, 0, 0)"},
		{"rgb with alpha", Expr("rgb", 255, 0, 0, 0.5), "rgba(255, 0, 0, 0.5)"},
		{"hsla", Expr("hsla", 120, "100%", "50%", 1), "hsla(120, 100%, 50%, 1)"},
		{"alpha from hex", Expr("rgbaFromColor", "#ff0000", 0.5), "rgba(255, 0, 0, 0.5)"},
		{"alpha from short hex", Expr("rgbaFromColor", "#f00", 1), "rgba(255, 0, 0, 1)"},
		{"alpha from rgb", Expr("rgbaFromColor", "rgb(1, 2, 3)", 0.2), "rgba(1, 2, 3, 0.2)"},
		{"rotate degrees", Expr("rotate", 45), "45deg"},
		{"rotate numeric string", Expr("rotateZ", "90"), "90deg"},
		{"rotate radians", Expr("rotate", "1rad"), "1rad"},
		{"translate", Expr("translateX", 10), 10.0},
		{"scale string", Expr("scale", "2"), 2.0},
		{"calc precedence", Expr("calc", 2, "*", 3, "+", 4), 10.0},
		{"calc division", Expr("calc", 10, "-", 2, "/", 2), 9.0},
		{"calc nested", Expr("calc", Expr("vw", 10), "+", 5), 45.0},
		{"calc keeps non numeric operands", Expr("calc", "100%", "-", 10), "calc(100% - 10)"},
		{"unknown function", Expr("blur", 4), "blur(4)"},
		{"unknown function with nested arguments", Expr("drop-shadow", Expr("rem", 1), "black"), "drop-shadow(16, black)"},
		{"variable argument", Expr("rgb", Expr("var", "--missing", 10), 0, 0), "rgb(10, 0, 0)"},
	}

	_, ctx := newTestContext(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveOne(ctx, tt.expr)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolverUndefined(t *testing.T) {
	tests := []struct {
		name string
		expr any
	}{
		{"nil", nil},
		{"nil expression", (*Expression)(nil)},
		{"missing variable", Expr("var", "--missing")},
		{"variable without name", Expr("var")},
		{"variable with non string name", Expr("var", 1)},
		{"unit without argument", Expr("vw")},
		{"unit with non numeric argument", Expr("rem", "big")},
		{"unit with inf", Expr("vw", "inf")},
		{"hairline width with argument", Expr("hairlineWidth", 1)},
		{"no platform match", Expr("platformSelect", "web", "w")},
		{"rgb arity", Expr("rgb", 255, 0)},
		{"rgb channel type", Expr("rgb", 255, 0, true)},
		{"alpha from unknown color", Expr("rgbaFromColor", "tomato", 0.5)},
		{"alpha from bad hex", Expr("rgbaFromColor", "#ff00", 0.5)},
		{"empty platform color", Expr("platformColor")},
		{"calc division by zero", Expr("calc", 1, "/", 0)},
		{"calc unknown operator", Expr("calc", 1, "%", 2)},
		{"calc even arity", Expr("calc", 1, "+")},
		{"undefined argument", Expr("blur", Expr("var", "--missing"))},
		{"rotate empty", Expr("rotate", "")},
	}

	_, ctx := newTestContext(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveOne(ctx, tt.expr)
			assert.False(t, ok, "resolved to %v", got)
		})
	}
}

func TestResolverTracksAmbientSignals(t *testing.T) {
	env, ctx := newTestContext(t)
	h, err := NewHandle(ctx, Options{})
	if err != nil {
		t.Fatal(err)
	}
	sources := []Source{&Fragment{Properties: []Declaration{
		decl("borderWidth", Expr("hairlineWidth")),
		decl("shadow", Expr("platformSelect", "ios", "soft", "default", "none")),
	}}}

	assertStyle(t, map[string]any{"borderWidth": 0.5, "shadow": "soft"}, h.Use(sources))

	env.SetPixelRatio(3)
	assertStyle(t, map[string]any{"borderWidth": 1.0 / 3, "shadow": "soft"}, h.Current())

	env.Platform.Set("android")
	assertStyle(t, map[string]any{"borderWidth": 1.0 / 3, "shadow": "none"}, h.Current())
	assert.Equal(t, 3, h.Passes())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want [3]int
		ok   bool
	}{
		{"#000", [3]int{0, 0, 0}, true},
		{"#0a0b0c", [3]int{10, 11, 12}, true},
		{"#0a0b0cff", [3]int{10, 11, 12}, true},
		{"#3a6", [3]int{51, 170, 102}, true},
		{"#FFF", [3]int{255, 255, 255}, true},
		{"#12345", [3]int{}, false},
		{"#1234567", [3]int{}, false},
		{" rgba(1, 2, 3, 0.5) ", [3]int{1, 2, 3}, true},
		{"rgb(1, 2)", [3]int{}, false},
		{"rgb(1, 2, 3", [3]int{}, false},
		{"#zzz", [3]int{}, false},
		{"blue", [3]int{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
