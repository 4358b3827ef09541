package cascade

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type function func(r *resolver, e *Expression) (Value, bool)

// functions are the helpers with a fixed arity and output type. Anything
// not listed here, and not a unit or variable, is joined into a call string.
var functions map[string]function

func init() {
	functions = map[string]function{
		"hairlineWidth":             hairlineWidth,
		"pixelRatio":                multiplier(func(env *Environment) float64 { return env.PixelRatio.Get() }),
		"fontScale":                 multiplier(func(env *Environment) float64 { return env.FontScale.Get() }),
		"roundToNearestPixel":       roundToNearestPixel,
		"getPixelSizeForLayoutSize": pixelSizeForLayoutSize,
		"platformSelect":            platformSelect,
		"pixelRatioSelect":          scaleSelect(func(env *Environment) float64 { return env.PixelRatio.Get() }),
		"fontScaleSelect":           scaleSelect(func(env *Environment) float64 { return env.FontScale.Get() }),
		"platformColor":             platformColor,
		"rgb":                       colorFunction,
		"rgba":                      colorFunction,
		"hsl":                       colorFunction,
		"hsla":                      colorFunction,
		"rgbaFromColor":             rgbaFromColor,
		"calc":                      calc,
	}
	for _, name := range []string{"rotate", "rotateX", "rotateY", "rotateZ", "skewX", "skewY"} {
		functions[name] = angle
	}
	for _, name := range []string{"translateX", "translateY", "scale", "scaleX", "scaleY", "perspective"} {
		functions[name] = scalar
	}
}

// callString renders name(arg, arg...).
func callString(name string, vals []any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = format(v)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

func hairline(ratio float64) float64 {
	return math.Max(1, math.Round(0.4*ratio)) / ratio
}

func hairlineWidth(r *resolver, e *Expression) (Value, bool) {
	if len(e.Args) != 0 {
		return Value{}, false
	}
	return Static(hairline(r.env.PixelRatio.Get())), true
}

// multiplier scales an optional numeric argument, 1 by default.
func multiplier(unit func(env *Environment) float64) function {
	return func(r *resolver, e *Expression) (Value, bool) {
		switch len(e.Args) {
		case 0:
			return Static(unit(r.env)), true
		case 1:
			return r.scaled(e.Args, func() float64 {
				return unit(r.env)
			})
		}
		return Value{}, false
	}
}

func roundToNearestPixel(r *resolver, e *Expression) (Value, bool) {
	if len(e.Args) != 1 {
		return Value{}, false
	}
	env := r.env
	return r.apply(e.Args, func(vals []any) (any, bool) {
		n, ok := toNumber(vals[0])
		if !ok {
			return nil, false
		}
		ratio := env.PixelRatio.Get()
		return math.Round(n*ratio) / ratio, true
	})
}

func pixelSizeForLayoutSize(r *resolver, e *Expression) (Value, bool) {
	if len(e.Args) != 1 {
		return Value{}, false
	}
	env := r.env
	return r.apply(e.Args, func(vals []any) (any, bool) {
		n, ok := toNumber(vals[0])
		if !ok {
			return nil, false
		}
		return math.Round(n * env.PixelRatio.Get()), true
	})
}

// choose walks key/value argument pairs and resolves the value of the first
// matching key, or of the "default" key. Only the chosen value is resolved.
func choose(r *resolver, args []any, match func(key any) bool) (Value, bool) {
	var fallback any
	hasFallback := false
	for i := 0; i+1 < len(args); i += 2 {
		key := args[i]
		if key == "default" {
			fallback, hasFallback = args[i+1], true
			continue
		}
		if match(key) {
			return r.resolve(args[i+1])
		}
	}
	if hasFallback {
		return r.resolve(fallback)
	}
	return Value{}, false
}

func platformSelect(r *resolver, e *Expression) (Value, bool) {
	platform := r.env.Platform.Get()
	return choose(r, e.Args, func(key any) bool {
		s, ok := key.(string)
		return ok && s == platform
	})
}

func scaleSelect(unit func(env *Environment) float64) function {
	return func(r *resolver, e *Expression) (Value, bool) {
		current := unit(r.env)
		return choose(r, e.Args, func(key any) bool {
			n, ok := toNumber(key)
			return ok && n == current
		})
	}
}

// PlatformColor names native colors, the first one the platform knows wins.
type PlatformColor struct {
	Names []string
}

func (c PlatformColor) String() string {
	return "platformColor(" + strings.Join(c.Names, ", ") + ")"
}

func platformColor(r *resolver, e *Expression) (Value, bool) {
	if len(e.Args) == 0 {
		return Value{}, false
	}
	return r.apply(e.Args, func(vals []any) (any, bool) {
		names := make([]string, 0, len(vals))
		for _, v := range vals {
			s, ok := v.(string)
			if !ok || s == "" {
				return nil, false
			}
			names = append(names, s)
		}
		return PlatformColor{Names: names}, true
	})
}

// colorFunction validates rgb/hsl arguments and normalizes the name to the
// alpha form when four channels are given.
func colorFunction(r *resolver, e *Expression) (Value, bool) {
	if len(e.Args) != 3 && len(e.Args) != 4 {
		return Value{}, false
	}
	name := strings.TrimSuffix(e.Name, "a")
	if len(e.Args) == 4 {
		name += "a"
	}
	return r.apply(e.Args, func(vals []any) (any, bool) {
		for _, v := range vals {
			switch v.(type) {
			case string:
			default:
				if _, ok := toNumber(v); !ok {
					return nil, false
				}
			}
		}
		return callString(name, vals), true
	})
}

// rgbaFromColor composes an alpha channel onto a hex or rgb() color.
func rgbaFromColor(r *resolver, e *Expression) (Value, bool) {
	if len(e.Args) != 2 {
		return Value{}, false
	}
	return r.apply(e.Args, func(vals []any) (any, bool) {
		color, ok := vals[0].(string)
		if !ok {
			return nil, false
		}
		alpha, ok := toNumber(vals[1])
		if !ok {
			return nil, false
		}
		channels, ok := parseColor(color)
		if !ok {
			return nil, false
		}
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", channels[0], channels[1], channels[2], formatNumber(alpha)), true
	})
}

// parseColor reads #rgb, #rrggbb, #rrggbbaa, rgb(r, g, b) and
// rgba(r, g, b, a) into red, green and blue channels.
func parseColor(s string) ([3]int, bool) {
	var out [3]int
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		// colorful knows #rgb and #rrggbb, an alpha byte is dropped
		switch len(s) {
		case 4, 7:
		case 9:
			s = s[:7]
		default:
			return out, false
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return out, false
		}
		r, g, b := c.RGB255()
		return [3]int{int(r), int(g), int(b)}, true
	}

	for _, prefix := range []string{"rgba(", "rgb("} {
		body, ok := strings.CutPrefix(s, prefix)
		if !ok {
			continue
		}
		body, ok = strings.CutSuffix(body, ")")
		if !ok {
			return out, false
		}
		parts := strings.Split(body, ",")
		if len(parts) < 3 {
			return out, false
		}
		for i := range out {
			n, ok := toNumber(parts[i])
			if !ok {
				return out, false
			}
			out[i] = int(n)
		}
		return out, true
	}
	return out, false
}

// angle formats a rotation or skew, bare numbers are degrees.
func angle(r *resolver, e *Expression) (Value, bool) {
	if len(e.Args) != 1 {
		return Value{}, false
	}
	return r.apply(e.Args, func(vals []any) (any, bool) {
		switch v := vals[0].(type) {
		case string:
			if v == "" {
				return nil, false
			}
			if n, ok := parseFloat(v); ok {
				return formatNumber(n) + "deg", true
			}
			return v, true
		}
		n, ok := toNumber(vals[0])
		if !ok {
			return nil, false
		}
		return formatNumber(n) + "deg", true
	})
}

func scalar(r *resolver, e *Expression) (Value, bool) {
	if len(e.Args) != 1 {
		return Value{}, false
	}
	return r.apply(e.Args, func(vals []any) (any, bool) {
		if s, ok := vals[0].(string); ok {
			return coerce(s), s != ""
		}
		n, ok := toNumber(vals[0])
		if !ok {
			return nil, false
		}
		return n, true
	})
}

// calc evaluates operand/operator sequences with the usual precedence.
// Operands that aren't plain numbers keep the expression as a string.
func calc(r *resolver, e *Expression) (Value, bool) {
	if len(e.Args) == 0 || len(e.Args)%2 == 0 {
		return Value{}, false
	}
	return r.apply(e.Args, func(vals []any) (any, bool) {
		nums := []float64{}
		ops := []string{}
		for i, v := range vals {
			if i%2 == 1 {
				op, ok := v.(string)
				if !ok || !strings.Contains("+-*/", op) || len(op) != 1 {
					return nil, false
				}
				ops = append(ops, op)
				continue
			}
			var (
				n  float64
				ok bool
			)
			if s, isString := v.(string); isString {
				n, ok = parseFloat(strings.TrimSpace(s))
			} else {
				n, ok = toNumber(v)
			}
			if !ok {
				return calcString(vals), true
			}
			nums = append(nums, n)
		}

		// multiplication and division first
		terms := []float64{nums[0]}
		signs := []string{}
		for i, op := range ops {
			switch op {
			case "*":
				terms[len(terms)-1] *= nums[i+1]
			case "/":
				if nums[i+1] == 0 {
					return nil, false
				}
				terms[len(terms)-1] /= nums[i+1]
			default:
				terms = append(terms, nums[i+1])
				signs = append(signs, op)
			}
		}
		total := terms[0]
		for i, sign := range signs {
			if sign == "+" {
				total += terms[i+1]
			} else {
				total -= terms[i+1]
			}
		}
		return total, true
	})
}

func calcString(vals []any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = format(v)
	}
	return "calc(" + strings.Join(parts, " ") + ")"
}
