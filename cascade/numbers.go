package cascade

import (
	"math"
	"strconv"
	"strings"
)

var unitSuffixes = []string{"dppx", "px", "x"}

// toNumber accepts Go numbers and numeric strings with an optional px,
// dppx or x suffix, or a ratio such as 16/9.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		if num, den, ok := strings.Cut(s, "/"); ok {
			a, aok := toNumber(num)
			b, bok := toNumber(den)
			if !aok || !bok || b == 0 {
				return 0, false
			}
			return a / b, true
		}
		for _, suffix := range unitSuffixes {
			if strings.HasSuffix(s, suffix) {
				s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
				break
			}
		}
		return parseFloat(s)
	}
	return 0, false
}

// parseFloat rejects the inf and nan spellings strconv accepts.
func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// format renders a resolved argument inside a call-like string.
func format(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return formatNumber(v)
	case nil:
		return ""
	}
	if f, ok := toNumber(v); ok {
		return formatNumber(f)
	}
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return ""
}

// coerce turns strings that round-trip through a float parse into numbers.
func coerce(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if f, ok := parseFloat(strings.TrimSpace(s)); ok {
		return f
	}
	return v
}
