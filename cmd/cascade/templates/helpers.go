package templates

import (
	"strings"
	"unicode"
)

// Declaration is one rendered line of a stylesheet.
type Declaration struct {
	Property string
	Value    string
}

// Sheet is a flattened style rendered as a single rule.
type Sheet struct {
	Selector   string
	Notes      []string
	Variables  []Declaration
	Properties []Declaration
}

// Kebab turns a camelCase property name into its CSS spelling. Custom
// properties are kept as they are.
func Kebab(property string) string {
	if strings.HasPrefix(property, "--") {
		return property
	}
	var sb strings.Builder
	for i, r := range property {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
