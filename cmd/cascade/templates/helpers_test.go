package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKebab(t *testing.T) {
	assert.Equal(t, "background-color", Kebab("backgroundColor"))
	assert.Equal(t, "padding-horizontal", Kebab("paddingHorizontal"))
	assert.Equal(t, "color", Kebab("color"))
	assert.Equal(t, "--accentColor", Kebab("--accentColor"))
}

func TestStylesheet(t *testing.T) {
	sheet := Sheet{
		Selector:   ".card",
		Notes:      []string{"hover", "requires layout"},
		Variables:  []Declaration{{Property: "--gap", Value: "8"}},
		Properties: []Declaration{{Property: "marginTop", Value: "4"}},
	}
	want := "/* hover, requires layout */\n.card {\n  --gap: 8;\n  margin-top: 4;\n}\n"
	assert.Equal(t, want, Stylesheet(sheet))

	assert.Equal(t, ".empty {\n}\n", Stylesheet(Sheet{Selector: ".empty"}))
}
