package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/delaneyj/stylesignal/cascade"
	"github.com/delaneyj/stylesignal/cmd/cascade/templates"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/xlab/treeprint"
)

const (
	formatTable = "table"
	formatCSS   = "css"
	formatTree  = "tree"
)

// formatValue prints a materialized value. Maps print with sorted keys.
func formatValue(v any) string {
	switch v := v.(type) {
	case map[string]any:
		parts := make([]string, 0, len(v))
		for _, k := range slices.Sorted(maps.Keys(v)) {
			parts = append(parts, k+": "+formatValue(v[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []any:
		parts := make([]string, len(v))
		for i, x := range v {
			parts[i] = formatValue(x)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(v)
}

func declarations(values map[string]any) []templates.Declaration {
	out := make([]templates.Declaration, 0, len(values))
	for _, k := range slices.Sorted(maps.Keys(values)) {
		out = append(out, templates.Declaration{Property: k, Value: formatValue(values[k])})
	}
	return out
}

func variables(out *cascade.Flattened) map[string]any {
	return cascade.Style(out.Meta.Variables).Materialize()
}

// notes summarizes what the integration layer has to wire.
func notes(meta cascade.Metadata) []string {
	var out []string
	if meta.PseudoClasses.Hover {
		out = append(out, "hover")
	}
	if meta.PseudoClasses.Active {
		out = append(out, "active")
	}
	if meta.PseudoClasses.Focus {
		out = append(out, "focus")
	}
	if meta.Container != nil {
		out = append(out, "container "+strings.Join(meta.Container.Names, " "))
	}
	if meta.RequiresLayout {
		out = append(out, "requires layout")
	}
	return out
}

func renderTable(w io.Writer, out *cascade.Flattened) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Property", "Value"})
	for _, d := range declarations(out.Style.Materialize()) {
		t.AppendRow(table.Row{d.Property, d.Value})
	}
	if vars := declarations(variables(out)); len(vars) > 0 {
		t.AppendSeparator()
		for _, d := range vars {
			t.AppendRow(table.Row{d.Property, d.Value})
		}
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})
	if n := notes(out.Meta); len(n) > 0 {
		t.SetCaption(strings.Join(n, ", "))
	}
	fmt.Fprintln(w, t.Render())
}

func renderCSS(w io.Writer, selector string, out *cascade.Flattened) {
	templates.WriteStylesheet(w, templates.Sheet{
		Selector:   selector,
		Notes:      notes(out.Meta),
		Variables:  declarations(variables(out)),
		Properties: declarations(out.Style.Materialize()),
	})
}

func addValue(tree treeprint.Tree, name string, v any) {
	m, ok := v.(map[string]any)
	if !ok {
		tree.AddNode(name + ": " + formatValue(v))
		return
	}
	branch := tree.AddBranch(name)
	for _, k := range slices.Sorted(maps.Keys(m)) {
		addValue(branch, k, m[k])
	}
}

func renderTree(w io.Writer, name string, out *cascade.Flattened) {
	tree := treeprint.New()
	tree.SetValue(name)

	style := out.Style.Materialize()
	for _, k := range slices.Sorted(maps.Keys(style)) {
		addValue(tree, k, style[k])
	}
	if vars := variables(out); len(vars) > 0 {
		addValue(tree, "variables", vars)
	}
	for _, n := range notes(out.Meta) {
		tree.AddNode(n)
	}
	fmt.Fprint(w, tree.String())
}

func renderExplain(w io.Writer, name string, traces []cascade.Trace) {
	tree := treeprint.New()
	tree.SetValue(name)
	for _, tr := range traces {
		f := tr.Fragment
		branch := tree.AddBranch(f.ID + " " + f.Specificity.String())
		if !tr.Applied {
			branch.AddNode("skipped: " + tr.Failed)
			continue
		}
		props := make([]string, len(f.Properties))
		for i, d := range f.Properties {
			props[i] = d.Property
		}
		branch.AddNode("applied: " + strings.Join(props, ", "))
	}
	fmt.Fprint(w, tree.String())
}
