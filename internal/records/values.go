package records

import (
	"fmt"

	"github.com/delaneyj/stylesignal/cascade"
	"gopkg.in/yaml.v3"
)

// Value shapes besides plain scalars:
//
//	{fn: vw, args: [50]}              runtime-value expression
//	{group: {width: 1, height: 2}}    composite property
//	{transform: [{rotate: 45deg}]}    transform list
const (
	keyFunction  = "fn"
	keyArgs      = "args"
	keyGroup     = "group"
	keyTransform = "transform"
)

// declarations reads a mapping in document order.
func declarations(n *yaml.Node) ([]cascade.Declaration, error) {
	if n.IsZero() {
		return nil, nil
	}
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", n.Line)
	}

	out := make([]cascade.Declaration, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if key == "" {
			return nil, fmt.Errorf("line %d: empty property name", n.Content[i].Line)
		}
		v, err := value(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, cascade.Declaration{Property: key, Value: v})
	}
	return out, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func value(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := value(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.MappingNode:
		fields := map[string]*yaml.Node{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			fields[n.Content[i].Value] = n.Content[i+1]
		}
		switch {
		case fields[keyFunction] != nil:
			return expression(n, fields)
		case fields[keyGroup] != nil && len(fields) == 1:
			decls, err := declarations(fields[keyGroup])
			if err != nil {
				return nil, err
			}
			return cascade.Group(decls), nil
		case fields[keyTransform] != nil && len(fields) == 1:
			return transform(fields[keyTransform])
		}
		return nil, fmt.Errorf("line %d: unknown value shape", n.Line)
	}
	return nil, fmt.Errorf("line %d: unsupported node", n.Line)
}

func expression(n *yaml.Node, fields map[string]*yaml.Node) (*cascade.Expression, error) {
	for k := range fields {
		if k != keyFunction && k != keyArgs {
			return nil, fmt.Errorf("line %d: unexpected %q in expression", n.Line, k)
		}
	}

	var name string
	if err := fields[keyFunction].Decode(&name); err != nil || name == "" {
		return nil, fmt.Errorf("line %d: expression needs a function name", n.Line)
	}

	e := &cascade.Expression{Name: name}
	if args := fields[keyArgs]; args != nil {
		args = resolveAlias(args)
		if args.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: args must be a list", args.Line)
		}
		for _, c := range args.Content {
			v, err := value(c)
			if err != nil {
				return nil, err
			}
			e.Args = append(e.Args, v)
		}
	}
	return e, nil
}

func transform(n *yaml.Node) (cascade.TransformList, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: transform must be a list", n.Line)
	}
	out := cascade.TransformList{}
	for _, c := range n.Content {
		decls, err := declarations(c)
		if err != nil {
			return nil, err
		}
		if len(decls) != 1 {
			return nil, fmt.Errorf("line %d: transform operations have exactly one key", c.Line)
		}
		out = append(out, decls[0])
	}
	return out, nil
}
