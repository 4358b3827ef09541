package cascade

import (
	"log/slog"
)

// Options tune one flatten pass.
type Options struct {
	// Static reference dimensions for cw/ch. Zero means the component's
	// measured layout is used and the result requires layout.
	Width  float64
	Height float64
	// Base for em units when no fontSize is declared, defaults to rem.
	FontSize float64

	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Flatten merges sources into one style in ascending specificity order.
//
// Every signal read on the way (conditions, variables, ambient values) is
// tracked, so calling Flatten inside a Computation re-derives the result
// whenever one of them changes. Lazy values are left unevaluated.
func Flatten(ctx *Context, opts Options, sources ...Source) *Flattened {
	log := opts.logger()
	list := normalize(sources)

	result := &Flattened{Style: Style{}}
	meta := &result.Meta

	active := make([]entry, 0, len(list))
	for _, e := range list {
		if e.flat != nil {
			meta.PseudoClasses = meta.PseudoClasses.union(e.flat.Meta.PseudoClasses)
			active = append(active, e)
			continue
		}

		f := e.fragment
		if f.Conditions != nil && f.Conditions.PseudoClasses != nil {
			meta.PseudoClasses = meta.PseudoClasses.union(*f.Conditions.PseudoClasses)
		}
		if reason, ok := matches(ctx, f.Conditions); !ok {
			log.Debug("fragment skipped", "fragment", f.ID, "context", ctx.ID(), "failed", reason)
			continue
		}
		active = append(active, e)
	}

	r := newResolver(ctx, &opts, result.Style, meta)

	// Metadata is merged in cascade order. The first fragment to set a key
	// keeps it, later ones only fill gaps.
	for _, e := range active {
		if e.flat != nil {
			fm := e.flat.Meta
			for name, v := range fm.Variables {
				if _, ok := r.declared[name]; !ok {
					r.declared[name] = v
				}
			}
			mergeMetadata(meta, fm.Animations, fm.Transition, fm.Container, fm.RequiresLayout)
			continue
		}

		f := e.fragment
		for name, v := range ownVariables(f) {
			if _, ok := r.declared[name]; !ok {
				r.declared[name] = v
			}
		}
		mergeMetadata(meta, f.Animations, f.Transition, f.Container, f.RequiresLayout)
	}
	if meta.Container != nil {
		meta.RequiresLayout = true
	}

	for _, e := range active {
		if Compare(e.specificity(), result.Specificity) > 0 {
			result.Specificity = e.specificity()
		}

		if e.flat != nil {
			for k, v := range e.flat.Style {
				result.Style[k] = v
			}
			continue
		}

		r.enter(ownVariables(e.fragment))
		for _, d := range e.fragment.Properties {
			r.property = d.Property
			v, ok := r.resolve(d.Value)
			if !ok {
				log.Debug("declaration omitted", "fragment", e.fragment.ID, "property", d.Property)
				continue
			}
			result.Style[d.Property] = v
		}
	}
	r.property = ""
	r.enter(nil)

	if len(r.declared) > 0 {
		meta.Variables = make(map[string]Value, len(r.declared))
		for name := range r.declared {
			if v, ok := r.lookup(name); ok {
				meta.Variables[name] = v
			}
		}
	}

	return result
}

// ownVariables indexes the variables a fragment declares. Within one
// fragment the last declaration of a name wins.
func ownVariables(f *Fragment) map[string]any {
	if len(f.Variables) == 0 {
		return nil
	}
	vars := make(map[string]any, len(f.Variables))
	for _, d := range f.Variables {
		vars[d.Property] = d.Value
	}
	return vars
}

// matches runs the media, pseudo-class and container evaluators in order
// and names the first one that failed.
func matches(ctx *Context, c *Conditions) (string, bool) {
	if c == nil {
		return "", true
	}
	if !testMedia(ctx.env, c.Media) {
		return "media", false
	}
	if !testPseudoClasses(ctx.Interaction, c.PseudoClasses) {
		return "pseudoClasses", false
	}
	if !testContainers(ctx, c.Container) {
		return "container", false
	}
	return "", true
}

func mergeMetadata(meta *Metadata, animations, transition Attributes, container *ContainerDescriptor, requiresLayout bool) {
	meta.Animations = mergeAttributes(meta.Animations, animations)
	meta.Transition = mergeAttributes(meta.Transition, transition)
	if meta.Container == nil && container != nil {
		meta.Container = container
	}
	meta.RequiresLayout = meta.RequiresLayout || requiresLayout
}

// mergeAttributes fills keys of dst not set yet.
func mergeAttributes(dst, src Attributes) Attributes {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(Attributes, len(src))
	}
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
	return dst
}

// Trace tells whether a fragment would take part in a flatten pass.
type Trace struct {
	Fragment *Fragment
	Applied  bool
	// First failed evaluator: media, pseudoClasses or container
	Failed string
}

// Explain evaluates the conditions of every fragment in sources, in
// cascade order. Previously flattened inputs are left out.
func Explain(ctx *Context, sources ...Source) []Trace {
	list := normalize(sources)
	traces := make([]Trace, 0, len(list))
	for _, e := range list {
		if e.fragment == nil {
			continue
		}
		reason, ok := matches(ctx, e.fragment.Conditions)
		traces = append(traces, Trace{Fragment: e.fragment, Applied: ok, Failed: reason})
	}
	return traces
}
