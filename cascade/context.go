package cascade

import (
	"fmt"

	"github.com/delaneyj/stylesignal/reactive"
	"github.com/google/uuid"
)

// nearestContainer is the key under which a container is also registered
// for queries that don't name one.
const nearestContainer = ""

// Interaction holds the per-component state that pseudo-classes and
// element-relative units read.
type Interaction struct {
	Active       *reactive.Signal[bool]
	Hover        *reactive.Signal[bool]
	Focus        *reactive.Signal[bool]
	LayoutWidth  *reactive.Signal[float64]
	LayoutHeight *reactive.Signal[float64]
}

func newInteraction(rt *reactive.Runtime) *Interaction {
	return &Interaction{
		Active:       reactive.NewSignal(rt, false),
		Hover:        reactive.NewSignal(rt, false),
		Focus:        reactive.NewSignal(rt, false),
		LayoutWidth:  reactive.NewSignal(rt, 0.0),
		LayoutHeight: reactive.NewSignal(rt, 0.0),
	}
}

func (in *Interaction) cleanup() {
	in.Active.Cleanup()
	in.Hover.Cleanup()
	in.Focus.Cleanup()
	in.LayoutWidth.Cleanup()
	in.LayoutHeight.Cleanup()
}

// Container is the runtime record of a component registered as a query
// container. Its state is the owning component's interaction.
type Container struct {
	Names       []string
	Interaction *Interaction
}

// Context is the reactive context of one component instance. Variables and
// containers not set locally are looked up through the parent chain and
// finally the environment's root scope, by reading their signals, so later
// upstream changes are observed.
type Context struct {
	id     uuid.UUID
	env    *Environment
	parent *Context

	variables  *table[string, *reactive.Signal[any]]
	containers *table[string, *reactive.Signal[*Container]]

	Interaction *Interaction

	disposed bool
}

// NewContext creates a root context.
func NewContext(env *Environment) *Context {
	return newContext(env, nil)
}

func newContext(env *Environment, parent *Context) *Context {
	rt := env.rt
	return &Context{
		id:     uuid.New(),
		env:    env,
		parent: parent,
		variables: newTable(func(string) *reactive.Signal[any] {
			return reactive.NewSignal[any](rt, nil, reactive.WithEquals(sameValue))
		}),
		containers: newTable(func(string) *reactive.Signal[*Container] {
			return reactive.NewSignal[*Container](rt, nil)
		}),
		Interaction: newInteraction(rt),
	}
}

// Child creates a context inheriting unset variables and containers from c.
func (c *Context) Child() *Context {
	return newContext(c.env, c)
}

func (c *Context) ID() string {
	return c.id.String()
}

func (c *Context) Parent() *Context {
	return c.parent
}

func (c *Context) Environment() *Environment {
	return c.env
}

func (c *Context) Runtime() *reactive.Runtime {
	return c.env.rt
}

// SetVariable sets a variable local to this context, nil unsets it.
func (c *Context) SetVariable(name string, v any) {
	if c.disposed {
		return
	}
	c.variables.getOrCreate(name).Set(v)
}

// Variable resolves name through this context, its ancestors and the root
// scope. Every signal on the way is read, tracked.
func (c *Context) Variable(name string) (any, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.disposed {
			continue
		}
		if v := ctx.variables.getOrCreate(name).Get(); v != nil {
			return v, true
		}
	}
	return c.env.variable(name)
}

// SetContainer registers ct under name for this context's descendants.
func (c *Context) SetContainer(name string, ct *Container) {
	if c.disposed {
		return
	}
	c.containers.getOrCreate(name).Set(ct)
}

// Container finds the container registered under name, or the nearest
// unnamed one when name is empty. It returns nil when none is mounted.
func (c *Context) Container(name string) *Container {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.disposed {
			continue
		}
		if ct := ctx.containers.getOrCreate(name).Get(); ct != nil {
			return ct
		}
	}
	return nil
}

// Layout forwards a layout measurement of the component.
func (c *Context) Layout(width, height float64) {
	if c.disposed {
		return
	}
	c.env.rt.Batch(func() {
		c.Interaction.LayoutWidth.Set(width)
		c.Interaction.LayoutHeight.Set(height)
	})
}

// Inherit creates the context for the children of a component styled with
// meta: it provides the component's variables and registers the component
// as a container when it declared one.
func (c *Context) Inherit(meta Metadata) (*Context, error) {
	if c.disposed {
		return nil, fmt.Errorf("%w: context %s was cleaned up", ErrInvalidConfig, c.ID())
	}

	child := c.Child()
	for name, v := range meta.Variables {
		child.SetVariable(name, v)
	}

	if meta.Container != nil {
		ct := &Container{
			Names:       meta.Container.Names,
			Interaction: c.Interaction,
		}
		seen := map[string]bool{}
		for _, name := range meta.Container.Names {
			if name == nearestContainer {
				child.Cleanup()
				return nil, fmt.Errorf("%w: empty container name", ErrInvalidConfig)
			}
			if seen[name] {
				child.Cleanup()
				return nil, fmt.Errorf("%w: container %q declared twice", ErrInvalidConfig, name)
			}
			seen[name] = true
			child.SetContainer(name, ct)
		}
		child.SetContainer(nearestContainer, ct)
	}

	return child, nil
}

// Cleanup releases every signal this context owns. Ancestors are left
// untouched.
func (c *Context) Cleanup() {
	if c.disposed {
		return
	}
	c.variables.each(func(_ string, s *reactive.Signal[any]) {
		s.Cleanup()
	})
	c.containers.each(func(_ string, s *reactive.Signal[*Container]) {
		s.Cleanup()
	})
	c.Interaction.cleanup()
	c.variables.reset()
	c.containers.reset()
	c.disposed = true
}
