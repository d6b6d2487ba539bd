package carbon

import (
	"maps"
	"slices"
)

// ComponentProps are the instantiation arguments of a Component.
type ComponentProps struct {
	// Props are evaluated in the caller's scope and bound, by name, into the
	// scope the template sees.
	Props map[string]*Property[Value]
	// Template is the component's expanded body.
	Template []Node
	// Adoptees are the children written between the component's tags at the
	// call site. A Slot in the template places them.
	Adoptees []Node
}

// Component is an instance of a user-defined template. Its Children are the
// template, not the children given at the call site; those are adoptees,
// reachable only through a Slot.
type Component struct {
	Base
	props    map[string]*Property[Value]
	adoptees []Node
}

var _ ScopeProvider = (*Component)(nil)

// NewComponent creates and registers a Component.
func NewComponent(reg *Registry, props ComponentProps, opts ...NodeOption) *Component {
	c := &Component{
		props:    props.Props,
		adoptees: props.Adoptees,
	}
	opts = append([]NodeOption{WithChildren(props.Template...)}, opts...)
	c.Init(reg, c, opts...)
	return c
}

// Adoptees returns the call-site children.
func (c *Component) Adoptees() []Node { return c.adoptees }

// EvaluateProperties implements Node.
func (c *Component) EvaluateProperties(ctx *PropertyContext) error {
	for _, name := range slices.Sorted(maps.Keys(c.props)) {
		if err := c.props[name].Evaluate(ctx); err != nil {
			return err
		}
	}
	return c.Base.EvaluateProperties(ctx)
}

// StackFrame binds the evaluated props for the template.
func (c *Component) StackFrame(*PropertyContext) ([]Node, Scope) {
	scope := make(Scope, len(c.props))
	for name, p := range c.props {
		scope[name] = p.Get()
	}
	return c.adoptees, scope
}

// Clone implements Node.
func (c *Component) Clone(reg *Registry) Node {
	cp := &Component{
		props:    make(map[string]*Property[Value], len(c.props)),
		adoptees: cloneAll(reg, c.adoptees),
	}
	for name, p := range c.props {
		cp.props[name] = p.clone()
	}
	c.CloneInto(reg, &cp.Base, cp)
	return cp
}

// Slot places one adoptee of the innermost stack frame. It is structural.
type Slot struct {
	Base
	index   *Property[int64]
	current []Node
}

// NewSlot creates and registers a Slot showing the adoptee at index. A nil
// index panics.
func NewSlot(reg *Registry, index *Property[int64], opts ...NodeOption) *Slot {
	if index == nil {
		panic("carbon: Slot requires an index")
	}
	s := &Slot{index: index}
	s.Init(reg, s, opts...)
	return s
}

// Kind implements Node.
func (s *Slot) Kind() NodeKind { return NodeStructural }

// Children returns the adopted node, if any.
func (s *Slot) Children() []Node { return s.current }

// EvaluateProperties picks the adoptee. An index out of range shows nothing.
func (s *Slot) EvaluateProperties(ctx *PropertyContext) error {
	s.current = nil
	if err := s.index.Evaluate(ctx); err != nil {
		return err
	}
	frame := ctx.Runtime().PeekStackFrame()
	if frame == nil {
		return nil
	}
	i := s.index.Get()
	if adoptees := frame.Adoptees(); i >= 0 && i < int64(len(adoptees)) {
		s.current = adoptees[i : i+1]
	}
	return nil
}

// Clone implements Node.
func (s *Slot) Clone(reg *Registry) Node {
	cp := &Slot{index: s.index.clone()}
	s.CloneInto(reg, &cp.Base, cp)
	return cp
}
