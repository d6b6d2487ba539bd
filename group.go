package carbon

// Group gathers children under a shared transform. It has no size of its
// own, so its children resolve against the group's parent bounds.
type Group struct {
	Base
}

// NewGroup creates and registers a Group.
func NewGroup(reg *Registry, opts ...NodeOption) *Group {
	g := &Group{}
	g.Init(reg, g, opts...)
	return g
}

// Clone implements Node.
func (g *Group) Clone(reg *Registry) Node {
	cp := &Group{}
	g.CloneInto(reg, &cp.Base, cp)
	return cp
}
