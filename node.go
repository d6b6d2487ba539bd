package carbon

import "fmt"

// NodeKind separates nodes that draw from nodes that only shape the tree.
type NodeKind uint8

const (
	// NodeDrawable nodes resolve a size and transform and run draw hooks.
	NodeDrawable NodeKind = iota
	// NodeStructural nodes are flattened away: their children are spliced
	// into the parent's draw list and their own draw hooks never run.
	NodeStructural
)

func (k NodeKind) String() string {
	switch k {
	case NodeDrawable:
		return "drawable"
	case NodeStructural:
		return "structural"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// Node is implemented by every render node variant.
// Custom nodes embed Base and override what they need.
type Node interface {
	InstanceID() InstanceID
	Kind() NodeKind

	// EvaluateProperties recomputes the node's own properties for this frame.
	// Control-flow nodes also restructure their children here.
	EvaluateProperties(ctx *PropertyContext) error

	// PostEvaluateProperties runs after every descendant has been evaluated.
	// It is the last time the node is visited in the property pass.
	PostEvaluateProperties(ctx *PropertyContext)

	// Children returns the logical children: declared children for
	// containers, the expanded template for a Component, the selected branch
	// for a Conditional, the materialized items for a Repeat.
	Children() []Node

	// Size returns the node's unresolved size, or false if it has none.
	Size() (Size2D, bool)
	Transform() Transform
	Handlers() *Handlers

	PreDraw(ctx *DrawContext)
	Draw(ctx *DrawContext)
	PostDraw(ctx *DrawContext)

	// Clone instantiates a copy of the node and its owned subtree with fresh
	// instance ids registered in reg.
	Clone(reg *Registry) Node
}

// ScopeProvider is implemented by nodes that introduce a stack frame for
// their descendants. The engine pushes the frame after EvaluateProperties and
// pops it after PostEvaluateProperties.
type ScopeProvider interface {
	StackFrame(ctx *PropertyContext) (adoptees []Node, scope Scope)
}

// Clipper is implemented by nodes that clip their subtree.
type Clipper interface {
	IsClipping() bool
}

// ShouldFlatten reports whether n is a structural pass-through.
func ShouldFlatten(n Node) bool {
	return n.Kind() == NodeStructural
}

// ComputeSizeWithinBounds resolves n's size against its parent's bounds.
// A node without a size fills its parent.
func ComputeSizeWithinBounds(n Node, parent Bounds) Bounds {
	size, ok := n.Size()
	if !ok {
		return parent
	}
	return size.Within(parent)
}

// Base carries what every node shares: identity, transform, children and
// event handlers. Its hooks are no-ops.
type Base struct {
	id        InstanceID
	origin    InstanceID // template instance this was cloned from, 0 if none
	transform *Property[Transform]
	children  []Node
	handlers  *Handlers
}

// NodeOption configures the shared parts of a node.
type NodeOption func(*Base)

// WithTransform sets the node's transform property.
func WithTransform(p *Property[Transform]) NodeOption {
	return func(b *Base) {
		b.transform = p
	}
}

// WithChildren sets the node's declared children.
func WithChildren(children ...Node) NodeOption {
	return func(b *Base) {
		b.children = append(b.children, children...)
	}
}

// WithHandlers attaches event handlers.
func WithHandlers(h *Handlers) NodeOption {
	return func(b *Base) {
		b.handlers = h
	}
}

// Init applies opts, mints an id for self and registers it. Custom nodes
// call it from their constructor.
func (b *Base) Init(reg *Registry, self Node, opts ...NodeOption) {
	if reg == nil {
		panic("carbon: nil registry")
	}
	for _, opt := range opts {
		opt(b)
	}
	b.id = reg.MintID()
	reg.Register(b.id, self)
}

// CloneInto copies b into dst for self, cloning owned children and
// registering self under a fresh id. Custom nodes call it from Clone.
func (b *Base) CloneInto(reg *Registry, dst *Base, self Node) {
	*dst = *b
	dst.origin = b.pathID()
	dst.transform = b.transform.clone()
	dst.children = cloneAll(reg, b.children)
	dst.id = reg.MintID()
	reg.Register(dst.id, self)
}

func (b *Base) InstanceID() InstanceID { return b.id }
func (b *Base) Kind() NodeKind         { return NodeDrawable }
func (b *Base) Children() []Node       { return b.children }
func (b *Base) Size() (Size2D, bool)   { return Size2D{}, false }
func (b *Base) Handlers() *Handlers    { return b.handlers }

// EvaluateProperties evaluates the transform.
func (b *Base) EvaluateProperties(ctx *PropertyContext) error {
	return b.transform.Evaluate(ctx)
}

func (b *Base) PostEvaluateProperties(*PropertyContext) {}

// Transform returns the node's own transform, identity when unset.
func (b *Base) Transform() Transform {
	if b.transform == nil {
		return Identity()
	}
	return b.transform.Get()
}

func (b *Base) PreDraw(*DrawContext)  {}
func (b *Base) Draw(*DrawContext)     {}
func (b *Base) PostDraw(*DrawContext) {}

// OriginID returns the id of the template instance this node was cloned
// from, or its own id when it is not a clone.
func (b *Base) OriginID() InstanceID { return b.pathID() }

func (b *Base) pathID() InstanceID {
	if b.origin != 0 {
		return b.origin
	}
	return b.id
}

func (b *Base) pathSegment() uint64 { return uint64(b.pathID()) }

func cloneAll(reg *Registry, nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone(reg)
	}
	return out
}

// ownedChildren returns every node n owns, including children that are not
// currently rendered (an unselected branch, a repeat template).
func ownedChildren(n Node) []Node {
	switch n := n.(type) {
	case *Conditional:
		return concatNodes(n.children, n.elseChildren)
	case *Repeat:
		return concatNodes(n.children, n.items)
	case *Component:
		return concatNodes(n.children, n.adoptees)
	case *Slot:
		return nil
	default:
		return n.Children()
	}
}

// walkOwned calls fn for n and every node it owns, pre-order.
func walkOwned(n Node, fn func(Node)) {
	fn(n)
	for _, child := range ownedChildren(n) {
		walkOwned(child, fn)
	}
}

func concatNodes(a, b []Node) []Node {
	out := make([]Node, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
