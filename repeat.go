package carbon

// RepeatProps are the instantiation arguments of a Repeat.
type RepeatProps struct {
	Source *Property[[]Value] // Required
}

// Repeat instantiates its declared children once per element of its source
// list. Every property pass throws the previous items away and builds new
// ones; patch diffing downstream keeps host traffic minimal.
type Repeat struct {
	Base
	source *Property[[]Value]
	items  []Node
}

// NewRepeat creates and registers a Repeat. The template is given with
// WithChildren. A nil source panics.
func NewRepeat(reg *Registry, props RepeatProps, opts ...NodeOption) *Repeat {
	if props.Source == nil {
		panic("carbon: Repeat requires a source")
	}
	r := &Repeat{source: props.Source}
	r.Init(reg, r, opts...)
	return r
}

// Kind implements Node.
func (r *Repeat) Kind() NodeKind { return NodeStructural }

// Children returns the items materialized by the last property pass.
func (r *Repeat) Children() []Node { return r.items }

// Template returns the declared children each item is cloned from.
func (r *Repeat) Template() []Node { return r.children }

// EvaluateProperties re-materializes one RepeatItem per source element.
// Items built while the Repeat itself is being unmounted leave with it.
func (r *Repeat) EvaluateProperties(ctx *PropertyContext) error {
	reg := ctx.Registry()
	detached := !reg.Contains(r.id) || reg.IsMarked(r.id)
	for _, item := range r.items {
		reg.deregisterTree(item, false)
	}
	r.items = nil

	if err := r.source.Evaluate(ctx); err != nil {
		return err
	}
	data := r.source.Get()
	if len(data) > 0 {
		r.items = make([]Node, len(data))
	}
	for i, datum := range data {
		r.items[i] = newRepeatItem(reg, i, datum, r.children)
		if detached {
			reg.deregisterTree(r.items[i], true)
		}
	}
	return r.Base.EvaluateProperties(ctx)
}

// Clone implements Node. Items are not cloned; the clone materializes its
// own on its first property pass.
func (r *Repeat) Clone(reg *Registry) Node {
	cp := &Repeat{source: r.source.clone()}
	r.CloneInto(reg, &cp.Base, cp)
	return cp
}

// RepeatItem is one materialized element of a Repeat. It binds index and
// datum for its subtree and contributes its index to IDPaths, so the same
// element position maps to the same host element across frames.
type RepeatItem struct {
	Base
	index int
	datum Value
}

var _ ScopeProvider = (*RepeatItem)(nil)

func newRepeatItem(reg *Registry, index int, datum Value, template []Node) *RepeatItem {
	item := &RepeatItem{index: index, datum: datum}
	item.children = cloneAll(reg, template)
	item.id = reg.MintID()
	reg.Register(item.id, item)
	return item
}

// Kind implements Node.
func (i *RepeatItem) Kind() NodeKind { return NodeStructural }

// Index returns the item's position in the source list.
func (i *RepeatItem) Index() int { return i.index }

// Datum returns the source element.
func (i *RepeatItem) Datum() Value { return i.datum }

// StackFrame binds index and datum. Adoptees of the enclosing frame pass
// through so a Slot inside a repeated template still resolves.
func (i *RepeatItem) StackFrame(ctx *PropertyContext) ([]Node, Scope) {
	var adoptees []Node
	if outer := ctx.Runtime().PeekStackFrame(); outer != nil {
		adoptees = outer.Adoptees()
	}
	return adoptees, Scope{
		ScopeIndex: Int(int64(i.index)),
		ScopeDatum: i.datum,
	}
}

// Clone implements Node.
func (i *RepeatItem) Clone(reg *Registry) Node {
	cp := &RepeatItem{index: i.index, datum: i.datum}
	i.CloneInto(reg, &cp.Base, cp)
	return cp
}

func (i *RepeatItem) pathSegment() uint64 { return uint64(i.index) }
