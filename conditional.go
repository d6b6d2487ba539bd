package carbon

// ConditionalProps are the instantiation arguments of a Conditional.
type ConditionalProps struct {
	Condition *Property[bool] // Required
	Else      []Node
}

// Conditional shows its declared children while its condition holds and its
// else children otherwise. It is structural: only the selected branch is
// drawn.
//
// A branch switch takes two frames. The frame that observes the new
// condition unregisters the displayed branch and marks it for unmount, so the
// rest of that frame still sees a consistent selection while nothing from the
// old branch is drawn. The next frame applies the buffered selection before
// anything else is evaluated.
type Conditional struct {
	Base
	condition    *Property[bool]
	elseChildren []Node
	state        *branchState
	current      []Node
}

// branchState is shared by a Conditional and every clone of it. Entries are
// keyed by IDPath so a Conditional inside a Repeat keeps one selection per
// item. Paths that were not visited in a completed property pass are pruned.
type branchState struct {
	shown   map[string]bool
	pending map[string]bool
	visited map[string]uint64
}

func newBranchState() *branchState {
	return &branchState{
		shown:   make(map[string]bool),
		pending: make(map[string]bool),
		visited: make(map[string]uint64),
	}
}

// prune drops every path not visited during frame and reports whether any
// path is left.
func (s *branchState) prune(frame uint64) bool {
	for key, seen := range s.visited {
		if seen == frame {
			continue
		}
		delete(s.visited, key)
		delete(s.shown, key)
		delete(s.pending, key)
	}
	return len(s.visited) > 0
}

// NewConditional creates and registers a Conditional. The then branch is
// given with WithChildren. A nil condition panics.
func NewConditional(reg *Registry, props ConditionalProps, opts ...NodeOption) *Conditional {
	if props.Condition == nil {
		panic("carbon: Conditional requires a condition")
	}
	c := &Conditional{
		condition:    props.Condition,
		elseChildren: props.Else,
		state:        newBranchState(),
	}
	c.Init(reg, c, opts...)
	return c
}

// Kind implements Node.
func (c *Conditional) Kind() NodeKind { return NodeStructural }

// Children returns the branch selected for the current visit.
func (c *Conditional) Children() []Node { return c.current }

// Then returns the children shown while the condition holds.
func (c *Conditional) Then() []Node { return c.children }

// Else returns the children shown while the condition does not hold.
func (c *Conditional) Else() []Node { return c.elseChildren }

// Showing reports which branch is displayed at path.
func (c *Conditional) Showing(path IDPath) (branch, ok bool) {
	branch, ok = c.state.shown[path.Key()]
	return branch, ok
}

func (c *Conditional) branch(v bool) []Node {
	if v {
		return c.children
	}
	return c.elseChildren
}

// EvaluateProperties applies last frame's buffered switch, re-evaluates the
// condition and buffers a new switch if it changed.
//
// A Conditional that is itself being unmounted only keeps its current
// selection: it neither applies nor buffers a switch.
func (c *Conditional) EvaluateProperties(ctx *PropertyContext) error {
	reg := ctx.Registry()
	key := ctx.Path().Key()
	detached := !reg.Contains(c.id) || reg.IsMarked(c.id)

	c.state.visited[key] = ctx.FramesElapsed()
	ctx.Runtime().trackBranches(c.state)

	shown, seen := c.state.shown[key]
	if next, ok := c.state.pending[key]; ok && !detached {
		delete(c.state.pending, key)
		shown = next
		c.state.shown[key] = next
		for _, n := range c.branch(next) {
			reg.registerTree(n)
		}
	}

	if err := c.condition.Evaluate(ctx); err != nil {
		return err
	}
	v := c.condition.Get()

	switch {
	case !seen:
		// First visit: nothing is on screen yet, so adopt the value at once.
		shown = v
		c.state.shown[key] = v
	case detached:
	case v != shown:
		for _, n := range c.branch(shown) {
			reg.deregisterTree(n, true)
		}
		c.state.pending[key] = v
		ctx.Runtime().RequestFrame()
	}

	if !detached {
		// The hidden branch may have been registered by a clone or by an
		// enclosing branch coming back.
		for _, n := range c.branch(!shown) {
			reg.deregisterTree(n, false)
		}
	}

	c.current = c.branch(shown)
	return c.Base.EvaluateProperties(ctx)
}

// Clone implements Node. Clones share branch state with c.
func (c *Conditional) Clone(reg *Registry) Node {
	cp := &Conditional{
		condition:    c.condition.clone(),
		elseChildren: cloneAll(reg, c.elseChildren),
		state:        c.state,
	}
	c.CloneInto(reg, &cp.Base, cp)
	return cp
}
