package carbon

// PropertyContext is handed to a node while its properties are evaluated.
// It exposes the scope stack, the frame counter and the node's position in
// the tree.
type PropertyContext struct {
	registry  *Registry
	runtime   *Runtime
	evaluator Evaluator
	frame     uint64
	path      IDPath
	instance  InstanceID
}

// NewPropertyContext builds a context outside a traversal, for evaluating
// expressions against rt directly.
func NewPropertyContext(reg *Registry, rt *Runtime, frame uint64) *PropertyContext {
	return &PropertyContext{registry: reg, runtime: rt, frame: frame}
}

// Registry returns the engine's identity registry.
func (c *PropertyContext) Registry() *Registry { return c.registry }

// Runtime returns the engine's runtime stack.
func (c *PropertyContext) Runtime() *Runtime { return c.runtime }

// FramesElapsed returns the number of frames completed before this one.
func (c *PropertyContext) FramesElapsed() uint64 { return c.frame }

// Path returns the IDPath of the node being evaluated.
func (c *PropertyContext) Path() IDPath { return c.path }

// Instance returns the id of the node being evaluated.
func (c *PropertyContext) Instance() InstanceID { return c.instance }

// Lookup resolves a scope binding visible to the node.
func (c *PropertyContext) Lookup(key string) (Value, error) {
	return c.runtime.Lookup(key)
}

// Bindings returns every scope binding visible to the node.
func (c *PropertyContext) Bindings() Scope {
	return c.runtime.Bindings()
}

// compute evaluates expression id for the current node.
func (c *PropertyContext) compute(id ExprID) (Value, error) {
	if c.evaluator == nil {
		return Value{}, &EvalError{Expr: id, Instance: c.instance, Err: ErrUnknownExpr}
	}
	v, err := c.evaluator.Evaluate(id, c)
	if err != nil {
		return Value{}, &EvalError{Expr: id, Instance: c.instance, Err: err}
	}
	return v, nil
}

// DrawContext is handed to a node's draw hooks.
type DrawContext struct {
	Canvas        Canvas
	Bounds        Bounds    // Resolved size of the node
	Transform     Transform // Node transform composed with every ancestor's
	Path          IDPath
	Depth         int // Paint order within the frame, starting at 0
	FramesElapsed uint64
}
