package carbon

import "fmt"

// ExprID is the opaque identifier a compiled template assigns to one
// expression-bound property.
type ExprID string

// Evaluator computes expression-bound property values. The result's tag must
// match the type of the property the expression is bound to.
type Evaluator interface {
	Evaluate(id ExprID, ctx *PropertyContext) (Value, error)
}

// ExprFunc is a compiled expression.
type ExprFunc func(ctx *PropertyContext) (Value, error)

// ExprTable is an Evaluator backed by Go functions, the form a template
// compiler emits when it generates code directly.
type ExprTable map[ExprID]ExprFunc

// Evaluate calls the function registered for id.
func (t ExprTable) Evaluate(id ExprID, ctx *PropertyContext) (Value, error) {
	fn, ok := t[id]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownExpr, id)
	}
	return fn(ctx)
}

var _ Evaluator = ExprTable(nil)
