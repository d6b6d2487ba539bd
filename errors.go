package carbon

import (
	"errors"
	"fmt"
)

var (
	// ErrUnboundKey is returned when an expression reads a scope key that no
	// active stack frame binds.
	ErrUnboundKey = errors.New("unbound scope key")

	// ErrUnknownExpr is returned when a property references an expression id
	// the evaluator does not know.
	ErrUnknownExpr = errors.New("unknown expression")
)

// EvalError describes a failed property evaluation.
type EvalError struct {
	Expr     ExprID
	Instance InstanceID
	Err      error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("instance %d: expression %q: %v", e.Instance, e.Expr, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }
