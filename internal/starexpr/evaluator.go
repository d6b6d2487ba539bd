package starexpr

import (
	"errors"
	"fmt"
	"strings"

	carbon "github.com/grindlemire/go-carbon"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// FramesElapsed is the predeclared name holding the frame counter.
const FramesElapsed = "frames_elapsed"

// maxSteps bounds one evaluation. Expressions have no loops, so only a
// pathological comprehension gets near it.
const maxSteps = 1 << 20

type compiled struct {
	src  string
	kind carbon.ValueKind
}

// Evaluator is a carbon.Evaluator backed by Starlark source.
type Evaluator struct {
	opts  *syntax.FileOptions
	exprs map[carbon.ExprID]compiled
}

var _ carbon.Evaluator = (*Evaluator)(nil)

// New creates an empty Evaluator.
func New() *Evaluator {
	return &Evaluator{
		opts:  &syntax.FileOptions{},
		exprs: make(map[carbon.ExprID]compiled),
	}
}

// Add registers src under id. kind is the tag the bound property expects;
// numeric results are widened to it where that is unambiguous. Pass
// carbon.KindInvalid to accept any result. Syntax errors are reported here
// rather than on the first frame.
func (e *Evaluator) Add(id carbon.ExprID, src string, kind carbon.ValueKind) error {
	if _, exists := e.exprs[id]; exists {
		return fmt.Errorf("expression %q already defined", id)
	}
	if _, err := e.opts.ParseExpr(string(id), src, 0); err != nil {
		return fmt.Errorf("expression %q: %w", id, err)
	}
	e.exprs[id] = compiled{src: src, kind: kind}
	return nil
}

// Len returns the number of registered expressions.
func (e *Evaluator) Len() int {
	return len(e.exprs)
}

// Source returns the source registered under id.
func (e *Evaluator) Source(id carbon.ExprID) (string, bool) {
	c, ok := e.exprs[id]
	return c.src, ok
}

// Evaluate implements carbon.Evaluator. A name that is neither a builtin nor
// bound in scope yields carbon.ErrUnboundKey.
func (e *Evaluator) Evaluate(id carbon.ExprID, ctx *carbon.PropertyContext) (carbon.Value, error) {
	c, ok := e.exprs[id]
	if !ok {
		return carbon.Value{}, fmt.Errorf("%w: %q", carbon.ErrUnknownExpr, id)
	}

	env := make(starlark.StringDict, len(builtins)+8)
	for k, v := range builtins {
		env[k] = v
	}
	for k, v := range ctx.Bindings() {
		env[k] = toStarlark(v)
	}
	env[FramesElapsed] = starlark.MakeUint64(ctx.FramesElapsed())

	thread := &starlark.Thread{Name: string(id)}
	thread.SetMaxExecutionSteps(maxSteps)
	out, err := starlark.EvalOptions(e.opts, thread, string(id), c.src, env)
	if err != nil {
		return carbon.Value{}, unbound(err)
	}

	v, err := fromStarlark(out)
	if err != nil {
		return carbon.Value{}, err
	}
	return coerce(v, c.kind)
}

// unbound maps Starlark's "undefined: x" resolve error to ErrUnboundKey.
func unbound(err error) error {
	var list resolve.ErrorList
	if !errors.As(err, &list) {
		return err
	}
	for _, e := range list {
		if name, ok := strings.CutPrefix(e.Msg, "undefined: "); ok {
			return fmt.Errorf("%w: %q", carbon.ErrUnboundKey, name)
		}
	}
	return err
}
