package carbon

import "fmt"

// Property is a node property that is either a literal or bound to an
// expression. Bound properties are recomputed on every property pass.
type Property[T any] struct {
	value T
	expr  ExprID
}

// Literal returns a property with a fixed value.
func Literal[T any](v T) *Property[T] {
	return &Property[T]{value: v}
}

// Bound returns a property computed by expression id. initial is the value
// observed before the first property pass.
func Bound[T any](id ExprID, initial T) *Property[T] {
	return &Property[T]{value: initial, expr: id}
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	return p.value
}

// Set overwrites the current value. A bound property is overwritten again on
// the next property pass.
func (p *Property[T]) Set(v T) {
	p.value = v
}

// Expr returns the bound expression id, if any.
func (p *Property[T]) Expr() (ExprID, bool) {
	return p.expr, p.expr != ""
}

// Evaluate recomputes a bound property. Literal and nil properties are left
// untouched.
func (p *Property[T]) Evaluate(ctx *PropertyContext) error {
	if p == nil || p.expr == "" {
		return nil
	}
	v, err := ctx.compute(p.expr)
	if err != nil {
		return err
	}
	p.value = fromValue[T](v)
	return nil
}

func (p *Property[T]) clone() *Property[T] {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// fromValue unwraps v into T. A tag that does not fit T panics.
func fromValue[T any](v Value) T {
	var out T
	switch ptr := any(&out).(type) {
	case *Value:
		*ptr = v
	case *bool:
		*ptr = v.AsBool()
	case *int64:
		*ptr = v.AsInt()
	case *int:
		*ptr = int(v.AsInt())
	case *float64:
		*ptr = v.AsFloat()
	case *string:
		*ptr = v.AsString()
	case *Size:
		*ptr = v.AsSize()
	case *Transform:
		*ptr = v.AsTransform()
	case *Color:
		*ptr = v.AsColor()
	case *[]Value:
		*ptr = v.AsList()
	default:
		panic(fmt.Sprintf("carbon: unsupported property type %T", out))
	}
	return out
}
