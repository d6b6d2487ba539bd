package starexpr

import (
	"fmt"
	"math"

	carbon "github.com/grindlemire/go-carbon"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// sizeValue is a carbon.Size inside Starlark.
type sizeValue struct{ v carbon.Size }

var _ starlark.Value = sizeValue{}

func (s sizeValue) String() string        { return s.v.String() }
func (s sizeValue) Type() string          { return "size" }
func (s sizeValue) Freeze()               {}
func (s sizeValue) Truth() starlark.Bool  { return s.v.Amount != 0 }
func (s sizeValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable: size") }

// transformValue is a carbon.Transform inside Starlark.
type transformValue struct{ v carbon.Transform }

var (
	_ starlark.Value     = transformValue{}
	_ starlark.HasBinary = transformValue{}
)

func (t transformValue) String() string        { return fmt.Sprintf("transform%v", [6]float64(t.v)) }
func (t transformValue) Type() string          { return "transform" }
func (t transformValue) Freeze()               {}
func (t transformValue) Truth() starlark.Bool  { return true }
func (t transformValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable: transform") }

// Binary composes transforms: a * b applies b first.
func (t transformValue) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	o, ok := y.(transformValue)
	if op != syntax.STAR || !ok {
		return nil, nil
	}
	if side == starlark.Left {
		return transformValue{t.v.Mul(o.v)}, nil
	}
	return transformValue{o.v.Mul(t.v)}, nil
}

// colorValue is a carbon.Color inside Starlark.
type colorValue struct{ v carbon.Color }

var _ starlark.Value = colorValue{}

func (c colorValue) String() string       { return c.v.String() }
func (c colorValue) Type() string         { return "color" }
func (c colorValue) Freeze()              {}
func (c colorValue) Truth() starlark.Bool { return true }
func (c colorValue) Hash() (uint32, error) {
	return uint32(c.v.R)<<24 | uint32(c.v.G)<<16 | uint32(c.v.B)<<8 | uint32(c.v.A), nil
}

// builtins are the constructors available to every expression.
var builtins = starlark.StringDict{
	"px":        starlark.NewBuiltin("px", px),
	"percent":   starlark.NewBuiltin("percent", percent),
	"translate": starlark.NewBuiltin("translate", translate),
	"rotate":    starlark.NewBuiltin("rotate", rotate),
	"scale":     starlark.NewBuiltin("scale", scale),
	"rgba":      starlark.NewBuiltin("rgba", rgba),
	"hex":       starlark.NewBuiltin("hex", hexColor),
}

func number(b *starlark.Builtin, name string, v starlark.Value) (float64, error) {
	f, ok := starlark.AsFloat(v)
	if !ok {
		return 0, fmt.Errorf("%s: %s must be a number, got %s", b.Name(), name, v.Type())
	}
	return f, nil
}

func px(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	f, err := number(b, "n", n)
	if err != nil {
		return nil, err
	}
	return sizeValue{carbon.Px(f)}, nil
}

func percent(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var p starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &p); err != nil {
		return nil, err
	}
	f, err := number(b, "p", p)
	if err != nil {
		return nil, err
	}
	return sizeValue{carbon.Percent(f)}, nil
}

func translate(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "x", &x, "y", &y); err != nil {
		return nil, err
	}
	fx, err := number(b, "x", x)
	if err != nil {
		return nil, err
	}
	fy, err := number(b, "y", y)
	if err != nil {
		return nil, err
	}
	return transformValue{carbon.Translate(fx, fy)}, nil
}

func rotate(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var deg starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "degrees", &deg); err != nil {
		return nil, err
	}
	d, err := number(b, "degrees", deg)
	if err != nil {
		return nil, err
	}
	return transformValue{carbon.Rotate(d * math.Pi / 180)}, nil
}

func scale(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var sx, sy starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "sx", &sx, "sy?", &sy); err != nil {
		return nil, err
	}
	fx, err := number(b, "sx", sx)
	if err != nil {
		return nil, err
	}
	fy := fx
	if sy != nil {
		if fy, err = number(b, "sy", sy); err != nil {
			return nil, err
		}
	}
	return transformValue{carbon.Scale(fx, fy)}, nil
}

func rgba(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var r, g, bl int
	a := 255
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "r", &r, "g", &g, "b", &bl, "a?", &a); err != nil {
		return nil, err
	}
	for _, c := range []int{r, g, bl, a} {
		if c < 0 || c > 255 {
			return nil, fmt.Errorf("%s: component %d out of range [0, 255]", b.Name(), c)
		}
	}
	return colorValue{carbon.RGBA(uint8(r), uint8(g), uint8(bl), uint8(a))}, nil
}

func hexColor(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	c, err := carbon.HexColor(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return colorValue{c}, nil
}
