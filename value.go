package carbon

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags the dynamic type held by a Value.
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSize
	KindTransform
	KindColor
	KindList
	KindAny
)

var valueKindNames = [...]string{
	KindInvalid:   "invalid",
	KindBool:      "bool",
	KindInt:       "int",
	KindFloat:     "float",
	KindString:    "string",
	KindSize:      "size",
	KindTransform: "transform",
	KindColor:     "color",
	KindList:      "list",
	KindAny:       "any",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a tagged dynamic value. Scope bindings and expression results are
// Values because their concrete types are only known to the compiled template,
// not to the engine.
//
// Typed accessors panic when the tag does not match: a mismatch means the
// compiled template and the engine disagree, which is not recoverable.
type Value struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
	size Size
	xf   Transform
	c    Color
	list []Value
	any  any
}

// Bool wraps a bool.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int wraps an integer.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float wraps a float.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String wraps a string.
func String(v string) Value { return Value{kind: KindString, s: v} }

// SizeValue wraps a Size.
func SizeValue(v Size) Value { return Value{kind: KindSize, size: v} }

// TransformValue wraps a Transform.
func TransformValue(v Transform) Value { return Value{kind: KindTransform, xf: v} }

// ColorValue wraps a Color.
func ColorValue(v Color) Value { return Value{kind: KindColor, c: v} }

// List wraps a list of values.
func List(v ...Value) Value { return Value{kind: KindList, list: v} }

// Any wraps an arbitrary Go value, typically a repeat datum.
func Any(v any) Value { return Value{kind: KindAny, any: v} }

// Kind returns the value's tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsValid reports whether v holds anything.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

func (v Value) mustBe(k ValueKind) {
	if v.kind != k {
		panic(fmt.Sprintf("carbon: value is %s, not %s", v.kind, k))
	}
}

// AsBool returns the bool held by v.
func (v Value) AsBool() bool { v.mustBe(KindBool); return v.b }

// AsInt returns the integer held by v.
func (v Value) AsInt() int64 { v.mustBe(KindInt); return v.i }

// AsFloat returns the float held by v. Integers widen.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	v.mustBe(KindFloat)
	return v.f
}

// AsString returns the string held by v.
func (v Value) AsString() string { v.mustBe(KindString); return v.s }

// AsSize returns the size held by v.
func (v Value) AsSize() Size { v.mustBe(KindSize); return v.size }

// AsTransform returns the transform held by v.
func (v Value) AsTransform() Transform { v.mustBe(KindTransform); return v.xf }

// AsColor returns the color held by v.
func (v Value) AsColor() Color { v.mustBe(KindColor); return v.c }

// AsList returns the elements held by v.
func (v Value) AsList() []Value { v.mustBe(KindList); return v.list }

// AsAny returns the Go value held by v.
func (v Value) AsAny() any { v.mustBe(KindAny); return v.any }

// Interface returns v's payload as a plain Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindSize:
		return v.size
	case KindTransform:
		return v.xf
	case KindColor:
		return v.c
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	case KindAny:
		return v.any
	default:
		return nil
	}
}

// Equal reports whether a and b hold the same tag and payload.
// KindAny payloads compare with ==, so they must be comparable.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInvalid:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindSize:
		return v.size == other.size
	case KindTransform:
		return v.xf == other.xf
	case KindColor:
		return v.c == other.c
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	default:
		return v.any == other.any
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInvalid:
		return "<invalid>"
	case KindString:
		return strconv.Quote(v.s)
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(v.Interface())
	}
}
