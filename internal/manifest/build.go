package manifest

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	carbon "github.com/grindlemire/go-carbon"
	"github.com/grindlemire/go-carbon/internal/starexpr"
	"gopkg.in/yaml.v3"
)

// Tree is an instantiated manifest, ready for carbon.NewEngine.
type Tree struct {
	Registry  *carbon.Registry
	Root      carbon.Node
	Evaluator *starexpr.Evaluator
	// Viewport is the manifest's root size, if it set one.
	Viewport *carbon.Bounds
}

// Build instantiates every node and compiles every expression. Expression
// syntax errors and bad literals are reported together.
func (m *Manifest) Build() (*Tree, error) {
	b := &builder{
		reg: carbon.NewRegistry(),
		ev:  starexpr.New(),
	}
	root := b.node(m.Root, "root")
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}

	t := &Tree{Registry: b.reg, Root: root, Evaluator: b.ev}
	if v := m.Viewport; v != nil {
		t.Viewport = &carbon.Bounds{Width: v.Width, Height: v.Height}
	}
	return t, nil
}

type builder struct {
	reg  *carbon.Registry
	ev   *starexpr.Evaluator
	errs []error
}

func (b *builder) fail(line int, format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...)))
}

func (b *builder) nodes(specs []*NodeSpec, where string) []carbon.Node {
	if len(specs) == 0 {
		return nil
	}
	out := make([]carbon.Node, 0, len(specs))
	for i, s := range specs {
		out = append(out, b.node(s, fmt.Sprintf("%s[%d]", where, i)))
	}
	return out
}

func (b *builder) node(n *NodeSpec, where string) carbon.Node {
	var opts []carbon.NodeOption
	if n.Transform != nil {
		opts = append(opts, carbon.WithTransform(prop(b, n.Transform, where+".transform", carbon.KindTransform, carbon.Identity(), literalTransform)))
	}
	children := b.nodes(n.Children, where+".children")
	if n.Kind != KindComponent && len(children) > 0 {
		opts = append(opts, carbon.WithChildren(children...))
	}

	switch n.Kind {
	case KindGroup:
		return carbon.NewGroup(b.reg, opts...)
	case KindFrame:
		return carbon.NewFrame(b.reg, carbon.FrameProps{
			Width:  b.size(n.Width, where+".width"),
			Height: b.size(n.Height, where+".height"),
		}, opts...)
	case KindRectangle:
		props := carbon.RectangleProps{
			Width:  b.size(n.Width, where+".width"),
			Height: b.size(n.Height, where+".height"),
			Fill:   b.color(n.Fill, where+".fill"),
		}
		if n.Stroke != nil {
			props.Stroke = b.color(n.Stroke, where+".stroke")
		}
		if n.StrokeWidth != nil {
			props.StrokeWidth = prop(b, n.StrokeWidth, where+".stroke_width", carbon.KindFloat, 1.0, literalFloat)
		}
		return carbon.NewRectangle(b.reg, props, opts...)
	case KindText:
		return carbon.NewText(b.reg, carbon.TextProps{
			Width:   b.size(n.Width, where+".width"),
			Height:  b.size(n.Height, where+".height"),
			Content: prop(b, n.Content, where+".content", carbon.KindString, "", literalString),
		}, opts...)
	case KindComponent:
		props := make(map[string]*carbon.Property[carbon.Value], len(n.Props))
		for _, name := range slices.Sorted(maps.Keys(n.Props)) {
			props[name] = prop(b, n.Props[name], where+".props."+name, carbon.KindInvalid, carbon.Value{}, literalValue)
		}
		return carbon.NewComponent(b.reg, carbon.ComponentProps{
			Props:    props,
			Template: children,
			Adoptees: b.nodes(n.Adoptees, where+".adoptees"),
		}, opts...)
	case KindSlot:
		return carbon.NewSlot(b.reg, prop(b, n.Index, where+".index", carbon.KindInt, int64(0), literalInt), opts...)
	case KindConditional:
		return carbon.NewConditional(b.reg, carbon.ConditionalProps{
			Condition: prop(b, n.Condition, where+".condition", carbon.KindBool, false, literalBool),
			Else:      b.nodes(n.Else, where+".else"),
		}, opts...)
	case KindRepeat:
		return carbon.NewRepeat(b.reg, carbon.RepeatProps{
			Source: prop(b, n.Source, where+".source", carbon.KindList, []carbon.Value(nil), literalList),
		}, opts...)
	default:
		// Validate rejects unknown kinds; keep the tree well formed anyway.
		b.fail(n.line, "%s: unknown kind %q", where, n.Kind)
		return carbon.NewGroup(b.reg, opts...)
	}
}

func (b *builder) size(p *Prop, id string) *carbon.Property[carbon.Size] {
	return prop(b, p, id, carbon.KindSize, carbon.Size{}, literalSize)
}

func (b *builder) color(p *Prop, id string) *carbon.Property[carbon.Color] {
	return prop(b, p, id, carbon.KindColor, carbon.Color{}, literalColor)
}

// prop turns p into a literal or bound property. The expression id is the
// property's location in the manifest, so evaluation errors point back at
// it.
func prop[T any](b *builder, p *Prop, id string, kind carbon.ValueKind, zero T, literal func(*yaml.Node) (T, error)) *carbon.Property[T] {
	if p.IsExpr() {
		if err := b.ev.Add(carbon.ExprID(id), p.Expr, kind); err != nil {
			b.fail(p.Line, "%v", err)
		}
		return carbon.Bound(carbon.ExprID(id), zero)
	}
	v, err := literal(p.Literal)
	if err != nil {
		b.fail(p.Line, "%s: %v", id, err)
		return carbon.Literal(zero)
	}
	return carbon.Literal(v)
}
