package carbon

// TextProps are the instantiation arguments of a Text.
type TextProps struct {
	Width, Height *Property[Size]   // Required
	Content       *Property[string] // Required
}

// Text is a block of text laid out by the host. The engine only tracks its
// geometry and content; hosts receive it as a native "Text" element.
type Text struct {
	Base
	width, height *Property[Size]
	content       *Property[string]
}

var _ NativeNode = (*Text)(nil)

// NewText creates and registers a Text. Missing arguments panic.
func NewText(reg *Registry, props TextProps, opts ...NodeOption) *Text {
	if props.Width == nil || props.Height == nil {
		panic("carbon: Text requires width and height")
	}
	if props.Content == nil {
		panic("carbon: Text requires content")
	}
	t := &Text{width: props.Width, height: props.Height, content: props.Content}
	t.Init(reg, t, opts...)
	return t
}

// EvaluateProperties implements Node.
func (t *Text) EvaluateProperties(ctx *PropertyContext) error {
	for _, err := range []error{
		t.width.Evaluate(ctx),
		t.height.Evaluate(ctx),
		t.content.Evaluate(ctx),
	} {
		if err != nil {
			return err
		}
	}
	return t.Base.EvaluateProperties(ctx)
}

// Size implements Node.
func (t *Text) Size() (Size2D, bool) {
	return Size2D{Width: t.width.Get(), Height: t.height.Get()}, true
}

// Content returns the current text.
func (t *Text) Content() string { return t.content.Get() }

// NativeElement implements NativeNode.
func (t *Text) NativeElement() ElementKind { return ElementText }

// NativeContent implements ContentNode.
func (t *Text) NativeContent() string { return t.content.Get() }

// Clone implements Node.
func (t *Text) Clone(reg *Registry) Node {
	cp := &Text{width: t.width.clone(), height: t.height.clone(), content: t.content.clone()}
	t.CloneInto(reg, &cp.Base, cp)
	return cp
}
