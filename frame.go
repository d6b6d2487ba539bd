package carbon

// FrameProps are the instantiation arguments of a Frame.
type FrameProps struct {
	Width, Height *Property[Size] // Required
}

// Frame is a sized container that clips everything drawn inside it. Hosts
// receive it as a native "Frame" element so they can mask native children.
type Frame struct {
	Base
	width, height *Property[Size]
}

var (
	_ NativeNode = (*Frame)(nil)
	_ Clipper    = (*Frame)(nil)
)

// NewFrame creates and registers a Frame. A missing size panics.
func NewFrame(reg *Registry, props FrameProps, opts ...NodeOption) *Frame {
	if props.Width == nil || props.Height == nil {
		panic("carbon: Frame requires width and height")
	}
	f := &Frame{width: props.Width, height: props.Height}
	f.Init(reg, f, opts...)
	return f
}

// EvaluateProperties implements Node.
func (f *Frame) EvaluateProperties(ctx *PropertyContext) error {
	if err := f.width.Evaluate(ctx); err != nil {
		return err
	}
	if err := f.height.Evaluate(ctx); err != nil {
		return err
	}
	return f.Base.EvaluateProperties(ctx)
}

// Size implements Node.
func (f *Frame) Size() (Size2D, bool) {
	return Size2D{Width: f.width.Get(), Height: f.height.Get()}, true
}

// IsClipping implements Clipper.
func (f *Frame) IsClipping() bool { return true }

// NativeElement implements NativeNode.
func (f *Frame) NativeElement() ElementKind { return ElementFrame }

// PreDraw saves the canvas and clips it to the frame's bounds.
func (f *Frame) PreDraw(ctx *DrawContext) {
	ctx.Canvas.Save()
	ctx.Canvas.ClipRect(ctx.Bounds, ctx.Transform)
}

// PostDraw restores the canvas saved in PreDraw.
func (f *Frame) PostDraw(ctx *DrawContext) {
	ctx.Canvas.Restore()
}

// Clone implements Node.
func (f *Frame) Clone(reg *Registry) Node {
	cp := &Frame{width: f.width.clone(), height: f.height.clone()}
	f.CloneInto(reg, &cp.Base, cp)
	return cp
}
