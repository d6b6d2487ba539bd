package carbon

// RectangleProps are the instantiation arguments of a Rectangle.
type RectangleProps struct {
	Width, Height *Property[Size]  // Required
	Fill          *Property[Color] // Required
	Stroke        *Property[Color]
	StrokeWidth   *Property[float64]
}

// Rectangle is a filled, optionally stroked, rectangle.
type Rectangle struct {
	Base
	width, height *Property[Size]
	fill, stroke  *Property[Color]
	strokeWidth   *Property[float64]
}

// NewRectangle creates and registers a Rectangle. A missing size or fill
// panics.
func NewRectangle(reg *Registry, props RectangleProps, opts ...NodeOption) *Rectangle {
	if props.Width == nil || props.Height == nil {
		panic("carbon: Rectangle requires width and height")
	}
	if props.Fill == nil {
		panic("carbon: Rectangle requires fill")
	}
	r := &Rectangle{
		width:       props.Width,
		height:      props.Height,
		fill:        props.Fill,
		stroke:      props.Stroke,
		strokeWidth: props.StrokeWidth,
	}
	r.Init(reg, r, opts...)
	return r
}

// EvaluateProperties implements Node.
func (r *Rectangle) EvaluateProperties(ctx *PropertyContext) error {
	for _, err := range []error{
		r.width.Evaluate(ctx),
		r.height.Evaluate(ctx),
		r.fill.Evaluate(ctx),
		r.stroke.Evaluate(ctx),
		r.strokeWidth.Evaluate(ctx),
	} {
		if err != nil {
			return err
		}
	}
	return r.Base.EvaluateProperties(ctx)
}

// Size implements Node.
func (r *Rectangle) Size() (Size2D, bool) {
	return Size2D{Width: r.width.Get(), Height: r.height.Get()}, true
}

// Fill returns the current fill color.
func (r *Rectangle) Fill() Color { return r.fill.Get() }

// Draw fills and strokes the rectangle.
func (r *Rectangle) Draw(ctx *DrawContext) {
	ctx.Canvas.FillRect(ctx.Bounds, ctx.Transform, r.fill.Get())
	if r.stroke == nil {
		return
	}
	width := 1.0
	if r.strokeWidth != nil {
		width = r.strokeWidth.Get()
	}
	ctx.Canvas.StrokeRect(ctx.Bounds, ctx.Transform, r.stroke.Get(), width)
}

// Clone implements Node.
func (r *Rectangle) Clone(reg *Registry) Node {
	cp := &Rectangle{
		width:       r.width.clone(),
		height:      r.height.clone(),
		fill:        r.fill.clone(),
		stroke:      r.stroke.clone(),
		strokeWidth: r.strokeWidth.clone(),
	}
	r.CloneInto(reg, &cp.Base, cp)
	return cp
}
