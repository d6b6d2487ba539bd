package carbon

// draw runs the draw pass over the flattened list.
func (e *Engine) draw() {
	e.depth = 0
	e.hits = e.hits[:0]
	for _, v := range e.drawList {
		e.drawNode(v, e.viewport, Identity(), -1)
	}
}

// drawNode resolves v's bounds and transform, syncs it with the host and
// runs its hooks around its children.
func (e *Engine) drawNode(v *visit, parent Bounds, parentXf Transform, parentHit int) {
	bounds := parent
	if v.sized {
		bounds = v.size.Within(parent)
	}
	xf := parentXf.Mul(v.transform)

	ctx := &DrawContext{
		Canvas:        e.canvas,
		Bounds:        bounds,
		Transform:     xf,
		Path:          v.path,
		Depth:         e.depth,
		FramesElapsed: e.frame,
	}
	e.depth++

	if native, ok := v.node.(NativeNode); ok {
		e.syncNative(native, ctx)
	}
	hit := e.recordHit(v, bounds, xf, parentHit)

	node := v.node
	node.PreDraw(ctx)
	clips := false
	if c, ok := node.(Clipper); ok && c.IsClipping() {
		clips = true
		e.runtime.PushClip(v.path)
	}
	node.Draw(ctx)
	for _, child := range v.children {
		e.drawNode(child, bounds, xf, hit)
	}
	if clips {
		e.runtime.PopClip()
	}
	node.PostDraw(ctx)
}

// syncNative mounts a native node on first sight and queues an Update with
// whatever changed since the last one.
func (e *Engine) syncNative(n NativeNode, ctx *DrawContext) {
	element := n.NativeElement()
	if e.mounts.mark(element, ctx.Path) {
		e.log.Debug("mount", "element", element, "path", ctx.Path)
		e.runtime.Enqueue(Message{
			Op:      OpCreate,
			Element: element,
			Path:    ctx.Path.Clone(),
			ClipIDs: e.runtime.ClipIDs(),
		})
	}

	fields := nativeFields{
		depth:     ctx.Depth,
		sizeX:     ctx.Bounds.Width,
		sizeY:     ctx.Bounds.Height,
		transform: ctx.Transform.Coeffs(),
	}
	if c, ok := n.(ContentNode); ok {
		fields.content = c.NativeContent()
		fields.hasContent = true
	}
	if patch, changed := e.patches.diff(ctx.Path.Key(), fields); changed {
		e.runtime.Enqueue(Message{
			Op:      OpUpdate,
			Element: element,
			Path:    ctx.Path.Clone(),
			Patch:   patch,
		})
	}
}

// sweep unmounts host elements that were not drawn this frame.
func (e *Engine) sweep() {
	if !e.deleteMessages {
		return
	}
	for _, gone := range e.mounts.sweep() {
		e.patches.forget(gone.path.Key())
		e.log.Debug("unmount", "element", gone.element, "path", gone.path)
		e.runtime.Enqueue(Message{Op: OpDelete, Element: gone.element, Path: gone.path})
	}
}
