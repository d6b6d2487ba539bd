package carbon

// ArgsRender is passed to WillRender handlers at the start of each frame.
type ArgsRender struct {
	FramesElapsed uint64
}

// ArgsClick is passed to Click handlers.
type ArgsClick struct {
	X, Y           float64 // Viewport coordinates
	LocalX, LocalY float64 // Coordinates in the handling node's space
}

// Handlers is a node's event-handler registry.
type Handlers struct {
	WillRender []func(ArgsRender)
	Click      []func(ArgsClick)
}

// OnWillRender appends a WillRender handler and returns h.
func (h *Handlers) OnWillRender(fn func(ArgsRender)) *Handlers {
	h.WillRender = append(h.WillRender, fn)
	return h
}

// OnClick appends a Click handler and returns h.
func (h *Handlers) OnClick(fn func(ArgsClick)) *Handlers {
	h.Click = append(h.Click, fn)
	return h
}
