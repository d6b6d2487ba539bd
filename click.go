package carbon

// hitRecord is one drawn node as seen by click dispatch.
type hitRecord struct {
	node    Node
	path    IDPath
	bounds  Bounds
	inverse Transform
	ok      bool // inverse exists
	sized   bool
	clips   bool
	parent  int // index into hits, -1 at the root
}

func (e *Engine) recordHit(v *visit, bounds Bounds, xf Transform, parent int) int {
	inv, ok := xf.Inverse()
	c, isClipper := v.node.(Clipper)
	e.hits = append(e.hits, hitRecord{
		node:    v.node,
		path:    v.path,
		bounds:  bounds,
		inverse: inv,
		ok:      ok,
		sized:   v.sized,
		clips:   isClipper && c.IsClipping(),
		parent:  parent,
	})
	return len(e.hits) - 1
}

func (h hitRecord) contains(x, y float64) bool {
	if !h.ok {
		return false
	}
	lx, ly := h.inverse.Apply(x, y)
	return h.bounds.Contains(lx, ly)
}

// visible reports whether (x, y) is inside every clipping ancestor of i.
func (e *Engine) visible(i int, x, y float64) bool {
	for p := e.hits[i].parent; p >= 0; p = e.hits[p].parent {
		if e.hits[p].clips && !e.hits[p].contains(x, y) {
			return false
		}
	}
	return true
}

// Click dispatches a click at viewport coordinates (x, y) against the last
// drawn frame. The topmost sized node under the point receives it first,
// then every ancestor in turn. It returns the path of the node that was hit,
// or nil if nothing was.
func (e *Engine) Click(x, y float64) IDPath {
	target := -1
	for i := len(e.hits) - 1; i >= 0; i-- {
		h := e.hits[i]
		if h.sized && h.contains(x, y) && e.visible(i, x, y) {
			target = i
			break
		}
	}
	if target < 0 {
		return nil
	}
	for i := target; i >= 0; i = e.hits[i].parent {
		h := e.hits[i]
		handlers := h.node.Handlers()
		if handlers == nil || len(handlers.Click) == 0 {
			continue
		}
		lx, ly := h.inverse.Apply(x, y)
		args := ArgsClick{X: x, Y: y, LocalX: lx, LocalY: ly}
		for _, fn := range handlers.Click {
			fn(args)
		}
	}
	return e.hits[target].path.Clone()
}
