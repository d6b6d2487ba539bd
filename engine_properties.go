package carbon

import "fmt"

// visit is one node's result from the property pass: where it sits in the
// tree and what it resolved to. A node reachable along two paths gets one
// visit per path.
type visit struct {
	node      Node
	path      IDPath
	children  []*visit
	size      Size2D
	sized     bool
	transform Transform
}

// computeProperties runs the property pass for n and its subtree.
func (e *Engine) computeProperties(n Node, parent IDPath) (*visit, error) {
	path := parent.Append(pathSegment(n))
	e.fireWillRender(n)

	depth := e.runtime.Depth()
	ctx := &PropertyContext{
		registry:  e.registry,
		runtime:   e.runtime,
		evaluator: e.evaluator,
		frame:     e.frame,
		path:      path,
		instance:  n.InstanceID(),
	}
	if err := n.EvaluateProperties(ctx); err != nil {
		return nil, err
	}

	pushed := true
	switch p := n.(type) {
	case *RepeatItem:
		e.runtime.pushRepeatFrame(p.StackFrame(ctx))
	case ScopeProvider:
		e.runtime.PushStackFrame(p.StackFrame(ctx))
	default:
		pushed = false
	}

	v := &visit{node: n, path: path}
	children := n.Children()
	if len(children) > 0 {
		v.children = make([]*visit, 0, len(children))
	}
	for _, child := range children {
		cv, err := e.computeProperties(child, path)
		if err != nil {
			return nil, err
		}
		v.children = append(v.children, cv)
	}

	n.PostEvaluateProperties(ctx)
	if pushed {
		e.runtime.PopStackFrame()
	}
	if got := e.runtime.Depth(); got != depth {
		panic(fmt.Sprintf("carbon: instance %d left stack depth %d, want %d", n.InstanceID(), got, depth))
	}

	v.size, v.sized = n.Size()
	v.transform = n.Transform()
	return v, nil
}

// fireWillRender runs n's WillRender handlers unless n is leaving this frame.
func (e *Engine) fireWillRender(n Node) {
	h := n.Handlers()
	if h == nil || e.registry.IsMarked(n.InstanceID()) {
		return
	}
	args := ArgsRender{FramesElapsed: e.frame}
	for _, fn := range h.WillRender {
		fn(args)
	}
}
