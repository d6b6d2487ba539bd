package carbon

import (
	"fmt"

	"github.com/samber/lo"
)

// Names a repeat item binds for its descendants.
const (
	ScopeIndex = "index"
	ScopeDatum = "datum"
)

// Scope holds the named bindings a stack frame exposes to descendant
// expressions.
type Scope map[string]Value

// StackFrame is one entry of the runtime stack: a scope plus the nodes a
// placeholder inside the frame may adopt.
type StackFrame struct {
	scope    Scope
	adoptees []Node
	repeat   bool // pushed by a RepeatItem
}

// Scope returns the frame's bindings.
func (f *StackFrame) Scope() Scope { return f.scope }

// Adoptees returns the nodes the frame offers for re-parenting.
func (f *StackFrame) Adoptees() []Node { return f.adoptees }

// Get returns the binding for key in this frame only.
func (f *StackFrame) Get(key string) (Value, bool) {
	v, ok := f.scope[key]
	return v, ok
}

// FrameStats counts stack activity for one property pass.
type FrameStats struct {
	Pushes int
	Pops   int
}

// Runtime holds the per-engine traversal state that is not drawing: the
// scope stack, the clipping stack and the outbound message queue.
type Runtime struct {
	stack []*StackFrame
	clips []IDPath
	queue []Message
	stats FrameStats
	wake  bool // another frame was requested

	branches map[*branchState]struct{}
}

// NewRuntime creates an empty runtime.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// PushStackFrame pushes a new frame holding scope and adoptees.
func (r *Runtime) PushStackFrame(adoptees []Node, scope Scope) {
	r.stack = append(r.stack, &StackFrame{scope: scope, adoptees: adoptees})
	r.stats.Pushes++
}

// pushRepeatFrame is PushStackFrame for a repeat item.
func (r *Runtime) pushRepeatFrame(adoptees []Node, scope Scope) {
	r.PushStackFrame(adoptees, scope)
	r.stack[len(r.stack)-1].repeat = true
}

// PeekStackFrame returns the innermost frame, or nil when the stack is empty.
func (r *Runtime) PeekStackFrame() *StackFrame {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// PopStackFrame removes the innermost frame. Popping an empty stack means a
// push/pop pair was broken and panics.
func (r *Runtime) PopStackFrame() {
	if len(r.stack) == 0 {
		panic("carbon: pop on empty stack")
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	r.stats.Pops++
}

// Depth returns the number of active frames.
func (r *Runtime) Depth() int {
	return len(r.stack)
}

// Stats returns push/pop counts since the last property pass began.
func (r *Runtime) Stats() FrameStats {
	return r.stats
}

// Lookup resolves key against the whole stack, innermost frame first, so an
// inner binding shadows an outer one with the same name.
func (r *Runtime) Lookup(key string) (Value, error) {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if v, ok := r.stack[i].scope[key]; ok {
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("%w: %q", ErrUnboundKey, key)
}

// Bindings returns every visible binding, with inner frames shadowing outer
// ones. Expression engines that need a complete environment use this.
func (r *Runtime) Bindings() Scope {
	out := make(Scope)
	for _, f := range r.stack {
		for k, v := range f.scope {
			out[k] = v
		}
	}
	return out
}

// PushClip records path as the innermost active clipping ancestor.
func (r *Runtime) PushClip(path IDPath) {
	r.clips = append(r.clips, path)
}

// PopClip removes the innermost clipping ancestor.
func (r *Runtime) PopClip() {
	if len(r.clips) == 0 {
		panic("carbon: pop on empty clipping stack")
	}
	r.clips = r.clips[:len(r.clips)-1]
}

// ClipIDs returns a copy of the active clipping ancestry, outermost first.
func (r *Runtime) ClipIDs() []IDPath {
	return lo.Map(r.clips, func(p IDPath, _ int) IDPath { return p.Clone() })
}

// Enqueue adds msg to this frame's outbound queue.
func (r *Runtime) Enqueue(msg Message) {
	r.queue = append(r.queue, msg)
}

// beginFrame resets per-frame counters.
func (r *Runtime) beginFrame() {
	r.stats = FrameStats{}
}

// drain returns and clears the outbound queue.
func (r *Runtime) drain() []Message {
	q := r.queue
	r.queue = nil
	return q
}

// reset drops all traversal state after an aborted frame.
// trackBranches records s so its stale paths are pruned after each pass.
func (r *Runtime) trackBranches(s *branchState) {
	if r.branches == nil {
		r.branches = make(map[*branchState]struct{})
	}
	r.branches[s] = struct{}{}
}

// pruneBranches forgets branch selections at paths not visited during frame.
func (r *Runtime) pruneBranches(frame uint64) {
	for s := range r.branches {
		if !s.prune(frame) {
			delete(r.branches, s)
		}
	}
}

func (r *Runtime) reset() {
	clear(r.stack)
	r.stack = r.stack[:0]
	r.clips = r.clips[:0]
	r.queue = nil
}

// RepeatIndices returns the index bound by every enclosing repeat item,
// outermost first.
func (r *Runtime) RepeatIndices() []int64 {
	var out []int64
	for _, f := range r.stack {
		if !f.repeat {
			continue
		}
		out = append(out, f.scope[ScopeIndex].AsInt())
	}
	return out
}
