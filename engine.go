package carbon

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/grindlemire/go-carbon/internal/debug"
)

// Engine drives a render tree frame by frame. Each Tick evaluates every
// property, flattens control flow, draws, and flushes the resulting native
// messages to the host.
//
// An Engine is single-threaded. Tick must not be called from inside a node
// hook or handler.
type Engine struct {
	registry  *Registry
	runtime   *Runtime
	root      Node
	evaluator Evaluator
	host      Host
	canvas    Canvas
	viewport  Bounds
	log       *slog.Logger
	store     *Store

	deleteMessages bool
	mounts         *mountState
	patches        *patchCache

	frame    uint64
	ticking  bool
	drawList []*visit
	hits     []hitRecord
	depth    int
}

// NewEngine creates an engine for the tree rooted at root. Every node in the
// tree must have been registered in reg.
func NewEngine(reg *Registry, root Node, opts ...Option) (*Engine, error) {
	if reg == nil {
		return nil, errors.New("registry must not be nil")
	}
	if root == nil {
		return nil, errors.New("root must not be nil")
	}
	if got, ok := reg.Lookup(root.InstanceID()); !ok || got != root {
		return nil, fmt.Errorf("root instance %d is not registered", root.InstanceID())
	}

	e := &Engine{
		registry:       reg,
		runtime:        NewRuntime(),
		root:           root,
		host:           nopHost{},
		canvas:         nopCanvas{},
		viewport:       Bounds{Width: 800, Height: 600},
		deleteMessages: true,
		mounts:         newMountState(),
		patches:        newPatchCache(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.log == nil {
		e.log = debug.Logger()
	}
	return e, nil
}

// Tick runs one frame. An evaluation error aborts the frame before anything
// is drawn or sent; the tree is left as evaluated so far and the next Tick
// starts over.
func (e *Engine) Tick() error {
	if e.ticking {
		panic("carbon: Tick called reentrantly")
	}
	e.ticking = true
	defer func() { e.ticking = false }()

	e.runtime.beginFrame()
	tree, err := e.computeProperties(e.root, nil)
	if err != nil {
		e.runtime.reset()
		e.log.Debug("frame aborted", "frame", e.frame, "err", err)
		return fmt.Errorf("frame %d: %w", e.frame, err)
	}
	if d := e.runtime.Depth(); d != 0 {
		panic(fmt.Sprintf("carbon: %d stack frames left after property pass", d))
	}
	e.runtime.pruneBranches(e.frame)

	e.drawList = e.flatten([]*visit{tree})
	e.draw()
	e.sweep()
	if n := e.registry.drainUnmounts(); n > 0 {
		e.log.Debug("unmounted", "frame", e.frame, "instances", n)
	}

	frame := e.frame
	e.frame++
	msgs := e.runtime.drain()
	if len(msgs) == 0 {
		return nil
	}
	if err := e.host.Flush(frame, msgs); err != nil {
		return fmt.Errorf("flush frame %d: %w", frame, err)
	}
	return nil
}

// Run calls Tick n times, stopping at the first error.
func (e *Engine) Run(n int) error {
	for range n {
		if err := e.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// FramesElapsed returns the number of completed frames.
func (e *Engine) FramesElapsed() uint64 { return e.frame }

// Registry returns the engine's identity registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Runtime returns the engine's runtime stack.
func (e *Engine) Runtime() *Runtime { return e.runtime }

// Root returns the root node.
func (e *Engine) Root() Node { return e.root }

// Viewport returns the root bounds.
func (e *Engine) Viewport() Bounds { return e.viewport }

// SetViewport changes the root bounds for later frames. Non-positive sizes
// are ignored.
func (e *Engine) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	e.viewport = Bounds{Width: width, Height: height}
}

// DrawList returns the nodes drawn by the last frame in paint order.
func (e *Engine) DrawList() []Node {
	var out []Node
	var walk func([]*visit)
	walk = func(vs []*visit) {
		for _, v := range vs {
			out = append(out, v.node)
			walk(v.children)
		}
	}
	walk(e.drawList)
	return out
}

// DrawPaths returns the IDPath of each node in DrawList, in the same order.
func (e *Engine) DrawPaths() []IDPath {
	var out []IDPath
	var walk func([]*visit)
	walk = func(vs []*visit) {
		for _, v := range vs {
			out = append(out, v.path)
			walk(v.children)
		}
	}
	walk(e.drawList)
	return out
}
