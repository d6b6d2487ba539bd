package carbon

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// probeNode is a drawable test node that reports its draw calls.
type probeNode struct {
	Base
	draw func(*DrawContext)
}

func newProbe(reg *Registry, draw func(*DrawContext), opts ...NodeOption) *probeNode {
	p := &probeNode{draw: draw}
	p.Init(reg, p, opts...)
	return p
}

func (p *probeNode) Draw(ctx *DrawContext) {
	if p.draw != nil {
		p.draw(ctx)
	}
}

func (p *probeNode) Clone(reg *Registry) Node {
	cp := &probeNode{draw: p.draw}
	p.CloneInto(reg, &cp.Base, cp)
	return cp
}

// leakyNode pushes a stack frame and never pops it.
type leakyNode struct {
	Base
}

func (l *leakyNode) EvaluateProperties(ctx *PropertyContext) error {
	ctx.Runtime().PushStackFrame(nil, Scope{})
	return nil
}

func (l *leakyNode) Clone(reg *Registry) Node {
	cp := &leakyNode{}
	l.CloneInto(reg, &cp.Base, cp)
	return cp
}

func text(reg *Registry, content string, opts ...NodeOption) *Text {
	return NewText(reg, TextProps{Width: px(10), Height: px(10), Content: Literal(content)}, opts...)
}

func ints(vs ...int64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Int(v)
	}
	return out
}

func TestNewEngine_Errors(t *testing.T) {
	reg := NewRegistry()
	root := NewGroup(reg)
	other := NewGroup(NewRegistry())

	type tc struct {
		reg  *Registry
		root Node
		opts []Option
	}

	tests := map[string]tc{
		"nil registry":      {reg: nil, root: root},
		"nil root":          {reg: reg, root: nil},
		"unregistered root": {reg: reg, root: other},
		"zero viewport":     {reg: reg, root: root, opts: []Option{WithViewport(0, 10)}},
		"nil logger":        {reg: reg, root: root, opts: []Option{WithLogger(nil)}},
		"nil host":          {reg: reg, root: root, opts: []Option{WithHost(nil)}},
		"nil canvas":        {reg: reg, root: root, opts: []Option{WithCanvas(nil)}},
		"nil evaluator":     {reg: reg, root: root, opts: []Option{WithEvaluator(nil)}},
		"negative viewport": {reg: reg, root: root, opts: []Option{WithViewport(10, -1)}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewEngine(tt.reg, tt.root, tt.opts...); err == nil {
				t.Error("NewEngine succeeded, want error")
			}
		})
	}
}

func TestEngine_FlatteningCompleteness(t *testing.T) {
	reg := NewRegistry()
	leaf := NewRectangle(reg, RectangleProps{Width: px(5), Height: px(5), Fill: Literal(RGB(1, 2, 3))})
	inner := NewRepeat(reg, RepeatProps{Source: Literal(ints(7, 8, 9))}, WithChildren(leaf))
	cond := NewConditional(reg, ConditionalProps{Condition: Literal(true)}, WithChildren(inner))
	outer := NewRepeat(reg, RepeatProps{Source: Literal(ints(1, 2))}, WithChildren(cond))
	root := NewGroup(reg, WithChildren(outer))

	e, _ := newTestEngine(t, reg, root)
	tick(t, e)

	rects := 0
	for _, n := range e.DrawList() {
		if ShouldFlatten(n) {
			t.Errorf("draw list holds structural node %T (instance %d)", n, n.InstanceID())
		}
		if _, ok := n.(*Rectangle); ok {
			rects++
		}
	}
	if rects != 6 {
		t.Errorf("drawn rectangles = %d, want 6", rects)
	}
}

func TestEngine_RepeatFidelity(t *testing.T) {
	tests := map[string][]Value{
		"empty":   nil,
		"one":     ints(42),
		"several": {String("a"), Int(2), Bool(true), SizeValue(Percent(10))},
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			reg := NewRegistry()
			var seen []string
			tmpl := newProbe(reg, nil, WithHandlers((&Handlers{}).OnWillRender(func(ArgsRender) {
				seen = append(seen, "render")
			})))
			r := NewRepeat(reg, RepeatProps{Source: Literal(data)}, WithChildren(tmpl))
			root := NewGroup(reg, WithChildren(r))

			e, host := newTestEngine(t, reg, root)
			tick(t, e)
			before := reg.Len()
			tick(t, e)

			items := r.Children()
			if len(items) != len(data) {
				t.Fatalf("materialized %d items, want %d", len(items), len(data))
			}
			for i, n := range items {
				item, ok := n.(*RepeatItem)
				if !ok {
					t.Fatalf("item %d is %T, want *RepeatItem", i, n)
				}
				if item.Index() != i {
					t.Errorf("item %d Index() = %d", i, item.Index())
				}
				if !item.Datum().Equal(data[i]) {
					t.Errorf("item %d Datum() = %v, want %v", i, item.Datum(), data[i])
				}
				if len(item.Children()) != 1 || item.Children()[0] == Node(tmpl) {
					t.Errorf("item %d does not hold a clone of the template", i)
				}
			}
			if got := len(e.DrawList()); got != 1+len(data) {
				t.Errorf("draw list has %d nodes, want %d", got, 1+len(data))
			}
			if reg.Len() != before {
				t.Errorf("registry grew from %d to %d between frames", before, reg.Len())
			}
			if len(seen) != 2*len(data) {
				t.Errorf("template WillRender fired %d times, want %d", len(seen), 2*len(data))
			}
			if len(data) == 0 && len(host.Frames()) != 0 {
				t.Errorf("empty repeat flushed %d frames, want 0", len(host.Frames()))
			}
		})
	}
}

func TestEngine_RepeatBindsIndexAndDatum(t *testing.T) {
	reg := NewRegistry()
	tmpl := NewText(reg, TextProps{Width: px(10), Height: px(10), Content: Bound("label", "")})
	r := NewRepeat(reg, RepeatProps{Source: Literal([]Value{String("a"), String("b")})}, WithChildren(tmpl))
	root := NewGroup(reg, WithChildren(r))

	ev := ExprTable{
		"label": func(ctx *PropertyContext) (Value, error) {
			i, err := ctx.Lookup(ScopeIndex)
			if err != nil {
				return Value{}, err
			}
			d, err := ctx.Lookup(ScopeDatum)
			if err != nil {
				return Value{}, err
			}
			return String(fmt.Sprintf("%d:%s", i.AsInt(), d.AsString())), nil
		},
	}
	e, _ := newTestEngine(t, reg, root, WithEvaluator(ev))
	tick(t, e)

	var got []string
	for _, n := range e.DrawList() {
		if txt, ok := n.(*Text); ok {
			got = append(got, txt.Content())
		}
	}
	if diff := cmp.Diff([]string{"0:a", "1:b"}, got); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_ConditionalTransitionSafety(t *testing.T) {
	reg := NewRegistry()
	aLeaf := text(reg, "a")
	a := NewFrame(reg, FrameProps{Width: px(50), Height: px(50)}, WithChildren(aLeaf))
	b := text(reg, "b")
	cond := NewConditional(reg, ConditionalProps{
		Condition: Bound("show", true),
		Else:      []Node{b},
	}, WithChildren(a))

	var markedAtDraw []bool
	probe := newProbe(reg, func(*DrawContext) {
		markedAtDraw = append(markedAtDraw, reg.IsMarked(a.InstanceID()) && reg.IsMarked(aLeaf.InstanceID()))
	})
	root := NewGroup(reg, WithChildren(cond, probe))

	show := true
	ev := ExprTable{"show": func(*PropertyContext) (Value, error) { return Bool(show), nil }}
	e, host := newTestEngine(t, reg, root, WithEvaluator(ev))

	drawn := func(n Node) bool {
		for _, id := range drawIDs(e) {
			if id == n.InstanceID() {
				return true
			}
		}
		return false
	}

	// Frame 0 adopts the first evaluation.
	tick(t, e)
	if !drawn(a) || !drawn(aLeaf) || drawn(b) {
		t.Fatalf("frame 0 draw list = %v, want branch a only", drawIDs(e))
	}

	// Frame 1 observes the flip: a is dropped, b is not shown yet.
	show = false
	tick(t, e)
	if drawn(a) || drawn(aLeaf) || drawn(b) {
		t.Errorf("frame 1 draw list = %v, want neither branch", drawIDs(e))
	}
	if !markedAtDraw[1] {
		t.Error("branch a was not marked for unmount during frame 1's draw pass")
	}
	if reg.Contains(a.InstanceID()) || reg.Contains(aLeaf.InstanceID()) {
		t.Error("branch a still registered after frame 1")
	}
	if diff := cmp.Diff([]string{"FrameDelete", "TextDelete"}, opsOf(host.MessagesForFrame(1))); diff != "" {
		t.Errorf("frame 1 messages mismatch (-want +got):\n%s", diff)
	}
	if got, _ := cond.Showing(IDPath{uint64(root.InstanceID()), uint64(cond.InstanceID())}); !got {
		t.Error("selection switched before the buffered frame")
	}

	// Frame 2 applies the buffered selection.
	tick(t, e)
	if drawn(a) || !drawn(b) {
		t.Errorf("frame 2 draw list = %v, want b only", drawIDs(e))
	}

	// Flip back: b leaves at frame 3, a returns, re-registered, at frame 4.
	show = true
	tick(t, e)
	if drawn(a) || drawn(b) {
		t.Errorf("frame 3 draw list = %v, want neither branch", drawIDs(e))
	}
	tick(t, e)
	if !drawn(a) || !drawn(aLeaf) || drawn(b) {
		t.Errorf("frame 4 draw list = %v, want branch a only", drawIDs(e))
	}
	if !reg.Contains(a.InstanceID()) || !reg.Contains(aLeaf.InstanceID()) {
		t.Error("branch a not registered again after reselection")
	}
	if diff := cmp.Diff([]string{"FrameCreate", "FrameUpdate", "TextCreate", "TextUpdate"}, opsOf(host.MessagesForFrame(4))); diff != "" {
		t.Errorf("frame 4 messages mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_ConditionalInsideRepeatKeepsPerItemState(t *testing.T) {
	reg := NewRegistry()
	yes := text(reg, "yes")
	no := text(reg, "no")
	cond := NewConditional(reg, ConditionalProps{Condition: Bound("datum", false), Else: []Node{no}}, WithChildren(yes))
	r := NewRepeat(reg, RepeatProps{Source: Literal([]Value{Bool(true), Bool(false), Bool(true)})}, WithChildren(cond))
	root := NewGroup(reg, WithChildren(r))

	ev := ExprTable{"datum": func(ctx *PropertyContext) (Value, error) { return ctx.Lookup(ScopeDatum) }}
	e, _ := newTestEngine(t, reg, root, WithEvaluator(ev))

	for range 3 {
		tick(t, e)
		var got []string
		for _, n := range e.DrawList() {
			if txt, ok := n.(*Text); ok {
				got = append(got, txt.Content())
			}
		}
		if diff := cmp.Diff([]string{"yes", "no", "yes"}, got); diff != "" {
			t.Fatalf("frame %d contents mismatch (-want +got):\n%s", e.FramesElapsed()-1, diff)
		}
	}
}

func TestEngine_PatchMinimality(t *testing.T) {
	reg := NewRegistry()
	leaf := text(reg, "static", WithTransform(Literal(Translate(3, 4))))
	root := NewFrame(reg, FrameProps{Width: Literal(Percent(100)), Height: Literal(Percent(100))}, WithChildren(leaf))

	e, host := newTestEngine(t, reg, root)
	if err := e.Run(10); err != nil {
		t.Fatalf("Run: %v", err)
	}

	frames := host.Frames()
	if len(frames) != 1 || frames[0].Frame != 0 {
		t.Fatalf("flushed %d frames, want only frame 0", len(frames))
	}
	if diff := cmp.Diff([]string{"FrameCreate", "FrameUpdate", "TextCreate", "TextUpdate"}, opsOf(frames[0].Messages)); diff != "" {
		t.Errorf("baseline mismatch (-want +got):\n%s", diff)
	}
	update := frames[0].Messages[3]
	want := Patch{
		Depth:     ptr(1),
		SizeX:     ptr(10.0),
		SizeY:     ptr(10.0),
		Transform: []float64{1, 0, 0, 1, 3, 4},
		Content:   ptr("static"),
	}
	if diff := cmp.Diff(want, update.Patch); diff != "" {
		t.Errorf("baseline patch mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_PatchCorrectness(t *testing.T) {
	reg := NewRegistry()
	f := NewFrame(reg, FrameProps{Width: px(100), Height: Bound("h", Px(0))})

	h := 50.0
	ev := ExprTable{"h": func(*PropertyContext) (Value, error) { return SizeValue(Px(h)), nil }}
	e, host := newTestEngine(t, reg, f, WithEvaluator(ev))
	tick(t, e)
	host.Reset()

	h = 75
	tick(t, e)
	want := []Message{{
		Op:      OpUpdate,
		Element: ElementFrame,
		Path:    IDPath{uint64(f.InstanceID())},
		Patch:   Patch{SizeY: ptr(75.0)},
	}}
	if diff := cmp.Diff(want, host.Messages()); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_StackBalance(t *testing.T) {
	reg := NewRegistry()
	leaf := NewText(reg, TextProps{Width: px(1), Height: px(1), Content: Bound("cell", "")})
	inner := NewRepeat(reg, RepeatProps{Source: Literal(ints(1, 2, 3))}, WithChildren(leaf))
	outer := NewRepeat(reg, RepeatProps{Source: Literal(ints(1, 2))}, WithChildren(inner))
	comp := NewComponent(reg, ComponentProps{
		Props:    map[string]*Property[Value]{"prefix": Literal(String("c"))},
		Template: []Node{outer},
	})
	root := NewGroup(reg, WithChildren(comp))

	var depths [][]int64
	ev := ExprTable{
		"cell": func(ctx *PropertyContext) (Value, error) {
			depths = append(depths, ctx.Runtime().RepeatIndices())
			p, err := ctx.Lookup("prefix")
			if err != nil {
				return Value{}, err
			}
			return String(p.AsString()), nil
		},
	}
	e, _ := newTestEngine(t, reg, root, WithEvaluator(ev))
	tick(t, e)

	stats := e.Runtime().Stats()
	if stats.Pushes != stats.Pops {
		t.Errorf("pushes = %d, pops = %d", stats.Pushes, stats.Pops)
	}
	if stats.Pushes != 1+2+6 {
		t.Errorf("pushes = %d, want 9", stats.Pushes)
	}
	if f := e.Runtime().PeekStackFrame(); f != nil {
		t.Errorf("PeekStackFrame() after traversal = %v, want nil", f)
	}
	want := [][]int64{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	if diff := cmp.Diff(want, depths); diff != "" {
		t.Errorf("repeat indices mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_UnbalancedNodePanics(t *testing.T) {
	reg := NewRegistry()
	leaky := &leakyNode{}
	leaky.Init(reg, leaky)
	root := NewGroup(reg, WithChildren(leaky))

	e, _ := newTestEngine(t, reg, root)
	want := fmt.Sprintf("carbon: instance %d left stack depth 1, want 0", leaky.InstanceID())
	expectPanic(t, want, func() { _ = e.Tick() })
}

func TestEngine_UnboundKeyAbortsFrame(t *testing.T) {
	reg := NewRegistry()
	leaf := NewText(reg, TextProps{Width: px(1), Height: px(1), Content: Bound("c", "")})
	r := NewRepeat(reg, RepeatProps{Source: Literal(ints(1))}, WithChildren(leaf))
	root := NewFrame(reg, FrameProps{Width: px(10), Height: px(10)}, WithChildren(r))

	key := "missing"
	ev := ExprTable{"c": func(ctx *PropertyContext) (Value, error) {
		v, err := ctx.Lookup(key)
		if err != nil {
			return Value{}, err
		}
		return String(fmt.Sprint(v.AsInt())), nil
	}}
	e, host := newTestEngine(t, reg, root, WithEvaluator(ev))

	err := e.Tick()
	if !errors.Is(err, ErrUnboundKey) {
		t.Fatalf("Tick error = %v, want ErrUnboundKey", err)
	}
	if !strings.Contains(err.Error(), "frame 0") {
		t.Errorf("Tick error = %q, want it to name frame 0", err)
	}
	if len(host.Frames()) != 0 {
		t.Error("aborted frame flushed messages")
	}
	if e.Runtime().Depth() != 0 {
		t.Errorf("Depth() after abort = %d, want 0", e.Runtime().Depth())
	}
	if e.FramesElapsed() != 0 {
		t.Errorf("FramesElapsed() after abort = %d, want 0", e.FramesElapsed())
	}

	key = ScopeIndex
	tick(t, e)
	if len(host.Frames()) != 1 {
		t.Errorf("flushed %d frames after recovery, want 1", len(host.Frames()))
	}
}

func TestEngine_ReentrantTickPanics(t *testing.T) {
	reg := NewRegistry()
	var e *Engine
	root := NewGroup(reg, WithHandlers((&Handlers{}).OnWillRender(func(ArgsRender) {
		_ = e.Tick()
	})))
	e, _ = newTestEngine(t, reg, root)
	expectPanic(t, "carbon: Tick called reentrantly", func() { _ = e.Tick() })
}

func TestEngine_HostErrorIsReturned(t *testing.T) {
	reg := NewRegistry()
	root := text(reg, "x")
	e, host := newTestEngine(t, reg, root)
	boom := errors.New("boom")
	host.FailWith(boom)
	if err := e.Tick(); !errors.Is(err, boom) {
		t.Errorf("Tick error = %v, want %v", err, boom)
	}
}

func TestEngine_WillRender(t *testing.T) {
	reg := NewRegistry()
	var frames []uint64
	root := NewGroup(reg, WithHandlers((&Handlers{}).OnWillRender(func(a ArgsRender) {
		frames = append(frames, a.FramesElapsed)
	})))
	e, _ := newTestEngine(t, reg, root)
	if err := e.Run(3); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint64{0, 1, 2}, frames); diff != "" {
		t.Errorf("WillRender frames mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_DrawGeometry(t *testing.T) {
	reg := NewRegistry()
	var got []string
	record := func(ctx *DrawContext) {
		x, y := ctx.Transform.Apply(0, 0)
		got = append(got, fmt.Sprintf("%gx%g@%g,%g d%d", ctx.Bounds.Width, ctx.Bounds.Height, x, y, ctx.Depth))
	}
	leaf := newProbe(reg, record, WithTransform(Literal(Translate(0, 5))))
	half := NewFrame(reg, FrameProps{Width: Literal(Percent(50)), Height: Literal(Percent(25))},
		WithTransform(Literal(Translate(10, 0))), WithChildren(leaf))
	root := newProbe(reg, record, WithChildren(half))

	e, _ := newTestEngine(t, reg, root, WithViewport(200, 80))
	tick(t, e)

	// The probes have no size, so they fill their parent.
	want := []string{"200x80@0,0 d0", "100x20@10,5 d2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("draw geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_ClipAncestry(t *testing.T) {
	reg := NewRegistry()
	leaf := text(reg, "clipped")
	inner := NewFrame(reg, FrameProps{Width: px(20), Height: px(20)}, WithChildren(leaf))
	outer := NewFrame(reg, FrameProps{Width: px(50), Height: px(50)}, WithChildren(inner))
	canvas := &RecordingCanvas{}

	e, host := newTestEngine(t, reg, outer, WithCanvas(canvas))
	tick(t, e)

	outerPath := IDPath{uint64(outer.InstanceID())}
	innerPath := outerPath.Append(uint64(inner.InstanceID()))
	leafPath := innerPath.Append(uint64(leaf.InstanceID()))

	var creates []Message
	for _, m := range host.Messages() {
		if m.Op == OpCreate {
			creates = append(creates, m)
		}
	}
	want := []Message{
		{Op: OpCreate, Element: ElementFrame, Path: outerPath, ClipIDs: []IDPath{}},
		{Op: OpCreate, Element: ElementFrame, Path: innerPath, ClipIDs: []IDPath{outerPath}},
		{Op: OpCreate, Element: ElementText, Path: leafPath, ClipIDs: []IDPath{outerPath, innerPath}},
	}
	if diff := cmp.Diff(want, creates); diff != "" {
		t.Errorf("creates mismatch (-want +got):\n%s", diff)
	}
	if canvas.Depth() != 0 {
		t.Errorf("canvas save depth after frame = %d, want 0", canvas.Depth())
	}
}

func TestEngine_DeleteOnRepeatShrink(t *testing.T) {
	type tc struct {
		opts        []Option
		wantDeletes int
	}

	tests := map[string]tc{
		"deletes sent":       {wantDeletes: 2},
		"deletes suppressed": {opts: []Option{WithoutDeleteMessages()}, wantDeletes: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			reg := NewRegistry()
			tmpl := text(reg, "row")
			r := NewRepeat(reg, RepeatProps{Source: Bound("rows", []Value(nil))}, WithChildren(tmpl))
			root := NewGroup(reg, WithChildren(r))

			n := 3
			ev := ExprTable{"rows": func(*PropertyContext) (Value, error) {
				return List(ints(make([]int64, n)...)...), nil
			}}
			e, host := newTestEngine(t, reg, root, append(tt.opts, WithEvaluator(ev))...)
			tick(t, e)

			n = 1
			tick(t, e)
			deletes := 0
			for _, m := range host.MessagesForFrame(1) {
				if m.Op == OpDelete {
					deletes++
					if idx := m.Path[len(m.Path)-2]; idx == 0 {
						t.Errorf("item 0 deleted, want only items 1 and 2")
					}
				}
			}
			if deletes != tt.wantDeletes {
				t.Errorf("deletes = %d, want %d", deletes, tt.wantDeletes)
			}
		})
	}
}

func TestEngine_RepeatPathsAreStable(t *testing.T) {
	reg := NewRegistry()
	tmpl := text(reg, "row")
	r := NewRepeat(reg, RepeatProps{Source: Literal(ints(1, 2))}, WithChildren(tmpl))
	root := NewGroup(reg, WithChildren(r))

	e, host := newTestEngine(t, reg, root)
	tick(t, e)
	first := e.DrawPaths()
	tick(t, e)
	if diff := cmp.Diff(first, e.DrawPaths()); diff != "" {
		t.Errorf("paths changed between frames (-first +second):\n%s", diff)
	}
	want := IDPath{uint64(root.InstanceID()), uint64(r.InstanceID()), 1, uint64(tmpl.InstanceID())}
	if !first[2].Equal(want) {
		t.Errorf("second item path = %v, want %v", first[2], want)
	}
	if len(host.Frames()) != 1 {
		t.Errorf("flushed %d frames, want 1", len(host.Frames()))
	}
}

func TestEngine_ComponentAndSlot(t *testing.T) {
	reg := NewRegistry()
	adopted := NewText(reg, TextProps{Width: px(1), Height: px(1), Content: Bound("outer", "")})
	title := NewText(reg, TextProps{Width: px(1), Height: px(1), Content: Bound("title", "")})
	slot := NewSlot(reg, Literal(int64(0)))
	missing := NewSlot(reg, Literal(int64(5)))
	comp := NewComponent(reg, ComponentProps{
		Props:    map[string]*Property[Value]{"title": Bound("make-title", Value{})},
		Template: []Node{title, slot, missing},
		Adoptees: []Node{adopted},
	})
	root := NewComponent(reg, ComponentProps{
		Props:    map[string]*Property[Value]{"name": Literal(String("page"))},
		Template: []Node{comp},
	})

	ev := ExprTable{
		// Evaluated in the caller's scope, where only name is bound.
		"make-title": func(ctx *PropertyContext) (Value, error) {
			if _, err := ctx.Lookup("title"); err == nil {
				return Value{}, errors.New("component prop evaluated inside its own scope")
			}
			n, err := ctx.Lookup("name")
			if err != nil {
				return Value{}, err
			}
			return String(n.AsString() + " title"), nil
		},
		"title": func(ctx *PropertyContext) (Value, error) { return ctx.Lookup("title") },
		"outer": func(ctx *PropertyContext) (Value, error) { return ctx.Lookup("name") },
	}
	e, _ := newTestEngine(t, reg, root, WithEvaluator(ev))
	tick(t, e)

	var got []string
	for _, n := range e.DrawList() {
		if txt, ok := n.(*Text); ok {
			got = append(got, txt.Content())
		}
	}
	if diff := cmp.Diff([]string{"page title", "page"}, got); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
	if len(missing.Children()) != 0 {
		t.Error("out-of-range slot adopted a node")
	}
}

func TestEngine_SetViewport(t *testing.T) {
	reg := NewRegistry()
	root := NewFrame(reg, FrameProps{Width: Literal(Percent(50)), Height: Literal(Percent(50))})
	e, host := newTestEngine(t, reg, root)
	tick(t, e)
	host.Reset()

	e.SetViewport(0, 10) // ignored
	e.SetViewport(300, 100)
	tick(t, e)
	want := []Message{{
		Op:      OpUpdate,
		Element: ElementFrame,
		Path:    IDPath{uint64(root.InstanceID())},
		Patch:   Patch{SizeX: ptr(150.0)},
	}}
	if diff := cmp.Diff(want, host.Messages()); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}
