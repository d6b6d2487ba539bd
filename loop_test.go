package carbon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoop_ChannelWatcherDrivesFrames(t *testing.T) {
	reg := NewRegistry()
	st := NewStore()
	height := NewState(st, Px(10))
	f := NewFrame(reg, FrameProps{Width: px(10), Height: Bound("h", Px(0))})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	next := make(chan float64, 1)
	var heights []float64
	host := HostFunc(func(_ uint64, msgs []Message) error {
		for _, m := range msgs {
			if m.Patch.SizeY != nil {
				heights = append(heights, *m.Patch.SizeY)
			}
		}
		switch len(heights) {
		case 1:
			next <- 20
		case 2:
			next <- 30
		case 3:
			cancel()
		}
		return nil
	})

	e, err := NewEngine(reg, f, WithHost(host), WithStore(st), WithEvaluator(ExprTable{"h": height.Expr()}))
	if err != nil {
		t.Fatal(err)
	}
	loop := NewLoop(e, time.Millisecond, Watch(next, func(v float64) { height.Set(Px(v)) }))
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]float64{10, 20, 30}, heights); diff != "" {
		t.Errorf("heights mismatch (-want +got):\n%s", diff)
	}
}

func TestLoop_TimerWatcher(t *testing.T) {
	reg := NewRegistry()
	e, _ := newTestEngine(t, reg, NewGroup(reg))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fired := 0
	loop := NewLoop(e, time.Millisecond, OnTimer(time.Millisecond, func() {
		fired++
		if fired == 3 {
			cancel()
		}
	}))
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fired < 3 {
		t.Errorf("timer fired %d times, want at least 3", fired)
	}
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Errorf("loop stopped by %v, want cancellation", ctx.Err())
	}
}

func TestLoop_QueueUpdate(t *testing.T) {
	reg := NewRegistry()
	e, _ := newTestEngine(t, reg, NewGroup(reg))
	loop := NewLoop(e, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ran := false
	if !loop.QueueUpdate(func() {
		ran = true
		cancel()
	}) {
		t.Fatal("QueueUpdate on an empty queue = false")
	}
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ran {
		t.Error("queued update did not run")
	}
	if e.FramesElapsed() != 1 {
		t.Errorf("FramesElapsed() = %d, want 1", e.FramesElapsed())
	}
}

func TestLoop_FrameErrorStops(t *testing.T) {
	reg := NewRegistry()
	root := NewText(reg, TextProps{Width: px(1), Height: px(1), Content: Bound("missing", "")})
	e, _ := newTestEngine(t, reg, root)

	err := NewLoop(e, time.Millisecond).Run(context.Background())
	if !errors.Is(err, ErrUnknownExpr) {
		t.Errorf("Run error = %v, want ErrUnknownExpr", err)
	}
}

func TestNewLoop_DefaultInterval(t *testing.T) {
	reg := NewRegistry()
	e, _ := newTestEngine(t, reg, NewGroup(reg))
	if got := NewLoop(e, 0).interval; got != DefaultFrameInterval {
		t.Errorf("interval = %v, want %v", got, DefaultFrameInterval)
	}
	expectPanic(t, "carbon: nil engine in NewLoop", func() { NewLoop(nil, 0) })
}
