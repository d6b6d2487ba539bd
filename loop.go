package carbon

import (
	"context"
	"fmt"
	"time"
)

// DefaultFrameInterval is the Loop frame interval when none is given.
const DefaultFrameInterval = 16 * time.Millisecond

// Loop drives an Engine in real time. Every interval it runs a frame if one
// is needed (see Engine.TickIfDirty); between frames it runs handlers queued
// by watchers or QueueUpdate. Everything touching the tree happens on the
// goroutine that called Run.
type Loop struct {
	engine   *Engine
	interval time.Duration
	queue    chan func()
	watchers []Watcher
}

// NewLoop creates a loop for e. A non-positive interval means
// DefaultFrameInterval.
func NewLoop(e *Engine, interval time.Duration, watchers ...Watcher) *Loop {
	if e == nil {
		panic("carbon: nil engine in NewLoop")
	}
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{
		engine:   e,
		interval: interval,
		queue:    make(chan func(), 256),
		watchers: watchers,
	}
}

// QueueUpdate schedules fn to run on the loop. It is safe from any goroutine
// and reports false when the queue is full.
func (l *Loop) QueueUpdate(fn func()) bool {
	select {
	case l.queue <- fn:
		return true
	default:
		return false
	}
}

// Run renders the first frame, starts the watchers, and loops until ctx is
// done or a frame fails. Watchers are stopped before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	if _, err := l.engine.TickIfDirty(); err != nil {
		return err
	}

	stop := make(chan struct{})
	defer close(stop)
	for _, w := range l.watchers {
		w.Start(l.queue, stop)
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.queue:
			fn()
		case <-ticker.C:
			if _, err := l.engine.TickIfDirty(); err != nil {
				return fmt.Errorf("loop: %w", err)
			}
		}
	}
}
