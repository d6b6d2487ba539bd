package carbon

import (
	"time"

	"github.com/grindlemire/go-carbon/internal/debug"
)

// Watcher is an event source a Loop starts when it runs. Handlers are
// delivered through the loop's queue so they run on the engine's goroutine.
type Watcher interface {
	Start(queue chan<- func(), stop <-chan struct{})
}

// ChannelWatcher calls a handler for each value received on a channel.
type ChannelWatcher[T any] struct {
	ch      <-chan T
	handler func(T)
}

// Watch creates a watcher that calls fn on the loop for each value
// received on ch. It stops when ch is closed.
func Watch[T any](ch <-chan T, fn func(T)) *ChannelWatcher[T] {
	return &ChannelWatcher[T]{ch: ch, handler: fn}
}

// Start implements Watcher.
func (w *ChannelWatcher[T]) Start(queue chan<- func(), stop <-chan struct{}) {
	go func() {
		for {
			select {
			case <-stop:
				return
			case v, ok := <-w.ch:
				if !ok {
					return
				}
				select {
				case queue <- func() { w.handler(v) }:
				case <-stop:
					return
				}
			}
		}
	}()
}

type timerWatcher struct {
	interval time.Duration
	handler  func()
}

// OnTimer creates a watcher that calls fn on the loop every interval.
func OnTimer(interval time.Duration, fn func()) Watcher {
	return &timerWatcher{interval: interval, handler: fn}
}

// Start implements Watcher.
func (w *timerWatcher) Start(queue chan<- func(), stop <-chan struct{}) {
	go func() {
		debug.Log("timer watcher started, interval %v", w.interval)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case queue <- w.handler:
				case <-stop:
					return
				}
			}
		}
	}()
}
