package carbon

import (
	"fmt"
	"log/slog"
)

// Option is a functional option for configuring an Engine.
type Option func(*Engine) error

// WithEvaluator sets the expression evaluator for bound properties.
// Without one, any bound property fails with ErrUnknownExpr.
func WithEvaluator(ev Evaluator) Option {
	return func(e *Engine) error {
		if ev == nil {
			return fmt.Errorf("evaluator must not be nil")
		}
		e.evaluator = ev
		return nil
	}
}

// WithHost sets the receiver of native messages. Default discards them.
func WithHost(h Host) Option {
	return func(e *Engine) error {
		if h == nil {
			return fmt.Errorf("host must not be nil")
		}
		e.host = h
		return nil
	}
}

// WithCanvas sets the drawing backend. Default draws nothing.
func WithCanvas(c Canvas) Option {
	return func(e *Engine) error {
		if c == nil {
			return fmt.Errorf("canvas must not be nil")
		}
		e.canvas = c
		return nil
	}
}

// WithViewport sets the root bounds. Default is 800x600.
func WithViewport(width, height float64) Option {
	return func(e *Engine) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("viewport must be positive, got %gx%g", width, height)
		}
		e.viewport = Bounds{Width: width, Height: height}
		return nil
	}
}

// WithLogger sets the logger for frame-level events.
// Default is the CARBON_DEBUG file logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) error {
		if l == nil {
			return fmt.Errorf("logger must not be nil")
		}
		e.log = l
		return nil
	}
}

// WithoutDeleteMessages stops the engine from telling the host about
// unmounted elements. Hosts that rebuild their scene every frame don't need
// them.
func WithoutDeleteMessages() Option {
	return func(e *Engine) error {
		e.deleteMessages = false
		return nil
	}
}

// WithStore attaches the store whose changes TickIfDirty watches.
func WithStore(st *Store) Option {
	return func(e *Engine) error {
		if st == nil {
			return fmt.Errorf("store must not be nil")
		}
		e.store = st
		return nil
	}
}
