package carbon

import (
	"sync"
	"sync/atomic"

	"github.com/grindlemire/go-carbon/internal/debug"
)

// Store owns application state read by expressions. It tracks whether any
// state changed since the engine last rendered, and coalesces binding
// callbacks inside Batch.
//
// Thread safety:
//   - State.Get is safe from any goroutine
//   - State.Set must be called from the goroutine that ticks the engine
//
// Example:
//
//	store := carbon.NewStore()
//	count := carbon.NewState(store, int64(0))
//	ev := carbon.ExprTable{"count": count.Expr()}
//	count.Set(count.Get() + 1) // next TickIfDirty renders
type Store struct {
	dirty atomic.Bool
	batch batchContext
}

// batchContext tracks batch state for deferring binding execution.
type batchContext struct {
	mu           sync.Mutex
	depth        int               // 0 when not batching
	pending      map[uint64]func() // keyed by binding id
	pendingOrder []uint64          // order bindings were first triggered
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{batch: batchContext{pending: make(map[uint64]func())}}
}

// bindingIDs makes binding ids unique across every State.
var bindingIDs atomic.Uint64

// State is a value owned by a Store. Expressions read it through Expr;
// bindings observe every Set.
type State[T any] struct {
	mu       sync.RWMutex
	value    T
	bindings []*binding[T]
	store    *Store
}

type binding[T any] struct {
	id     uint64
	fn     func(T)
	active bool
}

// Unbind removes a binding. Calling it twice is a no-op.
type Unbind func()

// NewState creates a state in store. A nil store panics.
func NewState[T any](store *Store, initial T) *State[T] {
	if store == nil {
		panic("carbon: nil store in NewState")
	}
	return &State[T]{value: initial, store: store}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value, marks the store dirty and runs the bindings, or
// defers them until the enclosing Batch completes.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	active := make([]*binding[T], 0, len(s.bindings))
	for _, b := range s.bindings {
		if b.active {
			active = append(active, b)
		}
	}
	s.bindings = active
	s.mu.Unlock()

	s.store.MarkDirty()

	batch := &s.store.batch
	batch.mu.Lock()
	batching := batch.depth > 0
	if batching {
		for _, b := range active {
			fn, captured := b.fn, v
			if _, seen := batch.pending[b.id]; !seen {
				batch.pendingOrder = append(batch.pendingOrder, b.id)
			}
			batch.pending[b.id] = func() { fn(captured) }
		}
	}
	batch.mu.Unlock()

	if batching {
		debug.Log("state set: deferred %d bindings", len(active))
		return
	}
	for _, b := range active {
		b.fn(v)
	}
}

// Update sets the value to fn applied to the current one.
func (s *State[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// Bind registers fn to run on every Set, in registration order.
func (s *State[T]) Bind(fn func(T)) Unbind {
	b := &binding[T]{id: bindingIDs.Add(1), fn: fn, active: true}
	s.mu.Lock()
	s.bindings = append(s.bindings, b)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		b.active = false
		s.mu.Unlock()
	}
}

// Expr returns an expression that evaluates to the state's current value.
func (s *State[T]) Expr() ExprFunc {
	return func(*PropertyContext) (Value, error) {
		return toValue(s.Get()), nil
	}
}

// Batch runs fn and defers binding callbacks until it returns. A binding
// triggered several times runs once, with the last value, in the order it
// was first triggered. Nested batches flush when the outermost returns, and
// a panic in fn still leaves the store usable.
func (st *Store) Batch(fn func()) {
	batch := &st.batch
	batch.mu.Lock()
	batch.depth++
	batch.mu.Unlock()

	defer func() {
		batch.mu.Lock()
		batch.depth--
		var run []func()
		if batch.depth == 0 && len(batch.pending) > 0 {
			run = make([]func(), 0, len(batch.pendingOrder))
			for _, id := range batch.pendingOrder {
				if cb, ok := batch.pending[id]; ok {
					run = append(run, cb)
				}
			}
			batch.pending = make(map[uint64]func())
			batch.pendingOrder = nil
		}
		batch.mu.Unlock()

		for _, cb := range run {
			cb()
		}
	}()

	fn()
}

// toValue wraps a Go value in the matching Value tag. Types without a tag
// become Any.
func toValue[T any](v T) Value {
	switch x := any(v).(type) {
	case Value:
		return x
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int64:
		return Int(x)
	case float64:
		return Float(x)
	case string:
		return String(x)
	case Size:
		return SizeValue(x)
	case Transform:
		return TransformValue(x)
	case Color:
		return ColorValue(x)
	case []Value:
		return List(x...)
	default:
		return Any(x)
	}
}
