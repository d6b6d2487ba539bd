package carbon

import "fmt"

// InstanceID identifies one node instance for the lifetime of a Registry.
// IDs are minted monotonically starting at 1 and never reused.
type InstanceID uint64

// Registry maps instance ids to nodes and tracks which instances are
// scheduled to leave the render list.
//
// Unmounting is two-phase: MarkForUnmount only records intent, and the engine
// drops marked instances when it builds the next draw list. This keeps the
// tree stable while a property pass is iterating over it.
type Registry struct {
	nextID  InstanceID
	nodes   map[InstanceID]Node
	unmount map[InstanceID]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes:   make(map[InstanceID]Node),
		unmount: make(map[InstanceID]struct{}),
	}
}

// MintID returns a fresh instance id.
func (r *Registry) MintID() InstanceID {
	r.nextID++
	return r.nextID
}

// Register stores node under id. Registering an id twice is a programming
// error and panics.
func (r *Registry) Register(id InstanceID, node Node) {
	if _, exists := r.nodes[id]; exists {
		panic(fmt.Sprintf("carbon: instance %d registered twice", id))
	}
	r.nodes[id] = node
}

// Deregister removes id. Removing an absent id is a no-op.
func (r *Registry) Deregister(id InstanceID) {
	delete(r.nodes, id)
}

// MarkForUnmount flags id for removal from the next draw list.
func (r *Registry) MarkForUnmount(id InstanceID) {
	r.unmount[id] = struct{}{}
}

// IsMarked reports whether id is scheduled for unmount.
func (r *Registry) IsMarked(id InstanceID) bool {
	_, ok := r.unmount[id]
	return ok
}

// Lookup returns the node registered under id.
func (r *Registry) Lookup(id InstanceID) (Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id InstanceID) bool {
	_, ok := r.nodes[id]
	return ok
}

// Len returns the number of registered instances.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// drainUnmounts clears the unmount set and returns how many ids it held.
func (r *Registry) drainUnmounts() int {
	n := len(r.unmount)
	clear(r.unmount)
	return n
}

// deregisterTree deregisters node and every instance it owns.
// When mark is set, each instance is also marked for unmount.
func (r *Registry) deregisterTree(node Node, mark bool) {
	walkOwned(node, func(n Node) {
		r.Deregister(n.InstanceID())
		if mark {
			r.MarkForUnmount(n.InstanceID())
		}
	})
}

// registerTree re-registers any instance under node that was dropped.
func (r *Registry) registerTree(node Node) {
	walkOwned(node, func(n Node) {
		if !r.Contains(n.InstanceID()) {
			r.Register(n.InstanceID(), n)
		}
	})
}
