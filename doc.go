// Package carbon is the runtime engine of a declarative UI framework.
//
// A compiled tree of render nodes is evaluated once per frame: properties are
// recomputed from their literal or expression-bound declarations, control-flow
// nodes (Conditional, Repeat) resolve into concrete children, and the
// resulting tree is drawn. Nodes with a native host representation (Frame,
// Text) are diffed against what was last sent, so the host only receives
// messages for fields that actually changed.
//
// Users import this single package for the engine, node constructors, values
// and the native message protocol.
package carbon
