package carbon

import (
	"maps"
	"slices"
)

// mountState tracks which native elements the host currently holds, keyed
// by IDPath.
// Uses mark-and-sweep: each draw pass marks visited paths, then sweep
// reports paths that were not visited so the host can drop them.
type mountState struct {
	mounted    map[string]mountEntry
	activeKeys map[string]bool // Marked during the draw pass, swept after
}

type mountEntry struct {
	element ElementKind
	path    IDPath
}

func newMountState() *mountState {
	return &mountState{
		mounted:    make(map[string]mountEntry),
		activeKeys: make(map[string]bool),
	}
}

// mark records path as drawn this frame and reports whether it is new to
// the host.
func (ms *mountState) mark(element ElementKind, path IDPath) bool {
	key := path.Key()
	ms.activeKeys[key] = true // Mark as active this frame
	if _, ok := ms.mounted[key]; ok {
		return false
	}
	ms.mounted[key] = mountEntry{element: element, path: path.Clone()}
	return true
}

// sweep forgets every mounted path that was not marked since the last sweep
// and returns them in key order.
func (ms *mountState) sweep() []mountEntry {
	var gone []mountEntry
	for _, key := range slices.Sorted(maps.Keys(ms.mounted)) {
		if !ms.activeKeys[key] {
			gone = append(gone, ms.mounted[key])
			delete(ms.mounted, key)
		}
	}
	// Reset active keys for next frame
	ms.activeKeys = make(map[string]bool)
	return gone
}

// isMounted reports whether path is held by the host.
func (ms *mountState) isMounted(path IDPath) bool {
	_, ok := ms.mounted[path.Key()]
	return ok
}

// len returns the number of mounted paths.
func (ms *mountState) len() int {
	return len(ms.mounted)
}
