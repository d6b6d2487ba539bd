package carbon

import (
	"slices"
	"strconv"
	"strings"
)

// IDPath identifies one visit of a node in the render tree: the chain of
// instance ids from the root down to the node. Nodes materialized by a
// Repeat contribute the id of the template node they were cloned from, and
// each repeat item contributes its index, so a path stays stable across frames
// even though the repeated subtree is rebuilt every frame.
type IDPath []uint64

// Append returns a new path with seg added at the end.
func (p IDPath) Append(seg uint64) IDPath {
	out := make(IDPath, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// Clone returns a copy of p.
func (p IDPath) Clone() IDPath {
	return slices.Clone(p)
}

// Equal reports whether p and o hold the same segments.
func (p IDPath) Equal(o IDPath) bool {
	return slices.Equal(p, o)
}

// Key returns a string form usable as a map key.
func (p IDPath) Key() string {
	var sb strings.Builder
	for i, seg := range p {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(strconv.FormatUint(seg, 10))
	}
	return sb.String()
}

func (p IDPath) String() string {
	return p.Key()
}

// pathSegment returns the segment n contributes to an IDPath.
func pathSegment(n Node) uint64 {
	if s, ok := n.(interface{ pathSegment() uint64 }); ok {
		return s.pathSegment()
	}
	return uint64(n.InstanceID())
}
