package carbon

import (
	"fmt"

	"github.com/samber/lo"
)

// flatten turns property-pass visits into the draw list. Structural nodes
// are replaced, recursively, by their children, and anything marked for
// unmount is dropped with its subtree. No structural node survives.
func (e *Engine) flatten(vs []*visit) []*visit {
	live := lo.Filter(vs, func(v *visit, _ int) bool {
		return !e.registry.IsMarked(v.node.InstanceID())
	})
	out := make([]*visit, 0, len(live))
	for _, v := range live {
		switch k := v.node.Kind(); k {
		case NodeStructural:
			out = append(out, e.flatten(v.children)...)
		case NodeDrawable:
			cp := *v
			cp.children = e.flatten(v.children)
			out = append(out, &cp)
		default:
			panic(fmt.Sprintf("carbon: instance %d has unknown kind %v", v.node.InstanceID(), k))
		}
	}
	return out
}
