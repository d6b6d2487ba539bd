// layout.go re-exports size types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package carbon

import "github.com/grindlemire/go-carbon/internal/layout"

// Size is one dimension, in pixels or percent of the parent.
type Size = layout.Value

// Unit specifies how a Size is interpreted.
type Unit = layout.Unit

const (
	UnitPixel   = layout.UnitPixel
	UnitPercent = layout.UnitPercent
)

// Size2D is an unresolved (width, height) pair.
type Size2D = layout.Size2D

// Bounds is a resolved (width, height) pair in pixels.
type Bounds = layout.Bounds

// Px returns a Size of n pixels.
func Px(n float64) Size { return layout.Pixels(n) }

// Percent returns a Size of p percent of the parent (0-100 scale).
func Percent(p float64) Size { return layout.Percent(p) }

// ParseSize reads "12px", "12" or "50%".
func ParseSize(s string) (Size, error) { return layout.Parse(s) }
