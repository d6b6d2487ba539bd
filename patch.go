package carbon

import "slices"

// Patch holds the fields of an Update. A nil field is unchanged since the
// last message for the same path.
type Patch struct {
	Depth     *int      `json:"depth,omitempty"`
	SizeX     *float64  `json:"size_x,omitempty"`
	SizeY     *float64  `json:"size_y,omitempty"`
	Transform []float64 `json:"transform,omitempty"`
	Content   *string   `json:"content,omitempty"`
}

// IsEmpty reports whether no field is set.
func (p Patch) IsEmpty() bool {
	return p.Depth == nil && p.SizeX == nil && p.SizeY == nil &&
		p.Transform == nil && p.Content == nil
}

// nativeFields are the values computed for a native node in one draw pass.
type nativeFields struct {
	depth      int
	sizeX      float64
	sizeY      float64
	transform  []float64
	content    string
	hasContent bool
}

// patchCache remembers the last fields sent for each path.
type patchCache struct {
	sent map[string]nativeFields
}

func newPatchCache() *patchCache {
	return &patchCache{sent: make(map[string]nativeFields)}
}

// diff compares f to what was last sent for key, records f, and returns the
// changed fields. The first diff for a key reports every field.
func (c *patchCache) diff(key string, f nativeFields) (Patch, bool) {
	prev, seen := c.sent[key]
	var p Patch
	if !seen || prev.depth != f.depth {
		p.Depth = ptr(f.depth)
	}
	if !seen || prev.sizeX != f.sizeX {
		p.SizeX = ptr(f.sizeX)
	}
	if !seen || prev.sizeY != f.sizeY {
		p.SizeY = ptr(f.sizeY)
	}
	if !seen || !slices.Equal(prev.transform, f.transform) {
		p.Transform = slices.Clone(f.transform)
	}
	if f.hasContent && (!seen || !prev.hasContent || prev.content != f.content) {
		p.Content = ptr(f.content)
	}
	c.sent[key] = f
	return p, !p.IsEmpty()
}

// forget drops the cache entry for key so a later mount starts from a fresh
// baseline.
func (c *patchCache) forget(key string) {
	delete(c.sent, key)
}

func ptr[T any](v T) *T { return &v }
