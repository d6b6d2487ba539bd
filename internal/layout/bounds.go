package layout

// Bounds is a resolved (width, height) pair in pixels.
type Bounds struct {
	Width, Height float64
}

// Size2D is an unresolved (width, height) pair.
type Size2D struct {
	Width, Height Value
}

// Within resolves both dimensions against the parent's bounds.
func (s Size2D) Within(parent Bounds) Bounds {
	return Bounds{
		Width:  s.Width.Resolve(parent.Width),
		Height: s.Height.Resolve(parent.Height),
	}
}

// Contains reports whether the local point (x, y) falls inside the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}
