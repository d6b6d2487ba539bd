package carbon

import "math"

// Transform is a 2D affine transform stored as the coefficients
// [a b c d e f] of the matrix
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// which maps (x, y) to (a*x + c*y + e, b*x + d*y + f).
type Transform [6]float64

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Transform {
	return Transform{1, 0, 0, 1, x, y}
}

// Scale returns a scale by (sx, sy).
func Scale(sx, sy float64) Transform {
	return Transform{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation by theta radians.
func Rotate(theta float64) Transform {
	s, c := math.Sincos(theta)
	return Transform{c, s, -s, c, 0, 0}
}

// Mul returns t * o: o is applied first, then t.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		t[0]*o[0] + t[2]*o[1],
		t[1]*o[0] + t[3]*o[1],
		t[0]*o[2] + t[2]*o[3],
		t[1]*o[2] + t[3]*o[3],
		t[0]*o[4] + t[2]*o[5] + t[4],
		t[1]*o[4] + t[3]*o[5] + t[5],
	}
}

// Apply maps the point (x, y).
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t[0]*x + t[2]*y + t[4], t[1]*x + t[3]*y + t[5]
}

// Inverse returns the inverse transform. A singular transform returns
// ok == false.
func (t Transform) Inverse() (inv Transform, ok bool) {
	det := t[0]*t[3] - t[1]*t[2]
	if det == 0 {
		return Transform{}, false
	}
	r := 1 / det
	return Transform{
		t[3] * r,
		-t[1] * r,
		-t[2] * r,
		t[0] * r,
		(t[2]*t[5] - t[3]*t[4]) * r,
		(t[1]*t[4] - t[0]*t[5]) * r,
	}, true
}

// Coeffs returns the coefficients as a slice, the form sent to hosts.
func (t Transform) Coeffs() []float64 {
	out := make([]float64, len(t))
	copy(out, t[:])
	return out
}
