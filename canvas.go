package carbon

import "fmt"

// Canvas is the drawing backend used by draw hooks. Rectangles are given in
// local coordinates and mapped through xf.
type Canvas interface {
	Save()
	Restore()
	ClipRect(b Bounds, xf Transform)
	FillRect(b Bounds, xf Transform, fill Color)
	StrokeRect(b Bounds, xf Transform, stroke Color, width float64)
}

type nopCanvas struct{}

func (nopCanvas) Save()                                        {}
func (nopCanvas) Restore()                                     {}
func (nopCanvas) ClipRect(Bounds, Transform)                   {}
func (nopCanvas) FillRect(Bounds, Transform, Color)            {}
func (nopCanvas) StrokeRect(Bounds, Transform, Color, float64) {}

// RecordingCanvas records draw calls as strings, for tests and debugging.
type RecordingCanvas struct {
	Calls []string
	saves int
}

var _ Canvas = (*RecordingCanvas)(nil)

// Save implements Canvas.
func (c *RecordingCanvas) Save() {
	c.saves++
	c.Calls = append(c.Calls, "save")
}

// Restore implements Canvas. An unmatched Restore panics.
func (c *RecordingCanvas) Restore() {
	if c.saves == 0 {
		panic("carbon: canvas restore without save")
	}
	c.saves--
	c.Calls = append(c.Calls, "restore")
}

// ClipRect implements Canvas.
func (c *RecordingCanvas) ClipRect(b Bounds, xf Transform) {
	c.Calls = append(c.Calls, fmt.Sprintf("clip %gx%g %v", b.Width, b.Height, xf))
}

// FillRect implements Canvas.
func (c *RecordingCanvas) FillRect(b Bounds, xf Transform, fill Color) {
	c.Calls = append(c.Calls, fmt.Sprintf("fill %gx%g %v %s", b.Width, b.Height, xf, fill))
}

// StrokeRect implements Canvas.
func (c *RecordingCanvas) StrokeRect(b Bounds, xf Transform, stroke Color, width float64) {
	c.Calls = append(c.Calls, fmt.Sprintf("stroke %gx%g %v %s %g", b.Width, b.Height, xf, stroke, width))
}

// Depth returns the number of unmatched Save calls.
func (c *RecordingCanvas) Depth() int {
	return c.saves
}

// Reset clears the recorded calls.
func (c *RecordingCanvas) Reset() {
	c.Calls = nil
	c.saves = 0
}
