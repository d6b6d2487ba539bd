package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit specifies how a Value is interpreted.
type Unit uint8

const (
	UnitPixel   Unit = iota // Absolute pixels
	UnitPercent             // Percentage of parent's available space
)

// Value represents a dimension that is either pixels or a percentage.
type Value struct {
	Amount float64
	Unit   Unit
}

// Pixels returns a Value representing an absolute number of pixels.
func Pixels(n float64) Value {
	return Value{Amount: n, Unit: UnitPixel}
}

// Percent returns a Value representing a percentage of available space.
// The value is on a 0-100 scale (50.0 = 50%).
func Percent(p float64) Value {
	return Value{Amount: p, Unit: UnitPercent}
}

// Resolve computes the actual value given available space.
func (v Value) Resolve(available float64) float64 {
	switch v.Unit {
	case UnitPercent:
		return available * v.Amount / 100.0
	default:
		return v.Amount
	}
}

// String formats the value the way Parse reads it ("12px", "50%").
func (v Value) String() string {
	amount := strconv.FormatFloat(v.Amount, 'f', -1, 64)
	if v.Unit == UnitPercent {
		return amount + "%"
	}
	return amount + "px"
}

// Parse reads "12px", "12" (pixels) or "50%".
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	unit := UnitPixel
	switch {
	case strings.HasSuffix(s, "%"):
		unit = UnitPercent
		s = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return Value{Amount: amount, Unit: unit}, nil
}
