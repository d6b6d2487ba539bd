package carbon

import (
	"errors"
	"fmt"
	"strings"
)

// Color is an RGBA color with 8-bit channels. The zero value is transparent.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xFF}
}

// RGBA returns a color with the given alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// HexColor parses a hex color string.
// Supported formats: "#RRGGBB", "#RRGGBBAA" and "#RGB".
func HexColor(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	switch len(hex) {
	case 6, 8:
		var ch [4]uint8
		ch[3] = 0xFF
		for i := 0; i < len(hex)/2; i++ {
			v, err := parseHexByte(hex[i*2 : i*2+2])
			if err != nil {
				return Color{}, err
			}
			ch[i] = v
		}
		return RGBA(ch[0], ch[1], ch[2], ch[3]), nil
	case 3:
		// #RGB -> expand to #RRGGBB
		var ch [3]uint8
		for i := range ch {
			v, err := parseHexNibble(hex[i])
			if err != nil {
				return Color{}, err
			}
			// Expand nibble to byte: 0xF -> 0xFF
			ch[i] = v<<4 | v
		}
		return RGB(ch[0], ch[1], ch[2]), nil
	default:
		return Color{}, errors.New("invalid hex color format: expected #RGB, #RRGGBB or #RRGGBBAA")
	}
}

// parseHexByte parses a two-character hex string into a byte.
func parseHexByte(s string) (uint8, error) {
	hi, err := parseHexNibble(s[0])
	if err != nil {
		return 0, err
	}
	lo, err := parseHexNibble(s[1])
	if err != nil {
		return 0, err
	}
	return hi<<4 | lo, nil
}

// parseHexNibble parses a single hex character into a value 0-15.
func parseHexNibble(c byte) (uint8, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex character: %q", c)
	}
}

// String formats the color as #RRGGBBAA.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
