package room

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a "#RRGGBB" hex color as produced by a color picker.
type Color string

// White is the default wall and furniture color.
const White Color = "#FFFFFF"

// RGBA returns 8-bit channels with full alpha. Values that do not parse as hex render white.
func (c Color) RGBA() (r, g, b, a uint8) {
	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return 255, 255, 255, 255
	}
	r, g, b = parsed.RGB255()
	return r, g, b, 255
}

// Valid reports whether c parses as a hex color.
func (c Color) Valid() bool {
	_, err := colorful.Hex(string(c))
	return err == nil
}

// Normalize upper-cases the hex digits and adds a missing leading '#'.
func (c Color) Normalize() Color {
	s := strings.TrimSpace(string(c))
	if s != "" && !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return Color(strings.ToUpper(s))
}
