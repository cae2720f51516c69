package room

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Dimension bounds in meters. Width and length share a bound; height has its own.
const (
	MinWidth  = 3
	MaxWidth  = 10
	MinLength = 3
	MaxLength = 10
	MinHeight = 2
	MaxHeight = 4
)

// ResizeStep is the delta applied per press of a +/- control in the settings panel.
const ResizeStep = 0.1

// Defaults for a new session.
const (
	DefaultWidth  = 5
	DefaultLength = 5
	DefaultHeight = 3
)

// Axis names the room dimension a resize applies to.
type Axis int

const (
	Width Axis = iota
	Length
	Height
)

var axisNames = [...]string{"width", "length", "height"}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxis accepts "width", "length" or "height" (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range axisNames {
		if n == s {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q (use width, length, or height)", s)
}

// Room holds the room dimensions (meters) and wall appearance.
// Width, Length and Height are always within their bounds; only Resize changes them.
type Room struct {
	Width     float32
	Length    float32
	Height    float32
	WallColor Color
}

// New returns a 5×5×3 room with white walls.
func New() Room {
	return Room{
		Width:     DefaultWidth,
		Length:    DefaultLength,
		Height:    DefaultHeight,
		WallColor: White,
	}
}

// Resize adds delta to the given axis and clamps the result to that axis' bounds.
// Requests past a bound leave the value at the bound. Unknown axes are ignored.
func (r *Room) Resize(axis Axis, delta float32) {
	switch axis {
	case Width:
		r.Width = clamp(r.Width+delta, MinWidth, MaxWidth)
	case Length:
		r.Length = clamp(r.Length+delta, MinLength, MaxLength)
	case Height:
		r.Height = clamp(r.Height+delta, MinHeight, MaxHeight)
	}
}

// SetWallColor replaces the wall color.
func (r *Room) SetWallColor(c Color) {
	r.WallColor = c
}

// Dimension returns the current value of axis.
func (r Room) Dimension(axis Axis) float32 {
	switch axis {
	case Width:
		return r.Width
	case Length:
		return r.Length
	case Height:
		return r.Height
	}
	return 0
}

func clamp(v, lo, hi float32) float32 {
	if math32.IsNaN(v) {
		return lo
	}
	return math32.Min(hi, math32.Max(lo, v))
}
