// Package placement derives the grid of floor spots a selected piece of furniture
// can be dropped onto. Spots keep a one-meter margin from every wall so furniture
// placed on an edge spot does not clip through it.
package placement

import (
	"github.com/chewxy/math32"

	"room-planner/internal/geom"
)

const (
	// FloorOffset lifts spots just above the floor so they draw on top of it.
	FloorOffset = 0.01
	// WallMargin is the distance kept between the outermost spots and the walls.
	WallMargin = 1
	// DefaultStep is the spacing between neighbouring spots on both axes.
	DefaultStep = 1
)

// Spot is a floor position offered while an instance is selected.
type Spot struct {
	Position geom.Vec3
}

// At returns a spot on the floor at (x, z).
func At(x, z float32) Spot {
	return Spot{Position: geom.Vec3{x, FloorOffset, z}}
}

// Default returns Generate(width, length, DefaultStep, DefaultStep).
func Default(width, length float32) []Spot {
	return Generate(width, length, DefaultStep, DefaultStep)
}

// Generate covers [-width/2+1, width/2-1] × [-length/2+1, length/2-1] with spots
// starting at the lower bound of each axis and advancing by the step while not
// exceeding the upper bound. X is the outer loop. A room too small for any interior
// spot, or a non-positive step, yields no spots.
func Generate(width, length, stepX, stepZ float32) []Spot {
	xs := axisPoints(width, stepX)
	zs := axisPoints(length, stepZ)
	if len(xs) == 0 || len(zs) == 0 {
		return nil
	}
	spots := make([]Spot, 0, len(xs)*len(zs))
	for _, x := range xs {
		for _, z := range zs {
			spots = append(spots, At(x, z))
		}
	}
	return spots
}

// axisPoints computes lo + i*step rather than accumulating so long rows do not drift.
func axisPoints(extent, step float32) []float32 {
	if !(step > 0) || math32.IsInf(step, 0) || math32.IsNaN(extent) {
		return nil
	}
	lo := -extent/2 + WallMargin
	hi := extent/2 - WallMargin
	if lo > hi {
		return nil
	}
	var pts []float32
	for i := 0; ; i++ {
		v := lo + float32(i)*step
		if v > hi {
			break
		}
		pts = append(pts, v)
	}
	return pts
}

// Nearest returns the spot closest to (x, z) on the floor, provided it lies within
// tolerance on both axes.
func Nearest(spots []Spot, x, z, tolerance float32) (Spot, bool) {
	best, found := Spot{}, false
	var bestDist float32
	for _, s := range spots {
		dx, dz := s.Position[0]-x, s.Position[2]-z
		if math32.Abs(dx) > tolerance || math32.Abs(dz) > tolerance {
			continue
		}
		if d := dx*dx + dz*dz; !found || d < bestDist {
			best, bestDist, found = s, d, true
		}
	}
	return best, found
}

// Contains reports whether p lies inside the spot area of a width × length room.
func Contains(width, length float32, p geom.Vec3) bool {
	return p[0] >= -width/2+WallMargin && p[0] <= width/2-WallMargin &&
		p[2] >= -length/2+WallMargin && p[2] <= length/2-WallMargin
}
