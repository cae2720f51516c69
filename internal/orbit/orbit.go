// Package orbit is the camera rig of the planner view: a point on a sphere around a
// target, steered by pointer drags and the mouse wheel. Zoom and view resets ease in
// over a few frames instead of jumping.
package orbit

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"room-planner/internal/geom"
)

const (
	// MaxPolar keeps the camera at or above the floor plane.
	MaxPolar = math32.Pi / 2
	// MinDistance and MaxDistance bound zoom.
	MinDistance = 2
	MaxDistance = 25
	// RadiansPerPixel converts drag distance to rotation.
	RadiansPerPixel = 0.005
	// ZoomFactor is the relative distance change per wheel notch.
	ZoomFactor = 0.1
	// ZoomDuration and ResetDuration are animation lengths in seconds.
	ZoomDuration  = 0.15
	ResetDuration = 0.6
)

// HomeAzimuth and HomePolar look at the origin from the (1, 1, 1) diagonal.
var (
	HomeAzimuth = math32.Pi / 4
	HomePolar   = math32.Acos(1 / math32.Sqrt(3))
)

// Camera orbits Target. Polar is measured from straight up, Azimuth around the
// vertical axis from +Z towards +X.
type Camera struct {
	Target   geom.Vec3
	Azimuth  float32
	Polar    float32
	Distance float32

	home      float32
	goal      float32 // distance the running zoom ends at
	zoom      *gween.Tween
	reset     [3]*gween.Tween // azimuth, polar, distance
	resetDone [3]bool
	resetting bool
}

// New places the camera distance away from the origin on the home diagonal.
func New(distance float32) *Camera {
	d := clamp(distance, MinDistance, MaxDistance)
	return &Camera{
		Azimuth:  HomeAzimuth,
		Polar:    HomePolar,
		Distance: d,
		home:     d,
		goal:     d,
	}
}

// Position returns the eye position in world space.
func (c *Camera) Position() geom.Vec3 {
	sp, cp := math32.Sincos(c.Polar)
	sa, ca := math32.Sincos(c.Azimuth)
	return c.Target.Add(geom.Vec3{
		c.Distance * sp * sa,
		c.Distance * cp,
		c.Distance * sp * ca,
	})
}

// Animating reports whether a zoom or reset is still easing.
func (c *Camera) Animating() bool {
	return c.zoom != nil || c.resetting
}

// Drag rotates by a pointer movement in pixels. Dragging right turns the view
// right and dragging down lifts the camera. A running reset is abandoned.
func (c *Camera) Drag(dx, dy float32) {
	c.resetting = false
	c.Azimuth = math32.Mod(c.Azimuth-dx*RadiansPerPixel, 2*math32.Pi)
	c.Polar = clamp(c.Polar-dy*RadiansPerPixel, 0, MaxPolar)
}

// Zoom eases towards the target for positive wheel values and away for negative.
// Notches received while a zoom is running add up.
func (c *Camera) Zoom(wheel float32) {
	if wheel == 0 {
		return
	}
	c.resetting = false
	c.goal = clamp(c.goal*(1-wheel*ZoomFactor), MinDistance, MaxDistance)
	c.zoom = gween.New(c.Distance, c.goal, ZoomDuration, ease.OutCubic)
}

// Reset eases back to the home view.
func (c *Camera) Reset() {
	c.zoom = nil
	c.goal = c.home
	// Take the short way round.
	az := math32.Remainder(c.Azimuth-HomeAzimuth, 2*math32.Pi) + HomeAzimuth
	c.reset = [3]*gween.Tween{
		gween.New(az, HomeAzimuth, ResetDuration, ease.InOutQuad),
		gween.New(c.Polar, HomePolar, ResetDuration, ease.InOutQuad),
		gween.New(c.Distance, c.home, ResetDuration, ease.InOutQuad),
	}
	c.resetDone = [3]bool{}
	c.resetting = true
}

// Update advances running animations by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.zoom != nil {
		v, done := c.zoom.Update(dt)
		c.Distance = v
		if done {
			c.zoom = nil
		}
	}
	if !c.resetting {
		return
	}
	fields := [3]*float32{&c.Azimuth, &c.Polar, &c.Distance}
	for i, tw := range c.reset {
		if c.resetDone[i] {
			continue
		}
		*fields[i], c.resetDone[i] = tw.Update(dt)
	}
	if c.resetDone[0] && c.resetDone[1] && c.resetDone[2] {
		c.resetting = false
	}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Min(hi, math32.Max(lo, v))
}
