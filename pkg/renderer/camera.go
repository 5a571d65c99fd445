package renderer

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Camera generates rays through a fixed image plane one unit down -z.
// Only Shift mutates it, and it never rotates.
type Camera struct {
	origin          core.Point
	upperLeftCorner core.Point
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera at the origin looking down -z with the given
// vertical field of view in degrees
func NewCamera(vfovDegrees, aspectRatio float64) *Camera {
	theta := vfovDegrees * math.Pi / 180.0
	h := math.Abs(math.Tan(theta / 2))
	viewportHeight := 2.0 * h
	viewportWidth := aspectRatio * viewportHeight
	focalLength := 1.0

	origin := core.NewVec3(0, 0, 0)
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, viewportHeight, 0)
	upperLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Add(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, focalLength))

	return &Camera{
		origin:          origin,
		upperLeftCorner: upperLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// GetRay generates a ray for screen coordinates (u, v) where u runs
// left to right and v runs top to bottom, both in [0, 1]
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.upperLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Subtract(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Shift translates the camera and its image plane by delta
func (c *Camera) Shift(delta core.Vec3) {
	c.origin = c.origin.Add(delta)
	c.upperLeftCorner = c.upperLeftCorner.Add(delta)
}

// Origin returns the camera position
func (c *Camera) Origin() core.Point {
	return c.origin
}

// Viewport returns the image plane width and height in world units
func (c *Camera) Viewport() (width, height float64) {
	return c.horizontal.Length(), c.vertical.Length()
}
