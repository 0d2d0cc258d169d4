package renderer

import (
	"math"

	"github.com/kmw-dev/go-cloud-raymarcher/pkg/cloud"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/core"
)

// CameraConfig describes a look-at camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // World up vector
	Width       int       // Output width in pixels
	Height      int       // Output height in pixels
	VFov        float64   // Vertical field of view in degrees
}

// Camera generates one deterministic ray per pixel. Rays go through pixel
// centers; there is no jitter and no depth of field.
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	aspectRatio := float64(config.Width) / float64(config.Height)

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	viewportHeight := 2 * halfHeight
	viewportWidth := aspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// Width returns the output width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the output height in pixels
func (c *Camera) Height() int {
	return c.config.Height
}

// GetRay generates the ray through pixel (i, j), with (0, 0) the top-left
// pixel of the image
func (c *Camera) GetRay(i, j int) core.Ray {
	s := (float64(i) + 0.5) / float64(c.config.Width)
	t := (float64(c.config.Height-1-j) + 0.5) / float64(c.config.Height)

	surfacePoint := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return cloud.RayThrough(c.origin, surfacePoint)
}
