// Package scene bundles a camera, a cloud tracer, and a sky background
// into ready-to-render presets.
package scene

import (
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/cloud"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/core"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/renderer"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/volume"
)

// Scene contains everything one cloud render needs
type Scene struct {
	Camera      *renderer.Camera
	Tracer      *cloud.Tracer
	TopColor    core.Vec3 // Sky gradient at the top of the frame
	BottomColor core.Vec3 // Sky gradient at the bottom of the frame
}

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetTracer returns the scene's cloud tracer
func (s *Scene) GetTracer() *cloud.Tracer {
	return s.Tracer
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// CloudBox returns the canonical cloud bounds: a 2x2x2 cuboid resting on
// the ground plane, centered at (0, 1, 0)
func CloudBox() core.AABB {
	return core.NewAABB(core.NewVec3(-1, 0, -1), core.NewVec3(1, 2, 1))
}

// defaultCamera frames the cloud box from the front left, slightly above
func defaultCamera(width, height int) *renderer.Camera {
	return renderer.NewCamera(renderer.CameraConfig{
		Center: core.NewVec3(-3, 3, 6),
		LookAt: core.NewVec3(0, 1, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  width,
		Height: height,
		VFov:   50,
	})
}

// newScene assembles a preset around a density field
func newScene(width, height int, params cloud.Params, field volume.DensityField) (*Scene, error) {
	tracer, err := cloud.NewTracer(CloudBox(), params, field)
	if err != nil {
		return nil, err
	}
	return &Scene{
		Camera:      defaultCamera(width, height),
		Tracer:      tracer,
		TopColor:    core.NewVec3(0.35, 0.55, 0.85),
		BottomColor: core.NewVec3(0.85, 0.9, 1.0),
	}, nil
}

// NewDefaultScene renders a clumpy analytic cloud in the canonical box
func NewDefaultScene(width, height int, params cloud.Params) (*Scene, error) {
	field := volume.BlobField{
		Blobs: []volume.Blob{
			{Center: core.NewVec3(0.5, 0.45, 0.5), Radius: 0.45},
			{Center: core.NewVec3(0.3, 0.55, 0.42), Radius: 0.3},
			{Center: core.NewVec3(0.68, 0.5, 0.6), Radius: 0.32},
			{Center: core.NewVec3(0.5, 0.68, 0.35), Radius: 0.25},
		},
	}
	return newScene(width, height, params, field)
}

// NewUniformScene fills the whole box with a constant density. Mostly
// useful for parameter tuning: the result is a fog slab.
func NewUniformScene(width, height int, params cloud.Params, density float64) (*Scene, error) {
	return newScene(width, height, params, volume.Uniform(density))
}

// NewVolumeScene renders a baked density grid
func NewVolumeScene(width, height int, params cloud.Params, grid *volume.Grid) (*Scene, error) {
	return newScene(width, height, params, grid)
}
