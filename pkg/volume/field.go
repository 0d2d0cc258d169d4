// Package volume provides scalar density fields sampled by normalized
// coordinate. The cloud tracer only depends on the DensityField capability;
// how a field is populated (baked voxel data, analytic shapes) is decided
// here or by the caller.
package volume

import (
	"math"

	"github.com/kmw-dev/go-cloud-raymarcher/pkg/core"
)

// DensityField is a read-only scalar field addressed by normalized
// coordinates. Implementations must be safe for concurrent sampling.
type DensityField interface {
	// Sample returns the density at (u, v, w) in [0,1]^3.
	// Results are expected in [0,1]. Coordinates marginally outside the
	// unit cube (floating-point drift at the box boundary) must not panic;
	// clamping is the conventional policy.
	Sample(u, v, w float64) float64
}

// FieldFunc adapts a plain function to a DensityField
type FieldFunc func(u, v, w float64) float64

func (f FieldFunc) Sample(u, v, w float64) float64 {
	return f(u, v, w)
}

// Uniform is a constant density everywhere in the unit cube
type Uniform float64

func (c Uniform) Sample(u, v, w float64) float64 {
	return float64(c)
}

// Blob is a single soft sphere in normalized field coordinates
type Blob struct {
	Center core.Vec3
	Radius float64
}

// BlobField is a union of smooth radial falloffs. It is an analytic stand-in
// for a baked cloud volume: dense at blob centers, fading smoothly to zero
// at each blob's radius.
type BlobField struct {
	Blobs []Blob
}

// Sample returns the maximum falloff over all blobs
func (f BlobField) Sample(u, v, w float64) float64 {
	p := core.NewVec3(u, v, w)
	density := 0.0

	for _, blob := range f.Blobs {
		if blob.Radius <= 0 {
			continue
		}
		x := p.Subtract(blob.Center).Length() / blob.Radius
		if x >= 1 {
			continue
		}
		// Smooth quadratic falloff, 1 at the center, 0 at the radius
		falloff := 1 - x*x
		density = math.Max(density, falloff*falloff)
	}

	return density
}
