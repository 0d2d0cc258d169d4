// Package cloud implements volumetric cloud ray marching: slab ray/box
// intersection, step-wise density sampling, Beer-Lambert optical depth
// accumulation, and front-to-back color compositing with early termination.
package cloud

import (
	"fmt"

	"github.com/kmw-dev/go-cloud-raymarcher/pkg/core"
)

// MaxStepCount caps the per-ray march length. Together with the fixed step
// loop this gives every trace a deterministic worst-case cost.
const MaxStepCount = 256

// Params is the tunable cloud parameter block. It is a plain value: take a
// snapshot per frame and pass it in, never share a mutable instance with
// running traces.
type Params struct {
	BaseColor         core.Vec3 // Cloud albedo tint
	DensityMultiplier float64   // Linear scale applied above the threshold, >= 0
	Threshold         float64   // Soft density cutoff in [0,1]
	Absorption        float64   // Beer-Lambert absorption coefficient, > 0
	StepCount         int       // Fixed march steps in [1, MaxStepCount]
}

// DefaultParams returns the canonical cloud look
func DefaultParams() Params {
	return Params{
		BaseColor:         core.NewVec3(0.9, 0.9, 1.0),
		DensityMultiplier: 2.0,
		Threshold:         0.2,
		Absorption:        3.0,
		StepCount:         16,
	}
}

// Validate rejects out-of-range parameters. This is the configuration
// boundary: the tracer assumes validated parameters and never re-checks
// them per pixel.
func (p Params) Validate() error {
	if p.DensityMultiplier < 0 {
		return fmt.Errorf("cloud: density multiplier must be >= 0, got %g", p.DensityMultiplier)
	}
	if p.Threshold < 0 || p.Threshold > 1 {
		return fmt.Errorf("cloud: threshold must be in [0,1], got %g", p.Threshold)
	}
	if p.Absorption <= 0 {
		return fmt.Errorf("cloud: absorption must be > 0, got %g", p.Absorption)
	}
	if p.StepCount < 1 || p.StepCount > MaxStepCount {
		return fmt.Errorf("cloud: step count must be in [1,%d], got %d", MaxStepCount, p.StepCount)
	}
	return nil
}
