package cloud

import (
	"fmt"
	"math"

	"github.com/kmw-dev/go-cloud-raymarcher/pkg/core"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/volume"
)

const (
	// MinTransmittance is the early-exit threshold. Once a ray's
	// transmittance drops to this value the remaining contribution is
	// bounded by it (transmittance never increases), so the march stops.
	// Purely a performance/quality tradeoff, not a correctness requirement.
	MinTransmittance = 0.05

	// lowLight is the ambient floor of the height-gradient light proxy:
	// samples at the bottom of the box are lit at lowLight, samples at the
	// top at 1. A heuristic stand-in for scattering, not a physical law.
	lowLight = 0.6
)

// RayThrough builds the viewing ray from the viewer position through a
// world-space surface point. Surface points are distinct from the viewer by
// construction of the host geometry, so the direction is never degenerate.
func RayThrough(viewer, surface core.Vec3) core.Ray {
	return core.NewRay(viewer, surface.Subtract(viewer).Normalize())
}

// Outcome classifies how a trace terminated
type Outcome int

const (
	// OutcomeMiss means the ray never entered the bounding box
	OutcomeMiss Outcome = iota
	// OutcomeEarlyExit means transmittance fell to MinTransmittance
	// before the step budget ran out
	OutcomeEarlyExit
	// OutcomeCompleted means the march ran all StepCount steps
	OutcomeCompleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMiss:
		return "miss"
	case OutcomeEarlyExit:
		return "early-exit"
	case OutcomeCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Result is the final value of one trace: a premultiplied color and the
// alpha derived from residual transmittance. A miss is distinguishable from
// a traversed-but-empty volume through Outcome (a miss has alpha 0 by
// definition; an empty traversal also has alpha 0 but OutcomeCompleted).
type Result struct {
	Color   core.Vec3 // Accumulated color, already scaled by per-step transmittance
	Alpha   float64   // 1 - residual transmittance
	Outcome Outcome
	Steps   int // March steps actually executed (0 for a miss)
}

// Tracer marches rays through a density field bounded by an axis-aligned
// box. It is immutable after construction and safe for concurrent use; each
// Trace call is independent with no shared mutable state.
type Tracer struct {
	box    core.AABB
	params Params
	field  volume.DensityField
}

// NewTracer creates a tracer after validating its configuration. Parameter
// errors are rejected here, never inside the march loop.
func NewTracer(box core.AABB, params Params, field volume.DensityField) (*Tracer, error) {
	if !box.IsValid() {
		return nil, fmt.Errorf("cloud: bounding box must have positive extent, got min=%v max=%v", box.Min, box.Max)
	}
	if field == nil {
		return nil, fmt.Errorf("cloud: density field must not be nil")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Tracer{box: box, params: params, field: field}, nil
}

// Box returns the bounding box the tracer marches through
func (t *Tracer) Box() core.AABB {
	return t.box
}

// Params returns the parameter snapshot the tracer was built with
func (t *Tracer) Params() Params {
	return t.params
}

// Trace marches the ray through the bounding box and returns the final
// premultiplied color and alpha. It has exactly three terminal outcomes
// (miss, early exit, completed) and no error paths.
func (t *Tracer) Trace(ray core.Ray) Result {
	tNear, tFar := t.box.Intersect(ray)
	if tNear < 0 {
		// Ray origin is inside the box
		tNear = 0
	}
	if tNear >= tFar {
		return Result{Outcome: OutcomeMiss}
	}

	stepSize := (tFar - tNear) / float64(t.params.StepCount)
	step := ray.Direction.Multiply(stepSize)
	position := ray.At(tNear)
	size := t.box.Size()

	transmittance := 1.0
	accumulated := core.Vec3{}
	outcome := OutcomeCompleted
	steps := 0

	for i := 0; i < t.params.StepCount; i++ {
		steps++

		u := (position.X - t.box.Min.X) / size.X
		v := (position.Y - t.box.Min.Y) / size.Y
		w := (position.Z - t.box.Min.Z) / size.Z

		raw := t.field.Sample(u, v, w)
		density := math.Max(raw-t.params.Threshold, 0) * t.params.DensityMultiplier

		if density > 0 {
			// Beer-Lambert absorption over one piecewise-constant step
			stepTransmittance := math.Exp(-density * stepSize * t.params.Absorption)

			// Height-gradient ambient: brighter toward the top of the box
			light := core.Lerp(lowLight, 1.0, v)
			ambient := t.params.BaseColor.Multiply(light)

			// Front-to-back compositing: the contribution must use the
			// transmittance before this step's attenuation, so the
			// accumulate comes first.
			accumulated = accumulated.Add(ambient.Multiply(transmittance * (1 - stepTransmittance)))
			transmittance *= stepTransmittance

			if transmittance <= MinTransmittance {
				outcome = OutcomeEarlyExit
				break
			}
		}

		position = position.Add(step)
	}

	return Result{
		Color:   accumulated,
		Alpha:   1 - transmittance,
		Outcome: outcome,
		Steps:   steps,
	}
}
