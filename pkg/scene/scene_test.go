package scene

import (
	"testing"

	"github.com/kmw-dev/go-cloud-raymarcher/pkg/cloud"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/core"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/volume"
)

func TestCloudBox(t *testing.T) {
	box := CloudBox()

	if box.Min != core.NewVec3(-1, 0, -1) || box.Max != core.NewVec3(1, 2, 1) {
		t.Errorf("Unexpected cloud box %v..%v", box.Min, box.Max)
	}
	if !box.IsValid() {
		t.Error("Cloud box must be valid")
	}
}

func TestNewDefaultScene(t *testing.T) {
	s, err := NewDefaultScene(320, 180, cloud.DefaultParams())
	if err != nil {
		t.Fatalf("NewDefaultScene failed: %v", err)
	}

	if s.GetCamera().Width() != 320 || s.GetCamera().Height() != 180 {
		t.Errorf("Camera dimensions %dx%d, expected 320x180", s.GetCamera().Width(), s.GetCamera().Height())
	}
	if s.GetTracer().Box() != CloudBox() {
		t.Errorf("Tracer box %v does not match the cloud box", s.GetTracer().Box())
	}
	top, bottom := s.GetBackgroundColors()
	if top == bottom {
		t.Error("Expected a sky gradient, got identical colors")
	}

	// The camera looks at the box center, so the central ray must hit the
	// cloud and pick up some density.
	ray := s.GetCamera().GetRay(160, 90)
	result := s.GetTracer().Trace(ray)
	if result.Outcome == cloud.OutcomeMiss {
		t.Error("Central ray should enter the volume")
	}
	if result.Alpha <= 0 {
		t.Errorf("Expected visible cloud on the central ray, got alpha %v", result.Alpha)
	}
}

func TestNewDefaultScene_RejectsBadParams(t *testing.T) {
	params := cloud.DefaultParams()
	params.StepCount = 0

	if _, err := NewDefaultScene(100, 100, params); err == nil {
		t.Error("Expected parameter validation error")
	}
}

func TestNewUniformScene(t *testing.T) {
	s, err := NewUniformScene(100, 100, cloud.DefaultParams(), 1.0)
	if err != nil {
		t.Fatalf("NewUniformScene failed: %v", err)
	}

	result := s.GetTracer().Trace(s.GetCamera().GetRay(50, 50))
	if result.Alpha <= 0 {
		t.Errorf("Expected opaque fog on the central ray, got alpha %v", result.Alpha)
	}
}

func TestNewVolumeScene(t *testing.T) {
	grid, err := volume.NewGrid(8, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	grid.Fill(func(u, v, w float64) float64 { return 1 })

	s, err := NewVolumeScene(100, 100, cloud.DefaultParams(), grid)
	if err != nil {
		t.Fatalf("NewVolumeScene failed: %v", err)
	}

	result := s.GetTracer().Trace(s.GetCamera().GetRay(50, 50))
	if result.Alpha <= 0 {
		t.Errorf("Expected visible baked volume, got alpha %v", result.Alpha)
	}
}
