package renderer

import (
	"math"
	"testing"

	"github.com/kmw-dev/go-cloud-raymarcher/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(-3, 3, 6),
		LookAt: core.NewVec3(0, 1, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  200,
		Height: 100,
		VFov:   50,
	}
}

func TestCamera_CenterRayPointsAtLookAt(t *testing.T) {
	config := testCameraConfig()
	camera := NewCamera(config)

	// The ray through the image center points from the camera toward the
	// look-at target.
	ray := camera.GetRay(config.Width/2, config.Height/2)
	expected := config.LookAt.Subtract(config.Center).Normalize()

	// Half a pixel off center is the closest we can get
	if ray.Direction.Subtract(expected).Length() > 0.02 {
		t.Errorf("Center ray %v too far from %v", ray.Direction, expected)
	}
	if ray.Origin != config.Center {
		t.Errorf("Expected ray origin %v, got %v", config.Center, ray.Origin)
	}
}

func TestCamera_RaysAreUnitLength(t *testing.T) {
	config := testCameraConfig()
	camera := NewCamera(config)

	corners := [][2]int{
		{0, 0},
		{config.Width - 1, 0},
		{0, config.Height - 1},
		{config.Width - 1, config.Height - 1},
		{config.Width / 2, config.Height / 2},
	}
	for _, c := range corners {
		ray := camera.GetRay(c[0], c[1])
		if math.Abs(ray.Direction.Length()-1) > 1e-12 {
			t.Errorf("Ray through (%d,%d) has non-unit direction length %v", c[0], c[1], ray.Direction.Length())
		}
	}
}

func TestCamera_ImageOrientation(t *testing.T) {
	// Straight-on camera: +y up, looking down -z
	camera := NewCamera(CameraConfig{
		Center: core.NewVec3(0, 1, 6),
		LookAt: core.NewVec3(0, 1, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  100,
		Height: 100,
		VFov:   45,
	})

	top := camera.GetRay(50, 0)
	bottom := camera.GetRay(50, 99)
	left := camera.GetRay(0, 50)
	right := camera.GetRay(99, 50)

	// Row 0 is the top of the image
	if top.Direction.Y <= bottom.Direction.Y {
		t.Errorf("Expected top row to point higher: top.Y=%v bottom.Y=%v", top.Direction.Y, bottom.Direction.Y)
	}
	// Column 0 is the left of the image
	if left.Direction.X >= right.Direction.X {
		t.Errorf("Expected left column to point left: left.X=%v right.X=%v", left.Direction.X, right.Direction.X)
	}
}

func TestCamera_Deterministic(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	first := camera.GetRay(17, 42)
	second := camera.GetRay(17, 42)

	if first != second {
		t.Errorf("GetRay is not deterministic: %v != %v", first, second)
	}
}
