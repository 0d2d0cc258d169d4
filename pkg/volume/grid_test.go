package volume

import (
	"bytes"
	"math"
	"testing"
)

func TestNewGrid_Validation(t *testing.T) {
	tests := []struct {
		name       string
		nx, ny, nz int
		expectErr  bool
	}{
		{"Valid cube", 32, 32, 32, false},
		{"Valid non-cube", 8, 16, 4, false},
		{"Single voxel", 1, 1, 1, false},
		{"Zero dimension", 0, 32, 32, true},
		{"Negative dimension", 32, -1, 32, true},
		{"Exceeds extent cap", maxGridExtent + 1, 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := NewGrid(tt.nx, tt.ny, tt.nz)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Expected error for %dx%dx%d, got none", tt.nx, tt.ny, tt.nz)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			nx, ny, nz := grid.Dimensions()
			if nx != tt.nx || ny != tt.ny || nz != tt.nz {
				t.Errorf("Expected dimensions %dx%dx%d, got %dx%dx%d", tt.nx, tt.ny, tt.nz, nx, ny, nz)
			}
		})
	}
}

func TestGrid_SampleAtVoxelCenters(t *testing.T) {
	grid, err := NewGrid(4, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	grid.Set(1, 2, 3, 0.5)
	grid.Set(0, 0, 0, 1.0)

	// Sampling exactly at a voxel center returns the stored value
	if got := grid.Sample(1.5/4, 2.5/4, 3.5/4); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected 0.5 at voxel (1,2,3) center, got %v", got)
	}
	if got := grid.Sample(0.5/4, 0.5/4, 0.5/4); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected 1.0 at voxel (0,0,0) center, got %v", got)
	}
}

func TestGrid_SampleInterpolates(t *testing.T) {
	grid, err := NewGrid(2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	grid.Set(0, 0, 0, 0.0)
	grid.Set(1, 0, 0, 1.0)

	// Halfway between the two voxel centers
	if got := grid.Sample(0.5, 0.5, 0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected 0.5 at the midpoint, got %v", got)
	}
	// Quarter of the way
	if got := grid.Sample(0.375, 0.5, 0.5); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("Expected 0.25, got %v", got)
	}
}

func TestGrid_SampleClampsOutside(t *testing.T) {
	grid, err := NewGrid(2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	grid.Fill(func(u, v, w float64) float64 { return 0.8 })

	coords := [][3]float64{
		{-0.1, 0.5, 0.5},
		{1.1, 0.5, 0.5},
		{0.5, -2, 0.5},
		{0.5, 0.5, 3},
		{0, 0, 0},
		{1, 1, 1},
	}
	for _, c := range coords {
		if got := grid.Sample(c[0], c[1], c[2]); math.Abs(got-0.8) > 1e-9 {
			t.Errorf("Sample(%v) = %v, expected clamped 0.8", c, got)
		}
	}
}

func TestGrid_SetClamps(t *testing.T) {
	grid, err := NewGrid(1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	grid.Set(0, 0, 0, 1.5)
	if got := grid.At(0, 0, 0); got != 1.0 {
		t.Errorf("Expected stored value clamped to 1, got %v", got)
	}
	grid.Set(0, 0, 0, -0.5)
	if got := grid.At(0, 0, 0); got != 0.0 {
		t.Errorf("Expected stored value clamped to 0, got %v", got)
	}
}

func TestGrid_EncodeDecodeRoundtrip(t *testing.T) {
	grid, err := NewGrid(5, 3, 7)
	if err != nil {
		t.Fatal(err)
	}
	grid.Fill(func(u, v, w float64) float64 { return (u + v + w) / 3 })

	var buf bytes.Buffer
	if err := grid.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	nx, ny, nz := decoded.Dimensions()
	if nx != 5 || ny != 3 || nz != 7 {
		t.Fatalf("Expected dimensions 5x3x7, got %dx%dx%d", nx, ny, nz)
	}
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				if grid.At(x, y, z) != decoded.At(x, y, z) {
					t.Fatalf("Voxel (%d,%d,%d) changed in roundtrip: %v != %v",
						x, y, z, grid.At(x, y, z), decoded.At(x, y, z))
				}
			}
		}
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not a grid"))); err == nil {
		t.Error("Expected error decoding garbage input")
	}
}
