package volume

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/gzip"
)

// gridMagic identifies the baked volume file format
var gridMagic = [4]byte{'C', 'V', 'G', '1'}

// maxGridExtent bounds a single grid dimension when decoding, so a corrupt
// header cannot trigger a huge allocation.
const maxGridExtent = 4096

// Grid is a baked voxel density field with trilinear filtering. Voxel
// centers sit at ((i+0.5)/nx, (j+0.5)/ny, (k+0.5)/nz); sampling outside
// [0,1]^3 clamps to the boundary voxels.
type Grid struct {
	nx, ny, nz int
	data       []float32
}

// NewGrid creates a zero-filled grid with the given dimensions
func NewGrid(nx, ny, nz int) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("volume: grid dimensions must be positive, got %dx%dx%d", nx, ny, nz)
	}
	if nx > maxGridExtent || ny > maxGridExtent || nz > maxGridExtent {
		return nil, fmt.Errorf("volume: grid dimensions %dx%dx%d exceed maximum extent %d", nx, ny, nz, maxGridExtent)
	}
	return &Grid{
		nx:   nx,
		ny:   ny,
		nz:   nz,
		data: make([]float32, nx*ny*nz),
	}, nil
}

// Dimensions returns the voxel counts along each axis
func (g *Grid) Dimensions() (nx, ny, nz int) {
	return g.nx, g.ny, g.nz
}

func (g *Grid) index(x, y, z int) int {
	return (z*g.ny+y)*g.nx + x
}

// At returns the stored density of a voxel
func (g *Grid) At(x, y, z int) float64 {
	return float64(g.data[g.index(x, y, z)])
}

// Set stores a density value in a voxel, clamped to [0,1]
func (g *Grid) Set(x, y, z int, value float64) {
	g.data[g.index(x, y, z)] = float32(math.Max(0, math.Min(1, value)))
}

// Fill sets every voxel from a function of its normalized center coordinate
func (g *Grid) Fill(f func(u, v, w float64) float64) {
	for z := 0; z < g.nz; z++ {
		w := (float64(z) + 0.5) / float64(g.nz)
		for y := 0; y < g.ny; y++ {
			v := (float64(y) + 0.5) / float64(g.ny)
			for x := 0; x < g.nx; x++ {
				u := (float64(x) + 0.5) / float64(g.nx)
				g.Set(x, y, z, f(u, v, w))
			}
		}
	}
}

// Sample returns the trilinearly filtered density at (u, v, w)
func (g *Grid) Sample(u, v, w float64) float64 {
	x0, x1, fx := g.axisWeights(u, g.nx)
	y0, y1, fy := g.axisWeights(v, g.ny)
	z0, z1, fz := g.axisWeights(w, g.nz)

	c000 := g.At(x0, y0, z0)
	c100 := g.At(x1, y0, z0)
	c010 := g.At(x0, y1, z0)
	c110 := g.At(x1, y1, z0)
	c001 := g.At(x0, y0, z1)
	c101 := g.At(x1, y0, z1)
	c011 := g.At(x0, y1, z1)
	c111 := g.At(x1, y1, z1)

	c00 := c000 + (c100-c000)*fx
	c10 := c010 + (c110-c010)*fx
	c01 := c001 + (c101-c001)*fx
	c11 := c011 + (c111-c011)*fx

	c0 := c00 + (c10-c00)*fy
	c1 := c01 + (c11-c01)*fy

	return c0 + (c1-c0)*fz
}

// axisWeights maps a normalized coordinate to the two bracketing voxel
// indices and the interpolation weight between them, clamping at the edges.
func (g *Grid) axisWeights(coord float64, n int) (i0, i1 int, frac float64) {
	coord = math.Max(0, math.Min(1, coord))
	x := coord*float64(n) - 0.5

	floor := math.Floor(x)
	frac = x - floor

	i0 = int(floor)
	i1 = i0 + 1
	if i0 < 0 {
		i0 = 0
	}
	if i1 > n-1 {
		i1 = n - 1
	}
	return i0, i1, frac
}

// Encode writes the grid as a gzip-compressed binary stream
func (g *Grid) Encode(w io.Writer) error {
	zw := gzip.NewWriter(w)

	header := struct {
		Magic      [4]byte
		Nx, Ny, Nz uint32
	}{gridMagic, uint32(g.nx), uint32(g.ny), uint32(g.nz)}

	if err := binary.Write(zw, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("volume: writing grid header: %w", err)
	}
	if err := binary.Write(zw, binary.LittleEndian, g.data); err != nil {
		return fmt.Errorf("volume: writing grid data: %w", err)
	}
	return zw.Close()
}

// Decode reads a grid written by Encode
func Decode(r io.Reader) (*Grid, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("volume: opening grid stream: %w", err)
	}
	defer zr.Close()

	var header struct {
		Magic      [4]byte
		Nx, Ny, Nz uint32
	}
	if err := binary.Read(zr, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("volume: reading grid header: %w", err)
	}
	if header.Magic != gridMagic {
		return nil, fmt.Errorf("volume: bad grid magic %q", header.Magic)
	}

	grid, err := NewGrid(int(header.Nx), int(header.Ny), int(header.Nz))
	if err != nil {
		return nil, err
	}
	if err := binary.Read(zr, binary.LittleEndian, grid.data); err != nil {
		return nil, fmt.Errorf("volume: reading grid data: %w", err)
	}
	return grid, nil
}

// SaveFile writes the grid to a file
func (g *Grid) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := g.Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// LoadFile reads a grid from a file written by SaveFile
func LoadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
