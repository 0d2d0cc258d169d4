// Package renderer dispatches one cloud trace per output pixel across a
// pool of workers and assembles the results into a float framebuffer.
package renderer

import (
	"image"
	"image/color"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/kmw-dev/go-cloud-raymarcher/pkg/cloud"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/core"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetTracer() *cloud.Tracer
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
}

// Config contains rendering configuration
type Config struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0,
	}
}

// Renderer renders a cloud scene into a premultiplied RGBA float
// framebuffer, one independent trace per pixel
type Renderer struct {
	scene  Scene
	config Config
	logger core.Logger
}

// NewRenderer creates a new renderer
func NewRenderer(scene Scene, config Config, logger core.Logger) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = core.NewDefaultLogger()
	}
	return &Renderer{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// Render traces every pixel and returns the premultiplied HDR framebuffer
// along with render statistics
func (r *Renderer) Render() (*exr.RGBAImage, RenderStats) {
	camera := r.scene.GetCamera()
	width, height := camera.Width(), camera.Height()

	framebuffer := exr.NewRGBAImage(image.Rect(0, 0, width, height))
	tiles := NewTileGrid(width, height, r.config.TileSize)

	pool := NewWorkerPool(r.scene, framebuffer, r.config.NumWorkers, len(tiles))
	r.logger.Printf("Rendering %dx%d in %d tiles using %d workers...\n",
		width, height, len(tiles), pool.GetNumWorkers())

	pool.Start()
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile})
	}

	var stats RenderStats
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
	}
	pool.Stop()

	stats.finalize()
	return framebuffer, stats
}

// backgroundGradient returns a sky color based on ray direction
func backgroundGradient(ray core.Ray, topColor, bottomColor core.Vec3) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}

// Composite flattens the premultiplied framebuffer over the scene's sky
// gradient into an 8-bit image with gamma correction. The cloud color is
// already premultiplied, so the background is weighted by the residual
// transmittance (1 - alpha) and the cloud color added as-is.
func (r *Renderer) Composite(framebuffer *exr.RGBAImage) *image.RGBA {
	camera := r.scene.GetCamera()
	topColor, bottomColor := r.scene.GetBackgroundColors()
	width, height := camera.Width(), camera.Height()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			cr, cg, cb, ca := framebuffer.RGBA(i, j)

			background := backgroundGradient(camera.GetRay(i, j), topColor, bottomColor)
			colorVec := background.Multiply(1 - float64(ca)).
				Add(core.NewVec3(float64(cr), float64(cg), float64(cb)))

			img.SetRGBA(i, j, vec3ToColor(colorVec))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
