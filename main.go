package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/nfnt/resize"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/kmw-dev/go-cloud-raymarcher/pkg/cloud"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/core"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/renderer"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/scene"
	"github.com/kmw-dev/go-cloud-raymarcher/pkg/volume"
)

const previewWidth = 256

// createScene builds a scene from CLI options
func createScene(sceneType, volumePath string, width, height int, params cloud.Params) (*scene.Scene, error) {
	switch sceneType {
	case "default":
		return scene.NewDefaultScene(width, height, params)
	case "uniform":
		return scene.NewUniformScene(width, height, params, 1.0)
	case "volume":
		if volumePath == "" {
			return nil, fmt.Errorf("scene 'volume' requires -volume <path>")
		}
		grid, err := volume.LoadFile(volumePath)
		if err != nil {
			return nil, fmt.Errorf("loading volume %s: %w", volumePath, err)
		}
		return scene.NewVolumeScene(width, height, params, grid)
	default:
		return nil, fmt.Errorf("unknown scene type: %s", sceneType)
	}
}

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene type: 'default', 'uniform' or 'volume'")
	volumePath := flag.String("volume", "", "Baked density grid for the 'volume' scene")
	width := flag.Int("width", 640, "Output width in pixels")
	height := flag.Int("height", 360, "Output height in pixels")
	density := flag.Float64("density", 2.0, "Density multiplier (>= 0)")
	threshold := flag.Float64("threshold", 0.2, "Density threshold in [0,1]")
	absorption := flag.Float64("absorption", 3.0, "Absorption coefficient (> 0)")
	steps := flag.Int("steps", 16, fmt.Sprintf("March steps per ray in [1,%d]", cloud.MaxStepCount))
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	tileSize := flag.Int("tile", 64, "Tile size in pixels")
	writeEXR := flag.Bool("exr", false, "Also write the premultiplied HDR framebuffer as EXR")
	writePreview := flag.Bool("preview", false, "Also write a downscaled preview PNG")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Volumetric Cloud Raymarcher")
		fmt.Println("Usage: cloudmarch [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default - Clumpy analytic cloud in the canonical box")
		fmt.Println("  uniform - Constant-density fog slab for parameter tuning")
		fmt.Println("  volume  - Baked density grid loaded with -volume <path>")
		fmt.Println()
		fmt.Println("Output is saved to output/<scene_type>/render_<timestamp>.png")
		return
	}

	params := cloud.Params{
		BaseColor:         core.NewVec3(0.9, 0.9, 1.0),
		DensityMultiplier: *density,
		Threshold:         *threshold,
		Absorption:        *absorption,
		StepCount:         *steps,
	}

	selectedScene, err := createScene(*sceneType, *volumePath, *width, *height, params)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}

	// Create output directory for this scene type
	outputDir := filepath.Join("output", *sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	r := renderer.NewRenderer(selectedScene, renderer.Config{
		TileSize:   *tileSize,
		NumWorkers: *workers,
	}, core.NewDefaultLogger())

	startTime := time.Now()
	framebuffer, stats := r.Render()
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Rays: %d total, %d missed, %d early-exit, %d completed\n",
		stats.TotalPixels, stats.Misses, stats.EarlyExits, stats.Completed)
	fmt.Printf("March steps: %.1f average, %d max\n", stats.AverageSteps, stats.MaxStepsUsed)

	// Create timestamped filenames
	timestamp := time.Now().Format("20060102_150405")

	img := r.Composite(framebuffer)
	pngPath := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	if err := savePNG(pngPath, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", pngPath)

	if *writeEXR {
		exrPath := filepath.Join(outputDir, fmt.Sprintf("render_%s.exr", timestamp))
		if err := exr.EncodeFile(exrPath, framebuffer); err != nil {
			fmt.Printf("Error saving EXR: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("HDR framebuffer saved as %s\n", exrPath)
	}

	if *writePreview {
		preview := resize.Resize(previewWidth, 0, img, resize.Lanczos3)
		previewPath := filepath.Join(outputDir, fmt.Sprintf("preview_%s.png", timestamp))
		if err := savePNG(previewPath, preview); err != nil {
			fmt.Printf("Error saving preview: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Preview saved as %s\n", previewPath)
	}
}

func savePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
