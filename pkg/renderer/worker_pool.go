package renderer

import (
	"runtime"
	"sync"

	"github.com/mrjoshuak/go-openexr/exr"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile Tile
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID int
	Stats  RenderStats
}

// WorkerPool manages parallel tile rendering. Tiles have non-overlapping
// bounds and each trace is an independent pure function, so workers write
// into the shared framebuffer without locking.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders individual tiles
type Worker struct {
	ID          int
	scene       Scene
	framebuffer *exr.RGBAImage
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool rendering into the given framebuffer
func NewWorkerPool(scene Scene, framebuffer *exr.RGBAImage, numWorkers, maxTiles int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			scene:       scene,
			framebuffer: framebuffer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	camera := w.scene.GetCamera()
	tracer := w.scene.GetTracer()

	for task := range w.taskQueue {
		var stats RenderStats

		bounds := task.Tile.Bounds
		for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
			for i := bounds.Min.X; i < bounds.Max.X; i++ {
				ray := camera.GetRay(i, j)
				result := tracer.Trace(ray)

				// Premultiplied color and transmittance-derived alpha
				w.framebuffer.SetRGBA(i, j,
					float32(result.Color.X),
					float32(result.Color.Y),
					float32(result.Color.Z),
					float32(result.Alpha))

				stats.addTrace(result)
			}
		}

		w.resultQueue <- TileResult{TileID: task.Tile.ID, Stats: stats}
	}
}
