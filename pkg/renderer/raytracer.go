package renderer

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
	"github.com/df07/go-interactive-raytracer/pkg/sysinfo"
)

const (
	// tMin keeps scattered rays from re-hitting the surface they left
	tMin = 0.001

	bytesPerPixel = 4
)

var (
	// ErrFrameSize is returned by Draw when the frame is not width*height*4 bytes
	ErrFrameSize = errors.New("frame buffer size mismatch")

	// ErrInvalidConfig wraps every Config validation failure
	ErrInvalidConfig = errors.New("invalid render config")
)

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumTiles        int   // Number of contiguous pixel runs rendered in parallel
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Jitter          bool  // Randomize the horizontal sample position within each pixel
	Seed            int64 // Base seed for per-tile random generators
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          450,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumTiles:        16,
		NumWorkers:      0, // Auto-detect CPU count
		Jitter:          true,
		Seed:            42,
	}
}

// Validate reports the first out-of-range field
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.NumTiles <= 0:
		return fmt.Errorf("%w: tile count must be positive, got %d", ErrInvalidConfig, c.NumTiles)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// FrameSize returns the number of bytes Draw expects
func (c Config) FrameSize() int {
	return c.Width * c.Height * bytesPerPixel
}

// AspectRatio returns width over height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Renderer draws scenes into RGBA frame buffers using a pool of tile workers
type Renderer struct {
	config Config
	tiles  []*Tile
	pool   *WorkerPool
	logger core.Logger

	mu     sync.Mutex // Serializes Draw; the pool's result queue is shared
	closed bool
}

// NewRenderer validates config and starts the worker pool
func NewRenderer(config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.NumWorkers == 0 {
		config.NumWorkers = sysinfo.DefaultWorkers()
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	tiles := NewTiles(config.Width*config.Height, config.NumTiles)
	pool := NewWorkerPool(config, config.NumWorkers, len(tiles))
	pool.Start()

	logger.Printf("Renderer ready: %dx%d, %d spp, depth %d, %d tiles, %d workers\n",
		config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth, len(tiles), pool.GetNumWorkers())

	return &Renderer{
		config: config,
		tiles:  tiles,
		pool:   pool,
		logger: logger,
	}, nil
}

// Config returns the renderer's effective configuration
func (r *Renderer) Config() Config {
	return r.config
}

// Close stops the worker pool. Draw fails after Close.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.pool.Stop()
}

// Draw renders one frame of s as seen by camera into frame, which must hold
// width*height RGBA pixels. It blocks until every tile is done. The scene and
// camera must not be modified until Draw returns.
func (r *Renderer) Draw(s *scene.Scene, camera *Camera, frame []byte) (RenderStats, error) {
	if s == nil || camera == nil {
		return RenderStats{}, errors.New("draw requires a scene and a camera")
	}
	if len(frame) != r.config.FrameSize() {
		return RenderStats{}, fmt.Errorf("%w: got %d bytes, want %d for %dx%d",
			ErrFrameSize, len(frame), r.config.FrameSize(), r.config.Width, r.config.Height)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return RenderStats{}, errors.New("renderer is closed")
	}

	start := time.Now()

	// Submit all tiles as tasks
	for i, tile := range r.tiles {
		tile.Reseed(r.config.Seed + int64(tile.ID))
		r.pool.SubmitTask(TileTask{
			Tile:   tile,
			Scene:  s,
			Camera: camera,
			Pixels: frame[tile.Start*bytesPerPixel : tile.End*bytesPerPixel],
			TaskID: i,
		})
	}

	// Wait for every tile, even after an error, so no result leaks into the next frame
	stats := RenderStats{Tiles: len(r.tiles)}
	var firstErr error
	for range r.tiles {
		result, ok := r.pool.GetResult()
		if !ok {
			return RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("tile %d: %w", result.TaskID, result.Error)
		}
		stats.TotalSamples += result.Samples
	}
	if firstErr != nil {
		return RenderStats{}, firstErr
	}

	stats.TotalPixels = r.config.Width * r.config.Height
	stats.Elapsed = time.Since(start)
	return stats, nil
}

// renderTile fills task.Pixels and returns the number of samples taken
func renderTile(task TileTask, config Config) int {
	sampler := core.NewRandomSampler(task.Tile.Random)
	width := float64(config.Width)
	height := float64(config.Height)

	for p := task.Tile.Start; p < task.Tile.End; p++ {
		row := p / config.Width
		col := p % config.Width

		var color core.Color
		for s := 0; s < config.SamplesPerPixel; s++ {
			jitter := 0.5
			if config.Jitter {
				jitter = sampler.Get1D()
			}
			u := (float64(col) + jitter) / width
			v := float64(row) / height
			ray := task.Camera.GetRay(u, v)
			color = color.Add(RayColor(ray, task.Scene, sampler, config.MaxDepth))
		}

		offset := (p - task.Tile.Start) * bytesPerPixel
		writePixel(task.Pixels[offset:offset+bytesPerPixel], color, config.SamplesPerPixel)
	}

	return task.Tile.Len() * config.SamplesPerPixel
}

// writePixel averages the accumulated color, applies gamma 2 and stores it as RGBA
func writePixel(dst []byte, sum core.Color, samples int) {
	c := sum.Multiply(1.0 / float64(samples)).Sqrt().Clamp(0, 0.999).Multiply(256)
	dst[0] = uint8(c.X)
	dst[1] = uint8(c.Y)
	dst[2] = uint8(c.Z)
	dst[3] = 255
}

// RayColor returns the color carried back along ray after at most depth bounces
func RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth int) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := s.Hit(ray, tMin, math.Inf(1))
	if !isHit {
		return backgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return core.Color{} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(RayColor(scatter.Scattered, s, sampler, depth-1))
}

// backgroundGradient blends white at the horizon into sky blue overhead
func backgroundGradient(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	white := core.NewVec3(1.0, 1.0, 1.0)
	blue := core.NewVec3(0.5, 0.7, 1.0)
	return white.Multiply(1.0 - t).Add(blue.Multiply(t))
}
