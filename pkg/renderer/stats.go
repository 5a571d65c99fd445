package renderer

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// RenderStats contains statistics about one Draw call
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of samples taken
	Tiles        int           // Number of tiles the frame was split into
	Elapsed      time.Duration // Wall time from first submit to last result
}

// SamplesPerSecond returns the sampling throughput of the frame
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// FrameTimer records how long each frame takes
type FrameTimer struct {
	mu      sync.Mutex
	start   time.Time
	samples []time.Duration
	now     func() time.Time
}

// NewFrameTimer creates an empty frame timer
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{now: time.Now}
}

// Start marks the beginning of a frame
func (ft *FrameTimer) Start() {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.start = ft.now()
}

// Stop records the time since the last Start and returns it
func (ft *FrameTimer) Stop() time.Duration {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	d := ft.now().Sub(ft.start)
	ft.samples = append(ft.samples, d)
	return d
}

// Frames returns the number of recorded frames
func (ft *FrameTimer) Frames() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.samples)
}

// Mean returns the average frame time, or zero before the first frame
func (ft *FrameTimer) Mean() time.Duration {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if len(ft.samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range ft.samples {
		total += d
	}
	return total / time.Duration(len(ft.samples))
}

// FPS returns frames per second derived from the mean frame time
func (ft *FrameTimer) FPS() float64 {
	mean := ft.Mean()
	if mean <= 0 {
		return 0
	}
	return float64(time.Second) / float64(mean)
}

// Clear discards all recorded frames
func (ft *FrameTimer) Clear() {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.samples = ft.samples[:0]
}

// Report writes the frame count and mean frame time to logger
func (ft *FrameTimer) Report(logger core.Logger) {
	logger.Printf("%s\n", ft.String())
}

// String summarizes the recorded frames on one line
func (ft *FrameTimer) String() string {
	return fmt.Sprintf("FPS stats: frames=%d mean=%d ms", ft.Frames(), ft.Mean().Milliseconds())
}
