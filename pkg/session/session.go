package session

import (
	"fmt"
	"sync"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/navigation"
	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

// Session ties a scene, a camera and a renderer together for interactive use.
// Camera shifts are queued and applied only between frames, and finished
// frames are swapped into a front buffer that readers can copy at any time.
type Session struct {
	renderer *renderer.Renderer
	logger   core.Logger
	fov      float64

	drawMu sync.Mutex // Held for a whole frame

	mu         sync.Mutex // Guards everything below
	sceneName  string
	scene      *scene.Scene
	camera     *renderer.Camera
	pending    navigation.Queue
	front      []byte
	back       []byte
	generation int // Number of frames swapped into front
	rendering  bool
	lastStats  renderer.RenderStats
	timer      *renderer.FrameTimer
}

// New creates a session rendering the named built-in scene
func New(r *renderer.Renderer, sceneName string, fov float64, logger core.Logger) (*Session, error) {
	s, err := scene.Create(sceneName)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}
	config := r.Config()
	return &Session{
		renderer:  r,
		logger:    logger,
		fov:       fov,
		sceneName: sceneName,
		scene:     s,
		camera:    renderer.NewCamera(fov, config.AspectRatio()),
		front:     make([]byte, config.FrameSize()),
		back:      make([]byte, config.FrameSize()),
		timer:     renderer.NewFrameTimer(),
	}, nil
}

// Config returns the renderer configuration frames are drawn with
func (s *Session) Config() renderer.Config {
	return s.renderer.Config()
}

// FOV returns the camera's vertical field of view in degrees
func (s *Session) FOV() float64 {
	return s.fov
}

// Shift queues a camera translation for the next frame
func (s *Session) Shift(delta core.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Push(delta)
}

// SetScene switches to another built-in scene starting with the next frame
func (s *Session) SetScene(name string) error {
	sc, err := scene.Create(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sceneName = name
	s.scene = sc
	return nil
}

// SceneName returns the current scene ID
func (s *Session) SceneName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sceneName
}

// CameraOrigin returns where the camera will be for the next frame,
// including shifts that are still queued
func (s *Session) CameraOrigin() core.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	origin := s.camera.Origin()
	if delta, ok := s.pending.Peek(); ok {
		origin = origin.Add(delta)
	}
	return origin
}

// Rendering reports whether a frame is in flight
func (s *Session) Rendering() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rendering
}

// RenderFrame applies queued camera shifts, draws one frame into the back
// buffer and swaps it to the front. Concurrent calls run one after another.
func (s *Session) RenderFrame() (renderer.RenderStats, error) {
	s.drawMu.Lock()
	defer s.drawMu.Unlock()

	s.mu.Lock()
	if delta, ok := s.pending.Pop(); ok {
		s.camera.Shift(delta)
		s.logger.Printf("Camera moved to %v\n", s.camera.Origin())
	}
	sc, camera, back := s.scene, s.camera, s.back
	s.rendering = true
	s.mu.Unlock()

	s.timer.Start()
	stats, err := s.renderer.Draw(sc, camera, back)
	s.timer.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rendering = false
	if err != nil {
		return renderer.RenderStats{}, fmt.Errorf("frame %d: %w", s.generation+1, err)
	}
	s.front, s.back = s.back, s.front
	s.generation++
	s.lastStats = stats
	return stats, nil
}

// CopyFrame copies the latest finished frame into dst and returns its
// generation. Generation 0 means no frame has finished yet.
func (s *Session) CopyFrame(dst []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(dst, s.front)
	return s.generation
}

// Generation returns how many frames have finished
func (s *Session) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// LastStats returns the statistics of the latest finished frame
func (s *Session) LastStats() renderer.RenderStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStats
}

// Timer returns the frame timer wrapping every RenderFrame
func (s *Session) Timer() *renderer.FrameTimer {
	return s.timer
}

// Snapshot returns the current scene and a copy of the camera as it will be
// for the next frame. The copy can be used freely while frames are drawn.
func (s *Session) Snapshot() (*scene.Scene, renderer.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	camera := *s.camera
	if delta, ok := s.pending.Peek(); ok {
		camera.Shift(delta)
	}
	return s.scene, camera
}
