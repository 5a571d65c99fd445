package window

import (
	"fmt"
	"sync/atomic"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/navigation"
	"github.com/df07/go-interactive-raytracer/pkg/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"
)

// Options controls the viewer window
type Options struct {
	Title string
	Scale int     // Window pixels per frame pixel
	Step  float64 // Camera movement per key press
}

// keyBindings maps keys to the camera movement they request
var keyBindings = []struct {
	key ebiten.Key
	set func(*navigation.Keys)
}{
	{ebiten.KeyW, func(k *navigation.Keys) { k.Forward = true }},
	{ebiten.KeyS, func(k *navigation.Keys) { k.Back = true }},
	{ebiten.KeyA, func(k *navigation.Keys) { k.Left = true }},
	{ebiten.KeyD, func(k *navigation.Keys) { k.Right = true }},
	{ebiten.KeyE, func(k *navigation.Keys) { k.Up = true }},
	{ebiten.KeyQ, func(k *navigation.Keys) { k.Down = true }},
}

// Viewer is an ebiten game that shows frames from a session and moves its
// camera from the keyboard. Frames are drawn on a background goroutine so
// the window stays responsive while a frame is in flight.
type Viewer struct {
	session *session.Session
	options Options
	logger  core.Logger

	width, height int
	frame         []byte
	image         *ebiten.Image
	shown         int // Generation currently uploaded to image

	inFlight atomic.Bool
	dirty    bool
	errs     chan error
}

// New creates a viewer for the session
func New(s *session.Session, options Options, logger core.Logger) *Viewer {
	if options.Scale <= 0 {
		options.Scale = 1
	}
	if options.Step <= 0 {
		options.Step = navigation.DefaultStep
	}
	config := s.Config()
	return &Viewer{
		session: s,
		options: options,
		logger:  logger,
		width:   config.Width,
		height:  config.Height,
		frame:   make([]byte, config.FrameSize()),
		dirty:   true,
		errs:    make(chan error, 1),
	}
}

// Run opens the window and blocks until it is closed
func (v *Viewer) Run() error {
	ebiten.SetWindowSize(v.width*v.options.Scale, v.height*v.options.Scale)
	ebiten.SetWindowTitle(v.options.Title)
	err := ebiten.RunGame(v)
	v.session.Timer().Report(v.logger)
	return err
}

// Update polls the keyboard and starts a new frame when one is needed
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	select {
	case err := <-v.errs:
		return fmt.Errorf("render failed: %w", err)
	default:
	}

	var keys navigation.Keys
	for _, binding := range keyBindings {
		if inpututil.IsKeyJustPressed(binding.key) {
			binding.set(&keys)
		}
	}
	if keys.Moved() {
		v.session.Shift(keys.Delta(v.options.Step))
		v.dirty = true
	}

	if v.dirty && !v.inFlight.Load() {
		v.dirty = false
		v.inFlight.Store(true)
		go v.renderFrame()
	}
	return nil
}

func (v *Viewer) renderFrame() {
	defer v.inFlight.Store(false)
	if _, err := v.session.RenderFrame(); err != nil {
		select {
		case v.errs <- err:
		default:
		}
	}
}

// Draw uploads the latest finished frame and shows it with an FPS overlay
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.session.Generation() != v.shown {
		if v.image == nil {
			v.image = ebiten.NewImage(v.width, v.height)
		}
		v.shown = v.session.CopyFrame(v.frame)
		v.image.WritePixels(v.frame)
	}

	if v.image == nil {
		screen.Fill(colornames.Midnightblue)
		ebitenutil.DebugPrint(screen, "Rendering first frame...")
		return
	}

	screen.DrawImage(v.image, nil)
	timer := v.session.Timer()
	origin := v.session.CameraOrigin()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d  %.2f FPS\ncamera %v\nWASD/QE move, Esc quits",
		v.session.SceneName(), v.shown, timer.FPS(), origin))
}

// Layout renders at the frame resolution and lets ebiten scale to the window
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}
