package navigation

import (
	"fmt"
	"strings"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// DefaultStep is how far one key press moves the camera
const DefaultStep = 0.1

// Keys holds which direction keys were pressed this frame.
// W/S move along z, A/D along x, E/Q along y.
type Keys struct {
	Forward bool // W
	Back    bool // S
	Left    bool // A
	Right   bool // D
	Up      bool // E
	Down    bool // Q
}

// Moved reports whether any direction key is pressed
func (k Keys) Moved() bool {
	return k.Forward || k.Back || k.Left || k.Right || k.Up || k.Down
}

// Delta returns the camera translation for the pressed keys.
// Opposite keys cancel out.
func (k Keys) Delta(step float64) core.Vec3 {
	var delta core.Vec3
	if k.Forward {
		delta.Z -= step
	}
	if k.Back {
		delta.Z += step
	}
	if k.Left {
		delta.X -= step
	}
	if k.Right {
		delta.X += step
	}
	if k.Up {
		delta.Y += step
	}
	if k.Down {
		delta.Y -= step
	}
	return delta
}

// ParseKeys reads a string of key letters such as "wd" into Keys.
// Letters are case-insensitive; any other character is an error.
func ParseKeys(s string) (Keys, error) {
	var k Keys
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'w':
			k.Forward = true
		case 's':
			k.Back = true
		case 'a':
			k.Left = true
		case 'd':
			k.Right = true
		case 'e':
			k.Up = true
		case 'q':
			k.Down = true
		default:
			return Keys{}, fmt.Errorf("unknown movement key %q", r)
		}
	}
	return k, nil
}

// Queue accumulates camera shifts requested while a frame is in flight
// so they can be applied together between frames
type Queue struct {
	pending core.Vec3
	has     bool
}

// Push adds delta to the pending shift
func (q *Queue) Push(delta core.Vec3) {
	q.pending = q.pending.Add(delta)
	q.has = true
}

// Pop returns the accumulated shift and clears the queue
func (q *Queue) Pop() (core.Vec3, bool) {
	delta, ok := q.pending, q.has
	q.pending = core.Vec3{}
	q.has = false
	return delta, ok
}

// Peek returns the accumulated shift without clearing it
func (q *Queue) Peek() (core.Vec3, bool) {
	return q.pending, q.has
}
