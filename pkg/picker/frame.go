package picker

import (
	"github.com/golang/geo/r2"

	"github.com/gwillem/pickplace/pkg/arm"
)

// Frame is the scene handed to the renderer after every tick.
type Frame struct {
	Tick   int
	Phase  Phase
	Item   string   // item being handled, empty while returning
	Target r2.Point // waypoint of the current phase
	Arm    arm.State
	Items  []Item // copy owned by the receiver
}

// Renderer receives one frame per tick. Draw must not hold on to the
// controller's goroutine for longer than it takes to hand the frame off.
type Renderer interface {
	Draw(Frame)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(Frame)

// Draw calls f(fr).
func (f RendererFunc) Draw(fr Frame) {
	f(fr)
}

type nopRenderer struct{}

func (nopRenderer) Draw(Frame) {}
