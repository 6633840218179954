package render

import (
	"time"

	"github.com/gwillem/pickplace/pkg/picker"
)

// Stream keeps the newest frame for a slower reader such as the terminal
// viewer. Older unread frames are replaced.
type Stream struct {
	ch chan picker.Frame
}

// NewStream creates an empty stream.
func NewStream() *Stream {
	return &Stream{ch: make(chan picker.Frame, 1)}
}

// Frames returns the channel that receives frames.
func (s *Stream) Frames() <-chan picker.Frame {
	return s.ch
}

// Draw publishes f, replacing an unread frame. It expects a single writer.
func (s *Stream) Draw(f picker.Frame) {
	select {
	case s.ch <- f:
	default:
		// Drop old frame if channel full, replace with new
		select {
		case <-s.ch:
		default:
		}
		s.ch <- f
	}
}

// Paced forwards frames to another renderer at most fps times per second,
// holding the simulation to real time.
type Paced struct {
	next   picker.Renderer
	ticker *time.Ticker
}

// NewPaced wraps next. Call Stop when done.
func NewPaced(next picker.Renderer, fps int) *Paced {
	if fps <= 0 {
		fps = 25
	}
	return &Paced{
		next:   next,
		ticker: time.NewTicker(time.Second / time.Duration(fps)),
	}
}

// Draw waits for the next frame slot, then forwards f.
func (p *Paced) Draw(f picker.Frame) {
	<-p.ticker.C
	p.next.Draw(f)
}

// Stop releases the ticker.
func (p *Paced) Stop() {
	p.ticker.Stop()
}

// Multi draws each frame with every renderer in order.
type Multi []picker.Renderer

// Draw forwards f to each renderer.
func (m Multi) Draw(f picker.Frame) {
	for _, r := range m {
		r.Draw(f)
	}
}
