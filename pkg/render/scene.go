// Package render draws pick-and-place frames: PNG frame sequences, a live
// frame stream for the terminal viewer and a trajectory plot.
package render

import (
	"image/color"

	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
)

// Scene colors.
const (
	SkyColor      = "#7896aa"
	EarthColor    = "#c89664"
	BaseColor     = "#c89632"
	LinkEdgeColor = "#000032"
	LinkColor     = "#2850c8"
	JointColor    = "#af37a0"
	DefaultColor  = "#808080"
)

// Drawing sizes in pixels.
const (
	halfBase       = 30
	linkEdgeWidth  = 20
	linkWidth      = 18
	jointDotRadius = 8
)

// Palette maps item names to display colors given as "#rrggbb".
type Palette map[string]string

// Color returns the hex color of the named item, or DefaultColor.
func (p Palette) Color(name string) string {
	if c, ok := p[name]; ok && c != "" {
		return c
	}
	return DefaultColor
}

// RGBA returns the color of the named item for image drawing.
func (p Palette) RGBA(name string) color.Color {
	return hexColor(p.Color(name))
}

// Scene holds the display geometry shared by the renderers.
type Scene struct {
	Width      int
	Height     int
	EarthLevel float64
	Gap        float64 // height of the place markers
	Base       r2.Point
	Palette    Palette
}

func hexColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(DefaultColor)
	}
	return c
}
