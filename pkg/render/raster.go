package render

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"

	"github.com/gwillem/pickplace/pkg/picker"
)

// Rasterize draws a frame: sky, ground, place markers, items and the arm.
func (s Scene) Rasterize(f picker.Frame) image.Image {
	dc := gg.NewContext(s.Width, s.Height)
	w, h := float64(s.Width), float64(s.Height)

	dc.SetHexColor(SkyColor)
	dc.DrawRectangle(0, 0, w, s.EarthLevel)
	dc.Fill()
	dc.SetHexColor(EarthColor)
	dc.DrawRectangle(0, s.EarthLevel, w, h-s.EarthLevel)
	dc.Fill()

	for _, it := range f.Items {
		dc.SetHexColor(s.Palette.Color(it.Name))
		dc.DrawCircle(it.Position.X, it.Position.Y, it.Size/2)
		dc.Fill()
		dc.DrawRectangle(it.Place.X-it.Size/2, s.EarthLevel, it.Size, s.Gap)
		dc.Fill()
	}

	s.drawArm(dc, f)
	return dc.Image()
}

func (s Scene) drawArm(dc *gg.Context, f picker.Frame) {
	base, j1, j2 := s.Base, f.Arm.Joint1, f.Arm.Effector

	dc.SetHexColor(BaseColor)
	dc.DrawRectangle(base.X-halfBase, base.Y-halfBase, 2*halfBase, 2*halfBase)
	dc.Fill()

	// Dark outline first, then the link body on top.
	passes := []struct {
		color string
		width float64
	}{
		{LinkEdgeColor, linkEdgeWidth},
		{LinkColor, linkWidth},
	}
	for _, pass := range passes {
		dc.SetHexColor(pass.color)
		dc.SetLineWidth(pass.width)
		dc.DrawLine(base.X, base.Y, j1.X, j1.Y)
		dc.Stroke()
		dc.DrawLine(j1.X, j1.Y, j2.X, j2.Y)
		dc.Stroke()
	}

	dc.SetHexColor(JointColor)
	for _, p := range []r2.Point{base, j1, j2} {
		dc.DrawCircle(p.X, p.Y, jointDotRadius)
		dc.Fill()
	}
}
