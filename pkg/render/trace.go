package render

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gwillem/pickplace/pkg/picker"
)

// Trace records the effector path of a run for plotting.
type Trace struct {
	scene Scene
	path  plotter.XYs
	items []picker.Item
}

// NewTrace creates an empty trace. Heights are plotted above the scene's
// earth level.
func NewTrace(scene Scene) *Trace {
	return &Trace{scene: scene}
}

// Draw appends the effector position of f.
func (t *Trace) Draw(f picker.Frame) {
	t.path = append(t.path, t.point(f.Arm.Effector.X, f.Arm.Effector.Y))
	t.items = f.Items
}

// Len returns the number of recorded points.
func (t *Trace) Len() int {
	return len(t.path)
}

func (t *Trace) point(x, y float64) plotter.XY {
	return plotter.XY{X: x, Y: t.scene.EarthLevel - y}
}

// Save writes the effector path, the final item positions and their places
// to a PNG file.
func (t *Trace) Save(path string) error {
	if len(t.path) == 0 {
		return errors.New("trace is empty")
	}

	p := plot.New()
	p.Title.Text = "Effector trajectory"
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "height (px)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(t.path)
	if err != nil {
		return errors.Wrap(err, "effector line")
	}
	line.Color = hexColor(LinkColor)
	p.Add(line)
	p.Legend.Add("effector", line)

	for _, it := range t.items {
		pts := plotter.XYs{t.point(it.Position.X, it.Position.Y), t.point(it.Place.X, it.Place.Y)}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrapf(err, "item %s", it.Name)
		}
		sc.GlyphStyle.Color = t.scene.Palette.RGBA(it.Name)
		sc.GlyphStyle.Radius = vg.Points(4)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(it.Name, sc)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}
