package scene

import (
	"math/rand/v2"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ErrLayout is returned when items do not fit in the layout range.
var ErrLayout = errors.New("items do not fit in layout range")

// Layout returns random, non-overlapping centers for items of the given sizes
// resting on the ground, with every item inside [lo, hi).
//
// Each item first gets an offset in the free length left after subtracting all
// sizes. Items are then expanded in order: every offset to the right of the
// current one shifts by its size, and the current one moves to its center.
func Layout(sizes []float64, lo, hi, earth float64, rng *rand.Rand) ([]r2.Point, error) {
	var total float64
	for _, s := range sizes {
		total += s
	}
	free := hi - lo - total
	if free <= 0 {
		return nil, errors.Wrapf(ErrLayout, "need %.1f, have %.1f", total, hi-lo)
	}

	xs := make([]float64, len(sizes))
	for i := range xs {
		xs[i] = lo + rng.Float64()*free
	}
	for i, size := range sizes {
		pos := xs[i]
		for j := range xs {
			if xs[j] > pos {
				xs[j] += size
			}
		}
		xs[i] += size / 2
	}

	points := make([]r2.Point, len(sizes))
	for i, x := range xs {
		points[i] = r2.Point{X: x, Y: earth - sizes[i]/2}
	}
	return points, nil
}

// ApplyLayout places every item at a random position in the configured range.
func (c *Config) ApplyLayout(rng *rand.Rand) error {
	sizes := make([]float64, len(c.Items))
	for i, it := range c.Items {
		sizes[i] = it.Size
	}
	points, err := Layout(sizes, c.LayoutMin, c.LayoutMax, c.EarthLevel, rng)
	if err != nil {
		return err
	}
	for i := range c.Items {
		p := points[i]
		c.Items[i].Position = &p
	}
	return nil
}
