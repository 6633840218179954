package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/pickplace/pkg/arm"
	"github.com/gwillem/pickplace/pkg/picker"
)

func testScene() Scene {
	return Scene{
		Width:      160,
		Height:     120,
		EarthLevel: 100,
		Gap:        10,
		Base:       r2.Point{X: 20, Y: 90},
		Palette:    Palette{"red": "#d72323"},
	}
}

func testFrame(tick int) picker.Frame {
	return picker.Frame{
		Tick: tick,
		Arm: arm.State{
			Joint1:   r2.Point{X: 60, Y: 40},
			Effector: r2.Point{X: 100, Y: 60},
		},
		Items: []picker.Item{{
			Name:     "red",
			Size:     20,
			Position: r2.Point{X: 130, Y: 90},
			Place:    r2.Point{X: 60, Y: 100},
		}},
	}
}

func assertPixel(t *testing.T, want string, got interface{ RGBA() (r, g, b, a uint32) }) {
	t.Helper()
	wr, wg, wb, _ := hexColor(want).RGBA()
	gr, gg, gb, _ := got.RGBA()
	assert.Equal(t, []uint32{wr >> 8, wg >> 8, wb >> 8}, []uint32{gr >> 8, gg >> 8, gb >> 8})
}

func TestPalette_Color(t *testing.T) {
	p := Palette{"red": "#d72323", "blank": ""}
	assert.Equal(t, "#d72323", p.Color("red"))
	assert.Equal(t, DefaultColor, p.Color("blank"))
	assert.Equal(t, DefaultColor, p.Color("missing"))
}

func TestScene_Rasterize(t *testing.T) {
	s := testScene()
	img := s.Rasterize(testFrame(1))

	require.Equal(t, 160, img.Bounds().Dx())
	require.Equal(t, 120, img.Bounds().Dy())

	assertPixel(t, SkyColor, img.At(150, 5))
	assertPixel(t, EarthColor, img.At(150, 115))
	// Item disc center and its place marker.
	assertPixel(t, "#d72323", img.At(130, 90))
	assertPixel(t, "#d72323", img.At(60, 105))
	// Joint dots sit on top of the links.
	assertPixel(t, JointColor, img.At(60, 40))
	assertPixel(t, JointColor, img.At(100, 60))
}

func TestRecorder_WritesEveryNthFrame(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	r, err := NewRecorder(testScene(), RecorderConfig{Dir: dir, Every: 2})
	require.NoError(t, err)

	for tick := 1; tick <= 5; tick++ {
		r.Draw(testFrame(tick))
	}
	require.NoError(t, r.Close())
	assert.Equal(t, 2, r.Written())
	assert.Equal(t, 0, r.Dropped())

	for _, tick := range []int{2, 4} {
		info, err := os.Stat(filepath.Join(dir, FrameName(tick)))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	_, err = os.Stat(filepath.Join(dir, FrameName(1)))
	assert.True(t, os.IsNotExist(err))

	// Closing twice is harmless.
	assert.NoError(t, r.Close())
}

func TestRecorder_RequiresDir(t *testing.T) {
	_, err := NewRecorder(testScene(), RecorderConfig{})
	assert.Error(t, err)
}

func TestFrameName(t *testing.T) {
	assert.Equal(t, "frame_000042.png", FrameName(42))
}

func TestStream_KeepsNewestFrame(t *testing.T) {
	s := NewStream()
	for tick := 1; tick <= 3; tick++ {
		s.Draw(testFrame(tick))
	}

	f := <-s.Frames()
	assert.Equal(t, 3, f.Tick)

	select {
	case f := <-s.Frames():
		t.Fatalf("unexpected frame %d", f.Tick)
	default:
	}
}

func TestMultiAndPaced(t *testing.T) {
	var a, b []int
	paced := NewPaced(picker.RendererFunc(func(f picker.Frame) { b = append(b, f.Tick) }), 1000)
	defer paced.Stop()

	m := Multi{
		picker.RendererFunc(func(f picker.Frame) { a = append(a, f.Tick) }),
		paced,
	}
	for tick := 1; tick <= 3; tick++ {
		m.Draw(testFrame(tick))
	}
	assert.Equal(t, []int{1, 2, 3}, a)
	assert.Equal(t, []int{1, 2, 3}, b)
}

func TestTrace_Save(t *testing.T) {
	tr := NewTrace(testScene())
	assert.Error(t, tr.Save(filepath.Join(t.TempDir(), "empty.png")))

	for tick := 1; tick <= 10; tick++ {
		f := testFrame(tick)
		f.Arm.Effector.X += float64(tick)
		tr.Draw(f)
	}
	assert.Equal(t, 10, tr.Len())

	path := filepath.Join(t.TempDir(), "trace.png")
	require.NoError(t, tr.Save(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
