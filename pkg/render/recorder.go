package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gwillem/pickplace/pkg/picker"
)

// RecorderConfig holds configuration for a Recorder.
type RecorderConfig struct {
	Dir    string
	Every  int // record every Nth tick
	Buffer int // frames queued for the writer before new ones are dropped
	Logger *zap.SugaredLogger
}

type recordedFrame struct {
	tick int
	img  image.Image
}

// Recorder rasterizes frames and writes them as numbered PNG files from a
// background goroutine.
type Recorder struct {
	scene Scene
	cfg   RecorderConfig
	log   *zap.SugaredLogger

	frames  chan recordedFrame
	wg      sync.WaitGroup
	written atomic.Int64
	dropped atomic.Int64

	mu  sync.Mutex
	err error

	closeOnce sync.Once
}

// NewRecorder creates the output directory and starts the writer.
func NewRecorder(scene Scene, cfg RecorderConfig) (*Recorder, error) {
	if cfg.Dir == "" {
		return nil, errors.New("recorder directory is required")
	}
	if cfg.Every <= 0 {
		cfg.Every = 1
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 64
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create frame directory")
	}

	r := &Recorder{
		scene:  scene,
		cfg:    cfg,
		log:    cfg.Logger,
		frames: make(chan recordedFrame, cfg.Buffer),
	}
	r.wg.Add(1)
	go r.write()
	return r, nil
}

// Draw rasterizes every Nth frame and queues it for writing. Frames are
// dropped when the queue is full.
func (r *Recorder) Draw(f picker.Frame) {
	if f.Tick%r.cfg.Every != 0 {
		return
	}
	select {
	case r.frames <- recordedFrame{tick: f.Tick, img: r.scene.Rasterize(f)}:
	default:
		r.dropped.Add(1)
	}
}

func (r *Recorder) write() {
	defer r.wg.Done()
	for f := range r.frames {
		path := filepath.Join(r.cfg.Dir, FrameName(f.tick))
		if err := gg.SavePNG(path, f.img); err != nil {
			r.setErr(errors.Wrapf(err, "write %s", path))
			continue
		}
		r.written.Add(1)
	}
}

func (r *Recorder) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		r.err = err
		r.log.Errorw("frame write failed", "error", err)
	}
}

// Written returns the number of frames written so far.
func (r *Recorder) Written() int { return int(r.written.Load()) }

// Dropped returns the number of frames dropped because the writer fell behind.
func (r *Recorder) Dropped() int { return int(r.dropped.Load()) }

// Close waits for queued frames to be written and returns the first write
// error. Draw must not be called after Close.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.frames)
		r.wg.Wait()
		r.log.Infow("frames recorded", "dir", r.cfg.Dir, "written", r.Written(), "dropped", r.Dropped())
	})
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// FrameName returns the file name of the frame recorded at tick.
func FrameName(tick int) string {
	return fmt.Sprintf("frame_%06d.png", tick)
}
