package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/gwillem/pickplace/pkg/arm"
	"github.com/gwillem/pickplace/pkg/picker"
	"github.com/gwillem/pickplace/pkg/render"
	"github.com/gwillem/pickplace/pkg/scene"
)

type RunCommand struct {
	Config   string `long:"config" short:"c" default:"pickplace.json" description:"Scene file; the demo scene is used if it does not exist"`
	Seed     uint64 `long:"seed" description:"Seed for the random item layout (0 uses the clock)"`
	Frames   string `long:"frames" description:"Directory to write PNG frames to"`
	Every    int    `long:"every" default:"1" description:"Write every Nth frame"`
	Plot     string `long:"plot" description:"Write the effector trajectory to this PNG file"`
	TUI      bool   `long:"tui" description:"Watch the arm in the terminal"`
	FPS      int    `long:"fps" default:"25" description:"Frame rate of the terminal view"`
	MaxTicks int    `long:"max-ticks" default:"20000" description:"Tick budget per phase"`
	Strict   bool   `long:"strict" description:"Fail on out-of-reach waypoints instead of stretching toward them"`
	Verbose  bool   `long:"verbose" short:"v" description:"Log every phase transition"`
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (c *RunCommand) loadScene() (*scene.Config, error) {
	if !scene.ConfigExists(c.Config) {
		cfg := scene.DefaultConfig()
		return &cfg, nil
	}
	cfg, err := scene.LoadConfigFrom(c.Config)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Loaded scene from %s\n", c.Config)
	return cfg, nil
}

func (c *RunCommand) Execute(args []string) error {
	cfg, err := c.loadScene()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.NeedsLayout() {
		seed := c.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		if err := cfg.ApplyLayout(rand.New(rand.NewPCG(seed, seed))); err != nil {
			return err
		}
		fmt.Println(dimStyle.Render(fmt.Sprintf("Layout seed %d", seed)))
	}
	items, err := cfg.Items()
	if err != nil {
		return err
	}

	a, err := arm.New(cfg.Arm)
	if err != nil {
		return err
	}

	var sink *logSink
	if c.TUI {
		sink = newLogSink(maxLogs * 4)
	}
	log, err := newLogger(c.Verbose, sink)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	defer log.Sync()

	sc := cfg.Scene()
	var renderers render.Multi

	var rec *render.Recorder
	if c.Frames != "" {
		rec, err = render.NewRecorder(sc, render.RecorderConfig{Dir: c.Frames, Every: c.Every, Logger: log})
		if err != nil {
			return err
		}
		renderers = append(renderers, rec)
	}

	var trace *render.Trace
	if c.Plot != "" {
		trace = render.NewTrace(sc)
		renderers = append(renderers, trace)
	}

	var stream *render.Stream
	if c.TUI {
		stream = render.NewStream()
		paced := render.NewPaced(stream, c.FPS)
		defer paced.Stop()
		renderers = append(renderers, paced)
	}

	ctrl, err := picker.New(a, items, picker.Config{
		Gap:               cfg.Gap,
		MaxTicksPerPhase:  c.MaxTicks,
		RejectUnreachable: c.Strict,
		Renderer:          renderers,
		Logger:            log,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var order []string
	var runErr error
	if c.TUI {
		done := make(chan struct{})
		go func() {
			order, runErr = ctrl.Run(ctx)
			close(done)
		}()

		p := tea.NewProgram(newViewModel(sc, stream, sink, done), tea.WithAltScreen())
		_, tuiErr := p.Run()
		cancel()
		<-done
		if tuiErr != nil {
			return errors.Wrap(tuiErr, "terminal view")
		}
	} else {
		order, runErr = ctrl.Run(ctx)
	}

	if rec != nil {
		if err := rec.Close(); err != nil {
			return err
		}
		fmt.Printf("Wrote %d frames to %s", rec.Written(), c.Frames)
		if n := rec.Dropped(); n > 0 {
			fmt.Printf(" (%d dropped)", n)
		}
		fmt.Println()
	}
	if trace != nil {
		if err := trace.Save(c.Plot); err != nil {
			return err
		}
		fmt.Printf("Wrote trajectory plot to %s\n", c.Plot)
	}

	fmt.Println(headerStyle.Render("Order: ") + strings.Join(order, ", "))
	fmt.Printf("Ticks: %d\n", ctrl.Ticks())

	switch {
	case runErr == nil:
		fmt.Println(successStyle.Render("All items placed."))
	case errors.Is(runErr, context.Canceled):
		fmt.Println(dimStyle.Render("Stopped."))
	default:
		var pe *picker.PhaseError
		if errors.As(runErr, &pe) {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Stuck in %s after %d ticks, %.1f px from target", pe.Phase, pe.Ticks, pe.Distance)))
		}
		return runErr
	}
	return nil
}
