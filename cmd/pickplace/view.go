package main

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/pickplace/pkg/picker"
	"github.com/gwillem/pickplace/pkg/render"
)

const (
	headerHeight = 2 // title + blank line
	chartHeight  = 6 // joint angle history
	legendHeight = 1
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // box border
)

// Joint angle colors
var angleColors = map[string]string{
	"theta1": "208", // orange
	"theta2": "51",  // cyan
}

var angleNames = []string{"theta1", "theta2"}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type viewModel struct {
	scene  render.Scene
	stream *render.Stream
	logs   *logSink
	done   <-chan struct{}

	chart    *streamlinechart.Model
	width    int // terminal width
	height   int // terminal height
	frame    picker.Frame
	hasFrame bool
	lines    []string // last N log messages
	finished bool
	quitting bool
}

// Messages from the run
type frameMsg picker.Frame
type logMsg string
type doneMsg struct{}

func waitForFrame(s *render.Stream) tea.Cmd {
	return func() tea.Msg {
		return frameMsg(<-s.Frames())
	}
}

func waitForLog(s *logSink) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-s.Lines())
	}
}

func waitForDone(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return doneMsg{}
	}
}

func newViewModel(sc render.Scene, stream *render.Stream, logs *logSink, done <-chan struct{}) viewModel {
	chart := streamlinechart.New(80, chartHeight,
		streamlinechart.WithYRange(0, 3*math.Pi),
	)
	for _, name := range angleNames {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(angleColors[name]))
		chart.SetDataSetStyles(name, runes.ThinLineStyle, style)
	}

	return viewModel{
		scene:  sc,
		stream: stream,
		logs:   logs,
		done:   done,
		chart:  &chart,
	}
}

func (m *viewModel) addLog(msg string) {
	m.lines = append(m.lines, msg)
	if len(m.lines) > maxLogs {
		m.lines = m.lines[len(m.lines)-maxLogs:]
	}
}

// canvasSize calculates the size of the scene canvas from the terminal size
func (m *viewModel) canvasSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - 2*borderSize - chartHeight - legendHeight - footerHeight
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m viewModel) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForFrame(m.stream), waitForDone(m.done)}
	if m.logs != nil {
		cmds = append(cmds, waitForLog(m.logs))
	}
	return tea.Batch(cmds...)
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, _ := m.canvasSize()
		m.chart.Resize(w, chartHeight)
		m.chart.DrawAll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case frameMsg:
		m.frame = picker.Frame(msg)
		m.hasFrame = true
		m.chart.PushDataSet("theta1", m.frame.Arm.Theta1)
		m.chart.PushDataSet("theta2", m.frame.Arm.Theta2)
		m.chart.DrawAll()
		return m, waitForFrame(m.stream)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.logs)

	case doneMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}

func (m viewModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("pickplace"))
	if m.hasFrame {
		status := fmt.Sprintf("  tick %d  %s", m.frame.Tick, m.frame.Phase)
		if m.frame.Item != "" {
			status += " " + m.frame.Item
		}
		sb.WriteString(statusStyle.Render(status))
	}
	if m.finished {
		sb.WriteString(statusStyle.Render("  [finished]"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(boxStyle.Render(m.drawScene()))
	sb.WriteString("\n")
	sb.WriteString(boxStyle.Render(m.chart.View()))
	sb.WriteString("\n")
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := boxStyle.Width(max(m.width-4, 20))
	var logLines string
	if len(m.lines) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.lines, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

// projector maps scene coordinates onto canvas cells.
type projector struct {
	sx, sy float64
	w, h   int
}

func newProjector(sc render.Scene, w, h int) projector {
	return projector{
		sx: float64(w) / float64(sc.Width),
		sy: float64(h) / float64(sc.Height),
		w:  w,
		h:  h,
	}
}

func (p projector) cell(pt r2.Point) (canvas.Point, bool) {
	c := canvas.Point{X: int(math.Floor(pt.X * p.sx)), Y: int(math.Floor(pt.Y * p.sy))}
	return c, c.X >= 0 && c.X < p.w && c.Y >= 0 && c.Y < p.h
}

func (m viewModel) drawScene() string {
	w, h := m.canvasSize()
	cv := canvas.New(w, h)
	proj := newProjector(m.scene, w, h)

	set := func(pt r2.Point, r rune, color string) {
		if c, ok := proj.cell(pt); ok {
			cv.SetRuneWithStyle(c, r, lipgloss.NewStyle().Foreground(lipgloss.Color(color)))
		}
	}

	// Ground
	for x := 0; x < w; x++ {
		for y := int(m.scene.EarthLevel * proj.sy); y < h; y++ {
			cv.SetRuneWithStyle(canvas.Point{X: x, Y: y}, '░', lipgloss.NewStyle().Foreground(lipgloss.Color(render.EarthColor)))
		}
	}

	if !m.hasFrame {
		return cv.View()
	}

	for _, it := range m.frame.Items {
		color := m.scene.Palette.Color(it.Name)
		for x := it.Place.X - it.Size/2; x <= it.Place.X+it.Size/2; x += 1 / proj.sx {
			set(r2.Point{X: x, Y: m.scene.EarthLevel}, '▀', color)
		}
		fillDisc(it.Position, it.Size/2, proj, func(pt r2.Point) { set(pt, '█', color) })
	}

	base := m.scene.Base
	j1, j2 := m.frame.Arm.Joint1, m.frame.Arm.Effector
	drawSegment(base, j1, proj, func(pt r2.Point) { set(pt, '•', render.LinkColor) })
	drawSegment(j1, j2, proj, func(pt r2.Point) { set(pt, '•', render.LinkColor) })
	set(base, '■', render.BaseColor)
	set(j1, '●', render.JointColor)
	set(j2, '●', render.JointColor)

	return cv.View()
}

// drawSegment visits points along a-b spaced about one cell apart.
func drawSegment(a, b r2.Point, proj projector, visit func(r2.Point)) {
	d := b.Sub(a)
	n := int(math.Ceil(math.Max(math.Abs(d.X*proj.sx), math.Abs(d.Y*proj.sy))))
	if n == 0 {
		visit(a)
		return
	}
	for i := 0; i <= n; i++ {
		visit(a.Add(d.Mul(float64(i) / float64(n))))
	}
}

// fillDisc visits the centers of the cells covered by a disc.
func fillDisc(center r2.Point, radius float64, proj projector, visit func(r2.Point)) {
	dx, dy := 1/proj.sx, 1/proj.sy
	visit(center)
	for y := center.Y - radius; y <= center.Y+radius; y += dy {
		for x := center.X - radius; x <= center.X+radius; x += dx {
			p := r2.Point{X: x, Y: y}
			if p.Sub(center).Norm() <= radius {
				visit(p)
			}
		}
	}
}

func renderLegend() string {
	var items []string
	for _, name := range angleNames {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(angleColors[name])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+name)
	}
	return strings.Join(items, "  ")
}
