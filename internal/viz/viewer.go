package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/streams3d/internal/colormap"
	"github.com/san-kum/streams3d/internal/scene"
	"github.com/san-kum/streams3d/internal/streams"
)

const (
	defaultCanvasWidth  = 80
	defaultCanvasHeight = 24
	historyCapacity     = 600
	orbitStep           = 0.1
)

// Source yields the scenes of a session in render order.
type Source interface {
	Next() (*scene.Scene, error)
	Len() int
}

type TickMsg time.Time

type ViewerOptions struct {
	Theme    Theme
	Interval time.Duration
	Mode     string
}

// Viewer steps through a Source, keeping built scenes so earlier renders
// can be replayed without rebuilding them.
type Viewer struct {
	src      Source
	opts     ViewerOptions
	styles   Styles
	canvas   *Canvas
	camera   *Camera
	scale    *colormap.Scale
	history  []*scene.Scene
	playHead int // -1 follows the latest scene
	built    int
	playing  bool
	showHelp bool
	err      error
}

func NewViewer(src Source, opts ViewerOptions) *Viewer {
	if opts.Interval <= 0 {
		opts.Interval = 500 * time.Millisecond
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeSolar
	}
	v := &Viewer{
		src:      src,
		opts:     opts,
		styles:   NewStyles(opts.Theme),
		canvas:   NewCanvas(defaultCanvasWidth, defaultCanvasHeight),
		history:  make([]*scene.Scene, 0, min(src.Len(), historyCapacity)),
		playHead: -1,
	}
	v.advance()
	return v
}

func (v *Viewer) tick() tea.Cmd {
	return tea.Tick(v.opts.Interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (v *Viewer) Init() tea.Cmd { return nil }

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return v, tea.Quit
		case " ":
			v.playing = !v.playing
			if v.playing {
				return v, v.tick()
			}
		case "n", "]":
			v.forward()
		case "p", "[":
			v.back()
		case "left", "h":
			v.orbit(-orbitStep, 0)
		case "right", "l":
			v.orbit(orbitStep, 0)
		case "up", "k":
			v.orbit(0, orbitStep)
		case "down", "j":
			v.orbit(0, -orbitStep)
		case "+", "=":
			if v.camera != nil {
				v.camera.ZoomIn()
			}
		case "-", "_":
			if v.camera != nil {
				v.camera.ZoomOut()
			}
		case "r":
			if v.camera != nil {
				v.camera.ResetView()
			}
		case "t":
			v.opts.Theme = NextTheme(v.opts.Theme)
			v.styles = NewStyles(v.opts.Theme)
		case "?":
			v.showHelp = !v.showHelp
		}
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-52)
		h := max(8, msg.Height-4)
		v.canvas = NewCanvas(w, h)
	case TickMsg:
		if !v.playing {
			return v, nil
		}
		if !v.forward() {
			v.playing = false
			return v, nil
		}
		return v, v.tick()
	}
	return v, nil
}

func (v *Viewer) orbit(dyaw, dpitch float64) {
	if v.camera != nil {
		v.camera.Orbit(dyaw, dpitch)
	}
}

// forward moves one render ahead, building a new scene at the live end.
// It reports whether the view changed.
func (v *Viewer) forward() bool {
	if v.playHead >= 0 {
		v.playHead++
		if v.playHead >= len(v.history)-1 {
			v.playHead = -1
		}
		return true
	}
	return v.advance()
}

// back moves one render into the history.
func (v *Viewer) back() {
	if len(v.history) == 0 {
		return
	}
	if v.playHead == -1 {
		v.playHead = len(v.history) - 1
	}
	if v.playHead > 0 {
		v.playHead--
	}
}

func (v *Viewer) advance() bool {
	if v.err != nil || v.Built() >= v.src.Len() {
		return false
	}
	sc, err := v.src.Next()
	if err != nil {
		v.err = err
		return false
	}
	if v.camera == nil {
		v.camera = NewCamera(sc.Camera, sc.Extent())
	}
	if v.scale == nil || v.scale.Name != sc.ColorScale {
		if s, err := colormap.Get(sc.ColorScale); err == nil {
			v.scale = s
		} else {
			v.err = err
		}
	}
	v.history = append(v.history, sc)
	if len(v.history) > historyCapacity {
		v.history = v.history[1:]
	}
	v.built++
	return true
}

// Built returns how many scenes have been taken from the source.
func (v *Viewer) Built() int { return v.built }

// Current returns the scene on screen, or nil before the first one.
func (v *Viewer) Current() *scene.Scene {
	if len(v.history) == 0 {
		return nil
	}
	if v.playHead >= 0 {
		return v.history[v.playHead]
	}
	return v.history[len(v.history)-1]
}

func (v *Viewer) multiplierHistory() (active, background []float64) {
	for _, sc := range v.history {
		active = append(active, sc.Multipliers.Active)
		background = append(background, sc.Multipliers.Background)
	}
	return active, background
}

func (v *Viewer) View() string {
	st := v.styles
	sc := v.Current()
	if sc == nil {
		if v.err != nil {
			return st.Error.Render("error: "+v.err.Error()) + "\n"
		}
		return "no scenes\n"
	}

	if v.scale != nil {
		RenderScene(v.canvas, sc, v.camera, RenderOptions{
			Scale:       v.scale,
			Theme:       v.opts.Theme,
			MarkerScale: 1,
			ShowPaths:   true,
			ShowAxes:    true,
		})
	}
	canvasView := st.Canvas.Render(v.canvas.Render())

	var s strings.Builder
	title := sc.Title
	if title == "" {
		title = strings.ToUpper(sc.Quantity)
	}
	s.WriteString(st.Header.Render(title) + "\n")

	status := "PAUSED"
	switch {
	case v.playHead >= 0:
		status = fmt.Sprintf("REPLAY (%d/%d)", v.playHead+1, len(v.history))
	case v.playing:
		status = "PLAYING"
	}
	s.WriteString(st.Status.Render(status) + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.Label.Render(label) + st.Value.Render(value) + "\n")
	}
	row("Render", fmt.Sprintf("%d of %d", sc.RenderIndex+1, v.src.Len()))
	row("Time step", fmt.Sprintf("%d", sc.TimeStep))
	if v.opts.Mode != "" {
		row("Resize", v.opts.Mode)
	}
	row("Active", fmt.Sprintf("%d  x%.3g", sc.Count(streams.Active), sc.Multipliers.Active))
	row("Background", fmt.Sprintf("%d  x%.3g", sc.Count(streams.Background), sc.Multipliers.Background))
	if len(sc.Skipped) > 0 {
		row("Skipped", fmt.Sprintf("%d", len(sc.Skipped)))
	}
	if v.scale != nil {
		lo, hi := fmt.Sprintf("%.3g", sc.Domain.Min), fmt.Sprintf("%.3g", sc.Domain.Max)
		s.WriteString("\n" + ColorBar(v.scale, 20, lo, hi) + "\n")
	}

	active, background := v.multiplierHistory()
	if len(active) > 1 {
		chart := asciigraph.PlotMany([][]float64{active, background},
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("size multiplier"))
		s.WriteString(st.Graph.Render(chart) + "\n")
	}
	if v.err != nil {
		s.WriteString("\n" + st.Error.Render(v.err.Error()) + "\n")
	}

	s.WriteString(st.Help.Render("SP:Play N/P:Step ←→↑↓:Orbit\n+/-:Zoom R:Reset T:Theme ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Panel.Render(s.String()))
	if v.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
  Space     play / pause
  N or ]    next render
  P or [    previous render (replay)
  Arrows    orbit the camera
  + / -     zoom
  R         reset camera
  T         cycle themes
  ?         toggle this help
  Q         quit`

// RunViewer runs the viewer full screen until the user quits.
func RunViewer(src Source, opts ViewerOptions) error {
	_, err := tea.NewProgram(NewViewer(src, opts), tea.WithAltScreen()).Run()
	return err
}
