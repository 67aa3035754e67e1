package viz

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/streams3d/internal/colormap"
	"github.com/san-kum/streams3d/internal/scene"
	"github.com/san-kum/streams3d/internal/streams"
)

// BackgroundOpacity is the opacity of background markers and paths.
const BackgroundOpacity = 0.2

type RenderOptions struct {
	Scale       *colormap.Scale
	Theme       Theme
	MarkerScale float64 // sub-pixels per unit of marker size
	ShowPaths   bool
	ShowAxes    bool
}

// NewRenderOptions resolves the scene's color scale.
func NewRenderOptions(sc *scene.Scene, t Theme) (RenderOptions, error) {
	s, err := colormap.Get(sc.ColorScale)
	if err != nil {
		return RenderOptions{}, err
	}
	return RenderOptions{Scale: s, Theme: t, MarkerScale: 1, ShowPaths: true, ShowAxes: true}, nil
}

type marker struct {
	x, y  float64
	depth float64
	r     int
	color string
}

// RenderScene draws sc onto c: axes, stream paths, the sun, then markers
// from far to near. Background streams are faded toward the theme
// background.
func RenderScene(c *Canvas, sc *scene.Scene, cam *Camera, opt RenderOptions) {
	if c == nil || sc == nil || cam == nil || opt.Scale == nil {
		return
	}
	c.Clear()
	w, h := c.PixelSize()
	proj := cam.Projector(w, h)
	bg, _ := colorful.Hex(string(opt.Theme.Background))

	if opt.ShowAxes {
		drawAxes(c, proj, sc, string(opt.Theme.Muted))
	}

	markers := make([]marker, 0, len(sc.Entries)+1)
	for _, e := range sc.Entries {
		col := opt.Scale.At(e.Color)
		if h := sc.Fill(e); h != "" {
			if hc, err := colormap.Parse(h); err == nil {
				col = hc
			}
		}
		if e.Role == streams.Background {
			col = bg.BlendLab(col, BackgroundOpacity).Clamped()
		}
		hex := col.Hex()
		if opt.ShowPaths && len(e.Path) > 1 {
			drawPath(c, proj, e.Path, hex)
		}
		x, y, d, ok := proj.Project(e.Position)
		if !ok {
			continue
		}
		r := int(math.Round(e.Size * opt.MarkerScale))
		markers = append(markers, marker{x, y, d, r, hex})
	}

	if sx, sy, d, ok := proj.Project(streams.Vec3{}); ok {
		sun, err := colormap.Parse(sc.Sun.Color)
		if err != nil {
			sun = colorful.Color{R: 1, G: 1}
		}
		r := int(math.Round(sc.Sun.Radius * proj.Scale(d)))
		markers = append(markers, marker{sx, sy, d, r, sun.Hex()})
	}

	sort.SliceStable(markers, func(i, j int) bool { return markers[i].depth > markers[j].depth })
	for _, m := range markers {
		c.FillCircle(int(m.x), int(m.y), m.r, m.color)
	}
}

func drawPath(c *Canvas, proj *Projector, path []streams.Vec3, color string) {
	px, py, _, prev := proj.Project(path[0])
	for _, p := range path[1:] {
		x, y, _, ok := proj.Project(p)
		if ok && prev {
			c.DrawLine(int(px), int(py), int(x), int(y), color)
		}
		px, py, prev = x, y, ok
	}
}

func drawAxes(c *Canvas, proj *Projector, sc *scene.Scene, color string) {
	ext := sc.Extent()
	axes := []struct {
		rng  []float64
		unit streams.Vec3
	}{
		{sc.Axes.X.Range, streams.Vec3{X: 1}},
		{sc.Axes.Y.Range, streams.Vec3{Y: 1}},
		{sc.Axes.Z.Range, streams.Vec3{Z: 1}},
	}
	for _, a := range axes {
		lo, hi := -ext, ext
		if len(a.rng) == 2 {
			lo, hi = a.rng[0], a.rng[1]
		}
		drawPath(c, proj, []streams.Vec3{a.unit.Scale(lo), a.unit.Scale(hi)}, color)
	}
}
