package export

import (
	"fmt"
	"html"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/streams3d/internal/colormap"
	"github.com/san-kum/streams3d/internal/scene"
	"github.com/san-kum/streams3d/internal/streams"
	"github.com/san-kum/streams3d/internal/viz"
)

type SVGOptions struct {
	Width, Height int
	Background    string
	MarkerScale   float64 // pixels of radius per unit of marker size
	ShowPaths     bool
	ColorBar      bool
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:       900,
		Height:      900,
		Background:  "#ffffff",
		MarkerScale: 3,
		ShowPaths:   true,
		ColorBar:    true,
	}
}

type svgMarker struct {
	x, y, depth, r float64
	fill           string
	opacity        float64
	id             string
}

// SceneToSVG draws sc through its camera. Every entry in front of the camera
// becomes one circle, and the sun one more.
func SceneToSVG(sc *scene.Scene, opt SVGOptions) (string, error) {
	if sc == nil {
		return "", fmt.Errorf("export: nil scene")
	}
	cmap, err := colormap.Get(sc.ColorScale)
	if err != nil {
		return "", err
	}
	if opt.Width <= 0 || opt.Height <= 0 {
		return "", fmt.Errorf("export: invalid size %dx%d", opt.Width, opt.Height)
	}
	if opt.MarkerScale <= 0 {
		opt.MarkerScale = 1
	}

	cam := viz.NewCamera(sc.Camera, sc.Extent())
	proj := cam.Projector(opt.Width, opt.Height)

	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opt.Width, opt.Height, opt.Width, opt.Height, opt.Background))

	writeAxes(&sb, proj, sc)

	markers := make([]svgMarker, 0, len(sc.Entries)+1)
	for _, e := range sc.Entries {
		fill := cmap.Hex(e.Color)
		if h := sc.Fill(e); h != "" {
			if c, err := colormap.Parse(h); err == nil {
				fill = c.Hex()
			}
		}
		opacity := 1.0
		if e.Role == streams.Background {
			opacity = viz.BackgroundOpacity
		}
		if opt.ShowPaths && len(e.Path) > 1 {
			writePath(&sb, proj, e.Path, fill, opacity)
		}
		x, y, d, ok := proj.Project(e.Position)
		if !ok {
			continue
		}
		markers = append(markers, svgMarker{
			x: x, y: y, depth: d,
			r:       math.Max(0.5, e.Size*opt.MarkerScale),
			fill:    fill,
			opacity: opacity,
			id:      fmt.Sprintf("stream-%d", e.ID),
		})
	}
	if x, y, d, ok := proj.Project(streams.Vec3{}); ok {
		fill := sc.Sun.Color
		if c, err := colormap.Parse(fill); err == nil {
			fill = c.Hex()
		}
		markers = append(markers, svgMarker{
			x: x, y: y, depth: d,
			r:       math.Max(1, sc.Sun.Radius*proj.Scale(d)),
			fill:    fill,
			opacity: 1,
			id:      "sun",
		})
	}

	sort.SliceStable(markers, func(i, j int) bool { return markers[i].depth > markers[j].depth })
	sb.WriteString(`<g stroke="none">` + "\n")
	for _, m := range markers {
		sb.WriteString(fmt.Sprintf(`<circle id="%s" cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.2f"/>
`, m.id, m.x, m.y, m.r, m.fill, m.opacity))
	}
	sb.WriteString("</g>\n")

	if opt.ColorBar {
		writeColorBar(&sb, cmap, sc, opt)
	}
	if sc.Title != "" {
		fontSize := sc.FontSize
		if fontSize <= 0 {
			fontSize = 14
		}
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.0f" font-family="sans-serif" font-size="%.0f" text-anchor="middle">%s</text>
`, opt.Width/2, fontSize*1.5, fontSize, html.EscapeString(sc.Title)))
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

// WriteSVG writes SceneToSVG's output to w.
func WriteSVG(w io.Writer, sc *scene.Scene, opt SVGOptions) error {
	s, err := SceneToSVG(sc, opt)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func writePath(sb *strings.Builder, proj *viz.Projector, path []streams.Vec3, stroke string, opacity float64) {
	var d strings.Builder
	pen := false
	for _, p := range path {
		x, y, _, ok := proj.Project(p)
		if !ok {
			pen = false
			continue
		}
		if pen {
			d.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		} else {
			d.WriteString(fmt.Sprintf(" M%.1f,%.1f", x, y))
			pen = true
		}
	}
	if d.Len() == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="%.2f" stroke-width="1" d="%s"/>
`, stroke, opacity*0.6, strings.TrimSpace(d.String())))
}

func writeAxes(sb *strings.Builder, proj *viz.Projector, sc *scene.Scene) {
	ext := sc.Extent()
	for _, a := range []struct {
		ax   scene.Axis
		unit streams.Vec3
	}{
		{sc.Axes.X, streams.Vec3{X: 1}},
		{sc.Axes.Y, streams.Vec3{Y: 1}},
		{sc.Axes.Z, streams.Vec3{Z: 1}},
	} {
		lo, hi := -ext, ext
		if len(a.ax.Range) == 2 {
			lo, hi = a.ax.Range[0], a.ax.Range[1]
		}
		x0, y0, _, ok0 := proj.Project(a.unit.Scale(lo))
		x1, y1, _, ok1 := proj.Project(a.unit.Scale(hi))
		if !ok0 || !ok1 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999999" stroke-width="1"/>
`, x0, y0, x1, y1))
		if a.ax.Title != "" {
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="12" fill="#555555">%s</text>
`, x1, y1, html.EscapeString(a.ax.Title)))
		}
	}
}

func writeColorBar(sb *strings.Builder, cmap *colormap.Scale, sc *scene.Scene, opt SVGOptions) {
	const stops = 16
	w, h := 16.0, float64(opt.Height)*0.5
	x, y := float64(opt.Width)-w-60, (float64(opt.Height)-h)/2

	sb.WriteString(`<defs><linearGradient id="colorbar" x1="0" y1="1" x2="0" y2="0">` + "\n")
	for i := 0; i <= stops; i++ {
		t := float64(i) / stops
		sb.WriteString(fmt.Sprintf(`<stop offset="%.3f" stop-color="%s"/>`+"\n", t, cmap.Hex(t)))
	}
	sb.WriteString("</linearGradient></defs>\n")
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="url(#colorbar)"/>
`, x, y, w, h))

	label := func(v, ty float64) {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="11">%.3g</text>
`, x+w+4, ty, v))
	}
	label(sc.Domain.Max, y+4)
	label(sc.Domain.Min, y+h+4)
}
