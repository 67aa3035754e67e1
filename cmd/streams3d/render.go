package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/streams3d/internal/colormap"
	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/export"
	"github.com/san-kum/streams3d/internal/logging"
	"github.com/san-kum/streams3d/internal/scene"
	"github.com/san-kum/streams3d/internal/session"
	"github.com/san-kum/streams3d/internal/streams"
	"github.com/san-kum/streams3d/internal/viz"
)

var (
	workers   int
	gifPath   string
	gifDelay  int
	themeName string
	interval  time.Duration
)

const (
	gifCanvasWidth  = 100
	gifCanvasHeight = 50
)

// figureName is the default file name for the figure of step.
func figureName(cfg *config.RenderConfig, step int, ext string) string {
	q := cfg.Quantity
	if q == "" {
		q = "streams"
	}
	return fmt.Sprintf("streams3D_%s_%s_%06d.%s", q, cfg.Resize.Mode, step, ext)
}

func figureFormat() (string, error) {
	switch f := strings.ToLower(rf.format); f {
	case "svg", "json":
		return f, nil
	default:
		return "", streams.NewConfigError("format", "unknown figure format %q (want svg or json)", rf.format)
	}
}

func svgOptions() export.SVGOptions {
	opt := export.DefaultSVGOptions()
	opt.Width, opt.Height = rf.width, rf.height
	opt.MarkerScale = rf.markerPixels
	opt.ColorBar = !rf.noColorbar
	return opt
}

// writeFigure writes sc to path in format.
func writeFigure(sc *scene.Scene, path, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if format == "json" {
		return export.WriteFile(path, sc)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteSVG(f, sc, svgOptions()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// prepare resolves the config, validates it and builds session options.
func prepare(cmd *cobra.Command, steps []int) (*config.RenderConfig, session.Options, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, session.Options{}, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, session.Options{}, err
	}
	if steps == nil {
		steps = []int{cfg.TimeStep}
	}
	opts, err := sessionOptions(cmd, cfg, steps)
	if err != nil {
		return nil, session.Options{}, err
	}
	return cfg, opts, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := figureFormat()
	if err != nil {
		return err
	}
	cfg, opts, err := prepare(cmd, nil)
	if err != nil {
		return err
	}

	s, err := session.New(cfg, opts)
	if err != nil {
		return err
	}
	sc, err := s.Next()
	if err != nil {
		return err
	}

	path := rf.figPath
	if path == "" {
		path = filepath.Join(dataDir, "figures", figureName(cfg, sc.TimeStep, format))
	}
	if err := writeFigure(sc, path, format); err != nil {
		return fmt.Errorf("failed to write figure: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	runID, err := st.Save(sc, string(cfg.Resize.Mode), path)
	if err != nil {
		return fmt.Errorf("failed to save render: %w", err)
	}

	fmt.Println(summary(sc, runID, path))
	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	format, err := figureFormat()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("figpath") {
		return fmt.Errorf("--figpath names a single figure; use --data to place an animation")
	}
	steps, err := timeSteps(cmd)
	if err != nil {
		return err
	}
	cfg, opts, err := prepare(cmd, steps)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logging.Infof("rendering %d time steps with %d workers", len(steps), workers)
	scenes, err := session.Batch(ctx, cfg, opts, workers)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	theme, _ := viz.GetTheme(settings.Theme)
	figDir := filepath.Join(dataDir, "figures")
	mode := string(cfg.Resize.Mode)

	var done atomic.Int64
	var mu sync.Mutex
	err = session.ForEach(ctx, scenes, workers, func(ctx context.Context, sc *scene.Scene) error {
		path := filepath.Join(figDir, figureName(cfg, sc.TimeStep, format))
		if err := writeFigure(sc, path, format); err != nil {
			return fmt.Errorf("step %d: %w", sc.TimeStep, err)
		}
		if _, err := st.Save(sc, mode, path); err != nil {
			return fmt.Errorf("step %d: %w", sc.TimeStep, err)
		}
		n := int(done.Add(1))
		mu.Lock()
		fmt.Fprintf(os.Stderr, "\r%s", viz.ProgressBar(theme, n, len(scenes), 40))
		mu.Unlock()
		return nil
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	if gifPath != "" {
		if err := writeGIF(scenes, theme); err != nil {
			return fmt.Errorf("failed to write gif: %w", err)
		}
		logging.Infof("wrote %s", gifPath)
	}

	last := scenes[len(scenes)-1]
	fmt.Printf("rendered %d figures to %s (final multipliers: active %.4g, background %.4g)\n",
		len(scenes), figDir, last.Multipliers.Active, last.Multipliers.Background)
	return nil
}

// writeGIF rasterizes the terminal rendering of each scene into one frame.
func writeGIF(scenes []*scene.Scene, theme viz.Theme) error {
	cam := viz.NewCamera(scenes[0].Camera, scenes[0].Extent())
	canvas := viz.NewCanvas(gifCanvasWidth, gifCanvasHeight)
	frames := make([]*image.Paletted, 0, len(scenes))
	for _, sc := range scenes {
		opt, err := viz.NewRenderOptions(sc, theme)
		if err != nil {
			return err
		}
		viz.RenderScene(canvas, sc, cam, opt)
		frames = append(frames, canvas.Image(8, 16, string(theme.Background)))
	}
	f, err := os.Create(gifPath)
	if err != nil {
		return err
	}
	if err := viz.WriteGIF(f, frames, gifDelay); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runView(cmd *cobra.Command, args []string) error {
	steps, err := timeSteps(cmd)
	if err != nil {
		return err
	}
	cfg, opts, err := prepare(cmd, steps)
	if err != nil {
		return err
	}
	s, err := session.New(cfg, opts)
	if err != nil {
		return err
	}
	theme, ok := viz.GetTheme(themeName)
	if !ok {
		logging.Warnf("unknown theme %q, using %s (available: %v)", themeName, theme.Name, viz.ThemeNames())
	}
	return viz.RunViewer(s, viz.ViewerOptions{
		Theme:    theme,
		Interval: interval,
		Mode:     string(cfg.Resize.Mode),
	})
}

// summary describes a finished render.
func summary(sc *scene.Scene, runID, path string) string {
	label := lipgloss.NewStyle().Bold(true)
	var b strings.Builder
	if sc.Title != "" {
		b.WriteString(label.Render(sc.Title) + "\n")
	}
	fmt.Fprintf(&b, "%s %s\n", label.Render("run:"), runID)
	fmt.Fprintf(&b, "%s %s\n", label.Render("figure:"), path)
	fmt.Fprintf(&b, "%s %d active, %d background\n", label.Render("streams:"),
		sc.Count(streams.Active), sc.Count(streams.Background))
	fmt.Fprintf(&b, "%s active %.4g, background %.4g\n", label.Render("multipliers:"),
		sc.Multipliers.Active, sc.Multipliers.Background)
	if len(sc.Skipped) > 0 {
		fmt.Fprintf(&b, "%s %v\n", label.Render("skipped:"), sc.Skipped)
	}
	if cmap, err := colormap.Get(sc.ColorScale); err == nil {
		lo := fmt.Sprintf("%.3g", sc.Domain.Min)
		hi := fmt.Sprintf("%.3g", sc.Domain.Max)
		b.WriteString(viz.ColorBar(cmap, 32, lo, hi))
	}
	return b.String()
}
