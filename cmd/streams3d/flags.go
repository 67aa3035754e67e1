package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/resize"
	"github.com/san-kum/streams3d/internal/scale"
)

// renderFlags are shared by the render, animate, view, schedule and config commands.
type renderFlags struct {
	configFile string
	preset     string

	source    string
	streamIDs []string
	activeIDs []string
	stepHours float64

	quantity       string
	timeStep       int
	timeStart      string
	timeOffset     float64
	energy         float64
	dataScale      string
	dataUnit       string
	sunColor       string
	colorScale     string
	highlightColor string
	noColorbar     bool
	cmin           float64
	cmid           float64
	cmax           float64
	clamp          bool
	domainPolicy   string

	xRange, yRange, zRange, axisRange []float64
	axisUnit                          string
	axisFontSize                      float64
	hideAxes                          bool
	hideTitle                         bool

	cameraCenter, cameraEye, cameraUp []float64
	eyeInRTP                          bool

	markerSize   float64
	resizeMode   string
	resizeEvery  int
	resizeBy     float64
	resizePower  float64
	format       string
	figPath      string
	width        int
	height       int
	markerPixels float64
}

var rf renderFlags

func addRenderFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	def := config.DefaultConfig()

	fs.StringVar(&rf.configFile, "config", "", "render config file (yaml, or toml by extension)")
	fs.StringVar(&rf.preset, "preset", "", "quantity preset (see 'presets')")

	fs.StringVar(&rf.source, "source", "", "directory of snapshot_NNNNNN.csv files (default: synthetic streams)")
	fs.StringSliceVar(&rf.streamIDs, "streams", nil, "streams to load: all, start:stop[:step] or ids")
	fs.StringSliceVar(&rf.activeIDs, "active-streams", nil, "streams to show as active: all, start:stop[:step] or ids")
	fs.Float64Var(&rf.stepHours, "step-hours", 1, "simulated hours per time step")

	fs.StringVar(&rf.quantity, "quantity", "", "quantity mapped to marker color")
	fs.IntVar(&rf.timeStep, "time-step", 0, "time step at which to plot data")
	fs.StringVar(&rf.timeStart, "time-start", "", "UTC start date and time for the time label (YYYY-MM-DD hh:mm:ss)")
	fs.Float64Var(&rf.timeOffset, "time-offset", 0, "signed offset in days of simulation times")
	fs.Float64Var(&rf.energy, "energy", 0, "energy in MeV shown in the title")
	fs.StringVar(&rf.dataScale, "data-scale", string(def.DataScale), "data scale: linear or log")
	fs.StringVar(&rf.dataUnit, "data-unit", "", "unit shown for the quantity")
	fs.StringVar(&rf.sunColor, "sun-color", def.SunColor, "color of the sun marker")
	fs.StringVar(&rf.colorScale, "color-scale", def.ColorScale, "color scale; append _r to reverse")
	fs.StringVar(&rf.highlightColor, "highlight-color", "", "draw active streams in this single color")
	fs.BoolVar(&rf.noColorbar, "no-colorbar", false, "do not show the colorbar")
	fs.Float64Var(&rf.cmin, "min", 0, "minimum of the color domain")
	fs.Float64Var(&rf.cmid, "mid", 0, "midpoint of the color domain")
	fs.Float64Var(&rf.cmax, "max", 0, "maximum of the color domain")
	fs.BoolVar(&rf.clamp, "clamp", false, "clamp values to the color domain")
	fs.StringVar(&rf.domainPolicy, "domain-policy", config.PolicyAbort, "on values outside the scale's domain: abort or skip")

	fs.Float64SliceVar(&rf.xRange, "xaxis-range", nil, "x-axis range as min,max")
	fs.Float64SliceVar(&rf.yRange, "yaxis-range", nil, "y-axis range as min,max")
	fs.Float64SliceVar(&rf.zRange, "zaxis-range", nil, "z-axis range as min,max")
	fs.Float64SliceVar(&rf.axisRange, "axis-range", nil, "range of every axis as min,max")
	fs.StringVar(&rf.axisUnit, "axis-unit", def.Axes.Unit, "axis unit: Rs or au")
	fs.Float64Var(&rf.axisFontSize, "axis-fontsize", def.Axes.FontSize, "font size for all axes")
	fs.BoolVar(&rf.hideAxes, "hide-axes", false, "hide titles and tick labels on all axes")
	fs.BoolVar(&rf.hideTitle, "hide-title", false, "hide the panel title")

	fs.Float64SliceVar(&rf.cameraCenter, "camera-center", nil, "camera center as x,y,z")
	fs.Float64SliceVar(&rf.cameraEye, "camera-eye", nil, "camera eye as x,y,z (or r,θ,φ with --eye-in-rtp)")
	fs.Float64SliceVar(&rf.cameraUp, "camera-up", nil, "camera up direction as x,y,z")
	fs.BoolVar(&rf.eyeInRTP, "eye-in-rtp", false, "camera eye is given as r,θ,φ in degrees")

	fs.Float64Var(&rf.markerSize, "marker-size", def.MarkerSize, "base marker size")
	fs.StringVar(&rf.resizeMode, "resize", string(resize.ModeNone), "markers to resize: none, background, active or all")
	fs.IntVar(&rf.resizeEvery, "resize-every", def.Resize.Every, "renders between resize steps")
	fs.Float64Var(&rf.resizeBy, "resize-by", def.Resize.Factor, "resize factor per step")
	fs.Float64Var(&rf.resizePower, "resize-power", def.Resize.Power, "power-law index applied to the step count")
}

func addOutputFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&rf.format, "format", "svg", "figure format: svg or json")
	fs.StringVar(&rf.figPath, "figpath", "", "figure path (default: <data>/figures/<generated name>)")
	fs.IntVar(&rf.width, "width", 900, "figure width in pixels")
	fs.IntVar(&rf.height, "height", 900, "figure height in pixels")
	fs.Float64Var(&rf.markerPixels, "marker-pixels", 3, "svg marker radius per unit of marker size")
}

// resolveConfig builds the render config: defaults, then the config file,
// then the preset, then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.RenderConfig, error) {
	cfg := config.DefaultConfig()
	if rf.configFile != "" {
		loaded, err := config.Load(rf.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if rf.preset != "" && !config.ApplyPreset(cfg, rf.preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", rf.preset, config.ListPresets())
	}

	changed := cmd.Flags().Changed
	if changed("quantity") {
		cfg.Quantity = rf.quantity
	}
	if changed("time-step") {
		cfg.TimeStep = rf.timeStep
	}
	if changed("time-start") {
		cfg.Title.TimeStart = rf.timeStart
	}
	if changed("time-offset") {
		cfg.Title.OffsetDay = rf.timeOffset
	}
	if changed("energy") {
		e := rf.energy
		cfg.Title.Energy = &e
	}
	if changed("data-scale") {
		k, err := scale.ParseKind(rf.dataScale)
		if err != nil {
			return nil, err
		}
		cfg.DataScale = k
	}
	if changed("data-unit") {
		cfg.Title.Unit = rf.dataUnit
	}
	if changed("sun-color") {
		cfg.SunColor = rf.sunColor
	}
	if changed("color-scale") {
		cfg.ColorScale = rf.colorScale
	}
	if changed("highlight-color") {
		cfg.HighlightColor = rf.highlightColor
	}
	if changed("clamp") {
		cfg.Clamp = rf.clamp
	}
	if changed("domain-policy") {
		cfg.DomainPolicy = rf.domainPolicy
	}
	if changed("min") || changed("max") || changed("mid") {
		b := cfg.Bounds[cfg.Quantity]
		if changed("min") {
			b.Min = rf.cmin
		}
		if changed("max") {
			b.Max = rf.cmax
		}
		if changed("mid") {
			mid := rf.cmid
			b.Mid = &mid
		}
		if cfg.Bounds == nil {
			cfg.Bounds = map[string]config.Bounds{}
		}
		cfg.Bounds[cfg.Quantity] = b
	}

	if changed("xaxis-range") {
		cfg.Axes.XRange = rf.xRange
	}
	if changed("yaxis-range") {
		cfg.Axes.YRange = rf.yRange
	}
	if changed("zaxis-range") {
		cfg.Axes.ZRange = rf.zRange
	}
	if changed("axis-range") {
		cfg.Axes.Range = rf.axisRange
	}
	if changed("axis-unit") {
		cfg.Axes.Unit = rf.axisUnit
	}
	if changed("axis-fontsize") {
		cfg.Axes.FontSize = rf.axisFontSize
	}
	if changed("hide-axes") {
		cfg.Axes.Hide = rf.hideAxes
	}
	if changed("hide-title") {
		cfg.Title.Hide = rf.hideTitle
	}

	if changed("camera-center") {
		cfg.Camera.Center = rf.cameraCenter
	}
	if changed("camera-eye") {
		cfg.Camera.Eye = rf.cameraEye
	}
	if changed("camera-up") {
		cfg.Camera.Up = rf.cameraUp
	}
	if changed("eye-in-rtp") {
		cfg.Camera.EyeInRTP = rf.eyeInRTP
	}

	if changed("marker-size") {
		cfg.MarkerSize = rf.markerSize
	}
	if changed("resize") {
		m, err := resize.ParseMode(rf.resizeMode)
		if err != nil {
			return nil, err
		}
		cfg.Resize.Mode = m
	}
	if changed("resize-every") {
		cfg.Resize.Every = rf.resizeEvery
	}
	if changed("resize-by") {
		cfg.Resize.Factor = rf.resizeBy
	}
	if changed("resize-power") {
		cfg.Resize.Power = rf.resizePower
	}

	return cfg, nil
}
