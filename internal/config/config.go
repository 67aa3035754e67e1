package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/streams3d/internal/colormap"
	"github.com/san-kum/streams3d/internal/resize"
	"github.com/san-kum/streams3d/internal/scale"
	"github.com/san-kum/streams3d/internal/streams"
)

const (
	DefaultColorScale = "viridis"
	DefaultMarkerSize = 1.0
	DefaultSunColor   = "yellow"
	DefaultAxisUnit   = "Rs"
	DefaultFontSize   = 14.0
)

// Domain-error policies.
const (
	PolicyAbort = "abort"
	PolicySkip  = "skip"
)

// RenderConfig is the validated input of the scene builder.
type RenderConfig struct {
	Quantity       string             `yaml:"quantity" toml:"quantity"`
	ColorScale     string             `yaml:"color_scale" toml:"color_scale"`
	DataScale      scale.Kind         `yaml:"data_scale" toml:"data_scale"`
	Bounds         map[string]Bounds  `yaml:"bounds" toml:"bounds"`
	Clamp          bool               `yaml:"clamp" toml:"clamp"`
	ActiveIDs      []streams.StreamID `yaml:"active_ids" toml:"active_ids"`
	MarkerSize     float64            `yaml:"marker_size" toml:"marker_size"`
	Resize         resize.Config      `yaml:"resize" toml:"resize"`
	SunColor       string             `yaml:"sun_color" toml:"sun_color"`
	HighlightColor string             `yaml:"highlight_color" toml:"highlight_color"`
	TimeStep       int                `yaml:"time_step" toml:"time_step"`
	DomainPolicy   string             `yaml:"domain_policy" toml:"domain_policy"`
	Axes           AxesConfig         `yaml:"axes" toml:"axes"`
	Camera         CameraConfig       `yaml:"camera" toml:"camera"`
	Title          TitleConfig        `yaml:"title" toml:"title"`
}

// Bounds is the color domain of one quantity. Mid is optional.
type Bounds struct {
	Min float64  `yaml:"min" toml:"min"`
	Max float64  `yaml:"max" toml:"max"`
	Mid *float64 `yaml:"mid,omitempty" toml:"mid,omitempty"`
}

// AxesConfig ranges are [min, max] pairs; a per-axis range overrides Range.
type AxesConfig struct {
	Range    []float64 `yaml:"range,omitempty" toml:"range,omitempty"`
	XRange   []float64 `yaml:"x_range,omitempty" toml:"x_range,omitempty"`
	YRange   []float64 `yaml:"y_range,omitempty" toml:"y_range,omitempty"`
	ZRange   []float64 `yaml:"z_range,omitempty" toml:"z_range,omitempty"`
	Unit     string    `yaml:"unit" toml:"unit"`
	FontSize float64   `yaml:"font_size" toml:"font_size"`
	Hide     bool      `yaml:"hide" toml:"hide"`
}

// CameraConfig points are (x, y, z) triples, or (r, θ°, φ°) for the eye when
// EyeInRTP is set. Empty means the renderer default.
type CameraConfig struct {
	Center   []float64 `yaml:"center,omitempty" toml:"center,omitempty"`
	Eye      []float64 `yaml:"eye,omitempty" toml:"eye,omitempty"`
	Up       []float64 `yaml:"up,omitempty" toml:"up,omitempty"`
	EyeInRTP bool      `yaml:"eye_in_rtp" toml:"eye_in_rtp"`
}

type TitleConfig struct {
	Hide      bool     `yaml:"hide" toml:"hide"`
	TimeStart string   `yaml:"time_start" toml:"time_start"`
	OffsetDay float64  `yaml:"time_offset" toml:"time_offset"`
	Energy    *float64 `yaml:"energy,omitempty" toml:"energy,omitempty"`
	Unit      string   `yaml:"unit" toml:"unit"`
}

func DefaultConfig() *RenderConfig {
	return &RenderConfig{
		ColorScale:   DefaultColorScale,
		DataScale:    scale.Linear,
		Bounds:       map[string]Bounds{},
		MarkerSize:   DefaultMarkerSize,
		Resize:       resize.DefaultConfig(),
		SunColor:     DefaultSunColor,
		DomainPolicy: PolicyAbort,
		Axes: AxesConfig{
			Unit:     DefaultAxisUnit,
			FontSize: DefaultFontSize,
		},
	}
}

// Load reads a config file. Files ending in .toml are TOML; anything else is
// YAML. Fields the file leaves out keep their defaults.
func Load(path string) (*RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *RenderConfig) error {
	var data []byte
	var err error
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate checks the static configuration. It does not check that the
// selected quantity has bounds; the scene builder reports that as an
// IncompleteConfigError.
func (c *RenderConfig) Validate() error {
	kind, err := scale.ParseKind(string(c.DataScale))
	if err != nil {
		return err
	}
	if c.DataScale != "" && kind != c.DataScale {
		return streams.NewConfigError("data_scale", "scale %q must be written as %q", c.DataScale, kind)
	}
	if err := c.Resize.Validate(); err != nil {
		return err
	}
	if !(c.MarkerSize > 0) || math.IsInf(c.MarkerSize, 0) {
		return streams.NewConfigError("marker_size", "must be positive, got %g", c.MarkerSize)
	}
	if c.TimeStep < 0 {
		return streams.NewConfigError("time_step", "must be non-negative, got %d", c.TimeStep)
	}
	for _, id := range c.ActiveIDs {
		if id < 0 {
			return streams.NewConfigError("active_ids", "negative stream id %d", id)
		}
	}
	switch c.DomainPolicy {
	case "", PolicyAbort, PolicySkip:
	default:
		return streams.NewConfigError("domain_policy", "unknown policy %q (want abort or skip)", c.DomainPolicy)
	}
	for _, name := range c.Quantities() {
		b := c.Bounds[name]
		if !(b.Max > b.Min) {
			return streams.NewConfigError("bounds."+name, "max (%g) must exceed min (%g)", b.Max, b.Min)
		}
		if b.Mid != nil && (*b.Mid < b.Min || *b.Mid > b.Max) {
			return streams.NewConfigError("bounds."+name, "mid %g outside [%g, %g]", *b.Mid, b.Min, b.Max)
		}
		if name == c.Quantity && c.DataScaleOrDefault() == scale.Log && b.Min <= 0 {
			return streams.NewConfigError("bounds."+name, "log scale needs min > 0, got %g", b.Min)
		}
	}
	for name, r := range map[string][]float64{"range": c.Axes.Range, "x_range": c.Axes.XRange, "y_range": c.Axes.YRange, "z_range": c.Axes.ZRange} {
		if r == nil {
			continue
		}
		if len(r) != 2 || !(r[1] > r[0]) {
			return streams.NewConfigError("axes."+name, "want [min, max] with max > min, got %v", r)
		}
	}
	for name, p := range map[string][]float64{"center": c.Camera.Center, "eye": c.Camera.Eye, "up": c.Camera.Up} {
		if p != nil && len(p) != 3 {
			return streams.NewConfigError("camera."+name, "want 3 components, got %d", len(p))
		}
	}
	if _, err := colormap.Get(c.ColorScaleOrDefault()); err != nil {
		return err
	}
	for name, col := range map[string]string{"sun_color": c.SunColor, "highlight_color": c.HighlightColor} {
		if col == "" {
			continue
		}
		if _, err := colormap.Parse(col); err != nil {
			return streams.NewConfigError(name, "%v", err)
		}
	}
	switch strings.ToLower(c.Axes.Unit) {
	case "", "rs", "au":
	default:
		return streams.NewConfigError("axes.unit", "unknown unit %q (want Rs or au)", c.Axes.Unit)
	}
	return nil
}

func (c *RenderConfig) ColorScaleOrDefault() string {
	if c.ColorScale == "" {
		return DefaultColorScale
	}
	return c.ColorScale
}

func (c *RenderConfig) DataScaleOrDefault() scale.Kind {
	if c.DataScale == "" {
		return scale.Linear
	}
	return c.DataScale
}

// BoundsFor returns the color domain configured for quantity.
func (c *RenderConfig) BoundsFor(quantity string) (Bounds, bool) {
	b, ok := c.Bounds[quantity]
	return b, ok
}

// Quantities lists the quantities with configured bounds, sorted.
func (c *RenderConfig) Quantities() []string {
	names := make([]string, 0, len(c.Bounds))
	for name := range c.Bounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of c.
func (c *RenderConfig) Clone() *RenderConfig {
	cp := *c
	cp.Bounds = make(map[string]Bounds, len(c.Bounds))
	for k, v := range c.Bounds {
		v.Mid = clonePtr(v.Mid)
		cp.Bounds[k] = v
	}
	cp.ActiveIDs = slices.Clone(c.ActiveIDs)
	cp.Title.Energy = clonePtr(c.Title.Energy)

	cp.Axes.Range = slices.Clone(c.Axes.Range)
	cp.Axes.XRange = slices.Clone(c.Axes.XRange)
	cp.Axes.YRange = slices.Clone(c.Axes.YRange)
	cp.Axes.ZRange = slices.Clone(c.Axes.ZRange)

	cp.Camera.Center = slices.Clone(c.Camera.Center)
	cp.Camera.Eye = slices.Clone(c.Camera.Eye)
	cp.Camera.Up = slices.Clone(c.Camera.Up)
	return &cp
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	x := *v
	return &x
}
