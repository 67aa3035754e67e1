package config

import "sort"

func ptr(v float64) *float64 { return &v }

// Presets holds per-quantity color-domain bounds and display defaults.
var Presets = map[string]*RenderConfig{
	"flux": {
		Quantity: "flux", ColorScale: "viridis", DataScale: "log",
		Bounds: map[string]Bounds{"flux": {Min: 1e-4, Max: 1e4}},
		Title:  TitleConfig{Unit: "1 / (cm^2 s sr MeV)", Energy: ptr(10)},
	},
	"fluence": {
		Quantity: "fluence", ColorScale: "inferno", DataScale: "log",
		Bounds: map[string]Bounds{"fluence": {Min: 1e2, Max: 1e10}},
		Title:  TitleConfig{Unit: "1 / (cm^2 sr MeV)", Energy: ptr(10)},
	},
	"density": {
		Quantity: "rho", ColorScale: "plasma", DataScale: "log",
		Bounds: map[string]Bounds{"rho": {Min: 1e-2, Max: 1e5}},
		Title:  TitleConfig{Unit: "cm^-3"},
	},
	"br": {
		Quantity: "br", ColorScale: "rdbu", DataScale: "linear",
		Bounds: map[string]Bounds{"br": {Min: -1e-3, Max: 1e-3, Mid: ptr(0)}},
		Title:  TitleConfig{Unit: "G"},
	},
	"speed": {
		Quantity: "u", ColorScale: "cividis", DataScale: "linear",
		Bounds: map[string]Bounds{"u": {Min: 200, Max: 900}},
		Title:  TitleConfig{Unit: "km/s"},
	},
}

// ApplyPreset copies the preset's quantity, scales, bounds and title options
// onto cfg. It returns false if the preset does not exist.
func ApplyPreset(cfg *RenderConfig, name string) bool {
	p := GetPreset(name)
	if p == nil {
		return false
	}
	cfg.Quantity = p.Quantity
	cfg.ColorScale = p.ColorScale
	cfg.DataScale = p.DataScale
	if cfg.Bounds == nil {
		cfg.Bounds = map[string]Bounds{}
	}
	for k, v := range p.Bounds {
		v.Mid = clonePtr(v.Mid)
		cfg.Bounds[k] = v
	}
	cfg.Title.Unit = p.Title.Unit
	if p.Title.Energy != nil {
		cfg.Title.Energy = ptr(*p.Title.Energy)
	}
	return true
}

func GetPreset(name string) *RenderConfig {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
