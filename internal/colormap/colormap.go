// Package colormap maps normalized values onto named color scales.
//
// Scales are defined by evenly spaced stops and interpolated in CIE-Lab so
// perceptual steps stay even between stops. A "_r" suffix reverses a scale.
package colormap

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/streams3d/internal/streams"
)

var palettes = map[string][]string{
	"viridis": {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"plasma":  {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"inferno": {"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"},
	"magma":   {"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"},
	"cividis": {"#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8678", "#a59c74", "#c3b369", "#e1cc55", "#fee838"},
	"greys":   {"#000000", "#525252", "#969696", "#d9d9d9", "#ffffff"},
	"blues":   {"#08306b", "#2171b5", "#6baed6", "#c6dbef", "#f7fbff"},
	"reds":    {"#67000d", "#cb181d", "#fb6a4a", "#fcbba1", "#fff5f0"},
	"rdbu":    {"#053061", "#4393c3", "#f7f7f7", "#d6604d", "#67001f"},
}

type Scale struct {
	Name  string
	stops []colorful.Color
}

// Get returns the named scale. Names are case-insensitive.
func Get(name string) (*Scale, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	reversed := strings.HasSuffix(key, "_r")
	key = strings.TrimSuffix(key, "_r")

	hexes, ok := palettes[key]
	if !ok {
		return nil, streams.NewConfigError("color_scale", "unknown color scale %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("colormap %s: %w", key, err)
		}
		if reversed {
			stops[len(hexes)-1-i] = c
		} else {
			stops[i] = c
		}
	}
	return &Scale{Name: name, stops: stops}, nil
}

// Names lists the base scale names, sorted.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// At returns the color at t, clamped to [0, 1]. NaN maps to the low end.
func (s *Scale) At(t float64) colorful.Color {
	if math.IsNaN(t) || t <= 0 {
		return s.stops[0]
	}
	if t >= 1 {
		return s.stops[len(s.stops)-1]
	}
	pos := t * float64(len(s.stops)-1)
	i := int(pos)
	return s.stops[i].BlendLab(s.stops[i+1], pos-float64(i)).Clamped()
}

func (s *Scale) Hex(t float64) string { return s.At(t).Hex() }
