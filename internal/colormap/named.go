package colormap

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"yellow":    "#ffff00",
	"gold":      "#ffd700",
	"orange":    "#ffa500",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"gray":      "#808080",
	"grey":      "#808080",
	"darkgray":  "#a9a9a9",
	"lightgray": "#d3d3d3",
}

// Parse accepts a color name, a hex string or an "rgb(r, g, b)" triple.
func Parse(s string) (colorful.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if h, ok := namedColors[v]; ok {
		v = h
	}
	if strings.HasPrefix(v, "#") {
		return colorful.Hex(v)
	}
	var r, g, b int
	if _, err := fmt.Sscanf(strings.ReplaceAll(v, " ", ""), "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
			return colorful.Color{}, fmt.Errorf("color %q: component out of range", s)
		}
		return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, nil
	}
	return colorful.Color{}, fmt.Errorf("unknown color %q", s)
}
