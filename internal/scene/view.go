package scene

import (
	"fmt"
	"strings"

	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/streams"
)

// SolarRadiusAU is the solar radius in astronomical units.
const SolarRadiusAU = 0.00465047

var (
	defaultCenter = streams.Vec3{}
	defaultEye    = streams.Vec3{X: 1.25, Y: 1.25, Z: 1.25}
	defaultUp     = streams.Vec3{Z: 1}
)

// Camera follows the 3D camera convention of interactive plotting tools: the
// eye is expressed in units of the scene's half extent around Center.
type Camera struct {
	Center streams.Vec3 `json:"center"`
	Eye    streams.Vec3 `json:"eye"`
	Up     streams.Vec3 `json:"up"`
}

type Axis struct {
	Name           string    `json:"name"`
	Range          []float64 `json:"range,omitempty"`
	Title          string    `json:"title"`
	ShowTickLabels bool      `json:"show_tick_labels"`
}

type Axes struct {
	X Axis `json:"x"`
	Y Axis `json:"y"`
	Z Axis `json:"z"`
}

type Sun struct {
	Color  string  `json:"color"`
	Radius float64 `json:"radius"`
}

func vec(p []float64, def streams.Vec3) streams.Vec3 {
	if len(p) != 3 {
		return def
	}
	return streams.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// CameraFrom resolves the configured camera, converting an (r, θ°, φ°) eye.
func CameraFrom(c config.CameraConfig) Camera {
	eye := vec(c.Eye, defaultEye)
	if c.EyeInRTP && len(c.Eye) == 3 {
		eye = streams.RTPToXYZ(c.Eye[0], streams.Radians(c.Eye[1]), streams.Radians(c.Eye[2]))
	}
	return Camera{
		Center: vec(c.Center, defaultCenter),
		Eye:    eye,
		Up:     vec(c.Up, defaultUp),
	}
}

// AxesFrom resolves per-axis ranges and titles.
func AxesFrom(a config.AxesConfig) Axes {
	build := func(name string, override []float64) Axis {
		ax := Axis{Name: name, ShowTickLabels: !a.Hide}
		switch {
		case override != nil:
			ax.Range = append([]float64(nil), override...)
		case a.Range != nil:
			ax.Range = append([]float64(nil), a.Range...)
		}
		if !a.Hide {
			ax.Title = name
			if a.Unit != "" {
				ax.Title = fmt.Sprintf("%s [%s]", name, a.Unit)
			}
		}
		return ax
	}
	return Axes{
		X: build("x", a.XRange),
		Y: build("y", a.YRange),
		Z: build("z", a.ZRange),
	}
}

// SunFrom sizes the solar sphere for the axis unit.
func SunFrom(cfg *config.RenderConfig) Sun {
	radius := 1.0
	if strings.EqualFold(cfg.Axes.Unit, "au") {
		radius = SolarRadiusAU
	}
	color := cfg.SunColor
	if color == "" {
		color = config.DefaultSunColor
	}
	return Sun{Color: color, Radius: radius}
}
