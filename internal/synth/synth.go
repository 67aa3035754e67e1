// Package synth generates synthetic stream snapshots: field lines traced
// along a Parker spiral from a spherical source surface, carrying a flux
// that peaks around an event longitude and evolves with the time step.
package synth

import (
	"math"
	"math/rand"

	"github.com/san-kum/streams3d/internal/streams"
)

const (
	solarRotation = 2.7e-6  // rad/s
	solarRadiusKm = 6.957e5 // km
	stepHours     = 1.0     // simulated hours per time step
	eventDecay    = 12.0    // steps
	eventWidth    = math.Pi / 6
)

type Options struct {
	Longitudes  int
	Latitudes   int
	Nodes       int
	InnerRadius float64 // Rs
	OuterRadius float64 // Rs
	WindSpeed   float64 // km/s
	EventLon    float64 // degrees
	Peak        float64
	Floor       float64
	Noise       float64 // relative
	Seed        int64
}

func DefaultOptions() Options {
	return Options{
		Longitudes:  12,
		Latitudes:   3,
		Nodes:       16,
		InnerRadius: 1,
		OuterRadius: 20,
		WindSpeed:   400,
		EventLon:    0,
		Peak:        1e3,
		Floor:       1e-2,
		Noise:       0.05,
		Seed:        1,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Longitudes < 1:
		return streams.NewConfigError("longitudes", "must be at least 1, got %d", o.Longitudes)
	case o.Latitudes < 1:
		return streams.NewConfigError("latitudes", "must be at least 1, got %d", o.Latitudes)
	case o.Nodes < 2:
		return streams.NewConfigError("nodes", "must be at least 2, got %d", o.Nodes)
	case !(o.InnerRadius > 0) || !(o.OuterRadius > o.InnerRadius):
		return streams.NewConfigError("radius", "want 0 < inner < outer, got %g and %g", o.InnerRadius, o.OuterRadius)
	case !(o.WindSpeed > 0):
		return streams.NewConfigError("wind_speed", "must be positive, got %g", o.WindSpeed)
	case !(o.Floor > 0) || o.Peak < 0:
		return streams.NewConfigError("flux", "want floor > 0 and peak >= 0, got %g and %g", o.Floor, o.Peak)
	case o.Noise < 0 || o.Noise >= 1:
		return streams.NewConfigError("noise", "must be in [0, 1), got %g", o.Noise)
	}
	return nil
}

// Count returns the number of streams a snapshot holds.
func (o Options) Count() int { return o.Longitudes * o.Latitudes }

// Snapshot returns the streams at time step. Stream ids run longitude-major
// from 0. Values are strictly positive so any snapshot can be log-scaled.
func Snapshot(o Options, step int) ([]streams.Stream, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if step < 0 {
		return nil, streams.NewConfigError("step", "must be non-negative, got %d", step)
	}

	rng := rand.New(rand.NewSource(o.Seed + int64(step)))
	windRsPerSec := o.WindSpeed / solarRadiusKm
	eventLon := streams.Radians(o.EventLon)
	intensity := o.Peak * float64(step+1) * math.Exp(-float64(step)/eventDecay) / eventDecay

	out := make([]streams.Stream, 0, o.Count())
	for i := 0; i < o.Longitudes; i++ {
		phi0 := 2 * math.Pi * float64(i) / float64(o.Longitudes)
		for j := 0; j < o.Latitudes; j++ {
			theta := math.Pi * float64(j+1) / float64(o.Latitudes+1)

			path := make([]streams.Vec3, o.Nodes)
			for n := range path {
				r := o.InnerRadius + (o.OuterRadius-o.InnerRadius)*float64(n)/float64(o.Nodes-1)
				phi := phi0 - solarRotation*(r-o.InnerRadius)/windRsPerSec
				path[n] = streams.RTPToXYZ(r, theta, phi)
			}

			d := angularDistance(phi0, eventLon)
			v := o.Floor + intensity*math.Exp(-d*d/(2*eventWidth*eventWidth))*math.Sin(theta)
			if o.Noise > 0 {
				v *= 1 + o.Noise*(2*rng.Float64()-1)
			}

			out = append(out, streams.Stream{
				ID:       streams.StreamID(i*o.Latitudes + j),
				Position: path[len(path)-1],
				Value:    v,
				Path:     path,
			})
		}
	}
	return out, nil
}

// Days returns the simulated time of step in days.
func Days(step int) float64 { return float64(step) * stepHours / 24 }

func angularDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
