package streams

import (
	"fmt"
	"math"
	"strconv"
)

// StreamID identifies a simulation stream.
type StreamID int

func (id StreamID) String() string { return strconv.Itoa(int(id)) }

type Role int

const (
	Active Role = iota
	Background
)

// Roles lists roles in the order the engine evaluates them.
var Roles = [...]Role{Active, Background}

func (r Role) String() string {
	switch r {
	case Active:
		return "active"
	case Background:
		return "background"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(b []byte) error {
	switch string(b) {
	case "active":
		*r = Active
	case "background":
		*r = Background
	default:
		return fmt.Errorf("unknown role %q", b)
	}
	return nil
}

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64      { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}

// IsValid reports whether every component is finite.
func (v Vec3) IsValid() bool {
	for _, c := range [...]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Stream is one stream's sample at a single time step.
type Stream struct {
	ID       StreamID
	Position Vec3
	Value    float64
	// Path holds the stream's node positions, innermost first. Optional.
	Path []Vec3
}

// Clone returns a copy that shares no memory with s.
func (s Stream) Clone() Stream {
	c := s
	if s.Path != nil {
		c.Path = make([]Vec3, len(s.Path))
		copy(c.Path, s.Path)
	}
	return c
}
