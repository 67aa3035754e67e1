package viz

import (
	"math"

	"github.com/san-kum/streams3d/internal/scene"
	"github.com/san-kum/streams3d/internal/streams"
)

const (
	defaultFOV = math.Pi / 3
	minZoom    = 0.1
	maxZoom    = 10
	maxPitch   = math.Pi/2 - 0.05
)

// Camera is a look-at perspective camera that orbits its target.
type Camera struct {
	Target streams.Vec3
	Eye    streams.Vec3 // offset from Target
	Up     streams.Vec3
	FOV    float64
	Zoom   float64

	yaw, pitch float64
}

// NewCamera places a camera for a scene camera whose center and eye are in
// units of the scene extent.
func NewCamera(c scene.Camera, extent float64) *Camera {
	if !(extent > 0) {
		extent = 1
	}
	eye := c.Eye
	if eye.Length() == 0 {
		eye = streams.Vec3{X: 1.25, Y: 1.25, Z: 1.25}
	}
	up := c.Up
	if up.Length() == 0 {
		up = streams.Vec3{Z: 1}
	}
	return &Camera{
		Target: c.Center.Scale(extent),
		Eye:    eye.Scale(extent),
		Up:     up.Normalize(),
		FOV:    defaultFOV,
		Zoom:   1,
	}
}

// Orbit turns the camera around the target: yaw about Up, pitch toward it.
func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.yaw += dyaw
	c.pitch = math.Max(-maxPitch, math.Min(maxPitch, c.pitch+dpitch))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(maxZoom, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(minZoom, c.Zoom/1.2) }

func (c *Camera) ResetView() {
	c.yaw, c.pitch, c.Zoom = 0, 0, 1
}

// Position returns the eye in world coordinates.
func (c *Camera) Position() streams.Vec3 {
	off := rotate(c.Eye, c.Up, c.yaw)
	if c.pitch != 0 {
		right := off.Cross(c.Up).Normalize()
		if right.Length() > 0 {
			off = rotate(off, right, c.pitch)
		}
	}
	return c.Target.Add(off)
}

// basis returns the camera's right, up and forward unit vectors.
func (c *Camera) basis(eye streams.Vec3) (right, up, fwd streams.Vec3) {
	fwd = c.Target.Sub(eye).Normalize()
	right = fwd.Cross(c.Up).Normalize()
	if right.Length() == 0 {
		right = streams.Vec3{X: 1}
	}
	up = right.Cross(fwd)
	return right, up, fwd
}

// Projector maps world points to a w x h pixel screen for one camera pose.
type Projector struct {
	eye            streams.Vec3
	right, up, fwd streams.Vec3
	focal          float64
	w, h           int
	halfW, halfH   float64
	pixelsPerFocal float64
}

func (c *Camera) Projector(w, h int) *Projector {
	eye := c.Position()
	right, up, fwd := c.basis(eye)
	return &Projector{
		eye:            eye,
		right:          right,
		up:             up,
		fwd:            fwd,
		focal:          c.Zoom / math.Tan(c.FOV/2),
		w:              w,
		h:              h,
		halfW:          float64(w) / 2,
		halfH:          float64(h) / 2,
		pixelsPerFocal: float64(min(w, h)) / 2,
	}
}

// Project returns the screen position and depth of p. ok is false for points
// behind the camera; on-screen bounds are not checked.
func (p *Projector) Project(v streams.Vec3) (x, y, depth float64, ok bool) {
	d := v.Sub(p.eye)
	depth = d.Dot(p.fwd)
	if depth <= 1e-9 {
		return 0, 0, 0, false
	}
	s := p.focal / depth * p.pixelsPerFocal
	return p.halfW + d.Dot(p.right)*s, p.halfH - d.Dot(p.up)*s, depth, true
}

// Scale returns how many pixels one world unit spans at depth.
func (p *Projector) Scale(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return p.focal / depth * p.pixelsPerFocal
}

func (p *Projector) Size() (int, int) { return p.w, p.h }

// rotate turns v about the unit axis k by angle (Rodrigues).
func rotate(v, k streams.Vec3, angle float64) streams.Vec3 {
	if angle == 0 {
		return v
	}
	cos, sin := math.Cos(angle), math.Sin(angle)
	return v.Scale(cos).Add(k.Cross(v).Scale(sin)).Add(k.Scale(k.Dot(v) * (1 - cos)))
}
