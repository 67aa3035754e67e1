package streams

import "math"

// RTPToXYZ converts (r, θ, φ) to Cartesian coordinates. θ is the polar angle
// and φ the azimuthal angle, both in radians.
func RTPToXYZ(r, theta, phi float64) Vec3 {
	st := math.Sin(theta)
	return Vec3{
		X: r * st * math.Cos(phi),
		Y: r * st * math.Sin(phi),
		Z: r * math.Cos(theta),
	}
}

// XYZToRTP is the inverse of RTPToXYZ. φ is returned in [0, 2π); the origin
// maps to (0, 0, 0).
func XYZToRTP(v Vec3) (r, theta, phi float64) {
	r = v.Length()
	if r < math.SmallestNonzeroFloat64 {
		return 0, 0, 0
	}
	theta = math.Acos(v.Z / r)
	phi = math.Atan2(v.Y, v.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return r, theta, phi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }
