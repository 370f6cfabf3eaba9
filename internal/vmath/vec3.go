package vmath

import "math"

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Lerp moves from v towards o by alpha; alpha 0 and 1 return the endpoints exactly.
func (v Vec3) Lerp(o Vec3, alpha float64) Vec3 {
	switch alpha {
	case 0:
		return v
	case 1:
		return o
	}
	return Vec3{
		v.X + (o.X-v.X)*alpha,
		v.Y + (o.Y-v.Y)*alpha,
		v.Z + (o.Z-v.Z)*alpha,
	}
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// RotateEuler rotates p by r using XYZ order: X first, then Y, then Z.
func RotateEuler(p, r Vec3) Vec3 {
	if r.X != 0 {
		cx, sx := math.Cos(r.X), math.Sin(r.X)
		p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	}
	if r.Y != 0 {
		cy, sy := math.Cos(r.Y), math.Sin(r.Y)
		p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	}
	if r.Z != 0 {
		cz, sz := math.Cos(r.Z), math.Sin(r.Z)
		p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	}
	return p
}
