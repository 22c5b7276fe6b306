package physics

import "math"

// Vec3 is a world-space vector. Y is up; the ground plane is XZ.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Up is the world up axis.
var Up = Vec3{Y: 1}

func (v Vec3) Add(o Vec3) Vec3           { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3           { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3      { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64        { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64           { return math.Sqrt(v.Dot(v)) }
func (v Vec3) DistanceTo(o Vec3) float64 { return o.Sub(v).Length() }

// Cross returns v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns the unit vector along v. ok is false for vectors shorter
// than Epsilon, in which case v is returned unchanged.
func (v Vec3) Normalize() (Vec3, bool) {
	l := v.Length()
	if l < Epsilon {
		return v, false
	}
	return v.Scale(1 / l), true
}

// Ground drops the vertical component.
func (v Vec3) Ground() Vec3 { return Vec3{X: v.X, Z: v.Z} }

// Epsilon is the length below which a direction is treated as degenerate.
const Epsilon = 1e-9

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Basis is a pair of unit directions on the ground plane.
type Basis struct {
	Forward Vec3 `json:"forward"`
	Right   Vec3 `json:"right"`
}

// GroundBasis projects a view direction onto the ground plane and derives the
// matching right vector as forward × up. ok is false when the direction is
// vertical and has no ground projection.
func GroundBasis(direction Vec3) (Basis, bool) {
	forward, ok := direction.Ground().Normalize()
	if !ok {
		return Basis{}, false
	}
	right, _ := forward.Cross(Up).Normalize()
	return Basis{Forward: forward, Right: right}, true
}
