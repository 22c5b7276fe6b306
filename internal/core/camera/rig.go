// Package camera implements the orbital chase camera.
package camera

import (
	"math"

	"github.com/zeusync/hogar/internal/core/systems/physics"
)

const (
	MinPhi    = 0.1
	MaxPhi    = math.Pi / 2
	MinRadius = 2.0
	MaxRadius = 20.0

	DefaultTheta  = math.Pi / 2
	DefaultPhi    = math.Pi / 4
	DefaultRadius = 10.0

	DefaultLookSensitivity = 0.002
	DefaultZoomSensitivity = 0.05
)

// Options configures a Rig. Zero sensitivities fall back to the defaults.
type Options struct {
	LookSensitivity float64
	ZoomSensitivity float64
	// InitialPosition and InitialTarget describe the pose before the first
	// update.
	InitialPosition physics.Vec3
	InitialTarget   physics.Vec3
}

func DefaultOptions() Options {
	return Options{
		LookSensitivity: DefaultLookSensitivity,
		ZoomSensitivity: DefaultZoomSensitivity,
		InitialPosition: physics.Vec3{Y: 5, Z: 10},
	}
}

// Orbit is the user-controlled part of the camera state.
type Orbit struct {
	Theta  float64 `json:"theta"`
	Phi    float64 `json:"phi"`
	Radius float64 `json:"radius"`
	Follow bool    `json:"follow"`
}

// Pose is what the renderer needs to place the camera.
type Pose struct {
	Position physics.Vec3 `json:"position"`
	Target   physics.Vec3 `json:"target"`
}

type Rig struct {
	orbit Orbit
	pose  Pose
	basis physics.Basis
	look  float64
	zoom  float64
}

// NewRig starts in follow mode with the default orbit.
func NewRig(opts Options) *Rig {
	if opts.LookSensitivity == 0 {
		opts.LookSensitivity = DefaultLookSensitivity
	}
	if opts.ZoomSensitivity == 0 {
		opts.ZoomSensitivity = DefaultZoomSensitivity
	}
	r := &Rig{
		orbit: Orbit{Theta: DefaultTheta, Phi: DefaultPhi, Radius: DefaultRadius, Follow: true},
		pose:  Pose{Position: opts.InitialPosition, Target: opts.InitialTarget},
		basis: physics.Basis{Forward: physics.Vec3{Z: -1}, Right: physics.Vec3{X: 1}},
		look:  opts.LookSensitivity,
		zoom:  opts.ZoomSensitivity,
	}
	r.refreshBasis()
	return r
}

func (r *Rig) Orbit() Orbit { return r.orbit }
func (r *Rig) Pose() Pose   { return r.pose }

// Basis returns the ground-projected forward and right directions of the
// current view, used to make movement camera-relative.
func (r *Rig) Basis() physics.Basis { return r.basis }

// Look applies pointer movement. Phi is clamped so the camera neither flips
// over the top nor dips under the floor.
func (r *Rig) Look(dx, dy float64) {
	r.orbit.Theta -= dx * r.look
	r.orbit.Phi = physics.Clamp(r.orbit.Phi-dy*r.look, MinPhi, MaxPhi)
}

// Zoom applies wheel movement; positive moves the camera away.
func (r *Rig) Zoom(delta float64) {
	r.orbit.Radius = physics.Clamp(r.orbit.Radius+delta*r.zoom, MinRadius, MaxRadius)
}

// ToggleFollow flips between follow and manual mode. Entering follow mode
// recentres the orbit.
func (r *Rig) ToggleFollow() bool {
	r.orbit.Follow = !r.orbit.Follow
	if r.orbit.Follow {
		r.orbit.Theta = DefaultTheta
		r.orbit.Phi = DefaultPhi
		r.orbit.Radius = DefaultRadius
	}
	return r.orbit.Follow
}

// SetPosition lets an external free-look controller place the camera. It
// only sticks in manual mode; follow mode overwrites it on the next update.
func (r *Rig) SetPosition(p physics.Vec3) {
	r.pose.Position = p
	r.refreshBasis()
}

// Update places the camera for this tick and aims it at target.
func (r *Rig) Update(target physics.Vec3) Pose {
	if r.orbit.Follow {
		r.pose.Position = OrbitPosition(target, r.orbit)
	}
	r.pose.Target = target
	r.refreshBasis()
	return r.pose
}

func (r *Rig) refreshBasis() {
	if b, ok := physics.GroundBasis(r.pose.Target.Sub(r.pose.Position)); ok {
		r.basis = b
	}
}

// OrbitPosition places a point on the sphere of radius o.Radius around
// target, with Theta as azimuth from +Z and Phi as elevation.
func OrbitPosition(target physics.Vec3, o Orbit) physics.Vec3 {
	sinT, cosT := math.Sincos(o.Theta)
	sinP, cosP := math.Sincos(o.Phi)
	return physics.Vec3{
		X: target.X + o.Radius*sinT*cosP,
		Y: target.Y + o.Radius*sinP,
		Z: target.Z + o.Radius*cosT*cosP,
	}
}
