// Package motion resolves one tick of input-driven avatar movement against
// the collision resolver.
package motion

import (
	"fmt"
	"math"

	"github.com/zeusync/hogar/internal/core/input"
	"github.com/zeusync/hogar/internal/core/systems/physics"
)

// DefaultSpeed is the distance covered per tick per held direction.
const DefaultSpeed = 0.17

// Policy selects how a blocked displacement is handled.
type Policy uint8

const (
	// PolicyJoint rejects the whole displacement when its end point is
	// blocked. The avatar stops dead at walls.
	PolicyJoint Policy = iota
	// PolicySlide tests the X and Z components separately, so the free
	// component still applies and the avatar slides along walls.
	PolicySlide
)

func (p Policy) String() string {
	if p == PolicySlide {
		return "slide"
	}
	return "joint"
}

func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "joint":
		return PolicyJoint, nil
	case "slide", "per_axis":
		return PolicySlide, nil
	default:
		return PolicyJoint, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Blocker is the collision test the step consults.
type Blocker interface {
	IsBlocked(x, z float64) bool
}

// Pose is the avatar's ground position and heading. Y never leaves 0.
type Pose struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Facing float64 `json:"facing"`
}

func (p Pose) Position() physics.Vec3 { return physics.Vec3{X: p.X, Y: p.Y, Z: p.Z} }

// Result describes what one step did.
type Result struct {
	// Desired is the displacement requested by input before collision.
	DesiredX, DesiredZ float64
	// Applied is the displacement actually added to the pose.
	AppliedX, AppliedZ float64
	Moving             bool
}

type Stepper struct {
	blocker Blocker
	speed   float64
	policy  Policy
}

func NewStepper(blocker Blocker, speed float64, policy Policy) *Stepper {
	return &Stepper{blocker: blocker, speed: speed, policy: policy}
}

func (s *Stepper) Policy() Policy { return s.policy }

// Displacement sums the held directions along the camera basis.
func (s *Stepper) Displacement(in input.State, basis physics.Basis) (dx, dz float64) {
	if in.Forward {
		dx += basis.Forward.X * s.speed
		dz += basis.Forward.Z * s.speed
	}
	if in.Backward {
		dx -= basis.Forward.X * s.speed
		dz -= basis.Forward.Z * s.speed
	}
	if in.Left {
		dx -= basis.Right.X * s.speed
		dz -= basis.Right.Z * s.speed
	}
	if in.Right {
		dx += basis.Right.X * s.speed
		dz += basis.Right.Z * s.speed
	}
	return dx, dz
}

// Step moves pose in place and reports the outcome.
func (s *Stepper) Step(pose *Pose, in input.State, basis physics.Basis) Result {
	dx, dz := s.Displacement(in, basis)
	res := Result{DesiredX: dx, DesiredZ: dz}

	if dx != 0 || dz != 0 {
		switch s.policy {
		case PolicySlide:
			if dx != 0 && !s.blocker.IsBlocked(pose.X+dx, pose.Z) {
				res.AppliedX = dx
			}
			if dz != 0 && !s.blocker.IsBlocked(pose.X+res.AppliedX, pose.Z+dz) {
				res.AppliedZ = dz
			}
		default:
			if !s.blocker.IsBlocked(pose.X+dx, pose.Z+dz) {
				res.AppliedX, res.AppliedZ = dx, dz
			}
		}
	}

	if res.AppliedX != 0 || res.AppliedZ != 0 {
		pose.X += res.AppliedX
		pose.Z += res.AppliedZ
		pose.Facing = math.Atan2(res.AppliedX, res.AppliedZ)
		res.Moving = true
	}
	pose.Y = 0
	return res
}
