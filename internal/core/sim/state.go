// Package sim runs one avatar's simulation: it owns the per-tick state and
// steps it through the ordered system pipeline.
package sim

import (
	"github.com/zeusync/hogar/internal/core/animation"
	"github.com/zeusync/hogar/internal/core/camera"
	"github.com/zeusync/hogar/internal/core/input"
	"github.com/zeusync/hogar/internal/core/locomotion"
	"github.com/zeusync/hogar/internal/core/motion"
	"github.com/zeusync/hogar/internal/core/needs"
)

// State is everything one tick reads and writes. Systems receive the same
// pointer in phase order; the driver owns it and never shares it across
// goroutines.
type State struct {
	Tick   uint64
	Input  input.State
	Avatar motion.Pose
	Motion motion.Result

	Locomotion *locomotion.Controller
	Needs      *needs.Simulator
	Camera     *camera.Rig
	Mixer      *animation.Mixer

	// Outputs of the current tick, cleared before each update.
	Command       *animation.Command
	NeedEdges     []needs.Edge
	FollowChanged bool
	Errors        []error
}

func (s *State) reset() {
	s.Command = nil
	s.NeedEdges = nil
	s.FollowChanged = false
	s.Errors = nil
}
