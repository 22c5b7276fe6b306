package sim

import (
	"github.com/zeusync/hogar/internal/core/input"
	"github.com/zeusync/hogar/internal/core/motion"
	"github.com/zeusync/hogar/internal/core/systems"
)

type inputSystem struct {
	sampler *input.Sampler
}

func (inputSystem) Name() string                  { return "input" }
func (inputSystem) Phase() systems.ExecutionPhase { return systems.PhaseInput }
func (s inputSystem) Update(_ float64, st *State) { st.Input = s.sampler.Sample() }

// motionSystem moves the avatar along the basis the camera had at the end of
// the previous tick.
type motionSystem struct {
	stepper *motion.Stepper
}

func (motionSystem) Name() string                  { return "motion" }
func (motionSystem) Phase() systems.ExecutionPhase { return systems.PhaseMotion }

func (s motionSystem) Update(_ float64, st *State) {
	st.Motion = s.stepper.Step(&st.Avatar, st.Input, st.Camera.Basis())
}

type locomotionSystem struct{}

func (locomotionSystem) Name() string                  { return "locomotion" }
func (locomotionSystem) Phase() systems.ExecutionPhase { return systems.PhaseLocomotion }

func (locomotionSystem) Update(_ float64, st *State) {
	cmd, changed := st.Locomotion.Update(st.Motion.Moving)
	if !changed {
		return
	}
	if err := st.Mixer.Apply(cmd); err != nil {
		st.Errors = append(st.Errors, err)
		return
	}
	st.Command = &cmd
}

type needsSystem struct{}

func (needsSystem) Name() string                  { return "needs" }
func (needsSystem) Phase() systems.ExecutionPhase { return systems.PhaseNeeds }

func (needsSystem) Update(_ float64, st *State) {
	st.NeedEdges = st.Needs.Update(st.Avatar.Position(), st.Input.Interact)
}

// cameraSystem applies this tick's orbit input, then places the camera
// around the avatar's new position.
type cameraSystem struct{}

func (cameraSystem) Name() string                  { return "camera" }
func (cameraSystem) Phase() systems.ExecutionPhase { return systems.PhaseCamera }

func (cameraSystem) Update(_ float64, st *State) {
	before := st.Camera.Orbit().Follow
	for i := 0; i < st.Input.FollowToggles; i++ {
		st.Camera.ToggleFollow()
	}
	st.FollowChanged = st.Camera.Orbit().Follow != before

	if st.Input.LookDeltaX != 0 || st.Input.LookDeltaY != 0 {
		st.Camera.Look(st.Input.LookDeltaX, st.Input.LookDeltaY)
	}
	if st.Input.WheelDelta != 0 {
		st.Camera.Zoom(st.Input.WheelDelta)
	}
	st.Camera.Update(st.Avatar.Position())
}

type animationSystem struct{}

func (animationSystem) Name() string                  { return "animation" }
func (animationSystem) Phase() systems.ExecutionPhase { return systems.PhaseAnimation }
func (animationSystem) Update(dt float64, st *State)  { st.Mixer.Advance(dt) }
