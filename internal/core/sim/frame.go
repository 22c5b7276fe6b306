package sim

import (
	"github.com/zeusync/hogar/internal/core/animation"
	"github.com/zeusync/hogar/internal/core/camera"
	"github.com/zeusync/hogar/internal/core/motion"
	"github.com/zeusync/hogar/internal/core/needs"
)

// Frame is the outcome of one tick as seen by a frontend.
type Frame struct {
	Tick    uint64    `json:"tick"`
	Skipped bool      `json:"skipped,omitempty"`
	Loading *Progress `json:"loading,omitempty"`

	Avatar     motion.Pose             `json:"avatar"`
	Moving     bool                    `json:"moving"`
	Locomotion string                  `json:"locomotion"`
	Command    *animation.Command      `json:"command,omitempty"`
	Animation  []animation.ActionState `json:"animation,omitempty"`
	Needs      needs.Display           `json:"needs"`
	Camera     camera.Pose             `json:"camera"`
	Orbit      camera.Orbit            `json:"orbit"`
	Nearby     []string                `json:"nearby,omitempty"`
}

// Progress reports asset loading while the simulation waits for it.
type Progress struct {
	Settled int      `json:"settled"`
	Total   int      `json:"total"`
	Failed  []string `json:"failed,omitempty"`
}
