package sim

import (
	"github.com/zeusync/hogar/internal/core/animation"
	"github.com/zeusync/hogar/internal/core/needs"
)

// Event types published on a driver's bus.
const (
	EventReady             = "simulation.ready"
	EventLocomotionChanged = "locomotion.changed"
	EventCameraModeChanged = "camera.mode_changed"
	EventNeedDepleted      = "need.depleted"
	EventNeedRecovered     = "need.recovered"
)

type ReadyEvent struct {
	Tick         uint64 `json:"tick"`
	LayoutDigest string `json:"layout_digest"`
}

type LocomotionEvent struct {
	Tick    uint64            `json:"tick"`
	State   string            `json:"state"`
	Command animation.Command `json:"command"`
}

type CameraModeEvent struct {
	Tick   uint64 `json:"tick"`
	Follow bool   `json:"follow"`
}

// NeedEvent is informational; nothing in the simulation reacts to a
// depleted need.
type NeedEvent struct {
	Tick uint64     `json:"tick"`
	Need needs.Kind `json:"need"`
}
