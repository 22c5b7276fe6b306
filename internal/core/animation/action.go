// Package animation models clip playback state. The renderer owns the
// skeletal evaluation; this package only tracks which clip is active, its
// local time, pause flag and blend weight, and moves them forward when the
// tick loop calls Advance.
package animation

import "math"

// ClipID names the clips the simulation can request.
type ClipID uint8

const (
	ClipIdle ClipID = iota
	ClipWalk
)

func (c ClipID) String() string {
	if c == ClipWalk {
		return "walk"
	}
	return "idle"
}

// Clip describes a source animation.
type Clip struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
	Loop     bool    `json:"loop"`
}

// Command is what the locomotion controller asks of the player. Fade is the
// cross-fade duration in seconds; zero switches instantly.
type Command struct {
	Clip      ClipID  `json:"clip"`
	Paused    bool    `json:"paused"`
	ResetTime bool    `json:"reset_time"`
	Fade      float64 `json:"fade,omitempty"`
}

// ActionState is a read-only view of one clip's playback.
type ActionState struct {
	Clip   ClipID  `json:"clip"`
	Name   string  `json:"name"`
	Time   float64 `json:"time"`
	Weight float64 `json:"weight"`
	Paused bool    `json:"paused"`
}

type action struct {
	id       ClipID
	clip     Clip
	time     float64
	weight   float64
	fadeRate float64
	paused   bool
}

func (a *action) state() ActionState {
	return ActionState{Clip: a.id, Name: a.clip.Name, Time: a.time, Weight: a.weight, Paused: a.paused}
}

// stop pauses the action and rewinds it so the next start is clean.
func (a *action) stop() {
	a.paused = true
	a.time = 0
	a.weight = 0
	a.fadeRate = 0
}

func (a *action) advance(dt float64) {
	if a.fadeRate != 0 {
		a.weight += a.fadeRate * dt
		switch {
		case a.weight >= 1:
			a.weight = 1
			a.fadeRate = 0
		case a.weight <= 0:
			a.stop()
			return
		}
	}
	if a.paused {
		return
	}
	a.time += dt
	if a.clip.Duration <= 0 {
		return
	}
	if a.clip.Loop {
		a.time = math.Mod(a.time, a.clip.Duration)
	} else if a.time > a.clip.Duration {
		a.time = a.clip.Duration
	}
}
