package animation

import (
	"fmt"
	"sort"
)

// Mixer holds one action per clip and tracks which one is active.
type Mixer struct {
	actions map[ClipID]*action
	active  ClipID
}

// NewMixer creates paused, zero-weight actions for every clip. The walk clip
// is required.
func NewMixer(clips map[ClipID]Clip) (*Mixer, error) {
	if _, ok := clips[ClipWalk]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClip, ClipWalk)
	}
	m := &Mixer{actions: make(map[ClipID]*action, len(clips)), active: ClipWalk}
	for id, clip := range clips {
		m.actions[id] = &action{id: id, clip: clip, paused: true}
	}
	return m, nil
}

func (m *Mixer) Active() ClipID { return m.active }

// Apply executes a controller command. Switching clips stops the outgoing
// action, or fades it out when cmd.Fade is positive; it is rewound once its
// weight reaches zero.
func (m *Mixer) Apply(cmd Command) error {
	next, ok := m.actions[cmd.Clip]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClip, cmd.Clip)
	}

	if cmd.Clip != m.active {
		if prev := m.actions[m.active]; prev != nil {
			if cmd.Fade > 0 {
				prev.fadeRate = -1 / cmd.Fade
			} else {
				prev.stop()
			}
		}
	}

	if cmd.ResetTime {
		next.time = 0
	}
	next.paused = cmd.Paused
	if cmd.Clip != m.active && cmd.Fade > 0 {
		next.fadeRate = 1 / cmd.Fade
	} else {
		next.weight = 1
		next.fadeRate = 0
	}
	m.active = cmd.Clip
	return nil
}

// Advance moves every unpaused action forward by dt seconds and progresses
// running fades.
func (m *Mixer) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	for _, a := range m.actions {
		a.advance(dt)
	}
}

func (m *Mixer) Action(id ClipID) (ActionState, bool) {
	a, ok := m.actions[id]
	if !ok {
		return ActionState{}, false
	}
	return a.state(), true
}

// Snapshot returns every action ordered by clip id.
func (m *Mixer) Snapshot() []ActionState {
	out := make([]ActionState, 0, len(m.actions))
	for _, a := range m.actions {
		out = append(out, a.state())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Clip < out[j].Clip })
	return out
}
