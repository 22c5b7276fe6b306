package input

import "sync"

// MouseButtonPrimary is the button that doubles as the interact action.
const MouseButtonPrimary = 0

// Sampler collects device events from any goroutine and hands the tick loop
// a consistent snapshot. Interact is held while either its key or the
// primary mouse button is down; each source is cleared only by its own
// release or by Blur.
type Sampler struct {
	mu      sync.Mutex
	keys    KeyMap
	held    map[Action]bool
	mouse   bool
	lookX   float64
	lookY   float64
	wheel   float64
	toggles int
}

func NewSampler(keys KeyMap) *Sampler {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return &Sampler{keys: keys, held: make(map[Action]bool)}
}

// KeyDown records a key press. It returns the bound action, or ActionNone if
// the key is not mapped. Repeated presses of the follow toggle each count.
func (s *Sampler) KeyDown(key string) Action {
	action := s.keys.Lookup(key)
	if action == ActionNone {
		return ActionNone
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if action == ActionToggleFollow {
		if !s.held[action] {
			s.toggles++
		}
	}
	s.held[action] = true
	return action
}

func (s *Sampler) KeyUp(key string) Action {
	action := s.keys.Lookup(key)
	if action == ActionNone {
		return ActionNone
	}
	s.mu.Lock()
	s.held[action] = false
	s.mu.Unlock()
	return action
}

func (s *Sampler) MouseDown(button int) {
	if button != MouseButtonPrimary {
		return
	}
	s.mu.Lock()
	s.mouse = true
	s.mu.Unlock()
}

func (s *Sampler) MouseUp(button int) {
	if button != MouseButtonPrimary {
		return
	}
	s.mu.Lock()
	s.mouse = false
	s.mu.Unlock()
}

// Look accumulates pointer movement in screen pixels.
func (s *Sampler) Look(dx, dy float64) {
	s.mu.Lock()
	s.lookX += dx
	s.lookY += dy
	s.mu.Unlock()
}

// Wheel accumulates scroll distance; positive zooms out.
func (s *Sampler) Wheel(delta float64) {
	s.mu.Lock()
	s.wheel += delta
	s.mu.Unlock()
}

// Blur releases every held key and the mouse button. Frontends must call it
// when their window loses focus, otherwise the release events are lost and
// the avatar keeps walking.
func (s *Sampler) Blur() {
	s.mu.Lock()
	clear(s.held)
	s.mouse = false
	s.mu.Unlock()
}

// Sample returns the current snapshot and drains the accumulated deltas and
// toggle count.
func (s *Sampler) Sample() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Forward:       s.held[ActionForward],
		Backward:      s.held[ActionBackward],
		Left:          s.held[ActionLeft],
		Right:         s.held[ActionRight],
		Interact:      s.held[ActionInteract] || s.mouse,
		LookDeltaX:    s.lookX,
		LookDeltaY:    s.lookY,
		WheelDelta:    s.wheel,
		FollowToggles: s.toggles,
	}
	s.lookX, s.lookY, s.wheel, s.toggles = 0, 0, 0, 0
	return st
}
