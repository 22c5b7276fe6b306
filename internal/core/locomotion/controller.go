// Package locomotion picks the avatar's animation from whether it moved
// this tick.
package locomotion

import "github.com/zeusync/hogar/internal/core/animation"

type State uint8

const (
	Idle State = iota
	Walking
)

func (s State) String() string {
	if s == Walking {
		return "walking"
	}
	return "idle"
}

// Options selects between the single walk clip toggled by pause and the
// idle/walk pair with cross-fades.
type Options struct {
	IdleClip  bool
	CrossFade float64
}

// Controller is the Idle/Walking state machine. It starts in Idle.
type Controller struct {
	state State
	opts  Options
}

func NewController(opts Options) *Controller {
	if !opts.IdleClip {
		opts.CrossFade = 0
	}
	return &Controller{state: Idle, opts: opts}
}

func (c *Controller) State() State { return c.state }

// Initial is the command that puts the player into the Idle pose before the
// first tick.
func (c *Controller) Initial() animation.Command {
	if c.opts.IdleClip {
		return animation.Command{Clip: animation.ClipIdle, ResetTime: true}
	}
	return animation.Command{Clip: animation.ClipWalk, Paused: true, ResetTime: true}
}

// Update feeds this tick's motion flag. It returns the command to apply and
// true only on a state change; otherwise the player is left alone.
func (c *Controller) Update(moving bool) (animation.Command, bool) {
	switch {
	case moving && c.state == Idle:
		c.state = Walking
		return animation.Command{Clip: animation.ClipWalk, Fade: c.opts.CrossFade}, true
	case !moving && c.state == Walking:
		c.state = Idle
		if c.opts.IdleClip {
			return animation.Command{Clip: animation.ClipIdle, ResetTime: true, Fade: c.opts.CrossFade}, true
		}
		return animation.Command{Clip: animation.ClipWalk, Paused: true, ResetTime: true}, true
	}
	return animation.Command{}, false
}
