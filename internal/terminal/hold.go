package terminal

import (
	"time"

	"github.com/zeusync/hogar/internal/core/input"
)

// Holder turns key repeats into held keys. Terminals report presses but
// never releases, so a key counts as down while repeats keep arriving and is
// released once they stop. The first repeat comes only after the keyboard's
// autorepeat delay, so a fresh press is kept for delay before the shorter
// repeat window applies.
type Holder struct {
	delay   time.Duration
	window  time.Duration
	sampler *input.Sampler
	held    map[string]hold
}

type hold struct {
	last      time.Time
	repeating bool
}

func NewHolder(sampler *input.Sampler, delay, window time.Duration) *Holder {
	if delay < window {
		delay = window
	}
	return &Holder{delay: delay, window: window, sampler: sampler, held: make(map[string]hold)}
}

// Press records a press or repeat of key. Only the first press of a hold
// reaches the sampler as a key-down.
func (h *Holder) Press(key string, now time.Time) {
	_, repeating := h.held[key]
	if !repeating {
		h.sampler.KeyDown(key)
	}
	h.held[key] = hold{last: now, repeating: repeating}
}

// Expire releases keys that have gone quiet: after delay for a press with no
// repeats yet, after window once repeats have started.
func (h *Holder) Expire(now time.Time) {
	for key, k := range h.held {
		limit := h.delay
		if k.repeating {
			limit = h.window
		}
		if now.Sub(k.last) > limit {
			h.sampler.KeyUp(key)
			delete(h.held, key)
		}
	}
}

// Release drops every held key without waiting, as on focus loss.
func (h *Holder) Release() {
	for key := range h.held {
		h.sampler.KeyUp(key)
	}
	clear(h.held)
}
