package terminal

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/hogar/internal/core/input"
)

const (
	// LookStep is the pointer travel one arrow key press stands for.
	LookStep = 40.0
	// ZoomStep is the wheel travel of one zoom key press or wheel notch.
	ZoomStep = 100.0
)

// Translator maps tcell events onto the sampler.
type Translator struct {
	keys    input.KeyMap
	sampler *input.Sampler
	holder  *Holder
	mouse   bool
}

// NewTranslator builds a translator whose key holds last holdDelay after a
// fresh press and holdWindow after each repeat.
func NewTranslator(keys input.KeyMap, sampler *input.Sampler, holdDelay, holdWindow time.Duration) *Translator {
	if keys == nil {
		keys = input.DefaultKeyMap()
	}
	return &Translator{keys: keys, sampler: sampler, holder: NewHolder(sampler, holdDelay, holdWindow)}
}

func (t *Translator) Holder() *Holder { return t.holder }

// Handle applies one event. It returns false when the user asked to quit.
func (t *Translator) Handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev, now)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventFocus:
		if !ev.Focused {
			t.Blur()
		}
	}
	return true
}

// Blur releases everything, as a focus loss does.
func (t *Translator) Blur() {
	t.holder.Release()
	t.mouse = false
	t.sampler.Blur()
}

func (t *Translator) handleKey(ev *tcell.EventKey, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		t.sampler.Look(-LookStep, 0)
	case tcell.KeyRight:
		t.sampler.Look(LookStep, 0)
	case tcell.KeyUp:
		t.sampler.Look(0, -LookStep)
	case tcell.KeyDown:
		t.sampler.Look(0, LookStep)
	case tcell.KeyRune:
		key := strings.ToLower(string(ev.Rune()))
		if t.keys.Lookup(key) != input.ActionNone {
			t.holder.Press(key, now)
			return true
		}
		switch key {
		case "+", "=":
			t.sampler.Wheel(-ZoomStep)
		case "-":
			t.sampler.Wheel(ZoomStep)
		}
	}
	return true
}

func (t *Translator) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		t.sampler.Wheel(-ZoomStep)
	case buttons&tcell.WheelDown != 0:
		t.sampler.Wheel(ZoomStep)
	}

	down := buttons&tcell.Button1 != 0
	if down == t.mouse {
		return
	}
	t.mouse = down
	if down {
		t.sampler.MouseDown(input.MouseButtonPrimary)
	} else {
		t.sampler.MouseUp(input.MouseButtonPrimary)
	}
}
