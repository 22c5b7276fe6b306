package server

import (
	"encoding/json"
	"fmt"

	"github.com/zeusync/hogar/internal/core/input"
	"github.com/zeusync/hogar/internal/core/needs"
	"github.com/zeusync/hogar/internal/core/sim"
	"github.com/zeusync/hogar/internal/core/spatial"
	"github.com/zeusync/hogar/internal/core/systems/physics"
)

// Message types on the wire.
const (
	TypeHello = "hello"
	TypeFrame = "frame"
	TypeEvent = "event"

	TypeKey    = "key"
	TypeMouse  = "mouse"
	TypeLook   = "look"
	TypeWheel  = "wheel"
	TypeBlur   = "blur"
	TypeCamera = "camera"
)

type HelloMessage struct {
	Type         string                  `json:"type"`
	Session      string                  `json:"session"`
	TickRateHz   int                     `json:"tick_rate_hz"`
	LayoutDigest string                  `json:"layout_digest"`
	HalfExtent   float64                 `json:"half_extent"`
	Collision    string                  `json:"collision"`
	Obstacles    []spatial.Obstacle      `json:"obstacles"`
	Points       []needs.PointOfInterest `json:"points"`
}

type FrameMessage struct {
	Type  string    `json:"type"`
	Frame sim.Frame `json:"frame"`
}

type EventMessage struct {
	Type  string `json:"type"`
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// ClientMessage is any message a browser sends. Only the fields of its Type
// are read.
type ClientMessage struct {
	Type     string        `json:"type"`
	Key      string        `json:"key,omitempty"`
	Button   int           `json:"button,omitempty"`
	Down     bool          `json:"down,omitempty"`
	DX       float64       `json:"dx,omitempty"`
	DY       float64       `json:"dy,omitempty"`
	Delta    float64       `json:"delta,omitempty"`
	Position *physics.Vec3 `json:"position,omitempty"`
}

func decodeClientMessage(raw []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return msg, nil
}

// apply feeds an input message into the sampler. Camera placement is
// returned instead, because only the tick goroutine may touch the driver.
func (m ClientMessage) apply(s *input.Sampler) (*physics.Vec3, error) {
	switch m.Type {
	case TypeKey:
		if m.Key == "" {
			return nil, fmt.Errorf("%w: key message without key", ErrInvalidMessage)
		}
		if m.Down {
			s.KeyDown(m.Key)
		} else {
			s.KeyUp(m.Key)
		}
	case TypeMouse:
		if m.Down {
			s.MouseDown(m.Button)
		} else {
			s.MouseUp(m.Button)
		}
	case TypeLook:
		s.Look(m.DX, m.DY)
	case TypeWheel:
		s.Wheel(m.Delta)
	case TypeBlur:
		s.Blur()
	case TypeCamera:
		if m.Position == nil {
			return nil, fmt.Errorf("%w: camera message without position", ErrInvalidMessage)
		}
		return m.Position, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, m.Type)
	}
	return nil, nil
}
