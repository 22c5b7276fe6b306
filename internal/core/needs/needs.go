// Package needs simulates the avatar's decaying well-being scalars and their
// replenishment near points of interest.
package needs

import (
	"math"

	"github.com/zeusync/hogar/internal/core/systems/physics"
)

type Kind string

const (
	Energy Kind = "energy"
	Hunger Kind = "hunger"
	Fun    Kind = "fun"
)

// Kinds lists the needs in display order.
var Kinds = []Kind{Energy, Hunger, Fun}

func (k Kind) Valid() bool {
	return k == Energy || k == Hunger || k == Fun
}

const (
	MinValue = 0.0
	MaxValue = 100.0
)

// Config is the static description of one need.
type Config struct {
	Kind    Kind    `json:"kind" yaml:"kind"`
	Initial float64 `json:"initial" yaml:"initial"`
	Decay   float64 `json:"decay" yaml:"decay"`
}

// DefaultConfigs are the rates of the original house.
func DefaultConfigs() []Config {
	return []Config{
		{Kind: Energy, Initial: MaxValue, Decay: 0.05},
		{Kind: Hunger, Initial: MaxValue, Decay: 0.03},
		{Kind: Fun, Initial: MaxValue, Decay: 0.04},
	}
}

// PointOfInterest binds a scene object to the need it restores.
type PointOfInterest struct {
	Name          string       `json:"name" yaml:"name"`
	Asset         string       `json:"asset,omitempty" yaml:"asset,omitempty"`
	Position      physics.Vec3 `json:"position" yaml:"position"`
	Radius        float64      `json:"radius" yaml:"radius"`
	Need          Kind         `json:"need" yaml:"need"`
	ReplenishRate float64      `json:"replenish" yaml:"replenish"`
}

// InRange uses the full 3D distance and a strict comparison.
func (p PointOfInterest) InRange(pos physics.Vec3) bool {
	return pos.DistanceTo(p.Position) < p.Radius
}

// Display holds the rounded values shown on screen.
type Display struct {
	Energy int `json:"energy"`
	Hunger int `json:"hunger"`
	Fun    int `json:"fun"`
}

func clamp(v float64) float64 {
	return physics.Clamp(v, MinValue, MaxValue)
}

func round(v float64) int {
	return int(math.Round(v))
}
