package needs

import (
	"fmt"

	"github.com/zeusync/hogar/internal/core/systems/physics"
)

type need struct {
	kind   Kind
	value  float64
	decay  float64
	points []PointOfInterest
}

// Edge reports a need crossing into or out of the floor.
type Edge struct {
	Kind     Kind
	Depleted bool
}

// Simulator owns the need values. It is driven from the tick loop only.
type Simulator struct {
	needs  []*need
	byKind map[Kind]*need
	points []PointOfInterest
}

func NewSimulator(configs []Config, points []PointOfInterest) (*Simulator, error) {
	s := &Simulator{byKind: make(map[Kind]*need, len(configs))}
	for _, c := range configs {
		if !c.Kind.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNeed, c.Kind)
		}
		if _, dup := s.byKind[c.Kind]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNeed, c.Kind)
		}
		n := &need{kind: c.Kind, value: clamp(c.Initial), decay: c.Decay}
		s.needs = append(s.needs, n)
		s.byKind[c.Kind] = n
	}
	for _, p := range points {
		n, ok := s.byKind[p.Need]
		if !ok {
			return nil, fmt.Errorf("point %q: %w: %q", p.Name, ErrUnknownNeed, p.Need)
		}
		n.points = append(n.points, p)
		s.points = append(s.points, p)
	}
	return s, nil
}

// Update applies one tick: decay, then each in-range bound point adds its
// rate while interact is held, then the value is clamped. It returns the
// needs that reached or left zero on this tick.
func (s *Simulator) Update(pos physics.Vec3, interact bool) []Edge {
	var edges []Edge
	for _, n := range s.needs {
		wasEmpty := n.value <= MinValue
		n.value -= n.decay
		if interact {
			for _, p := range n.points {
				if p.InRange(pos) {
					n.value += p.ReplenishRate
				}
			}
		}
		n.value = clamp(n.value)

		isEmpty := n.value <= MinValue
		if isEmpty != wasEmpty {
			edges = append(edges, Edge{Kind: n.kind, Depleted: isEmpty})
		}
	}
	return edges
}

// Value returns the continuous value of a need; ok is false for needs not
// configured.
func (s *Simulator) Value(kind Kind) (float64, bool) {
	n, ok := s.byKind[kind]
	if !ok {
		return 0, false
	}
	return n.value, true
}

// Set overrides a value, clamped. Used by tests and debug tooling.
func (s *Simulator) Set(kind Kind, value float64) {
	if n, ok := s.byKind[kind]; ok {
		n.value = clamp(value)
	}
}

func (s *Simulator) Display() Display {
	var d Display
	for _, n := range s.needs {
		switch n.kind {
		case Energy:
			d.Energy = round(n.value)
		case Hunger:
			d.Hunger = round(n.value)
		case Fun:
			d.Fun = round(n.value)
		}
	}
	return d
}

// Points returns the points of interest in configuration order.
func (s *Simulator) Points() []PointOfInterest {
	out := make([]PointOfInterest, len(s.points))
	copy(out, s.points)
	return out
}

// Nearby returns the names of points within interaction range of pos.
func (s *Simulator) Nearby(pos physics.Vec3) []string {
	var out []string
	for _, p := range s.points {
		if p.InRange(pos) {
			out = append(out, p.Name)
		}
	}
	return out
}
