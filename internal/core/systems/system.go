package systems

import (
	"fmt"
	"sort"
	"time"
)

// System is one stage of the per-tick update. S is the simulation state the
// stage reads and mutates; the pipeline never copies it.
type System[S any] interface {
	Name() string
	Phase() ExecutionPhase
	Update(deltaTime float64, state S)
}

// ExecutionPhase fixes where a system runs inside a tick. Systems run in
// ascending phase order; systems sharing a phase keep registration order.
type ExecutionPhase uint8

const (
	PhaseInput ExecutionPhase = iota
	PhaseMotion
	PhaseLocomotion
	PhaseNeeds
	PhaseCamera
	PhaseAnimation
)

func (p ExecutionPhase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseMotion:
		return "motion"
	case PhaseLocomotion:
		return "locomotion"
	case PhaseNeeds:
		return "needs"
	case PhaseCamera:
		return "camera"
	case PhaseAnimation:
		return "animation"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount       uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	MinExecutionTime     time.Duration
	LastExecutionTime    time.Time
}

func (m *Metrics) observe(start time.Time, elapsed time.Duration) {
	m.ExecutionCount++
	m.TotalExecutionTime += elapsed
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	if elapsed > m.MaxExecutionTime {
		m.MaxExecutionTime = elapsed
	}
	if m.ExecutionCount == 1 || elapsed < m.MinExecutionTime {
		m.MinExecutionTime = elapsed
	}
	m.LastExecutionTime = start
}

type entry[S any] struct {
	system  System[S]
	metrics Metrics
}

// Pipeline runs registered systems once per tick in phase order. It is not
// safe for concurrent use; the tick loop owns it.
type Pipeline[S any] struct {
	entries []*entry[S]
	names   map[string]struct{}
	now     func() time.Time
}

func NewPipeline[S any]() *Pipeline[S] {
	return &Pipeline[S]{
		names: make(map[string]struct{}),
		now:   time.Now,
	}
}

// Register adds a system. Names must be unique.
func (p *Pipeline[S]) Register(systems ...System[S]) error {
	for _, s := range systems {
		if _, exists := p.names[s.Name()]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateSystem, s.Name())
		}
		p.names[s.Name()] = struct{}{}
		p.entries = append(p.entries, &entry[S]{system: s})
	}
	sort.SliceStable(p.entries, func(i, j int) bool {
		return p.entries[i].system.Phase() < p.entries[j].system.Phase()
	})
	return nil
}

// Update runs every system once.
func (p *Pipeline[S]) Update(deltaTime float64, state S) {
	for _, e := range p.entries {
		start := p.now()
		e.system.Update(deltaTime, state)
		e.metrics.observe(start, p.now().Sub(start))
	}
}

// ExecutionOrder returns system names in the order Update runs them.
func (p *Pipeline[S]) ExecutionOrder() []string {
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.system.Name()
	}
	return out
}

func (p *Pipeline[S]) Metrics(name string) (Metrics, bool) {
	for _, e := range p.entries {
		if e.system.Name() == name {
			return e.metrics, true
		}
	}
	return Metrics{}, false
}
