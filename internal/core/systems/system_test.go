package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

type stubSystem struct {
	name  string
	phase ExecutionPhase
}

func (s stubSystem) Name() string          { return s.name }
func (s stubSystem) Phase() ExecutionPhase { return s.phase }
func (s stubSystem) Update(_ float64, r *recorder) {
	r.calls = append(r.calls, s.name)
}

func TestPipelineRunsInPhaseOrder(t *testing.T) {
	p := NewPipeline[*recorder]()
	require.NoError(t, p.Register(
		stubSystem{"camera", PhaseCamera},
		stubSystem{"motion", PhaseMotion},
		stubSystem{"needs", PhaseNeeds},
		stubSystem{"input", PhaseInput},
		stubSystem{"locomotion", PhaseLocomotion},
	))

	r := &recorder{}
	p.Update(0.016, r)

	want := []string{"input", "motion", "locomotion", "needs", "camera"}
	assert.Equal(t, want, r.calls)
	assert.Equal(t, want, p.ExecutionOrder())
}

func TestPipelineKeepsRegistrationOrderWithinPhase(t *testing.T) {
	p := NewPipeline[*recorder]()
	require.NoError(t, p.Register(stubSystem{"b", PhaseNeeds}, stubSystem{"a", PhaseNeeds}))

	r := &recorder{}
	p.Update(0, r)
	assert.Equal(t, []string{"b", "a"}, r.calls)
}

func TestPipelineRejectsDuplicates(t *testing.T) {
	p := NewPipeline[*recorder]()
	require.NoError(t, p.Register(stubSystem{"a", PhaseInput}))
	err := p.Register(stubSystem{"a", PhaseCamera})
	assert.ErrorIs(t, err, ErrDuplicateSystem)
}

func TestPipelineCollectsMetrics(t *testing.T) {
	p := NewPipeline[*recorder]()
	require.NoError(t, p.Register(stubSystem{"a", PhaseInput}))
	r := &recorder{}
	for i := 0; i < 3; i++ {
		p.Update(0, r)
	}
	m, ok := p.Metrics("a")
	require.True(t, ok)
	assert.EqualValues(t, 3, m.ExecutionCount)
	assert.GreaterOrEqual(t, m.MaxExecutionTime, m.MinExecutionTime)

	_, ok = p.Metrics("missing")
	assert.False(t, ok)
}
