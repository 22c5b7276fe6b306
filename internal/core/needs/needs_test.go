package needs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hogar/internal/core/systems/physics"
)

func housePoints() []PointOfInterest {
	return []PointOfInterest{
		{Name: "sofa", Position: physics.Vec3{X: 5, Z: 5}, Radius: 2, Need: Energy, ReplenishRate: 0.5},
		{Name: "table", Position: physics.Vec3{X: -5, Z: -5}, Radius: 2, Need: Hunger, ReplenishRate: 0.7},
		{Name: "tv", Position: physics.Vec3{Z: 9}, Radius: 2, Need: Fun, ReplenishRate: 0.6},
	}
}

func newHouse(t *testing.T) *Simulator {
	t.Helper()
	s, err := NewSimulator(DefaultConfigs(), housePoints())
	require.NoError(t, err)
	return s
}

func TestHungerReplenishNearTable(t *testing.T) {
	s := newHouse(t)
	s.Set(Hunger, 50)

	s.Update(physics.Vec3{X: -4, Z: -5}, true)

	v, _ := s.Value(Hunger)
	assert.InDelta(t, 50.67, v, 1e-9)
}

func TestReplenishClampsAtMax(t *testing.T) {
	s := newHouse(t)
	s.Update(physics.Vec3{X: -4, Z: -5}, true)

	v, _ := s.Value(Hunger)
	assert.Equal(t, MaxValue, v)
}

func TestNoReplenishWithoutInteract(t *testing.T) {
	s := newHouse(t)
	s.Update(physics.Vec3{X: 5, Z: 4}, false)

	energy, _ := s.Value(Energy)
	hunger, _ := s.Value(Hunger)
	fun, _ := s.Value(Fun)
	assert.InDelta(t, 99.95, energy, 1e-9)
	assert.InDelta(t, 99.97, hunger, 1e-9)
	assert.InDelta(t, 99.96, fun, 1e-9)
}

func TestRadiusIsStrict(t *testing.T) {
	s := newHouse(t)
	s.Set(Energy, 10)
	s.Update(physics.Vec3{X: 5, Z: 3}, true) // exactly 2 away

	v, _ := s.Value(Energy)
	assert.InDelta(t, 9.95, v, 1e-9)
}

func TestOnlyBoundNeedReplenishes(t *testing.T) {
	s := newHouse(t)
	s.Set(Energy, 50)
	s.Set(Fun, 50)
	s.Update(physics.Vec3{X: 5, Z: 5}, true)

	energy, _ := s.Value(Energy)
	fun, _ := s.Value(Fun)
	assert.InDelta(t, 50.45, energy, 1e-9)
	assert.InDelta(t, 49.96, fun, 1e-9)
}

func TestValuesStayInBounds(t *testing.T) {
	configs := []Config{
		{Kind: Energy, Initial: 3, Decay: 7},
		{Kind: Hunger, Initial: 97, Decay: -5},
		{Kind: Fun, Initial: 50, Decay: 0.04},
	}
	points := []PointOfInterest{{Name: "tv", Radius: 100, Need: Fun, ReplenishRate: 40}}
	s, err := NewSimulator(configs, points)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		s.Update(physics.Vec3{X: rng.Float64()*20 - 10, Z: rng.Float64()*20 - 10}, rng.Intn(2) == 0)
		for _, k := range Kinds {
			v, _ := s.Value(k)
			require.GreaterOrEqual(t, v, MinValue)
			require.LessOrEqual(t, v, MaxValue)
		}
	}
}

func TestDepletionEdges(t *testing.T) {
	s := newHouse(t)
	s.Set(Energy, 0.06)

	edges := s.Update(physics.Vec3{}, false)
	assert.Empty(t, edges)

	edges = s.Update(physics.Vec3{}, false)
	require.Len(t, edges, 1)
	assert.Equal(t, Edge{Kind: Energy, Depleted: true}, edges[0])

	assert.Empty(t, s.Update(physics.Vec3{}, false), "floor is not a repeated edge")

	edges = s.Update(physics.Vec3{X: 5, Z: 5}, true)
	require.Len(t, edges, 1)
	assert.Equal(t, Edge{Kind: Energy, Depleted: false}, edges[0])
}

func TestDisplayRounds(t *testing.T) {
	s := newHouse(t)
	s.Set(Energy, 49.5)
	s.Set(Hunger, 49.49)
	s.Set(Fun, 0.2)

	assert.Equal(t, Display{Energy: 50, Hunger: 49, Fun: 0}, s.Display())
	v, _ := s.Value(Energy)
	assert.Equal(t, 49.5, v, "internal value stays continuous")
}

func TestNearby(t *testing.T) {
	s := newHouse(t)
	assert.Equal(t, []string{"tv"}, s.Nearby(physics.Vec3{X: 1, Z: 8}))
	assert.Empty(t, s.Nearby(physics.Vec3{}))
	assert.Len(t, s.Points(), 3)
}

func TestNewSimulatorValidates(t *testing.T) {
	_, err := NewSimulator([]Config{{Kind: "thirst"}}, nil)
	assert.ErrorIs(t, err, ErrUnknownNeed)

	_, err = NewSimulator([]Config{{Kind: Fun}, {Kind: Fun}}, nil)
	assert.ErrorIs(t, err, ErrDuplicateNeed)

	_, err = NewSimulator([]Config{{Kind: Fun}}, []PointOfInterest{{Name: "sofa", Need: Energy}})
	assert.ErrorIs(t, err, ErrUnknownNeed)
}
