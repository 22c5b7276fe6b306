package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hogar/internal/core/systems/physics"
)

func TestInitialBasisLooksDownNegativeZ(t *testing.T) {
	r := NewRig(DefaultOptions())
	b := r.Basis()
	assert.InDelta(t, 0, b.Forward.X, 1e-12)
	assert.InDelta(t, -1, b.Forward.Z, 1e-12)
	assert.InDelta(t, 1, b.Right.X, 1e-12)
	assert.True(t, r.Orbit().Follow)
}

func TestFollowPlacesCameraOnSphere(t *testing.T) {
	r := NewRig(DefaultOptions())
	target := physics.Vec3{X: 1, Z: -2}

	pose := r.Update(target)

	c := math.Cos(math.Pi / 4)
	assert.InDelta(t, 1+10*c, pose.Position.X, 1e-9)
	assert.InDelta(t, 10*math.Sin(math.Pi/4), pose.Position.Y, 1e-9)
	assert.InDelta(t, -2, pose.Position.Z, 1e-9)
	assert.Equal(t, target, pose.Target)
	assert.InDelta(t, 10, pose.Position.DistanceTo(target), 1e-9)

	// camera sits on +X, so forward on the ground is -X
	assert.InDelta(t, -1, r.Basis().Forward.X, 1e-9)
}

func TestManualModeKeepsPositionAndLooksAtTarget(t *testing.T) {
	r := NewRig(DefaultOptions())
	assert.False(t, r.ToggleFollow())

	r.SetPosition(physics.Vec3{X: 3, Y: 4, Z: 3})
	pose := r.Update(physics.Vec3{X: 3, Z: 0})

	assert.Equal(t, physics.Vec3{X: 3, Y: 4, Z: 3}, pose.Position)
	assert.Equal(t, physics.Vec3{X: 3}, pose.Target)
	assert.InDelta(t, -1, r.Basis().Forward.Z, 1e-9)
}

func TestToggleIntoFollowRecentres(t *testing.T) {
	r := NewRig(DefaultOptions())
	r.Look(300, -100)
	r.Zoom(50)
	r.ToggleFollow()
	assert.NotEqual(t, DefaultTheta, r.Orbit().Theta, "leaving follow keeps the orbit")

	require.True(t, r.ToggleFollow())
	o := r.Orbit()
	assert.Equal(t, DefaultTheta, o.Theta)
	assert.Equal(t, DefaultPhi, o.Phi)
	assert.Equal(t, DefaultRadius, o.Radius)
}

func TestLookAndZoomScale(t *testing.T) {
	r := NewRig(DefaultOptions())
	r.Look(100, 50)
	r.Zoom(-20)

	o := r.Orbit()
	assert.InDelta(t, DefaultTheta-0.2, o.Theta, 1e-12)
	assert.InDelta(t, DefaultPhi-0.1, o.Phi, 1e-12)
	assert.InDelta(t, 9, o.Radius, 1e-12)
}

func TestOrbitClampsHoldForAnySequence(t *testing.T) {
	r := NewRig(DefaultOptions())
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		r.Look(rng.NormFloat64()*800, rng.NormFloat64()*800)
		r.Zoom(rng.NormFloat64() * 400)
		if rng.Intn(50) == 0 {
			r.ToggleFollow()
		}
		o := r.Orbit()
		require.GreaterOrEqual(t, o.Phi, MinPhi)
		require.LessOrEqual(t, o.Phi, MaxPhi)
		require.GreaterOrEqual(t, o.Radius, MinRadius)
		require.LessOrEqual(t, o.Radius, MaxRadius)
	}
}

func TestTopDownViewKeepsPreviousBasis(t *testing.T) {
	r := NewRig(DefaultOptions())
	r.Update(physics.Vec3{})
	before := r.Basis()

	r.Look(0, -1e6)
	require.Equal(t, MaxPhi, r.Orbit().Phi)
	r.Update(physics.Vec3{})

	assert.Equal(t, before, r.Basis())
}
