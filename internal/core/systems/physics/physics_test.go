package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroundBasisLookingDownNegativeZ(t *testing.T) {
	b, ok := GroundBasis(Vec3{X: 0, Y: -5, Z: -10})
	require.True(t, ok)
	assert.InDelta(t, 0, b.Forward.X, 1e-12)
	assert.InDelta(t, -1, b.Forward.Z, 1e-12)
	assert.InDelta(t, 1, b.Right.X, 1e-12)
	assert.InDelta(t, 0, b.Right.Z, 1e-12)
	assert.Zero(t, b.Forward.Y)
}

func TestGroundBasisVerticalIsDegenerate(t *testing.T) {
	_, ok := GroundBasis(Vec3{Y: -1})
	assert.False(t, ok)
}

func TestGroundBasisIsOrthonormal(t *testing.T) {
	for _, angle := range []float64{0, 0.3, 1, math.Pi / 2, 2.5, -1.2} {
		b, ok := GroundBasis(Vec3{X: math.Sin(angle), Y: -0.4, Z: math.Cos(angle)})
		require.True(t, ok)
		assert.InDelta(t, 1, b.Forward.Length(), 1e-12)
		assert.InDelta(t, 1, b.Right.Length(), 1e-12)
		assert.InDelta(t, 0, b.Forward.Dot(b.Right), 1e-12)
	}
}

func TestDistanceAndClamp(t *testing.T) {
	assert.InDelta(t, 5, Vec3{}.DistanceTo(Vec3{X: 3, Z: 4}), 1e-12)
	assert.Equal(t, 2.0, Clamp(1, 2, 20))
	assert.Equal(t, 20.0, Clamp(25, 2, 20))
	assert.Equal(t, 7.0, Clamp(7, 2, 20))
}
