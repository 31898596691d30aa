package geometry_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/dyadikos/internal/geometry"
)

func TestPointsOnCircle(t *testing.T) {
	const radius, cx, cy = 10.0, 50.0, 40.0
	for sides := 3; sides <= 12; sides++ {
		points, err := geometry.PointsOnCircle(sides, radius, cx, cy)
		require.NoError(t, err)
		require.Len(t, points, sides)
		for i, p := range points {
			assert.Equal(t, i, p.Index)
			assert.InDelta(t, radius, math.Hypot(p.X-cx, p.Y-cy), 1e-9)
		}
		// index 0 sits at angle pi/2
		assert.InDelta(t, cx, points[0].X, 1e-9)
		assert.InDelta(t, cy+radius, points[0].Y, 1e-9)
	}
}

func TestPointsOnCircleClockwise(t *testing.T) {
	points, err := geometry.PointsOnCircle(4, 1, 0, 0)
	require.NoError(t, err)
	// 0 top, 1 right, 2 bottom, 3 left
	assert.InDelta(t, 1, points[1].X, 1e-9)
	assert.InDelta(t, -1, points[2].Y, 1e-9)
	assert.InDelta(t, -1, points[3].X, 1e-9)
}

func TestPointsOnCircleRejectsDegenerate(t *testing.T) {
	for _, sides := range []int{-1, 0, 1, 2} {
		_, err := geometry.PointsOnCircle(sides, 1, 0, 0)
		assert.ErrorIs(t, err, geometry.ErrTooFewSides)
	}
}

func TestCyclicDistanceSymmetricAndBounded(t *testing.T) {
	for sides := 3; sides <= 12; sides++ {
		maxD := geometry.MaxDistance(sides)
		for a := 0; a < sides; a++ {
			for b := 0; b < sides; b++ {
				if a == b {
					continue
				}
				ab, err := geometry.CyclicDistance(a, b, sides)
				require.NoError(t, err)
				ba, err := geometry.CyclicDistance(b, a, sides)
				require.NoError(t, err)
				assert.Equal(t, ab, ba)
				assert.GreaterOrEqual(t, ab, 1)
				assert.LessOrEqual(t, ab, maxD)
			}
		}
	}
}

func TestCyclicDistanceWraps(t *testing.T) {
	d, err := geometry.CyclicDistance(0, 8, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = geometry.CyclicDistance(2, 6, 8)
	require.NoError(t, err)
	assert.Equal(t, 4, d)
}

func TestCyclicDistanceErrors(t *testing.T) {
	_, err := geometry.CyclicDistance(3, 3, 9)
	assert.ErrorIs(t, err, geometry.ErrSamePoint)

	_, err = geometry.CyclicDistance(0, 9, 9)
	assert.ErrorIs(t, err, geometry.ErrPointOutOfRange)

	_, err = geometry.CyclicDistance(-1, 2, 9)
	assert.ErrorIs(t, err, geometry.ErrPointOutOfRange)
}

func TestAllChordsAtDistance(t *testing.T) {
	for sides := 3; sides <= 12; sides++ {
		for distance := 1; distance <= geometry.MaxDistance(sides); distance++ {
			lines := geometry.AllChordsAtDistance(sides, distance)

			// brute force: every i<j pair at this distance
			want := 0
			for i := 0; i < sides; i++ {
				for j := i + 1; j < sides; j++ {
					d, err := geometry.CyclicDistance(i, j, sides)
					require.NoError(t, err)
					if d == distance {
						want++
					}
				}
			}
			require.Len(t, lines, want, "sides=%d distance=%d", sides, distance)
			assert.Equal(t, want, geometry.ChordCount(sides, distance))

			seen := map[geometry.Line]bool{}
			for _, l := range lines {
				assert.Less(t, l.From, l.To)
				d, err := geometry.CyclicDistance(l.From, l.To, sides)
				require.NoError(t, err)
				assert.Equal(t, distance, d)
				assert.False(t, seen[l], "duplicate chord %s", l)
				seen[l] = true
			}
		}
	}
}

func TestAllChordsAtDistanceDiameter(t *testing.T) {
	lines := geometry.AllChordsAtDistance(8, 4)
	assert.Equal(t, []geometry.Line{
		{From: 0, To: 4}, {From: 1, To: 5}, {From: 2, To: 6}, {From: 3, To: 7},
	}, lines)
}

func TestAllChordsAtDistanceIncludesWrap(t *testing.T) {
	lines := geometry.AllChordsAtDistance(9, 1)
	assert.Len(t, lines, 9)
	assert.Contains(t, lines, geometry.Line{From: 0, To: 8})
	assert.Contains(t, geometry.AllChordsAtDistance(9, 3), geometry.Line{From: 2, To: 8})
	assert.Contains(t, geometry.AllChordsAtDistance(9, 3), geometry.Line{From: 0, To: 6})
}

func TestAllChordsAtDistanceOutOfRange(t *testing.T) {
	assert.Empty(t, geometry.AllChordsAtDistance(9, 0))
	assert.Empty(t, geometry.AllChordsAtDistance(9, 5))
	assert.Zero(t, geometry.ChordCount(9, 5))
}

func TestLineEqualIgnoresOrder(t *testing.T) {
	assert.True(t, geometry.Line{From: 1, To: 4}.Equal(geometry.Line{From: 4, To: 1}))
	assert.False(t, geometry.Line{From: 1, To: 4}.Equal(geometry.Line{From: 1, To: 5}))
	assert.Equal(t, geometry.Line{From: 1, To: 4}, geometry.Line{From: 4, To: 1}.Normalize())
}

func TestNearestPoint(t *testing.T) {
	points, err := geometry.PointsOnCircle(6, 10, 0, 0)
	require.NoError(t, err)

	p, ok := geometry.NearestPoint(points, 0.5, 9.5, 2)
	require.True(t, ok)
	assert.Equal(t, 0, p.Index)

	_, ok = geometry.NearestPoint(points, 0, 0, 2)
	assert.False(t, ok)
}

func TestPointToLineDistance(t *testing.T) {
	assert.InDelta(t, 3, geometry.PointToLineDistance(0, 3, -1, 0, 1, 0), 1e-9)
	assert.InDelta(t, 5, geometry.PointToLineDistance(3, 4, 0, 0, 0, 0), 1e-9)
}
