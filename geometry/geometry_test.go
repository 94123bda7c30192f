package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steersuite/crowdsim/geometry"
)

func TestLeftOf(t *testing.T) {
	a := geometry.NewPoint2(0, 0)
	b := geometry.NewPoint2(1, 0)
	left := geometry.NewPoint2(0, 1)
	right := geometry.NewPoint2(0, -1)

	assert.Greater(t, geometry.LeftOf(a, b, left), 0.0)
	assert.Less(t, geometry.LeftOf(a, b, right), 0.0)
}

func TestSafeNormalizeDegenerate(t *testing.T) {
	_, ok := geometry.SafeNormalize(geometry.NewVector2(0, 0))
	assert.False(t, ok)
}

func TestRaySegmentHit(t *testing.T) {
	r := geometry.Ray{Origin: geometry.NewPoint2(-5, 0), Dir: geometry.NewVector2(1, 0)}
	s := geometry.Segment{A: geometry.NewPoint2(0, -1), B: geometry.NewPoint2(0, 1)}

	tHit, hit := geometry.RaySegment(r, s)
	assert.True(t, hit)
	assert.InDelta(t, 5.0, tHit, 1e-9)
}

func TestRaySegmentParallelMiss(t *testing.T) {
	r := geometry.Ray{Origin: geometry.NewPoint2(0, 0), Dir: geometry.NewVector2(1, 0)}
	s := geometry.Segment{A: geometry.NewPoint2(0, 1), B: geometry.NewPoint2(5, 1)}

	_, hit := geometry.RaySegment(r, s)
	assert.False(t, hit)
}

func TestAABBSqDistToPoint(t *testing.T) {
	box := geometry.NewAABB(geometry.NewPoint2(0, 0), geometry.NewPoint2(1, 1))
	assert.Equal(t, 0.0, box.SqDistToPoint(geometry.NewPoint2(0.5, 0.5)))
	assert.InDelta(t, 1.0, box.SqDistToPoint(geometry.NewPoint2(2, 0.5)), 1e-9)
}

func TestClearsBlockedByObstacle(t *testing.T) {
	s := geometry.Segment{A: geometry.NewPoint2(0, -2), B: geometry.NewPoint2(0, 2)}
	assert.False(t, geometry.Clears(geometry.NewPoint2(-1, 0), geometry.NewPoint2(1, 0), s, 0.1))
	assert.True(t, geometry.Clears(geometry.NewPoint2(-1, 10), geometry.NewPoint2(1, 10), s, 0.1))
}
