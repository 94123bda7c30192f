package obstaclebsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/obstaclebsp"
)

func box(minX, minY, maxX, maxY float64) []geometry.Point2 {
	return []geometry.Point2{
		geometry.NewPoint2(minX, minY),
		geometry.NewPoint2(maxX, minY),
		geometry.NewPoint2(maxX, maxY),
		geometry.NewPoint2(minX, maxY),
	}
}

func TestBuild_RejectsDegeneratePolygon(t *testing.T) {
	_, err := obstaclebsp.Build([][]geometry.Point2{{geometry.NewPoint2(0, 0), geometry.NewPoint2(1, 0)}})
	assert.ErrorIs(t, err, obstaclebsp.ErrEmptyPolygon)
}

func TestCyclicLinks(t *testing.T) {
	tree, err := obstaclebsp.Build([][]geometry.Point2{box(-1, -1, 1, 1)})
	require.NoError(t, err)

	segs := tree.Segments()
	for i, s := range segs {
		if s.Next < len(segs) {
			require.Equal(t, i, segs[s.Next].Prev, "segment %d's next.prev should be itself", i)
		}
		if s.Prev < len(segs) {
			require.Equal(t, i, segs[s.Prev].Next, "segment %d's prev.next should be itself", i)
		}
	}
}

// TestRayTrace_CorridorBox exercises scenario 3: an axis-aligned box from
// (-1,-1) to (1,1) (the world's x-z plane collapsed to 2-D here), a forward
// ray along +x starting at (-5,0) should first hit the box near t=4.
func TestRayTrace_CorridorBox(t *testing.T) {
	tree, err := obstaclebsp.Build([][]geometry.Point2{box(-1, -1, 1, 1)})
	require.NoError(t, err)

	r := geometry.Ray{Origin: geometry.NewPoint2(-5, 0), Dir: geometry.NewVector2(1, 0)}
	_, tHit, hit := tree.RayTrace(r)
	require.True(t, hit)
	assert.InDelta(t, 4.0, tHit, 1e-6)
}

func TestVisible_BlockedByObstacle(t *testing.T) {
	tree, err := obstaclebsp.Build([][]geometry.Point2{box(-1, -1, 1, 1)})
	require.NoError(t, err)

	assert.False(t, tree.Visible(geometry.NewPoint2(-5, 0), geometry.NewPoint2(5, 0), 0.1))
	assert.True(t, tree.Visible(geometry.NewPoint2(-5, 10), geometry.NewPoint2(5, 10), 0.1))
}

func TestNeighborsWithinRange(t *testing.T) {
	tree, err := obstaclebsp.Build([][]geometry.Point2{box(-1, -1, 1, 1)})
	require.NoError(t, err)

	near := tree.NeighborsWithinRange(geometry.NewPoint2(0, 5), 100)
	assert.NotEmpty(t, near)

	far := tree.NeighborsWithinRange(geometry.NewPoint2(0, 1000), 1)
	assert.Empty(t, far)
}

// TestBuildFromSegments_MatchesBuild exercises the parallel-precompute
// path (PrecomputeSegments + BuildFromSegments) against the same polygons
// Build consumes directly, asserting both produce the same queryable tree.
func TestBuildFromSegments_MatchesBuild(t *testing.T) {
	polygons := [][]geometry.Point2{box(-1, -1, 1, 1), box(3, -1, 5, 1)}

	direct, err := obstaclebsp.Build(polygons)
	require.NoError(t, err)

	batches := make([][]obstaclebsp.Segment, len(polygons))
	for i, poly := range polygons {
		batches[i] = obstaclebsp.PrecomputeSegments(poly)
	}
	viaPool, err := obstaclebsp.BuildFromSegments(batches)
	require.NoError(t, err)

	require.Equal(t, len(direct.Segments()), len(viaPool.Segments()))

	r := geometry.Ray{Origin: geometry.NewPoint2(-5, 0), Dir: geometry.NewVector2(1, 0)}
	_, directT, directHit := direct.RayTrace(r)
	_, poolT, poolHit := viaPool.RayTrace(r)
	require.Equal(t, directHit, poolHit)
	assert.InDelta(t, directT, poolT, 1e-9)
}

func TestBuildFromSegments_RejectsDegeneratePolygon(t *testing.T) {
	_, err := obstaclebsp.BuildFromSegments([][]obstaclebsp.Segment{{{}, {}}})
	assert.ErrorIs(t, err, obstaclebsp.ErrEmptyPolygon)
}

func TestPrecomputeSegments_ConvexityMatchesBuild(t *testing.T) {
	poly := box(-1, -1, 1, 1)
	tree, err := obstaclebsp.Build([][]geometry.Point2{poly})
	require.NoError(t, err)

	segs := obstaclebsp.PrecomputeSegments(poly)
	require.Len(t, segs, len(poly))
	for i, s := range segs {
		assert.Equal(t, tree.Segment(i).Convex, s.Convex, "segment %d convexity", i)
		assert.Equal(t, tree.Segment(i).UnitDir, s.UnitDir, "segment %d direction", i)
	}
}
