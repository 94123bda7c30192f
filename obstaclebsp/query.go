package obstaclebsp

import "github.com/steersuite/crowdsim/geometry"

// RayTrace returns the first segment the ray hits and its parametric t, or
// hit=false if nothing is in its path. Traversal visits the splitter the
// ray origin is nearer to first, matching spec.md §4.2's "standard BSP
// traversal" description.
func (t *Tree) RayTrace(r geometry.Ray) (segIdx int, tHit float64, hit bool) {
	return t.traceNode(t.root, r, -1, 0, false)
}

func (t *Tree) traceNode(n *node, r geometry.Ray, bestSeg int, bestT float64, bestHit bool) (int, float64, bool) {
	if n == nil {
		return bestSeg, bestT, bestHit
	}

	sp := t.segments[n.splitter]
	near, far := n.left, n.right
	if geometry.LeftOf(sp.A, sp.B, r.Origin) < 0 {
		near, far = n.right, n.left
	}

	bestSeg, bestT, bestHit = t.traceNode(near, r, bestSeg, bestT, bestHit)

	if ti, ok := geometry.RaySegment(r, sp.Geom()); ok && (!bestHit || ti < bestT) {
		bestSeg, bestT, bestHit = n.splitter, ti, true
	}

	bestSeg, bestT, bestHit = t.traceNode(far, r, bestSeg, bestT, bestHit)

	return bestSeg, bestT, bestHit
}

// Visible reports whether the straight segment from a to b, thickened by
// clearance r, clears every obstacle edge in the tree.
func (t *Tree) Visible(a, b geometry.Point2, r float64) bool {
	return t.visibleNode(t.root, a, b, r)
}

func (t *Tree) visibleNode(n *node, a, b geometry.Point2, r float64) bool {
	if n == nil {
		return true
	}
	sp := t.segments[n.splitter]
	if !geometry.Clears(a, b, sp.Geom(), r) {
		return false
	}

	return t.visibleNode(n.left, a, b, r) && t.visibleNode(n.right, a, b, r)
}

// ObstacleNeighbor is one result of NeighborsWithinRange.
type ObstacleNeighbor struct {
	SegmentIndex int
	DistSq       float64
}

// NeighborsWithinRange collects obstacle segments within squared range R of
// pos. Descent uses left_of to decide which side pos sits on, visits that
// side first, then decides whether to cross the splitter by comparing
// squared perpendicular distance to R, per spec.md §4.2.
func (t *Tree) NeighborsWithinRange(pos geometry.Point2, rangeSq float64) []ObstacleNeighbor {
	var out []ObstacleNeighbor
	t.neighborNode(t.root, pos, rangeSq, &out)

	return out
}

func (t *Tree) neighborNode(n *node, pos geometry.Point2, rangeSq float64, out *[]ObstacleNeighbor) {
	if n == nil {
		return
	}
	sp := t.segments[n.splitter]

	d := perpDistSq(pos, sp)
	if d <= rangeSq {
		*out = append(*out, ObstacleNeighbor{SegmentIndex: n.splitter, DistSq: d})
	}

	side := geometry.LeftOf(sp.A, sp.B, pos)
	near, far := n.left, n.right
	if side < 0 {
		near, far = n.right, n.left
	}

	t.neighborNode(near, pos, rangeSq, out)
	if d <= rangeSq {
		t.neighborNode(far, pos, rangeSq, out)
	}
}

func perpDistSq(p geometry.Point2, s Segment) float64 {
	edge := s.B.Sub(s.A)
	l2 := edge.Dot(edge)
	if l2 < epsilon {
		d := p.Sub(s.A)

		return d.Dot(d)
	}
	area := geometry.LeftOf(s.A, s.B, p)

	return (area * area) / l2
}
