package geometry

import "math"

// RaySegment intersects ray r with segment s. It returns the ray parameter t
// (r.Origin + t*r.Dir is the hit point) and hit=true iff the intersection
// lies at t >= 0 within the segment's span. Parallel or degenerate inputs
// report hit=false rather than dividing by zero.
func RaySegment(r Ray, s Segment) (t float64, hit bool) {
	edge := s.B.Sub(s.A)
	denom := r.Dir[0]*edge[1] - r.Dir[1]*edge[0]
	if math.Abs(denom) < epsilon {
		return 0, false
	}

	diff := s.A.Sub(r.Origin)
	t = (diff[0]*edge[1] - diff[1]*edge[0]) / denom
	u := (diff[0]*r.Dir[1] - diff[1]*r.Dir[0]) / denom

	if t < 0 || u < 0 || u > 1 {
		return 0, false
	}

	return t, true
}

// RayCircle intersects ray r with circle c, returning the smaller
// non-negative root t, if any.
func RayCircle(r Ray, c Circle) (t float64, hit bool) {
	oc := r.Origin.Sub(c.Center)
	a := r.Dir.Dot(r.Dir)
	if a < epsilon {
		return 0, false
	}
	b := 2 * oc.Dot(r.Dir)
	cc := oc.Dot(oc) - c.Radius*c.Radius
	disc := b*b - 4*a*cc
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)

	if t0 >= 0 {
		return t0, true
	}
	if t1 >= 0 {
		return t1, true
	}

	return 0, false
}

// SegmentSegment intersects two segments, returning the intersection point
// and hit=true iff they cross within both spans (collinear overlaps are
// treated as non-intersecting, the degenerate case GeometryDegenerate
// handles locally rather than enumerating every overlapping point).
func SegmentSegment(s1, s2 Segment) (p Point2, hit bool) {
	r := s1.B.Sub(s1.A)
	s := s2.B.Sub(s2.A)
	denom := r[0]*s[1] - r[1]*s[0]
	if math.Abs(denom) < epsilon {
		return Point2{}, false
	}

	diff := s2.A.Sub(s1.A)
	t := (diff[0]*s[1] - diff[1]*s[0]) / denom
	u := (diff[0]*r[1] - diff[1]*r[0]) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point2{}, false
	}

	return s1.A.Add(r.Mul(t)), true
}

// Clears reports whether the segment from a to b passes obstacle edge s:
// it returns false if a→b crosses s, or if either endpoint a or b lies
// closer than clearance to the infinite line through s (a perpendicular
// distance test). The distance from s's endpoints to the interior of a→b
// is not measured. It is the building block for mutual-visibility queries (§4.2).
func Clears(a, b Point2, s Segment, clearance float64) bool {
	if _, hit := SegmentSegment(Segment{a, b}, s); hit {
		return false
	}

	return perpDist(a, s) >= clearance && perpDist(b, s) >= clearance
}

func perpDist(p Point2, s Segment) float64 {
	edge := s.B.Sub(s.A)
	l := edge.Len()
	if l < epsilon {
		return p.Sub(s.A).Len()
	}

	return math.Abs(LeftOf(s.A, s.B, p)) / l
}
