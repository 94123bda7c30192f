package geometry

import "github.com/go-gl/mathgl/mgl64"

// Point2 is a location on the horizontal plane.
type Point2 = mgl64.Vec2

// Vector2 is a displacement or velocity on the horizontal plane.
type Vector2 = mgl64.Vec2

// NewPoint2 builds a Point2 from cartesian coordinates.
func NewPoint2(x, y float64) Point2 { return mgl64.Vec2{x, y} }

// NewVector2 builds a Vector2 from cartesian components.
func NewVector2(x, y float64) Vector2 { return mgl64.Vec2{x, y} }

const epsilon = 1e-9

// LeftOf reports twice the signed area of the triangle (a, b, c), i.e. the
// cross product (b-a)×(c-a): positive when c
// is to the left of the directed line a→b, negative to the right, zero when
// collinear. Obstacle convexity (spec data model §3) and BSP splitter side
// tests both reduce to this sign.
func LeftOf(a, b, c Point2) float64 {
	ab := b.Sub(a)
	ac := c.Sub(a)

	return ab[0]*ac[1] - ab[1]*ac[0]
}

// Det returns the 2-D cross product (determinant) of a and b, positive when
// b lies counter-clockwise of a. ORCA's line construction and linear
// program use this to test which side of a half-plane a point falls on.
func Det(a, b Vector2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// PenetrationDepth returns how far point p has penetrated inside a circle of
// the given radius centred at c. A non-positive result means p is outside
// or exactly on the boundary.
func PenetrationDepth(c Point2, radius float64, p Point2) float64 {
	d := c.Sub(p).Len()

	return radius - d
}

// SafeNormalize returns v normalized to unit length, and false if v is too
// close to the zero vector to normalize meaningfully (GeometryDegenerate,
// handled locally per spec §7 rather than propagated as an error).
func SafeNormalize(v Vector2) (Vector2, bool) {
	l := v.Len()
	if l < epsilon {
		return Vector2{0, 0}, false
	}

	return v.Mul(1 / l), true
}

// Rotate returns v rotated by angle radians counter-clockwise.
func Rotate(v Vector2, angle float64) Vector2 {
	m := mgl64.Rotate2D(angle)

	return m.Mul2x1(v)
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Point2
}

// NewAABB returns the smallest AABB containing both min and max corners,
// regardless of input order.
func NewAABB(a, b Point2) AABB {
	return AABB{
		Min: NewPoint2(min(a[0], b[0]), min(a[1], b[1])),
		Max: NewPoint2(max(a[0], b[0]), max(a[1], b[1])),
	}
}

// Contains reports whether p lies within the box, inclusive of the boundary.
func (box AABB) Contains(p Point2) bool {
	return p[0] >= box.Min[0] && p[0] <= box.Max[0] &&
		p[1] >= box.Min[1] && p[1] <= box.Max[1]
}

// Expand grows the box (if necessary) to contain p, returning the result.
func (box AABB) Expand(p Point2) AABB {
	return AABB{
		Min: NewPoint2(min(box.Min[0], p[0]), min(box.Min[1], p[1])),
		Max: NewPoint2(max(box.Max[0], p[0]), max(box.Max[1], p[1])),
	}
}

// SqDistToPoint returns the squared distance from p to the nearest point of
// the box (zero if p is inside). Used by the k-d tree to prune subtrees
// whose bounding box cannot contain a closer neighbour than the current
// worst candidate.
func (box AABB) SqDistToPoint(p Point2) float64 {
	dx := max(0, max(box.Min[0]-p[0], p[0]-box.Max[0]))
	dy := max(0, max(box.Min[1]-p[1], p[1]-box.Max[1]))

	return dx*dx + dy*dy
}

// Width returns the box's extent on axis 0 (x) and 1 (y).
func (box AABB) Width(axis int) float64 {
	return box.Max[axis] - box.Min[axis]
}

// LongestAxis returns the axis (0 or 1) along which the box is widest,
// the split axis choice used by the agent k-d tree builder.
func (box AABB) LongestAxis() int {
	if box.Width(0) >= box.Width(1) {
		return 0
	}

	return 1
}

// OBB is an oriented bounding box: an AABB plus a rotation about its centre.
type OBB struct {
	Center     Point2
	HalfExtent Vector2
	Rotation   float64 // radians
}

// Corners returns the box's four corners in counter-clockwise order.
func (o OBB) Corners() [4]Point2 {
	rot := mgl64.Rotate2D(o.Rotation)
	local := [4]Vector2{
		{-o.HalfExtent[0], -o.HalfExtent[1]},
		{o.HalfExtent[0], -o.HalfExtent[1]},
		{o.HalfExtent[0], o.HalfExtent[1]},
		{-o.HalfExtent[0], o.HalfExtent[1]},
	}
	var out [4]Point2
	for i, l := range local {
		out[i] = o.Center.Add(rot.Mul2x1(l))
	}

	return out
}

// Circle is a 2-D disk.
type Circle struct {
	Center Point2
	Radius float64
}

// Segment is a directed line segment from A to B.
type Segment struct {
	A, B Point2
}

// Ray is a half-line starting at Origin travelling along Dir (need not be
// unit length; callers that need a unit direction call SafeNormalize first).
type Ray struct {
	Origin Point2
	Dir    Vector2
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}

	return b
}
