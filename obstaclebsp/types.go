package obstaclebsp

import (
	"errors"

	"github.com/steersuite/crowdsim/geometry"
)

// ErrEmptyPolygon is returned by Build when given a polygon with fewer than
// three vertices.
var ErrEmptyPolygon = errors.New("obstaclebsp: polygon must have at least three vertices")

const epsilon = 1e-6

// Segment is a directed obstacle edge: one side of a closed polygon.
// Next/Prev are indices into the owning Tree's segment arena, forming the
// polygon's cyclic linked list.
type Segment struct {
	A, B    geometry.Point2
	UnitDir geometry.Vector2
	Convex  bool
	Next    int
	Prev    int
}

// Geom returns the segment as a plain geometry.Segment for intersection
// routines.
func (s Segment) Geom() geometry.Segment {
	return geometry.Segment{A: s.A, B: s.B}
}

// node is one BSP tree node: a splitter segment plus left/right subtrees
// holding segments wholly to that side of the splitter's infinite line.
type node struct {
	splitter    int
	left, right *node
}

// Tree is a BSP over a fixed arena of obstacle segments.
type Tree struct {
	segments []Segment
	root     *node
}

// Segments returns the full arena, including any synthetic segments
// produced by splitting. Index order is stable for the lifetime of the
// Tree.
func (t *Tree) Segments() []Segment {
	return t.segments
}

// Segment returns the segment at index i.
func (t *Tree) Segment(i int) Segment {
	return t.segments[i]
}
