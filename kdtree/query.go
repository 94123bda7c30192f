package kdtree

import (
	"container/heap"

	"github.com/steersuite/crowdsim/geometry"
)

// Neighbor is one result of a KNearest query, paired with its squared
// distance from the query point so callers (the PPR perceptive phase, ORCA
// neighbour collection) don't recompute it.
type Neighbor struct {
	Element Element
	DistSq  float64
}

// KNearest returns up to k elements nearest to pos within squared range
// maxRangeSq, sorted by increasing squared distance, excluding any element
// whose ElementID equals excludeID (an agent never neighbours itself).
//
// Descent prunes subtrees whose bounding-box squared distance to pos
// exceeds the current worst candidate once the bounded result set is full,
// and visits the nearer child first, per spec.md §4.2.
func (t *Tree) KNearest(pos geometry.Point2, k int, maxRangeSq float64, excludeID string) []Neighbor {
	if t.Len() == 0 || k <= 0 {
		return nil
	}

	b := &bounded{k: k, rangeSq: maxRangeSq}
	t.descendKNN(0, pos, excludeID, b)

	out := make([]Neighbor, len(*b.items))
	copy(out, *b.items)
	sortNeighborsAsc(out)

	return out
}

// RangeQuery returns every element within squared range radiusSq of pos,
// unsorted and uncapped — the primitive scenario 4's literal k-d query test
// exercises directly.
func (t *Tree) RangeQuery(pos geometry.Point2, radiusSq float64) []Neighbor {
	if t.Len() == 0 {
		return nil
	}

	var out []Neighbor
	t.descendRange(0, pos, radiusSq, &out)

	return out
}

func (t *Tree) descendRange(nodeIdx int, pos geometry.Point2, radiusSq float64, out *[]Neighbor) {
	n := t.nodes[nodeIdx]
	if n.Box.SqDistToPoint(pos) > radiusSq {
		return
	}
	if n.Left == -1 {
		for _, el := range t.items[n.Begin:n.End] {
			d := sqDist(pos, el.Position())
			if d <= radiusSq {
				*out = append(*out, Neighbor{Element: el, DistSq: d})
			}
		}

		return
	}
	t.descendRange(n.Left, pos, radiusSq, out)
	t.descendRange(n.Right, pos, radiusSq, out)
}

func (t *Tree) descendKNN(nodeIdx int, pos geometry.Point2, excludeID string, b *bounded) {
	n := t.nodes[nodeIdx]
	if n.Box.SqDistToPoint(pos) > b.rangeSq {
		return
	}

	if n.Left == -1 {
		for _, el := range t.items[n.Begin:n.End] {
			if el.ElementID() == excludeID {
				continue
			}
			d := sqDist(pos, el.Position())
			if d > b.rangeSq {
				continue
			}
			b.offer(Neighbor{Element: el, DistSq: d})
		}

		return
	}

	leftBox := t.nodes[n.Left].Box
	rightBox := t.nodes[n.Right].Box
	first, second := n.Left, n.Right
	if rightBox.SqDistToPoint(pos) < leftBox.SqDistToPoint(pos) {
		first, second = n.Right, n.Left
	}
	t.descendKNN(first, pos, excludeID, b)
	t.descendKNN(second, pos, excludeID, b)
}

func sqDist(a, b geometry.Point2) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]

	return dx*dx + dy*dy
}

func sortNeighborsAsc(ns []Neighbor) {
	// insertion sort: k is always small (bounded neighbour caps), so this
	// is both simple and fast relative to sort.Slice's overhead here.
	for i := 1; i < len(ns); i++ {
		for j := i; j > 0 && ns[j].DistSq < ns[j-1].DistSq; j-- {
			ns[j], ns[j-1] = ns[j-1], ns[j]
		}
	}
}

// bounded is a max-heap of at most k Neighbors, shrinking rangeSq to the
// current worst candidate once full — the "range contracts" rule from
// spec.md §4.2's k-nearest description.
type bounded struct {
	k       int
	rangeSq float64
	items   *neighborHeap
}

func (b *bounded) offer(n Neighbor) {
	if b.items == nil {
		h := make(neighborHeap, 0, b.k)
		b.items = &h
	}
	if len(*b.items) < b.k {
		heap.Push(b.items, n)
		if len(*b.items) == b.k {
			b.rangeSq = (*b.items)[0].DistSq
		}

		return
	}
	if n.DistSq >= (*b.items)[0].DistSq {
		return
	}
	heap.Pop(b.items)
	heap.Push(b.items, n)
	b.rangeSq = (*b.items)[0].DistSq
}

// neighborHeap is a max-heap on DistSq so the worst current candidate is
// always the root, ready to be evicted when a closer one arrives.
type neighborHeap []Neighbor

func (h neighborHeap) Len() int            { return len(h) }
func (h neighborHeap) Less(i, j int) bool  { return h[i].DistSq > h[j].DistSq }
func (h neighborHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap) Push(x interface{}) { *h = append(*h, x.(Neighbor)) }
func (h *neighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
