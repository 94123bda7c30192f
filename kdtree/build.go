package kdtree

import (
	"sort"

	"github.com/steersuite/crowdsim/geometry"
)

// Build constructs a fresh tree over elements. It is safe to call every
// tick with the current set of enabled agents: Build never mutates its
// input slice's backing elements, only the order of the internal copy it
// partitions.
//
// An empty, non-nil tree result (rather than an error) lets RangeQuery/KNearest
// stay total when there happen to be zero enabled agents this tick.
func Build(elements []Element, maxLeafSize int) *Tree {
	if maxLeafSize <= 0 {
		maxLeafSize = DefaultMaxLeafSize
	}
	if len(elements) == 0 {
		return &Tree{maxLeafSize: maxLeafSize}
	}

	items := make([]Element, len(elements))
	copy(items, elements)

	t := &Tree{
		items:       items,
		nodes:       make([]node, 0, 2*len(items)-1),
		maxLeafSize: maxLeafSize,
	}
	t.buildRange(0, len(items))

	return t
}

// buildRange partitions items[begin:end] in place and appends the resulting
// subtree's nodes, returning the index of the node it created.
func (t *Tree) buildRange(begin, end int) int {
	box := boundingBox(t.items[begin:end])
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{Begin: begin, End: end, Box: box, Left: -1, Right: -1})

	if end-begin <= t.maxLeafSize {
		return idx
	}

	axis := box.LongestAxis()
	mid := begin + (end-begin)/2
	slice := t.items[begin:end]
	sort.Slice(slice, func(i, j int) bool {
		return slice[i].Position()[axis] < slice[j].Position()[axis]
	})

	left := t.buildRange(begin, mid)
	right := t.buildRange(mid, end)
	t.nodes[idx].Left = left
	t.nodes[idx].Right = right

	return idx
}

func boundingBox(items []Element) geometry.AABB {
	box := geometry.NewAABB(items[0].Position(), items[0].Position())
	for _, it := range items[1:] {
		box = box.Expand(it.Position())
	}

	return box
}
