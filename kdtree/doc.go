// Package kdtree implements the agent spatial index: a balanced k-d tree
// over agent positions, rebuilt from scratch every simulation tick (§4.2).
//
// Construction is a median split on the bounding box's longest axis: a
// node with more than maxLeafSize elements sorts its slice in place along
// that axis, splits it at the median element and recurses; a node at or below the threshold
// becomes a leaf. The tree is stored as a flat []node slice sized 2N-1 in
// the worst case, each node holding the half-open [begin, end) range into
// the backing element slice plus its bounding box and child indices, the
// layout spec.md's data model names directly.
package kdtree
