package obstaclebsp

import "github.com/steersuite/crowdsim/geometry"

// Build constructs a BSP over one or more closed polygons, each given as an
// ordered list of vertices (implicitly closed back to the first). It
// computes each segment's unit direction and convexity flag per the data
// model (§3: a vertex is convex iff left_of(prev, current, next) >= 0),
// links them into per-polygon cycles, then recursively selects splitters.
func Build(polygons [][]geometry.Point2) (*Tree, error) {
	t := &Tree{}

	for _, poly := range polygons {
		if len(poly) < 3 {
			return nil, ErrEmptyPolygon
		}
		t.addPolygon(poly)
	}

	if len(t.segments) == 0 {
		return t, nil
	}

	all := make([]int, len(t.segments))
	for i := range all {
		all[i] = i
	}
	t.root = t.buildNode(all)

	return t, nil
}

// PrecomputeSegments computes one polygon's annotated, but not yet
// linked, segments: unit direction and convexity per the data model (§3),
// with Next/Prev left zero. It touches nothing but poly, so callers may
// run it for many polygons concurrently (engine.TaskPool does, at
// preprocess time) before assembling the results in order with
// BuildFromSegments.
func PrecomputeSegments(poly []geometry.Point2) []Segment {
	n := len(poly)
	segs := make([]Segment, n)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		dir, _ := geometry.SafeNormalize(b.Sub(a))
		segs[i] = Segment{A: a, B: b, UnitDir: dir}
	}
	for i := 0; i < n; i++ {
		prev := poly[(i-1+n)%n]
		cur := poly[i]
		next := poly[(i+1)%n]
		segs[i].Convex = geometry.LeftOf(prev, cur, next) >= 0
	}

	return segs
}

// BuildFromSegments assembles a Tree from per-polygon segment batches
// already produced by PrecomputeSegments, in the same order Build would
// have visited the source polygons, then selects splitters exactly as
// Build does. It is the parallel-precompute counterpart to Build: the
// per-polygon geometry work can happen concurrently, but linking and
// splitter selection stay sequential.
func BuildFromSegments(batches [][]Segment) (*Tree, error) {
	t := &Tree{}

	for _, batch := range batches {
		if len(batch) < 3 {
			return nil, ErrEmptyPolygon
		}
		base := len(t.segments)
		n := len(batch)
		for i, s := range batch {
			s.Next = base + (i+1)%n
			s.Prev = base + (i-1+n)%n
			t.segments = append(t.segments, s)
		}
	}

	if len(t.segments) == 0 {
		return t, nil
	}

	all := make([]int, len(t.segments))
	for i := range all {
		all[i] = i
	}
	t.root = t.buildNode(all)

	return t, nil
}

func (t *Tree) addPolygon(poly []geometry.Point2) {
	n := len(poly)
	base := len(t.segments)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		dir, _ := geometry.SafeNormalize(b.Sub(a))
		t.segments = append(t.segments, Segment{
			A:       a,
			B:       b,
			UnitDir: dir,
			Next:    base + (i+1)%n,
			Prev:    base + (i-1+n)%n,
		})
	}

	for i := 0; i < n; i++ {
		idx := base + i
		prev := poly[(i-1+n)%n]
		cur := poly[i]
		next := poly[(i+1)%n]
		t.segments[idx].Convex = geometry.LeftOf(prev, cur, next) >= 0
	}
}

// buildNode selects the splitter among candidate segment indices that
// minimises (max(left,right), min(left,right)) lexicographically, splits
// any straddling segment into two synthetic segments appended to the
// arena, and recurses on each side.
func (t *Tree) buildNode(candidates []int) *node {
	if len(candidates) == 0 {
		return nil
	}

	bestIdx := -1
	bestLeftCount, bestRightCount := -1, -1
	var bestLeft, bestRight, bestStraddle []int

	for _, c := range candidates {
		left, right, straddle := t.classify(c, candidates)
		lc, rc := len(left), len(right)
		worse := rc
		better := lc
		if lc > rc {
			worse, better = lc, rc
		}
		if bestIdx == -1 {
			bestIdx, bestLeftCount, bestRightCount = c, worse, better
			bestLeft, bestRight, bestStraddle = left, right, straddle

			continue
		}
		if worse < bestLeftCount || (worse == bestLeftCount && better < bestRightCount) {
			bestIdx, bestLeftCount, bestRightCount = c, worse, better
			bestLeft, bestRight, bestStraddle = left, right, straddle
		}
	}

	for _, s := range bestStraddle {
		leftIdx, rightIdx := t.split(s, bestIdx)
		bestLeft = append(bestLeft, leftIdx)
		bestRight = append(bestRight, rightIdx)
	}

	n := &node{splitter: bestIdx}
	n.left = t.buildNode(bestLeft)
	n.right = t.buildNode(bestRight)

	return n
}

// classify partitions candidates (excluding splitterIdx) into wholly-left,
// wholly-right and straddling the splitter's infinite line, using left_of
// on both endpoints against an epsilon tolerance.
func (t *Tree) classify(splitterIdx int, candidates []int) (left, right, straddle []int) {
	sp := t.segments[splitterIdx]
	for _, c := range candidates {
		if c == splitterIdx {
			continue
		}
		seg := t.segments[c]
		la := geometry.LeftOf(sp.A, sp.B, seg.A)
		lb := geometry.LeftOf(sp.A, sp.B, seg.B)
		switch {
		case la >= -epsilon && lb >= -epsilon:
			left = append(left, c)
		case la <= epsilon && lb <= epsilon:
			right = append(right, c)
		default:
			straddle = append(straddle, c)
		}
	}

	return left, right, straddle
}

// split cuts segment segIdx at its intersection with splitter's infinite
// line, appending two new synthetic segments to the arena (left-side half
// first, right-side half second) and returning their indices. Both inherit
// the convexity of the original segment, since the split introduces no new
// polygon vertex whose turn angle needs recomputing.
func (t *Tree) split(segIdx, splitterIdx int) (leftIdx, rightIdx int) {
	seg := t.segments[segIdx]
	sp := t.segments[splitterIdx]

	p, hit := geometry.SegmentSegment(seg.Geom(), geometry.Segment{A: extend(sp.A, sp.B, -1e6), B: extend(sp.A, sp.B, 1e6)})
	if !hit {
		// Degenerate (near-parallel within epsilon slipped through): treat
		// the whole segment as belonging to whichever side its midpoint
		// falls on rather than fail the build.
		mid := seg.A.Add(seg.B).Mul(0.5)
		if geometry.LeftOf(sp.A, sp.B, mid) >= 0 {
			t.segments = append(t.segments, seg)
			return len(t.segments) - 1, len(t.segments) - 1
		}
		t.segments = append(t.segments, seg)

		return len(t.segments) - 1, len(t.segments) - 1
	}

	half1 := Segment{A: seg.A, B: p, Convex: seg.Convex}
	half2 := Segment{A: p, B: seg.B, Convex: seg.Convex}
	half1.UnitDir, _ = geometry.SafeNormalize(half1.B.Sub(half1.A))
	half2.UnitDir, _ = geometry.SafeNormalize(half2.B.Sub(half2.A))

	t.segments = append(t.segments, half1, half2)
	i1 := len(t.segments) - 2
	i2 := len(t.segments) - 1

	if geometry.LeftOf(sp.A, sp.B, seg.A) >= 0 {
		return i1, i2
	}

	return i2, i1
}

func extend(a, b geometry.Point2, factor float64) geometry.Point2 {
	dir := b.Sub(a)

	return a.Add(dir.Mul(factor))
}
