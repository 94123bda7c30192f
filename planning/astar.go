package planning

import (
	"container/heap"
	"fmt"

	"github.com/steersuite/crowdsim/bfs"
	"github.com/steersuite/crowdsim/core"
)

// FindPath computes a minimum-cost path from Options.Start to Options.Goal
// over the weighted navigation graph g, using the A* algorithm: vertices are
// explored in order of g-cost plus an admissible heuristic estimate of the
// remaining cost to Goal, which lets FindPath skip branches Dijkstra would
// still have to visit.
//
// Preconditions and validation (in order):
//  1. Start must be non-empty (ErrEmptySource).
//  2. g must be non-nil (ErrNilGraph).
//  3. g must be weighted (ErrUnweightedGraph).
//  4. g must contain Start and Goal (ErrVertexNotFound).
//  5. No edge in g may have negative weight (ErrNegativeWeight).
//
// Returns the ordered list of vertex IDs from Start to Goal inclusive, and
// the total path cost. ErrNoPath is returned if Goal is unreachable.
func FindPath(g *core.Graph, start, goal string, opts ...Option) ([]string, float64, error) {
	cfg := DefaultOptions(start, goal)
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Start == "" {
		return nil, 0, ErrEmptySource
	}
	if g == nil {
		return nil, 0, ErrNilGraph
	}
	if !g.Weighted() {
		return nil, 0, ErrUnweightedGraph
	}
	if !g.HasVertex(cfg.Start) {
		return nil, 0, fmt.Errorf("%w: start %q", ErrVertexNotFound, cfg.Start)
	}
	if !g.HasVertex(cfg.Goal) {
		return nil, 0, fmt.Errorf("%w: goal %q", ErrVertexNotFound, cfg.Goal)
	}

	for _, e := range g.Edges() {
		if e.Weight < 0 {
			return nil, 0, fmt.Errorf("%w: edge %s→%s weight=%d", ErrNegativeWeight, e.From, e.To, e.Weight)
		}
	}

	r := &runner{
		g:       g,
		options: cfg,
		gScore:  make(map[string]float64),
		prev:    make(map[string]string),
		closed:  make(map[string]bool),
	}

	return r.run()
}

// Reachable reports whether goal is connected to start in g, ignoring edge
// weights entirely. It is a cheap pre-flight check the engine runs before
// committing to a scenario whose navigation graph might be split into
// disconnected islands by static obstacles.
func Reachable(g *core.Graph, start, goal string) (bool, error) {
	if g == nil {
		return false, ErrNilGraph
	}
	if !g.HasVertex(start) {
		return false, fmt.Errorf("%w: start %q", ErrVertexNotFound, start)
	}
	if !g.HasVertex(goal) {
		return false, fmt.Errorf("%w: goal %q", ErrVertexNotFound, goal)
	}
	if start == goal {
		return true, nil
	}

	// bfs.BFS rejects weighted graphs outright, and the navigation mesh
	// FindPath runs against is weighted for its own A* search, so the
	// connectivity check runs over an unweighted view of the same
	// topology instead of re-walking it by hand.
	res, err := bfs.BFS(core.UnweightedView(g), start)
	if err != nil {
		return false, fmt.Errorf("planning: reachability search from %q: %w", start, err)
	}
	_, reached := res.Depth[goal]

	return reached, nil
}

// runner holds the mutable state for a single FindPath execution.
type runner struct {
	g       *core.Graph
	options Options
	gScore  map[string]float64 // best known cost from Start
	prev    map[string]string  // predecessor on the best path found so far
	closed  map[string]bool    // finalized vertices
	pq      openSet
}

func (r *runner) run() ([]string, float64, error) {
	r.gScore[r.options.Start] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &openItem{id: r.options.Start, f: r.options.Heuristic(r.options.Start, r.options.Goal)})

	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*openItem)
		u := item.id

		if r.closed[u] {
			continue
		}
		if u == r.options.Goal {
			return r.reconstruct(u), r.gScore[u], nil
		}
		if r.gScore[u] > r.options.MaxCost {
			continue
		}
		r.closed[u] = true

		if err := r.relax(u); err != nil {
			return nil, 0, err
		}
	}

	return nil, 0, ErrNoPath
}

func (r *runner) relax(u string) error {
	edges, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("planning: failed to get neighbors of %q: %w", u, err)
	}

	for _, e := range edges {
		if e.Directed && e.From != u {
			continue
		}
		v := e.To
		if r.closed[v] {
			continue
		}

		candidate := r.gScore[u] + float64(e.Weight)
		if candidate > r.options.MaxCost {
			continue
		}
		best, seen := r.gScore[v]
		if seen && candidate >= best {
			continue
		}

		r.gScore[v] = candidate
		r.prev[v] = u
		f := candidate + r.options.Heuristic(v, r.options.Goal)
		heap.Push(&r.pq, &openItem{id: v, f: f})
	}

	return nil
}

func (r *runner) reconstruct(goal string) []string {
	path := []string{goal}
	cur := goal
	for {
		p, ok := r.prev[cur]
		if !ok {
			break
		}
		path = append([]string{p}, path...)
		cur = p
	}

	return path
}

// openItem is a vertex queued for expansion, ordered by its f-score
// (gScore + heuristic estimate to goal).
type openItem struct {
	id string
	f  float64
}

// openSet is a min-heap of *openItem ordered by f ascending. Like dijkstra's
// priority queue this uses a lazy-decrease-key strategy: relax pushes a new
// entry instead of mutating one in place, and stale entries are discarded on
// pop via the closed set.
type openSet []*openItem

func (pq openSet) Len() int            { return len(pq) }
func (pq openSet) Less(i, j int) bool  { return pq[i].f < pq[j].f }
func (pq openSet) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *openSet) Push(x interface{}) { *pq = append(*pq, x.(*openItem)) }
func (pq *openSet) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
