package ppr

import (
	"fmt"

	"github.com/steersuite/crowdsim/core"
	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/gridgraph"
)

// NavGrid bridges world coordinates to gridgraph's cell-indexed *core.Graph,
// the mid-term planning surface long-term and mid-term phases search over.
// Hosting applications that want long/mid-term planning configure one via
// Module.SetNavGrid; without one, LongTermPhase degrades to a single
// straight-line waypoint at the goal.
type NavGrid struct {
	Grid     *gridgraph.GridGraph
	Graph    *core.Graph
	Origin   geometry.Point2
	CellSize float64
}

// NewNavGrid builds a NavGrid from an occupancy grid (see gridgraph's own
// LandThreshold/Conn semantics), anchored at origin in world space with
// each cell covering cellSize world units on a side. The core.Graph is
// built once here rather than per long-term-phase call.
func NewNavGrid(values [][]int, opts gridgraph.GridOptions, origin geometry.Point2, cellSize float64) (*NavGrid, error) {
	gg, err := gridgraph.NewGridGraph(values, opts)
	if err != nil {
		return nil, err
	}

	return &NavGrid{Grid: gg, Graph: gg.ToCoreGraph(), Origin: origin, CellSize: cellSize}, nil
}

// WorldToVertex maps a world position to its containing cell's vertex ID,
// clamped to the grid's bounds.
func (n *NavGrid) WorldToVertex(p geometry.Point2) string {
	x := int((p[0] - n.Origin[0]) / n.CellSize)
	y := int((p[1] - n.Origin[1]) / n.CellSize)
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= n.Grid.Width {
		x = n.Grid.Width - 1
	}
	if y >= n.Grid.Height {
		y = n.Grid.Height - 1
	}

	return fmt.Sprintf("%d,%d", x, y)
}

// IslandCount reports how many disconnected walkable regions the underlying
// occupancy grid contains (per gridgraph.Connectivity). A NavGrid built from
// a map with IslandCount() > 1 means some agents' start/goal pairs may never
// be reachable regardless of what planning.Reachable or FindPath report for
// any single query — useful as a one-time scenario-load diagnostic rather
// than a per-query check.
func (n *NavGrid) IslandCount() int {
	components := n.Grid.ConnectedComponents()
	count := 0
	for _, islands := range components {
		count += len(islands)
	}

	return count
}

// VertexToWorld maps a "x,y" vertex ID back to its cell centre in world
// space.
func (n *NavGrid) VertexToWorld(id string) geometry.Point2 {
	var x, y int
	fmt.Sscanf(id, "%d,%d", &x, &y)

	return geometry.NewPoint2(
		n.Origin[0]+(float64(x)+0.5)*n.CellSize,
		n.Origin[1]+(float64(y)+0.5)*n.CellSize,
	)
}

// MidTermPhase narrows the cached full-resolution long-term path down to
// the span between the agent's current position and its next waypoint, so
// short-term string-pulling only has to scan the locally relevant cells
// instead of the whole route.
func MidTermPhase(a *Agent) {
	full := a.MidTermPath()
	waypoints := a.Waypoints()
	if len(full) == 0 || len(waypoints) == 0 {
		return
	}

	next := waypoints[0]
	cut := nearestIndex(full, next)
	a.SetMidTermPath(full[:cut+1])
}

func nearestIndex(points []geometry.Point2, target geometry.Point2) int {
	best, bestDistSq := 0, -1.0
	for i, p := range points {
		d := p.Sub(target)
		distSq := d.Dot(d)
		if bestDistSq < 0 || distSq < bestDistSq {
			best, bestDistSq = i, distSq
		}
	}

	return best
}
