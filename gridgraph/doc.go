// Package gridgraph treats a 2D occupancy grid as a graph, for use as the
// mid-term planning navigation mesh ppr.NewNavGrid builds and hands to
// planning.FindPath / planning.Reachable, plus connectivity diagnostics over
// the same grid.
//
// What:
//
//   - GridGraph wraps a rectangular [][]int grid with tunable LandThreshold.
//   - Identifies connected components (“islands”) of cells with value ≥ LandThreshold.
//   - Computes minimal conversions (0-1 BFS) to connect two island sets.
//   - Converts to a *core.Graph (ToCoreGraph) that planning.FindPath searches.
//
// Why:
//
//   - Convert a scenario's walkable/blocked map into a searchable mesh.
//   - Flag scenarios whose walkable area is split into unreachable islands
//     before any agent's path request discovers that the hard way.
//   - Compute the cheapest map edit that would merge two such islands.
//
// Complexity:
//
//   - ConnectedComponents: O(W×H×d), Memory: O(W×H)    (d = number of neighbors, 4 or 8).
//   - ExpandIsland:          O(W×H×d), Memory: O(W×H).
//   - ToCoreGraph:           O(W×H×d + E), Memory: O(W×H + E).
//
// Options:
//
//   - GridOptions.LandThreshold: minimum value considered "land".
//   - GridOptions.Conn: Conn4 (4-neighbors) or Conn8 (8-neighbors).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrComponentIndex: ExpandIsland was given an empty src or dst component.
//   - ErrNoPath: no conversion path exists between specified components.
//
package gridgraph
