// Package core provides the thread-safe in-memory Graph that the rest of
// crowdsim builds its two very different graphs out of:
//
//   - engine.LoadModule and modharness.ResolveOrder each construct a small
//     directed, unweighted Graph of module names, add one edge per
//     declared dependency, and hand it to dfs.DetectCycles /
//     dfs.TopologicalSort before trusting a load order.
//   - gridgraph and ppr build a much larger weighted Graph over a
//     navigation mesh's "x,y" cell IDs, which planning.FindPath walks with
//     A* and planning.Reachable pre-flights with bfs.BFS over an
//     UnweightedView of the same mesh.
//
// Both shapes are the same Graph type; GraphOption just turns on the
// behaviors a given caller needs:
//
//   - Directed vs. undirected edges (WithDirected)
//   - Global vs. per-edge orientation in "mixed" graphs (WithMixedEdges + WithEdgeDirected)
//   - Weighted vs. unweighted edges (WithWeighted)
//   - Parallel edges / multi-graphs (WithMultiEdges)
//   - Self-loops (WithLoops)
//   - Constant-time edge operations via nested maps:
//     adjacencyList[from][to][edgeID] = struct{}{}
//   - Collision-free atomic Edge.ID generation ("e1", "e2", ...), or a
//     caller-chosen ID via WithID
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj)
//     to minimize lock contention under concurrency
//
// Configuration Options (GraphOption):
//
//	– WithDirected(defaultDirected bool)
//	    Sets the default orientation of new edges.
//	    • Directed graphs store only "from→to" pointers: engine's module
//	      graph uses this so a cycle always means a real dependency loop.
//	    • Undirected graphs mirror edges in adjacencyList[to][from]: a
//	      navigation mesh's cell-to-cell edges are typically undirected.
//
//	– WithMixedEdges()
//	    Allows per-edge overrides via EdgeOption.WithEdgeDirected().
//	    Without it, an override that differs from the graph's default
//	    direction returns ErrMixedEdgesNotAllowed.
//
//	– WithWeighted()
//	    Permits non-zero weights globally; otherwise AddEdge(weight≠0) → ErrBadWeight.
//	    The module graph stays unweighted (weight 0 on every edge); the
//	    navigation mesh turns this on so FindPath has a real cost to minimize.
//
//	– WithMultiEdges()
//	    Allows multiple parallel edges between the same endpoints.
//	    Otherwise a second AddEdge(from,to) → ErrMultiEdgeNotAllowed.
//
//	– WithLoops()
//	    Permits self-loops (from == to); otherwise AddEdge(v,v) → ErrLoopNotAllowed.
//
// EdgeOptions:
//
//	– WithEdgeDirected(directed bool)
//	    Override the graph's default direction per-edge (mixed mode only).
//	– WithID(id string)
//	    Give the edge a caller-chosen ID instead of the "e1", "e2", ...
//	    auto-generated sequence. AddEdge returns ErrDuplicateEdgeID if taken.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error         // O(1)
//	HasVertex(id string) bool          // O(1)
//	RemoveVertex(id string) error      // O(E)
//
//	// Edge lifecycle
//	AddEdge(from,to string, weight int64, opts ...EdgeOption) (edgeID string, err error) // O(1)†
//	RemoveEdge(edgeID string) error   // O(1)
//	HasEdge(from,to string) bool      // O(1)
//
//	// Query
//	Neighbors(id string) ([]*Edge, error)   // O(d·log d), loops appear once, multi-edges repeated
//	NeighborIDs(id string) ([]string, error)// O(d·log d), unique, sorted
//	AdjacencyList() map[string][]string      // O(V+E)
//	Vertices() []string                      // O(V·log V)
//	Edges() []*Edge                          // O(E·log E)
//
//	// Counts & degrees
//	Degree(id string) (in,out,undirected int, err error) // in/out counts + undirected count (loops, mirrors)
//	VertexCount() int                    // O(1)
//	EdgeCount() int                      // O(1)
//
//	// Maintenance
//	Clear()                              // O(1): reset maps, counter; preserve flags
//	FilterEdges(pred func(*Edge) bool)   // O(E): remove edges failing predicate
//
//	// Cloning and views
//	CloneEmpty() *Graph                  // O(V): copy vertices+flags only
//	Clone() *Graph                       // O(V+E): deep-copy vertices+edges+adjacency
//	UnweightedView(g *Graph) *Graph      // O(V+E): same topology, weights stripped
//	InducedSubgraph(g *Graph, keep map[string]bool) *Graph // O(V+E): vertex-filtered copy
//
//	// Shallow view
//	VerticesMap() map[string]*Vertex     // O(V): read-only copy of vertices
//	InternalVertices() map[string]*Vertex// live map (no locking!)
//
// Edge struct fields:
//
//	ID       string   // "e1", "e2", ... or caller-chosen via WithID
//	From     string   // source vertex ID
//	To       string   // destination vertex ID
//	Weight   int64    // cost/capacity (zero in unweighted graphs)
//	Directed bool     // true=one-way, false=bidirectional (mixed graphs only)
//
// Errors:
//
//		ErrEmptyVertexID       – zero-length vertex ID
//		ErrVertexNotFound      – missing vertex
//		ErrEdgeNotFound        – missing edge
//		ErrBadWeight           – non-zero weight on unweighted graph
//		ErrLoopNotAllowed      – self-loop when loops disabled
//		ErrMultiEdgeNotAllowed – parallel edge when multi-edges disabled
//		ErrMixedEdgesNotAllowed – per-edge override without mixed-mode
//		ErrDuplicateEdgeID     – WithID named an edge ID already in use
//
//	 also amortized constant time: atomic ID generation + nested-map insertion.
package core
