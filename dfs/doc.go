// Package dfs implements depth‑first search traversal, cycle detection,
// and topological sort on a core.Graph. In crowdsim it is exercised
// exclusively against the directed, unweighted module-dependency graphs
// engine.LoadModule and modharness.ResolveOrder build — one vertex per
// module, one edge per declared dependency — never against the weighted
// navigation mesh (that's bfs/planning's domain).
//
// What:
//
//   - DFS (Depth‑First Search): explores as far as possible along each
//     branch before backtracking. Supports:
//   - Pre‑order and post‑order hooks
//   - Cancellation via context.Context
//   - Depth limiting
//   - Neighbor filtering
//   - DetectCycles: enumerates all simple cycles in a module-dependency
//     graph using vertex coloring (White, Gray, Black) with back‑edge
//     recording and canonical signature deduplication, so engine.LoadModule
//     can refuse a scenario whose modules depend on each other circularly.
//   - TopologicalSort: computes the module initialization order for a
//     directed acyclic dependency graph, returning ErrCycleDetected if
//     DetectCycles should have been run first and wasn't.
//
// Why:
//   - Reject scenarios whose declared module dependencies form a cycle
//   - Compute a safe module initialization order once a scenario is accepted
//   - Share one traversal core (DFS) between both checks
//
// Key Types & Constants:
//
//   - VertexState: White, Gray, Black (visitation markers)
//   - Option: functional options for DFS behavior
//   - DFSOptions: holds Context, hooks, MaxDepth, FilterNeighbor
//   - DFSResult: collects post‑order, Depth, Parent, Visited maps
//
// Complexity:
//
//   - DFS:            Time O(V+E), Memory O(V)
//   - DetectCycles:   Time O(V+E + C*L), Memory O(V+L\_max)
//     (C=#cycles, L=avg cycle length; normalization is O(L), via Booth's minimal rotation)
//   - TopologicalSort\:Time O(V+E), Memory O(V)
//
// Errors:
//
//   - ErrGraphNil             graph pointer is nil
//   - ErrStartVertexNotFound  start vertex ID not in graph
//   - ErrCycleDetected        cycle discovered in DAG operations
//   - context.Canceled        DFS canceled via context
//   - hook errors             propagated from OnVisit or OnExit
//
// Functions:
//
//   - DFS(g \*core.Graph, startID string, opts ...Option) (\*DFSResult, error)
//     perform depth‑first traversal from startID
//   - DetectCycles(g \*core.Graph) (bool, \[]\[]string, error)
//     report existence and list of simple cycles
//   - TopologicalSort(g \*core.Graph) (\[]string, error)
//     return topological order or ErrCycleDetected
//   - DefaultOptions(), WithContext(), WithOnVisit(), WithOnExit(),
//     WithMaxDepth(), WithFilterNeighbor()
//
package dfs
