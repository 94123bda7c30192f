// Package obstaclebsp partitions the static scene's obstacle edges into a
// binary space partition, built during preprocess-simulation (§4.2). There
// is no incremental insertion: engine.AddObstacle and RemoveObstacle rebuild
// the whole tree from the full polygon set. Unlike the agent
// k-d tree, obstacle geometry never moves once the simulation starts, so
// the tree is built once and queried many times per tick.
//
// Segments form one or more closed polygons linked by Next/Prev indices
// into Tree.segments (the data model's cyclic-polygon invariant:
// segments[s].Next's Prev is s). Splitting a straddling segment during
// build allocates new synthetic segments into that same arena-owned slice
// rather than anywhere the caller has to manage lifetime for (an open
// question spec.md leaves to the implementation; resolved here as
// arena-style ownership by the Tree that created them).
package obstaclebsp
