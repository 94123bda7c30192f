// Package orca implements the ORCA/RVO2 local-avoidance velocity solve:
// neighbour collection, half-plane (ORCA line) construction against both
// obstacle segments and agent neighbours, and the 2-D linear program that
// picks the velocity closest to the agent's preferred velocity without
// violating any line.
//
// Ported from original_source/rvo2AI/src/RVO2DAgent.cpp into idiomatic Go:
// no exceptions, `det` expressed via mgl64's 2-D cross product, and
// `(ok bool)` returns in place of the original's early-return/throw mix.
package orca
