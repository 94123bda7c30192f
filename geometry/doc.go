// Package geometry supplies the 2-D vector and shape primitives shared by
// the spatial index, the PPR pipeline and the ORCA solver: points, vectors,
// boxes and the ray/segment/circle intersection routines they are built on.
//
// All coordinates live on the horizontal plane (§3 of the simulation's data
// model projects vertical extent out of every steering and neighbour
// computation); geometry wraps github.com/go-gl/mathgl/mgl64 rather than
// hand-rolling vector math.
//
// Every query here is total: degenerate input (a zero-length segment, two
// parallel rays) reports a clean "no hit" instead of returning NaN or
// panicking.
package geometry
