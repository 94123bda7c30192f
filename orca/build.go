package orca

import (
	"math"

	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/obstaclebsp"
)

// ComputeObstacleLines builds one ORCA half-plane per obstacle-segment
// neighbour not already covered by an earlier line, following
// original_source/rvo2AI/src/RVO2DAgent.cpp's computeNewVelocity obstacle
// loop: collision-with-vertex/segment short-circuits, then the oblique-view
// leg computation, foreign-leg detection via the segment's Next/Prev
// cyclic links, and finally a choice among cutoff circle, left leg, right
// leg or cutoff line, whichever the current velocity projects closest to.
func ComputeObstacleLines(tree *obstaclebsp.Tree, neighbors []obstaclebsp.ObstacleNeighbor, pos, vel geometry.Vector2, radius, timeHorizonObst float64) []Line {
	var lines []Line
	invTH := 1 / timeHorizonObst
	radiusSq := radius * radius

	for _, nb := range neighbors {
		obstacle1 := tree.Segment(nb.SegmentIndex)
		obstacle2 := tree.Segment(obstacle1.Next)

		relPos1 := obstacle1.A.Sub(pos)
		relPos2 := obstacle2.A.Sub(pos)

		if obstacleAlreadyCovered(lines, relPos1, relPos2, invTH, radius) {
			continue
		}

		distSq1 := relPos1.Dot(relPos1)
		distSq2 := relPos2.Dot(relPos2)

		obstacleVec := obstacle2.A.Sub(obstacle1.A)
		s := -relPos1.Dot(obstacleVec) / obstacleVec.Dot(obstacleVec)
		distSqLine := relPos1.Mul(-1).Sub(obstacleVec.Mul(s)).Dot(relPos1.Mul(-1).Sub(obstacleVec.Mul(s)))

		switch {
		case s < 0 && distSq1 <= radiusSq:
			if obstacle1.Convex {
				dir, ok := geometry.SafeNormalize(geometry.NewVector2(-relPos1[1], relPos1[0]))
				if ok {
					lines = append(lines, Line{Point: geometry.Vector2{}, Direction: dir})
				}
			}

			continue
		case s > 1 && distSq2 <= radiusSq:
			if obstacle2.Convex && geometry.Det(relPos2, obstacle2.UnitDir) >= 0 {
				dir, ok := geometry.SafeNormalize(geometry.NewVector2(-relPos2[1], relPos2[0]))
				if ok {
					lines = append(lines, Line{Point: geometry.Vector2{}, Direction: dir})
				}
			}

			continue
		case s >= 0 && s < 1 && distSqLine <= radiusSq:
			lines = append(lines, Line{Point: geometry.Vector2{}, Direction: obstacle1.UnitDir.Mul(-1)})

			continue
		}

		line, ok := obstacleLegLine(tree, obstacle1, obstacle2, relPos1, relPos2, distSq1, distSq2, s, distSqLine, pos, vel, radius, invTH)
		if ok {
			lines = append(lines, line)
		}
	}

	return lines
}

// obstacleAlreadyCovered reports whether an earlier ORCA line's half-plane
// already contains the velocity obstacle of the candidate obstacle, tested
// against both of its relative cutoff-projected endpoints.
func obstacleAlreadyCovered(lines []Line, relPos1, relPos2 geometry.Vector2, invTH, radius float64) bool {
	for _, l := range lines {
		c1 := geometry.Det(relPos1.Mul(invTH).Sub(l.Point), l.Direction) - invTH*radius
		c2 := geometry.Det(relPos2.Mul(invTH).Sub(l.Point), l.Direction) - invTH*radius
		if c1 >= -epsilon && c2 >= -epsilon {
			return true
		}
	}

	return false
}

// obstacleLegLine computes the no-collision branch: left/right leg
// directions (possibly reassigned to the oblique-view vertex, or clamped
// to a neighbouring edge's cutoff line when that leg would otherwise point
// into the neighbour), then projects the current velocity onto whichever
// of {left cutoff circle, right cutoff circle, cutoff line, left leg,
// right leg} it is nearest to.
func obstacleLegLine(tree *obstaclebsp.Tree, obstacle1, obstacle2 obstaclebsp.Segment, relPos1, relPos2 geometry.Vector2, distSq1, distSq2, s, distSqLine float64, pos, vel geometry.Vector2, radius, invTH float64) (Line, bool) {
	radiusSq := radius * radius

	var leftLeg, rightLeg geometry.Vector2
	sameVertex := false

	switch {
	case s < 0 && distSqLine <= radiusSq:
		if !obstacle1.Convex {
			return Line{}, false
		}
		obstacle2 = obstacle1
		sameVertex = true
		leg1 := math.Sqrt(distSq1 - radiusSq)
		leftLeg = geometry.NewVector2(relPos1[0]*leg1-relPos1[1]*radius, relPos1[0]*radius+relPos1[1]*leg1).Mul(1 / distSq1)
		rightLeg = geometry.NewVector2(relPos1[0]*leg1+relPos1[1]*radius, -relPos1[0]*radius+relPos1[1]*leg1).Mul(1 / distSq1)
	case s > 1 && distSqLine <= radiusSq:
		if !obstacle2.Convex {
			return Line{}, false
		}
		obstacle1 = obstacle2
		sameVertex = true
		leg2 := math.Sqrt(distSq2 - radiusSq)
		leftLeg = geometry.NewVector2(relPos2[0]*leg2-relPos2[1]*radius, relPos2[0]*radius+relPos2[1]*leg2).Mul(1 / distSq2)
		rightLeg = geometry.NewVector2(relPos2[0]*leg2+relPos2[1]*radius, -relPos2[0]*radius+relPos2[1]*leg2).Mul(1 / distSq2)
	default:
		if obstacle1.Convex {
			leg1 := math.Sqrt(distSq1 - radiusSq)
			leftLeg = geometry.NewVector2(relPos1[0]*leg1-relPos1[1]*radius, relPos1[0]*radius+relPos1[1]*leg1).Mul(1 / distSq1)
		} else {
			leftLeg = obstacle1.UnitDir.Mul(-1)
		}
		if obstacle2.Convex {
			leg2 := math.Sqrt(distSq2 - radiusSq)
			rightLeg = geometry.NewVector2(relPos2[0]*leg2+relPos2[1]*radius, -relPos2[0]*radius+relPos2[1]*leg2).Mul(1 / distSq2)
		} else {
			rightLeg = obstacle1.UnitDir
		}
	}

	leftNeighbor := tree.Segment(obstacle1.Prev)
	leftForeign, rightForeign := false, false

	if obstacle1.Convex && geometry.Det(leftLeg, leftNeighbor.UnitDir.Mul(-1)) >= 0 {
		leftLeg = leftNeighbor.UnitDir.Mul(-1)
		leftForeign = true
	}
	if obstacle2.Convex && geometry.Det(rightLeg, obstacle2.UnitDir) <= 0 {
		rightLeg = obstacle2.UnitDir
		rightForeign = true
	}

	leftCutoff := obstacle1.A.Sub(pos).Mul(invTH)
	rightCutoff := obstacle2.A.Sub(pos).Mul(invTH)
	cutoffVec := rightCutoff.Sub(leftCutoff)

	t := 0.5
	if !sameVertex {
		t = vel.Sub(leftCutoff).Dot(cutoffVec) / cutoffVec.Dot(cutoffVec)
	}
	tLeft := vel.Sub(leftCutoff).Dot(leftLeg)
	tRight := vel.Sub(rightCutoff).Dot(rightLeg)

	if (t < 0 && tLeft < 0) || (sameVertex && tLeft < 0 && tRight < 0) {
		unitW, ok := geometry.SafeNormalize(vel.Sub(leftCutoff))
		if !ok {
			return Line{}, false
		}

		return Line{
			Direction: geometry.NewVector2(unitW[1], -unitW[0]),
			Point:     leftCutoff.Add(unitW.Mul(radius * invTH)),
		}, true
	}
	if t > 1 && tRight < 0 {
		unitW, ok := geometry.SafeNormalize(vel.Sub(rightCutoff))
		if !ok {
			return Line{}, false
		}

		return Line{
			Direction: geometry.NewVector2(unitW[1], -unitW[0]),
			Point:     rightCutoff.Add(unitW.Mul(radius * invTH)),
		}, true
	}

	distSqCutoff := math.Inf(1)
	if !(t < 0 || t > 1 || sameVertex) {
		d := vel.Sub(leftCutoff.Add(cutoffVec.Mul(t)))
		distSqCutoff = d.Dot(d)
	}
	distSqLeft := math.Inf(1)
	if tLeft >= 0 {
		d := vel.Sub(leftCutoff.Add(leftLeg.Mul(tLeft)))
		distSqLeft = d.Dot(d)
	}
	distSqRight := math.Inf(1)
	if tRight >= 0 {
		d := vel.Sub(rightCutoff.Add(rightLeg.Mul(tRight)))
		distSqRight = d.Dot(d)
	}

	switch {
	case distSqCutoff <= distSqLeft && distSqCutoff <= distSqRight:
		dir := obstacle1.UnitDir.Mul(-1)

		return Line{Direction: dir, Point: leftCutoff.Add(geometry.NewVector2(-dir[1], dir[0]).Mul(radius * invTH))}, true
	case distSqLeft <= distSqRight:
		if leftForeign {
			return Line{}, false
		}

		return Line{Direction: leftLeg, Point: leftCutoff.Add(geometry.NewVector2(-leftLeg[1], leftLeg[0]).Mul(radius * invTH))}, true
	default:
		if rightForeign {
			return Line{}, false
		}
		dir := rightLeg.Mul(-1)

		return Line{Direction: dir, Point: rightCutoff.Add(geometry.NewVector2(-dir[1], dir[0]).Mul(radius * invTH))}, true
	}
}

// ComputeAgentLines builds one ORCA half-plane per agent neighbour,
// following the original's collision/no-collision split: when the
// neighbour is not already overlapping, the relative velocity projects
// either onto the cutoff circle or onto a leg depending on which side of
// the velocity-obstacle cone it falls; when already overlapping, the line
// is built from the current timestep's cutoff circle instead of the
// time-horizon one, so the pair is guaranteed to separate within one step.
func ComputeAgentLines(pos, vel geometry.Vector2, radius float64, neighbors []NeighborInfo, timeHorizon, dt float64) []Line {
	lines := make([]Line, 0, len(neighbors))
	invTH := 1 / timeHorizon

	for _, other := range neighbors {
		relPos := other.Position.Sub(pos)
		relVel := vel.Sub(other.Velocity)
		distSq := relPos.Dot(relPos)
		combinedRadius := radius + other.Radius
		combinedRadiusSq := combinedRadius * combinedRadius

		var dir, u geometry.Vector2

		if distSq > combinedRadiusSq {
			w := relVel.Sub(relPos.Mul(invTH))
			wLengthSq := w.Dot(w)
			dot1 := w.Dot(relPos)

			if dot1 < 0 && dot1*dot1 > combinedRadiusSq*wLengthSq {
				wLength := math.Sqrt(wLengthSq)
				unitW := w.Mul(1 / wLength)
				dir = geometry.NewVector2(unitW[1], -unitW[0])
				u = unitW.Mul(combinedRadius*invTH - wLength)
			} else {
				leg := math.Sqrt(distSq - combinedRadiusSq)
				if geometry.Det(relPos, w) > 0 {
					dir = geometry.NewVector2(relPos[0]*leg-relPos[1]*combinedRadius, relPos[0]*combinedRadius+relPos[1]*leg).Mul(1 / distSq)
				} else {
					dir = geometry.NewVector2(relPos[0]*leg+relPos[1]*combinedRadius, -relPos[0]*combinedRadius+relPos[1]*leg).Mul(-1 / distSq)
				}
				u = dir.Mul(relVel.Dot(dir)).Sub(relVel)
			}
		} else {
			invDt := 1 / dt
			w := relVel.Sub(relPos.Mul(invDt))
			wLength := w.Len()
			unitW := w
			if wLength > epsilon {
				unitW = w.Mul(1 / wLength)
			}
			dir = geometry.NewVector2(unitW[1], -unitW[0])
			u = unitW.Mul(combinedRadius*invDt - wLength)
		}

		lines = append(lines, Line{Point: vel.Add(u.Mul(0.5)), Direction: dir})
	}

	return lines
}
