package orca

import (
	"math"

	"github.com/steersuite/crowdsim/geometry"
)

// LinearProgram1 solves the 1-D linear program restricted to lines[lineNo]:
// find the point on that line, inside the disk of the given radius, that
// lies within every earlier half-plane lines[0:lineNo] and is closest (or,
// with dirOpt, most extreme along optVelocity). It reports ok=false when no
// such point exists.
func LinearProgram1(lines []Line, lineNo int, radius float64, optVelocity geometry.Vector2, dirOpt bool) (result geometry.Vector2, ok bool) {
	line := lines[lineNo]
	dotProduct := line.Point.Dot(line.Direction)
	discriminant := dotProduct*dotProduct + radius*radius - line.Point.Dot(line.Point)

	if discriminant < 0 {
		// Max speed disk fully invalidates this line.
		return geometry.Vector2{}, false
	}

	sqrtDiscriminant := math.Sqrt(discriminant)
	tLeft := -dotProduct - sqrtDiscriminant
	tRight := -dotProduct + sqrtDiscriminant

	for i := 0; i < lineNo; i++ {
		denominator := geometry.Det(line.Direction, lines[i].Direction)
		numerator := geometry.Det(lines[i].Direction, line.Point.Sub(lines[i].Point))

		if math.Abs(denominator) <= epsilon {
			// Lines lineNo and i are (almost) parallel.
			if numerator < 0 {
				return geometry.Vector2{}, false
			}

			continue
		}

		t := numerator / denominator
		if denominator >= 0 {
			tRight = math.Min(tRight, t)
		} else {
			tLeft = math.Max(tLeft, t)
		}

		if tLeft > tRight {
			return geometry.Vector2{}, false
		}
	}

	if dirOpt {
		if optVelocity.Dot(line.Direction) > 0 {
			result = line.Point.Add(line.Direction.Mul(tRight))
		} else {
			result = line.Point.Add(line.Direction.Mul(tLeft))
		}

		return result, true
	}

	t := line.Direction.Dot(optVelocity.Sub(line.Point))
	switch {
	case t < tLeft:
		result = line.Point.Add(line.Direction.Mul(tLeft))
	case t > tRight:
		result = line.Point.Add(line.Direction.Mul(tRight))
	default:
		result = line.Point.Add(line.Direction.Mul(t))
	}

	return result, true
}

// LinearProgram2 solves the 2-D linear program over every line in order,
// starting from optVelocity (or radius*optVelocity when dirOpt, which takes
// optVelocity as a unit direction) clipped to the max-speed disk, falling
// back to LinearProgram1 for each violated constraint in turn. failIdx
// equals len(lines) on full success, or the index of the first line that
// could not be satisfied.
func LinearProgram2(lines []Line, radius float64, optVelocity geometry.Vector2, dirOpt bool) (result geometry.Vector2, failIdx int) {
	switch {
	case dirOpt:
		result = optVelocity.Mul(radius)
	case optVelocity.Dot(optVelocity) > radius*radius:
		if n, ok := geometry.SafeNormalize(optVelocity); ok {
			result = n.Mul(radius)
		}
	default:
		result = optVelocity
	}

	for i, line := range lines {
		if geometry.Det(line.Direction, line.Point.Sub(result)) > 0 {
			prev := result
			r, ok := LinearProgram1(lines, i, radius, optVelocity, dirOpt)
			if !ok {
				return prev, i
			}
			result = r
		}
	}

	return result, len(lines)
}

// LinearProgram3 handles joint infeasibility: from beginLine onward, any
// line still violated by result is projected against every earlier agent
// line (lines[numObstLines:i]) to build a sub-problem solved as a direction
// optimization, keeping the previous result if that sub-solve itself fails
// (which only happens from floating-point error, since result is by
// construction already feasible for this reduced problem).
func LinearProgram3(lines []Line, numObstLines, beginLine int, radius float64, result geometry.Vector2) geometry.Vector2 {
	distance := 0.0

	for i := beginLine; i < len(lines); i++ {
		if geometry.Det(lines[i].Direction, lines[i].Point.Sub(result)) <= distance {
			continue
		}

		projLines := make([]Line, numObstLines, len(lines))
		copy(projLines, lines[:numObstLines])

		for j := numObstLines; j < i; j++ {
			var line Line

			determinant := geometry.Det(lines[i].Direction, lines[j].Direction)
			if math.Abs(determinant) <= epsilon {
				if lines[i].Direction.Dot(lines[j].Direction) > 0 {
					continue
				}
				line.Point = lines[i].Point.Add(lines[j].Point).Mul(0.5)
			} else {
				line.Point = lines[i].Point.Add(lines[i].Direction.Mul(
					geometry.Det(lines[j].Direction, lines[i].Point.Sub(lines[j].Point)) / determinant))
			}

			dir, ok := geometry.SafeNormalize(lines[j].Direction.Sub(lines[i].Direction))
			if !ok {
				continue
			}
			line.Direction = dir
			projLines = append(projLines, line)
		}

		prev := result
		perp := geometry.NewVector2(-lines[i].Direction[1], lines[i].Direction[0])
		r, failIdx := LinearProgram2(projLines, radius, perp, true)
		if failIdx < len(projLines) {
			// Should not happen: result is already feasible for this
			// reduced problem in principle. Keep the previous result.
			result = prev
		} else {
			result = r
		}

		distance = geometry.Det(lines[i].Direction, lines[i].Point.Sub(result))
	}

	return result
}

