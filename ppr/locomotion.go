package ppr

import (
	"math"

	"github.com/steersuite/crowdsim/geometry"
)

// Integrate turns a SteeringCommand into new kinematics: the desired
// direction and speed are converted into a steering force capped at
// MaxForce and applied for dt, then the resulting velocity's direction is
// itself turn-limited to the command's TurningRate relative to the current
// forward (PPRAgent.cpp's updateOrientation) before the magnitude is
// clamped to MaxSpeed, so an agent never snaps to face a new heading in a
// single frame. Base.SetKinematics derives forward from the returned
// velocity, so capping the velocity's turn rate here is what makes that
// derived forward turn-limited too.
func Integrate(pos geometry.Point2, vel, forward geometry.Vector2, cmd SteeringCommand, dt float64, params Parameters) (newPos geometry.Point2, newVel geometry.Vector2) {
	desiredDir, ok := geometry.SafeNormalize(cmd.Direction)
	if !ok {
		desiredDir = forward
	}

	desiredVel := desiredDir.Mul(cmd.Speed)
	steering := desiredVel.Sub(vel)
	if l := steering.Len(); l > params.MaxForce {
		steering = steering.Mul(params.MaxForce / l)
	}

	candidate := vel.Add(steering.Mul(dt))
	speed := candidate.Len()

	turnedDir := turnTowards(forward, candidate, cmd.TurningRate)
	newVel = turnedDir.Mul(math.Min(speed, params.MaxSpeed))

	sideScoot := geometry.Rotate(forward, -1.5708).Mul(cmd.SideScoot * dt)
	newPos = pos.Add(newVel.Mul(dt)).Add(sideScoot)

	return newPos, newVel
}

// turnTowards rotates forward toward the direction of vel by at most
// maxAngle radians, preserving forward (and leaving vel's direction
// unused) when vel is too small to define a direction.
func turnTowards(forward, vel geometry.Vector2, maxAngle float64) geometry.Vector2 {
	target, ok := geometry.SafeNormalize(vel)
	if !ok {
		return forward
	}

	cos := clamp(forward.Dot(target), -1, 1)
	angle := math.Acos(cos)
	if angle <= maxAngle {
		return target
	}

	sign := 1.0
	if geometry.Det(forward, target) < 0 {
		sign = -1.0
	}

	return geometry.Rotate(forward, sign*maxAngle)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
