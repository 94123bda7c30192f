package ppr

import (
	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/obstaclebsp"
)

// SteeringState is PPRAgent.cpp's STEERING_STATE_* enum: the reactive
// phase's coarse mode, persisted across frames on Agent so a single empty
// gap in the crowd doesn't flip STATE_WAIT_UNTIL_CLEAR straight back out
// (see Tracker.ClearFor).
type SteeringState int

const (
	StateNoThreat SteeringState = iota
	StateTurnTowardsTarget
	StateProactivelyAvoid
	StateWaitUntilClear
	// StateCooperateWithCrowd is retained for completeness: PPRAgent.cpp
	// dispatches on it, but nothing in this package's transition table
	// enters it (see the open question in DESIGN.md).
	StateCooperateWithCrowd
)

// Situation classifies what the feeler rays are currently reporting,
// mirroring PPRAgent.cpp's situation analysis ahead of its steering
// dispatch.
type Situation int

const (
	SituationNoThreats Situation = iota
	Situation1Agent
	Situation2Agents
	Situation3Agents
	SituationStaticOnly
	SituationStaticPlus1Agent
	SituationStaticPlus2Agents
	SituationUnknown
)

// FeelerKind distinguishes what a feeler ray struck.
type FeelerKind int

const (
	FeelerNone FeelerKind = iota
	FeelerAgent
	FeelerObstacle
)

// FeelerHit is one ray's result.
type FeelerHit struct {
	Kind FeelerKind
	Dist float64
}

// feelerAngles are this package's five fixed ray bearings (radians,
// measured from forward), in the order forward, left-front, right-front,
// left-side, right-side.
var feelerAngles = [5]float64{0, 0.70, -0.70, 1.5708, -1.5708}

// CastFeelers traces the five reactive feelers out to length (already
// clamped to [FeelerMinLength, FeelerMaxLength] by the caller), against
// both the obstacle BSP and the neighbour set, and returns the nearest hit
// on each ray.
func CastFeelers(pos geometry.Point2, forward geometry.Vector2, length float64, obstacleTree *obstaclebsp.Tree, neighbors []NeighborInfo, selfRadius float64) [5]FeelerHit {
	var hits [5]FeelerHit
	for i, angle := range feelerAngles {
		dir := geometry.Rotate(forward, angle)
		ray := geometry.Ray{Origin: pos, Dir: dir}

		best := FeelerHit{Kind: FeelerNone, Dist: length}

		if obstacleTree != nil {
			if _, t, hit := obstacleTree.RayTrace(ray); hit && t <= best.Dist {
				best = FeelerHit{Kind: FeelerObstacle, Dist: t}
			}
		}

		for _, n := range neighbors {
			circle := geometry.Circle{Center: n.Position, Radius: n.Radius + selfRadius}
			if t, hit := geometry.RayCircle(ray, circle); hit && t <= best.Dist {
				best = FeelerHit{Kind: FeelerAgent, Dist: t}
			}
		}

		hits[i] = best
	}

	return hits
}

// DeriveSituation buckets the five feeler hits into a Situation, counting
// how many rays found an agent versus a static obstacle.
func DeriveSituation(hits [5]FeelerHit) Situation {
	agents, statics := 0, 0
	for _, h := range hits {
		switch h.Kind {
		case FeelerAgent:
			agents++
		case FeelerObstacle:
			statics++
		}
	}

	switch {
	case agents == 0 && statics == 0:
		return SituationNoThreats
	case statics == 0 && agents == 1:
		return Situation1Agent
	case statics == 0 && agents == 2:
		return Situation2Agents
	case statics == 0 && agents >= 3:
		return Situation3Agents
	case agents == 0 && statics > 0:
		return SituationStaticOnly
	case agents == 1 && statics > 0:
		return SituationStaticPlus1Agent
	case agents >= 2 && statics > 0:
		return SituationStaticPlus2Agents
	default:
		return SituationUnknown
	}
}

// NextSteeringState advances the persisted steering state given the
// current threat list and the facing error toward the local target
// (cos of the angle between forward and the direction to target).
func NextSteeringState(current SteeringState, facingCos float64, tracker *Tracker, params Parameters) SteeringState {
	if current == StateWaitUntilClear {
		clearFor := durationSeconds(params.ClearPathMinTime)
		if !tracker.ClearFor(clearFor) {
			return StateWaitUntilClear
		}
	}

	imminent := CountImminent(tracker.Threats())

	switch {
	case imminent == 0:
		if facingCos < params.WrongDirectionDotThreshold {
			return StateTurnTowardsTarget
		}

		return StateNoThreat
	case imminent >= params.FeelingCrowdedThreshold:
		return StateWaitUntilClear
	default:
		return StateProactivelyAvoid
	}
}

// SteeringCommand is the reactive phase's output to locomotion: a desired
// direction, target speed, and a turning-rate cap for this tick.
type SteeringCommand struct {
	Direction   geometry.Vector2
	Speed       float64
	TurningRate float64
	SideScoot   float64
}

// Dispatch produces the steering command for the current state/situation
// pair, following PPRAgent.cpp's per-state strength constants: ordinary
// steering toward the local target is gentle (OrdinarySteeringStrength),
// oncoming threats get a firm sideways bias (OncomingThreatAvoidanceStrength)
// scooted right to break symmetry, and crossing threats get a sharper
// cross-cutting correction (CrossThreatAvoidanceStrength).
func Dispatch(state SteeringState, situation Situation, toTarget, forward geometry.Vector2, threats []Threat, params Parameters) SteeringCommand {
	right := geometry.Rotate(forward, -1.5708)

	switch state {
	case StateWaitUntilClear:
		return SteeringCommand{Direction: forward, Speed: 0, TurningRate: params.AdjustmentTurnRate}

	case StateTurnTowardsTarget:
		return SteeringCommand{
			Direction:   toTarget,
			Speed:       params.TypicalSpeed * params.SlightlySlowerSpeedFactor,
			TurningRate: params.CorneringTurnRate,
		}

	case StateProactivelyAvoid:
		dir := toTarget
		scoot := 0.0
		turnRate := params.TypicalAvoidanceTurnRate
		for _, th := range threats {
			if !th.Imminent {
				continue
			}
			switch th.Kind {
			case ThreatOncoming:
				dir = dir.Add(right.Mul(params.OncomingThreatAvoidanceStrength))
				scoot += params.ScootRate
				turnRate = params.FasterAvoidanceTurnRate
			default:
				dir = dir.Add(right.Mul(params.CrossThreatAvoidanceStrength))
				turnRate = params.FasterAvoidanceTurnRate
			}
		}

		speed := params.TypicalSpeed
		if situation == SituationStaticPlus2Agents || situation == Situation3Agents {
			speed *= params.SlowerSpeedFactor
		}

		return SteeringCommand{Direction: dir, Speed: speed, TurningRate: turnRate, SideScoot: scoot}

	case StateCooperateWithCrowd:
		return SteeringCommand{
			Direction:   toTarget.Add(right.Mul(params.CrowdInfluenceFactor)),
			Speed:       params.TypicalSpeed * params.TypicalSpeedFactor,
			TurningRate: params.AdjustmentTurnRate,
		}

	default: // StateNoThreat
		return SteeringCommand{
			Direction:   toTarget,
			Speed:       params.TypicalSpeed,
			TurningRate: params.OrdinarySteeringStrength,
		}
	}
}
