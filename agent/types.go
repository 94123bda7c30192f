package agent

import (
	"errors"

	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/kdtree"
	"github.com/steersuite/crowdsim/obstaclebsp"
)

// Sentinel errors shared by every concrete agent kind.
var (
	// ErrUnsupportedGoalType is returned when an agent encounters a Goal
	// Kind it does not implement (spec.md §7's UnsupportedGoalType); the
	// caller disables the agent and continues the simulation.
	ErrUnsupportedGoalType = errors.New("agent: unsupported goal kind")

	// ErrZeroRadius is returned by New when radius <= 0, violating the
	// data model's radius > 0 invariant.
	ErrZeroRadius = errors.New("agent: radius must be positive")
)

// GoalKind enumerates the goal sum type's variants (§3).
type GoalKind int

const (
	// GoalSeekStatic is reached when the agent comes within Threshold of
	// Target.
	GoalSeekStatic GoalKind = iota
	// GoalBoxRegion is reached on circle/box overlap with Box.
	GoalBoxRegion
	// GoalRandom resolves Target lazily to a random point the first time
	// it becomes the current goal.
	GoalRandom
)

// Goal is one entry in an agent's FIFO goal queue.
type Goal struct {
	Kind      GoalKind
	Target    geometry.Point2
	Box       geometry.AABB
	Threshold float64
}

// Reached reports whether pos (with the given radius) satisfies this goal.
func (g Goal) Reached(pos geometry.Point2, radius float64) bool {
	switch g.Kind {
	case GoalSeekStatic, GoalRandom:
		return pos.Sub(g.Target).Len() <= g.Threshold
	case GoalBoxRegion:
		expanded := geometry.AABB{
			Min: geometry.NewPoint2(g.Box.Min[0]-radius, g.Box.Min[1]-radius),
			Max: geometry.NewPoint2(g.Box.Max[0]+radius, g.Box.Max[1]+radius),
		}

		return expanded.Contains(pos)
	default:
		return false
	}
}

// Steerable is the interface the engine dispatches through, gathered from
// spec.md §6's Agent interface and §9's virtual-dispatch design note.
type Steerable interface {
	ID() string
	Enabled() bool
	Position() geometry.Point2
	Forward() geometry.Vector2
	Velocity() geometry.Vector2
	Radius() float64

	UpdateAI(simTime, dt float64, frame int64) error
	Disable()
	Reset(initial Base)
	AddGoal(g Goal)
	ClearGoals()

	Intersects(r geometry.Ray) (t float64, hit bool)
	Overlaps(p geometry.Point2, radius float64) bool
	ComputePenetration(p geometry.Point2, radius float64) float64
}

// Base is the shared, embeddable state every concrete agent kind carries.
// It is not itself a Steerable: concrete kinds embed Base and supply
// UpdateAI.
type Base struct {
	id      string
	enabled bool

	pos      geometry.Point2
	forward  geometry.Vector2
	velocity geometry.Vector2
	radius   float64

	goals       []Goal
	current     *Goal
	waypoints   []geometry.Point2
	midTerm     []geometry.Point2
	localTarget geometry.Point2

	maxNeighbors         int
	maxObstacleNeighbors int
	neighbors            []kdtree.Neighbor
	obstacleNeighbors    []obstaclebsp.ObstacleNeighbor
}

// New constructs a Base in the disabled state with the given identity and
// physical parameters; callers enable it via Reset once an initial
// condition is available (mirrors spec.md's create-agent -> reset flow).
func New(id string, radius float64, maxNeighbors, maxObstacleNeighbors int) (*Base, error) {
	if radius <= 0 {
		return nil, ErrZeroRadius
	}

	return &Base{
		id:                   id,
		radius:               radius,
		maxNeighbors:         maxNeighbors,
		maxObstacleNeighbors: maxObstacleNeighbors,
	}, nil
}

// ElementID satisfies kdtree.Element so Base can be indexed directly by the
// agent spatial index.
func (b *Base) ElementID() string { return b.id }

// ID returns the agent's stable identifier.
func (b *Base) ID() string { return b.id }

// Enabled reports whether the agent currently participates in the
// simulation and the spatial index.
func (b *Base) Enabled() bool { return b.enabled }

// Position returns the agent's current position.
func (b *Base) Position() geometry.Point2 { return b.pos }

// Forward returns the agent's current facing unit vector; SetKinematics
// leaves it unchanged while the velocity is zero.
func (b *Base) Forward() geometry.Vector2 { return b.forward }

// Velocity returns the agent's current velocity.
func (b *Base) Velocity() geometry.Vector2 { return b.velocity }

// Radius returns the agent's physical radius.
func (b *Base) Radius() float64 { return b.radius }

// Disable marks the agent inactive; the engine removes it from the spatial
// index and registration order on the next tick boundary.
func (b *Base) Disable() { b.enabled = false }

// Reset reinitializes the agent from an initial condition and (re)enables
// it.
func (b *Base) Reset(initial Base) {
	b.pos = initial.pos
	b.forward = initial.forward
	b.velocity = initial.velocity
	if initial.radius > 0 {
		b.radius = initial.radius
	}
	b.goals = append([]Goal(nil), initial.goals...)
	b.current = nil
	b.waypoints = nil
	b.midTerm = nil
	b.enabled = true
}

// AddGoal appends g to the FIFO goal queue.
func (b *Base) AddGoal(g Goal) { b.goals = append(b.goals, g) }

// ClearGoals empties the goal queue and the current goal.
func (b *Base) ClearGoals() {
	b.goals = nil
	b.current = nil
}

// CurrentGoal returns the agent's active goal, or nil if none.
func (b *Base) CurrentGoal() *Goal { return b.current }

// AdvanceGoal pops the next goal off the FIFO queue into CurrentGoal,
// returning false (and disabling the agent, per the data model invariant
// "agents with empty goal queues become disabled within one tick") when
// none remain.
func (b *Base) AdvanceGoal() bool {
	if len(b.goals) == 0 {
		b.Disable()

		return false
	}
	g := b.goals[0]
	b.goals = b.goals[1:]
	b.current = &g

	return true
}

// Waypoints returns the long-term plan's waypoint list.
func (b *Base) Waypoints() []geometry.Point2 { return b.waypoints }

// SetWaypoints replaces the waypoint list (produced by long-term planning).
func (b *Base) SetWaypoints(w []geometry.Point2) { b.waypoints = w }

// MidTermPath returns the cell-indexed path to the next waypoint.
func (b *Base) MidTermPath() []geometry.Point2 { return b.midTerm }

// SetMidTermPath replaces the mid-term path.
func (b *Base) SetMidTermPath(p []geometry.Point2) { b.midTerm = p }

// LocalTarget returns the short-term steering target.
func (b *Base) LocalTarget() geometry.Point2 { return b.localTarget }

// SetLocalTarget replaces the short-term steering target.
func (b *Base) SetLocalTarget(p geometry.Point2) { b.localTarget = p }

// MaxNeighbors returns the configured bound on agent neighbours.
func (b *Base) MaxNeighbors() int { return b.maxNeighbors }

// MaxObstacleNeighbors returns the configured bound on obstacle segment
// neighbours.
func (b *Base) MaxObstacleNeighbors() int { return b.maxObstacleNeighbors }

// Neighbors returns the agent's bounded, sorted agent-neighbour list as of
// the last perceptive-phase update.
func (b *Base) Neighbors() []kdtree.Neighbor { return b.neighbors }

// SetNeighbors replaces the bounded agent-neighbour list, per the data
// model invariant that it never exceeds MaxNeighbors and stays sorted by
// ascending squared distance (kdtree.KNearest already guarantees both).
func (b *Base) SetNeighbors(n []kdtree.Neighbor) { b.neighbors = n }

// ObstacleNeighbors returns the agent's obstacle-segment neighbour list.
func (b *Base) ObstacleNeighbors() []obstaclebsp.ObstacleNeighbor { return b.obstacleNeighbors }

// SetObstacleNeighbors replaces the obstacle-segment neighbour list.
func (b *Base) SetObstacleNeighbors(n []obstaclebsp.ObstacleNeighbor) { b.obstacleNeighbors = n }

// SetKinematics updates position/forward/velocity in one call, enforcing
// the data model's "forward.length == 1 whenever velocity is nonzero"
// invariant: if v is effectively zero, forward is left unchanged rather
// than zeroed, so a momentarily-stopped agent keeps facing its last
// heading.
func (b *Base) SetKinematics(pos geometry.Point2, v geometry.Vector2) {
	b.pos = pos
	b.velocity = v
	if f, ok := geometry.SafeNormalize(v); ok {
		b.forward = f
	}
}

// Intersects reports whether ray r hits this agent's bounding circle.
func (b *Base) Intersects(r geometry.Ray) (float64, bool) {
	return geometry.RayCircle(r, geometry.Circle{Center: b.pos, Radius: b.radius})
}

// Overlaps reports whether a circle of the given radius centred at p
// overlaps this agent.
func (b *Base) Overlaps(p geometry.Point2, radius float64) bool {
	return p.Sub(b.pos).Len() <= b.radius+radius
}

// ComputePenetration returns how far a circle of the given radius centred
// at p penetrates into this agent (non-positive if it does not overlap).
func (b *Base) ComputePenetration(p geometry.Point2, radius float64) float64 {
	return geometry.PenetrationDepth(b.pos, b.radius+radius, p)
}
