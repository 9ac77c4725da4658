// Package vehicle models one car: its turn assignment, straight-line motion
// along fixed lanes, a single heading flip at the turn boundary, and the
// following-distance and signal gates that decide whether it moves this tick.
package vehicle

import (
	"time"

	"github.com/lixenwraith/crossroads/road"
	"github.com/lixenwraith/crossroads/signal"
	"github.com/lixenwraith/crossroads/vmath"
)

// boundaryEpsilon absorbs rounding when a vehicle is placed exactly on its turn point
const boundaryEpsilon = 1e-6

// Rand is the uniform integer source used for turn assignment
type Rand interface {
	Intn(n int) int
}

// Outcome reports what a step did
type Outcome uint8

const (
	Moved Outcome = iota
	BlockedByTraffic
	BlockedBySignal
)

func (o Outcome) String() string {
	switch o {
	case BlockedByTraffic:
		return "blocked-traffic"
	case BlockedBySignal:
		return "blocked-signal"
	default:
		return "moved"
	}
}

// Rules is the shared geometry and spacing every vehicle steps against
type Rules struct {
	Geometry road.Geometry
	// MinFollow is the minimum center-to-center gap to a vehicle ahead in the same lane
	MinFollow float64
	// LateralTolerance is the perpendicular distance under which two vehicles share a lane
	LateralTolerance float64
}

// Vehicle is one agent. Origin, destination and turn are fixed at creation;
// heading flips from origin to destination once and never reverts
type Vehicle struct {
	ID       uint64
	Position vmath.Vec2
	Speed    float64

	origin      road.Direction
	destination road.Direction
	turn        road.TurnKind
	heading     road.Direction
}

// New creates a vehicle entering on origin's lane with a uniformly drawn turn kind
func New(id uint64, origin road.Direction, spawn vmath.Vec2, speed float64, rng Rand) *Vehicle {
	return NewWithTurn(id, origin, road.TurnKindOf(rng.Intn(road.TurnKindCount)), spawn, speed)
}

// NewWithTurn creates a vehicle with a predetermined turn kind
func NewWithTurn(id uint64, origin road.Direction, turn road.TurnKind, spawn vmath.Vec2, speed float64) *Vehicle {
	return &Vehicle{
		ID:          id,
		Position:    spawn,
		Speed:       speed,
		origin:      origin,
		destination: turn.Destination(origin),
		turn:        turn,
		heading:     origin,
	}
}

// Origin returns the entry heading
func (v *Vehicle) Origin() road.Direction { return v.origin }

// Destination returns the exit heading
func (v *Vehicle) Destination() road.Direction { return v.destination }

// Turn returns the assigned maneuver
func (v *Vehicle) Turn() road.TurnKind { return v.turn }

// Heading returns the heading currently governing motion
func (v *Vehicle) Heading() road.Direction { return v.heading }

// Turned reports whether the heading already flipped to the destination
func (v *Vehicle) Turned() bool {
	return v.turn != road.Straight && v.heading == v.destination
}

// Snapshot captures the state other vehicles and renderers read
func (v *Vehicle) Snapshot() Snapshot {
	return Snapshot{
		ID:       v.ID,
		Position: v.Position,
		Heading:  v.heading,
		Origin:   v.origin,
		Turn:     v.turn,
	}
}

// Step advances the vehicle by one tick of dt. board and others are
// start-of-tick views; others may include the vehicle itself, matched by ID.
// A turning vehicle enters its destination lane only when the merge is clear
// and is held in its entry lane otherwise
func (v *Vehicle) Step(dt time.Duration, rules Rules, board signal.Board, others []Snapshot) Outcome {
	g := rules.Geometry
	reach := v.Speed * dt.Seconds()

	boundary, turns := g.TurnBoundary(v.origin, v.turn)
	if turns && v.heading == v.origin && g.Lead(v.Position, v.origin) >= boundary-boundaryEpsilon {
		if !v.mergeClear(others, reach, rules) {
			return BlockedByTraffic
		}
		v.heading = v.destination
	}

	advance := reach
	snapToTurn := false
	if turns && v.heading == v.origin {
		if remaining := boundary - g.Lead(v.Position, v.origin); remaining <= advance {
			advance = remaining
			snapToTurn = true
		}
	}

	if !CanAdvance(v.Snapshot(), others, advance, rules) {
		return BlockedByTraffic
	}

	if board.State(v.heading) == signal.Red && crossesStopLine(g, v.Position, v.heading, advance) {
		return BlockedBySignal
	}

	if snapToTurn {
		if !v.mergeClear(others, reach, rules) {
			return BlockedByTraffic
		}
		// Land exactly on the destination lane centerline
		v.Position, _ = g.TurnPoint(v.origin, v.turn)
		v.heading = v.destination
		return Moved
	}
	v.Position = v.Position.Add(v.heading.Unit().Scale(advance))
	return Moved
}

// mergeClear reports whether v may land on its destination lane at the turn
// point: nothing on that lane less than MinFollow ahead of the landing point,
// nothing less than MinFollow+reach behind it. Older vehicles landing on the
// same lane this tick count as already there
func (v *Vehicle) mergeClear(others []Snapshot, reach float64, rules Rules) bool {
	g := rules.Geometry
	point, _ := g.TurnPoint(v.origin, v.turn)
	landing := Snapshot{ID: v.ID, Position: point, Heading: v.destination, Origin: v.origin, Turn: v.turn}

	for _, o := range others {
		if o.ID == v.ID {
			continue
		}
		if o.Heading != v.destination {
			at, ok := landingWithin(g, o, reach)
			if !ok || o.ID > v.ID || at.Heading != v.destination {
				continue
			}
			o = at
		}
		if !SameLane(landing, o, rules.LateralTolerance) {
			continue
		}
		gap := Gap(landing, o)
		if gap >= 0 && gap < rules.MinFollow {
			return false
		}
		if gap < 0 && -gap < rules.MinFollow+reach {
			return false
		}
	}
	return true
}

// landingWithin returns where o lands if it is still on its entry lane and
// within reach of its turn point
func landingWithin(g road.Geometry, o Snapshot, reach float64) (Snapshot, bool) {
	boundary, turns := g.TurnBoundary(o.Origin, o.Turn)
	if !turns || o.Heading != o.Origin || boundary-g.Lead(o.Position, o.Origin) > reach {
		return Snapshot{}, false
	}
	point, _ := g.TurnPoint(o.Origin, o.Turn)
	return Snapshot{
		ID:       o.ID,
		Position: point,
		Heading:  o.Turn.Destination(o.Origin),
		Origin:   o.Origin,
		Turn:     o.Turn,
	}, true
}

// crossesStopLine reports whether moving by advance takes the leading edge
// from strictly before heading's stop line to at-or-after it
func crossesStopLine(g road.Geometry, p vmath.Vec2, heading road.Direction, advance float64) bool {
	lead := g.Lead(p, heading)
	stop := g.StopLine(heading)
	return lead < stop && lead+advance >= stop
}
