package vehicle

import (
	"math"

	"github.com/lixenwraith/crossroads/road"
	"github.com/lixenwraith/crossroads/vmath"
)

// Snapshot is the read-only view of a vehicle shared within a tick
type Snapshot struct {
	ID       uint64
	Position vmath.Vec2
	Heading  road.Direction
	Origin   road.Direction
	Turn     road.TurnKind
}

// CanAdvance applies the following-distance rule. Only vehicles with the same
// current heading, laterally within tolerance and strictly ahead constrain
// self; moving by advance must leave at least MinFollow to each of them.
// Vehicles beside, behind, in other lanes or on other headings never block
func CanAdvance(self Snapshot, others []Snapshot, advance float64, rules Rules) bool {
	for _, o := range others {
		if o.ID == self.ID || !SameLane(self, o, rules.LateralTolerance) {
			continue
		}
		if gap := Gap(self, o); gap > 0 && gap-advance < rules.MinFollow {
			return false
		}
	}
	return true
}

// SameLane reports whether a and b share a heading and a lane
func SameLane(a, b Snapshot, tolerance float64) bool {
	if a.Heading != b.Heading {
		return false
	}
	return math.Abs(b.Position.Sub(a.Position).Dot(a.Heading.Right())) < tolerance
}

// Gap returns how far b is ahead of a along a's heading; negative when behind
func Gap(a, b Snapshot) float64 {
	return b.Position.Sub(a.Position).Dot(a.Heading.Unit())
}
