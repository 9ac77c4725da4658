package signal

import (
	"github.com/lixenwraith/crossroads/road"
	"github.com/lixenwraith/crossroads/vmath"
)

// State is the aspect a light shows. There is no amber phase
type State uint8

const (
	Red State = iota
	Green
)

func (s State) String() string {
	if s == Green {
		return "Green"
	}
	return "Red"
}

// Light controls the stream whose current heading is Direction
type Light struct {
	Direction road.Direction
	State     State
	// StopLine is where the lane centerline meets the stop line
	StopLine vmath.Vec2
}

// Board is a read-only snapshot of all four aspects handed to vehicles each tick
type Board [road.Count]State

// State returns the aspect for heading d
func (b Board) State(d road.Direction) State {
	return b[d]
}

// Green returns the single direction showing Green, or false if none does
func (b Board) Green() (road.Direction, bool) {
	for _, d := range road.Directions {
		if b[d] == Green {
			return d, true
		}
	}
	return road.North, false
}

// GreenCount returns how many lights show Green; one in steady operation
func (b Board) GreenCount() int {
	n := 0
	for _, s := range b {
		if s == Green {
			n++
		}
	}
	return n
}
