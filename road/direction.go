package road

import (
	"fmt"

	"github.com/lixenwraith/crossroads/vmath"
)

// Direction is a heading of travel. Declaration order is the signal cycle order
type Direction uint8

const (
	North Direction = iota
	West
	South
	East
)

// Count is the number of directions; arrays indexed by Direction use it
const Count = 4

// Directions lists every direction in cycle order for exhaustive iteration
var Directions = [Count]Direction{North, West, South, East}

var directionNames = [Count]string{"North", "West", "South", "East"}

// unit vectors in screen space (y grows downward)
var directionUnits = [Count]vmath.Vec2{
	North: {X: 0, Y: -1},
	West:  {X: -1, Y: 0},
	South: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
}

func (d Direction) String() string {
	if int(d) < Count {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Valid reports whether d is one of the four headings
func (d Direction) Valid() bool {
	return d < Count
}

// Next returns the following direction in cycle order North → West → South → East → North
func (d Direction) Next() Direction {
	return (d + 1) % Count
}

// Unit returns the unit vector of travel
func (d Direction) Unit() vmath.Vec2 {
	return directionUnits[d%Count]
}

// Right returns the unit vector to the driver's right-hand side
func (d Direction) Right() vmath.Vec2 {
	return d.Unit().Perpendicular()
}

// RotateRight returns the heading after a 90° right turn: North → East → South → West
func (d Direction) RotateRight() Direction {
	// Cycle order is counter-clockwise, so a right turn steps back one
	return (d + Count - 1) % Count
}

// RotateLeft returns the heading after a 90° left turn: North → West → South → East
func (d Direction) RotateLeft() Direction {
	return d.Next()
}
