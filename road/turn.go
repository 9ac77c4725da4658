package road

import "fmt"

// TurnKind is the maneuver a vehicle performs at the intersection
type TurnKind uint8

const (
	Straight TurnKind = iota
	LeftTurn
	RightTurn
)

// TurnKindCount is the size of the uniform draw used at vehicle creation
const TurnKindCount = 3

// TurnKinds lists every turn kind in draw order
var TurnKinds = [TurnKindCount]TurnKind{Straight, LeftTurn, RightTurn}

var turnNames = [TurnKindCount]string{"Straight", "LeftTurn", "RightTurn"}

func (k TurnKind) String() string {
	if int(k) < TurnKindCount {
		return turnNames[k]
	}
	return fmt.Sprintf("TurnKind(%d)", uint8(k))
}

// TurnKindOf maps a uniform draw in [0, TurnKindCount) to a turn kind
func TurnKindOf(i int) TurnKind {
	if i < 0 {
		i = -i
	}
	return TurnKinds[i%TurnKindCount]
}

// Destination returns the heading after performing k from origin
func (k TurnKind) Destination(origin Direction) Direction {
	switch k {
	case LeftTurn:
		return origin.RotateLeft()
	case RightTurn:
		return origin.RotateRight()
	default:
		return origin
	}
}
