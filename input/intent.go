package input

import "github.com/lixenwraith/crossroads/road"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit        // Esc, q, Ctrl+C
	IntentTogglePause // p
	IntentToggleMute  // m
	IntentResize      // Terminal resize event

	// Traffic
	IntentSpawn       // Arrow keys, carries the heading
	IntentSpawnRandom // r
)

func (t IntentType) String() string {
	switch t {
	case IntentQuit:
		return "quit"
	case IntentTogglePause:
		return "pause"
	case IntentToggleMute:
		return "mute"
	case IntentResize:
		return "resize"
	case IntentSpawn:
		return "spawn"
	case IntentSpawnRandom:
		return "spawn-random"
	default:
		return "none"
	}
}

// Intent is a key resolved to an action
type Intent struct {
	Type IntentType
	// Heading is set for IntentSpawn
	Heading road.Direction
}
