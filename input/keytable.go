package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/crossroads/road"
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Escape)
	SpecialKeys map[tcell.Key]Intent

	// Plain rune bindings
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default key bindings. Arrows name the heading
// of the new vehicle: Up sends a northbound car in from the bottom edge
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyEscape: {Type: IntentQuit},
			tcell.KeyCtrlC:  {Type: IntentQuit},
			tcell.KeyUp:     {Type: IntentSpawn, Heading: road.North},
			tcell.KeyDown:   {Type: IntentSpawn, Heading: road.South},
			tcell.KeyLeft:   {Type: IntentSpawn, Heading: road.West},
			tcell.KeyRight:  {Type: IntentSpawn, Heading: road.East},
		},

		Runes: map[rune]Intent{
			'q': {Type: IntentQuit},
			'p': {Type: IntentTogglePause},
			'm': {Type: IntentToggleMute},
			'r': {Type: IntentSpawnRandom},
		},
	}
}

// Lookup resolves a key event; unbound keys yield IntentNone
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.SpecialKeys[ev.Key()]
}
