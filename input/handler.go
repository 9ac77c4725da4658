// Package input turns terminal events into runner commands.
package input

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/crossroads/engine"
)

// Handler translates tcell events. Mute and resize are handled locally
// through callbacks; everything else becomes an engine.Command
type Handler struct {
	keys *KeyTable

	// OnMute is called for IntentToggleMute
	OnMute func()
	// OnResize is called for terminal resize events
	OnResize func()
}

// NewHandler creates a handler over the given bindings; nil means DefaultKeyTable
func NewHandler(keys *KeyTable) *Handler {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Handler{keys: keys}
}

// Resolve maps an event to an intent
func (h *Handler) Resolve(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.keys.Lookup(ev)
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	default:
		return Intent{}
	}
}

// Translate resolves ev and returns the command to forward, if any
func (h *Handler) Translate(ev tcell.Event) (engine.Command, bool) {
	intent := h.Resolve(ev)

	var cmd engine.Command
	switch intent.Type {
	case IntentQuit:
		cmd.Stop = true
	case IntentTogglePause:
		cmd.TogglePause = true
	case IntentSpawn:
		cmd.Spawn[intent.Heading] = true
	case IntentSpawnRandom:
		cmd.Random = true
	case IntentToggleMute:
		if h.OnMute != nil {
			h.OnMute()
		}
		return cmd, false
	case IntentResize:
		if h.OnResize != nil {
			h.OnResize()
		}
		return cmd, false
	default:
		return cmd, false
	}
	return cmd, true
}

// EventSource is the part of tcell.Screen the poller reads from
type EventSource interface {
	PollEvent() tcell.Event
}

// Poll reads events from src until it returns nil (the screen was finalized)
// or a quit is forwarded. Commands block on out unless ctx is done
func (h *Handler) Poll(ctx context.Context, src EventSource, out chan<- engine.Command) error {
	for {
		ev := src.PollEvent()
		if ev == nil {
			return nil
		}
		cmd, ok := h.Translate(ev)
		if !ok {
			continue
		}
		select {
		case out <- cmd:
		case <-ctx.Done():
			return nil
		}
		if cmd.Stop {
			return nil
		}
	}
}
