// Package audio plays short synthesized cues for signal switches and
// rejected spawns. Audio is optional: a muted or absent output never affects
// the simulation.
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/crossroads/constants"
	"github.com/lixenwraith/crossroads/engine"
	"github.com/lixenwraith/crossroads/signal"
	"github.com/lixenwraith/crossroads/status"
)

// minCueGap is a variable so tests can shorten it
var minCueGap = constants.MinCueGap

// Output accepts finished cue streamers
type Output interface {
	Play(s beep.Streamer)
}

// Cues maps tick reports to sounds. It implements engine.Observer
type Cues struct {
	mu   sync.Mutex
	out  Output
	rate beep.SampleRate
	now  func() time.Time

	lastPlayed [cueKindCount]time.Time

	muted       *atomic.Bool
	statPlayed  *atomic.Int64
	statSkipped *atomic.Int64
}

var _ engine.Observer = (*Cues)(nil)

// NewCues plays into out at rate. A nil out leaves every cue silent
func NewCues(out Output, rate beep.SampleRate, reg *status.Registry) *Cues {
	return &Cues{
		out:         out,
		rate:        rate,
		now:         time.Now,
		muted:       reg.Bools.Get("audio.muted"),
		statPlayed:  reg.Ints.Get("audio.played"),
		statSkipped: reg.Ints.Get("audio.skipped"),
	}
}

// Observe implements engine.Observer. An override wins over a cycle chime;
// any rejected spawn adds a buzz
func (c *Cues) Observe(rep engine.Report) {
	switch rep.Switch.Reason {
	case signal.ReasonOverride:
		c.Play(CueOverride)
	case signal.ReasonCycle:
		c.Play(CueChime)
	}
	if len(rep.Rejected) > 0 {
		c.Play(CueBuzz)
	}
}

// Play queues one cue unless muted or the same cue played within MinCueGap
func (c *Cues) Play(kind CueKind) {
	if c.out == nil || c.muted.Load() || kind >= cueKindCount {
		return
	}

	c.mu.Lock()
	now := c.now()
	if now.Sub(c.lastPlayed[kind]) < minCueGap {
		c.mu.Unlock()
		c.statSkipped.Add(1)
		return
	}
	c.lastPlayed[kind] = now
	c.mu.Unlock()

	c.out.Play(NewCue(kind, c.rate))
	c.statPlayed.Add(1)
}

// ToggleMute flips the mute flag and returns the new state
func (c *Cues) ToggleMute() bool {
	for {
		old := c.muted.Load()
		if c.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetMuted sets the mute flag
func (c *Cues) SetMuted(muted bool) {
	c.muted.Store(muted)
}

// Muted reports the mute flag
func (c *Cues) Muted() bool {
	return c.muted.Load()
}
