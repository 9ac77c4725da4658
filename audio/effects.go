package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/crossroads/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer of duration that ends on its own
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream and cuts it at duration
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if remaining := e.totalSamples - e.position; remaining < len(samples) {
		samples = samples[:max(remaining, 0)]
	}
	if len(samples) == 0 {
		return 0, false
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withGain scales a cue by 1+gain; gain in [-1, 0] attenuates
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	return &effects.Gain{Streamer: s, Gain: gain}
}

// CueKind names the sounds the simulation can trigger
type CueKind uint8

const (
	CueChime    CueKind = iota // Round-robin switch
	CueOverride                // Adaptive override
	CueBuzz                    // Rejected spawn

	cueKindCount
)

func (k CueKind) String() string {
	switch k {
	case CueChime:
		return "chime"
	case CueOverride:
		return "override"
	case CueBuzz:
		return "buzz"
	default:
		return "unknown"
	}
}

// NewChime generates a soft sine ding with an octave overtone
func NewChime(rate beep.SampleRate) beep.Streamer {
	fund, err := generators.SineTone(rate, constants.ChimeFrequency)
	if err != nil {
		// Only fails above Nyquist; fall back to the local oscillator
		fund = NewOscillator(constants.ChimeFrequency, constants.ChimeDuration, WaveSine, rate)
	}
	fundShaped := NewEnvelope(fund, constants.ChimeDuration, constants.ChimeAttack, constants.ChimeRelease, rate)

	over := NewOscillator(2*constants.ChimeFrequency, constants.ChimeDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, constants.ChimeDuration, constants.ChimeAttack, constants.ChimeRelease/2, rate)

	mixed := beep.Mix(
		withGain(fundShaped, -0.3),
		withGain(overShaped, -0.7),
	)
	return withGain(beep.Take(rate.N(constants.ChimeDuration), mixed), constants.CueGain)
}

// NewOverrideTone generates a rising two-note square pair
func NewOverrideTone(rate beep.SampleRate) beep.Streamer {
	n1 := NewOscillator(constants.OverrideLowFrequency, constants.OverrideNoteDuration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, constants.OverrideNoteDuration, constants.OverrideAttack, constants.OverrideRelease, rate)

	n2 := NewOscillator(constants.OverrideHighFrequency, constants.OverrideNoteDuration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, constants.OverrideNoteDuration, constants.OverrideAttack, constants.OverrideRelease, rate)

	return withGain(beep.Seq(n1Shaped, n2Shaped), constants.CueGain)
}

// NewBuzz generates a short low saw buzz
func NewBuzz(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(constants.BuzzFrequency, constants.BuzzDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, constants.BuzzDuration, constants.BuzzAttack, constants.BuzzRelease, rate)
	return withGain(shaped, constants.CueGain)
}

// NewCue returns a fresh streamer for kind, or nil for an unknown kind
func NewCue(kind CueKind, rate beep.SampleRate) beep.Streamer {
	switch kind {
	case CueChime:
		return NewChime(rate)
	case CueOverride:
		return NewOverrideTone(rate)
	case CueBuzz:
		return NewBuzz(rate)
	default:
		return nil
	}
}
