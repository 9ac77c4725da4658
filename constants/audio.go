package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// MinCueGap drops a cue that repeats within this window
	MinCueGap = 150 * time.Millisecond
)

// Switch chime (round-robin advance)
const (
	ChimeFrequency = 880.0
	ChimeDuration  = 180 * time.Millisecond
	ChimeAttack    = 5 * time.Millisecond
	ChimeRelease   = 120 * time.Millisecond
)

// Override two-tone (adaptive preemption)
const (
	OverrideLowFrequency  = 523.25
	OverrideHighFrequency = 783.99
	OverrideNoteDuration  = 110 * time.Millisecond
	OverrideAttack        = 5 * time.Millisecond
	OverrideRelease       = 60 * time.Millisecond
)

// Rejected spawn buzz
const (
	BuzzFrequency = 120.0
	BuzzDuration  = 120 * time.Millisecond
	BuzzAttack    = 5 * time.Millisecond
	BuzzRelease   = 40 * time.Millisecond
)

// Cue volume applied through the gain effect
const CueGain = -0.6
