package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Speaker is the system audio device fed through one mixer
type Speaker struct {
	mixer *beep.Mixer
	rate  beep.SampleRate
}

// OpenSpeaker initializes the device. Failure is expected on headless hosts
// and callers continue without sound
func OpenSpeaker(rate beep.SampleRate, buffer time.Duration) (*Speaker, error) {
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}, rate: rate}
	speaker.Play(s.mixer)
	return s, nil
}

// Play implements Output
func (s *Speaker) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Rate returns the device sample rate
func (s *Speaker) Rate() beep.SampleRate {
	return s.rate
}

// Close drops pending cues and releases the device
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
