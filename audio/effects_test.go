package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/crossroads/constants"
)

const testRate = beep.SampleRate(44100)

// drain streams s to exhaustion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for guard := 0; guard < 10000; guard++ {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Max(math.Abs(buf[i][0]), math.Abs(buf[i][1])))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never drained")
	return 0, 0
}

// TestOscillatorSine verifies sine wave generation
func TestOscillatorSine(t *testing.T) {
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, testRate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("Expected 100 samples, got %d ok=%v", n, ok)
	}
	if samples[0][0] != 0 {
		t.Errorf("Sine should start at zero phase, got %f", samples[0][0])
	}
	for i := 0; i < n; i++ {
		if math.Abs(samples[i][0]) > 1 || samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d out of range or not mono: %v", i, samples[i])
		}
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestOscillatorSquare verifies square wave generation
func TestOscillatorSquare(t *testing.T) {
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, testRate)

	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1.0 && v != 1.0 {
			t.Errorf("Square wave sample %d should be -1.0 or 1.0, got %f", i, v)
		}
	}
}

// TestOscillatorLength verifies the oscillator stops after its duration
func TestOscillatorLength(t *testing.T) {
	osc := NewOscillator(120, 20*time.Millisecond, WaveSaw, testRate)

	n, peak := drain(t, osc)
	if n != testRate.N(20*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", testRate.N(20*time.Millisecond), n)
	}
	if peak > 1.0 {
		t.Errorf("Saw peak above 1: %f", peak)
	}
}

// TestEnvelopeRamps verifies attack starts silent and release ends near silent
func TestEnvelopeRamps(t *testing.T) {
	d := 50 * time.Millisecond
	osc := NewOscillator(0, time.Second, WaveSquare, testRate)
	env := NewEnvelope(osc, d, 10*time.Millisecond, 10*time.Millisecond, testRate)

	total := testRate.N(d)
	samples := make([][2]float64, total+10)
	n, _ := env.Stream(samples)

	if n != total {
		t.Fatalf("Expected envelope to cut at %d samples, got %d", total, n)
	}
	if samples[0][0] != 0 {
		t.Errorf("Attack should start silent, got %f", samples[0][0])
	}
	mid := samples[total/2][0]
	if mid != 1.0 {
		t.Errorf("Sustain should pass the input through, got %f", mid)
	}
	if last := samples[total-1][0]; last <= 0 || last > 0.01 {
		t.Errorf("Release should end near silence, got %f", last)
	}

	if n, ok := env.Stream(samples); n != 0 || ok {
		t.Errorf("Expected drained envelope, got n=%d ok=%v", n, ok)
	}
}

// TestCueLengths verifies every cue is finite and attenuated
func TestCueLengths(t *testing.T) {
	cases := []struct {
		kind CueKind
		min  int
		max  int
	}{
		{CueChime, testRate.N(constants.ChimeDuration) / 2, testRate.N(constants.ChimeDuration)},
		{CueOverride, 2 * testRate.N(constants.OverrideNoteDuration), 2 * testRate.N(constants.OverrideNoteDuration)},
		{CueBuzz, testRate.N(constants.BuzzDuration), testRate.N(constants.BuzzDuration)},
	}

	for _, tc := range cases {
		n, peak := drain(t, NewCue(tc.kind, testRate))
		if n < tc.min || n > tc.max {
			t.Errorf("%v: expected %d..%d samples, got %d", tc.kind, tc.min, tc.max, n)
		}
		if peak == 0 {
			t.Errorf("%v: silent cue", tc.kind)
		}
		if peak > 1+constants.CueGain+1e-9 {
			t.Errorf("%v: peak %f above cue gain", tc.kind, peak)
		}
	}

	if NewCue(cueKindCount, testRate) != nil {
		t.Error("Expected nil streamer for unknown cue")
	}
}
