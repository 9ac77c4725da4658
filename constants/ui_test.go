package constants

import (
	"testing"
	"time"
)

// TestTickStepMatchesSpeed verifies vehicles advance 2 units per tick
func TestTickStepMatchesSpeed(t *testing.T) {
	step := VehicleSpeed * TickInterval.Seconds()
	if step != 2.0 {
		t.Errorf("Expected 2 units per tick, got %f", step)
	}
}

// TestTimingDivisibility verifies every timer is a whole number of ticks
func TestTimingDivisibility(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
	}{
		{"Signal cycle", SignalCycle},
		{"Check interval", SignalCheckInterval},
		{"Min green", SignalMinGreen},
		{"Spawn debounce", SpawnDebounce},
		{"Auto spawn", AutoSpawnInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.duration%TickInterval != 0 {
				t.Errorf("%v is not a multiple of tick %v", tt.duration, TickInterval)
			}
		})
	}
}

// TestGeometryFits verifies the default vehicle fits its lane and following gap
func TestGeometryFits(t *testing.T) {
	if VehicleSize > LaneWidth {
		t.Errorf("Vehicle %f wider than lane %f", VehicleSize, LaneWidth)
	}
	if MinFollowDistance < VehicleSize {
		t.Errorf("Following distance %f shorter than vehicle %f", MinFollowDistance, VehicleSize)
	}
	if LateralTolerance > LaneWidth/2 {
		t.Errorf("Lateral tolerance %f reaches into the opposing lane", LateralTolerance)
	}
}
