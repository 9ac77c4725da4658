package constants

import "time"

// Simulation Loop Timing
const (
	// TickInterval is the fixed simulation step (50 ticks per second)
	TickInterval = 20 * time.Millisecond

	// RequestQueueSize is the buffer between the input poller and the runner
	RequestQueueSize = 64
)

// Spawn Timing
const (
	// SpawnDebounce is the minimum interval between accepted spawns
	SpawnDebounce = 400 * time.Millisecond

	// AutoSpawnInterval is the default random spawn cadence in headless mode
	AutoSpawnInterval = 600 * time.Millisecond

	// HeadlessTicks is the default run length for -headless
	HeadlessTicks = 3000
)
