package constants

import "time"

// Signal controller timing
const (
	// SignalCycle is how long a direction holds Green under round-robin
	SignalCycle = 3 * time.Second

	// SignalCheckInterval is the adaptive queue-pressure check cadence
	SignalCheckInterval = 1 * time.Second

	// SignalMinGreen is the minimum Green hold before an override may preempt it.
	// Zero lets an override fire at any check
	SignalMinGreen = 0 * time.Second

	// SignalOverrideMargin is how many vehicles the busiest approach must lead by
	SignalOverrideMargin = 1
)
