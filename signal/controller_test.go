package signal

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/crossroads/census"
	"github.com/lixenwraith/crossroads/road"
)

const tick = 20 * time.Millisecond

func defaultTiming() Timing {
	return Timing{
		Cycle:          3 * time.Second,
		CheckInterval:  1 * time.Second,
		MinGreen:       1 * time.Second,
		OverrideMargin: 1,
	}
}

func newTestController(t *testing.T, timing Timing) *Controller {
	t.Helper()
	return NewController(timing, road.NewGeometry(800, 600, 50, 40, 30))
}

func fixed(c census.Counts) func() census.Counts {
	return func() census.Counts { return c }
}

func runTicks(c *Controller, n int, counts func() census.Counts) []Switch {
	var switches []Switch
	for i := 0; i < n; i++ {
		if sw := c.Tick(tick, counts); sw.Changed() {
			switches = append(switches, sw)
		}
	}
	return switches
}

func TestNewControllerStartsNorthGreen(t *testing.T) {
	c := newTestController(t, defaultTiming())

	board := c.Board()
	assert.Equal(t, road.North, c.Green())
	assert.Equal(t, Green, board.State(road.North))
	assert.Equal(t, 1, board.GreenCount())

	for _, l := range c.Lights() {
		assert.Equal(t, l.Direction == road.North, l.State == Green)
	}
}

func TestRoundRobinAdvancesAfterOneCycle(t *testing.T) {
	c := newTestController(t, defaultTiming())
	idle := fixed(census.Counts{})

	// 149 ticks: 2.98s, still North
	require.Empty(t, runTicks(c, 149, idle))
	assert.Equal(t, road.North, c.Green())

	sw := c.Tick(tick, idle)
	assert.Equal(t, Switch{From: road.North, To: road.West, Reason: ReasonCycle}, sw)
	assert.Equal(t, Red, c.Board().State(road.North))
	assert.Equal(t, Green, c.Board().State(road.West))

	base, _ := c.Elapsed()
	assert.Zero(t, base)
}

func TestRoundRobinFullRotation(t *testing.T) {
	c := newTestController(t, defaultTiming())

	switches := runTicks(c, 4*150, fixed(census.Counts{}))
	require.Len(t, switches, 4)

	want := []road.Direction{road.West, road.South, road.East, road.North}
	for i, sw := range switches {
		assert.Equal(t, want[i], sw.To)
		assert.Equal(t, ReasonCycle, sw.Reason)
	}
}

func TestAdaptiveOverride(t *testing.T) {
	c := newTestController(t, defaultTiming())
	busy := fixed(census.Counts{road.North: 2, road.South: 10})

	require.Empty(t, runTicks(c, 49, busy))
	assert.Equal(t, road.North, c.Green())

	sw := c.Tick(tick, busy)
	assert.Equal(t, Switch{From: road.North, To: road.South, Reason: ReasonOverride}, sw)

	board := c.Board()
	assert.Equal(t, Green, board.State(road.South))
	assert.Equal(t, Red, board.State(road.North))
	assert.Equal(t, 1, board.GreenCount())

	base, check := c.Elapsed()
	assert.Zero(t, base)
	assert.Zero(t, check)
}

func TestOverrideRespectsMargin(t *testing.T) {
	c := newTestController(t, defaultTiming())

	// 3 does not exceed 2 + margin 1
	switches := runTicks(c, 50, fixed(census.Counts{road.North: 2, road.South: 3}))
	assert.Empty(t, switches)
	assert.Equal(t, road.North, c.Green())
}

func TestOverrideRespectsMinGreen(t *testing.T) {
	timing := defaultTiming()
	timing.MinGreen = 2 * time.Second
	c := newTestController(t, timing)
	busy := fixed(census.Counts{road.East: 6})

	require.Empty(t, runTicks(c, 50, busy), "first check at 1s is inside the hold")

	switches := runTicks(c, 50, busy)
	require.Len(t, switches, 1)
	assert.Equal(t, road.East, switches[0].To)
	assert.Equal(t, ReasonOverride, switches[0].Reason)
}

func TestOverridePreemptsCycle(t *testing.T) {
	timing := defaultTiming()
	timing.CheckInterval = 3 * time.Second
	c := newTestController(t, timing)

	// Check and cycle both fall due on tick 150; the override wins
	switches := runTicks(c, 150, fixed(census.Counts{road.South: 9}))
	require.Len(t, switches, 1)
	assert.Equal(t, road.South, switches[0].To)
	assert.Equal(t, ReasonOverride, switches[0].Reason)
}

func TestBusiestAlreadyGreenFallsBackToCycle(t *testing.T) {
	c := newTestController(t, defaultTiming())

	switches := runTicks(c, 150, fixed(census.Counts{road.North: 9}))
	require.Len(t, switches, 1)
	assert.Equal(t, ReasonCycle, switches[0].Reason)
	assert.Equal(t, road.West, switches[0].To)
}

func TestCensusConsultedOnlyWhenDue(t *testing.T) {
	c := newTestController(t, defaultTiming())
	calls := 0
	counts := func() census.Counts {
		calls++
		return census.Counts{}
	}

	runTicks(c, 250, counts)
	assert.Equal(t, 5, calls)
}

func TestExactlyOneGreenUnderRandomPressure(t *testing.T) {
	timing := defaultTiming()
	timing.MinGreen = 0
	timing.OverrideMargin = 0
	c := newTestController(t, timing)
	rng := rand.New(rand.NewSource(7))

	counts := func() census.Counts {
		var cs census.Counts
		for i := range cs {
			cs[i] = rng.Intn(12)
		}
		return cs
	}

	for i := 0; i < 20000; i++ {
		c.Tick(tick, counts)
		board := c.Board()
		require.Equal(t, 1, board.GreenCount(), "tick %d", i)
		g, ok := board.Green()
		require.True(t, ok)
		require.Equal(t, c.Green(), g)
	}
}

func TestNewControllerPanicsOnInvalidTiming(t *testing.T) {
	geom := road.NewGeometry(800, 600, 50, 40, 30)

	assert.Panics(t, func() { NewController(Timing{Cycle: 0, CheckInterval: time.Second}, geom) })
	assert.Panics(t, func() { NewController(Timing{Cycle: time.Second, CheckInterval: -1}, geom) })
	assert.Panics(t, func() {
		NewController(Timing{Cycle: time.Second, CheckInterval: time.Second, OverrideMargin: -1}, geom)
	})
}
