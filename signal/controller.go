// Package signal implements the four-way light controller: a round-robin base
// cycle with an adaptive override toward the approach under most pressure.
package signal

import (
	"fmt"
	"time"

	"github.com/lixenwraith/crossroads/census"
	"github.com/lixenwraith/crossroads/road"
)

// Reason tells why Green moved
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonCycle
	ReasonOverride
)

func (r Reason) String() string {
	switch r {
	case ReasonCycle:
		return "cycle"
	case ReasonOverride:
		return "override"
	default:
		return "none"
	}
}

// Switch describes a Green transfer produced by a tick; the zero value means no change
type Switch struct {
	From   road.Direction
	To     road.Direction
	Reason Reason
}

// Changed reports whether Green moved
func (s Switch) Changed() bool {
	return s.Reason != ReasonNone
}

// Timing configures the controller. All durations must be positive except
// MinGreen, which may be zero to let an override fire at any check
type Timing struct {
	Cycle          time.Duration
	CheckInterval  time.Duration
	MinGreen       time.Duration
	OverrideMargin int
}

// Controller owns the four lights. Exactly one shows Green after every call
type Controller struct {
	timing Timing
	lights [road.Count]Light
	green  road.Direction

	baseTimer  time.Duration
	checkTimer time.Duration
}

// NewController starts with North Green. Invalid timing is a caller bug and panics;
// config validation rejects it before construction
func NewController(timing Timing, geom road.Geometry) *Controller {
	if timing.Cycle <= 0 || timing.CheckInterval <= 0 {
		panic(fmt.Sprintf("signal: non-positive timing %+v", timing))
	}
	if timing.MinGreen < 0 || timing.OverrideMargin < 0 {
		panic(fmt.Sprintf("signal: negative hold or margin %+v", timing))
	}

	c := &Controller{timing: timing, green: road.North}
	for _, d := range road.Directions {
		c.lights[d] = Light{
			Direction: d,
			State:     Red,
			StopLine:  geom.StopLinePoint(d),
		}
	}
	c.lights[road.North].State = Green
	return c
}

// Tick advances both timers by dt. counts is evaluated only when the adaptive
// check is due. An override preempts the round-robin advance for the tick
func (c *Controller) Tick(dt time.Duration, counts func() census.Counts) Switch {
	c.baseTimer += dt
	c.checkTimer += dt

	if c.checkTimer >= c.timing.CheckInterval {
		c.checkTimer = 0
		if sw := c.maybeOverride(counts()); sw.Changed() {
			return sw
		}
	}

	if c.baseTimer >= c.timing.Cycle {
		return c.switchTo(c.green.Next(), ReasonCycle)
	}
	return Switch{}
}

// maybeOverride moves Green to the busiest approach when it outnumbers the
// current Green approach by more than the margin and the minimum hold elapsed
func (c *Controller) maybeOverride(counts census.Counts) Switch {
	busiest := census.Busiest(counts)
	if busiest == c.green {
		return Switch{}
	}
	if counts[busiest] <= counts[c.green]+c.timing.OverrideMargin {
		return Switch{}
	}
	if c.baseTimer < c.timing.MinGreen {
		return Switch{}
	}
	return c.switchTo(busiest, ReasonOverride)
}

func (c *Controller) switchTo(d road.Direction, reason Reason) Switch {
	sw := Switch{From: c.green, To: d, Reason: reason}
	c.lights[c.green].State = Red
	c.lights[d].State = Green
	c.green = d
	c.baseTimer = 0
	return sw
}

// Green returns the direction currently holding right-of-way
func (c *Controller) Green() road.Direction {
	return c.green
}

// Board returns a value snapshot of the four aspects
func (c *Controller) Board() Board {
	var b Board
	for _, d := range road.Directions {
		b[d] = c.lights[d].State
	}
	return b
}

// Lights returns copies of the four lights in cycle order
func (c *Controller) Lights() [road.Count]Light {
	return c.lights
}

// Elapsed returns time since the last Green change and since the last adaptive check
func (c *Controller) Elapsed() (base, check time.Duration) {
	return c.baseTimer, c.checkTimer
}
