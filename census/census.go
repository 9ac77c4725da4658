// Package census derives per-approach traffic statistics from the active vehicles.
package census

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/lixenwraith/crossroads/road"
)

// Counts holds one tally per approach, indexed by road.Direction
type Counts [road.Count]int

// Entrant is anything that entered the intersection from an approach
type Entrant interface {
	Origin() road.Direction
}

// Summarize counts entrants by origin heading. A vehicle that already turned
// still counts toward the approach it came from
func Summarize[E Entrant](entrants []E) Counts {
	var c Counts
	tally := lo.CountValuesBy(entrants, func(e E) road.Direction {
		return e.Origin()
	})
	for d, n := range tally {
		if d.Valid() {
			c[d] = n
		}
	}
	return c
}

// Busiest returns the direction with the highest count.
// Ties keep the first direction in cycle order North, West, South, East
func Busiest(c Counts) road.Direction {
	best := road.North
	for _, d := range road.Directions[1:] {
		if c[d] > c[best] {
			best = d
		}
	}
	return best
}

// Total returns the sum over all approaches
func (c Counts) Total() int {
	return lo.Sum(c[:])
}

func (c Counts) String() string {
	var b strings.Builder
	for i, d := range road.Directions {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%c:%d", d.String()[0], c[d])
	}
	return b.String()
}
