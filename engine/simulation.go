// Package engine owns the simulation state and advances it in fixed ticks:
// spawn gating, the signal controller, vehicle steps and eviction.
package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/samber/lo"

	"github.com/lixenwraith/crossroads/census"
	"github.com/lixenwraith/crossroads/config"
	"github.com/lixenwraith/crossroads/road"
	"github.com/lixenwraith/crossroads/signal"
	"github.com/lixenwraith/crossroads/status"
	"github.com/lixenwraith/crossroads/vehicle"
	"github.com/lixenwraith/crossroads/vmath"
)

// Rand is the uniform integer source for turn assignment and random spawns.
// *rand.Rand satisfies it
type Rand interface {
	Intn(n int) int
}

// Sink receives every drawable once per frame. Sizes come from the geometry
// the sink was built with
type Sink interface {
	DrawLight(l signal.Light)
	DrawVehicle(v vehicle.Snapshot)
}

// Requests are the spawn events collected for one tick
type Requests struct {
	Spawn  [road.Count]bool
	Random bool
}

// Any reports whether at least one spawn was requested
func (r Requests) Any() bool {
	return r.Random || lo.Contains(r.Spawn[:], true)
}

// Merge folds o into r
func (r *Requests) Merge(o Requests) {
	for _, d := range road.Directions {
		r.Spawn[d] = r.Spawn[d] || o.Spawn[d]
	}
	r.Random = r.Random || o.Random
}

// Report summarizes what one tick did
type Report struct {
	Tick uint64
	// Debounced is set when requests arrived inside the debounce window and were dropped
	Debounced bool
	Spawned   []vehicle.Snapshot
	Rejected  []road.Direction
	Evicted   int
	// Waiting counts vehicles held by traffic or a red light
	Waiting int
	Switch  signal.Switch
	Counts  census.Counts
}

// Simulation is the single owner of vehicles and lights. Not safe for
// concurrent use; the Runner is its only caller in the binary
type Simulation struct {
	cfg    config.Config
	geom   road.Geometry
	rules  vehicle.Rules
	lights *signal.Controller
	rng    Rand
	log    *slog.Logger

	vehicles   []*vehicle.Vehicle
	nextID     uint64
	ticks      uint64
	sinceSpawn time.Duration

	// Cached metric pointers
	statusReg    *status.Registry
	statTicks    *atomic.Int64
	statActive   *atomic.Int64
	statSpawned  *atomic.Int64
	statRejected *atomic.Int64
	statEvicted  *atomic.Int64
	statWaiting  *atomic.Int64
	statSwitches *atomic.Int64
	statOverride *atomic.Int64
	statElapsed  *status.AtomicFloat
	statGreen    *status.AtomicString
	statCounts   [road.Count]*atomic.Int64
}

// New validates cfg and builds an empty intersection with North Green.
// A nil registry or logger is replaced by a private registry and a discarding logger
func New(cfg config.Config, rng Rand, reg *status.Registry, logger *slog.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("building simulation: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("building simulation: nil random source")
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	geom := road.NewGeometry(cfg.Area.Width, cfg.Area.Height, cfg.Area.Margin, cfg.Road.LaneWidth, cfg.Vehicle.Size)
	s := &Simulation{
		cfg:  cfg,
		geom: geom,
		rules: vehicle.Rules{
			Geometry:         geom,
			MinFollow:        cfg.Vehicle.MinFollow,
			LateralTolerance: cfg.Vehicle.LateralTolerance,
		},
		lights: signal.NewController(signal.Timing{
			Cycle:          cfg.Signal.Cycle,
			CheckInterval:  cfg.Signal.CheckInterval,
			MinGreen:       cfg.Signal.MinGreen,
			OverrideMargin: cfg.Signal.OverrideMargin,
		}, geom),
		rng:    rng,
		log:    logger.With("component", "engine"),
		nextID: 1,
		// First request is accepted without waiting out a window
		sinceSpawn: cfg.Spawn.Debounce,

		statusReg:    reg,
		statTicks:    reg.Ints.Get("sim.ticks"),
		statActive:   reg.Ints.Get("sim.vehicles"),
		statSpawned:  reg.Ints.Get("sim.spawned"),
		statRejected: reg.Ints.Get("sim.rejected"),
		statEvicted:  reg.Ints.Get("sim.evicted"),
		statWaiting:  reg.Ints.Get("sim.waiting"),
		statSwitches: reg.Ints.Get("signal.switches"),
		statOverride: reg.Ints.Get("signal.overrides"),
		statElapsed:  reg.Floats.Get("sim.seconds"),
		statGreen:    reg.Strings.Get("signal.green"),
	}
	for _, d := range road.Directions {
		s.statCounts[d] = reg.Ints.Get(CountKey(d))
	}
	s.statGreen.Store(s.lights.Green().String())

	return s, nil
}

// CountKey is the registry key holding the census count for d
func CountKey(d road.Direction) string {
	return "census." + d.String()
}

// Step advances the intersection by one tick of cfg.Tick
func (s *Simulation) Step(req Requests) Report {
	dt := s.cfg.Tick
	s.ticks++
	rep := Report{Tick: s.ticks}

	s.spawn(req, &rep)

	rep.Switch = s.lights.Tick(dt, func() census.Counts {
		return census.Summarize(s.vehicles)
	})
	if rep.Switch.Changed() {
		s.log.Info("signal switch",
			"tick", s.ticks,
			"from", rep.Switch.From,
			"to", rep.Switch.To,
			"reason", rep.Switch.Reason)
	}

	board := s.lights.Board()
	others := s.Vehicles()
	for _, v := range s.vehicles {
		if v.Step(dt, s.rules, board, others) != vehicle.Moved {
			rep.Waiting++
		}
	}

	rep.Evicted = s.evict()
	s.sinceSpawn += dt
	rep.Counts = census.Summarize(s.vehicles)

	s.publish(&rep)
	return rep
}

func (s *Simulation) spawn(req Requests, rep *Report) {
	if !req.Any() {
		return
	}
	if s.sinceSpawn < s.cfg.Spawn.Debounce {
		rep.Debounced = true
		return
	}

	for _, d := range road.Directions {
		if req.Spawn[d] {
			s.trySpawn(d, rep)
		}
	}
	if req.Random {
		s.trySpawn(road.Directions[s.rng.Intn(road.Count)], rep)
	}
}

func (s *Simulation) trySpawn(d road.Direction, rep *Report) {
	if s.LaneFull(d) {
		rep.Rejected = append(rep.Rejected, d)
		s.log.Debug("spawn rejected", "tick", s.ticks, "heading", d)
		return
	}

	v := vehicle.New(s.nextID, d, s.geom.Spawn(d), s.cfg.Vehicle.Speed, s.rng)
	s.nextID++
	s.vehicles = append(s.vehicles, v)
	s.sinceSpawn = 0
	rep.Spawned = append(rep.Spawned, v.Snapshot())
	s.log.Debug("vehicle spawned", "tick", s.ticks, "id", v.ID, "heading", d, "turn", v.Turn())
}

// LaneFull reports whether a vehicle heading d still occupies the entry of
// d's lane: it is ahead of the spawn point by less than the spawn clearance
func (s *Simulation) LaneFull(d road.Direction) bool {
	probe := vehicle.Snapshot{Position: s.geom.Spawn(d), Heading: d}
	return lo.SomeBy(s.vehicles, func(v *vehicle.Vehicle) bool {
		o := v.Snapshot()
		if !vehicle.SameLane(probe, o, s.rules.LateralTolerance) {
			return false
		}
		gap := vehicle.Gap(probe, o)
		return gap >= 0 && gap < s.cfg.Spawn.Clearance
	})
}

func (s *Simulation) evict() int {
	before := len(s.vehicles)
	s.vehicles = slices.DeleteFunc(s.vehicles, func(v *vehicle.Vehicle) bool {
		if s.geom.InBounds(v.Position) {
			return false
		}
		s.log.Debug("vehicle evicted", "tick", s.ticks, "id", v.ID, "origin", v.Origin(), "turn", v.Turn())
		return true
	})
	return before - len(s.vehicles)
}

func (s *Simulation) publish(rep *Report) {
	s.statTicks.Store(int64(s.ticks))
	s.statActive.Store(int64(len(s.vehicles)))
	s.statSpawned.Add(int64(len(rep.Spawned)))
	s.statRejected.Add(int64(len(rep.Rejected)))
	s.statEvicted.Add(int64(rep.Evicted))
	s.statWaiting.Store(int64(rep.Waiting))
	s.statElapsed.Add(s.cfg.Tick.Seconds())
	if rep.Switch.Changed() {
		s.statSwitches.Add(1)
		if rep.Switch.Reason == signal.ReasonOverride {
			s.statOverride.Add(1)
		}
		s.statGreen.Store(rep.Switch.To.String())
	}
	for _, d := range road.Directions {
		s.statCounts[d].Store(int64(rep.Counts[d]))
	}
}

// Draw hands every light and vehicle to sink, lights first
func (s *Simulation) Draw(sink Sink) {
	for _, l := range s.lights.Lights() {
		sink.DrawLight(l)
	}
	for _, v := range s.vehicles {
		sink.DrawVehicle(v.Snapshot())
	}
}

// Place inserts a vehicle heading from origin with the given turn at an
// arbitrary position, bypassing spawn gating, and returns its ID
func (s *Simulation) Place(origin road.Direction, turn road.TurnKind, at vmath.Vec2) uint64 {
	v := vehicle.NewWithTurn(s.nextID, origin, turn, at, s.cfg.Vehicle.Speed)
	s.nextID++
	s.vehicles = append(s.vehicles, v)
	return v.ID
}

// Vehicles returns snapshots of the active vehicles in insertion order
func (s *Simulation) Vehicles() []vehicle.Snapshot {
	return lo.Map(s.vehicles, func(v *vehicle.Vehicle, _ int) vehicle.Snapshot {
		return v.Snapshot()
	})
}

// Lights returns copies of the four lights
func (s *Simulation) Lights() [road.Count]signal.Light {
	return s.lights.Lights()
}

// Counts returns the current census
func (s *Simulation) Counts() census.Counts {
	return census.Summarize(s.vehicles)
}

// Green returns the direction holding right-of-way
func (s *Simulation) Green() road.Direction {
	return s.lights.Green()
}

// Ticks returns the number of completed ticks
func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

// Geometry returns the layout every position derives from
func (s *Simulation) Geometry() road.Geometry {
	return s.geom
}

// Config returns the validated configuration
func (s *Simulation) Config() config.Config {
	return s.cfg
}

// Registry returns the metrics registry the simulation publishes into
func (s *Simulation) Registry() *status.Registry {
	return s.statusReg
}
