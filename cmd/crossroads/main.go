package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/gopxl/beep"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/crossroads/audio"
	"github.com/lixenwraith/crossroads/config"
	"github.com/lixenwraith/crossroads/constants"
	"github.com/lixenwraith/crossroads/core"
	"github.com/lixenwraith/crossroads/engine"
	"github.com/lixenwraith/crossroads/input"
	"github.com/lixenwraith/crossroads/render"
	"github.com/lixenwraith/crossroads/status"
)

type options struct {
	configPath string
	seed       int64
	debug      bool
	mute       bool
	headless   bool
	ticks      int
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("crossroads", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML config path (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed, 0 picks one from the clock")
	fs.BoolVar(&opts.debug, "debug", false, "write a debug log to "+logDir+"/"+logFileName)
	fs.BoolVar(&opts.mute, "mute", false, "start with sound off")
	fs.BoolVar(&opts.headless, "headless", false, "run without a terminal and print a summary")
	fs.IntVar(&opts.ticks, "ticks", constants.HeadlessTicks, "ticks to run with -headless")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.ticks <= 0 {
		return opts, fmt.Errorf("-ticks must be positive, got %d", opts.ticks)
	}
	return opts, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "crossroads: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	path := config.ResolvePath(opts.configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.headless && cfg.Spawn.AutoInterval == 0 {
		cfg.Spawn.AutoInterval = constants.AutoSpawnInterval
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger, logFile, err := setupLogging(opts.debug, opts.headless, level, stderr)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger = logger.With("run", uuid.NewString())

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	reg := status.NewRegistry()
	sim, err := engine.New(cfg, rand.New(rand.NewSource(seed)), reg, logger)
	if err != nil {
		return err
	}

	logger.Info("crossroads starting",
		"config", path,
		"seed", seed,
		"headless", opts.headless,
		"tick", cfg.Tick,
		"cycle", cfg.Signal.Cycle,
		"check_interval", cfg.Signal.CheckInterval,
		"auto_spawn", cfg.Spawn.AutoInterval)

	if opts.headless {
		return runHeadless(sim, opts.ticks, logger, stdout)
	}
	return runInteractive(sim, opts, logger)
}

// runHeadless steps the simulation back to back and prints the metrics
func runHeadless(sim *engine.Simulation, ticks int, logger *slog.Logger, stdout io.Writer) error {
	runner := engine.NewRunner(sim, nil, engine.WithLogger(logger))
	last := runner.Advance(ticks)

	reg := sim.Registry()
	logger.Info("headless run finished",
		"ticks", last.Tick,
		"green", sim.Green(),
		"counts", last.Counts.String(),
		"spawned", reg.Ints.Get("sim.spawned").Load(),
		"rejected", reg.Ints.Get("sim.rejected").Load(),
		"evicted", reg.Ints.Get("sim.evicted").Load(),
		"overrides", reg.Ints.Get("signal.overrides").Load())

	if _, err := reg.WriteTo(stdout); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

func runInteractive(sim *engine.Simulation, opts options, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	defer fini()
	core.RegisterTerminal(screen)
	defer core.RegisterTerminal(nil)
	screen.HideCursor()

	reg := sim.Registry()

	// Sound is optional; a missing device leaves the cues silent
	var out audio.Output
	rate := beep.SampleRate(constants.AudioSampleRate)
	if spk, err := audio.OpenSpeaker(rate, constants.AudioBufferDuration); err != nil {
		logger.Warn("audio unavailable", "err", err)
	} else {
		out = spk
		defer spk.Close()
	}
	cues := audio.NewCues(out, rate, reg)
	cues.SetMuted(opts.mute)

	view := render.New(screen, sim.Geometry(), reg)

	handler := input.NewHandler(nil)
	handler.OnMute = func() {
		logger.Info("sound toggled", "muted", cues.ToggleMute())
	}
	handler.OnResize = screen.Sync

	commands := make(chan engine.Command, constants.RequestQueueSize)
	runner := engine.NewRunner(sim, commands,
		engine.WithObserver(cues),
		engine.WithDraw(view.Frame),
		engine.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(core.Guard(func() error {
		return handler.Poll(gctx, screen, commands)
	}))
	g.Go(core.Guard(func() error {
		// Finalizing the screen unblocks the poller
		defer fini()
		return runner.Run(gctx)
	}))

	err = g.Wait()
	logger.Info("crossroads stopped", "ticks", sim.Ticks())
	return err
}
