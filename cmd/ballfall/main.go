package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/pkg/profile"

	"github.com/lixenwraith/ballfall/core"
	"github.com/lixenwraith/ballfall/parameter"
)

var (
	ballsFlag    = flag.Int("balls", parameter.BallCount, "number of falling balls")
	seedFlag     = flag.Uint64("seed", parameter.SceneSeed, "lateral jitter seed")
	fpsFlag      = flag.Int("fps", 0, "tick rate of the interactive loop (0 = default ~60)")
	headlessFlag = flag.Bool("headless", false, "run without a terminal using a fixed delta and print a summary")
	ticksFlag    = flag.Int64("ticks", 0, "stop after this many ticks (headless default 600, 0 = until quit)")
	muteFlag     = flag.Bool("mute", false, "start with impact sounds muted (toggle with m)")
	parallelFlag = flag.Bool("parallel", false, "run non-conflicting systems of equal priority concurrently")
	debugFlag    = flag.Bool("debug", false, "write a debug log to logs/ballfall.log")
	profileFlag  = flag.String("profile", "", "profile the run: cpu or mem")
)

func main() {
	// Panic on the main goroutine restores the terminal like any other crash
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()
	os.Exit(run())
}

// run owns every deferred cleanup so they complete before the process exits
func run() int {
	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	runID := uuid.New().String()[:8]
	log.SetPrefix("[" + runID + "] ")

	switch *profileFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q (cpu, mem)\n", *profileFlag)
		return 2
	}

	opts := options{
		runID:    runID,
		balls:    *ballsFlag,
		seed:     *seedFlag,
		fps:      *fpsFlag,
		headless: *headlessFlag,
		ticks:    *ticksFlag,
		mute:     *muteFlag,
		parallel: *parallelFlag,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("ballfall: start (balls=%d seed=%d headless=%v)", opts.balls, opts.seed, opts.headless)

	var err error
	if opts.headless {
		if opts.ticks <= 0 {
			opts.ticks = parameter.HeadlessTicks
		}
		err = runHeadless(ctx, opts, os.Stdout)
	} else {
		err = runInteractive(ctx, opts)
	}

	if err != nil {
		log.Printf("ballfall: %v", err)
		fmt.Fprintf(os.Stderr, "ballfall: %v\n", err)
		return 1
	}
	log.Printf("ballfall: exit")
	return 0
}
