package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/lixenwraith/ballfall/audio"
	"github.com/lixenwraith/ballfall/core"
	"github.com/lixenwraith/ballfall/engine"
	"github.com/lixenwraith/ballfall/parameter"
	"github.com/lixenwraith/ballfall/physics"
	"github.com/lixenwraith/ballfall/render"
	"github.com/lixenwraith/ballfall/scene"
	"github.com/lixenwraith/ballfall/status"
	"github.com/lixenwraith/ballfall/system"
	"github.com/lixenwraith/ballfall/terminal"
	"github.com/lixenwraith/ballfall/vmath"
)

// options are the runtime knobs parsed from flags
type options struct {
	runID    string
	balls    int
	seed     uint64
	fps      int
	headless bool
	ticks    int64
	mute     bool
	parallel bool
}

func (o options) sceneConfig() scene.Config {
	cfg := scene.DefaultConfig()
	cfg.Balls = o.balls
	cfg.Seed = o.seed
	return cfg
}

// collaborators are the optional systems wrapped around the core pipeline; nil fields are skipped
type collaborators struct {
	pauser   system.Pauser
	player   system.ImpactPlayer
	muter    system.Muter
	renderer engine.System
}

// newScheduler registers the core pipeline and the given collaborators
func newScheduler(world *engine.World, c collaborators, parallel bool) *engine.Scheduler {
	s := engine.NewScheduler()
	s.SetParallel(parallel)
	s.Register(system.NewQuitSystem(), parameter.PriorityQuit)
	if c.pauser != nil {
		s.Register(system.NewPauseSystem(world, c.pauser), parameter.PriorityPause)
	}
	if c.muter != nil {
		s.Register(system.NewMuteSystem(world, c.muter), parameter.PriorityMute)
	}
	s.Register(system.NewPhysicsStepSystem(world), parameter.PriorityPhysics)
	s.Register(system.NewTransformSyncSystem(world), parameter.PrioritySync)
	if c.player != nil {
		s.Register(system.NewImpactAudioSystem(world, c.player), parameter.PriorityAudio)
	}
	if c.renderer != nil {
		s.Register(c.renderer, parameter.PriorityRender)
	}
	return s
}

// runHeadless steps the scene with a fixed delta and writes a summary to out
func runHeadless(ctx context.Context, opts options, out io.Writer) error {
	world := engine.NewWorld()
	pw, err := scene.Build(world, opts.sceneConfig())
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	loop := engine.NewLoop(world, newScheduler(world, collaborators{}, opts.parallel), nil, nil, engine.LoopConfig{
		FixedDelta: parameter.HeadlessDelta,
		MaxTicks:   opts.ticks,
	})
	if _, err := loop.Run(ctx); err != nil {
		return err
	}

	stats := world.Status
	sum := summarize(world, pw)
	fmt.Fprintf(out, "run %s: %d ticks, %.2fs simulated, %d bodies\n", opts.runID,
		stats.Ints.Get(status.KeyTicks).Load(), stats.Floats.Get(status.KeySimTime).Get(), stats.Ints.Get(status.KeyBodies).Load())
	fmt.Fprintf(out, "balls: lowest z %.3f, highest z %.3f, %d at rest\n", sum.lowest, sum.highest, sum.resting)
	return nil
}

// runInteractive draws the scene in the terminal until Escape, Ctrl-C or a cancelled ctx
// The p key pauses the simulation, the m key mutes impact sounds
func runInteractive(ctx context.Context, opts options) error {
	screen, err := terminal.NewScreen()
	if err != nil {
		return err
	}
	core.SetCrashCleanup(screen.Fini)
	defer func() {
		screen.Fini()
		core.SetCrashCleanup(nil)
	}()

	world := engine.NewWorld()
	cfg := opts.sceneConfig()
	if _, err := scene.Build(world, cfg); err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	c := collaborators{
		pauser:   clock,
		renderer: render.NewTerminalRenderer(world, screen, render.NewBoxViewport(cfg.HalfExtent, cfg.HalfExtent)),
	}

	// -mute starts the engine silenced; the m key can still unmute it
	sound := audio.NewEngine()
	sound.SetMuted(opts.mute)
	if err := sound.Start(); err != nil {
		// Non-fatal, the scene runs silently
		log.Printf("audio start failed: %v (continuing without audio)", err)
	} else {
		defer sound.Stop()
		c.player = sound
		c.muter = sound
	}

	events := terminal.NewEventSource(screen)

	interval := parameter.FrameUpdateInterval
	if opts.fps > 0 {
		interval = time.Second / time.Duration(opts.fps)
	}
	loop := engine.NewLoop(world, newScheduler(world, c, opts.parallel), events, clock, engine.LoopConfig{
		Interval: interval,
		MaxDelta: parameter.MaxFrameDelta,
		MaxTicks: opts.ticks,
	})
	_, err = loop.Run(ctx)
	return err
}

type summary struct {
	lowest, highest float64
	resting         int
}

// summarize reports the spread and rest state of the dynamic balls
func summarize(world *engine.World, pw *physics.World) summary {
	sum := summary{lowest: math.Inf(1), highest: math.Inf(-1)}
	for _, row := range engine.Join2(world.Components.RigidBody, world.Components.LocalTransform) {
		body, err := pw.Body(row.A.Handle)
		if err != nil || body.IsStatic() {
			continue
		}
		z := row.B.Translation.Z
		sum.lowest = min(sum.lowest, z)
		sum.highest = max(sum.highest, z)
		if vmath.V3FMag(body.Velocity) < pw.RestingSpeed {
			sum.resting++
		}
	}
	if sum.lowest > sum.highest {
		sum.lowest, sum.highest = 0, 0
	}
	return sum
}
