package engine

import (
	"time"

	"github.com/lixenwraith/ballfall/input"
)

// Outcome is the loop decision returned by a system run
type Outcome uint8

const (
	// Continue keeps the run loop going
	Continue Outcome = iota
	// Quit ends the run loop once the current tick completes
	Quit
)

func (o Outcome) String() string {
	if o == Quit {
		return "quit"
	}
	return "continue"
}

// System is a unit of per-tick logic with a declared component footprint
type System interface {
	// Name identifies the system in errors and logs
	Name() string
	// Access declares the component kinds Run reads and writes
	Access() Access
	// Run executes the system once; an error is fatal to the tick
	Run(ctx *Context) (Outcome, error)
}

// Context is the per-tick input handed to every system
type Context struct {
	World *World

	// Delta is the elapsed time since the previous tick, zero on the first
	Delta time.Duration

	// Frame is the zero-based tick index
	Frame int64

	// Events are the input events polled for this tick
	Events []input.Event
}

// DeltaSeconds returns Delta in seconds
func (c *Context) DeltaSeconds() float64 {
	return c.Delta.Seconds()
}
