package timing

import "github.com/sarchlab/rwmem/sim/hooking"

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	Now() VTimeInCycle
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	TimeTeller

	Schedule(e Event)
}

// An Engine is a unit that keeps the discrete event simulation running.
type Engine interface {
	hooking.Hookable
	EventScheduler

	// Run processes all the events until no event is left.
	Run() error

	// RunUntil processes every event scheduled at or before the given cycle
	// and then moves the current time to that cycle. It is the primitive that
	// lets a driver advance the simulation in lock-step, one cycle at a time.
	RunUntil(cycle VTimeInCycle) error

	// Pause pauses the simulation until Continue is called.
	Pause()

	// Continue continues the paused simulation.
	Continue()
}
