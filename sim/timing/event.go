// Package timing provides the discrete-time kernel that drives rwmem
// simulations. Time is counted in whole clock cycles and all state changes
// happen when an event is processed.
package timing

import (
	"github.com/sarchlab/rwmem/sim/hooking"
	"github.com/sarchlab/rwmem/sim/id"
)

// VTimeInCycle is a simulated time expressed as a number of clock cycles
// since the start of the simulation.
type VTimeInCycle uint64

// An Event is something going to happen in the future.
type Event interface {
	// Time returns the cycle at which the event should happen.
	Time() VTimeInCycle

	// Handler returns the handler that should handle the event.
	Handler() Handler

	// IsSecondary tells if the event is a secondary event. Secondary events
	// are handled after all same-cycle primary events are handled.
	IsSecondary() bool
}

// HookPosBeforeEvent is a hook position that triggers before handling an
// event.
var HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent is a hook position that triggers after handling an event.
var HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	ID        string
	time      VTimeInCycle
	handler   Handler
	secondary bool
}

// NewEventBase creates a new EventBase.
func NewEventBase(t VTimeInCycle, handler Handler) *EventBase {
	e := new(EventBase)
	e.ID = id.Generate()
	e.time = t
	e.handler = handler
	e.secondary = false

	return e
}

// Time returns the cycle at which the event is going to happen.
func (e EventBase) Time() VTimeInCycle {
	return e.time
}

// Handler returns the handler to handle the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// IsSecondary returns true if the event is a secondary event.
func (e EventBase) IsSecondary() bool {
	return e.secondary
}

// A Handler defines a domain for the events.
//
// One event is always constrained to one Handler, which means the event can
// only be scheduled by one handler and can only directly modify that handler.
type Handler interface {
	Handle(e Event) error
}
