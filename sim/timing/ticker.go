package timing

import "github.com/sarchlab/rwmem/sim/id"

// TickEvent is a generic event that clocked components use to update their
// state once per cycle.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a new TickEvent.
func MakeTickEvent(handler Handler, time VTimeInCycle) TickEvent {
	evt := TickEvent{
		EventBase: EventBase{
			ID:        id.Generate(),
			time:      time,
			handler:   handler,
			secondary: false,
		},
	}

	return evt
}

// A Ticker is an object that updates states with ticks. Tick returns true if
// the ticker made progress during the cycle.
type Ticker interface {
	Tick() bool
}
