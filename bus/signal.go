// Package bus defines the signal-level interface between a memory responder
// and the initiator that drives it. The interface is a flat set of named,
// fixed-width signals sampled once per clock cycle.
package bus

import "github.com/sarchlab/rwmem/sim/timing"

// Direction tells which endpoint drives a signal.
type Direction int

// The two signal directions. The naming follows the initiator's point of
// view.
const (
	InitiatorToResponder Direction = iota
	ResponderToInitiator
)

func (d Direction) String() string {
	if d == InitiatorToResponder {
		return "initiator->responder"
	}
	return "responder->initiator"
}

// A Signal describes one wire bundle of the interface: its name, its width in
// bits, and which endpoint drives it. External emitters can serialize this
// table; the serialization format is up to the emitter.
type Signal struct {
	Name      string
	Width     int
	Direction Direction
}

// PortList returns the flat signal set of the interface for a given data
// width. Address, write data, and read data are all dataWidth bits wide.
func PortList(dataWidth int) []Signal {
	return []Signal{
		{Name: "address", Width: dataWidth, Direction: InitiatorToResponder},
		{Name: "data", Width: dataWidth, Direction: InitiatorToResponder},
		{Name: "write_enable", Width: 1, Direction: InitiatorToResponder},
		{Name: "read_data", Width: dataWidth, Direction: ResponderToInitiator},
		{Name: "ack", Width: 1, Direction: ResponderToInitiator},
		{Name: "error", Width: 1, Direction: ResponderToInitiator},
	}
}

// Mask returns the bit mask that keeps the low width bits of a signal value.
// Width must be in [1, 64].
func Mask(width int) uint64 {
	if width < 1 || width > 64 {
		panic("bus: signal width must be in [1, 64]")
	}

	if width == 64 {
		return ^uint64(0)
	}

	return (uint64(1) << uint(width)) - 1
}

// Wires holds the current value of every signal shared by one
// initiator/responder pair. The initiator owns the request signals and the
// responder owns the response signals; both endpoints see the same Wires
// value.
type Wires struct {
	// Request signals, driven by the initiator.
	Address     uint64
	Data        uint64
	WriteEnable bool

	// Response signals, driven by the responder.
	ReadData uint64
	Ack      bool
	Error    bool
}

// A Device is the responder-side endpoint of the interface. A device updates
// its registered state and recomputes its outputs every time it handles a
// TickEvent.
type Device interface {
	timing.Handler

	Name() string
	Wires() *Wires
	DataWidth() int
}
