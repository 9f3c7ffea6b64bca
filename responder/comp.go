// Package responder models a single-port memory that answers read and write
// requests over the bus signal interface with a fixed, deterministic latency.
package responder

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/rwmem/bus"
	"github.com/sarchlab/rwmem/sim/timing"
)

// WritePolicy selects how the write path interacts with the address range
// check.
type WritePolicy int

const (
	// GuardedWrites gates the write commit on the address being in range.
	// An out-of-range write reports an error and leaves the store untouched.
	GuardedWrites WritePolicy = iota

	// LegacyWrites does not gate the write commit on the range check. An
	// out-of-range write still mutates the store at the aliased index
	// address mod memSize, while the transaction is reported as an error.
	LegacyWrites
)

func (p WritePolicy) String() string {
	switch p {
	case GuardedWrites:
		return "guarded"
	case LegacyWrites:
		return "legacy"
	default:
		return fmt.Sprintf("WritePolicy(%d)", int(p))
	}
}

// Comp is a single-port memory responder. It owns a store of memSize words,
// each dataWidth bits wide, and recomputes its response signals once per
// cycle from the current request signals and one cycle of retained history.
//
// The acknowledge protocol:
//   - a write is acknowledged exactly one cycle after it was requested,
//   - a read is acknowledged from the second consecutive cycle during which
//     the address is held stable and no write is in progress,
//   - the acknowledge is suppressed while the error signal holds.
type Comp struct {
	name      string
	wires     *bus.Wires
	policy    WritePolicy
	dataWidth int
	memSize   uint64

	store []uint64

	// Registered state, sampled at the end of each cycle.
	writeEnableReg bool
	addrReg        uint64
}

// Name returns the name of the responder.
func (c *Comp) Name() string {
	return c.name
}

// Wires returns the signal bundle shared with the initiator.
func (c *Comp) Wires() *bus.Wires {
	return c.wires
}

// DataWidth returns the width of the data and address signals in bits.
func (c *Comp) DataWidth() int {
	return c.dataWidth
}

// MemSize returns the number of words in the store.
func (c *Comp) MemSize() uint64 {
	return c.memSize
}

// PeekWord returns the stored word at the given index without going through
// the bus protocol. It is intended for inspection and tests.
func (c *Comp) PeekWord(index uint64) uint64 {
	return c.store[index]
}

// Handle processes events scheduled for the responder.
func (c *Comp) Handle(e timing.Event) error {
	switch e := e.(type) {
	case timing.TickEvent:
		c.Tick()
		return nil
	default:
		panic(fmt.Sprintf(
			"responder: cannot handle event of type %s", reflect.TypeOf(e)))
	}
}

// Tick advances the responder by one clock cycle. The update is two-phase:
// the registered values computed from the previous cycle are committed first,
// then the combinational outputs are recomputed from the current request
// signals. This keeps a write requested at cycle t from being acknowledged
// before cycle t+1.
func (c *Comp) Tick() bool {
	w := c.wires

	ackWrite := c.writeEnableReg
	prevAddr := c.addrReg

	c.writeEnableReg = w.WriteEnable
	c.addrReg = w.Address

	outOfRange := w.Address >= c.memSize

	if w.WriteEnable {
		c.commitWrite(w.Address, w.Data, outOfRange)
	}

	ackRead := prevAddr == w.Address && !w.WriteEnable

	w.ReadData = c.store[w.Address%c.memSize]
	w.Error = outOfRange
	w.Ack = (ackRead || ackWrite) && !outOfRange

	return true
}

func (c *Comp) commitWrite(addr, data uint64, outOfRange bool) {
	if outOfRange && c.policy == GuardedWrites {
		return
	}

	c.store[addr%c.memSize] = data & bus.Mask(c.dataWidth)
}
