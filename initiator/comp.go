// Package initiator implements the transaction-issuing endpoint of the bus
// interface. The initiator drives the request signals of a device and
// advances the shared clock in lock-step until the device answers or a
// bounded timeout elapses.
package initiator

import (
	"errors"
	"fmt"

	"github.com/sarchlab/rwmem/bus"
	"github.com/sarchlab/rwmem/sim/timing"
)

// DefaultTimeoutTicks is the number of cycles a transaction may poll for an
// acknowledge or an error before it is declared wedged.
const DefaultTimeoutTicks = 20

// ErrTimeout reports that a transaction polled for the full timeout window
// without the device asserting ack or error. It indicates a wedged protocol
// and is not recoverable; callers must not retry.
var ErrTimeout = errors.New("protocol timeout")

// Comp issues write and read transactions against a single device. There is
// exactly one initiator per device, so transactions never interleave.
type Comp struct {
	name         string
	engine       timing.Engine
	device       bus.Device
	timeoutTicks int

	numTransactions uint64
}

// Name returns the name of the initiator.
func (c *Comp) Name() string {
	return c.name
}

// NumTransactions returns the number of completed transactions.
func (c *Comp) NumTransactions() uint64 {
	return c.numTransactions
}

// Write stores value at addr. It blocks, cycle by cycle, until the device
// asserts ack or error, and returns the read-data and error signals sampled
// at that cycle. For an in-range write the returned data equals the written
// value. Address and data are clamped to the device's data width before they
// are driven.
func (c *Comp) Write(addr, value uint64) (readData uint64, errBit bool, err error) {
	w := c.device.Wires()
	mask := bus.Mask(c.device.DataWidth())

	w.Address = addr & mask
	w.Data = value & mask
	w.WriteEnable = true
	c.tick()
	w.WriteEnable = false

	return c.awaitCompletion("write", addr)
}

// Read returns the word stored at addr together with the error signal. It
// blocks, cycle by cycle, until the device asserts ack or error.
func (c *Comp) Read(addr uint64) (readData uint64, errBit bool, err error) {
	w := c.device.Wires()
	mask := bus.Mask(c.device.DataWidth())

	w.Address = addr & mask
	c.tick()

	return c.awaitCompletion("read", addr)
}

// awaitCompletion polls the response signals once per cycle. The response is
// sampled in the first cycle where ack or error holds.
func (c *Comp) awaitCompletion(
	op string,
	addr uint64,
) (readData uint64, errBit bool, err error) {
	w := c.device.Wires()

	for polled := 0; polled < c.timeoutTicks; polled++ {
		if w.Ack || w.Error {
			c.numTransactions++
			return w.ReadData, w.Error, nil
		}

		c.tick()
	}

	return 0, false, fmt.Errorf(
		"%w: %s at address %#x received neither ack nor error in %d cycles",
		ErrTimeout, op, addr, c.timeoutTicks)
}

// tick advances the shared time axis by one cycle and lets the device update
// its state at the new cycle.
func (c *Comp) tick() {
	next := c.engine.Now() + 1

	c.engine.Schedule(timing.MakeTickEvent(c.device, next))

	err := c.engine.RunUntil(next)
	if err != nil {
		panic(err)
	}
}
