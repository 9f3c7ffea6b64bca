// Package wavetrace records the value of every bus signal once per clock
// cycle, producing a waveform-style trace of a simulation.
package wavetrace

import (
	"github.com/sarchlab/rwmem/bus"
	"github.com/sarchlab/rwmem/sim/hooking"
	"github.com/sarchlab/rwmem/sim/timing"
)

// A Sample is the value of every signal of one device at the end of one
// cycle.
type Sample struct {
	Cycle       uint64
	Address     uint64
	Data        uint64
	WriteEnable bool
	ReadData    uint64
	Ack         bool
	Error       bool
}

// A Writer stores samples.
type Writer interface {
	Write(s Sample)
	Flush()
}

// A Tracer is a hook that samples a device's wires after every tick the
// device handles. Attach it to the engine that runs the simulation.
type Tracer struct {
	device bus.Device
	writer Writer
}

// NewTracer creates a Tracer that observes the given device and stores the
// samples with the given writer.
func NewTracer(device bus.Device, writer Writer) *Tracer {
	return &Tracer{
		device: device,
		writer: writer,
	}
}

// Func samples the wires after each tick event handled by the traced device.
func (t *Tracer) Func(ctx hooking.HookCtx) {
	if ctx.Pos != timing.HookPosAfterEvent {
		return
	}

	evt, ok := ctx.Item.(timing.TickEvent)
	if !ok {
		return
	}

	if evt.Handler() != timing.Handler(t.device) {
		return
	}

	w := t.device.Wires()
	t.writer.Write(Sample{
		Cycle:       uint64(evt.Time()),
		Address:     w.Address,
		Data:        w.Data,
		WriteEnable: w.WriteEnable,
		ReadData:    w.ReadData,
		Ack:         w.Ack,
		Error:       w.Error,
	})
}
