package initiator

import (
	"github.com/sarchlab/rwmem/bus"
	"github.com/sarchlab/rwmem/sim/timing"
)

// Builder can build initiators.
type Builder struct {
	engine       timing.Engine
	device       bus.Device
	timeoutTicks int
}

// MakeBuilder returns a Builder with the default timeout.
func MakeBuilder() Builder {
	return Builder{
		timeoutTicks: DefaultTimeoutTicks,
	}
}

// WithEngine sets the engine that provides the shared time axis.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithDevice sets the device the initiator drives.
func (b Builder) WithDevice(device bus.Device) Builder {
	b.device = device
	return b
}

// WithTimeoutTicks sets the number of cycles a transaction may poll before
// failing.
func (b Builder) WithTimeoutTicks(ticks int) Builder {
	b.timeoutTicks = ticks
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.engine == nil {
		panic("initiator: an engine is required")
	}

	if b.device == nil {
		panic("initiator: a device is required")
	}

	if b.timeoutTicks < 1 {
		panic("initiator: timeoutTicks must be at least 1")
	}
}

// Build builds an initiator with the given name.
func (b Builder) Build(name string) *Comp {
	b.parametersMustBeValid()

	return &Comp{
		name:         name,
		engine:       b.engine,
		device:       b.device,
		timeoutTicks: b.timeoutTicks,
	}
}
