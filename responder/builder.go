package responder

import (
	"fmt"

	"github.com/sarchlab/rwmem/bus"
)

// Builder can build memory responders.
type Builder struct {
	memSize    uint64
	dataWidth  int
	policy     WritePolicy
	initValues []uint64
	wires      *bus.Wires
}

// MakeBuilder returns a Builder with default parameters: 10 words of 8 bits,
// guarded writes.
func MakeBuilder() Builder {
	return Builder{
		memSize:   10,
		dataWidth: 8,
		policy:    GuardedWrites,
	}
}

// WithMemSize sets the number of words in the store.
func (b Builder) WithMemSize(memSize uint64) Builder {
	b.memSize = memSize
	return b
}

// WithDataWidth sets the width of the data and address signals in bits.
func (b Builder) WithDataWidth(dataWidth int) Builder {
	b.dataWidth = dataWidth
	return b
}

// WithWritePolicy selects the write-commit variant.
func (b Builder) WithWritePolicy(policy WritePolicy) Builder {
	b.policy = policy
	return b
}

// WithInitValues pre-populates the store. Words beyond the list length
// default to zero. The list must not be longer than the store.
func (b Builder) WithInitValues(values []uint64) Builder {
	b.initValues = values
	return b
}

// WithWires attaches an existing signal bundle instead of creating a new one.
func (b Builder) WithWires(wires *bus.Wires) Builder {
	b.wires = wires
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.memSize < 1 {
		panic("responder: memSize must be at least 1")
	}

	if b.dataWidth < 1 || b.dataWidth > 64 {
		panic("responder: dataWidth must be in [1, 64]")
	}

	if uint64(len(b.initValues)) > b.memSize {
		panic(fmt.Sprintf(
			"responder: %d init values for a store of %d words",
			len(b.initValues), b.memSize))
	}
}

// Build builds a responder with the given name.
func (b Builder) Build(name string) *Comp {
	b.parametersMustBeValid()

	c := &Comp{
		name:      name,
		policy:    b.policy,
		dataWidth: b.dataWidth,
		memSize:   b.memSize,
		store:     make([]uint64, b.memSize),
	}

	mask := bus.Mask(b.dataWidth)
	for i, v := range b.initValues {
		c.store[i] = v & mask
	}

	c.wires = b.wires
	if c.wires == nil {
		c.wires = &bus.Wires{}
	}

	return c
}
