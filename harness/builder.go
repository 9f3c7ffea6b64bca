package harness

import (
	"io"
	"log"
	"math/rand"

	"github.com/sarchlab/rwmem/initiator"
)

// Builder can build regression runners.
type Builder struct {
	driver     *initiator.Comp
	memSize    uint64
	dataWidth  int
	initValues []uint64
	iterations int
	seed       int64
	logger     *log.Logger
}

// MakeBuilder returns a Builder with default parameters matching the default
// responder: 10 words of 8 bits.
func MakeBuilder() Builder {
	return Builder{
		memSize:   10,
		dataWidth: 8,
	}
}

// WithDriver sets the initiator the tests run through.
func (b Builder) WithDriver(driver *initiator.Comp) Builder {
	b.driver = driver
	return b
}

// WithMemSize sets the word count of the device under test.
func (b Builder) WithMemSize(memSize uint64) Builder {
	b.memSize = memSize
	return b
}

// WithDataWidth sets the signal width of the device under test.
func (b Builder) WithDataWidth(dataWidth int) Builder {
	b.dataWidth = dataWidth
	return b
}

// WithInitValues sets the initialization list the device was built with.
func (b Builder) WithInitValues(values []uint64) Builder {
	b.initValues = values
	return b
}

// WithIterations sets the number of random writes per sweep. Zero means one
// sequential pass over every address.
func (b Builder) WithIterations(n int) Builder {
	b.iterations = n
	return b
}

// WithSeed seeds the random source so a regression run can be reproduced.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithLogger sets the logger for per-test progress output.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// Build builds a Runner.
func (b Builder) Build() *Runner {
	if b.driver == nil {
		panic("harness: a driver is required")
	}

	logger := b.logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Runner{
		driver:     b.driver,
		memSize:    b.memSize,
		dataWidth:  b.dataWidth,
		initValues: b.initValues,
		iterations: b.iterations,
		rng:        rand.New(rand.NewSource(b.seed)),
		logger:     logger,
		written:    make(map[uint64]uint64),
	}
}
