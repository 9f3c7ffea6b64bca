// Package harness runs the randomized regression suite against an
// initiator/responder pair: random write sweeps, read-back sweeps, and
// out-of-range probing.
package harness

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/sarchlab/rwmem/bus"
	"github.com/sarchlab/rwmem/initiator"
)

// A TestID identifies one regression test. ParseTestID converts user-facing
// names into TestIDs at the configuration edge.
type TestID int

// The regression tests.
const (
	WriteRange TestID = iota
	ReadRange
	WriteReadRange
	OutOfRangeError
)

// AllTests lists every regression test in default running order.
var AllTests = []TestID{ReadRange, WriteRange, WriteReadRange, OutOfRangeError}

func (t TestID) String() string {
	switch t {
	case WriteRange:
		return "write-range"
	case ReadRange:
		return "read-range"
	case WriteReadRange:
		return "write-read-range"
	case OutOfRangeError:
		return "out-of-range-error"
	default:
		return fmt.Sprintf("TestID(%d)", int(t))
	}
}

// ParseTestID converts a test name into its TestID.
func ParseTestID(name string) (TestID, error) {
	for _, t := range AllTests {
		if t.String() == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("harness: unknown regression test %q", name)
}

// A MismatchError reports an expected-versus-observed difference found by a
// regression test. It is a harness-level failure, distinct from the error
// signal of the bus protocol.
type MismatchError struct {
	Test TestID
	Op   string
	Addr uint64

	Got     uint64
	Want    uint64
	GotErr  bool
	WantErr bool
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf(
		"%s: %s at address %#x returned (%d, error=%v), expected (%d, error=%v)",
		e.Test, e.Op, e.Addr, e.Got, e.GotErr, e.Want, e.WantErr)
}

// A Runner executes selected regression tests through one initiator.
type Runner struct {
	driver     *initiator.Comp
	memSize    uint64
	dataWidth  int
	initValues []uint64
	iterations int
	rng        *rand.Rand
	logger     *log.Logger

	written map[uint64]uint64
}

// Run executes the given tests in order. Mismatches found by a test are
// collected and reported together; a protocol timeout aborts the run
// immediately because the device is wedged.
func (r *Runner) Run(tests []TestID) error {
	var failures []error

	for _, t := range tests {
		r.logger.Printf("running %s", t)

		err := r.runOne(t)
		if errors.Is(err, initiator.ErrTimeout) {
			return err
		}
		if err != nil {
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

func (r *Runner) runOne(t TestID) error {
	switch t {
	case WriteRange:
		return r.writeRange()
	case ReadRange:
		return r.readRange()
	case WriteReadRange:
		return r.writeReadRange()
	case OutOfRangeError:
		return r.outOfRangeError()
	default:
		return fmt.Errorf("harness: unknown regression test %d", int(t))
	}
}

// writeRange writes random values and checks that every in-range write is
// acknowledged with the written value. When no iteration count is configured,
// it sweeps every address once; otherwise it picks addresses at random.
func (r *Runner) writeRange() error {
	var failures []error

	count := r.iterations
	if count == 0 {
		count = int(r.memSize)
	}

	for i := 0; i < count; i++ {
		value := r.randValue()

		addr := uint64(i) % r.memSize
		if r.iterations != 0 {
			addr = r.randAddr()
		}

		got, gotErr, err := r.driver.Write(addr, value)
		if err != nil {
			return err
		}

		r.written[addr] = value

		if got != value || gotErr {
			failures = append(failures, &MismatchError{
				Test: WriteRange, Op: "write", Addr: addr,
				Got: got, Want: value, GotErr: gotErr,
			})
		}
	}

	return errors.Join(failures...)
}

// readRange reads back every previously written address. With no writes
// recorded it verifies the initialization list instead: every word the list
// does not cover must read as zero.
func (r *Runner) readRange() error {
	var failures []error

	expected := r.written
	if len(expected) == 0 {
		r.logger.Printf("no writes recorded, checking initialization values")

		expected = make(map[uint64]uint64, r.memSize)
		for addr := uint64(0); addr < r.memSize; addr++ {
			expected[addr] = 0
			if addr < uint64(len(r.initValues)) {
				expected[addr] = r.initValues[addr] & bus.Mask(r.dataWidth)
			}
		}
	}

	for addr, want := range expected {
		got, gotErr, err := r.driver.Read(addr)
		if err != nil {
			return err
		}

		if got != want || gotErr {
			failures = append(failures, &MismatchError{
				Test: ReadRange, Op: "read", Addr: addr,
				Got: got, Want: want, GotErr: gotErr,
			})
		}
	}

	return errors.Join(failures...)
}

func (r *Runner) writeReadRange() error {
	err := r.writeRange()
	if err != nil {
		return err
	}

	return r.readRange()
}

// outOfRangeError reads from a random address beyond the store and expects
// the error signal. The probe is skipped when the address space is too narrow
// to express an out-of-range address.
func (r *Runner) outOfRangeError() error {
	addr, ok := r.randOutOfRangeAddr()
	if !ok {
		r.logger.Printf(
			"%s: no out-of-range address fits in %d bits, skipping",
			OutOfRangeError, r.dataWidth)
		return nil
	}

	got, gotErr, err := r.driver.Read(addr)
	if err != nil {
		return err
	}

	if !gotErr {
		return &MismatchError{
			Test: OutOfRangeError, Op: "read", Addr: addr,
			Got: got, GotErr: false, WantErr: true,
		}
	}

	return nil
}

func (r *Runner) randValue() uint64 {
	return r.rng.Uint64() & bus.Mask(r.dataWidth)
}

func (r *Runner) randAddr() uint64 {
	return r.rng.Uint64() % r.memSize
}

// randOutOfRangeAddr picks an address in [memSize+1, memSize^2) that still
// fits in the address signal width.
func (r *Runner) randOutOfRangeAddr() (uint64, bool) {
	maxAddr := bus.Mask(r.dataWidth)
	if maxAddr < r.memSize {
		return 0, false
	}

	lo := r.memSize + 1
	hi := r.memSize * r.memSize
	if hi > maxAddr {
		hi = maxAddr
	}
	if hi <= lo {
		return r.memSize, true
	}

	return lo + r.rng.Uint64()%(hi-lo), true
}
