package initiator

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/rwmem/bus"
	"github.com/sarchlab/rwmem/responder"
	"github.com/sarchlab/rwmem/sim/timing"
)

// stubDevice answers the Device interface but never updates its wires. It
// stands in for a wedged responder.
type stubDevice struct {
	name      string
	wires     *bus.Wires
	dataWidth int
}

func (d *stubDevice) Name() string {
	return d.name
}

func (d *stubDevice) Wires() *bus.Wires {
	return d.wires
}

func (d *stubDevice) DataWidth() int {
	return d.dataWidth
}

func (d *stubDevice) Handle(_ timing.Event) error {
	return nil
}

var _ = Describe("Initiator with a memory responder", func() {
	var (
		engine *timing.SerialEngine
		memory *responder.Comp
		driver *Comp
	)

	BeforeEach(func() {
		engine = timing.NewSerialEngine()
		memory = responder.MakeBuilder().
			WithMemSize(10).
			WithDataWidth(8).
			Build("Memory")
		driver = MakeBuilder().
			WithEngine(engine).
			WithDevice(memory).
			Build("Driver")
	})

	It("should round-trip a write and a read", func() {
		data, errBit, err := driver.Write(3, 42)
		Expect(err).To(BeNil())
		Expect(errBit).To(BeFalse())
		Expect(data).To(Equal(uint64(42)))

		data, errBit, err = driver.Read(3)
		Expect(err).To(BeNil())
		Expect(errBit).To(BeFalse())
		Expect(data).To(Equal(uint64(42)))
	})

	It("should report the error signal for an out-of-range read", func() {
		_, errBit, err := driver.Read(15)

		Expect(err).To(BeNil())
		Expect(errBit).To(BeTrue())
	})

	It("should return the same value for repeated reads", func() {
		_, _, err := driver.Write(4, 99)
		Expect(err).To(BeNil())

		for i := 0; i < 3; i++ {
			data, errBit, err := driver.Read(4)
			Expect(err).To(BeNil())
			Expect(errBit).To(BeFalse())
			Expect(data).To(Equal(uint64(99)))
		}
	})

	It("should read zero everywhere before any write", func() {
		for addr := uint64(0); addr < 10; addr++ {
			data, errBit, err := driver.Read(addr)
			Expect(err).To(BeNil())
			Expect(errBit).To(BeFalse())
			Expect(data).To(Equal(uint64(0)))
		}
	})

	It("should read back initialization values", func() {
		memory = responder.MakeBuilder().
			WithMemSize(10).
			WithDataWidth(8).
			WithInitValues([]uint64{5, 6, 7}).
			Build("Memory2")
		driver = MakeBuilder().
			WithEngine(engine).
			WithDevice(memory).
			Build("Driver2")

		data, _, err := driver.Read(1)
		Expect(err).To(BeNil())
		Expect(data).To(Equal(uint64(6)))

		data, _, err = driver.Read(5)
		Expect(err).To(BeNil())
		Expect(data).To(Equal(uint64(0)))
	})

	It("should complete a write in exactly two cycles", func() {
		start := engine.Now()

		_, _, err := driver.Write(3, 42)

		Expect(err).To(BeNil())
		Expect(engine.Now() - start).To(Equal(timing.VTimeInCycle(2)))
	})

	It("should complete a read at a held address in one cycle", func() {
		_, _, err := driver.Read(3)
		Expect(err).To(BeNil())

		start := engine.Now()
		_, _, err = driver.Read(3)

		Expect(err).To(BeNil())
		Expect(engine.Now() - start).To(Equal(timing.VTimeInCycle(1)))
	})

	It("should complete a read at a fresh address in two cycles", func() {
		_, _, err := driver.Read(3)
		Expect(err).To(BeNil())

		start := engine.Now()
		_, _, err = driver.Read(7)

		Expect(err).To(BeNil())
		Expect(engine.Now() - start).To(Equal(timing.VTimeInCycle(2)))
	})

	It("should run the concrete write-read-error scenario", func() {
		data, errBit, err := driver.Write(3, 42)
		Expect(err).To(BeNil())
		Expect(data).To(Equal(uint64(42)))
		Expect(errBit).To(BeFalse())

		data, errBit, err = driver.Read(3)
		Expect(err).To(BeNil())
		Expect(data).To(Equal(uint64(42)))
		Expect(errBit).To(BeFalse())

		_, errBit, err = driver.Read(15)
		Expect(err).To(BeNil())
		Expect(errBit).To(BeTrue())
	})
})

var _ = Describe("Initiator with a wedged device", func() {
	var (
		engine *timing.SerialEngine
		device *stubDevice
		driver *Comp
	)

	BeforeEach(func() {
		engine = timing.NewSerialEngine()
		device = &stubDevice{
			name:      "Dead",
			wires:     &bus.Wires{},
			dataWidth: 8,
		}
		driver = MakeBuilder().
			WithEngine(engine).
			WithDevice(device).
			Build("Driver")
	})

	It("should fail a write with a timeout after 20 polled cycles", func() {
		start := engine.Now()

		_, _, err := driver.Write(3, 42)

		Expect(err).To(MatchError(ErrTimeout))
		Expect(engine.Now() - start).To(Equal(timing.VTimeInCycle(21)),
			"one request cycle plus 20 polled cycles")
	})

	It("should fail a read with a timeout after 20 polled cycles", func() {
		start := engine.Now()

		_, _, err := driver.Read(3)

		Expect(err).To(MatchError(ErrTimeout))
		Expect(engine.Now() - start).To(Equal(timing.VTimeInCycle(21)))
	})
})

var _ = Describe("Initiator driving the clock", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		device   *stubDevice
		driver   *Comp
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)
		device = &stubDevice{
			name:      "Stub",
			wires:     &bus.Wires{Ack: true, ReadData: 99},
			dataWidth: 4,
		}
		driver = MakeBuilder().
			WithEngine(engine).
			WithDevice(device).
			Build("Driver")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should schedule a tick for the device at the next cycle", func() {
		engine.EXPECT().Now().Return(timing.VTimeInCycle(5))
		engine.EXPECT().
			Schedule(gomock.AssignableToTypeOf(timing.TickEvent{})).
			Do(func(e timing.Event) {
				Expect(e.Time()).To(Equal(timing.VTimeInCycle(6)))
				Expect(e.Handler()).To(BeIdenticalTo(timing.Handler(device)))
			})
		engine.EXPECT().RunUntil(timing.VTimeInCycle(6)).Return(nil)

		data, errBit, err := driver.Read(3)

		Expect(err).To(BeNil())
		Expect(errBit).To(BeFalse())
		Expect(data).To(Equal(uint64(99)))
	})

	It("should clamp the address and data to the device width", func() {
		engine.EXPECT().Now().Return(timing.VTimeInCycle(0))
		engine.EXPECT().
			Schedule(gomock.AssignableToTypeOf(timing.TickEvent{}))
		engine.EXPECT().RunUntil(timing.VTimeInCycle(1)).Return(nil)

		_, _, err := driver.Write(0x1f, 0x1ff)

		Expect(err).To(BeNil())
		Expect(device.wires.Address).To(Equal(uint64(0xf)))
		Expect(device.wires.Data).To(Equal(uint64(0xf)))
	})
})
