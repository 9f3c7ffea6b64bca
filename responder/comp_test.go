package responder

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rwmem/bus"
	"github.com/sarchlab/rwmem/sim/timing"
)

var _ = Describe("Responder", func() {
	var (
		comp  *Comp
		wires *bus.Wires
	)

	BeforeEach(func() {
		comp = MakeBuilder().
			WithMemSize(10).
			WithDataWidth(8).
			Build("Memory")
		wires = comp.Wires()
	})

	It("should assert error for an out-of-range address", func() {
		wires.Address = 15

		comp.Tick()

		Expect(wires.Error).To(BeTrue())
		Expect(wires.Ack).To(BeFalse())
	})

	It("should not assert error for an in-range address", func() {
		wires.Address = 9

		comp.Tick()

		Expect(wires.Error).To(BeFalse())
	})

	It("should commit a write in the requested cycle", func() {
		wires.Address = 3
		wires.Data = 42
		wires.WriteEnable = true

		comp.Tick()

		Expect(comp.PeekWord(3)).To(Equal(uint64(42)))
		Expect(wires.ReadData).To(Equal(uint64(42)))
	})

	It("should acknowledge a write one cycle after the request", func() {
		wires.Address = 3
		wires.Data = 42
		wires.WriteEnable = true

		comp.Tick()
		Expect(wires.Ack).To(BeFalse())

		wires.WriteEnable = false
		comp.Tick()
		Expect(wires.Ack).To(BeTrue())
		Expect(wires.Error).To(BeFalse())
	})

	It("should not acknowledge a read in the cycle the address changed",
		func() {
			wires.Address = 5

			comp.Tick()

			Expect(wires.Ack).To(BeFalse())
		})

	It("should acknowledge a read while the address is held stable", func() {
		wires.Address = 5

		comp.Tick()
		comp.Tick()
		Expect(wires.Ack).To(BeTrue())

		comp.Tick()
		Expect(wires.Ack).To(BeTrue(), "ack is a level signal")
	})

	It("should suppress the read acknowledge while a write is in progress",
		func() {
			wires.Address = 5
			comp.Tick()
			comp.Tick()
			Expect(wires.Ack).To(BeTrue())

			wires.WriteEnable = true
			wires.Data = 1
			comp.Tick()
			Expect(wires.Ack).To(BeFalse())
		})

	It("should mask written data to the data width", func() {
		wires.Address = 0
		wires.Data = 0x1ff
		wires.WriteEnable = true

		comp.Tick()

		Expect(comp.PeekWord(0)).To(Equal(uint64(0xff)))
	})

	Context("with guarded writes", func() {
		It("should not mutate the store on an out-of-range write", func() {
			wires.Address = 12
			wires.Data = 42
			wires.WriteEnable = true

			comp.Tick()

			Expect(wires.Error).To(BeTrue())
			Expect(comp.PeekWord(2)).To(Equal(uint64(0)))
		})
	})

	Context("with legacy writes", func() {
		BeforeEach(func() {
			comp = MakeBuilder().
				WithMemSize(10).
				WithDataWidth(8).
				WithWritePolicy(LegacyWrites).
				Build("Memory")
			wires = comp.Wires()
		})

		It("should alias an out-of-range write into the store", func() {
			wires.Address = 12
			wires.Data = 42
			wires.WriteEnable = true

			comp.Tick()

			Expect(wires.Error).To(BeTrue())
			Expect(comp.PeekWord(2)).To(Equal(uint64(42)))
		})
	})

	It("should tick on a tick event", func() {
		wires.Address = 15

		err := comp.Handle(timing.MakeTickEvent(comp, 1))

		Expect(err).To(BeNil())
		Expect(wires.Error).To(BeTrue())
	})
})

var _ = Describe("Builder", func() {
	It("should pre-populate the store and zero-pad the rest", func() {
		comp := MakeBuilder().
			WithMemSize(10).
			WithInitValues([]uint64{7, 8, 9}).
			Build("Memory")

		Expect(comp.PeekWord(0)).To(Equal(uint64(7)))
		Expect(comp.PeekWord(1)).To(Equal(uint64(8)))
		Expect(comp.PeekWord(2)).To(Equal(uint64(9)))
		Expect(comp.PeekWord(3)).To(Equal(uint64(0)))
		Expect(comp.PeekWord(9)).To(Equal(uint64(0)))
	})

	It("should mask initialization values to the data width", func() {
		comp := MakeBuilder().
			WithMemSize(4).
			WithDataWidth(4).
			WithInitValues([]uint64{0x1f}).
			Build("Memory")

		Expect(comp.PeekWord(0)).To(Equal(uint64(0xf)))
	})

	It("should reject an empty store", func() {
		Expect(func() {
			MakeBuilder().WithMemSize(0).Build("Memory")
		}).To(Panic())
	})

	It("should reject an invalid data width", func() {
		Expect(func() {
			MakeBuilder().WithDataWidth(0).Build("Memory")
		}).To(Panic())

		Expect(func() {
			MakeBuilder().WithDataWidth(65).Build("Memory")
		}).To(Panic())
	})

	It("should reject an initialization list longer than the store", func() {
		Expect(func() {
			MakeBuilder().
				WithMemSize(2).
				WithInitValues([]uint64{1, 2, 3}).
				Build("Memory")
		}).To(Panic())
	})
})
