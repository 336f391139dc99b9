package emu_test

import (
	"math/bits"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/insts"
)

var _ = Describe("Flags", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	// run executes a single two-byte register instruction with AX=a, BX=b.
	run := func(code []byte, a, b uint16) *emu.RegFile {
		e.Reset()
		loadProgram(e, code...)
		e.RegFile().Write16(insts.RegAX, a)
		e.RegFile().Write16(insts.RegBX, b)
		Expect(e.Step().Err).NotTo(HaveOccurred())
		return e.RegFile()
	}

	addAXBX := []byte{0x01, 0xD8} // ADD AX,BX
	subAXBX := []byte{0x29, 0xD8} // SUB AX,BX

	operands := []uint16{0x0000, 0x0001, 0x00FF, 0x7FFF, 0x8000, 0x8001, 0xFFFE, 0xFFFF}

	It("should set CF on ADD exactly when the sum wraps", func() {
		for _, a := range operands {
			for _, b := range operands {
				rf := run(addAXBX, a, b)
				sum := uint32(a) + uint32(b)

				Expect(rf.Read16(insts.RegAX)).To(Equal(uint16(sum)))
				Expect(rf.IsSet(insts.FlagCF)).To(Equal(sum > 0xFFFF),
					"ADD %04x,%04x", a, b)
			}
		}
	})

	It("should set CF on SUB exactly when it borrows", func() {
		for _, a := range operands {
			for _, b := range operands {
				rf := run(subAXBX, a, b)

				Expect(rf.Read16(insts.RegAX)).To(Equal(a - b))
				Expect(rf.IsSet(insts.FlagCF)).To(Equal(b > a),
					"SUB %04x,%04x", a, b)
			}
		}
	})

	It("should derive PF from the low byte only", func() {
		for _, v := range []uint16{0x0000, 0x0001, 0x0003, 0x0100, 0x0300, 0x01FE, 0xFF7F} {
			rf := run(addAXBX, v, 0)

			even := bits.OnesCount8(uint8(v))%2 == 0
			Expect(rf.IsSet(insts.FlagPF)).To(Equal(even), "result %04x", v)
		}
	})

	It("should set ZF and SF from the result", func() {
		rf := run(subAXBX, 5, 5)
		Expect(rf.IsSet(insts.FlagZF)).To(BeTrue())
		Expect(rf.IsSet(insts.FlagSF)).To(BeFalse())

		rf = run(subAXBX, 0, 1)
		Expect(rf.IsSet(insts.FlagZF)).To(BeFalse())
		Expect(rf.IsSet(insts.FlagSF)).To(BeTrue())
	})

	It("should set OF on signed overflow", func() {
		rf := run(addAXBX, 0x7FFF, 0x0001)
		Expect(rf.IsSet(insts.FlagOF)).To(BeTrue())

		rf = run(addAXBX, 0x0001, 0x0001)
		Expect(rf.IsSet(insts.FlagOF)).To(BeFalse())
	})

	It("should clear CF and OF on logic operations", func() {
		e.Reset()
		loadProgram(e, 0x31, 0xD8) // XOR AX,BX
		e.RegFile().SetFlag(insts.FlagCF, true)
		e.RegFile().SetFlag(insts.FlagOF, true)
		e.RegFile().Write16(insts.RegAX, 0x00F0)
		e.RegFile().Write16(insts.RegBX, 0x00F0)

		e.Step()

		rf := e.RegFile()
		Expect(rf.Read16(insts.RegAX)).To(BeZero())
		Expect(rf.IsSet(insts.FlagCF)).To(BeFalse())
		Expect(rf.IsSet(insts.FlagOF)).To(BeFalse())
		Expect(rf.IsSet(insts.FlagZF)).To(BeTrue())
	})

	It("should keep CF across INC", func() {
		e.Reset()
		loadProgram(e, 0x40) // INC AX
		e.RegFile().SetFlag(insts.FlagCF, true)
		e.RegFile().Write16(insts.RegAX, 0xFFFF)

		e.Step()

		Expect(e.RegFile().Read16(insts.RegAX)).To(BeZero())
		Expect(e.RegFile().IsSet(insts.FlagCF)).To(BeTrue())
		Expect(e.RegFile().IsSet(insts.FlagZF)).To(BeTrue())
	})
})
