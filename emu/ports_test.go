package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/insts"
)

var _ = Describe("Ports", func() {
	var (
		mem   *emu.Memory
		ports *emu.Ports
	)

	BeforeEach(func() {
		mem = emu.NewMemory()
		ports = emu.NewPorts(mem)
	})

	It("should acknowledge the PIC and tick the PIT on every read", func() {
		ports.Write8(emu.PortPIC, 0x20)
		ports.Write8(emu.PortPIT0, 5)

		ports.In(0x100, false)

		Expect(ports.Read8(emu.PortPIC)).To(BeZero())
		Expect(ports.Read8(emu.PortPIT0)).To(Equal(byte(4)))
		Expect(ports.Read8(emu.PortPIT2)).To(Equal(byte(4)))
	})

	It("should toggle the CGA retrace bits", func() {
		first := ports.In(emu.PortCGARetrace, false)
		second := ports.In(emu.PortCGARetrace, false)

		Expect(first).To(Equal(uint16(9)))
		Expect(second).To(BeZero())
	})

	It("should clear the keyboard status when the data port is read", func() {
		ports.Write8(emu.PortKeyStatus, 1)
		ports.Write8(emu.PortKeyboard, 0x1E)

		Expect(ports.In(emu.PortKeyboard, false)).To(Equal(uint16(0x1E)))
		Expect(ports.Read8(emu.PortKeyStatus)).To(BeZero())
	})

	It("should read words from two consecutive ports", func() {
		ports.Write8(0x300, 0x34)
		ports.Write8(0x301, 0x12)

		Expect(ports.In(0x300, true)).To(Equal(uint16(0x1234)))
	})

	It("should move the cursor through the CRT controller", func() {
		ports.Write8(emu.PortCRTIndex, 0x0F)
		ports.Out(emu.PortCRTData, 0xA5, false)

		Expect(mem.Read8(0x49D)).To(Equal(byte(0xA5 % 80)))
		Expect(mem.Read8(0x49E)).To(Equal(byte(0xA5 / 80)))

		Expect(ports.In(emu.PortCRTData, false)).To(Equal(uint16(0xA5)))
		ports.Write8(emu.PortCRTIndex, 0x0E)
		Expect(ports.In(emu.PortCRTData, false)).To(BeZero())
	})

	It("should store the CRT start address in the BIOS data area", func() {
		ports.Write8(emu.PortCRTIndex, 0x0C)
		ports.Out(emu.PortCRTData, 0x12, false)
		ports.Write8(emu.PortCRTIndex, 0x0D)
		ports.Out(emu.PortCRTData, 0x34, false)

		Expect(mem.Read16(0x4AD)).To(Equal(uint16(0x1234)))
	})

	It("should program the PIT reload value low byte first", func() {
		ports.Out(emu.PortPITControl, 0x36, false)
		ports.Out(emu.PortPIT0, 0x9C, false)
		ports.Out(emu.PortPIT0, 0x2E, false)

		Expect(mem.Read16(0x469 + emu.PortPIT0 - 1)).To(Equal(uint16(0x2E9C)))
	})

	It("should enable the speaker when gated and switched on", func() {
		Expect(ports.SpeakerEnabled()).To(BeFalse())

		ports.Out(emu.PortPITControl, 0xB6, false)
		ports.Out(emu.PortSpeaker, 0x03, false)

		Expect(ports.SpeakerEnabled()).To(BeTrue())
	})

	It("should track the Hercules resolution", func() {
		w, h := ports.GraphicsResolution()
		Expect(w).To(Equal(720))
		Expect(h).To(Equal(348))

		ports.Write8(emu.PortHercIndex, 1)
		ports.Out(emu.PortHercData, 40, false)
		ports.Write8(emu.PortHercIndex, 6)
		ports.Out(emu.PortHercData, 50, false)

		w, h = ports.GraphicsResolution()
		Expect(w).To(Equal(640))
		Expect(h).To(Equal(200))
	})

	It("should wrap a word write at the top of the port space", func() {
		ports.Out(0xFFFF, 0xBEEF, true)

		Expect(ports.Read8(0xFFFF)).To(Equal(byte(0xEF)))
		Expect(ports.Read8(0)).To(Equal(byte(0xBE)))
	})

	Describe("IN and OUT instructions", func() {
		var e *emu.Emulator

		BeforeEach(func() {
			e = emu.NewEmulator()
		})

		It("should write AL to an immediate port", func() {
			loadProgram(e,
				0xB0, 0x5A, // MOV AL,0x5A
				0xE6, 0x80, // OUT 0x80,AL
			)

			stepN(e, 2)

			Expect(e.Ports().Read8(0x80)).To(Equal(byte(0x5A)))
		})

		It("should read AL from the port in DX", func() {
			loadProgram(e, 0xEC) // IN AL,DX
			e.Ports().Write8(0x3F8, 0x77)
			e.RegFile().Write16(insts.RegDX, 0x3F8)

			e.Step()

			Expect(e.RegFile().Read8(insts.RegAL)).To(Equal(byte(0x77)))
			Expect(e.RegFile().IP).To(Equal(uint16(1)))
		})
	})
})
