package emu_test

import (
	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/insts"
)

var _ = Describe("Interrupts", func() {
	var (
		mockCtrl  *gomock.Controller
		mockHooks *MockHooks
		e         *emu.Emulator
		rf        *emu.RegFile
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockHooks = NewMockHooks(mockCtrl)
		e = emu.NewEmulator(emu.WithHooks(mockHooks))
		rf = e.RegFile()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should push FLAGS, CS and IP and jump through the vector", func() {
		e.LoadBIOS([]byte{0xCD, 0x10}) // INT 0x10
		rf.Write16(insts.RegSS, stackSeg)
		rf.Write16(insts.RegSP, stackTop)
		rf.SetFlag(insts.FlagCF, true)
		rf.SetFlag(insts.FlagIF, true)
		setVector(e, 0x10, 0xF000, 0x0200)

		e.Step()

		Expect(rf.IP).To(Equal(uint16(0x0200)))
		Expect(rf.Read16(insts.RegCS)).To(Equal(uint16(0xF000)))
		Expect(rf.Read16(insts.RegSP)).To(Equal(uint16(stackTop - 6)))
		Expect(stackWord(e, 0)).To(Equal(uint16(0x0102)))
		Expect(stackWord(e, 1)).To(Equal(uint16(0xF000)))
		Expect(stackWord(e, 2)).To(Equal(uint16(0xF203)))
		Expect(rf.IsSet(insts.FlagIF)).To(BeFalse())
		Expect(rf.IsSet(insts.FlagTF)).To(BeFalse())
	})

	It("should return from an interrupt with IRET", func() {
		loadProgram(e, 0xCD, 0x21) // INT 0x21
		setVector(e, 0x21, codeSeg, 0x0010)
		e.Memory().Write8(emu.Linear(codeSeg, 0x0010), 0xCF) // IRET
		rf.SetFlag(insts.FlagDF, true)

		stepN(e, 2)

		Expect(rf.IP).To(Equal(uint16(2)))
		Expect(rf.Read16(insts.RegCS)).To(Equal(uint16(codeSeg)))
		Expect(rf.Read16(insts.RegSP)).To(Equal(uint16(stackTop)))
		Expect(rf.IsSet(insts.FlagDF)).To(BeTrue())
	})

	It("should vector a divide by zero to interrupt 0", func() {
		loadProgram(e, 0xF7, 0xF3) // DIV BX
		rf.Write16(insts.RegAX, 0x1234)
		rf.Write16(insts.RegDX, 0x0001)
		rf.Write16(insts.RegBX, 0)
		setVector(e, emu.VectorDivide, 0x2000, 0x0500)

		e.Step()

		Expect(rf.Read16(insts.RegAX)).To(Equal(uint16(0x1234)))
		Expect(rf.Read16(insts.RegDX)).To(Equal(uint16(0x0001)))
		Expect(rf.Read16(insts.RegCS)).To(Equal(uint16(0x2000)))
		Expect(rf.IP).To(Equal(uint16(0x0500)))
		Expect(stackWord(e, 1)).To(Equal(uint16(codeSeg)))
	})

	It("should vector a quotient overflow to interrupt 0", func() {
		loadProgram(e, 0xF6, 0xF3) // DIV BL
		rf.Write16(insts.RegAX, 0x1000)
		rf.Write8(insts.RegBL, 2)
		setVector(e, emu.VectorDivide, 0x2000, 0x0500)

		e.Step()

		Expect(rf.Read16(insts.RegAX)).To(Equal(uint16(0x1000)))
		Expect(rf.IP).To(Equal(uint16(0x0500)))
	})

	It("should raise interrupt 0 for AAM by zero", func() {
		loadProgram(e, 0xD4, 0x00) // AAM 0
		setVector(e, emu.VectorDivide, 0x2000, 0x0500)

		e.Step()

		Expect(rf.IP).To(Equal(uint16(0x0500)))
	})

	It("should trap after the instruction following TF", func() {
		loadProgram(e, 0x90, 0x90, 0x90)
		setVector(e, emu.VectorTrap, 0x2000, 0x0600)
		rf.SetFlag(insts.FlagTF, true)

		e.Step()
		Expect(rf.IP).To(Equal(uint16(1)))

		e.Step()
		Expect(rf.Read16(insts.RegCS)).To(Equal(uint16(0x2000)))
		Expect(rf.IP).To(Equal(uint16(0x0600)))
		Expect(stackWord(e, 0)).To(Equal(uint16(2)))
		Expect(rf.IsSet(insts.FlagTF)).To(BeFalse())
	})

	Context("with a short timer interval", func() {
		BeforeEach(func() {
			e = emu.NewEmulator(emu.WithHooks(mockHooks), emu.WithTimerInterval(2))
			rf = e.RegFile()
			setVector(e, emu.VectorTimer, 0x2000, 0x0700)
			setVector(e, emu.VectorKeyboard, 0x2000, 0x0800)
		})

		It("should deliver the timer tick when IF is set", func() {
			mockHooks.EXPECT().PollKey().Return(byte(0), false)
			loadProgram(e, 0x90, 0x90)
			rf.SetFlag(insts.FlagIF, true)

			e.Step()
			Expect(rf.IP).To(Equal(uint16(1)))

			e.Step()
			Expect(rf.Read16(insts.RegCS)).To(Equal(uint16(0x2000)))
			Expect(rf.IP).To(Equal(uint16(0x0700)))
		})

		It("should hold the tick while IF is clear", func() {
			loadProgram(e, 0x90, 0x90, 0x90)

			stepN(e, 3)

			Expect(rf.Read16(insts.RegCS)).To(Equal(uint16(codeSeg)))
			Expect(rf.IP).To(Equal(uint16(3)))
		})

		It("should hold the tick while a prefix is active", func() {
			loadProgram(e, 0x90, 0x26, 0x90, 0x90)
			rf.SetFlag(insts.FlagIF, true)

			stepN(e, 3)
			Expect(rf.Read16(insts.RegCS)).To(Equal(uint16(codeSeg)))
			Expect(rf.IP).To(Equal(uint16(3)))

			mockHooks.EXPECT().PollKey().Return(byte(0), false)
			e.Step()
			Expect(rf.IP).To(Equal(uint16(0x0700)))
		})

		It("should store a key and raise the keyboard interrupt", func() {
			mockHooks.EXPECT().PollKey().Return(byte('x'), true)
			loadProgram(e, 0x90, 0x90)
			rf.SetFlag(insts.FlagIF, true)

			stepN(e, 2)

			Expect(e.Memory().Read8(emu.KeyboardBuffer)).To(Equal(byte('x')))
			Expect(rf.IP).To(Equal(uint16(0x0800)))
			Expect(stackWord(e, 0)).To(Equal(uint16(0x0700)))
		})
	})
})
