package emu_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/insts"
)

const (
	codeSeg  = 0x1000
	stackSeg = 0x3000
	stackTop = 0x0100
)

// loadProgram places code at codeSeg:0000 and points CS:IP and SS:SP at
// it.
func loadProgram(e *emu.Emulator, code ...byte) {
	e.Memory().Load(emu.Linear(codeSeg, 0), code)

	rf := e.RegFile()
	rf.Write16(insts.RegCS, codeSeg)
	rf.IP = 0
	rf.Write16(insts.RegSS, stackSeg)
	rf.Write16(insts.RegSP, stackTop)
}

func stepN(e *emu.Emulator, n int) {
	for i := 0; i < n; i++ {
		Expect(e.Step().Err).NotTo(HaveOccurred())
	}
}

func stackWord(e *emu.Emulator, i int) uint16 {
	rf := e.RegFile()
	sp := rf.Read16(insts.RegSP) + uint16(2*i)
	return e.Memory().Read16(emu.Linear(rf.Read16(insts.RegSS), sp))
}

// setVector points interrupt vector v at seg:off.
func setVector(e *emu.Emulator, v uint8, seg, off uint16) {
	e.Memory().Write16(4*uint32(v), off)
	e.Memory().Write16(4*uint32(v)+2, seg)
}

var farJumpToZero = []byte{0xEA, 0x00, 0x00, 0x00, 0x00}

var _ = Describe("Emulator", func() {
	var (
		e         *emu.Emulator
		stdoutBuf *bytes.Buffer
	)

	BeforeEach(func() {
		stdoutBuf = &bytes.Buffer{}
		e = emu.NewEmulator(emu.WithStdout(stdoutBuf))
	})

	Describe("NewEmulator", func() {
		It("should create an emulator with initialized components", func() {
			Expect(e.RegFile()).NotTo(BeNil())
			Expect(e.Memory()).NotTo(BeNil())
			Expect(e.Ports()).NotTo(BeNil())
			Expect(e.InstructionCount()).To(BeZero())
		})

		It("should start halted before anything is loaded", func() {
			Expect(e.Halted()).To(BeTrue())
			Expect(e.Step().Halted).To(BeTrue())
		})
	})

	Describe("LoadBIOS", func() {
		It("should set the boot register state", func() {
			e.RegFile().Write16(insts.RegAX, 0xFFFF)
			e.RegFile().SetFlag(insts.FlagTF, true)

			e.LoadBIOS([]byte{0x90})

			rf := e.RegFile()
			Expect(rf.Read16(insts.RegCS)).To(Equal(uint16(emu.BIOSSegment)))
			Expect(rf.IP).To(Equal(uint16(emu.BIOSOffset)))
			Expect(rf.Read8(insts.RegDL)).To(Equal(byte(emu.BootDrive)))
			Expect(rf.Read16(insts.RegAX)).To(BeZero())
			Expect(rf.IsSet(insts.FlagTF)).To(BeFalse())
			Expect(e.Memory().Read8(0xF0100)).To(Equal(byte(0x90)))
		})

		It("should truncate oversized images", func() {
			image := make([]byte, emu.BIOSMaxSize+16)
			for i := range image {
				image[i] = 0xAA
			}

			e.LoadBIOS(image)

			last := emu.Linear(emu.BIOSSegment, emu.BIOSOffset) + emu.BIOSMaxSize
			Expect(e.Memory().Read8(last - 1)).To(Equal(byte(0xAA)))
			Expect(e.Memory().Read8(last)).To(BeZero())
		})
	})

	Describe("Run", func() {
		It("should store AX and halt on a far jump to 0:0", func() {
			bios := []byte{
				0xB8, 0x34, 0x12, // MOV AX,0x1234
				0xA3, 0x00, 0x01, // MOV [0x100],AX
			}
			bios = append(bios, farJumpToZero...)
			e.LoadBIOS(bios)

			Expect(e.Run()).To(Equal(emu.ExitHalt))

			ds := e.RegFile().Read16(insts.RegDS)
			addr := emu.Linear(ds, 0x100)
			Expect(e.Memory().Read8(addr)).To(Equal(byte(0x34)))
			Expect(e.Memory().Read8(addr + 1)).To(Equal(byte(0x12)))
			Expect(e.Halted()).To(BeTrue())
			Expect(e.InstructionCount()).To(Equal(uint64(3)))
		})

		It("should run a counted loop", func() {
			bios := []byte{
				0xB9, 0x03, 0x00, // MOV CX,3
				0x40,       // INC AX
				0xE2, 0xFD, // LOOP -3
			}
			bios = append(bios, farJumpToZero...)
			e.LoadBIOS(bios)

			Expect(e.Run()).To(Equal(emu.ExitHalt))
			Expect(e.RegFile().Read16(insts.RegAX)).To(Equal(uint16(3)))
			Expect(e.RegFile().Read16(insts.RegCX)).To(BeZero())
		})

		It("should call and return", func() {
			bios := []byte{0xE8, 0x05, 0x00} // CALL +5
			bios = append(bios, farJumpToZero...)
			bios = append(bios,
				0xB8, 0x07, 0x00, // MOV AX,7
				0xC3, // RET
			)
			e.LoadBIOS(bios)
			e.RegFile().Write16(insts.RegSS, stackSeg)
			e.RegFile().Write16(insts.RegSP, stackTop)

			Expect(e.Run()).To(Equal(emu.ExitHalt))
			Expect(e.RegFile().Read16(insts.RegAX)).To(Equal(uint16(7)))
			Expect(e.RegFile().Read16(insts.RegSP)).To(Equal(uint16(stackTop)))
		})

		It("should stop at the instruction limit", func() {
			e = emu.NewEmulator(emu.WithMaxInstructions(100))
			loadProgram(e, 0xEB, 0xFE) // JMP $

			code, err := e.RunContext(context.Background())

			Expect(code).To(Equal(emu.ExitMaxInstructions))
			Expect(err).To(MatchError(emu.ErrMaxInstructions))
			Expect(e.InstructionCount()).To(Equal(uint64(100)))
		})

		It("should stop when the context is canceled", func() {
			e = emu.NewEmulator(emu.WithTimerInterval(10))
			loadProgram(e, 0xEB, 0xFE)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			code, err := e.RunContext(ctx)

			Expect(code).To(Equal(emu.ExitCanceled))
			Expect(err).To(MatchError(context.Canceled))
			Expect(e.InstructionCount()).To(Equal(uint64(10)))
		})

		It("should report a runaway fetch", func() {
			e.RegFile().Write16(insts.RegCS, 0xFFFF)
			e.RegFile().IP = 0xFFFF

			result := e.Step()
			Expect(result.Err).To(MatchError(emu.ErrInvalidAddressRange))

			Expect(e.Run()).To(Equal(emu.ExitRunaway))
		})
	})

	Describe("Step", func() {
		It("should report the semantic op and memory operand", func() {
			loadProgram(e, 0x89, 0x07) // MOV [BX],AX

			result := e.Step()

			Expect(result.Op).To(Equal(insts.OpALURM))
			Expect(result.MemOperand).To(BeTrue())
			Expect(e.RegFile().IP).To(Equal(uint16(2)))
		})

		It("should report fetch and operand addresses", func() {
			loadProgram(e, 0x89, 0x07) // MOV [BX],AX
			e.RegFile().Write16(insts.RegDS, 0x2000)
			e.RegFile().Write16(insts.RegBX, 0x0010)

			result := e.Step()

			Expect(result.Opcode).To(Equal(byte(0x89)))
			Expect(result.FetchAddr).To(Equal(emu.Linear(codeSeg, 0)))
			Expect(result.MemAddr).To(Equal(uint32(0x20010)))
		})

		It("should report the group extension", func() {
			loadProgram(e, 0xF7, 0xE3) // MUL BX

			result := e.Step()

			Expect(result.Op).To(Equal(insts.OpGroupMulDiv))
			Expect(result.Ext).To(Equal(uint8(4)))
			Expect(result.MemOperand).To(BeFalse())
		})

		It("should report whether a conditional jump was taken", func() {
			loadProgram(e,
				0x74, 0x00, // JZ +0
				0x74, 0x00, // JZ +0
			)

			Expect(e.Step().Taken).To(BeFalse())

			e.RegFile().SetFlag(insts.FlagZF, true)
			Expect(e.Step().Taken).To(BeTrue())
		})

		It("should push and pop registers", func() {
			loadProgram(e,
				0x50, // PUSH AX
				0x5B, // POP BX
			)
			e.RegFile().Write16(insts.RegAX, 0xBEEF)

			e.Step()
			Expect(e.RegFile().Read16(insts.RegSP)).To(Equal(uint16(stackTop - 2)))
			Expect(stackWord(e, 0)).To(Equal(uint16(0xBEEF)))

			e.Step()
			Expect(e.RegFile().Read16(insts.RegBX)).To(Equal(uint16(0xBEEF)))
			Expect(e.RegFile().Read16(insts.RegSP)).To(Equal(uint16(stackTop)))
		})

		It("should exchange registers", func() {
			loadProgram(e, 0x87, 0xD8) // XCHG BX,AX
			e.RegFile().Write16(insts.RegAX, 1)
			e.RegFile().Write16(insts.RegBX, 2)

			e.Step()

			Expect(e.RegFile().Read16(insts.RegAX)).To(Equal(uint16(2)))
			Expect(e.RegFile().Read16(insts.RegBX)).To(Equal(uint16(1)))
		})

		It("should sign-extend AL with CBW", func() {
			loadProgram(e,
				0xB0, 0x80, // MOV AL,0x80
				0x98, // CBW
			)

			stepN(e, 2)

			Expect(e.RegFile().Read16(insts.RegAX)).To(Equal(uint16(0xFF80)))
		})

		It("should load an effective address", func() {
			loadProgram(e, 0x8D, 0x47, 0x10) // LEA AX,[BX+0x10]
			e.RegFile().Write16(insts.RegBX, 0x1230)
			e.RegFile().Write16(insts.RegDS, 0x4000)

			e.Step()

			Expect(e.RegFile().Read16(insts.RegAX)).To(Equal(uint16(0x1240)))
			Expect(e.RegFile().IP).To(Equal(uint16(3)))
		})

		It("should apply a segment override to the next access", func() {
			loadProgram(e,
				0x26,       // ES:
				0x8B, 0x07, // MOV AX,[BX]
			)
			rf := e.RegFile()
			rf.Write16(insts.RegES, 0x5000)
			rf.Write16(insts.RegBX, 0x0010)
			e.Memory().Write16(emu.Linear(0x5000, 0x10), 0xCAFE)

			stepN(e, 2)

			Expect(rf.Read16(insts.RegAX)).To(Equal(uint16(0xCAFE)))
			Expect(rf.IP).To(Equal(uint16(3)))
		})

		It("should multiply into DX:AX", func() {
			loadProgram(e, 0xF7, 0xE3) // MUL BX
			rf := e.RegFile()
			rf.Write16(insts.RegAX, 0x1000)
			rf.Write16(insts.RegBX, 0x0100)

			e.Step()

			Expect(rf.Read16(insts.RegDX)).To(Equal(uint16(0x0010)))
			Expect(rf.Read16(insts.RegAX)).To(BeZero())
			Expect(rf.IsSet(insts.FlagCF)).To(BeTrue())
		})

		It("should divide DX:AX", func() {
			loadProgram(e, 0xF7, 0xF3) // DIV BX
			rf := e.RegFile()
			rf.Write16(insts.RegDX, 0x0001)
			rf.Write16(insts.RegAX, 0x0005)
			rf.Write16(insts.RegBX, 0x0010)

			e.Step()

			Expect(rf.Read16(insts.RegAX)).To(Equal(uint16(0x1000)))
			Expect(rf.Read16(insts.RegDX)).To(Equal(uint16(0x0005)))
			Expect(rf.IP).To(Equal(uint16(2)))
		})

		It("should adjust BCD addition with DAA", func() {
			loadProgram(e,
				0xB0, 0x15, // MOV AL,0x15
				0x04, 0x27, // ADD AL,0x27
				0x27, // DAA
			)

			stepN(e, 3)

			Expect(e.RegFile().Read8(insts.RegAL)).To(Equal(byte(0x42)))
			Expect(e.RegFile().IsSet(insts.FlagAF)).To(BeTrue())
			Expect(e.RegFile().IsSet(insts.FlagCF)).To(BeFalse())
			Expect(e.RegFile().IP).To(Equal(uint16(5)))
		})

		It("should reset all state", func() {
			loadProgram(e, 0x40)
			e.Step()

			e.Reset()

			Expect(e.InstructionCount()).To(BeZero())
			Expect(e.RegFile().Read16(insts.RegAX)).To(BeZero())
			Expect(e.Memory().Read8(emu.Linear(codeSeg, 0))).To(BeZero())
			Expect(e.Halted()).To(BeTrue())
		})
	})

	Describe("WithTracer", func() {
		It("should log every instruction at trace level", func() {
			var logBuf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logBuf,
				&slog.HandlerOptions{Level: emu.LevelTrace}))
			e = emu.NewEmulator(emu.WithTracer(logger))
			loadProgram(e, 0x40, 0x40)

			stepN(e, 2)

			Expect(logBuf.String()).To(ContainSubstring("op=IncDecReg"))
			Expect(strings.Count(logBuf.String(), "msg=step")).To(Equal(2))
		})

		It("should stay quiet above trace level", func() {
			var logBuf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logBuf,
				&slog.HandlerOptions{Level: slog.LevelInfo}))
			e = emu.NewEmulator(emu.WithTracer(logger))
			loadProgram(e, 0x40)

			e.Step()

			Expect(logBuf.String()).NotTo(ContainSubstring("msg=step"))
		})
	})

	Describe("FlagString", func() {
		It("should name the set flags", func() {
			Expect(emu.FlagString(0xF203)).To(Equal("CF|IF"))
			Expect(emu.FlagString(emu.FlagsReserved)).To(Equal("-"))
		})
	})

	Describe("DumpState", func() {
		It("should render registers and flags", func() {
			e.RegFile().Write16(insts.RegAX, 0xABCD)
			e.RegFile().SetFlag(insts.FlagZF, true)

			var out bytes.Buffer
			e.DumpState(&out)

			Expect(out.String()).To(ContainSubstring("abcd"))
			Expect(out.String()).To(ContainSubstring("ZF"))
			Expect(out.String()).To(ContainSubstring("Instructions"))
		})
	})
})
