// Package emu provides functional 8086 emulation.
package emu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sarchlab/tiny86/insts"
)

// Boot state.
const (
	BIOSSegment = 0xF000
	BIOSOffset  = 0x0100
	BIOSMaxSize = 0xFF00
	BootDrive   = 0x80
)

// Exit codes returned by Run.
const (
	ExitHalt            = 0
	ExitImageLoad       = 1
	ExitRunaway         = 2
	ExitMaxInstructions = 3
	ExitCanceled        = 4
)

var (
	// ErrInvalidAddressRange is returned when the instruction fetch window
	// runs past the end of memory.
	ErrInvalidAddressRange = errors.New("instruction fetch outside memory")

	// ErrMaxInstructions is returned when the instruction limit is reached.
	ErrMaxInstructions = errors.New("max instructions reached")
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true once CS:IP reaches 0000:0000.
	Halted bool

	// Op is the semantic opcode as first decoded, before any re-decode.
	Op insts.Op

	// Opcode is the raw opcode byte behind Op.
	Opcode byte

	// Ext is the reg field of the mod/reg/rm byte. Group opcodes use it to
	// select the operation.
	Ext uint8

	// MemOperand is true if the r/m operand addressed memory.
	MemOperand bool

	// MemAddr is the linear address of the memory operand, if any.
	MemAddr uint32

	// FetchAddr is the linear address the instruction was fetched from.
	FetchAddr uint32

	// Taken reports whether a conditional jump or loop branched.
	Taken bool

	// Iterations counts the element steps of a string instruction.
	Iterations int

	// Err is set if the emulator cannot continue.
	Err error
}

// Emulator executes 8086 instructions functionally.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	ports   *Ports
	decoder *insts.Decoder
	hooks   Hooks

	stdout io.Writer
	logger *slog.Logger
	trace  bool

	// Decode context. Handlers may rewrite it; the final state decides
	// the flag update and the instruction length.
	inst     insts.Instruction
	rmAddr   uint32
	toAddr   uint32
	fromAddr uint32
	fetchBuf [insts.MaxFetch]byte

	// Operand record of the last ALU-style operation. It persists across
	// instructions.
	opSrc    uint32
	opDst    uint32
	opResult int32

	// Prefix state. The counters hold the number of instructions the
	// prefix stays active for.
	segOverrideEn uint8
	segOverride   insts.Reg
	repOverrideEn uint8
	repMode       bool

	trapShadow    bool
	timerPending  bool
	timerInterval uint64

	iterations int
	taken      bool
	diskBuf    []byte

	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithStdout sets the writer the default hooks print characters to.
func WithStdout(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stdout = w
	}
}

// WithHooks sets the host hooks.
func WithHooks(hooks Hooks) EmulatorOption {
	return func(e *Emulator) {
		e.hooks = hooks
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithTracer logs every instruction to logger at LevelTrace.
func WithTracer(logger *slog.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
		e.trace = true
	}
}

// WithTimerInterval sets the number of instructions between timer ticks.
func WithTimerInterval(n uint64) EmulatorOption {
	return func(e *Emulator) {
		if n > 0 {
			e.timerInterval = n
		}
	}
}

// NewEmulator creates a new 8086 emulator.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	memory := NewMemory()

	e := &Emulator{
		regFile:       NewRegFile(memory),
		memory:        memory,
		ports:         NewPorts(memory),
		decoder:       insts.NewDecoder(),
		stdout:        os.Stdout,
		logger:        slog.Default(),
		timerInterval: TimerInterval,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.hooks == nil {
		e.hooks = NewDefaultHooks(e.stdout)
	}

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Ports returns the emulator's I/O port space.
func (e *Emulator) Ports() *Ports {
	return e.ports
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// Halted reports whether CS:IP is 0000:0000.
func (e *Emulator) Halted() bool {
	return e.regFile.Read16(insts.RegCS) == 0 && e.regFile.IP == 0
}

// LoadBIOS copies image to F000:0100 and sets the boot register state.
// Images longer than BIOSMaxSize are truncated.
func (e *Emulator) LoadBIOS(image []byte) {
	if len(image) > BIOSMaxSize {
		image = image[:BIOSMaxSize]
	}
	e.memory.Load(Linear(BIOSSegment, BIOSOffset), image)

	rf := e.regFile
	rf.Write16(insts.RegCS, BIOSSegment)
	rf.IP = BIOSOffset
	rf.Write8(insts.RegDL, BootDrive)
	rf.Write16(insts.RegAX, 0)
	rf.SetFlag(insts.FlagTF, false)

	e.logger.Info("loaded bios",
		"at", fmt.Sprintf("%04x:%04x", BIOSSegment, BIOSOffset),
		"size", len(image))
}

// Reset clears memory, registers, ports and all execution state.
func (e *Emulator) Reset() {
	e.memory.Reset()
	e.regFile.Reset()
	e.ports.Reset()

	e.inst = insts.Instruction{}
	e.rmAddr, e.toAddr, e.fromAddr = 0, 0, 0
	e.opSrc, e.opDst, e.opResult = 0, 0, 0
	e.segOverrideEn, e.segOverride = 0, 0
	e.repOverrideEn, e.repMode = 0, false
	e.trapShadow, e.timerPending = false, false
	e.instructionCount = 0
}

// Step executes a single instruction.
// Returns a StepResult indicating whether execution should continue.
func (e *Emulator) Step() StepResult {
	if e.Halted() {
		return StepResult{Halted: true}
	}

	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Err: ErrMaxInstructions}
	}

	rf := e.regFile
	cs, ip := rf.Read16(insts.RegCS), rf.IP
	addr := Linear(cs, ip)
	if addr+insts.MaxFetch > MemorySize {
		return StepResult{
			Err: fmt.Errorf("%w: %04x:%04x", ErrInvalidAddressRange, cs, ip),
		}
	}

	// 1. Fetch and decode
	e.memory.Fetch(addr, e.fetchBuf[:])
	e.decoder.DecodeInto(&e.inst, e.fetchBuf[:])
	if e.trace {
		e.traceStep(cs, ip)
	}

	if e.segOverrideEn > 0 {
		e.segOverrideEn--
	}
	if e.repOverrideEn > 0 {
		e.repOverrideEn--
	}

	result := StepResult{
		Op:         e.inst.Op,
		Opcode:     e.inst.Opcode,
		Ext:        e.inst.Reg,
		MemOperand: e.inst.HasModRM() && e.inst.Mod < 3,
		FetchAddr:  addr,
	}

	// 2. Resolve operands
	if e.inst.HasModRM() {
		e.resolveOperands()
		if result.MemOperand {
			result.MemAddr = e.rmAddr
		}
	}

	// 3. Execute
	e.iterations = 0
	e.taken = false
	e.execute()
	result.Iterations = e.iterations
	result.Taken = e.taken

	// 4. Advance and update flags
	rf.IP += e.instructionLength()
	e.updateFlags()

	e.instructionCount++
	e.pollInterrupts()

	result.Halted = e.Halted()
	return result
}

// Run executes instructions until the machine halts or an error occurs and
// returns the exit code.
func (e *Emulator) Run() int {
	code, _ := e.RunContext(context.Background())
	return code
}

// RunContext is Run with a stop signal. ctx is checked once per timer
// interval.
func (e *Emulator) RunContext(ctx context.Context) (int, error) {
	for {
		result := e.Step()

		if result.Halted {
			e.logger.Info("halted", "instructions", e.instructionCount)
			return ExitHalt, nil
		}

		if result.Err != nil {
			e.logger.Error("emulation stopped",
				"err", result.Err, "instructions", e.instructionCount)

			if errors.Is(result.Err, ErrMaxInstructions) {
				return ExitMaxInstructions, result.Err
			}
			return ExitRunaway, result.Err
		}

		if e.instructionCount%e.timerInterval == 0 {
			if err := ctx.Err(); err != nil {
				return ExitCanceled, err
			}
		}
	}
}

// execute dispatches on the semantic opcode.
func (e *Emulator) execute() {
	switch e.inst.Op {
	case insts.OpCondJump:
		e.condJump()
	case insts.OpMovRegImm:
		e.inst.W = e.inst.Opcode&8 != 0
		e.assign(e.regAddr(e.inst.Reg4), e.inst.Data0)
	case insts.OpIncDecReg:
		e.incDecReg()
	case insts.OpPushReg:
		e.push(e.regFile.Read16(insts.Reg(e.inst.Reg4)))
	case insts.OpPopReg:
		e.popTo(RegAddr(insts.Reg(e.inst.Reg4)))
	case insts.OpGroupIncDec:
		e.groupIncDec()
	case insts.OpGroupMulDiv:
		e.groupMulDiv()
	case insts.OpALUAccImm:
		e.aluAccImm()
	case insts.OpALURMImm:
		e.aluRMImm()
	case insts.OpALURM:
		e.aluRM()
	case insts.OpMovSegLea:
		e.movSegLea()
	case insts.OpMovAccMem:
		e.inst.Mod, e.inst.Reg, e.inst.RM = 0, 0, 6
		e.inst.Data1 = e.inst.Data0
		e.resolveOperands()
		e.assign(e.fromAddr, e.load(e.toAddr))
	case insts.OpShiftRotate:
		e.shiftRotate()
	case insts.OpLoop:
		e.loop()
	case insts.OpJmpCall:
		e.jmpCall()
	case insts.OpTestRM:
		e.test(e.fromAddr, e.load(e.toAddr))
	case insts.OpXchgAcc:
		e.inst.W = true
		e.toAddr = RegsBase
		e.fromAddr = e.regAddr(e.inst.Reg4)
		e.exchange()
	case insts.OpXchgRM:
		e.exchange()
	case insts.OpStringMove:
		e.stringMove()
	case insts.OpStringCompare:
		e.stringCompare()
	case insts.OpReturn:
		e.ret()
	case insts.OpMovRMImm:
		e.assign(e.fromAddr, e.inst.Data2)
	case insts.OpIn:
		e.in()
	case insts.OpOut:
		e.out()
	case insts.OpRep:
		e.repOverrideEn = 2
		e.repMode = e.inst.W
		if e.segOverrideEn > 0 {
			e.segOverrideEn++
		}
	case insts.OpSegOverride:
		e.segOverrideEn = 2
		e.segOverride = insts.Reg(e.inst.Sub)
		if e.repOverrideEn > 0 {
			e.repOverrideEn++
		}
	case insts.OpPushSeg:
		e.push(e.regFile.Read16(insts.Reg(e.inst.Sub)))
	case insts.OpPopSeg:
		e.popTo(RegAddr(insts.Reg(e.inst.Sub)))
	case insts.OpDecimalAdjust:
		e.decimalAdjust()
	case insts.OpASCIIAdjust:
		e.asciiAdjust()
	case insts.OpCBW:
		e.regFile.Write8(insts.RegAH, byte(-e.signOf(uint32(e.regFile.Read8(insts.RegAL)))))
	case insts.OpCWD:
		e.regFile.Write16(insts.RegDX, uint16(-e.signOf(uint32(e.regFile.Read16(insts.RegAX)))))
	case insts.OpCallFar:
		e.callFar()
	case insts.OpPushf:
		e.push(e.regFile.Flags())
	case insts.OpPopf:
		e.regFile.SetFlags(e.pop(0))
	case insts.OpSahf:
		e.regFile.SetFlags(e.regFile.Flags()&0xFF00 + uint16(e.regFile.Read8(insts.RegAH)))
	case insts.OpLahf:
		e.regFile.Write8(insts.RegAH, byte(e.regFile.Flags()))
	case insts.OpLoadFarPtr:
		e.inst.W, e.inst.D = true, true
		e.resolveOperands()
		e.assign(e.toAddr, e.load(e.fromAddr))
		e.assign(RegsBase+uint32(e.inst.Sub), e.load(e.rmAddr+2))
	case insts.OpInt3:
		e.regFile.IP++
		e.interrupt(VectorBreak)
	case insts.OpInt:
		e.regFile.IP += 2
		e.interrupt(uint8(e.inst.Data0))
	case insts.OpInto:
		e.regFile.IP++
		if e.flag(insts.FlagOF) {
			e.interrupt(VectorOverflow)
		}
	case insts.OpAAM:
		e.asciiMultiply()
	case insts.OpAAD:
		e.asciiDivide()
	case insts.OpSalc:
		e.regFile.Write8(insts.RegAL, byte(-b2u(e.flag(insts.FlagCF))))
	case insts.OpXlat:
		rf := e.regFile
		off := uint16(rf.Read8(insts.RegAL)) + rf.Read16(insts.RegBX)
		rf.Write8(insts.RegAL, e.memory.Read8(Linear(rf.Read16(e.dataSegment()), off)))
	case insts.OpCmc:
		e.regFile.SetFlag(insts.FlagCF, !e.flag(insts.FlagCF))
	case insts.OpFlagSet:
		e.regFile.SetFlag(insts.Flag(e.inst.Sub/2), e.inst.Sub&1 != 0)
	case insts.OpTestAccImm:
		e.test(RegsBase, e.inst.Data0)
	case insts.OpEscape:
		e.escape()
	}
}

// movSegLea handles MOV sreg (w clear), LEA (d clear) and POP r/m.
func (e *Emulator) movSegLea() {
	switch {
	case !e.inst.W:
		e.inst.W = true
		e.inst.Reg += 8
		e.resolveOperands()
		e.assign(e.toAddr, e.load(e.fromAddr))
	case !e.inst.D:
		e.segOverrideEn = 1
		e.segOverride = insts.RegZero
		e.resolveOperands()
		e.assign(e.fromAddr, e.rmAddr)
	default:
		e.popTo(e.rmAddr)
	}
}

// exchange swaps the destination and source operands with three XORs.
func (e *Emulator) exchange() {
	if e.toAddr == e.fromAddr {
		return
	}

	e.modify(e.toAddr, e.load(e.fromAddr), xor)
	e.modify(e.fromAddr, e.load(e.toAddr), xor)
	e.modify(e.toAddr, e.load(e.fromAddr), xor)
}

func (e *Emulator) portNumber() uint16 {
	if e.inst.Sub != 0 {
		return e.regFile.Read16(insts.RegDX)
	}
	return uint16(uint8(e.inst.Data0))
}

// in handles IN AL/AX from an immediate port or DX.
func (e *Emulator) in() {
	v := e.ports.In(e.portNumber(), e.inst.W)
	e.assign(RegsBase, uint32(v))
}

// out handles OUT to an immediate port or DX.
func (e *Emulator) out() {
	port := e.portNumber()
	v := e.move(uint32(e.ports.peek(port, e.inst.W)), e.load(RegsBase))
	e.ports.Out(port, uint16(v), e.inst.W)
}
