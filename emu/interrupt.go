package emu

import "github.com/sarchlab/tiny86/insts"

// TimerInterval is the default number of instructions between timer ticks.
const TimerInterval = 20000

// Interrupt vectors raised by the core.
const (
	VectorDivide   = 0x00
	VectorTrap     = 0x01
	VectorBreak    = 0x03
	VectorOverflow = 0x04
	VectorKeyboard = 0x07
	VectorTimer    = 0x0A
)

// KeyboardBuffer is the linear address the keyboard hook's byte is stored
// at before the keyboard interrupt.
const KeyboardBuffer = 0x4A6

const keyEscape = 0x1B

// interrupt delivers vector: it pushes FLAGS, CS and IP, loads CS:IP from
// the vector table and clears TF and IF.
func (e *Emulator) interrupt(vector uint8) {
	e.setOpcode(opcodeINT)

	rf := e.regFile
	e.push(rf.Flags())
	e.push(rf.Read16(insts.RegCS))
	e.push(rf.IP)

	base := 4 * uint32(vector)
	e.assign(RegAddr(insts.RegCS), uint32(e.memory.Read16(base+2)))
	rf.IP = uint16(e.move(uint32(rf.IP), uint32(e.memory.Read16(base))))

	rf.SetFlag(insts.FlagTF, false)
	rf.SetFlag(insts.FlagIF, false)
}

// pollInterrupts runs the end-of-instruction checks: the periodic timer,
// the single-step trap and the keyboard.
func (e *Emulator) pollInterrupts() {
	if e.instructionCount%e.timerInterval == 0 {
		e.timerPending = true
	}

	if e.trapShadow {
		e.interrupt(VectorTrap)
	}
	e.trapShadow = e.flag(insts.FlagTF)

	if e.timerPending && e.segOverrideEn == 0 && e.repOverrideEn == 0 &&
		e.flag(insts.FlagIF) && !e.flag(insts.FlagTF) {
		e.interrupt(VectorTimer)
		e.timerPending = false
		e.pollKeyboard()
	}
}

// pollKeyboard asks the keyboard hook for a byte. ESC re-arms the timer so
// the BIOS sees a second tick for the key sequence that follows.
func (e *Emulator) pollKeyboard() {
	key, ok := e.hooks.PollKey()
	if !ok {
		return
	}

	e.memory.Write8(KeyboardBuffer, key)
	e.timerPending = key == keyEscape
	e.interrupt(VectorKeyboard)
}
