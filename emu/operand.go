package emu

import "github.com/sarchlab/tiny86/insts"

// regAddr returns the register-file address of register code reg at the
// current operand width.
func (e *Emulator) regAddr(reg uint8) uint32 {
	if e.inst.W {
		return RegAddr(insts.Reg(reg))
	}
	return Reg8Addr(insts.Reg8(reg))
}

// dataSegment returns the segment register used by string and XLAT
// accesses.
func (e *Emulator) dataSegment() insts.Reg {
	if e.segOverrideEn > 0 {
		return e.segOverride
	}
	return insts.RegDS
}

// resolveOperands computes the r/m address and the destination and source
// addresses from mod/reg/rm. It reads the current w, d and override state,
// so handlers call it again after changing any of them.
func (e *Emulator) resolveOperands() {
	if e.inst.Mod < 3 {
		mode := insts.AddressingMode(e.inst.Mod, e.inst.RM)

		seg := mode.Segment
		if e.segOverrideEn > 0 {
			seg = e.segOverride
		}

		off := uint32(e.regFile.Read16(mode.Base)) +
			uint32(e.regFile.Read16(mode.Index)) +
			uint32(mode.DispScale)*e.inst.Data1
		e.rmAddr = Linear(e.regFile.Read16(seg), uint16(off))
	} else {
		e.rmAddr = e.regAddr(e.inst.RM)
	}

	e.toAddr = e.rmAddr
	e.fromAddr = e.regAddr(e.inst.Reg)
	if e.inst.D {
		e.toAddr, e.fromAddr = e.fromAddr, e.rmAddr
	}
}

// modRMExtra is the number of displacement bytes that follow the mod/reg/rm
// byte.
func (e *Emulator) modRMExtra() uint32 {
	var n uint32
	if e.inst.Mod != 3 {
		n = uint32(e.inst.Mod)
	}
	if e.inst.Mod == 0 && e.inst.RM == 6 {
		n += 2
	}
	return n
}

// instructionLength computes the IP advance from the final decode context.
func (e *Emulator) instructionLength() uint16 {
	n := e.modRMExtra()*uint32(e.inst.ModSize) +
		uint32(e.inst.BaseSize) +
		uint32(e.inst.WSize)*(b2u(e.inst.W)+1)
	return uint16(n)
}

// setOpcode re-decodes the current instruction as another opcode. The new
// entry decides the flag policy and instruction length.
func (e *Emulator) setOpcode(opcode byte) {
	e.inst.Opcode = opcode
	e.inst.Entry = insts.Lookup(opcode)
}

func (e *Emulator) load(addr uint32) uint32 {
	if e.inst.W {
		return uint32(e.memory.Read16(addr))
	}
	return uint32(e.memory.Read8(addr))
}

func (e *Emulator) store(addr, value uint32) uint32 {
	value = e.mask(value)
	if e.inst.W {
		e.memory.Write16(addr, uint16(value))
	} else {
		e.memory.Write8(addr, byte(value))
	}
	return value
}

// move records the assignment of src over a destination holding old and
// returns the value to store.
func (e *Emulator) move(old, src uint32) uint32 {
	e.opDst = e.mask(old)
	e.opSrc = e.mask(src)
	e.opResult = int32(e.opSrc)
	return e.opSrc
}

// assign stores src at addr.
func (e *Emulator) assign(addr, src uint32) {
	e.store(addr, e.move(e.load(addr), src))
}

// modify stores fn(dst, src) at addr and records the truncated result.
func (e *Emulator) modify(addr, src uint32, fn func(dst, src uint32) uint32) uint32 {
	e.opDst = e.load(addr)
	e.opSrc = e.mask(src)
	r := e.store(addr, fn(e.opDst, e.opSrc))
	e.opResult = int32(r)
	return r
}

// compare records dst-src without storing. The result is not truncated.
func (e *Emulator) compare(addr, src uint32) {
	e.opDst = e.load(addr)
	e.opSrc = e.mask(src)
	e.opResult = int32(e.opDst) - int32(e.opSrc)
}

// test records dst&src without storing.
func (e *Emulator) test(addr, src uint32) {
	e.opDst = e.load(addr)
	e.opSrc = e.mask(src)
	e.opResult = int32(e.opDst & e.opSrc)
}

func shl(v, n uint32) uint32 { return v << (n & 31) }
func shr(v, n uint32) uint32 { return v >> (n & 31) }

func add(d, s uint32) uint32 { return d + s }
func sub(d, s uint32) uint32 { return d - s }
func and(d, s uint32) uint32 { return d & s }
func or(d, s uint32) uint32  { return d | s }
func xor(d, s uint32) uint32 { return d ^ s }

// push stores a word at SS:SP-2. Pushes are always word sized.
func (e *Emulator) push(value uint16) {
	e.inst.W = true

	ss := e.regFile.Read16(insts.RegSS)
	sp := e.regFile.Read16(insts.RegSP) - 1
	e.opDst = uint32(e.memory.Read16(Linear(ss, sp)))

	sp--
	e.regFile.Write16(insts.RegSP, sp)

	e.opSrc = uint32(value)
	e.opResult = int32(value)
	e.memory.Write16(Linear(ss, sp), value)
}

// popRaw increments SP and returns the word below it.
func (e *Emulator) popRaw() uint32 {
	e.inst.W = true

	sp := e.regFile.Read16(insts.RegSP) + 2
	e.regFile.Write16(insts.RegSP, sp)
	return uint32(e.memory.Read16(Linear(e.regFile.Read16(insts.RegSS), sp-2)))
}

// pop pops a word into a destination that lives outside memory.
func (e *Emulator) pop(old uint32) uint16 {
	return uint16(e.move(old, e.popRaw()))
}

// popTo pops a word into memory at addr.
func (e *Emulator) popTo(addr uint32) {
	e.assign(addr, e.popRaw())
}
