package emu

import "github.com/sarchlab/tiny86/insts"

// Shift and rotate sub-functions, from the reg field.
const (
	shiftROL = iota
	shiftROR
	shiftRCL
	shiftRCR
	shiftSHL
	shiftSHR
	shiftSAL
	shiftSAR
)

// shiftRotate handles ROL, ROR, RCL, RCR, SHL, SHR and SAR by 1, by CL or
// by an 8-bit immediate. Rotates reduce the count modulo the width (plus
// one through carry) and a zero count still derives CF and OF.
func (e *Emulator) shiftRotate() {
	rf := e.regFile
	top := e.topBit()
	reg := uint32(e.inst.Reg)

	scratch := e.signOf(e.load(e.rmAddr))

	var count uint32
	switch {
	case e.inst.Sub != 0:
		rf.IP++
		count = insts.SignExtend8(e.inst.Data1)
	case e.inst.D:
		count = 31 & uint32(rf.Read8(insts.RegCL))
	default:
		count = 1
	}

	if count != 0 {
		if reg < shiftSHL {
			count %= reg/2 + top
			scratch = e.move(scratch, e.load(e.rmAddr))
		}

		if reg&1 != 0 {
			e.modify(e.rmAddr, count, shr)
		} else {
			e.modify(e.rmAddr, count, shl)
		}

		if reg > shiftRCR {
			e.setOpcode(opcodeADC)
		}
		if reg > shiftSHL {
			e.setFlag(insts.FlagCF, shr(e.opDst, count-1)&1 != 0)
		}
	}

	switch reg {
	case shiftROL:
		e.modify(e.rmAddr, shr(scratch, top-count), add)
		cf := e.setFlag(insts.FlagCF, e.opResult&1 != 0)
		e.setFlag(insts.FlagOF, e.signOf(uint32(e.opResult)) != b2u(cf))
	case shiftROR:
		scratch &= shl(1, count) - 1
		e.modify(e.rmAddr, shl(scratch, top-count), add)
		cf := e.setFlag(insts.FlagCF, e.signOf(uint32(e.opResult)) != 0)
		e.setFlag(insts.FlagOF, e.signOf(uint32(e.opResult)*2) != b2u(cf))
	case shiftRCL:
		cf := b2u(e.flag(insts.FlagCF))
		e.modify(e.rmAddr, shr(scratch, 1+top-count),
			func(d, s uint32) uint32 { return d + shl(cf, count-1) + s })
		carry := e.setFlag(insts.FlagCF, scratch&shl(1, top-count) != 0)
		e.setFlag(insts.FlagOF, e.signOf(uint32(e.opResult)) != b2u(carry))
	case shiftRCR:
		cf := b2u(e.flag(insts.FlagCF))
		e.modify(e.rmAddr, shl(scratch, 1+top-count),
			func(d, s uint32) uint32 { return d + shl(cf, top-count) + s })
		e.setFlag(insts.FlagCF, scratch&shl(1, count-1) != 0)
		r := uint32(e.opResult)
		e.setFlag(insts.FlagOF, e.signOf(r) != e.signOf(r*2))
	case shiftSHL:
		cf := e.setFlag(insts.FlagCF, e.signOf(shl(e.opDst, count-1)) != 0)
		e.setFlag(insts.FlagOF, e.signOf(uint32(e.opResult)) != b2u(cf))
	case shiftSHR:
		e.setFlag(insts.FlagOF, e.signOf(e.opDst) != 0)
	case shiftSAR:
		if count >= top {
			e.setFlag(insts.FlagCF, scratch != 0)
		}
		e.setFlag(insts.FlagOF, false)
		scratch *= ^shr(shl(1, top)-1, count)
		e.modify(e.rmAddr, scratch, add)
	}
}
