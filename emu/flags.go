package emu

import "github.com/sarchlab/tiny86/insts"

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// topBit returns the operand width in bits.
func (e *Emulator) topBit() uint32 {
	return 8 * (b2u(e.inst.W) + 1)
}

// mask truncates v to the operand width.
func (e *Emulator) mask(v uint32) uint32 {
	if e.inst.W {
		return v & 0xFFFF
	}
	return v & 0xFF
}

// signOf returns the top bit of v at the operand width.
func (e *Emulator) signOf(v uint32) uint32 {
	return (v >> (e.topBit() - 1)) & 1
}

func (e *Emulator) setFlag(f insts.Flag, on bool) bool {
	e.regFile.SetFlag(f, on)
	return on
}

func (e *Emulator) flag(f insts.Flag) bool {
	return e.regFile.IsSet(f)
}

// setSZP derives SF, ZF and PF from the last result.
func (e *Emulator) setSZP() {
	r := uint32(e.opResult)
	e.setFlag(insts.FlagSF, e.signOf(r) != 0)
	e.setFlag(insts.FlagZF, r == 0)
	e.setFlag(insts.FlagPF, insts.Parity(byte(r)) != 0)
}

// setArithAuxOverflow derives AF and OF from the last operand record.
// The source operand is folded into src^dst^result, which later handlers
// may observe.
func (e *Emulator) setArithAuxOverflow() {
	e.opSrc ^= e.opDst ^ uint32(e.opResult)
	e.setFlag(insts.FlagAF, e.opSrc&0x10 != 0)

	if uint32(e.opResult) == e.opDst {
		e.setFlag(insts.FlagOF, false)
		return
	}

	cf := b2u(e.flag(insts.FlagCF))
	e.setFlag(insts.FlagOF, (cf^(e.opSrc>>(e.topBit()-1)))&1 != 0)
}

func (e *Emulator) setLogic() {
	e.setFlag(insts.FlagCF, false)
	e.setFlag(insts.FlagOF, false)
}

// updateFlags applies the flag policy of the final decode context.
func (e *Emulator) updateFlags() {
	policy := e.inst.Flags
	if !policy.UpdatesSZP() {
		return
	}

	e.setSZP()
	if policy.UpdatesAuxOverflow() {
		e.setArithAuxOverflow()
	}
	if policy.ClearsCarry() {
		e.setLogic()
	}
}
