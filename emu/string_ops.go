package emu

import "github.com/sarchlab/tiny86/insts"

// stepIndex advances SI or DI by the operand width in the direction given
// by DF.
func (e *Emulator) stepIndex(reg insts.Reg) {
	delta := (2*b2u(e.flag(insts.FlagDF)) - 1) * (b2u(e.inst.W) + 1)
	e.regFile.Write16(reg, e.regFile.Read16(reg)-uint16(delta))
}

// repeatCount is CX under a REP prefix and 1 otherwise.
func (e *Emulator) repeatCount() uint32 {
	if e.repOverrideEn > 0 {
		return uint32(e.regFile.Read16(insts.RegCX))
	}
	return 1
}

// stringMove handles MOVS (sub-function 0), STOS (1) and LODS (2).
func (e *Emulator) stringMove() {
	rf := e.regFile
	seg := e.dataSegment()

	for n := e.repeatCount(); n > 0; n-- {
		dst := uint32(RegsBase)
		if e.inst.Sub < 2 {
			dst = Linear(rf.Read16(insts.RegES), rf.Read16(insts.RegDI))
		}

		src := uint32(RegsBase)
		if e.inst.Sub&1 == 0 {
			src = Linear(rf.Read16(seg), rf.Read16(insts.RegSI))
		}

		e.assign(dst, e.load(src))

		if e.inst.Sub&1 == 0 {
			e.stepIndex(insts.RegSI)
		}
		if e.inst.Sub&2 == 0 {
			e.stepIndex(insts.RegDI)
		}
		e.iterations++
	}

	if e.repOverrideEn > 0 {
		rf.Write16(insts.RegCX, 0)
	}
}

// stringCompare handles CMPS (sub-function 0) and SCAS (1). Under REPE or
// REPNE the loop ends when CX runs out or ZF stops matching the REP mode.
func (e *Emulator) stringCompare() {
	rf := e.regFile
	seg := e.dataSegment()

	n := e.repeatCount()
	if n == 0 {
		return
	}

	for n > 0 {
		dst := uint32(RegsBase)
		if e.inst.Sub == 0 {
			dst = Linear(rf.Read16(seg), rf.Read16(insts.RegSI))
		}

		e.compare(dst, e.load(Linear(rf.Read16(insts.RegES), rf.Read16(insts.RegDI))))

		if e.inst.Sub == 0 {
			e.stepIndex(insts.RegSI)
		}
		e.stepIndex(insts.RegDI)
		e.iterations++

		if e.repOverrideEn == 0 {
			n--
			continue
		}

		cx := rf.Read16(insts.RegCX) - 1
		rf.Write16(insts.RegCX, cx)
		if cx == 0 || (e.opResult == 0) != e.repMode {
			n = 0
		}
	}

	e.inst.Flags = insts.FlagsArith
	e.setFlag(insts.FlagCF, uint32(e.opResult) > e.opDst)
}
