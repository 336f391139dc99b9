package emu

import "github.com/sarchlab/tiny86/insts"

// condJump handles Jcc rel8. Even opcodes jump when the condition holds,
// odd opcodes when it does not.
func (e *Emulator) condJump() {
	a, b, c, d := insts.CondSelectors((e.inst.Opcode >> 1) & 7)

	rf := e.regFile
	cond := rf.IsSet(a) || rf.IsSet(b) || rf.Flag(c) != rf.Flag(d)
	if cond != e.inst.W {
		rf.IP += uint16(int8(e.inst.Data0))
		e.taken = true
	}
}

// loop handles LOOPNZ, LOOPZ, LOOP and JCXZ.
func (e *Emulator) loop() {
	rf := e.regFile

	cx := rf.Read16(insts.RegCX) - 1
	rf.Write16(insts.RegCX, cx)
	taken := cx != 0

	switch e.inst.Reg4 {
	case 0:
		taken = taken && !e.flag(insts.FlagZF)
	case 1:
		taken = taken && e.flag(insts.FlagZF)
	case 3:
		cx++
		rf.Write16(insts.RegCX, cx)
		taken = cx == 0
	}

	if taken {
		rf.IP += uint16(int8(e.inst.Data0))
		e.taken = true
	}
}

// jmpCall handles CALL near, JMP near, JMP far and JMP short with
// immediate targets.
func (e *Emulator) jmpCall() {
	rf := e.regFile
	rf.IP += uint16(3 - b2u(e.inst.D))

	if !e.inst.W {
		if e.inst.D {
			rf.IP = 0
			rf.Write16(insts.RegCS, uint16(e.inst.Data2))
		} else {
			e.push(rf.IP)
		}
	}

	if e.inst.D && e.inst.W {
		rf.IP += uint16(int8(e.inst.Data0))
	} else {
		rf.IP += uint16(e.inst.Data0)
	}
}

// callFar handles CALL seg:off.
func (e *Emulator) callFar() {
	rf := e.regFile
	e.push(rf.Read16(insts.RegCS))
	e.push(rf.IP + 5)
	rf.Write16(insts.RegCS, uint16(e.inst.Data2))
	rf.IP = uint16(e.inst.Data0)
}

// ret handles RET, RET imm, RETF, RETF imm and IRET.
func (e *Emulator) ret() {
	rf := e.regFile
	e.inst.D = e.inst.W

	rf.IP = e.pop(uint32(rf.IP))
	if e.inst.Sub != 0 {
		e.popTo(RegAddr(insts.RegCS))
	}

	if e.inst.Sub&2 != 0 {
		rf.SetFlags(e.pop(0))
	} else if !e.inst.D {
		rf.Write16(insts.RegSP, rf.Read16(insts.RegSP)+uint16(e.inst.Data0))
	}
}
