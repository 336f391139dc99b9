package emu

import "github.com/sarchlab/tiny86/insts"

// ALU sub-functions of the r/m,reg and r/m,imm encodings.
const (
	aluADD = iota
	aluOR
	aluADC
	aluSBB
	aluAND
	aluSUB
	aluXOR
	aluCMP
	aluMOV
)

// Opcodes whose decode entries are borrowed when an instruction re-decodes
// itself.
const (
	opcodeADC     = 0x10
	opcodeAND     = 0x20
	opcodeSUB     = 0x28
	opcodeCallFar = 0x9A
	opcodeINT     = 0xCD
)

// aluAccImm handles ALU AL/AX,imm by rewriting it into the r/m,imm form.
func (e *Emulator) aluAccImm() {
	e.rmAddr = RegsBase
	e.inst.Data2 = e.inst.Data0
	e.inst.Mod = 3
	e.inst.Reg = e.inst.Sub
	e.regFile.IP--

	e.aluRMImm()
}

// aluRMImm handles ALU r/m,imm. The immediate goes through the scratch
// register so the r/m,reg handler can treat it as a source operand.
func (e *Emulator) aluRMImm() {
	e.toAddr = e.rmAddr

	e.inst.D = e.inst.D || !e.inst.W
	imm := e.inst.Data2
	if e.inst.D {
		imm = insts.SignExtend8(imm)
	}
	e.regFile.Write16(insts.RegScratch, uint16(imm))
	e.fromAddr = RegAddr(insts.RegScratch)

	e.regFile.IP += uint16(b2u(!e.inst.D) + 1)
	e.setOpcode(8 * e.inst.Reg)

	e.aluRM()
}

// aluRM handles ALU and MOV r/m,reg, selected by the sub-function.
func (e *Emulator) aluRM() {
	src := e.load(e.fromAddr)

	switch e.inst.Sub {
	case aluADD:
		e.modify(e.toAddr, src, add)
		e.setFlag(insts.FlagCF, uint32(e.opResult) < e.opDst)
	case aluOR:
		e.modify(e.toAddr, src, or)
	case aluADC:
		e.addWithCarry(src, false)
	case aluSBB:
		e.addWithCarry(src, true)
	case aluAND:
		e.modify(e.toAddr, src, and)
	case aluSUB:
		e.modify(e.toAddr, src, sub)
		e.setFlag(insts.FlagCF, uint32(e.opResult) > e.opDst)
	case aluXOR:
		e.modify(e.toAddr, src, xor)
	case aluCMP:
		e.compare(e.toAddr, src)
		e.setFlag(insts.FlagCF, uint32(e.opResult) > e.opDst)
	case aluMOV:
		e.assign(e.toAddr, src)
	}
}

// addWithCarry implements ADC and SBB. The carry is folded into the
// operation but not into the recorded source operand.
func (e *Emulator) addWithCarry(src uint32, borrow bool) {
	cf := b2u(e.flag(insts.FlagCF))

	if borrow {
		e.modify(e.toAddr, src, func(d, s uint32) uint32 { return d - (cf + s) })
	} else {
		e.modify(e.toAddr, src, func(d, s uint32) uint32 { return d + cf + s })
	}

	same := cf != 0 && uint32(e.opResult) == e.opDst
	if borrow {
		e.setFlag(insts.FlagCF, same || e.opResult > int32(e.opDst))
	} else {
		e.setFlag(insts.FlagCF, same || e.opResult < int32(e.opDst))
	}

	e.setArithAuxOverflow()
}

// incDecReg handles INC/DEC r16 by routing it through the group handler.
func (e *Emulator) incDecReg() {
	e.inst.W = true
	e.inst.D = false
	e.inst.Reg = e.inst.Reg4
	e.resolveOperands()
	e.inst.Reg = e.inst.Sub

	e.groupIncDec()
}

// groupIncDec handles the FE/FF group: INC, DEC, CALL, CALL far, JMP,
// JMP far and PUSH r/m.
func (e *Emulator) groupIncDec() {
	reg := uint32(e.inst.Reg)

	switch {
	case reg < 2:
		e.modify(e.fromAddr, uint32(e.regFile.Read16(insts.RegZero)),
			func(d, s uint32) uint32 { return d + 1 - 2*reg + s })
		e.opSrc = 1
		e.setArithAuxOverflow()
		e.setFlag(insts.FlagOF, e.opDst+1-reg == 1<<(e.topBit()-1))

		// CF is preserved, so only SZP is left to the flag update.
		if e.inst.Op == insts.OpGroupIncDec {
			e.setOpcode(opcodeADC)
		}
	case reg != 6:
		if reg == 3 {
			e.push(e.regFile.Read16(insts.RegCS))
		}
		if reg&2 != 0 {
			e.push(e.regFile.IP + 2 + uint16(e.modRMExtra()))
		}
		if reg&1 != 0 {
			e.regFile.Write16(insts.RegCS, e.memory.Read16(e.fromAddr+2))
		}
		e.regFile.IP = uint16(e.move(uint32(e.regFile.IP), e.load(e.fromAddr)))
		e.setOpcode(opcodeCallFar)
	default:
		e.inst.W = true
		e.push(e.memory.Read16(e.rmAddr))
	}
}

// groupMulDiv handles the F6/F7 group: TEST, NOT, NEG, MUL, IMUL, DIV and
// IDIV r/m.
func (e *Emulator) groupMulDiv() {
	e.toAddr = e.fromAddr

	switch e.inst.Reg {
	case 0:
		e.setOpcode(opcodeAND)
		e.regFile.IP += uint16(b2u(e.inst.W) + 1)
		e.test(e.toAddr, e.inst.Data2)
	case 2:
		e.modify(e.toAddr, e.load(e.fromAddr), func(_, s uint32) uint32 { return ^s })
	case 3:
		e.modify(e.toAddr, e.load(e.fromAddr), func(_, s uint32) uint32 { return -s })
		e.opDst = 0
		e.setOpcode(opcodeSUB)
		e.setFlag(insts.FlagCF, uint32(e.opResult) > e.opDst)
	case 4:
		e.multiply(false)
	case 5:
		e.multiply(true)
	case 6:
		e.divide(false)
	case 7:
		e.divide(true)
	}
}

// multiply stores AL*r/m in AX or AX*r/m in DX:AX. CF and OF report
// whether the upper half is significant.
func (e *Emulator) multiply(signed bool) {
	e.setOpcode(opcodeADC)

	rf := e.regFile
	var product uint32
	var overflow bool

	switch {
	case e.inst.W && signed:
		p := int32(int16(e.memory.Read16(e.rmAddr))) * int32(int16(rf.Read16(insts.RegAX)))
		product, overflow = uint32(p), p != int32(int16(p))
	case e.inst.W:
		p := uint32(e.memory.Read16(e.rmAddr)) * uint32(rf.Read16(insts.RegAX))
		product, overflow = p, p != uint32(uint16(p))
	case signed:
		p := int32(int8(e.memory.Read8(e.rmAddr))) * int32(int8(rf.Read8(insts.RegAL)))
		product, overflow = uint32(p), p != int32(int8(p))
	default:
		p := uint32(e.memory.Read8(e.rmAddr)) * uint32(rf.Read8(insts.RegAL))
		product, overflow = p, p != uint32(uint8(p))
	}

	if e.inst.W {
		rf.Write16(insts.RegDX, uint16(product>>16))
	}
	rf.Write16(insts.RegAX, uint16(product))

	e.opResult = int32(product)
	e.setFlag(insts.FlagCF, overflow)
	e.setFlag(insts.FlagOF, overflow)
}

// divide divides AX by an 8-bit r/m or DX:AX by a 16-bit r/m. A zero
// divisor or a quotient that does not fit raises interrupt 0 and leaves
// the accumulator untouched.
func (e *Emulator) divide(signed bool) {
	rf := e.regFile

	if e.inst.W {
		dividend := uint32(rf.Read16(insts.RegDX))<<16 | uint32(rf.Read16(insts.RegAX))
		divisor := e.memory.Read16(e.rmAddr)

		if signed {
			d := int32(int16(divisor))
			if d == 0 {
				e.interrupt(0)
				return
			}
			q := int32(dividend) / d
			if q != int32(int16(q)) {
				e.interrupt(0)
				return
			}
			rf.Write16(insts.RegAX, uint16(q))
			rf.Write16(insts.RegDX, uint16(int32(dividend)-d*q))
			return
		}

		d := uint32(divisor)
		if d == 0 {
			e.interrupt(0)
			return
		}
		q := dividend / d
		if q > 0xFFFF {
			e.interrupt(0)
			return
		}
		rf.Write16(insts.RegAX, uint16(q))
		rf.Write16(insts.RegDX, uint16(dividend-d*q))
		return
	}

	dividend := rf.Read16(insts.RegAX)
	divisor := e.memory.Read8(e.rmAddr)

	if signed {
		d := int32(int8(divisor))
		if d == 0 {
			e.interrupt(0)
			return
		}
		q := int32(int16(dividend)) / d
		if q != int32(int8(q)) {
			e.interrupt(0)
			return
		}
		rf.Write8(insts.RegAL, byte(q))
		rf.Write8(insts.RegAH, byte(int32(int16(dividend))-d*q))
		return
	}

	d := uint32(divisor)
	if d == 0 {
		e.interrupt(0)
		return
	}
	q := uint32(dividend) / d
	if q > 0xFF {
		e.interrupt(0)
		return
	}
	rf.Write8(insts.RegAL, byte(q))
	rf.Write8(insts.RegAH, byte(uint32(dividend)-d*q))
}

// decimalAdjust implements DAA (sub-function 0) and DAS (1).
func (e *Emulator) decimalAdjust() {
	e.inst.W = false

	rf := e.regFile
	das := e.inst.Sub != 0
	old := rf.Read8(insts.RegAL)

	if e.setFlag(insts.FlagAF, old&0x0F > 9 || e.flag(insts.FlagAF)) {
		al := old + 6
		if das {
			al = old - 6
		}
		rf.Write8(insts.RegAL, al)
		e.opResult = int32(al)

		wrapped := al < old
		if das {
			wrapped = al >= old
		}
		e.setFlag(insts.FlagCF, e.flag(insts.FlagCF) || wrapped)
	}

	high := rf.Read8(insts.RegAL)&0xF0 > 0x90
	if das {
		high = old > 0x99
	}

	if e.setFlag(insts.FlagCF, high || e.flag(insts.FlagCF)) {
		al := rf.Read8(insts.RegAL) + 0x60
		if das {
			al = rf.Read8(insts.RegAL) - 0x60
		}
		rf.Write8(insts.RegAL, al)
		e.opResult = int32(al)
	}
}

// asciiAdjust implements AAA (sub-function 2) and AAS (0).
func (e *Emulator) asciiAdjust() {
	rf := e.regFile

	adjust := rf.Read8(insts.RegAL)&0x0F > 9 || e.flag(insts.FlagAF)
	e.setFlag(insts.FlagCF, adjust)
	e.setFlag(insts.FlagAF, adjust)

	if adjust {
		delta := int32(262) * (int32(e.inst.Sub) - 1)
		rf.Write16(insts.RegAX, uint16(int32(rf.Read16(insts.RegAX))+delta))
	}

	al := rf.Read8(insts.RegAL) & 0x0F
	rf.Write8(insts.RegAL, al)
	e.opResult = int32(al)
}

// asciiMultiply implements AAM. A zero base raises interrupt 0.
func (e *Emulator) asciiMultiply() {
	base := e.inst.Data0 & 0xFF
	e.inst.Data0 = base
	if base == 0 {
		e.interrupt(0)
		return
	}

	rf := e.regFile
	al := uint32(rf.Read8(insts.RegAL))
	rf.Write8(insts.RegAH, byte(al/base))
	rf.Write8(insts.RegAL, byte(al%base))
	e.opResult = int32(al % base)
}

// asciiDivide implements AAD.
func (e *Emulator) asciiDivide() {
	e.inst.W = false

	rf := e.regFile
	v := 0xFF & (uint32(rf.Read8(insts.RegAL)) + e.inst.Data0*uint32(rf.Read8(insts.RegAH)))
	rf.Write16(insts.RegAX, uint16(v))
	e.opResult = int32(v)
}
