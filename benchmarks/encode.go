package benchmarks

import "github.com/sarchlab/tiny86/insts"

// Helper functions for building 8086 programs

// BuildProgram concatenates encoded instructions.
func BuildProgram(parts ...[]byte) []byte {
	var program []byte
	for _, p := range parts {
		program = append(program, p...)
	}
	return program
}

// ALU opcodes in their r/m16,r16 form.
const (
	OpADD byte = 0x01
	OpOR  byte = 0x09
	OpAND byte = 0x21
	OpSUB byte = 0x29
	OpXOR byte = 0x31
	OpCMP byte = 0x39
)

// Jcc condition codes, the low nibble of opcodes 70-7F.
const (
	CondZ  byte = 0x4
	CondNZ byte = 0x5
	CondB  byte = 0x2
	CondNB byte = 0x3
)

// EncodeMOVImm encodes MOV r16,imm16.
func EncodeMOVImm(reg insts.Reg, imm uint16) []byte {
	return []byte{0xB8 + byte(reg), byte(imm), byte(imm >> 8)}
}

// EncodeMOVReg encodes MOV dst,src between 16-bit registers.
func EncodeMOVReg(dst, src insts.Reg) []byte {
	return EncodeALUReg(0x89, dst, src)
}

// EncodeALUReg encodes op dst,src in the r/m16,r16 form.
func EncodeALUReg(op byte, dst, src insts.Reg) []byte {
	return []byte{op, 0xC0 | byte(src)<<3 | byte(dst)}
}

// EncodeStore encodes MOV [BX],src.
func EncodeStore(src insts.Reg) []byte {
	return []byte{0x89, byte(src)<<3 | 7}
}

// EncodeLoad encodes MOV dst,[BX].
func EncodeLoad(dst insts.Reg) []byte {
	return []byte{0x8B, byte(dst)<<3 | 7}
}

// EncodeINC encodes INC r16.
func EncodeINC(reg insts.Reg) []byte {
	return []byte{0x40 + byte(reg)}
}

// EncodeDEC encodes DEC r16.
func EncodeDEC(reg insts.Reg) []byte {
	return []byte{0x48 + byte(reg)}
}

// EncodePUSH encodes PUSH r16.
func EncodePUSH(reg insts.Reg) []byte {
	return []byte{0x50 + byte(reg)}
}

// EncodePOP encodes POP r16.
func EncodePOP(reg insts.Reg) []byte {
	return []byte{0x58 + byte(reg)}
}

// EncodeMUL encodes MUL r16.
func EncodeMUL(reg insts.Reg) []byte {
	return []byte{0xF7, 0xE0 | byte(reg)}
}

// EncodeDIV encodes DIV r16.
func EncodeDIV(reg insts.Reg) []byte {
	return []byte{0xF7, 0xF0 | byte(reg)}
}

// EncodeJcc encodes a short conditional jump. disp is relative to the next
// instruction.
func EncodeJcc(cond byte, disp int8) []byte {
	return []byte{0x70 | cond, byte(disp)}
}

// EncodeLOOP encodes LOOP rel8.
func EncodeLOOP(disp int8) []byte {
	return []byte{0xE2, byte(disp)}
}

// EncodeCALL encodes CALL rel16.
func EncodeCALL(rel int16) []byte {
	return []byte{0xE8, byte(rel), byte(uint16(rel) >> 8)}
}

// EncodeRET encodes a near RET.
func EncodeRET() []byte {
	return []byte{0xC3}
}

// EncodeREPMOVSB encodes REP MOVSB.
func EncodeREPMOVSB() []byte {
	return []byte{0xF3, 0xA4}
}

// EncodeHalt encodes JMP FAR 0000:0000, which stops the emulator.
func EncodeHalt() []byte {
	return []byte{0xEA, 0x00, 0x00, 0x00, 0x00}
}
