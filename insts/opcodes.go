package insts

// Op is the semantic opcode id that one or more raw opcode bytes map to.
type Op uint8

// Semantic opcodes. The numbering matches the decode table encoding.
const (
	OpCondJump      Op = iota // Jcc rel8
	OpMovRegImm               // MOV r,imm
	OpIncDecReg               // INC/DEC r16
	OpPushReg                 // PUSH r16
	OpPopReg                  // POP r16
	OpGroupIncDec             // INC/DEC/CALL/JMP/PUSH r/m
	OpGroupMulDiv             // TEST/NOT/NEG/MUL/IMUL/DIV/IDIV r/m
	OpALUAccImm               // ALU AL/AX,imm
	OpALURMImm                // ALU r/m,imm
	OpALURM                   // ALU or MOV r/m,reg
	OpMovSegLea               // MOV sreg, LEA, POP r/m
	OpMovAccMem               // MOV AL/AX,[moffs] and back
	OpShiftRotate             // ROL/ROR/RCL/RCR/SHL/SHR/SAR
	OpLoop                    // LOOPNZ/LOOPZ/LOOP/JCXZ
	OpJmpCall                 // CALL/JMP near, short and far immediate
	OpTestRM                  // TEST r/m,reg
	OpXchgAcc                 // XCHG AX,r16
	OpStringMove              // MOVS/STOS/LODS
	OpStringCompare           // CMPS/SCAS
	OpReturn                  // RET/RETF/IRET
	OpMovRMImm                // MOV r/m,imm
	OpIn                      // IN
	OpOut                     // OUT
	OpRep                     // REP/REPNE prefix
	OpXchgRM                  // XCHG r/m,reg
	OpPushSeg                 // PUSH sreg
	OpPopSeg                  // POP sreg
	OpSegOverride             // segment override prefix
	OpDecimalAdjust           // DAA/DAS
	OpASCIIAdjust             // AAA/AAS
	OpCBW                     // CBW
	OpCWD                     // CWD
	OpCallFar                 // CALL seg:off
	OpPushf                   // PUSHF
	OpPopf                    // POPF
	OpSahf                    // SAHF
	OpLahf                    // LAHF
	OpLoadFarPtr              // LES/LDS
	OpInt3                    // INT 3
	OpInt                     // INT imm8
	OpInto                    // INTO
	OpAAM                     // AAM
	OpAAD                     // AAD
	OpSalc                    // SALC
	OpXlat                    // XLAT
	OpCmc                     // CMC
	OpFlagSet                 // CLC/STC/CLI/STI/CLD/STD
	OpTestAccImm              // TEST AL/AX,imm
	OpEscape                  // 0F xx emulator services
	OpEnter                   // ENTER (no handler)
	OpLeave                   // LEAVE (no handler)
	OpPusha                   // PUSHA (no handler)
	OpUndefined               // unassigned encodings (no handler)
	OpNop                     // WAIT/ESC/LOCK/HLT (no handler)
	OpPopa                    // POPA (no handler)
	OpPushImm                 // PUSH imm, IMUL imm (no handler)

	opCount
)

var opNames = [opCount]string{
	"CondJump", "MovRegImm", "IncDecReg", "PushReg", "PopReg",
	"GroupIncDec", "GroupMulDiv", "ALUAccImm", "ALURMImm", "ALURM",
	"MovSegLea", "MovAccMem", "ShiftRotate", "Loop", "JmpCall",
	"TestRM", "XchgAcc", "StringMove", "StringCompare", "Return",
	"MovRMImm", "In", "Out", "Rep", "XchgRM", "PushSeg", "PopSeg",
	"SegOverride", "DecimalAdjust", "ASCIIAdjust", "CBW", "CWD",
	"CallFar", "Pushf", "Popf", "Sahf", "Lahf", "LoadFarPtr", "Int3",
	"Int", "Into", "AAM", "AAD", "Salc", "Xlat", "Cmc", "FlagSet",
	"TestAccImm", "Escape", "Enter", "Leave", "Pusha", "Undefined",
	"Nop", "Popa", "PushImm",
}

func (o Op) String() string {
	if o >= opCount {
		return "Op(?)"
	}
	return opNames[o]
}

// HasHandler reports whether the dispatcher does anything for the op
// besides advancing IP.
func (o Op) HasHandler() bool {
	return o <= OpEscape
}

// FlagPolicy selects which flags are derived from an instruction's result.
type FlagPolicy uint8

// Flag policies as encoded in the decode table.
const (
	FlagsNone  FlagPolicy = 0
	FlagsSZP   FlagPolicy = 1
	FlagsArith FlagPolicy = FlagsSZP | flagsAuxOverflow
	FlagsLogic FlagPolicy = FlagsSZP | flagsClearCarry

	flagsAuxOverflow FlagPolicy = 2
	flagsClearCarry  FlagPolicy = 4
)

// UpdatesSZP reports whether sign, zero and parity follow the result.
func (p FlagPolicy) UpdatesSZP() bool { return p&FlagsSZP != 0 }

// UpdatesAuxOverflow reports whether AF and OF are derived arithmetically.
func (p FlagPolicy) UpdatesAuxOverflow() bool { return p&flagsAuxOverflow != 0 }

// ClearsCarry reports whether CF and OF are forced to zero.
func (p FlagPolicy) ClearsCarry() bool { return p&flagsClearCarry != 0 }

// Entry is the decode table row for one opcode byte.
type Entry struct {
	Op    Op
	Sub   uint8 // sub-function id
	Flags FlagPolicy
	// BaseSize is the instruction length excluding w-dependent immediates
	// and mod/rm displacement bytes.
	BaseSize uint8
	// WSize is multiplied by the operand width in bytes (1 or 2).
	WSize uint8
	// ModSize is zero when the opcode has no mod/reg/rm byte.
	ModSize uint8
}

// Lookup returns the decode entry for a raw opcode byte.
func Lookup(opcode byte) Entry {
	return opcodeTable[opcode]
}

// Parity returns 1 when b has an even number of set bits.
func Parity(b byte) uint8 {
	return parityTable[b]
}

// Reg is a 16-bit register number. It is also the word index of the
// register in the memory-mapped register file.
type Reg uint8

// 16-bit registers.
const (
	RegAX Reg = iota
	RegCX
	RegDX
	RegBX
	RegSP
	RegBP
	RegSI
	RegDI
	RegES
	RegCS
	RegSS
	RegDS
	RegZero    // always reads 0, used by addressing modes without index
	RegScratch // holds sign-extended immediates for the ALU chain

	RegCount
)

var regNames = [RegCount]string{
	"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI",
	"ES", "CS", "SS", "DS", "ZERO", "SCRATCH",
}

func (r Reg) String() string {
	if r >= RegCount {
		return "R?"
	}
	return regNames[r]
}

// Reg8 is an 8-bit register code as encoded in the reg and rm fields.
type Reg8 uint8

// 8-bit registers.
const (
	RegAL Reg8 = iota
	RegCL
	RegDL
	RegBL
	RegAH
	RegCH
	RegDH
	RegBH
)

// Offset returns the byte offset of the register in the register file.
func (r Reg8) Offset() uint32 {
	return (2*uint32(r) + uint32(r)/4) & 7
}

// Flag identifies a flag cell by its byte offset in the register file.
type Flag uint8

// Flag cells. FlagNone is the constant-zero cell used by the jump tables.
const (
	FlagCF Flag = 40 + iota
	FlagPF
	FlagAF
	FlagZF
	FlagSF
	FlagTF
	FlagIF
	FlagDF
	FlagOF
	FlagNone
)

// FlagCount is the number of architectural flag cells.
const FlagCount = 9

var flagNames = [...]string{"CF", "PF", "AF", "ZF", "SF", "TF", "IF", "DF", "OF", "-"}

func (f Flag) String() string {
	if f < FlagCF || f > FlagNone {
		return "F?"
	}
	return flagNames[f-FlagCF]
}

// FlagBitPositions maps flag cells CF..OF to their bit in the FLAGS word.
var FlagBitPositions = [FlagCount]uint8{0, 2, 4, 6, 7, 8, 9, 10, 11}

// Jcc predicate selectors, one column per condition class.
var (
	condA = [8]Flag{FlagOF, FlagCF, FlagZF, FlagCF, FlagSF, FlagPF, FlagNone, FlagNone}
	condB = [8]Flag{FlagNone, FlagNone, FlagNone, FlagZF, FlagNone, FlagNone, FlagNone, FlagZF}
	condC = [8]Flag{FlagNone, FlagNone, FlagNone, FlagNone, FlagNone, FlagNone, FlagSF, FlagSF}
	condD = [8]Flag{FlagNone, FlagNone, FlagNone, FlagNone, FlagNone, FlagNone, FlagOF, FlagOF}
)

// CondSelectors returns the four flag selectors for condition class k.
// The jump is taken when invert ^ (a || b || (c ^ d)).
func CondSelectors(k uint8) (a, b, c, d Flag) {
	k &= 7
	return condA[k], condB[k], condC[k], condD[k]
}

// Addressing describes how a memory r/m operand forms its offset:
// Base + Index + DispScale*displacement, relative to Segment.
type Addressing struct {
	Base      Reg
	Index     Reg
	DispScale uint8
	Segment   Reg
}

var (
	// mod 1 and 2
	displacedModes = [8]Addressing{
		{RegBX, RegSI, 1, RegDS},
		{RegBX, RegDI, 1, RegDS},
		{RegBP, RegSI, 1, RegSS},
		{RegBP, RegDI, 1, RegSS},
		{RegSI, RegZero, 1, RegDS},
		{RegDI, RegZero, 1, RegDS},
		{RegBP, RegZero, 1, RegSS},
		{RegBX, RegZero, 1, RegDS},
	}
	// mod 0; rm 6 is the direct address
	plainModes = [8]Addressing{
		{RegBX, RegSI, 0, RegDS},
		{RegBX, RegDI, 0, RegDS},
		{RegBP, RegSI, 0, RegSS},
		{RegBP, RegDI, 0, RegSS},
		{RegSI, RegZero, 0, RegDS},
		{RegDI, RegZero, 0, RegDS},
		{RegZero, RegZero, 1, RegDS},
		{RegBX, RegZero, 0, RegDS},
	}
)

// AddressingMode returns the addressing row for a memory operand.
func AddressingMode(mod, rm uint8) Addressing {
	if mod == 0 {
		return plainModes[rm&7]
	}
	return displacedModes[rm&7]
}
