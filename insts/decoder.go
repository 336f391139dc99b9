package insts

// MaxFetch is the number of instruction-stream bytes the decoder inspects.
const MaxFetch = 6

// Instruction is the decode of the bytes at CS:IP. Data words are the
// little-endian words at offsets 1, 2 and 3 (and 4 for 16-bit
// displacements), sign-extended to 32 bits.
type Instruction struct {
	Opcode byte
	Entry

	W    bool  // operand size bit: word when set
	D    bool  // direction bit: reg field is the destination when set
	Reg4 uint8 // low three bits of the opcode

	Data0 uint32
	Data1 uint32
	Data2 uint32

	Mod uint8
	Reg uint8
	RM  uint8
}

// HasModRM reports whether the opcode carries a mod/reg/rm byte.
func (i *Instruction) HasModRM() bool {
	return i.ModSize > 0
}

// Decoder decodes 8086 instructions.
type Decoder struct{}

// NewDecoder creates a new decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes the instruction at the start of stream. Missing bytes
// read as zero.
func (d *Decoder) Decode(stream []byte) *Instruction {
	inst := &Instruction{}
	d.DecodeInto(inst, stream)
	return inst
}

// DecodeInto decodes into an existing Instruction, avoiding an allocation
// per step.
func (d *Decoder) DecodeInto(inst *Instruction, stream []byte) {
	var buf [MaxFetch]byte
	copy(buf[:], stream)

	*inst = Instruction{
		Opcode: buf[0],
		Entry:  Lookup(buf[0]),
		Reg4:   buf[0] & 7,
	}
	inst.W = buf[0]&1 != 0
	inst.D = (inst.Reg4>>1)&1 != 0

	inst.Data0 = signedWord(buf[1], buf[2])
	inst.Data1 = signedWord(buf[2], buf[3])
	inst.Data2 = signedWord(buf[3], buf[4])

	if !inst.HasModRM() {
		return
	}

	inst.Mod = buf[1] >> 6
	inst.RM = buf[1] & 7
	inst.Reg = (buf[1] >> 3) & 7

	switch {
	case (inst.Mod == 0 && inst.RM == 6) || inst.Mod == 2:
		inst.Data2 = signedWord(buf[4], buf[5])
	case inst.Mod != 1:
		inst.Data2 = inst.Data1
	default:
		inst.Data1 = SignExtend8(inst.Data1)
	}
}

// SignExtend8 sign-extends the low byte of v to 32 bits.
func SignExtend8(v uint32) uint32 {
	return uint32(int32(int8(v)))
}

// SignExtend16 sign-extends the low word of v to 32 bits.
func SignExtend16(v uint32) uint32 {
	return uint32(int32(int16(v)))
}

func signedWord(lo, hi byte) uint32 {
	return SignExtend16(uint32(lo) | uint32(hi)<<8)
}
