package emu

import "github.com/sarchlab/tiny86/insts"

// RegsBase is the linear address of the memory-mapped register file.
const RegsBase = 0xF0000

// FlagsReserved is the fixed pattern of the unused FLAGS bits.
const FlagsReserved = 0xF002

// RegFile is an accessor layer over the register region of Memory.
// 16-bit registers are words at RegsBase+2*reg; the 8-bit halves alias
// their bytes; flag cells are single 0/1 bytes at RegsBase+40.
type RegFile struct {
	mem *Memory

	// IP is not memory-mapped.
	IP uint16
}

// NewRegFile creates a register view over mem.
func NewRegFile(mem *Memory) *RegFile {
	return &RegFile{mem: mem}
}

// RegAddr returns the linear address of a 16-bit register.
func RegAddr(reg insts.Reg) uint32 {
	return RegsBase + 2*uint32(reg)
}

// Reg8Addr returns the linear address of an 8-bit register.
func Reg8Addr(reg insts.Reg8) uint32 {
	return RegsBase + reg.Offset()
}

// FlagAddr returns the linear address of a flag cell.
func FlagAddr(f insts.Flag) uint32 {
	return RegsBase + uint32(f)
}

// Read16 reads a 16-bit register.
func (r *RegFile) Read16(reg insts.Reg) uint16 {
	return r.mem.Read16(RegAddr(reg))
}

// Write16 writes a 16-bit register.
func (r *RegFile) Write16(reg insts.Reg, value uint16) {
	r.mem.Write16(RegAddr(reg), value)
}

// Read8 reads an 8-bit register.
func (r *RegFile) Read8(reg insts.Reg8) byte {
	return r.mem.Read8(Reg8Addr(reg))
}

// Write8 writes an 8-bit register.
func (r *RegFile) Write8(reg insts.Reg8, value byte) {
	r.mem.Write8(Reg8Addr(reg), value)
}

// Flag returns the raw value of a flag cell. FlagNone always reads 0.
func (r *RegFile) Flag(f insts.Flag) uint32 {
	if f == insts.FlagNone {
		return 0
	}
	return uint32(r.mem.Read8(FlagAddr(f)))
}

// IsSet reports whether a flag cell is nonzero.
func (r *RegFile) IsSet(f insts.Flag) bool {
	return r.Flag(f) != 0
}

// SetFlag stores a flag cell as 0 or 1 and returns the stored value.
func (r *RegFile) SetFlag(f insts.Flag, on bool) uint32 {
	var v byte
	if on {
		v = 1
	}
	r.mem.Write8(FlagAddr(f), v)
	return uint32(v)
}

// Flags packs the flag cells into the architectural FLAGS word.
func (r *RegFile) Flags() uint16 {
	word := uint16(FlagsReserved)
	for i := 0; i < insts.FlagCount; i++ {
		cell := insts.FlagCF + insts.Flag(i)
		word |= uint16(r.Flag(cell)) << insts.FlagBitPositions[i]
	}
	return word
}

// SetFlags distributes a FLAGS word over the flag cells.
func (r *RegFile) SetFlags(word uint16) {
	for i := 0; i < insts.FlagCount; i++ {
		cell := insts.FlagCF + insts.Flag(i)
		r.SetFlag(cell, word&(1<<insts.FlagBitPositions[i]) != 0)
	}
}

// Reset zeroes every register and flag.
func (r *RegFile) Reset() {
	r.IP = 0
	for reg := insts.Reg(0); reg < insts.RegCount; reg++ {
		r.Write16(reg, 0)
	}
	for i := 0; i < insts.FlagCount; i++ {
		r.SetFlag(insts.FlagCF+insts.Flag(i), false)
	}
}
