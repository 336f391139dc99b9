package emu

// MemorySize is the size of the emulated address space. It covers every
// linear address a segment:offset pair can form, including the area above
// 1 MiB.
const MemorySize = 0x10FFF0

// Memory is the flat byte-addressed memory of the machine. Addresses at or
// past MemorySize wrap around.
type Memory struct {
	data []byte
}

// NewMemory creates a zeroed memory.
func NewMemory() *Memory {
	return &Memory{data: make([]byte, MemorySize)}
}

// Linear converts a segment:offset pair to a linear address.
func Linear(seg, off uint16) uint32 {
	return 16*uint32(seg) + uint32(off)
}

func wrap(addr uint32) uint32 {
	if addr >= MemorySize {
		return addr % MemorySize
	}
	return addr
}

// Read8 reads a byte.
func (m *Memory) Read8(addr uint32) byte {
	return m.data[wrap(addr)]
}

// Write8 writes a byte.
func (m *Memory) Write8(addr uint32, value byte) {
	m.data[wrap(addr)] = value
}

// Read16 reads a little-endian word.
func (m *Memory) Read16(addr uint32) uint16 {
	return uint16(m.Read8(addr)) | uint16(m.Read8(addr+1))<<8
}

// Write16 writes a little-endian word.
func (m *Memory) Write16(addr uint32, value uint16) {
	m.Write8(addr, byte(value))
	m.Write8(addr+1, byte(value>>8))
}

// Read32 reads a little-endian double word.
func (m *Memory) Read32(addr uint32) uint32 {
	return uint32(m.Read16(addr)) | uint32(m.Read16(addr+2))<<16
}

// Write32 writes a little-endian double word.
func (m *Memory) Write32(addr uint32, value uint32) {
	m.Write16(addr, uint16(value))
	m.Write16(addr+2, uint16(value>>16))
}

// Load copies data into memory starting at addr.
func (m *Memory) Load(addr uint32, data []byte) {
	for i, b := range data {
		m.Write8(addr+uint32(i), b)
	}
}

// Fetch copies n bytes starting at addr into dst, wrapping at the end of
// memory, and returns dst.
func (m *Memory) Fetch(addr uint32, dst []byte) []byte {
	for i := range dst {
		dst[i] = m.Read8(addr + uint32(i))
	}
	return dst
}

// Reset zeroes all of memory.
func (m *Memory) Reset() {
	clear(m.data)
}
