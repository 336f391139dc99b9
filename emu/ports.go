package emu

// PortCount is the size of the I/O port space.
const PortCount = 0x10000

// I/O ports with side effects.
const (
	PortPIC         = 0x20
	PortPIT0        = 0x40
	PortPIT2        = 0x42
	PortPITControl  = 0x43
	PortKeyboard    = 0x60
	PortSpeaker     = 0x61
	PortKeyStatus   = 0x64
	PortHercIndex   = 0x3B4
	PortHercData    = 0x3B5
	PortCRTIndex    = 0x3D4
	PortCRTData     = 0x3D5
	PortCGARetrace  = 0x3DA
	defaultGraphicX = 720
	defaultGraphicY = 348
)

// BIOS data area locations the CRT and PIT ports shadow.
const (
	biosCursorCol   = 0x49D
	biosCursorRow   = 0x49E
	biosVideoStart  = 0x4AD
	biosPITReload   = 0x469
	crtColumns      = 80
	crtRegStartAddr = 6
	crtRegCursor    = 7
)

// Ports is the I/O port space with the PC peripheral side effects. Port
// values live in a flat array; the PIC, PIT, CRT controller, keyboard
// status, speaker and Hercules registers react to reads and writes.
type Ports struct {
	data [PortCount]byte
	mem  *Memory

	hiLo         byte
	speaker      byte
	speakerGated bool
	width        int
	height       int
}

// NewPorts creates the port space. mem is the memory holding the BIOS data
// area.
func NewPorts(mem *Memory) *Ports {
	p := &Ports{mem: mem}
	p.Reset()
	return p
}

// Reset clears every port and the peripheral state.
func (p *Ports) Reset() {
	clear(p.data[:])
	p.hiLo = 0
	p.speaker = 0
	p.speakerGated = false
	p.width = defaultGraphicX
	p.height = defaultGraphicY
}

// Read8 reads a port without side effects.
func (p *Ports) Read8(port uint16) byte {
	return p.data[port]
}

// Write8 writes a port without side effects.
func (p *Ports) Write8(port uint16, value byte) {
	p.data[port] = value
}

// peek reads a byte or a word without side effects. A word at 0xFFFF
// wraps to port 0.
func (p *Ports) peek(port uint16, word bool) uint16 {
	v := uint16(p.data[port])
	if word {
		v |= uint16(p.data[port+1]) << 8
	}
	return v
}

func (p *Ports) poke(port uint16, value uint16, word bool) {
	p.data[port] = byte(value)
	if word {
		p.data[port+1] = byte(value >> 8)
	}
}

// cursor is the linear cursor position the BIOS keeps in its data area.
func (p *Ports) cursor() uint32 {
	return uint32(p.mem.Read8(biosCursorRow))*crtColumns +
		uint32(p.mem.Read8(biosCursorCol)) +
		p.videoStart()
}

func (p *Ports) videoStart() uint32 {
	return uint32(int32(int16(p.mem.Read16(biosVideoStart))))
}

// In performs a port read.
func (p *Ports) In(port uint16, word bool) uint16 {
	p.data[PortPIC] = 0
	p.data[PortPIT0]--
	p.data[PortPIT2] = p.data[PortPIT0]
	p.data[PortCGARetrace] ^= 9

	switch port {
	case PortKeyboard:
		p.data[PortKeyStatus] = 0
	case PortCRTData:
		index := p.data[PortCRTIndex]
		if index>>1 == crtRegCursor {
			if index&1 != 0 {
				p.data[PortCRTData] = byte(p.cursor() & 0xFF)
			} else {
				p.data[PortCRTData] = byte((p.cursor() & 0xFF00) >> 8)
			}
		}
	}

	return p.peek(port, word)
}

// Out performs a port write.
func (p *Ports) Out(port uint16, value uint16, word bool) {
	p.poke(port, value, word)
	al := byte(value)

	switch port {
	case PortSpeaker:
		p.hiLo = 0
		p.speaker |= al & 3
	case PortPIT0, PortPIT2:
		if p.data[PortPITControl]&6 != 0 {
			p.hiLo ^= 1
			p.mem.Write8(biosPITReload+uint32(port)-uint32(p.hiLo), al)
		}
	case PortPITControl:
		p.hiLo = 0
		if al>>6 == 2 {
			p.speakerGated = al&0xF7 == 0xB6
		}
	case PortCRTData:
		p.writeCRT(al)
	case PortHercData:
		switch p.data[PortHercIndex] {
		case 1:
			p.width = int(al) * 16
		case 6:
			p.height = int(al) * 4
		}
	}
}

func (p *Ports) writeCRT(al byte) {
	index := p.data[PortCRTIndex]

	switch index >> 1 {
	case crtRegStartAddr:
		addr := uint32(biosVideoStart)
		if index&1 == 0 {
			addr++
		}
		p.mem.Write8(addr, al)
	case crtRegCursor:
		var pos uint32
		if index&1 != 0 {
			pos = p.cursor()&0xFF00 + uint32(al)
		} else {
			pos = p.cursor()&0xFF + uint32(al)<<8
		}
		pos -= p.videoStart()
		p.mem.Write8(biosCursorCol, byte(pos%crtColumns))
		p.mem.Write8(biosCursorRow, byte(pos/crtColumns))
	}
}

// SpeakerEnabled reports whether the PC speaker is on: both enable bits
// set through port 0x61 and PIT channel 2 programmed for square waves.
func (p *Ports) SpeakerEnabled() bool {
	return p.speaker == 3 && p.speakerGated
}

// GraphicsResolution returns the Hercules resolution last programmed.
func (p *Ports) GraphicsResolution() (width, height int) {
	return p.width, p.height
}
