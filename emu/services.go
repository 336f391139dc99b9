package emu

import (
	"encoding/binary"

	"github.com/sarchlab/tiny86/insts"
)

// escape handles the 0F xx emulator services the BIOS calls into.
func (e *Emulator) escape() {
	switch int8(e.inst.Data0) {
	case ServicePutChar:
		e.hooks.PutChar(e.regFile.Read8(insts.RegAL))
	case ServiceClock:
		e.readClock()
	case ServiceDiskRead:
		e.diskTransfer(DiskRead)
	case ServiceDiskWrite:
		e.diskTransfer(DiskWrite)
	}
}

// readClock installs the clock record at ES:BX, then the 16-bit
// millisecond count at ES:BX+36.
func (e *Emulator) readClock() {
	rf := e.regFile
	es, bx := rf.Read16(insts.RegES), rf.Read16(insts.RegBX)

	rec := e.hooks.Clock()
	e.memory.Load(Linear(es, bx), rec[:])

	ms := binary.LittleEndian.Uint32(rec[clockMillisOffset:])
	e.memory.Write16(Linear(es, bx+clockMillisOffset), uint16(ms))
}

// diskTransfer moves AX bytes between drive DL at sector BP and ES:BX. AL
// receives the low byte of the count, or 0 on failure.
func (e *Emulator) diskTransfer(op DiskOp) {
	rf := e.regFile
	length := int(rf.Read16(insts.RegAX))

	if cap(e.diskBuf) < length {
		e.diskBuf = make([]byte, length)
	}

	req := DiskRequest{
		Drive:   rf.Read8(insts.RegDL),
		Op:      op,
		Address: Linear(rf.Read16(insts.RegES), rf.Read16(insts.RegBX)),
		Offset:  int64(rf.Read16(insts.RegBP)) << 9,
		Length:  length,
		Data:    e.diskBuf[:length],
	}

	if op == DiskWrite {
		e.memory.Fetch(req.Address, req.Data)
	}

	n, err := e.hooks.DiskTransfer(req)
	if err != nil {
		e.logger.Debug("disk transfer failed",
			"drive", req.Drive, "op", op, "offset", req.Offset, "err", err)
		rf.Write8(insts.RegAL, 0)
		return
	}

	if n > length {
		n = length
	}
	if op == DiskRead && n > 0 {
		e.memory.Load(req.Address, req.Data[:n])
	}
	rf.Write8(insts.RegAL, byte(n))
}
