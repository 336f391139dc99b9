package emu

import (
	"encoding/binary"
	"io"
	"time"
)

// Emulator service numbers, the second byte of a 0F xx instruction.
const (
	ServicePutChar   = 0
	ServiceClock     = 1
	ServiceDiskRead  = 2
	ServiceDiskWrite = 3
)

// ClockRecordSize is the size of the real-time-clock record: ten
// little-endian 32-bit fields.
const ClockRecordSize = 40

// clockMillisOffset is where the 16-bit millisecond count is written.
const clockMillisOffset = 36

// DiskOp is the direction of a disk transfer.
type DiskOp uint8

// Disk operations.
const (
	DiskRead  DiskOp = ServiceDiskRead
	DiskWrite DiskOp = ServiceDiskWrite
)

func (op DiskOp) String() string {
	if op == DiskWrite {
		return "write"
	}
	return "read"
}

// DiskRequest describes one disk transfer between an image and memory.
type DiskRequest struct {
	Drive   byte   // DL
	Op      DiskOp // read or write
	Address uint32 // linear ES:BX
	Offset  int64  // byte offset into the image, BP*512
	Length  int    // AX

	// Data holds the bytes to write, or receives the bytes read. Its
	// length is Length.
	Data []byte
}

// Hooks is the interface the core uses to reach the host.
type Hooks interface {
	// PutChar writes one character to the console.
	PutChar(b byte)

	// Clock returns the current local time as sec, min, hour, mday, mon,
	// year-1900, wday, yday, isdst and milliseconds.
	Clock() [ClockRecordSize]byte

	// DiskTransfer moves req.Length bytes and returns the count moved.
	DiskTransfer(req DiskRequest) (int, error)

	// PollKey returns a pending key byte without blocking.
	PollKey() (byte, bool)
}

// DefaultHooks provides a basic Hooks implementation.
type DefaultHooks struct {
	stdout io.Writer
	disks  *DiskTable
	keys   <-chan byte
	now    func() time.Time
}

// NewDefaultHooks creates hooks that print to stdout, read the host clock,
// have no disks and no keyboard.
func NewDefaultHooks(stdout io.Writer) *DefaultHooks {
	return &DefaultHooks{
		stdout: stdout,
		now:    time.Now,
	}
}

// SetDisks attaches a disk table to serve disk transfers.
func (h *DefaultHooks) SetDisks(disks *DiskTable) {
	h.disks = disks
}

// SetKeyboard sets the channel key bytes are polled from.
func (h *DefaultHooks) SetKeyboard(keys <-chan byte) {
	h.keys = keys
}

// SetClock overrides the time source.
func (h *DefaultHooks) SetClock(now func() time.Time) {
	h.now = now
}

// PutChar writes b to stdout.
func (h *DefaultHooks) PutChar(b byte) {
	if h.stdout == nil {
		return
	}
	_, _ = h.stdout.Write([]byte{b})
}

// Clock encodes the current time in UTC.
func (h *DefaultHooks) Clock() [ClockRecordSize]byte {
	return EncodeClock(h.now().UTC())
}

// DiskTransfer forwards to the disk table. Without one every transfer
// moves zero bytes.
func (h *DefaultHooks) DiskTransfer(req DiskRequest) (int, error) {
	if h.disks == nil {
		return 0, nil
	}
	return h.disks.Transfer(req)
}

// PollKey returns the next byte from the keyboard channel, if any.
func (h *DefaultHooks) PollKey() (byte, bool) {
	if h.keys == nil {
		return 0, false
	}

	select {
	case b, ok := <-h.keys:
		return b, ok
	default:
		return 0, false
	}
}

// EncodeClock builds the real-time-clock record for t.
func EncodeClock(t time.Time) [ClockRecordSize]byte {
	fields := [ClockRecordSize / 4]int{
		t.Second(),
		t.Minute(),
		t.Hour(),
		t.Day(),
		int(t.Month()) - 1,
		t.Year() - 1900,
		int(t.Weekday()),
		t.YearDay() - 1,
		0,
		t.Nanosecond() / int(time.Millisecond),
	}

	var rec [ClockRecordSize]byte
	for i, f := range fields {
		binary.LittleEndian.PutUint32(rec[4*i:], uint32(int32(f)))
	}
	return rec
}
