package emu_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"time"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/insts"
)

// memDisk is an in-memory disk image.
type memDisk struct {
	data   []byte
	closed bool
}

func (d *memDisk) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(d.data)) {
		return 0, io.EOF
	}
	n := copy(p, d.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (d *memDisk) WriteAt(p []byte, off int64) (int, error) {
	if off+int64(len(p)) > int64(len(d.data)) {
		return 0, errors.New("write past end of image")
	}
	return copy(d.data[off:], p), nil
}

func (d *memDisk) Close() error {
	d.closed = true
	return nil
}

var _ = Describe("Emulator services", func() {
	var (
		mockCtrl  *gomock.Controller
		mockHooks *MockHooks
		e         *emu.Emulator
		rf        *emu.RegFile
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockHooks = NewMockHooks(mockCtrl)
		e = emu.NewEmulator(emu.WithHooks(mockHooks))
		rf = e.RegFile()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should print AL", func() {
		mockHooks.EXPECT().PutChar(byte('A'))
		loadProgram(e,
			0xB0, 'A', // MOV AL,'A'
			0x0F, 0x00, // putchar
		)

		stepN(e, 2)

		Expect(rf.IP).To(Equal(uint16(4)))
	})

	It("should install the clock record at ES:BX", func() {
		now := time.Date(2024, time.March, 5, 14, 30, 15, 250*int(time.Millisecond), time.UTC)
		mockHooks.EXPECT().Clock().Return(emu.EncodeClock(now))
		loadProgram(e, 0x0F, 0x01)
		rf.Write16(insts.RegES, 0x2000)
		rf.Write16(insts.RegBX, 0x0010)

		e.Step()

		base := emu.Linear(0x2000, 0x0010)
		Expect(e.Memory().Read32(base)).To(Equal(uint32(15)))
		Expect(e.Memory().Read32(base + 20)).To(Equal(uint32(124)))
		Expect(e.Memory().Read16(base + 36)).To(Equal(uint16(250)))
	})

	It("should pass the disk request to the hooks", func() {
		mockHooks.EXPECT().
			DiskTransfer(gomock.Any()).
			DoAndReturn(func(req emu.DiskRequest) (int, error) {
				Expect(req.Drive).To(Equal(byte(emu.DriveFloppy)))
				Expect(req.Op).To(Equal(emu.DiskRead))
				Expect(req.Offset).To(Equal(int64(3 * emu.SectorSize)))
				Expect(req.Length).To(Equal(4))
				Expect(req.Address).To(Equal(emu.Linear(0x2000, 0x0040)))
				copy(req.Data, []byte{9, 8, 7, 6})
				return 4, nil
			})
		loadProgram(e, 0x0F, 0x02)
		rf.Write8(insts.RegDL, emu.DriveFloppy)
		rf.Write16(insts.RegBP, 3)
		rf.Write16(insts.RegAX, 4)
		rf.Write16(insts.RegES, 0x2000)
		rf.Write16(insts.RegBX, 0x0040)

		e.Step()

		got := make([]byte, 4)
		e.Memory().Fetch(emu.Linear(0x2000, 0x0040), got)
		Expect(got).To(Equal([]byte{9, 8, 7, 6}))
		Expect(rf.Read8(insts.RegAL)).To(Equal(byte(4)))
	})

	It("should report a failed transfer in AL", func() {
		mockHooks.EXPECT().
			DiskTransfer(gomock.Any()).
			Return(0, emu.ErrNoDisk)
		loadProgram(e, 0x0F, 0x03)
		rf.Write16(insts.RegAX, 0x0200)

		e.Step()

		Expect(rf.Read8(insts.RegAL)).To(BeZero())
	})
})

var _ = Describe("DefaultHooks", func() {
	It("should write characters to stdout", func() {
		var out bytes.Buffer
		e := emu.NewEmulator(emu.WithStdout(&out))
		loadProgram(e,
			0xB0, 'h', 0x0F, 0x00,
			0xB0, 'i', 0x0F, 0x00,
		)

		stepN(e, 4)

		Expect(out.String()).To(Equal("hi"))
	})

	It("should move zero bytes without disks", func() {
		h := emu.NewDefaultHooks(nil)

		n, err := h.DiskTransfer(emu.DiskRequest{Length: 512, Data: make([]byte, 512)})

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
	})

	It("should poll keys without blocking", func() {
		h := emu.NewDefaultHooks(nil)
		_, ok := h.PollKey()
		Expect(ok).To(BeFalse())

		keys := make(chan byte, 1)
		h.SetKeyboard(keys)
		_, ok = h.PollKey()
		Expect(ok).To(BeFalse())

		keys <- 'q'
		key, ok := h.PollKey()
		Expect(ok).To(BeTrue())
		Expect(key).To(Equal(byte('q')))
	})

	It("should read the clock source", func() {
		h := emu.NewDefaultHooks(nil)
		h.SetClock(func() time.Time {
			return time.Date(2024, time.March, 5, 14, 30, 15, 0, time.UTC)
		})

		rec := h.Clock()

		field := func(i int) uint32 { return binary.LittleEndian.Uint32(rec[4*i:]) }
		Expect(field(0)).To(Equal(uint32(15)))
		Expect(field(1)).To(Equal(uint32(30)))
		Expect(field(2)).To(Equal(uint32(14)))
		Expect(field(3)).To(Equal(uint32(5)))
		Expect(field(4)).To(Equal(uint32(2)))
		Expect(field(5)).To(Equal(uint32(124)))
		Expect(field(6)).To(Equal(uint32(time.Tuesday)))
		Expect(field(7)).To(Equal(uint32(64)))
		Expect(field(8)).To(BeZero())
		Expect(field(9)).To(BeZero())
	})

	It("should report the clock in UTC", func() {
		h := emu.NewDefaultHooks(nil)
		h.SetClock(func() time.Time {
			return time.Date(2024, time.March, 5, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
		})

		rec := h.Clock()

		field := func(i int) uint32 { return binary.LittleEndian.Uint32(rec[4*i:]) }
		Expect(field(2)).To(Equal(uint32(4)))
		Expect(field(3)).To(Equal(uint32(6)))
		Expect(field(6)).To(Equal(uint32(time.Wednesday)))
	})

	It("should serve transfers from the disk table", func() {
		disk := &memDisk{data: make([]byte, 4*emu.SectorSize)}
		copy(disk.data[emu.SectorSize:], []byte{1, 2, 3, 4})

		disks := emu.NewDiskTable()
		disks.Attach(emu.DriveHardDisk, disk)
		h := emu.NewDefaultHooks(nil)
		h.SetDisks(disks)

		e := emu.NewEmulator(emu.WithHooks(h))
		loadProgram(e, 0x0F, 0x02, 0x0F, 0x03)
		rf := e.RegFile()
		rf.Write8(insts.RegDL, emu.DriveHardDisk)
		rf.Write16(insts.RegBP, 1)
		rf.Write16(insts.RegAX, 4)
		rf.Write16(insts.RegES, 0x2000)

		e.Step()

		Expect(e.Memory().Read32(emu.Linear(0x2000, 0))).To(Equal(uint32(0x04030201)))
		Expect(rf.Read8(insts.RegAL)).To(Equal(byte(4)))

		e.Memory().Load(emu.Linear(0x2000, 0), []byte{0xAA, 0xBB})
		rf.Write16(insts.RegAX, 2)
		rf.Write16(insts.RegBP, 2)
		e.Step()

		Expect(disk.data[2*emu.SectorSize : 2*emu.SectorSize+2]).To(Equal([]byte{0xAA, 0xBB}))
		Expect(rf.Read8(insts.RegAL)).To(Equal(byte(2)))
	})
})
