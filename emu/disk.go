package emu

import (
	"errors"
	"io"
	"sync"
)

// Drive numbers as the BIOS passes them to the disk services.
const (
	DriveHardDisk byte = 0
	DriveFloppy   byte = 1
)

// SectorSize is the size of a disk sector in bytes.
const SectorSize = 512

// ErrNoDisk is returned for transfers to a drive with no image attached.
var ErrNoDisk = errors.New("no disk in drive")

// DiskImage is the backing store of a drive.
type DiskImage interface {
	io.ReaderAt
	io.WriterAt
}

// DiskTable maps drive numbers to disk images and serves disk transfers.
type DiskTable struct {
	drives map[byte]DiskImage
	mu     sync.Mutex
}

// NewDiskTable creates an empty disk table.
func NewDiskTable() *DiskTable {
	return &DiskTable{drives: make(map[byte]DiskImage)}
}

// Attach inserts img into drive, replacing any previous image.
func (t *DiskTable) Attach(drive byte, img DiskImage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.drives[drive] = img
}

// Detach removes the image in drive and closes it if it is a Closer.
func (t *DiskTable) Detach(drive byte) error {
	t.mu.Lock()
	img, exists := t.drives[drive]
	delete(t.drives, drive)
	t.mu.Unlock()

	if !exists {
		return ErrNoDisk
	}

	if c, ok := img.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// Get returns the image in drive.
func (t *DiskTable) Get(drive byte) (DiskImage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	img, exists := t.drives[drive]
	return img, exists
}

// Close detaches every drive and returns the first close error.
func (t *DiskTable) Close() error {
	t.mu.Lock()
	drives := make([]byte, 0, len(t.drives))
	for d := range t.drives {
		drives = append(drives, d)
	}
	t.mu.Unlock()

	var first error
	for _, d := range drives {
		if err := t.Detach(d); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// Transfer performs req against the image in req.Drive. A read that runs
// past the end of the image returns the bytes it got.
func (t *DiskTable) Transfer(req DiskRequest) (int, error) {
	img, ok := t.Get(req.Drive)
	if !ok {
		return 0, ErrNoDisk
	}

	buf := req.Data[:req.Length]

	if req.Op == DiskWrite {
		return img.WriteAt(buf, req.Offset)
	}

	n, err := img.ReadAt(buf, req.Offset)
	if errors.Is(err, io.EOF) && n > 0 {
		return n, nil
	}

	return n, err
}
