// Package loader reads BIOS and disk images for the emulator.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/tiny86/emu"
)

// ErrImageLoad is returned when an image cannot be read.
var ErrImageLoad = errors.New("failed to load image")

// ErrReadOnly is returned for writes to a disk opened read-only.
var ErrReadOnly = errors.New("disk image is read-only")

// Image is a BIOS image ready to be copied into memory.
type Image struct {
	// Path is the file the image was read from.
	Path string
	// Data holds at most emu.BIOSMaxSize bytes.
	Data []byte
	// Truncated is set when the file was longer than emu.BIOSMaxSize.
	Truncated bool
}

// LoadBIOS reads the BIOS image at path.
func LoadBIOS(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	defer func() { _ = f.Close() }()

	// Read one byte past the limit to detect truncation.
	data, err := io.ReadAll(io.LimitReader(f, emu.BIOSMaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImageLoad, path, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", ErrImageLoad, path)
	}

	img := &Image{Path: path, Data: data}
	if len(data) > emu.BIOSMaxSize {
		img.Data = data[:emu.BIOSMaxSize]
		img.Truncated = true
	}

	return img, nil
}

// Disk is an open floppy or hard-disk image.
type Disk struct {
	*os.File

	// Path is the file backing the disk.
	Path string
	// Size is the image size in bytes when it was opened.
	Size int64
	// ReadOnly is set when the file could not be opened for writing.
	ReadOnly bool
}

// LoadDisk opens the disk image at path for reading and writing, falling
// back to read-only access.
func LoadDisk(path string) (*Disk, error) {
	readOnly := false

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrImageLoad, err)
		}
		readOnly = true
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrImageLoad, path, err)
	}

	return &Disk{
		File:     f,
		Path:     path,
		Size:     info.Size(),
		ReadOnly: readOnly,
	}, nil
}

// Sectors returns the number of whole sectors in the image.
func (d *Disk) Sectors() int64 {
	return d.Size / emu.SectorSize
}

// WriteAt writes to the image unless it is read-only.
func (d *Disk) WriteAt(p []byte, off int64) (int, error) {
	if d.ReadOnly {
		return 0, ErrReadOnly
	}
	return d.File.WriteAt(p, off)
}

// AttachDisk opens path and inserts it into drive of table.
func AttachDisk(table *emu.DiskTable, drive byte, path string) (*Disk, error) {
	d, err := LoadDisk(path)
	if err != nil {
		return nil, err
	}

	table.Attach(drive, d)
	return d, nil
}
