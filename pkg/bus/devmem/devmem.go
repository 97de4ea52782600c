package devmem

import (
	"encoding/binary"
	"errors"
	"io"
	"runtime/debug"
	"syscall"

	"github.com/bleviet/fpga-lib-sub001/pkg/bus"
	pkgErrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Device provides word access to a memory-mapped hardware window, such as a
// slice of /dev/mem or a UIO device node, holding a reference to the
// underlying file descriptor.  Reads go through the memory map to avoid
// system call overhead; writes go through the file descriptor.  It satisfies
// the bus.Bus capability.
type Device struct {
	FileDescriptor int
	Data           []byte
}

// Open maps sizeBytes of device memory starting at offset into the file
// referred to by path, which must refer either to a memory device node or a
// regular file.
func Open(path string, offset int64, sizeBytes int) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, pkgErrors.Wrapf(err, "failed to open device %#v", path)
	}

	data, err := unix.Mmap(fd, offset, sizeBytes, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, pkgErrors.Wrapf(err, "failed to memory map device %#v", path)
	}

	return &Device{
		FileDescriptor: fd,
		Data:           data,
	}, nil
}

// ReadWord reads the 32-bit word at the given byte offset through the memory
// map.  The offset must be word aligned and lie within the mapped window.
func (dev *Device) ReadWord(addr uint32) (data uint32, err error) {
	if err := dev.check("read", addr); err != nil {
		return 0, err
	}
	// Install a page fault handler, so that I/O errors against the
	// memory map (e.g., due to a device fault) don't cause us to
	// crash.
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)

		if recover() != nil {
			err = &bus.Error{
				Op: "read", Addr: addr,
				Err: errors.New("page fault occurred while reading from memory map"),
			}
		}
	}()

	data = binary.LittleEndian.Uint32(dev.Data[addr : addr+4])

	return data, nil
}

// WriteWord writes a 32-bit word at the given byte offset.  The write goes
// through the file descriptor rather than the memory map, so that a device
// fault surfaces as an error rather than a page fault.
//
// The pwrite() system call cannot return a size and error at the same time.
// If an error occurs after one or more bytes are written, it returns the
// size without an error (a "short write").  As WriteWord() must report such
// errors, pwrite() is invoked repeatedly until the word is out.
func (dev *Device) WriteWord(addr uint32, data uint32) error {
	if err := dev.check("write", addr); err != nil {
		return err
	}

	var buf [4]byte

	binary.LittleEndian.PutUint32(buf[:], data)
	p := buf[:]
	off := int64(addr)

	for len(p) > 0 {
		n, err := unix.Pwrite(dev.FileDescriptor, p, off)

		if err != nil {
			return &bus.Error{Op: "write", Addr: addr, Err: err}
		}

		p = p[n:]
		off += int64(n)
	}

	return nil
}

// Sync synchronizes the device's in-core state with the hardware.
func (dev *Device) Sync() error {
	return unix.Fsync(dev.FileDescriptor)
}

// Close unmaps the window and releases the file descriptor.
func (dev *Device) Close() error {
	if err := unix.Munmap(dev.Data); err != nil {
		return err
	}

	dev.Data = nil

	return unix.Close(dev.FileDescriptor)
}

// check validates alignment and range of a word access.
func (dev *Device) check(op string, addr uint32) error {
	if addr%4 != 0 {
		return &bus.Error{Op: op, Addr: addr, Err: errors.New("unaligned word access")}
	}

	if int64(addr)+4 > int64(len(dev.Data)) {
		return &bus.Error{Op: op, Addr: addr, Err: io.EOF}
	}

	return nil
}
