package devmem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bleviet/fpga-lib-sub001/pkg/bus"
)

func Test_Devmem_00(t *testing.T) {
	dev := openScratch(t, 4096)
	// Words written come back through the mapping
	if err := dev.WriteWord(0x40, 0xdeadbeef); err != nil {
		t.Fatal(err)
	}
	//
	if word, err := dev.ReadWord(0x40); err != nil || word != 0xdeadbeef {
		t.Errorf("expected 0xdeadbeef, got 0x%x (%v)", word, err)
	}
}

func Test_Devmem_01(t *testing.T) {
	dev := openScratch(t, 4096)
	// Unaligned accesses are rejected
	var busErr *bus.Error
	//
	if _, err := dev.ReadWord(0x41); !errors.As(err, &busErr) {
		t.Errorf("expected bus error, got %v", err)
	}
	//
	if err := dev.WriteWord(0x42, 1); !errors.As(err, &busErr) {
		t.Errorf("expected bus error, got %v", err)
	}
}

func Test_Devmem_02(t *testing.T) {
	dev := openScratch(t, 4096)
	// Accesses beyond the window are rejected
	if _, err := dev.ReadWord(4096); err == nil {
		t.Error("expected out-of-window read to fail")
	}
	//
	if _, err := dev.ReadWord(4096 - 4); err != nil {
		t.Error(err)
	}
	//
	if err := dev.WriteWord(4096, 1); err == nil {
		t.Error("expected out-of-window write to fail")
	}
}

func Test_Devmem_03(t *testing.T) {
	// The device satisfies the word bus capability
	var _ bus.Bus = openScratch(t, 4096)
}

func Test_Devmem_04(t *testing.T) {
	// A failed mapping releases the file descriptor again
	path := filepath.Join(t.TempDir(), "window")
	//
	if err := os.WriteFile(path, make([]byte, 4096), 0644); err != nil {
		t.Fatal(err)
	}
	//
	before := openDescriptors(t)
	// A zero-length window cannot be mapped
	for i := 0; i < 64; i++ {
		if _, err := Open(path, 0, 0); err == nil {
			t.Fatal("expected zero-length mapping to fail")
		}
	}
	//
	if after := openDescriptors(t); after > before {
		t.Errorf("descriptors leaked: %d before, %d after", before, after)
	}
}

// openDescriptors counts the file descriptors held by this process.
func openDescriptors(t *testing.T) int {
	t.Helper()
	//
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("cannot enumerate file descriptors")
	}
	//
	return len(entries)
}

// openScratch maps a zeroed scratch file of the given size, standing in for
// a device window.
func openScratch(t *testing.T, size int) *Device {
	t.Helper()
	//
	path := filepath.Join(t.TempDir(), "window")
	//
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
	//
	dev, err := Open(path, 0, size)
	if err != nil {
		t.Fatal(err)
	}
	//
	t.Cleanup(func() { _ = dev.Close() })
	//
	return dev
}
