// Package bcm2835 maps the BCM2835 GPIO register window from /dev/mem
// and exposes it as a core.RegisterBus.
//
// Programs using this package generally need to run as root, since
// normal users do not have direct access to physical memory.
package bcm2835

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"ledctl/core"
)

const (
	// DefaultBase is the GPIO block's physical address on the
	// BCM2837 (Raspberry Pi 3) peripheral bus.
	DefaultBase = 0x3F200000

	// WindowSize is the byte length of the GPIO register window.
	WindowSize = 0xB0
)

var (
	openMu sync.Mutex
	opened bool
)

// Bus is a core.RegisterBus backed by a live mapping of the GPIO
// register window. The window is mapped exactly once per process; a
// second Open fails until the first Bus is closed.
type Bus struct {
	mem   []byte
	words []uint32
}

// Open maps the register window at the given physical base address.
// Zero values select the defaults. Mapping failure is fatal to startup:
// no pin operation is valid without a Bus.
func Open(base int64, size int) (*Bus, error) {
	openMu.Lock()
	defer openMu.Unlock()

	if opened {
		return nil, errors.New("GPIO register window already mapped")
	}

	if base == 0 {
		base = DefaultBase
	}
	if size <= 0 {
		size = WindowSize
	}

	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/mem: %w", err)
	}
	defer f.Close()

	mem, err := unix.Mmap(
		int(f.Fd()),
		base,
		size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
	if err != nil {
		return nil, fmt.Errorf("map GPIO window at %#x: %w", base, err)
	}

	words := unsafe.Slice((*uint32)(unsafe.Pointer(&mem[0])), len(mem)/4)

	opened = true
	return &Bus{mem: mem, words: words}, nil
}

// ReadWord reads the register at the given word offset. The access goes
// through sync/atomic so the compiler cannot cache, elide or reorder it
// the way it may with ordinary loads; every call reaches the device.
func (b *Bus) ReadWord(offset uint32) uint32 {
	b.check(offset)
	return atomic.LoadUint32(&b.words[offset])
}

// WriteWord writes the register at the given word offset. Same volatile
// access rules as ReadWord.
func (b *Bus) WriteWord(offset uint32, value uint32) {
	b.check(offset)
	atomic.StoreUint32(&b.words[offset], value)
}

// Close unmaps the register window. The Bus must not be used afterward;
// a new one may be opened.
func (b *Bus) Close() error {
	openMu.Lock()
	defer openMu.Unlock()

	if b.mem == nil {
		return errors.New("GPIO register window already unmapped")
	}

	err := unix.Munmap(b.mem)
	b.mem = nil
	b.words = nil
	opened = false

	if err != nil {
		return fmt.Errorf("unmap GPIO window: %w", err)
	}
	return nil
}

func (b *Bus) check(offset uint32) {
	if b.words == nil {
		panic("register access after unmap")
	}
	if offset >= uint32(len(b.words)) {
		panic(fmt.Sprintf("register offset %d outside GPIO window", offset))
	}
}

var _ core.RegisterBus = (*Bus)(nil)
