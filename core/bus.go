// Register bus abstraction for the BCM2835 GPIO block.
// The bus exposes a word-indexed view of the memory-mapped register
// window; offsets are in 32-bit words, not bytes.
package core

// Word offsets of the GPIO registers within the mapped window.
// The window is 0xB0 bytes (44 words) starting at the GPIO base.
const (
	RegFSel0  = 0  // GPFSEL0: function select, 10 pins per register, 3 bits each
	RegSet0   = 7  // GPSET0: write 1 to drive pins 0-31 high (byte offset 0x1C)
	RegSet1   = 8  // GPSET1: pins 32-53
	RegClear0 = 10 // GPCLR0: write 1 to drive pins 0-31 low (byte offset 0x28)
	RegClear1 = 11 // GPCLR1: pins 32-53
	RegLevel0 = 13 // GPLEV0: pin level readback
	RegLevel1 = 14 // GPLEV1: pins 32-53
)

// BusWords is the size of the GPIO register window in 32-bit words.
const BusWords = 0xB0 / 4

// RegisterBus is the abstract register access layer. Implementations
// perform real memory-mapped I/O or simulate the register bank for
// tests. Offsets outside the window are a programmer error; both
// implementations panic rather than touch an unrelated address.
type RegisterBus interface {
	// ReadWord reads the 32-bit register at the given word offset.
	ReadWord(offset uint32) uint32

	// WriteWord writes the 32-bit register at the given word offset.
	WriteWord(offset uint32, value uint32)

	// Close releases the underlying mapping. No access is valid
	// after Close returns.
	Close() error
}
