// GPIO pin control over the BCM2835 register window.
package core

import (
	"errors"
	"fmt"
)

// ErrPinRange reports a pin number outside the 0-53 hardware range.
var ErrPinRange = errors.New("pin out of range")

// Function select codes. Each pin has a 3-bit field in its GPFSEL
// register; 0b000 is input, 0b001 is output.
const (
	funcOutput = 1
	funcMask   = 7
)

// PinController drives GPIO pins through a RegisterBus. Set and Clear
// use the dedicated write-only GPSET/GPCLR registers, so they affect
// only the bit they name. ConfigureOutput is a read-modify-write of the
// shared function-select register and must not run concurrently with
// another modification of the same register; the interpreter's dispatch
// lock is the serialization boundary.
type PinController struct {
	bus RegisterBus
}

// NewPinController returns a controller over the given register bus.
func NewPinController(bus RegisterBus) *PinController {
	return &PinController{bus: bus}
}

// ConfigureOutput sets the pin's function-select field to output.
func (c *PinController) ConfigureOutput(pin Pin) error {
	if err := checkPin(pin); err != nil {
		return err
	}

	// 10 pins per GPFSEL register, 3 bits each.
	reg := uint32(pin) / 10
	shift := (uint32(pin) % 10) * 3

	value := c.bus.ReadWord(reg)
	value &^= funcMask << shift
	value |= funcOutput << shift
	c.bus.WriteWord(reg, value)

	return nil
}

// Set drives the pin high via the GPSET bank.
func (c *PinController) Set(pin Pin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	c.bus.WriteWord(RegSet0+uint32(pin)/32, 1<<(uint32(pin)%32))
	return nil
}

// Clear drives the pin low via the GPCLR bank.
func (c *PinController) Clear(pin Pin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	c.bus.WriteWord(RegClear0+uint32(pin)/32, 1<<(uint32(pin)%32))
	return nil
}

// Level reads the pin's current level from the GPLEV bank.
func (c *PinController) Level(pin Pin) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	word := c.bus.ReadWord(RegLevel0 + uint32(pin)/32)
	return word&(1<<(uint32(pin)%32)) != 0, nil
}

// checkPin rejects pins outside the hardware range before any register
// offset is computed from them.
func checkPin(pin Pin) error {
	if pin > MaxPin {
		return fmt.Errorf("%w: %d", ErrPinRange, pin)
	}
	return nil
}
