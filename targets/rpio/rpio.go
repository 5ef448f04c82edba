// Package rpio implements core.PinDriver over the go-rpio library, for
// hosts where the fixed register window cannot be mapped directly but
// /dev/gpiomem access works.
package rpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"

	"ledctl/core"
)

// Driver drives GPIO pins through go-rpio's memory mapping.
type Driver struct{}

// Open maps the GPIO memory via go-rpio and returns a driver.
func Open() (*Driver, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio memory: %w", err)
	}
	return &Driver{}, nil
}

// Close releases the go-rpio mapping.
func (d *Driver) Close() error {
	return rpio.Close()
}

func (d *Driver) ConfigureOutput(pin core.Pin) error {
	if err := check(pin); err != nil {
		return err
	}
	rpio.Pin(pin).Output()
	return nil
}

func (d *Driver) Set(pin core.Pin) error {
	if err := check(pin); err != nil {
		return err
	}
	rpio.Pin(pin).High()
	return nil
}

func (d *Driver) Clear(pin core.Pin) error {
	if err := check(pin); err != nil {
		return err
	}
	rpio.Pin(pin).Low()
	return nil
}

func (d *Driver) Level(pin core.Pin) (bool, error) {
	if err := check(pin); err != nil {
		return false, err
	}
	return rpio.Pin(pin).Read() == rpio.High, nil
}

func check(pin core.Pin) error {
	if pin > core.MaxPin {
		return fmt.Errorf("%w: %d", core.ErrPinRange, pin)
	}
	return nil
}

var _ core.PinDriver = (*Driver)(nil)
