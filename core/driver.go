package core

// Pin identifies a hardware GPIO pin number.
type Pin uint32

// MaxPin is the highest GPIO line on the BCM2835.
const MaxPin Pin = 53

// PinDriver is the abstract GPIO interface that the interpreter and
// blink sequencer use. The register-backed PinController is the primary
// implementation; targets/rpio provides an alternative for hosts where
// the raw register window cannot be mapped.
type PinDriver interface {
	// ConfigureOutput configures a pin as a digital output.
	ConfigureOutput(pin Pin) error

	// Set drives the pin high.
	Set(pin Pin) error

	// Clear drives the pin low.
	Clear(pin Pin) error

	// Level reads the current pin level.
	Level(pin Pin) (bool, error)
}
