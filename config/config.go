// Package config loads the JSON deployment configuration: which GPIO
// backend to use, which pins are managed, and the blink waveform.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"ledctl/core"
)

// Backend selection values.
const (
	BackendMMIO = "mmio" // map the register window from /dev/mem
	BackendRPIO = "rpio" // go-rpio driver (/dev/gpiomem)
	BackendSim  = "sim"  // in-memory simulated register bank
)

// Config describes one deployment of the pin-control daemon.
type Config struct {
	// Serial device serving the command channel; empty means stdin.
	Device string `json:"device"`
	Baud   int    `json:"baud"`

	// GPIO backend: mmio, rpio or sim.
	Backend string `json:"backend"`

	// Physical base address and byte length of the register window
	// (mmio backend only).
	GPIOBase   int64 `json:"gpio_base"`
	WindowSize int   `json:"window_size"`

	// Pins configured as outputs at startup and driven low at
	// shutdown.
	Pins []core.Pin `json:"pins"`

	// Blink waveform and the duration dispatched per blink command.
	BlinkOnMS       int `json:"blink_on_ms"`
	BlinkOffMS      int `json:"blink_off_ms"`
	BlinkDurationMS int `json:"blink_duration_ms"`
}

// LoadConfig parses a JSON configuration and applies defaults.
func LoadConfig(jsonData []byte) (*Config, error) {
	var cfg Config

	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile reads and parses a configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return LoadConfig(data)
}

// DefaultConfig returns the configuration matching the reference
// deployment: three LED pins on a Raspberry Pi 3.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Baud == 0 {
		cfg.Baud = 115200
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendMMIO
	}
	if cfg.GPIOBase == 0 {
		cfg.GPIOBase = 0x3F200000
	}
	if cfg.WindowSize == 0 {
		cfg.WindowSize = 0xB0
	}
	if len(cfg.Pins) == 0 {
		cfg.Pins = []core.Pin{21, 20, 16}
	}
	if cfg.BlinkOnMS == 0 {
		cfg.BlinkOnMS = 50
	}
	if cfg.BlinkOffMS == 0 {
		cfg.BlinkOffMS = 50
	}
	if cfg.BlinkDurationMS == 0 {
		cfg.BlinkDurationMS = core.DefaultBlinkMS
	}
}

func validate(cfg *Config) error {
	switch cfg.Backend {
	case BackendMMIO, BackendRPIO, BackendSim:
	default:
		return fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	for _, pin := range cfg.Pins {
		if pin > core.MaxPin {
			return fmt.Errorf("%w: %d", core.ErrPinRange, pin)
		}
	}

	return nil
}
