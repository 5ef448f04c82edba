package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"ledctl/channel"
	"ledctl/config"
	"ledctl/core"
	"ledctl/serial"
	"ledctl/targets/bcm2835"
	"ledctl/targets/rpio"
)

var (
	configPath = flag.String("config", "", "Path to JSON configuration file")
	device     = flag.String("device", "", "Serial device for the command channel (empty = stdin)")
	backend    = flag.String("backend", "", "GPIO backend: mmio, rpio or sim")
	verbose    = flag.Bool("verbose", false, "Log channel lifecycle events")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		core.SetDebugWriter(func(s string) { fmt.Println(s) })
	}

	driver, closeDriver, err := openDriver(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize GPIO: %v\n", err)
		os.Exit(1)
	}

	// Managed pins become outputs now so on/off/blink work without a
	// per-command configure step.
	for _, pin := range cfg.Pins {
		if err := driver.ConfigureOutput(pin); err != nil {
			fmt.Fprintf(os.Stderr, "Error: configure pin %d: %v\n", pin, err)
			closeDriver()
			os.Exit(1)
		}
	}

	blinker := core.NewBlinker(driver)
	blinker.SetPhases(
		time.Duration(cfg.BlinkOnMS)*time.Millisecond,
		time.Duration(cfg.BlinkOffMS)*time.Millisecond,
	)

	interp := core.NewInterpreter(driver, blinker)
	interp.SetBlinkDuration(cfg.BlinkDurationMS)

	dev := channel.NewDevice(interp)

	// All LEDs off on exit, then release the register mapping.
	var shutdownOnce sync.Once
	shutdown := func() {
		shutdownOnce.Do(func() {
			for _, pin := range cfg.Pins {
				_ = driver.Clear(pin)
			}
			closeDriver()
			core.DebugPrintln("pin control shut down")
		})
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		shutdown()
		os.Exit(0)
	}()

	if err := serve(cfg, dev); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	shutdown()
}

// loadConfig merges the config file (or defaults) with flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *device != "" {
		cfg.Device = *device
	}
	if *backend != "" {
		cfg.Backend = *backend
	}

	return cfg, nil
}

// openDriver builds the configured GPIO backend and its teardown.
func openDriver(cfg *config.Config) (core.PinDriver, func(), error) {
	switch cfg.Backend {
	case config.BackendSim:
		bus := core.NewSimBus()
		return core.NewPinController(bus), func() { _ = bus.Close() }, nil

	case config.BackendRPIO:
		d, err := rpio.Open()
		if err != nil {
			return nil, nil, err
		}
		return d, func() { _ = d.Close() }, nil

	default:
		bus, err := bcm2835.Open(cfg.GPIOBase, cfg.WindowSize)
		if err != nil {
			return nil, nil, err
		}
		return core.NewPinController(bus), func() { _ = bus.Close() }, nil
	}
}

// serve runs the command channel session over the configured transport.
func serve(cfg *config.Config, dev *channel.Device) error {
	if cfg.Device == "" {
		fmt.Println("ledctl - GPIO pin control")
		fmt.Println("Commands: <pin>:on  <pin>:off  <pin>:blink  ? (read last error)")
		return channel.Serve(stdio{}, dev)
	}

	port, err := serial.Open(&serial.Config{
		Device: cfg.Device,
		Baud:   cfg.Baud,
	})
	if err != nil {
		return err
	}
	defer port.Close()

	core.DebugPrintln("serving command channel on " + cfg.Device)
	return channel.Serve(port, dev)
}

// stdio adapts the process terminal to an io.ReadWriter.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

var _ io.ReadWriter = stdio{}
