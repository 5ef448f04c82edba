package channel

import (
	"io"
	"strings"
	"testing"
	"time"

	"ledctl/core"
)

func newTestDevice() (*Device, *core.SimBus) {
	bus := core.NewSimBus()
	ctrl := core.NewPinController(bus)
	blinker := core.NewBlinker(ctrl)
	blinker.Sleep = func(time.Duration) {}
	interp := core.NewInterpreter(ctrl, blinker)
	return NewDevice(interp), bus
}

func TestWriteDispatches(t *testing.T) {
	dev, bus := newTestDevice()

	n, err := dev.Write([]byte("21:on"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Expected 5 bytes accepted, got %d", n)
	}

	if got := bus.ReadWord(core.RegLevel0); got != 1<<21 {
		t.Errorf("Expected pin 21 high, level word %#x", got)
	}
}

func TestWriteTruncatesTo255(t *testing.T) {
	dev, _ := newTestDevice()

	n, err := dev.Write([]byte(strings.Repeat("x", 300)))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != core.MaxInputLen {
		t.Errorf("Expected %d bytes accepted, got %d", core.MaxInputLen, n)
	}
}

func TestReadAtOffsets(t *testing.T) {
	dev, _ := newTestDevice()

	if _, err := dev.Write([]byte("garbage")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := "Invalid input format"

	// Full read from offset zero.
	buf := make([]byte, 64)
	n, err := dev.ReadAt(buf, 0)
	if err != io.EOF {
		t.Errorf("Expected io.EOF on final chunk, got %v", err)
	}
	if string(buf[:n]) != want {
		t.Errorf("Expected %q, got %q", want, string(buf[:n]))
	}

	// Partial read resumes mid-message.
	n, err = dev.ReadAt(buf[:7], 8)
	if err != nil {
		t.Errorf("Mid-message read should not hit EOF, got %v", err)
	}
	if string(buf[:n]) != want[8:15] {
		t.Errorf("Expected %q, got %q", want[8:15], string(buf[:n]))
	}
}

func TestReadAtEOF(t *testing.T) {
	dev, _ := newTestDevice()

	if _, err := dev.Write([]byte("garbage")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	msgLen := int64(len("Invalid input format"))

	buf := make([]byte, 16)
	for _, off := range []int64{msgLen, msgLen + 1, msgLen + 100} {
		n, err := dev.ReadAt(buf, off)
		if n != 0 || err != io.EOF {
			t.Errorf("Offset %d: expected (0, io.EOF), got (%d, %v)", off, n, err)
		}
	}
}

func TestReadAtEmptyBuffer(t *testing.T) {
	dev, _ := newTestDevice()

	// No failure recorded yet: reads hit EOF immediately.
	n, err := dev.ReadAt(make([]byte, 8), 0)
	if n != 0 || err != io.EOF {
		t.Errorf("Expected (0, io.EOF) with no stored error, got (%d, %v)", n, err)
	}
}

func TestReadAll(t *testing.T) {
	dev, _ := newTestDevice()

	if _, err := dev.Write([]byte("21:dance")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if got := dev.ReadAll(); got != "Unknown action: dance" {
		t.Errorf("Expected full error text, got %q", got)
	}
}

func TestOpenRelease(t *testing.T) {
	dev, _ := newTestDevice()

	var logged []string
	core.SetDebugWriter(func(s string) { logged = append(logged, s) })
	defer core.SetDebugWriter(nil)

	dev.Open()
	dev.Release()

	if len(logged) != 2 {
		t.Errorf("Expected 2 log lines, got %v", logged)
	}
}
