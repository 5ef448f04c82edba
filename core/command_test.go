package core

import (
	"strings"
	"testing"
	"time"
)

func newTestInterpreter() (*Interpreter, *SimBus) {
	bus := NewSimBus()
	ctrl := NewPinController(bus)
	blinker := NewBlinker(ctrl)
	blinker.Sleep = func(time.Duration) {}
	return NewInterpreter(ctrl, blinker), bus
}

func TestHandleOn(t *testing.T) {
	interp, bus := newTestInterpreter()

	// Seed an error so we can verify success leaves it alone.
	interp.HandleInput("garbage")
	prior := interp.LastError()

	interp.HandleInput("21:on")

	if got := bus.ReadWord(RegLevel0); got != 1<<21 {
		t.Errorf("Expected pin 21 high, level word %#x", got)
	}
	if interp.LastError() != prior {
		t.Errorf("Last error changed on success: %q", interp.LastError())
	}
}

func TestHandleOff(t *testing.T) {
	interp, bus := newTestInterpreter()

	interp.HandleInput("21:on")
	interp.HandleInput("21:off")

	if got := bus.ReadWord(RegLevel0); got != 0 {
		t.Errorf("Expected pin 21 low, level word %#x", got)
	}
	if interp.LastError() != "" {
		t.Errorf("Unexpected error: %q", interp.LastError())
	}
}

func TestHandleBlink(t *testing.T) {
	interp, bus := newTestInterpreter()

	interp.HandleInput("20:blink")

	// Default 5000ms over a 100ms period: 50 set and 50 clear writes.
	if bus.WriteCount() != 100 {
		t.Errorf("Expected 100 register writes, got %d", bus.WriteCount())
	}
	if interp.LastError() != "" {
		t.Errorf("Unexpected error: %q", interp.LastError())
	}
}

func TestInvalidFormat(t *testing.T) {
	tests := []string{
		"garbage",
		"",
		"21",
		"21:",
		"21 on",
		":on",
		"on:21",
		"x21:on",
	}

	for _, input := range tests {
		interp, bus := newTestInterpreter()
		interp.HandleInput(input)

		if got := interp.LastError(); got != "Invalid input format" {
			t.Errorf("Input %q: expected \"Invalid input format\", got %q",
				input, got)
		}
		if bus.WriteCount() != 0 {
			t.Errorf("Input %q wrote %d registers", input, bus.WriteCount())
		}
	}
}

func TestUnknownAction(t *testing.T) {
	interp, bus := newTestInterpreter()

	interp.HandleInput("21:dance")

	if got := interp.LastError(); got != "Unknown action: dance" {
		t.Errorf("Expected \"Unknown action: dance\", got %q", got)
	}
	if bus.WriteCount() != 0 {
		t.Errorf("Unknown action wrote %d registers", bus.WriteCount())
	}
}

func TestUnknownActionCaseSensitive(t *testing.T) {
	interp, _ := newTestInterpreter()

	interp.HandleInput("21:ON")

	if got := interp.LastError(); got != "Unknown action: ON" {
		t.Errorf("Expected case-sensitive rejection, got %q", got)
	}
}

func TestOverlongActionTruncated(t *testing.T) {
	interp, _ := newTestInterpreter()

	// Tokens are cut at nine characters before lookup.
	interp.HandleInput("21:dancingmachine")

	if got := interp.LastError(); got != "Unknown action: dancingma" {
		t.Errorf("Expected truncated token in error, got %q", got)
	}
}

func TestPinOutOfRangeCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"54:on", "Pin out of range: 54"},
		{"99:off", "Pin out of range: 99"},
		{"-5:on", "Pin out of range: -5"},
		{"40000000000:blink", "Pin out of range: 40000000000"},
	}

	for _, test := range tests {
		interp, bus := newTestInterpreter()
		interp.HandleInput(test.input)

		if got := interp.LastError(); got != test.want {
			t.Errorf("Input %q: expected %q, got %q", test.input, test.want, got)
		}
		if bus.WriteCount() != 0 {
			t.Errorf("Input %q wrote %d registers", test.input, bus.WriteCount())
		}
	}
}

func TestWhitespaceTolerance(t *testing.T) {
	interp, bus := newTestInterpreter()

	// Line endings and the sscanf-style gap after the colon are fine.
	interp.HandleInput(" 16: on\n")

	if got := bus.ReadWord(RegLevel0); got != 1<<16 {
		t.Errorf("Expected pin 16 high, level word %#x", got)
	}
	if interp.LastError() != "" {
		t.Errorf("Unexpected error: %q", interp.LastError())
	}
}

func TestErrorPersistsUntilOverwritten(t *testing.T) {
	interp, _ := newTestInterpreter()

	interp.HandleInput("21:dance")
	interp.HandleInput("21:on") // success does not clear
	if got := interp.LastError(); got != "Unknown action: dance" {
		t.Errorf("Expected stale error to persist, got %q", got)
	}

	interp.HandleInput("bad")
	if got := interp.LastError(); got != "Invalid input format" {
		t.Errorf("Expected new error to overwrite, got %q", got)
	}
}

func TestOversizeInputTruncated(t *testing.T) {
	interp, _ := newTestInterpreter()

	// 300 bytes of digits: truncation happens before parsing, and the
	// truncated text still has no colon.
	interp.HandleInput(strings.Repeat("9", 300))

	if got := interp.LastError(); got != "Invalid input format" {
		t.Errorf("Expected parse failure, got %q", got)
	}
}

func TestSetBlinkDuration(t *testing.T) {
	interp, bus := newTestInterpreter()
	interp.SetBlinkDuration(200)

	interp.HandleInput("21:blink")

	// 200ms over a 100ms period: 2 cycles, 4 writes.
	if bus.WriteCount() != 4 {
		t.Errorf("Expected 4 register writes, got %d", bus.WriteCount())
	}
}
