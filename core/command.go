// Command interpreter for the textual pin-control protocol.
//
// Commands are "<pin>:<action>" where action is one of the registered
// tokens (on, off, blink). Failures are recorded in a bounded last-error
// buffer and never propagate to the channel; callers observe them by
// reading the error text back.
package core

import (
	"errors"
	"fmt"
	"sync"
)

const (
	// MaxInputLen bounds a single command write; longer input is
	// truncated before parsing.
	MaxInputLen = 255

	// MaxActionLen bounds the action token; longer tokens are cut at
	// nine characters and then looked up, so an overlong token fails
	// dispatch with its truncated spelling.
	MaxActionLen = 9

	// ErrorBufSize bounds the stored last-error text.
	ErrorBufSize = 256

	// DefaultBlinkMS is the blink duration dispatched for the blink
	// action. The protocol carries no duration argument.
	DefaultBlinkMS = 5000
)

// ActionHandler performs a pin operation for one action token.
type ActionHandler func(pin Pin) error

// Interpreter parses command text and dispatches pin operations. A
// single mutex serializes the whole parse/dispatch path and guards the
// last-error buffer, so commands from concurrent writers apply one at a
// time in arrival order. Note that a blink runs to completion while the
// lock is held; later commands wait.
type Interpreter struct {
	mu        sync.Mutex
	actions   map[string]ActionHandler
	lastError string
	blinkMS   int
}

// NewInterpreter returns an interpreter dispatching to the given driver
// and blink sequencer.
func NewInterpreter(driver PinDriver, blinker *Blinker) *Interpreter {
	in := &Interpreter{
		actions: make(map[string]ActionHandler),
		blinkMS: DefaultBlinkMS,
	}

	in.RegisterAction("on", driver.Set)
	in.RegisterAction("off", driver.Clear)
	in.RegisterAction("blink", func(pin Pin) error {
		return blinker.Blink(pin, in.blinkMS)
	})

	return in
}

// RegisterAction binds an action token to a handler. Tokens longer than
// MaxActionLen can never match and are rejected.
func (in *Interpreter) RegisterAction(token string, handler ActionHandler) {
	if len(token) == 0 || len(token) > MaxActionLen {
		panic("invalid action token: " + token)
	}
	in.actions[token] = handler
}

// SetBlinkDuration overrides the dispatched blink duration.
func (in *Interpreter) SetBlinkDuration(ms int) {
	if ms > 0 {
		in.blinkMS = ms
	}
}

// HandleInput parses and executes one command. Malformed input, unknown
// actions, out-of-range pins and driver failures are recorded as the
// last error; successful commands leave the buffer untouched.
func (in *Interpreter) HandleInput(input string) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if len(input) > MaxInputLen {
		input = input[:MaxInputLen]
	}

	pin, action, ok := parseCommand(input)
	if !ok {
		in.setLastError("Invalid input format")
		return
	}

	if pin < 0 || pin > int(MaxPin) {
		in.setLastError("Pin out of range: %d", pin)
		return
	}

	handler, found := in.actions[action]
	if !found {
		in.setLastError("Unknown action: %s", action)
		return
	}

	if err := handler(Pin(pin)); err != nil {
		if errors.Is(err, ErrPinRange) {
			in.setLastError("Pin out of range: %d", pin)
			return
		}
		in.setLastError("%v", err)
	}
}

// LastError returns the most recent recorded failure text. Empty until
// the first failure; stale text persists until overwritten.
func (in *Interpreter) LastError() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.lastError
}

// setLastError overwrites the error buffer, truncating to its bound.
// Callers hold the dispatch lock.
func (in *Interpreter) setLastError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > ErrorBufSize {
		msg = msg[:ErrorBufSize]
	}
	in.lastError = msg
}

// parseCommand splits "<pin>:<action>" into its parts. Leading
// whitespace is skipped, the integer may carry a sign, the colon must
// follow the digits immediately, and the action token runs to the next
// whitespace or end of input, cut at MaxActionLen characters.
func parseCommand(s string) (pin int, action string, ok bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	pin, i, ok = parseInt(s, i)
	if !ok {
		return 0, "", false
	}

	if i >= len(s) || s[i] != ':' {
		return 0, "", false
	}
	i++

	// sscanf's %s skips whitespace between the colon and the token.
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	start := i
	for i < len(s) && !isSpace(s[i]) && i-start < MaxActionLen {
		i++
	}
	if i == start {
		return 0, "", false
	}

	return pin, s[start:i], true
}

// parseInt parses a signed decimal integer starting at pos, returning
// the value and the position after the last digit.
func parseInt(s string, pos int) (int, int, bool) {
	negative := false
	if pos < len(s) && (s[pos] == '-' || s[pos] == '+') {
		negative = s[pos] == '-'
		pos++
	}

	start := pos
	value := 0
	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		value = value*10 + int(s[pos]-'0')
		pos++
	}

	if pos == start {
		return 0, pos, false
	}

	if negative {
		value = -value
	}
	return value, pos, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
