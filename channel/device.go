// Package channel implements the byte-oriented command channel over the
// interpreter: write delivers command text, read returns the stored
// last-error text with plain EOF semantics, open and release only log.
package channel

import (
	"io"

	"ledctl/core"
)

// Device is the byte-stream command endpoint. It implements io.Writer
// for command delivery and io.ReaderAt for error readback, mirroring
// character-device write/read-at-offset semantics.
type Device struct {
	interp *core.Interpreter
}

// NewDevice returns a device dispatching into the given interpreter.
func NewDevice(interp *core.Interpreter) *Device {
	return &Device{interp: interp}
}

// Open marks the start of a channel session. No preconditions.
func (d *Device) Open() {
	core.DebugPrintln("command channel opened")
}

// Release marks the end of a channel session.
func (d *Device) Release() {
	core.DebugPrintln("command channel closed")
}

// Write delivers command text to the interpreter. Input beyond the
// channel's 255-byte bound is dropped; the returned count is the number
// of bytes actually delivered. Protocol failures are recorded in the
// interpreter's last-error buffer, never returned here.
func (d *Device) Write(p []byte) (int, error) {
	if len(p) > core.MaxInputLen {
		p = p[:core.MaxInputLen]
	}
	d.interp.HandleInput(string(p))
	return len(p), nil
}

// ReadAt copies the stored last-error text starting at off. Once off
// reaches the end of the text it returns 0, io.EOF; a short read that
// hits the end also carries io.EOF alongside the copied count.
func (d *Device) ReadAt(p []byte, off int64) (int, error) {
	msg := d.interp.LastError()
	if off < 0 {
		off = 0
	}
	if off >= int64(len(msg)) {
		return 0, io.EOF
	}

	n := copy(p, msg[off:])
	if int(off)+n == len(msg) {
		return n, io.EOF
	}
	return n, nil
}

// ReadAll drains the full last-error text through ReadAt, the way an
// external caller advancing its file offset would.
func (d *Device) ReadAll() string {
	var out []byte
	buf := make([]byte, 64)
	var off int64

	for {
		n, err := d.ReadAt(buf, off)
		out = append(out, buf[:n]...)
		off += int64(n)
		if err == io.EOF {
			return string(out)
		}
	}
}
