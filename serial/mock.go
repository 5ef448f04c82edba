package serial

import (
	"bytes"
	"io"
)

// MockPort is an in-memory Port for tests. Reads drain the Input
// buffer; writes accumulate in Output.
type MockPort struct {
	Input  bytes.Buffer
	Output bytes.Buffer
	closed bool
}

func NewMockPort() *MockPort {
	return &MockPort{}
}

func (p *MockPort) Read(b []byte) (int, error) {
	if p.closed {
		return 0, io.ErrClosedPipe
	}
	return p.Input.Read(b)
}

func (p *MockPort) Write(b []byte) (int, error) {
	if p.closed {
		return 0, io.ErrClosedPipe
	}
	return p.Output.Write(b)
}

func (p *MockPort) Close() error {
	p.closed = true
	return nil
}

func (p *MockPort) Flush() error {
	return nil
}
