package channel

import (
	"bufio"
	"fmt"
	"io"
)

// Serve runs a line-oriented session over a bidirectional byte stream
// (serial port or terminal). Each line is delivered to the device as a
// command write; the single line "?" maps to an error read and sends
// the stored last-error text back followed by a newline. Returns when
// the stream ends or on a transport write failure.
func Serve(rw io.ReadWriter, dev *Device) error {
	dev.Open()
	defer dev.Release()

	scanner := bufio.NewScanner(rw)
	scanner.Buffer(make([]byte, 1024), 1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if line == "?" {
			if _, err := fmt.Fprintf(rw, "%s\n", dev.ReadAll()); err != nil {
				return fmt.Errorf("write error text: %w", err)
			}
			continue
		}

		if _, err := dev.Write([]byte(line)); err != nil {
			return fmt.Errorf("deliver command: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read command stream: %w", err)
	}
	return nil
}
