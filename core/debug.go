package core

// DebugWriter is a function type for writing debug messages.
type DebugWriter func(string)

// debugPrintln is the global debug print function. No-op by default so
// library users pay nothing; the CLI installs a stdout writer.
var debugPrintln DebugWriter = func(string) {}

// SetDebugWriter sets the debug output function. Pass nil to silence.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// DebugPrintln writes a debug message using the installed writer.
func DebugPrintln(msg string) {
	debugPrintln(msg)
}
