package cli

import "os"

// IsTerminal reports whether f is connected to a terminal. The REPL uses
// it to choose between line editing and plain line reading.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminal(f)
}
