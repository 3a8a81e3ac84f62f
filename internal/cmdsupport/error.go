package cmdsupport

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Exit codes for the smllr CLI. Success is the implicit 0 from a normal
// return. These two non-zero codes let scripts distinguish "you asked for
// something invalid" from "the filesystem wouldn't cooperate" per the two
// fatal error classes the tool recognizes at startup.
const (
	// ExitArguments indicates a bad command line: malformed flags, an invalid
	// blacklist regex, or an unknown action, select policy, format, or log
	// level.
	ExitArguments = 2
	// ExitIO indicates a startup filesystem failure, such as an unreadable
	// root.
	ExitIO = 1
)

// Warning prints a warning message to standard error.
func Warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// Error prints an error message to standard error.
func Error(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// Fatal prints an error message to standard error and terminates the process
// with the given exit code.
func Fatal(err error, code int) {
	Error(err)
	os.Exit(code)
}
