package logging

import (
	"log"
	"os"
)

func init() {
	// Set the global logger to use standard error so that log output never
	// interleaves with a report written to standard output.
	log.SetOutput(os.Stderr)
}
