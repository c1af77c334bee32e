// Command toyco is the demo/test harness for the coro scheduler: it is
// explicitly external to the scheduler core (spec.md §1 lists "the
// CLI/test harnesses" as an out-of-scope collaborator), wired through
// cobra the way _examples/other_examples' cuemby-warren wires its own
// command tree.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func consoleLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(level)
}
