package main

import (
	"fmt"
	"os"
)

// terminalNotifier surfaces gateway and session notifications on stderr so
// they never interleave with structured command output on stdout.
type terminalNotifier struct{}

func (t *terminalNotifier) Notify(message string) {
	fmt.Fprintln(os.Stderr, message)
}

func (t *terminalNotifier) SessionExpired() {
	fmt.Fprintln(
		os.Stderr,
		"Your session has expired. Please use `testhub login` to continue.",
	)
}
