/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package shutdown centralizes process termination so that every fatal
// load/link/runtime error exits through one place and one set of codes.
package shutdown

import "os"

// Exit codes used across the VM. Kept small and named, rather than raw ints,
// so a caller reading a log line knows what kind of failure it was.
const (
	OK            = 0
	JVM_EXCEPTION = 1
	APP_EXCEPTION = 2
)

// exitFunc is swapped out in tests so that a fatal path can be exercised
// without killing the test binary.
var exitFunc = os.Exit

// Exit terminates the process with the given code.
func Exit(code int) {
	exitFunc(code)
}

// SetExitFunc overrides the function Exit calls, returning the previous one
// so tests can restore it.
func SetExitFunc(f func(int)) (previous func(int)) {
	previous = exitFunc
	exitFunc = f
	return previous
}
