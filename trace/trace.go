/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package trace is a free-running narrative sink, separate from the leveled
// log package: it is meant for "what is the loader doing right now"
// diagnostics gated by the globals.TraceClass/TraceCloadi switches, not for
// general application logging.
package trace

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mutex sync.Mutex
	out   io.Writer = os.Stderr
)

// SetWriter redirects trace output, returning the previous writer.
func SetWriter(w io.Writer) (previous io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	previous = out
	out = w
	return previous
}

// Trace writes an informational narrative line.
func Trace(msg string) {
	mutex.Lock()
	w := out
	mutex.Unlock()
	fmt.Fprintln(w, "trace: "+msg)
}

// Error writes an error narrative line. It does not itself abort anything;
// callers decide whether the condition is fatal.
func Error(msg string) {
	mutex.Lock()
	w := out
	mutex.Unlock()
	fmt.Fprintln(w, "error: "+msg)
}
