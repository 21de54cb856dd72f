/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"errors"
	"math"
	"path/filepath"
	"runtime"
	"strconv"

	"javelin/trace"
)

// cfe builds a class-format-error, recording the caller's file/line the way
// the teacher's cfe() does, and logs it through trace before returning.
func cfe(msg string) error {
	errMsg := "Class Format Error: " + msg

	pc, _, _, ok := runtime.Caller(1)
	if ok {
		fn := runtime.FuncForPC(pc)
		fileName, fileLine := fn.FileLine(pc)
		errMsg += "\n  detected by file: " + filepath.Base(fileName) + ", line: " + strconv.Itoa(fileLine)
	}
	trace.Error(errMsg)
	return errors.New(errMsg)
}

// CFE exposes cfe to other packages (object, gfunction) that need to raise a
// class-format-error without importing an internal helper.
func CFE(msg string) error { return cfe(msg) }

func float32frombits(bits uint32) float32 { return math.Float32frombits(bits) }
func float64frombits(bits uint64) float64 { return math.Float64frombits(bits) }
