/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package thread models one JVM thread of execution: its frame stack plus
// the bookkeeping the interpreter needs across calls (spec §4.6 "Thread").
package thread

import "javelin/frames"

// ExecThread is one interpreter thread. Stack grows as methods are
// invoked and shrinks as they return; the current frame is always the last
// element.
type ExecThread struct {
	ID         int
	Stack      []*frames.Frame
	// SkipInit is the skip-static-init stack: jvm.RunClinit pushes true for
	// each <clinit> this thread enters and pops it when that <clinit>
	// returns. While it is non-empty, RunClinit treats a trigger for a
	// class whose initialization is in progress as a nested one and returns.
	SkipInit []bool
}

var nextID int

// New creates a thread with an empty frame stack.
func New() *ExecThread {
	nextID++
	return &ExecThread{ID: nextID}
}

// PushFrame makes f the thread's current frame.
func (t *ExecThread) PushFrame(f *frames.Frame) {
	t.Stack = append(t.Stack, f)
}

// PopFrame removes and returns the current frame.
func (t *ExecThread) PopFrame() *frames.Frame {
	n := len(t.Stack)
	f := t.Stack[n-1]
	t.Stack = t.Stack[:n-1]
	return f
}

// CurrentFrame returns the thread's active frame, or nil if the stack is
// empty.
func (t *ExecThread) CurrentFrame() *frames.Frame {
	if len(t.Stack) == 0 {
		return nil
	}
	return t.Stack[len(t.Stack)-1]
}

// Depth returns the number of frames currently on the stack.
func (t *ExecThread) Depth() int { return len(t.Stack) }

// PushSkipInit records that a <clinit> is about to run on this thread.
func (t *ExecThread) PushSkipInit(skip bool) { t.SkipInit = append(t.SkipInit, skip) }

// PopSkipInit removes and returns the most recent SkipInit entry.
func (t *ExecThread) PopSkipInit() bool {
	n := len(t.SkipInit)
	v := t.SkipInit[n-1]
	t.SkipInit = t.SkipInit[:n-1]
	return v
}
