/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"javelin/classloader"
	"javelin/object"
	"javelin/thread"
	"javelin/types"
)

// InstantiateClass runs the static-initialization protocol for u (if
// needed) and returns a freshly allocated, default-initialized instance,
// ready for its <init> to run (spec §4.8 "Method entry" / "Static-
// initialization protocol").
func InstantiateClass(t *thread.ExecThread, u *classloader.Unit) (*object.ClassInstance, *javaThrow) {
	if thr := RunClinit(t, u); thr != nil {
		return nil, thr
	}
	return object.NewClassInstance(u), nil
}

// RunClinit implements the re-entrant static-initialization protocol: the
// super-class initializes first, the class's own lock guards a single
// <clinit> execution, and a recursive trigger from within <clinit> itself
// on the same thread (e.g. a native hook reading one of the class's own
// statics), recognised through the thread's SkipInit stack, is a no-op
// rather than a deadlock (spec §4.8, §5 "re-entrant to support the
// degenerate case").
func RunClinit(t *thread.ExecThread, u *classloader.Unit) *javaThrow {
	if u == nil {
		return nil
	}
	if u.Super != nil {
		if thr := RunClinit(t, u.Super); thr != nil {
			return thr
		}
	}

	if u.ClInit == types.NoClinit || u.ClInit == types.ClInitRun {
		return nil
	}
	if u.ClInit == types.ClInitInProgress && len(t.SkipInit) > 0 {
		// This thread is inside a <clinit> and u's initialization is
		// already under way: a nested trigger returns instead of blocking
		// on ClInitLock, which is not re-entrant.
		return nil
	}

	u.ClInitLock.Lock()
	defer u.ClInitLock.Unlock()

	if u.ClInit == types.ClInitRun || u.ClInit == types.ClInitInProgress {
		// Either already finished, or an earlier <clinit> run ended with a
		// throw and left the status at InProgress -- don't run it again.
		return nil
	}

	u.ClInit = types.ClInitInProgress
	m := u.FindMethod("<clinit>", "()V")
	if m == nil {
		u.ClInit = types.ClInitRun
		return nil
	}

	t.PushSkipInit(true)
	defer t.PopSkipInit()

	_, thr := InvokeMethod(t, u, m, nil)
	if thr != nil {
		return thr
	}
	u.ClInit = types.ClInitRun
	return nil
}
