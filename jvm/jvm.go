/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"

	"javelin/classloader"
	"javelin/excNames"
	"javelin/gfunction"
	"javelin/globals"
	"javelin/object"
	"javelin/shutdown"
	"javelin/thread"
	"javelin/trace"
	"javelin/types"
)

// Init wires the three classloaders, registers every native binding, and
// installs the FuncThrowException indirection (spec §9) so that the classloader
// and object packages can raise a Java-level exception without importing
// this package. Must run before any class is loaded.
func Init() error {
	globals.GetGlobalRef().FuncThrowException = installThrowHook()
	gfunction.Init()
	return classloader.Init()
}

// RunMain loads startClass, finds its static main([Ljava/lang/String;)V
// (the public flag is not checked), builds a Java
// String[] out of args, and runs it on a fresh thread. It returns the
// process exit code the caller should use: shutdown.OK on a normal return,
// shutdown.APP_EXCEPTION on an uncaught Java exception, shutdown.JVM_EXCEPTION
// on a load/link failure or any other failure to even start main.
//
// Class loading below classloader's own API surface can only signal failure
// by calling the FuncThrowException hook Init installed, which panics with a
// *javaThrow because those call sites have no interpreter frame to return
// one through (spec §9). The recover here turns that panic back into the
// same exit-code path a normally-returned javaThrow takes.
func RunMain(startClass string, args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			thr, ok := r.(*javaThrow)
			if !ok {
				thr = newThrow(excNames.VerifyError, "%v", r)
			}
			reportUncaught(thr)
			code = shutdown.JVM_EXCEPTION
		}
	}()

	cls, thr := ensureLoadedAndLinked(startClass)
	if thr != nil {
		reportUncaught(thr)
		return shutdown.JVM_EXCEPTION
	}

	m := cls.FindMethod("main", "([Ljava/lang/String;)V")
	if m == nil || !m.IsStatic() {
		reportUncaught(newThrow(excNames.NoSuchMethodError, "%s.main([Ljava/lang/String;)V", startClass))
		return shutdown.JVM_EXCEPTION
	}

	t := thread.New()
	argv := buildStringArray(args)

	if _, thr := InvokeMethod(t, cls, m, []types.Value{{Kind: types.VArrayRef, Ref: argv}}); thr != nil {
		reportUncaught(thr)
		return shutdown.APP_EXCEPTION
	}
	return shutdown.OK
}

// buildStringArray converts a slice of Go strings into the java/lang/String[]
// main's single parameter expects.
func buildStringArray(args []string) *object.Array {
	elemType := types.FieldType{Kind: types.KindClass, ClassName: "java/lang/String"}
	arr := object.NewArray(elemType, len(args))
	for i, a := range args {
		arr.Set(i, types.Value{Kind: types.VObjectRef, Ref: object.NewStringObject(a)})
	}
	return arr
}

// reportUncaught prints an uncaught exception the way a JVM's default
// handler does, to stderr via trace so it's captured alongside every other
// diagnostic this core emits.
func reportUncaught(thr *javaThrow) {
	trace.Error(fmt.Sprintf("Exception in thread \"main\" %s: %s", thr.ClassName, thr.Message))
}
