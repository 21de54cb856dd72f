/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"

	"javelin/classloader"
	"javelin/excNames"
	"javelin/object"
	"javelin/trace"
	"javelin/types"
)

// javaThrow carries a Java-level throwable up through Go's call stack while
// the interpreter looks for a handler (spec §7 "Runtime errors translate
// into Java-level throwable instances... processed by the exception-table
// mechanism"). It is deliberately not a Go error, so a javaThrow can only
// originate from newThrow (directly or through the hook installThrowHook
// returns) or from throwFromValue, never from a stray Go error leaking
// through.
type javaThrow struct {
	ClassName string
	Message   string
	Instance  *object.ClassInstance
}

func newThrow(className, format string, a ...interface{}) *javaThrow {
	msg := fmt.Sprintf(format, a...)
	trace.Error(className + ": " + msg)
	return &javaThrow{ClassName: className, Message: msg}
}

// throwableValue boxes t as the operand-stack/exception-table value a
// catch handler or an uncaught-exception dump will see.
func (t *javaThrow) throwableValue() types.Value {
	if t.Instance != nil {
		return types.Value{Kind: types.VObjectRef, Ref: t.Instance}
	}
	inst := object.NewStringObject(t.ClassName + ": " + t.Message)
	return types.Value{Kind: types.VObjectRef, Ref: inst}
}

// installThrowHook returns the hook jvm.Init stores in
// globals.Globals.FuncThrowException, letting classloader and object raise a
// Java-level exception without importing jvm (spec §9 "throwException hook
// breaks the import cycle"). Lower layers can only panic with it since they
// have no frame to unwind into; RunMain's deferred recover turns that panic
// back into a *javaThrow and an exit code.
func installThrowHook() func(string, string) {
	return func(excClassName, msg string) {
		panic(newThrow(excClassName, "%s", msg))
	}
}

// findHandler searches pc's enclosing method for an exception-table entry
// whose range covers pc and whose catch type accepts excClass (spec §7
// "walk the current frame's handlers for a start-pc<=pc<end-pc match whose
// catch type is assignable from the thrown class; catch-any matches
// unconditionally").
func findHandler(m *classloader.MethodDef, pc int, excClass string) (int, bool) {
	if m.Code == nil {
		return 0, false
	}
	for _, eh := range m.Code.Exceptions {
		if pc < eh.StartPc || pc >= eh.EndPc {
			continue
		}
		if eh.CatchType == "" {
			return eh.HandlerPc, true
		}
		if catchTypeAccepts(eh.CatchType, excClass) {
			return eh.HandlerPc, true
		}
	}
	return 0, false
}

// catchTypeAccepts reports whether a throwable of class excClass would be
// assignable to catchType. Classes loaded from bytecode report real
// ancestry through classloader.IsSubclassOf; built-in excNames throwables
// that never got their own Unit loaded fall back to an exact-name match,
// which is sufficient for this core's closed exception taxonomy.
func catchTypeAccepts(catchType, excClass string) bool {
	if catchType == excClass {
		return true
	}
	if u := classloader.MethAreaFetch(excClass); u != nil {
		return classloader.IsSubclassOf(u, catchType)
	}
	return false
}

func nullPointer(format string, a ...interface{}) *javaThrow {
	return newThrow(excNames.NullPointerException, format, a...)
}

func arithmeticError(format string, a ...interface{}) *javaThrow {
	return newThrow(excNames.ArithmeticException, format, a...)
}

func arrayIndexError(format string, a ...interface{}) *javaThrow {
	return newThrow(excNames.ArrayIndexOutOfBoundsException, format, a...)
}

func classCastError(format string, a ...interface{}) *javaThrow {
	return newThrow(excNames.ClassCastException, format, a...)
}

func negativeArraySizeError(format string, a ...interface{}) *javaThrow {
	return newThrow(excNames.NegativeArraySizeException, format, a...)
}
