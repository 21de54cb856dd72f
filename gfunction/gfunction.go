/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package gfunction holds the native (Go-implemented) method bindings the
// interpreter calls instead of executing bytecode, for the slice of the
// JDK class library this core ships in lieu of the real class files (spec
// §7 "Native bindings").
package gfunction

import (
	"fmt"

	"javelin/excNames"
	"javelin/types"
)

// wrapRef boxes an arbitrary Go value (a native helper's private state,
// such as a StringBuilder's buffer or a HashMap's backing map) as an
// object-reference-kind Value so it can live in a ClassInstance's field
// table like any other reference.
func wrapRef(v interface{}) types.Value {
	return types.Value{Kind: types.VObjectRef, Ref: v}
}

// GMeth is one native method binding: the binding's declared argument-slot
// count (the interpreter drains arguments by the method descriptor and does
// not read ParamSlots), and the Go function itself. params[0] is the
// receiver for instance methods; GFunction returns nil for a void method.
type GMeth struct {
	ParamSlots int
	GFunction  func(params []interface{}) interface{}
}

// MethodSignatures maps "class/name.methodName(desc)" to its native
// binding. Populated by each package's Load_* function, mirroring the
// teacher's registration pattern.
var MethodSignatures = map[string]GMeth{}

// Init registers every native binding this core ships.
func Init() {
	Load_Lang_Object()
	Load_Lang_String()
	Load_Lang_StringBuilder()
	Load_Lang_Thread()
	Load_Io_InputStreamReader()
	Load_Util_HashMap()
	Load_ScopedMemoryAccess()
}

// GErr is the sentinel return value a GFunction returns to signal a Java
// exception should be thrown, carrying the JDK exception class and message
// (spec §7 "a native binding raises exceptions the same way interpreted
// code does").
type GErr struct {
	ExceptionName string
	Msg           string
}

func newGErr(excName, format string, a ...interface{}) GErr {
	return GErr{ExceptionName: excName, Msg: fmt.Sprintf(format, a...)}
}

// trapDeprecated is a binding body for overloads the JDK itself deprecated
// and that this core declines to implement; no Load_* function registers it.
func trapDeprecated(params []interface{}) interface{} {
	return newGErr(excNames.UnsupportedOperationException, "deprecated method not implemented")
}

// trapUnimplemented is a binding body that raises a clear error for a
// signature with no real implementation; no Load_* function registers it.
func trapUnimplemented(params []interface{}) interface{} {
	return newGErr(excNames.UnsupportedOperationException, "native method not implemented")
}
