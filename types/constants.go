/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package types

// ClInit status values for classloader.Unit.ClInit, tracking the static-initialization
// protocol (spec §4.8 "Static-initialization protocol").
const (
	NoClinit         byte = 0 // the class has no <clinit> method
	ClInitNotRun     byte = 1 // a <clinit> exists but has not yet run
	ClInitInProgress byte = 2 // <clinit> is currently running (recursion guard)
	ClInitRun        byte = 3 // <clinit> has completed
)

// String-pool sentinel indices.
const (
	InvalidStringIndex   uint32 = 0xFFFFFFFF
	ObjectPoolStringIndex uint32 = 0 // "java/lang/Object" is always interned first
)

// Array-descriptor prefixes, used when normalizing class references pulled
// out of the constant pool.
const (
	RefArray = "[L" // reference-array prefix, e.g. "[Ljava/lang/String;"
	Array    = "["  // any array prefix
)

// JavaBoolTrue/JavaBoolFalse are the canonical int32 encodings the
// interpreter and native bindings use for boolean values (the JVM has no
// dedicated boolean runtime category; booleans live in the int category).
const (
	JavaBoolTrue  int32 = 1
	JavaBoolFalse int32 = 0
)
