/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package excNames holds the closed registry of JDK throwable class names
// the interpreter and native bindings can raise. Runtime and Native errors
// (spec taxonomy) are translated into one of these before being pushed as a
// Java-level throwable.
package excNames

const (
	ArithmeticException             = "java/lang/ArithmeticException"
	ArrayIndexOutOfBoundsException  = "java/lang/ArrayIndexOutOfBoundsException"
	ArrayStoreException             = "java/lang/ArrayStoreException"
	ClassCastException              = "java/lang/ClassCastException"
	ClassFormatError                = "java/lang/ClassFormatError"
	ClassNotFoundException          = "java/lang/ClassNotFoundException"
	CloneNotSupportedException      = "java/lang/CloneNotSupportedException"
	IllegalArgumentException        = "java/lang/IllegalArgumentException"
	IllegalStateException           = "java/lang/IllegalStateException"
	IndexOutOfBoundsException       = "java/lang/IndexOutOfBoundsException"
	IOException                     = "java/io/IOException"
	LinkageError                    = "java/lang/LinkageError"
	NegativeArraySizeException      = "java/lang/NegativeArraySizeException"
	NoSuchFieldError                = "java/lang/NoSuchFieldError"
	NoSuchMethodError               = "java/lang/NoSuchMethodError"
	NullPointerException            = "java/lang/NullPointerException"
	OutOfMemoryError                = "java/lang/OutOfMemoryError"
	StackOverflowError              = "java/lang/StackOverflowError"
	UnsatisfiedLinkError            = "java/lang/UnsatisfiedLinkError"
	UnsupportedOperationException   = "java/lang/UnsupportedOperationException"
	VerifyError                     = "java/lang/VerifyError"
	ExceptionInInitializerError     = "java/lang/ExceptionInInitializerError"
	IncompatibleClassChangeError    = "java/lang/IncompatibleClassChangeError"
	AbstractMethodError             = "java/lang/AbstractMethodError"
)

// IsKnown reports whether name is one of the throwable classes this registry
// recognizes. Native code raising an unregistered name is a programming
// error in the binding, not a Java-level condition.
func IsKnown(name string) bool {
	switch name {
	case ArithmeticException, ArrayIndexOutOfBoundsException, ArrayStoreException,
		ClassCastException, ClassFormatError, ClassNotFoundException,
		CloneNotSupportedException, IllegalArgumentException, IllegalStateException,
		IndexOutOfBoundsException, IOException, LinkageError, NegativeArraySizeException,
		NoSuchFieldError, NoSuchMethodError, NullPointerException, OutOfMemoryError,
		StackOverflowError, UnsatisfiedLinkError, UnsupportedOperationException,
		VerifyError, ExceptionInInitializerError, IncompatibleClassChangeError,
		AbstractMethodError:
		return true
	default:
		return false
	}
}
