/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package globals holds the single process-wide configuration struct. The
// jvm package installs FuncThrowException into it at startup so that the
// classloader and object packages can raise a Java-level exception without
// importing jvm and creating an import cycle -- the same indirection the
// teacher uses.
package globals

import "sync"

// MaxJavaVersionRaw is the highest class-file major version this core
// accepts (Java 17 = 61).
const MaxJavaVersionRaw = 61
const MaxJavaVersion = 17

// Globals is the process-wide configuration and shared state struct.
type Globals struct {
	JacobinName string
	StrictJDK   bool
	StartingJar string
	StartingClass string
	Classpath   []string

	TraceClass  bool
	TraceCloadi bool
	TraceInst   bool

	MaxJavaVersionRaw int
	MaxJavaVersion    int

	// FuncThrowException lets lower layers (classloader, object) raise a
	// Java-level throwable without importing the interpreter package.
	// Installed by jvm.Init().
	FuncThrowException func(excClassName string, msg string)
}

var (
	mutex sync.Mutex
	ref   *Globals
)

// InitGlobals creates (or resets) the global config under the given JVM
// name and returns it.
func InitGlobals(name string) *Globals {
	mutex.Lock()
	defer mutex.Unlock()
	ref = &Globals{
		JacobinName:       name,
		MaxJavaVersionRaw: MaxJavaVersionRaw,
		MaxJavaVersion:    MaxJavaVersion,
		FuncThrowException: func(excClassName, msg string) {
			// Default until jvm.Init() installs the real one: panics with
			// the exception class and message.
			panic(excClassName + ": " + msg)
		},
	}
	return ref
}

// GetGlobalRef returns the current global config, initializing a default one
// if none exists yet.
func GetGlobalRef() *Globals {
	mutex.Lock()
	existing := ref
	mutex.Unlock()
	if existing == nil {
		return InitGlobals("javelin")
	}
	return existing
}
