/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package jni models the native interface vtable a JNI-style native method
// would be handed (spec §4.10 "Native interface"): a struct of function
// pointers covering a small subset of the ~200-entry C struct the real JNI
// specifies. Nothing in this core calls through it -- it exists as the
// surface a native-library binding would be handed. Every field the struct
// has is set by NewInterface; the rest of the JNI table has no field at
// all, so there is no nil entry for a caller to detect.
package jni

import (
	"fmt"

	"javelin/classloader"
	"javelin/object"
)

// Version is the JNI version constant a GetVersion call reports.
const Version = 0x00010008 // JNI_VERSION_1_8

// Env is the native interface vtable. It carries only the entrypoints
// named in SPEC_FULL.md §5.8, and NewInterface sets every one of them.
type Env struct {
	GetVersion func() int32

	FindClass  func(name string) (*classloader.Unit, error)
	DefineClass func(name string, loader *classloader.Classloader, raw []byte) (*classloader.Unit, error)

	NewObject      func(u *classloader.Unit) (*object.ClassInstance, error)
	NewStringUTF   func(s string) *object.ClassInstance
	GetStringUTFChars func(str *object.ClassInstance) string

	LoadLibrary   func(path string) (*Library, error)
	UnloadLibrary func(lib *Library) error

	// Unimplemented JNI surface (field/method access, array ops, monitor
	// calls, exception-pending queries, and the rest of the ~200-entry
	// real JNI table) is deliberately absent rather than stubbed: a caller
	// doing a nil check against a missing struct field would need to know
	// every field name anyway, so the smaller explicit struct above is the
	// complete, honest surface this core offers today.
}

// NewInterface builds the vtable a native method is handed, wiring the
// entrypoints this core actually implements.
func NewInterface() *Env {
	return &Env{
		GetVersion: func() int32 { return Version },
		FindClass: func(name string) (*classloader.Unit, error) {
			if u := classloader.MethAreaFetch(name); u != nil {
				return u, nil
			}
			if err := classloader.LoadClassFromNameOnly(&classloader.AppCL, name); err != nil {
				return nil, err
			}
			return classloader.MethAreaFetch(name), nil
		},
		DefineClass: func(name string, loader *classloader.Classloader, raw []byte) (*classloader.Unit, error) {
			return classloader.LoadClassFromBytes(loader, name, raw)
		},
		NewObject: func(u *classloader.Unit) (*object.ClassInstance, error) {
			if u == nil {
				return nil, fmt.Errorf("NewObject: nil class")
			}
			return object.NewClassInstance(u), nil
		},
		NewStringUTF:      object.NewStringObject,
		GetStringUTFChars: object.GoStringFromStringObject,
		LoadLibrary:       loadLibrary,
		UnloadLibrary:     unloadLibrary,
	}
}
