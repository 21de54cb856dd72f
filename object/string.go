/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import (
	"strings"

	"javelin/classloader"
	"javelin/types"
)

// NewStringObject builds a java/lang/String instance wrapping the Go
// string s. If java/lang/String hasn't been loaded yet (true only in
// classloader-only unit tests), the returned instance carries no Unit but
// still round-trips through GoStringFromStringObject.
func NewStringObject(s string) *ClassInstance {
	u := classloader.MethAreaFetch("java/lang/String")
	inst := NewClassInstance(u)
	if inst == nil {
		inst = &ClassInstance{Fields: make(map[string]types.Value)}
	}
	inst.Fields["value"] = types.Value{Kind: types.VInternedString, Ref: &s}
	return inst
}

// GoStringFromStringObject extracts the Go string wrapped in a
// java/lang/String instance, or "" if obj isn't one.
func GoStringFromStringObject(obj *ClassInstance) string {
	if obj == nil {
		return ""
	}
	v, ok := obj.GetField("value")
	if !ok {
		return ""
	}
	if sp, ok := v.Ref.(*string); ok {
		return *sp
	}
	return ""
}

// GoStringFromJavaByteArray copies a Java byte array into a Go string one
// byte per Java byte, with no charset conversion (the inverse of
// JavaByteArrayFromGoString).
func GoStringFromJavaByteArray(jbarr []types.JavaByte) string {
	var sb strings.Builder
	for _, b := range jbarr {
		sb.WriteByte(byte(b))
	}
	return sb.String()
}

// JavaByteArrayFromGoString encodes a Go string's bytes as a Java byte
// array, one Java byte per Go byte (not per rune).
func JavaByteArrayFromGoString(str string) []types.JavaByte {
	jbarr := make([]types.JavaByte, len(str))
	for i := 0; i < len(str); i++ {
		jbarr[i] = types.JavaByte(str[i])
	}
	return jbarr
}

// JavaByteArrayFromGoByteArray converts a []byte to a []types.JavaByte.
func JavaByteArrayFromGoByteArray(gbarr []byte) []types.JavaByte {
	jbarr := make([]types.JavaByte, len(gbarr))
	for i, b := range gbarr {
		jbarr[i] = types.JavaByte(b)
	}
	return jbarr
}

// GoByteArrayFromJavaByteArray converts a []types.JavaByte to a []byte.
func GoByteArrayFromJavaByteArray(jbarr []types.JavaByte) []byte {
	gbarr := make([]byte, len(jbarr))
	for i, b := range jbarr {
		gbarr[i] = byte(b)
	}
	return gbarr
}

// JavaByteArrayEquals compares two Java byte arrays for equal content,
// treating nil and a zero-length slice as distinct the way == does for
// Java array references.
func JavaByteArrayEquals(a, b []types.JavaByte) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
