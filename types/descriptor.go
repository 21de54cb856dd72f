/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package types defines the type-descriptor grammar (field and method
// descriptors) and the runtime value categories shared by the class loader
// and the interpreter.
package types

import (
	"errors"
	"strings"
)

// JavaByte is a distinct type for JVM byte-array elements, kept separate
// from Go's byte so that byte-array <-> String conversions in object/ and
// gfunction/ read unambiguously.
type JavaByte byte

// Kind discriminates the field-type-descriptor grammar's tagged variant.
type Kind int

const (
	KindByte Kind = iota
	KindChar
	KindDouble
	KindFloat
	KindInt
	KindLong
	KindShort
	KindBoolean
	KindClass
	KindArray
)

// FieldType is one parsed field type descriptor: a primitive, a class
// reference, or an array of another FieldType.
type FieldType struct {
	Kind      Kind
	ClassName string     // valid when Kind == KindClass
	Elem      *FieldType // valid when Kind == KindArray
}

// MethodDescriptor is an ordered parameter list plus an optional return
// type; a nil ReturnType means void.
type MethodDescriptor struct {
	Params     []FieldType
	ReturnType *FieldType
}

var primitiveKinds = map[byte]Kind{
	'B': KindByte,
	'C': KindChar,
	'D': KindDouble,
	'F': KindFloat,
	'I': KindInt,
	'J': KindLong,
	'S': KindShort,
	'Z': KindBoolean,
}

// ParseFieldType parses a complete field type descriptor string, requiring
// the entire input be consumed.
func ParseFieldType(descriptor string) (FieldType, error) {
	ft, rest, err := parseOneFieldType(descriptor)
	if err != nil {
		return FieldType{}, err
	}
	if rest != "" {
		return FieldType{}, errors.New("type descriptor: trailing characters after " + descriptor)
	}
	return ft, nil
}

// parseOneFieldType consumes exactly one field type descriptor from the
// front of s and returns the unconsumed remainder, so method-descriptor
// parsing and array-element recursion can share it.
func parseOneFieldType(s string) (FieldType, string, error) {
	if s == "" {
		return FieldType{}, "", errors.New("type descriptor: empty input")
	}

	lead := s[0]
	if lead == '[' {
		elem, rest, err := parseOneFieldType(s[1:])
		if err != nil {
			return FieldType{}, "", err
		}
		return FieldType{Kind: KindArray, Elem: &elem}, rest, nil
	}

	if lead == 'L' {
		end := strings.IndexByte(s, ';')
		if end < 0 {
			return FieldType{}, "", errors.New("type descriptor: class form missing terminating ';' in " + s)
		}
		name := s[1:end]
		if name == "" || strings.ContainsAny(name, ";.[") {
			return FieldType{}, "", errors.New("type descriptor: invalid class name " + name)
		}
		return FieldType{Kind: KindClass, ClassName: name}, s[end+1:], nil
	}

	if k, ok := primitiveKinds[lead]; ok {
		return FieldType{Kind: k}, s[1:], nil
	}

	return FieldType{}, "", errors.New("type descriptor: unknown leading character " + string(lead))
}

// ParseMethodDescriptor parses a full "(params)return" method descriptor.
func ParseMethodDescriptor(descriptor string) (MethodDescriptor, error) {
	if len(descriptor) == 0 || descriptor[0] != '(' {
		return MethodDescriptor{}, errors.New("method descriptor: missing leading '(' in " + descriptor)
	}
	closeIdx := strings.IndexByte(descriptor, ')')
	if closeIdx < 0 {
		return MethodDescriptor{}, errors.New("method descriptor: missing ')' in " + descriptor)
	}

	paramsStr := descriptor[1:closeIdx]
	md := MethodDescriptor{}
	for paramsStr != "" {
		ft, rest, err := parseOneFieldType(paramsStr)
		if err != nil {
			return MethodDescriptor{}, err
		}
		md.Params = append(md.Params, ft)
		paramsStr = rest
	}

	retStr := descriptor[closeIdx+1:]
	if retStr == "" {
		return MethodDescriptor{}, errors.New("method descriptor: missing return type in " + descriptor)
	}
	if retStr == "V" {
		return md, nil
	}
	ret, err := ParseFieldType(retStr)
	if err != nil {
		return MethodDescriptor{}, err
	}
	md.ReturnType = &ret
	return md, nil
}

// String reconstructs the descriptor text for ft; parse(ft.String()) ==
// ft for every valid ft (descriptor round-trip invariant).
func (ft FieldType) String() string {
	switch ft.Kind {
	case KindByte:
		return "B"
	case KindChar:
		return "C"
	case KindDouble:
		return "D"
	case KindFloat:
		return "F"
	case KindInt:
		return "I"
	case KindLong:
		return "J"
	case KindShort:
		return "S"
	case KindBoolean:
		return "Z"
	case KindClass:
		return "L" + ft.ClassName + ";"
	case KindArray:
		return "[" + ft.Elem.String()
	default:
		return "?"
	}
}

// String reconstructs the descriptor text for md.
func (md MethodDescriptor) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range md.Params {
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	if md.ReturnType == nil {
		b.WriteByte('V')
	} else {
		b.WriteString(md.ReturnType.String())
	}
	return b.String()
}

// Category returns the JVM value category for a field type: 2 for long and
// double (two-slot values), 1 for everything else.
func (ft FieldType) Category() int {
	if ft.Kind == KindLong || ft.Kind == KindDouble {
		return 2
	}
	return 1
}

// ParamSlots returns the number of local-variable / operand-stack slots the
// method's parameters occupy, honoring the two-slot rule for long/double.
func (md MethodDescriptor) ParamSlots() int {
	n := 0
	for _, p := range md.Params {
		n += p.Category()
	}
	return n
}

// IsReference reports whether ft is a class or array type (carries an
// object/array reference at runtime rather than a primitive value).
func (ft FieldType) IsReference() bool {
	return ft.Kind == KindClass || ft.Kind == KindArray
}
