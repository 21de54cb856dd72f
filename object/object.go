/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package object holds the runtime representations the interpreter
// allocates on the heap: class instances and arrays. Classes themselves
// (method tables, resolved constant pools) live in the classloader package;
// this package only concerns itself with the objects built from them.
package object

import (
	"fmt"
	"strings"

	"javelin/classloader"
	"javelin/types"
)

// ClassInstance is one object of a user or library class. Inherited state
// is modeled as a chain of per-class field maps rather than one flattened
// map, mirroring how the JVM spec describes instance creation: each class
// from java/lang/Object down to the instantiated class contributes its own
// slice of fields (spec §4.7 "Object"). Field lookup walks the chain.
type ClassInstance struct {
	Unit   *classloader.Unit
	Fields map[string]types.Value
	Super  *ClassInstance

	// HeapID is the id Heap.Alloc returned for this instance, set by
	// whichever allocation site registered it (spec §4.7 "the heap owns
	// every allocated object"). Zero means not yet heap-tracked.
	HeapID int
}

// NewClassInstance builds an instance of u, allocating a field frame for u
// and, recursively, one for every ancestor up to java/lang/Object. Every
// field starts at its type's default value (spec §4.7 "default
// initialization precedes <init>").
func NewClassInstance(u *classloader.Unit) *ClassInstance {
	if u == nil {
		return nil
	}
	inst := &ClassInstance{Unit: u, Fields: make(map[string]types.Value)}
	for _, f := range u.Fields {
		if !f.IsStatic {
			inst.Fields[f.Name] = types.DefaultValueFor(f.Desc)
		}
	}
	if u.Super != nil {
		inst.Super = NewClassInstance(u.Super)
	}
	return inst
}

// GetField returns the value of fieldName, searching this instance's own
// frame first and then its ancestors'.
func (c *ClassInstance) GetField(fieldName string) (types.Value, bool) {
	for cur := c; cur != nil; cur = cur.Super {
		if v, ok := cur.Fields[fieldName]; ok {
			return v, true
		}
	}
	return types.Value{}, false
}

// SetField stores value into fieldName, in whichever frame of the chain
// already declares it.
func (c *ClassInstance) SetField(fieldName string, value types.Value) bool {
	for cur := c; cur != nil; cur = cur.Super {
		if _, ok := cur.Fields[fieldName]; ok {
			cur.Fields[fieldName] = value
			return true
		}
	}
	return false
}

// IsInstanceOf reports whether c's class is name or a subclass/implementor
// of it (spec §7 "instanceof / checkcast").
func (c *ClassInstance) IsInstanceOf(name string) bool {
	if c == nil {
		return false
	}
	return classloader.IsSubclassOf(c.Unit, name) || classloader.ImplementsInterface(c.Unit, name)
}

// ToString renders a best-effort diagnostic string for c: field by field,
// in the teacher's dotted "Class{field=value}" style, used by gfunction's
// Object.toString() fallback and by trace logging.
func (c *ClassInstance) ToString() string {
	if c == nil {
		return "null"
	}
	var sb strings.Builder
	sb.WriteString(c.Unit.Name)
	sb.WriteString("{")
	first := true
	for cur := c; cur != nil; cur = cur.Super {
		for name, v := range cur.Fields {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&sb, "%s=%v", name, formatValue(v))
		}
	}
	sb.WriteString("}")
	return sb.String()
}

func formatValue(v types.Value) interface{} {
	switch v.Kind {
	case types.VInt:
		return v.I
	case types.VLong:
		return v.J
	case types.VFloat:
		return v.F
	case types.VDouble:
		return v.D
	default:
		if v.Ref == nil {
			return "null"
		}
		return v.Ref
	}
}
