/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import "fmt"

// Class-level access flag bits (spec §6) needed for format checking.
const (
	AccInterface = 0x0200
	AccAnnotation = 0x2000
)

// Field-level access flag bits relevant to format checks.
const (
	AccVolatile = 0x0040
)

// formatCheckClass runs the structural sanity checks spec §4.3 requires
// before a class may be posted to the method area: every index the decoder
// left unresolved must actually resolve, interfaces may not subclass
// anything but java/lang/Object, and no field may be both final and
// volatile. A failure here is a ClassFormatError, not a panic -- malformed
// bytecode is an expected input, not a bug.
func formatCheckClass(rc *RawClass, u *Unit) error {
	if rc.ThisClass == 0 {
		return cfe("this_class must not be constant pool index 0")
	}
	if _, err := classNameAt(&rc.CP, rc.ThisClass); err != nil {
		return err
	}

	isInterface := rc.AccessFlags&AccInterface != 0
	if isInterface && u.SuperName != "java/lang/Object" && u.SuperName != "" {
		return cfe(fmt.Sprintf("interface %s must extend java/lang/Object, not %s", u.Name, u.SuperName))
	}
	// module-info classes carry no super_class at all (JVMS §4.1); every
	// other unit must chain up to java/lang/Object.
	if u.Kind != ModuleUnit && u.Name != "java/lang/Object" && u.SuperName == "" {
		return cfe(fmt.Sprintf("class %s has no superclass and is not java/lang/Object", u.Name))
	}

	for _, f := range u.Fields {
		if f.AccessFlags&AccFinal != 0 && f.AccessFlags&AccVolatile != 0 {
			return cfe(fmt.Sprintf("field %s.%s is both final and volatile", u.Name, f.Name))
		}
	}

	seen := make(map[string]bool, len(u.Methods))
	for key := range u.Methods {
		if seen[key] {
			return cfe(fmt.Sprintf("duplicate method %s.%s", u.Name, key))
		}
		seen[key] = true
	}

	for _, m := range u.Methods {
		if m.IsAbstract() && m.Code != nil {
			return cfe(fmt.Sprintf("abstract method %s.%s%s carries a Code attribute", u.Name, m.Name, m.Desc.String()))
		}
		if !m.IsAbstract() && !m.IsNative() && m.Code == nil {
			return cfe(fmt.Sprintf("concrete method %s.%s%s is missing its Code attribute", u.Name, m.Name, m.Desc.String()))
		}
	}

	return validateConstantPool(&rc.CP)
}

// validateConstantPool walks every CpIndex slot and confirms its referents
// resolve, catching the dangling-index case that a partially-malicious or
// truncated class file might produce but that parseConstantPool's
// tag-by-tag decode wouldn't itself notice (spec §4.3 "a class with a
// dangling constant-pool reference is a ClassFormatError, not a
// ClassNotFoundException").
func validateConstantPool(cp *CPool) error {
	inRange := func(idx uint16) bool { return int(idx) > 0 && int(idx) < len(cp.CpIndex) }

	for i, e := range cp.CpIndex {
		switch e.Type {
		case ClassRef:
			if !inRange(cp.ClassRefs[e.Slot]) {
				return cfe(fmt.Sprintf("Class at CP index %d has a dangling name index", i))
			}
		case StringConst:
			if !inRange(cp.StringRefs[e.Slot]) {
				return cfe(fmt.Sprintf("String at CP index %d has a dangling value index", i))
			}
		case FieldRef, MethodRef, Interface:
			var mr MemberRefEntry
			switch e.Type {
			case FieldRef:
				mr = cp.FieldRefs[e.Slot]
			case MethodRef:
				mr = cp.MethodRefs[e.Slot]
			case Interface:
				mr = cp.InterfaceRefs[e.Slot]
			}
			if !inRange(mr.ClassIndex) || !inRange(mr.NameAndTypeIndex) {
				return cfe(fmt.Sprintf("member ref at CP index %d has a dangling class or NameAndType index", i))
			}
		case NameAndType:
			nat := cp.NameAndTypes[e.Slot]
			if !inRange(nat.NameIndex) || !inRange(nat.DescIndex) {
				return cfe(fmt.Sprintf("NameAndType at CP index %d has a dangling name or descriptor index", i))
			}
		case MethodType:
			if !inRange(cp.MethodTypes[e.Slot]) {
				return cfe(fmt.Sprintf("MethodType at CP index %d has a dangling descriptor index", i))
			}
		case MethodHandle:
			mh := cp.MethodHandles[e.Slot]
			if !inRange(mh.RefIndex) {
				return cfe(fmt.Sprintf("MethodHandle at CP index %d has a dangling reference index", i))
			}
		case DynamicEntry, InvokeDynamicEntry:
			var dyn DynamicRefEntry
			if e.Type == DynamicEntry {
				dyn = cp.Dynamics[e.Slot]
			} else {
				dyn = cp.InvokeDynamics[e.Slot]
			}
			if !inRange(dyn.NameAndTypeIndex) {
				return cfe(fmt.Sprintf("Dynamic/InvokeDynamic at CP index %d has a dangling NameAndType index", i))
			}
		}
	}
	return nil
}
