/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"

	"javelin/types"
)

// LoadableKind discriminates the values the ldc family may push (spec §3
// "Constant pool (resolved form)", glossary "Loadable constant").
type LoadableKind int

const (
	LCInteger LoadableKind = iota
	LCFloat
	LCLong
	LCDouble
	LCString
	LCClass
	LCMethodType
	LCMethodHandle
	LCDynamic
)

// Loadable is one resolved loadable-pool entry.
type Loadable struct {
	Kind      LoadableKind
	IntVal    int32
	LongVal   int64
	FloatVal  float32
	DoubleVal float64
	StringVal string
	ClassName string
	MethodDesc *types.MethodDescriptor // valid for LCMethodType
	Handle    *MethodHandleRef        // valid for LCMethodHandle
	DynName   string                  // valid for LCDynamic
	DynType   *types.FieldType        // valid for LCDynamic
}

// FieldRefConst is a fully resolved Fieldref/InterfaceMethodref-adjacent
// field reference: class name plus typed field descriptor.
type FieldRefConst struct {
	ClassName string
	FieldName string
	Desc      types.FieldType
}

// MethodRefConst is a fully resolved Methodref or InterfaceMethodref.
type MethodRefConst struct {
	ClassName   string
	MethodName  string
	Desc        types.MethodDescriptor
	IsInterface bool
}

// MethodHandleRef is a resolved CONSTANT_MethodHandle: the referent kind
// plus its (already resolved) field or method reference.
type MethodHandleRef struct {
	Kind      int
	Field     *FieldRefConst
	Method    *MethodRefConst
}

type dynamicResolved struct {
	Name string
	Desc types.FieldType
}

type invokeDynamicResolved struct {
	Name string
	Desc types.MethodDescriptor
}

// ResolvedPool is the post-lift constant pool (spec §3 "Constant pool
// (resolved form)"): four maps keyed by original CP index, holding only
// typed descriptors and class-name strings, never raw indices.
type ResolvedPool struct {
	Loadables           map[int]Loadable
	FieldRefs           map[int]FieldRefConst
	MethodRefs          map[int]MethodRefConst
	InterfaceMethodRefs map[int]MethodRefConst

	nameAndTypes   map[int]NameAndTypeEntry // index -> (nameIdx, descIdx), resolved to strings below
	natNames       map[int]string
	natDescs       map[int]string
	classNames     map[int]string
	dynamics       map[int]dynamicResolved
	invokeDynamics map[int]invokeDynamicResolved
}

// liftConstantPool performs the fixed-order multi-pass scan spec §4.4
// describes: leaves, first-order composites, member refs, method handles.
// Utf8/Integer/Float/Long/Double are already resolved during parsing
// (parseConstantPool), since none of them depend on another pool entry.
func liftConstantPool(cp *CPool) (*ResolvedPool, error) {
	rp := &ResolvedPool{
		Loadables:           make(map[int]Loadable),
		FieldRefs:           make(map[int]FieldRefConst),
		MethodRefs:          make(map[int]MethodRefConst),
		InterfaceMethodRefs: make(map[int]MethodRefConst),
		natNames:            make(map[int]string),
		natDescs:            make(map[int]string),
		classNames:          make(map[int]string),
		dynamics:            make(map[int]dynamicResolved),
		invokeDynamics:      make(map[int]invokeDynamicResolved),
	}

	utf8At := func(idx uint16) (string, error) { return utf8Str(cp, idx) }

	// --- Pass 1: leaves. NameAndType pairs resolve immediately since both
	// halves are Utf8 indices. ---
	for i, e := range cp.CpIndex {
		if e.Type != NameAndType {
			continue
		}
		nat := cp.NameAndTypes[e.Slot]
		name, err := utf8At(nat.NameIndex)
		if err != nil {
			return nil, err
		}
		desc, err := utf8At(nat.DescIndex)
		if err != nil {
			return nil, err
		}
		rp.natNames[i] = name
		rp.natDescs[i] = desc
	}

	// --- Pass 2: first-order composites: Class, String, MethodType,
	// Dynamic, InvokeDynamic. ---
	for i, e := range cp.CpIndex {
		switch e.Type {
		case ClassRef:
			nameIdx := cp.ClassRefs[e.Slot]
			name, err := utf8At(nameIdx)
			if err != nil {
				return nil, err
			}
			rp.classNames[i] = name
			rp.Loadables[i] = Loadable{Kind: LCClass, ClassName: name}

		case StringConst:
			utf8Idx := cp.StringRefs[e.Slot]
			s, err := utf8At(utf8Idx)
			if err != nil {
				return nil, err
			}
			rp.Loadables[i] = Loadable{Kind: LCString, StringVal: s}

		case IntConst:
			rp.Loadables[i] = Loadable{Kind: LCInteger, IntVal: cp.IntConsts[e.Slot]}
		case FloatConst:
			rp.Loadables[i] = Loadable{Kind: LCFloat, FloatVal: cp.FloatConsts[e.Slot]}
		case LongConst:
			rp.Loadables[i] = Loadable{Kind: LCLong, LongVal: cp.LongConsts[e.Slot]}
		case DoubleConst:
			rp.Loadables[i] = Loadable{Kind: LCDouble, DoubleVal: cp.DoubleConsts[e.Slot]}

		case MethodType:
			descIdx := cp.MethodTypes[e.Slot]
			descStr, err := utf8At(descIdx)
			if err != nil {
				return nil, err
			}
			md, err := types.ParseMethodDescriptor(descStr)
			if err != nil {
				return nil, cfe("invalid MethodType descriptor: " + err.Error())
			}
			rp.Loadables[i] = Loadable{Kind: LCMethodType, MethodDesc: &md}

		case DynamicEntry:
			dyn := cp.Dynamics[e.Slot]
			name, ok := rp.natNames[int(dyn.NameAndTypeIndex)]
			if !ok {
				return nil, cfe(fmt.Sprintf("Dynamic at CP index %d references unresolved NameAndType", i))
			}
			descStr := rp.natDescs[int(dyn.NameAndTypeIndex)]
			ft, err := types.ParseFieldType(descStr)
			if err != nil {
				return nil, cfe("invalid Dynamic type descriptor: " + err.Error())
			}
			rp.dynamics[i] = dynamicResolved{Name: name, Desc: ft}
			rp.Loadables[i] = Loadable{Kind: LCDynamic, DynName: name, DynType: &ft}

		case InvokeDynamicEntry:
			dyn := cp.InvokeDynamics[e.Slot]
			name, ok := rp.natNames[int(dyn.NameAndTypeIndex)]
			if !ok {
				return nil, cfe(fmt.Sprintf("InvokeDynamic at CP index %d references unresolved NameAndType", i))
			}
			descStr := rp.natDescs[int(dyn.NameAndTypeIndex)]
			md, err := types.ParseMethodDescriptor(descStr)
			if err != nil {
				return nil, cfe("invalid InvokeDynamic method descriptor: " + err.Error())
			}
			rp.invokeDynamics[i] = invokeDynamicResolved{Name: name, Desc: md}
		}
	}

	// --- Pass 3: member refs (Fieldref, Methodref, InterfaceMethodref). ---
	for i, e := range cp.CpIndex {
		switch e.Type {
		case FieldRef:
			mr := cp.FieldRefs[e.Slot]
			className, ok := rp.classNames[int(mr.ClassIndex)]
			if !ok {
				return nil, cfe(fmt.Sprintf("Fieldref at CP index %d references unresolved Class", i))
			}
			name, okN := rp.natNames[int(mr.NameAndTypeIndex)]
			descStr, okD := rp.natDescs[int(mr.NameAndTypeIndex)]
			if !okN || !okD {
				return nil, cfe(fmt.Sprintf("Fieldref at CP index %d references unresolved NameAndType", i))
			}
			ft, err := types.ParseFieldType(descStr)
			if err != nil {
				return nil, cfe("invalid field descriptor: " + err.Error())
			}
			rp.FieldRefs[i] = FieldRefConst{ClassName: className, FieldName: name, Desc: ft}

		case MethodRef:
			mr := cp.MethodRefs[e.Slot]
			className, ok := rp.classNames[int(mr.ClassIndex)]
			if !ok {
				return nil, cfe(fmt.Sprintf("Methodref at CP index %d references unresolved Class", i))
			}
			name, okN := rp.natNames[int(mr.NameAndTypeIndex)]
			descStr, okD := rp.natDescs[int(mr.NameAndTypeIndex)]
			if !okN || !okD {
				return nil, cfe(fmt.Sprintf("Methodref at CP index %d references unresolved NameAndType", i))
			}
			md, err := types.ParseMethodDescriptor(descStr)
			if err != nil {
				return nil, cfe("invalid method descriptor: " + err.Error())
			}
			rp.MethodRefs[i] = MethodRefConst{ClassName: className, MethodName: name, Desc: md}

		case Interface:
			mr := cp.InterfaceRefs[e.Slot]
			className, ok := rp.classNames[int(mr.ClassIndex)]
			if !ok {
				return nil, cfe(fmt.Sprintf("InterfaceMethodref at CP index %d references unresolved Class", i))
			}
			name, okN := rp.natNames[int(mr.NameAndTypeIndex)]
			descStr, okD := rp.natDescs[int(mr.NameAndTypeIndex)]
			if !okN || !okD {
				return nil, cfe(fmt.Sprintf("InterfaceMethodref at CP index %d references unresolved NameAndType", i))
			}
			md, err := types.ParseMethodDescriptor(descStr)
			if err != nil {
				return nil, cfe("invalid method descriptor: " + err.Error())
			}
			rp.InterfaceMethodRefs[i] = MethodRefConst{ClassName: className, MethodName: name, Desc: md, IsInterface: true}
		}
	}

	// --- Pass 4: method handles, dispatching on kind. ---
	for i, e := range cp.CpIndex {
		if e.Type != MethodHandle {
			continue
		}
		mh := cp.MethodHandles[e.Slot]
		ref := int(mh.RefIndex)
		var handle MethodHandleRef
		handle.Kind = int(mh.RefKind)

		switch mh.RefKind {
		case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
			f, ok := rp.FieldRefs[ref]
			if !ok {
				return nil, cfe(fmt.Sprintf("MethodHandle at CP index %d expected a Fieldref referent", i))
			}
			handle.Field = &f

		case RefInvokeVirtual, RefNewInvokeSpecial:
			m, ok := rp.MethodRefs[ref]
			if !ok {
				return nil, cfe(fmt.Sprintf("MethodHandle at CP index %d expected a Methodref referent", i))
			}
			handle.Method = &m

		case RefInvokeStatic, RefInvokeSpecial:
			if m, ok := rp.MethodRefs[ref]; ok {
				handle.Method = &m
			} else if m, ok := rp.InterfaceMethodRefs[ref]; ok {
				handle.Method = &m
			} else {
				return nil, cfe(fmt.Sprintf("MethodHandle at CP index %d expected a Methodref or InterfaceMethodref referent", i))
			}

		case RefInvokeInterface:
			m, ok := rp.InterfaceMethodRefs[ref]
			if !ok {
				return nil, cfe(fmt.Sprintf("MethodHandle at CP index %d expected an InterfaceMethodref referent", i))
			}
			handle.Method = &m

		default:
			return nil, cfe(fmt.Sprintf("MethodHandle at CP index %d has unknown reference kind %d", i, mh.RefKind))
		}

		rp.Loadables[i] = Loadable{Kind: LCMethodHandle, Handle: &handle}
	}

	return rp, nil
}

// utf8Str resolves a Utf8 constant-pool entry to its string value. Shared by
// liftConstantPool, code_attr.go's table decoders and linker.go's unit
// assembly.
func utf8Str(cp *CPool, idx uint16) (string, error) {
	if int(idx) >= len(cp.CpIndex) {
		return "", cfe(fmt.Sprintf("dangling CP index %d", idx))
	}
	e := cp.CpIndex[idx]
	if e.Type != UTF8 {
		return "", cfe(fmt.Sprintf("CP index %d is not Utf8 (type=%d)", idx, e.Type))
	}
	return cp.Utf8Refs[e.Slot], nil
}

// classNameAt resolves a Class constant-pool entry to its name string,
// shared by code_attr.go's exception-handler catch-type resolution and
// linker.go's unit assembly (assembleUnit).
func classNameAt(cp *CPool, idx uint16) (string, error) {
	if idx == 0 {
		return "", nil // absent (only valid for super_class on java/lang/Object)
	}
	if int(idx) >= len(cp.CpIndex) {
		return "", cfe(fmt.Sprintf("dangling CP index %d", idx))
	}
	e := cp.CpIndex[idx]
	if e.Type != ClassRef {
		return "", cfe(fmt.Sprintf("CP index %d is not a Class entry", idx))
	}
	nameIdx := cp.ClassRefs[e.Slot]
	if int(nameIdx) >= len(cp.CpIndex) {
		return "", cfe(fmt.Sprintf("dangling CP index %d", nameIdx))
	}
	ne := cp.CpIndex[nameIdx]
	if ne.Type != UTF8 {
		return "", cfe(fmt.Sprintf("CP index %d Class name is not Utf8", nameIdx))
	}
	return cp.Utf8Refs[ne.Slot], nil
}
