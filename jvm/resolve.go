/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"javelin/classloader"
	"javelin/excNames"
	"javelin/object"
	"javelin/thread"
	"javelin/types"
)

// loadConstant resolves an ldc/ldc_w/ldc2_w operand against cls's pool
// (spec §4.8 "ldc... resolve a loadable constant... and push"). A Class
// loadable pushes a java/lang/String standing in for java/lang/Class, the
// same representation gfunction's Object.getClass() uses, since this core
// has no separate Class runtime object.
func loadConstant(cls *classloader.Unit, idx int) (types.Value, *javaThrow) {
	l, ok := cls.Pool.Loadables[idx]
	if !ok {
		return types.Value{}, newThrow(excNames.NoSuchFieldError, "constant pool index %d is not a loadable constant", idx)
	}
	switch l.Kind {
	case classloader.LCInteger:
		return types.IntValue(l.IntVal), nil
	case classloader.LCFloat:
		return types.FloatValue(l.FloatVal), nil
	case classloader.LCLong:
		return types.LongValue(l.LongVal), nil
	case classloader.LCDouble:
		return types.DoubleValue(l.DoubleVal), nil
	case classloader.LCString:
		return types.Value{Kind: types.VObjectRef, Ref: object.NewStringObject(l.StringVal)}, nil
	case classloader.LCClass:
		return types.Value{Kind: types.VObjectRef, Ref: object.NewStringObject(l.ClassName)}, nil
	default:
		return types.Value{}, newThrow(excNames.UnsupportedOperationException, "method handles/types/dynamic constants not implemented")
	}
}

// ensureLoadedAndLinked returns className's Unit, loading it through the
// application class loader if the method area doesn't have it yet (spec
// §4.5 "a class reference first observed during execution triggers load").
func ensureLoadedAndLinked(className string) (*classloader.Unit, *javaThrow) {
	if u := classloader.MethAreaFetch(className); u != nil {
		return u, nil
	}
	if err := classloader.LoadClassFromNameOnly(&classloader.AppCL, className); err != nil {
		return nil, newThrow(excNames.ClassNotFoundException, "%s", className)
	}
	u := classloader.MethAreaFetch(className)
	if u == nil || !u.Linked {
		return nil, newThrow(excNames.LinkageError, "%s did not link", className)
	}
	return u, nil
}

func doGetStatic(t *thread.ExecThread, cls *classloader.Unit, idx int) (types.Value, *javaThrow) {
	fr, ok := cls.Pool.FieldRefs[idx]
	if !ok {
		return types.Value{}, newThrow(excNames.NoSuchFieldError, "constant pool index %d is not a field reference", idx)
	}
	target, thr := ensureLoadedAndLinked(fr.ClassName)
	if thr != nil {
		return types.Value{}, thr
	}
	if thr := RunClinit(t, target); thr != nil {
		return types.Value{}, thr
	}
	decl, err := classloader.ResolveStaticField(target, fr.FieldName)
	if err != nil {
		return types.Value{}, newThrow(excNames.NoSuchFieldError, "%s", err.Error())
	}
	decl.StaticsMu.RLock()
	v := decl.Statics[fr.FieldName]
	decl.StaticsMu.RUnlock()
	return v, nil
}

func doPutStatic(t *thread.ExecThread, cls *classloader.Unit, idx int, val types.Value) *javaThrow {
	fr, ok := cls.Pool.FieldRefs[idx]
	if !ok {
		return newThrow(excNames.NoSuchFieldError, "constant pool index %d is not a field reference", idx)
	}
	target, thr := ensureLoadedAndLinked(fr.ClassName)
	if thr != nil {
		return thr
	}
	if thr := RunClinit(t, target); thr != nil {
		return thr
	}
	decl, err := classloader.ResolveStaticField(target, fr.FieldName)
	if err != nil {
		return newThrow(excNames.NoSuchFieldError, "%s", err.Error())
	}
	decl.StaticsMu.Lock()
	decl.Statics[fr.FieldName] = val
	decl.StaticsMu.Unlock()
	return nil
}

func doGetField(cls *classloader.Unit, idx int, recv types.Value) (types.Value, *javaThrow) {
	fr, ok := cls.Pool.FieldRefs[idx]
	if !ok {
		return types.Value{}, newThrow(excNames.NoSuchFieldError, "constant pool index %d is not a field reference", idx)
	}
	inst, ok := recv.Ref.(*object.ClassInstance)
	if !ok || inst == nil {
		return types.Value{}, nullPointer("getfield %s on null reference", fr.FieldName)
	}
	v, ok := inst.GetField(fr.FieldName)
	if !ok {
		return types.Value{}, newThrow(excNames.NoSuchFieldError, "%s.%s", fr.ClassName, fr.FieldName)
	}
	return v, nil
}

func doPutField(cls *classloader.Unit, idx int, recv, val types.Value) *javaThrow {
	fr, ok := cls.Pool.FieldRefs[idx]
	if !ok {
		return newThrow(excNames.NoSuchFieldError, "constant pool index %d is not a field reference", idx)
	}
	inst, ok := recv.Ref.(*object.ClassInstance)
	if !ok || inst == nil {
		return nullPointer("putfield %s on null reference", fr.FieldName)
	}
	if !inst.SetField(fr.FieldName, val) {
		return newThrow(excNames.NoSuchFieldError, "%s.%s", fr.ClassName, fr.FieldName)
	}
	return nil
}

// resolveMethodRef looks up the Methodref/InterfaceMethodref constant the
// given invoke* opcode references.
func resolveMethodRef(cls *classloader.Unit, op int, idx int) (classloader.MethodRefConst, bool) {
	if op == INVOKEINTERFACE {
		mr, ok := cls.Pool.InterfaceMethodRefs[idx]
		return mr, ok
	}
	if mr, ok := cls.Pool.MethodRefs[idx]; ok {
		return mr, ok
	}
	mr, ok := cls.Pool.InterfaceMethodRefs[idx]
	return mr, ok
}

func doNew(t *thread.ExecThread, cls *classloader.Unit, idx int) (types.Value, *javaThrow) {
	className, err := resolveClassNameByIndex(cls, idx)
	if err != nil {
		return types.Value{}, newThrow(excNames.NoSuchFieldError, "%s", err.Error())
	}
	target, thr := ensureLoadedAndLinked(className)
	if thr != nil {
		return types.Value{}, thr
	}
	inst, thr := InstantiateClass(t, target)
	if thr != nil {
		return types.Value{}, thr
	}
	trackNewInstance(inst)
	return types.Value{Kind: types.VObjectRef, Ref: inst}, nil
}

// findInterfaceDefault searches u's directly and transitively implemented
// interfaces for a default method body, the one dispatch path
// classloader.ResolveMethod's superclass-only walk doesn't cover.
func findInterfaceDefault(u *classloader.Unit, name, desc string) (*classloader.Unit, *classloader.MethodDef) {
	for cur := u; cur != nil; cur = cur.Super {
		for _, iface := range cur.InterfaceUnits {
			if decl, m := searchInterface(iface, name, desc); m != nil {
				return decl, m
			}
		}
	}
	return nil, nil
}

func searchInterface(iface *classloader.Unit, name, desc string) (*classloader.Unit, *classloader.MethodDef) {
	if m := iface.FindMethod(name, desc); m != nil && !m.IsAbstract() {
		return iface, m
	}
	for _, super := range iface.InterfaceUnits {
		if decl, m := searchInterface(super, name, desc); m != nil {
			return decl, m
		}
	}
	return nil, nil
}

func doInvoke(t *thread.ExecThread, f *frames.Frame, op int, idx int) (types.Value, *javaThrow) {
	mr, ok := resolveMethodRef(f.Class, op, idx)
	if !ok {
		return types.Value{}, newThrow(excNames.NoSuchMethodError, "constant pool index %d is not a method reference", idx)
	}

	hasReceiver := op != INVOKESTATIC
	args := drainArgs(f, mr.Desc, hasReceiver)

	var declClass *classloader.Unit
	var thr *javaThrow

	switch op {
	case INVOKESTATIC, INVOKESPECIAL:
		declClass, thr = ensureLoadedAndLinked(mr.ClassName)
		if thr != nil {
			return types.Value{}, thr
		}
		if thr := RunClinit(t, declClass); thr != nil {
			return types.Value{}, thr
		}
	case INVOKEVIRTUAL, INVOKEINTERFACE:
		recv := args[0]
		inst, ok := recv.Ref.(*object.ClassInstance)
		if !ok || inst == nil {
			return types.Value{}, nullPointer("invoke %s on null reference", mr.MethodName)
		}
		declClass = inst.Unit
	}

	target, m, err := classloader.ResolveMethod(declClass, mr.MethodName, mr.Desc.String())
	if err != nil {
		if op == INVOKEINTERFACE || op == INVOKEVIRTUAL {
			if decl, im := findInterfaceDefault(declClass, mr.MethodName, mr.Desc.String()); im != nil {
				target, m = decl, im
			}
		}
		if m == nil {
			return types.Value{}, newThrow(excNames.NoSuchMethodError, "%s", err.Error())
		}
	}

	return InvokeMethod(t, target, m, args)
}

func doMultiANewArray(f *frames.Frame, idx int, dims int) (types.Value, *javaThrow) {
	className, err := resolveClassNameByIndex(f.Class, idx)
	if err != nil {
		return types.Value{}, newThrow(excNames.NoSuchFieldError, "%s", err.Error())
	}
	counts := make([]int32, dims)
	for i := dims - 1; i >= 0; i-- {
		counts[i] = f.Pop().I
		if counts[i] < 0 {
			return types.Value{}, negativeArraySizeError("%d", counts[i])
		}
	}
	elemType, err := types.ParseFieldType(className)
	if err != nil {
		elemType = types.FieldType{Kind: types.KindClass, ClassName: className}
	} else if elemType.Kind == types.KindArray {
		// className names the array class itself; buildMultiArray takes
		// the element type of the outermost array.
		elemType = *elemType.Elem
	}
	return buildMultiArray(elemType, counts), nil
}

func buildMultiArray(elemType types.FieldType, counts []int32) types.Value {
	arr := object.NewArray(elemType, int(counts[0]))
	trackNewArray(arr)
	if len(counts) > 1 && elemType.Kind == types.KindArray {
		for i := 0; i < arr.Length(); i++ {
			sub := buildMultiArray(*elemType.Elem, counts[1:])
			arr.Set(i, sub)
		}
	}
	return types.Value{Kind: types.VArrayRef, Ref: arr}
}
