/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"javelin/classloader"
	"javelin/excNames"
	"javelin/frames"
	"javelin/gfunction"
	"javelin/object"
	"javelin/thread"
	"javelin/types"
)

// InvokeMethod enters m, declared on cls, with args already drained from
// the caller's operand stack in declaration order (receiver first for an
// instance method, spec §4.8 "Method entry"). It returns the method's
// return value (zero Value for void) or a javaThrow if the call raised,
// threw, or the method table points at something this core can't execute.
func InvokeMethod(t *thread.ExecThread, cls *classloader.Unit, m *classloader.MethodDef, args []types.Value) (types.Value, *javaThrow) {
	if m.IsNative() {
		return invokeNative(cls, m, args)
	}
	if m.IsAbstract() || m.Code == nil {
		return types.Value{}, newThrow(excNames.AbstractMethodError, "%s.%s%s", cls.Name, m.Name, m.Desc.String())
	}

	f := frames.New(cls, m)
	for i, v := range args {
		f.SetLocal(i, v)
	}
	t.PushFrame(f)
	defer t.PopFrame()

	return interpret(t, f)
}

func nativeKey(cls *classloader.Unit, m *classloader.MethodDef) string {
	return cls.Name + "." + m.Name + m.Desc.String()
}

func invokeNative(cls *classloader.Unit, m *classloader.MethodDef, args []types.Value) (types.Value, *javaThrow) {
	binding, ok := gfunction.MethodSignatures[nativeKey(cls, m)]
	if !ok {
		return types.Value{}, newThrow(excNames.UnsatisfiedLinkError, "%s", nativeKey(cls, m))
	}

	params := make([]interface{}, len(args))
	for i, v := range args {
		params[i] = nativeFromValue(v)
	}

	result := binding.GFunction(params)
	if gerr, ok := result.(gfunction.GErr); ok {
		return types.Value{}, newThrow(gerr.ExceptionName, "%s", gerr.Msg)
	}
	if m.Desc.ReturnType == nil {
		return types.Value{}, nil
	}
	return valueFromNative(result), nil
}

// drainArgs pops a method's argument slots off the operand stack in
// declaration order: the JVM pushes arguments left-to-right, so the last
// parameter is on top (spec §4.8 "values are drained from the operand
// stack, in declaration order, into locals 0.."). hasReceiver prepends the
// popped receiver reference as local 0.
func drainArgs(f *frames.Frame, desc types.MethodDescriptor, hasReceiver bool) []types.Value {
	n := desc.ParamSlots()
	raw := make([]types.Value, n)
	for i := n - 1; i >= 0; i-- {
		raw[i] = f.Pop()
	}
	if !hasReceiver {
		return expandSlots(raw, desc)
	}
	recv := f.Pop()
	return append([]types.Value{recv}, expandSlots(raw, desc)...)
}

// expandSlots re-spaces a densely-packed argument list so a two-slot
// Long/Double occupies two consecutive local-variable indices, matching the
// class file's own slot accounting used by *load/*store.
func expandSlots(vals []types.Value, desc types.MethodDescriptor) []types.Value {
	out := make([]types.Value, 0, desc.ParamSlots())
	for i, p := range desc.Params {
		out = append(out, vals[i])
		if p.Category() == 2 {
			out = append(out, types.Value{})
		}
	}
	return out
}

func valueFromNative(v interface{}) types.Value {
	switch x := v.(type) {
	case nil:
		return types.Value{}
	case int32:
		return types.IntValue(x)
	case int:
		return types.IntValue(int32(x))
	case int64:
		return types.LongValue(x)
	case float32:
		return types.FloatValue(x)
	case float64:
		return types.DoubleValue(x)
	case bool:
		if x {
			return types.IntValue(types.JavaBoolTrue)
		}
		return types.IntValue(types.JavaBoolFalse)
	case *object.ClassInstance:
		return types.Value{Kind: types.VObjectRef, Ref: x}
	case *object.Array:
		return types.Value{Kind: types.VArrayRef, Ref: x}
	default:
		return types.Value{Kind: types.VObjectRef, Ref: x}
	}
}

func nativeFromValue(v types.Value) interface{} {
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
		return v.Ref
	}
}
