/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"encoding/binary"
	"math"

	"javelin/classloader"
	"javelin/excNames"
	"javelin/frames"
	"javelin/object"
	"javelin/thread"
	"javelin/types"
)

// interpret runs f's bytecode to completion: a normal return, an uncaught
// throw propagated to the caller, or a caught throw resumed at its handler
// pc (spec §4.8 "Instruction fetch" / §7 "exception-table mechanism").
func interpret(t *thread.ExecThread, f *frames.Frame) (types.Value, *javaThrow) {
	code := f.Method.Code.Code

	for {
		startPC := f.PC
		op := code[f.PC]
		f.PC++

		var thr *javaThrow

		switch op {
		case NOP:

		case ACONST_NULL:
			f.Push(types.NullRef())
		case ICONST_M1, ICONST_0, ICONST_1, ICONST_2, ICONST_3, ICONST_4, ICONST_5:
			f.Push(types.IntValue(int32(op) - int32(ICONST_0)))
		case LCONST_0, LCONST_1:
			f.Push(types.LongValue(int64(op) - int64(LCONST_0)))
		case FCONST_0, FCONST_1, FCONST_2:
			f.Push(types.FloatValue(float32(op) - float32(FCONST_0)))
		case DCONST_0, DCONST_1:
			f.Push(types.DoubleValue(float64(op) - float64(DCONST_0)))

		case BIPUSH:
			v := int8(code[f.PC])
			f.PC++
			f.Push(types.IntValue(int32(v)))
		case SIPUSH:
			v := int16(u2(code, f.PC))
			f.PC += 2
			f.Push(types.IntValue(int32(v)))

		case LDC:
			idx := int(code[f.PC])
			f.PC++
			v, t2 := loadConstant(f.Class, idx)
			if t2 != nil {
				thr = t2
				break
			}
			f.Push(v)
		case LDC_W, LDC2_W:
			idx := int(u2(code, f.PC))
			f.PC += 2
			v, t2 := loadConstant(f.Class, idx)
			if t2 != nil {
				thr = t2
				break
			}
			f.Push(v)

		case ILOAD, FLOAD, ALOAD, LLOAD, DLOAD:
			i := int(code[f.PC])
			f.PC++
			f.Push(f.GetLocal(i))
		case ILOAD_0, ILOAD_1, ILOAD_2, ILOAD_3:
			f.Push(f.GetLocal(int(op - ILOAD_0)))
		case FLOAD_0, FLOAD_1, FLOAD_2, FLOAD_3:
			f.Push(f.GetLocal(int(op - FLOAD_0)))
		case ALOAD_0, ALOAD_1, ALOAD_2, ALOAD_3:
			f.Push(f.GetLocal(int(op - ALOAD_0)))
		case LLOAD_0, LLOAD_1, LLOAD_2, LLOAD_3:
			f.Push(f.GetLocal(int(op - LLOAD_0)))
		case DLOAD_0, DLOAD_1, DLOAD_2, DLOAD_3:
			f.Push(f.GetLocal(int(op - DLOAD_0)))

		case IALOAD, LALOAD, FALOAD, DALOAD, AALOAD, BALOAD, CALOAD, SALOAD:
			thr = doArrayLoad(f)

		case ISTORE, FSTORE, ASTORE, LSTORE, DSTORE:
			i := int(code[f.PC])
			f.PC++
			f.SetLocal(i, f.Pop())
		case ISTORE_0, ISTORE_1, ISTORE_2, ISTORE_3:
			f.SetLocal(int(op-ISTORE_0), f.Pop())
		case FSTORE_0, FSTORE_1, FSTORE_2, FSTORE_3:
			f.SetLocal(int(op-FSTORE_0), f.Pop())
		case ASTORE_0, ASTORE_1, ASTORE_2, ASTORE_3:
			f.SetLocal(int(op-ASTORE_0), f.Pop())
		case LSTORE_0, LSTORE_1, LSTORE_2, LSTORE_3:
			f.SetLocal(int(op-LSTORE_0), f.Pop())
		case DSTORE_0, DSTORE_1, DSTORE_2, DSTORE_3:
			f.SetLocal(int(op-DSTORE_0), f.Pop())

		case IASTORE, LASTORE, FASTORE, DASTORE, AASTORE, BASTORE, CASTORE, SASTORE:
			thr = doArrayStore(f)

		case POP:
			f.Pop()
		case POP2:
			f.Pop()
			f.Pop()
		case DUP:
			v := f.Peek()
			f.Push(v)
		case DUP_X1:
			v1, v2 := f.Pop(), f.Pop()
			f.Push(v1)
			f.Push(v2)
			f.Push(v1)
		case DUP_X2:
			v1, v2, v3 := f.Pop(), f.Pop(), f.Pop()
			f.Push(v1)
			f.Push(v3)
			f.Push(v2)
			f.Push(v1)
		case DUP2:
			v1, v2 := f.Pop(), f.Pop()
			f.Push(v2)
			f.Push(v1)
			f.Push(v2)
			f.Push(v1)
		case DUP2_X1:
			v1, v2, v3 := f.Pop(), f.Pop(), f.Pop()
			f.Push(v2)
			f.Push(v1)
			f.Push(v3)
			f.Push(v2)
			f.Push(v1)
		case DUP2_X2:
			v1, v2, v3, v4 := f.Pop(), f.Pop(), f.Pop(), f.Pop()
			f.Push(v2)
			f.Push(v1)
			f.Push(v4)
			f.Push(v3)
			f.Push(v2)
			f.Push(v1)
		case SWAP:
			v1, v2 := f.Pop(), f.Pop()
			f.Push(v1)
			f.Push(v2)

		case IADD:
			b, a := f.Pop().I, f.Pop().I
			f.Push(types.IntValue(a + b))
		case LADD:
			b, a := f.Pop().J, f.Pop().J
			f.Push(types.LongValue(a + b))
		case FADD:
			b, a := f.Pop().F, f.Pop().F
			f.Push(types.FloatValue(a + b))
		case DADD:
			b, a := f.Pop().D, f.Pop().D
			f.Push(types.DoubleValue(a + b))
		case ISUB:
			b, a := f.Pop().I, f.Pop().I
			f.Push(types.IntValue(a - b))
		case LSUB:
			b, a := f.Pop().J, f.Pop().J
			f.Push(types.LongValue(a - b))
		case FSUB:
			b, a := f.Pop().F, f.Pop().F
			f.Push(types.FloatValue(a - b))
		case DSUB:
			b, a := f.Pop().D, f.Pop().D
			f.Push(types.DoubleValue(a - b))
		case IMUL:
			b, a := f.Pop().I, f.Pop().I
			f.Push(types.IntValue(a * b))
		case LMUL:
			b, a := f.Pop().J, f.Pop().J
			f.Push(types.LongValue(a * b))
		case FMUL:
			b, a := f.Pop().F, f.Pop().F
			f.Push(types.FloatValue(a * b))
		case DMUL:
			b, a := f.Pop().D, f.Pop().D
			f.Push(types.DoubleValue(a * b))
		case IDIV:
			b, a := f.Pop().I, f.Pop().I
			if b == 0 {
				thr = arithmeticError("/ by zero")
				break
			}
			f.Push(types.IntValue(a / b))
		case LDIV:
			b, a := f.Pop().J, f.Pop().J
			if b == 0 {
				thr = arithmeticError("/ by zero")
				break
			}
			f.Push(types.LongValue(a / b))
		case FDIV:
			b, a := f.Pop().F, f.Pop().F
			f.Push(types.FloatValue(a / b))
		case DDIV:
			b, a := f.Pop().D, f.Pop().D
			f.Push(types.DoubleValue(a / b))
		case IREM:
			b, a := f.Pop().I, f.Pop().I
			if b == 0 {
				thr = arithmeticError("/ by zero")
				break
			}
			f.Push(types.IntValue(a % b))
		case LREM:
			b, a := f.Pop().J, f.Pop().J
			if b == 0 {
				thr = arithmeticError("/ by zero")
				break
			}
			f.Push(types.LongValue(a % b))
		case FREM:
			b, a := f.Pop().F, f.Pop().F
			f.Push(types.FloatValue(float32(math.Mod(float64(a), float64(b)))))
		case DREM:
			b, a := f.Pop().D, f.Pop().D
			f.Push(types.DoubleValue(math.Mod(a, b)))
		case INEG:
			a := f.Pop().I
			f.Push(types.IntValue(-a))
		case LNEG:
			a := f.Pop().J
			f.Push(types.LongValue(-a))
		case FNEG:
			a := f.Pop().F
			f.Push(types.FloatValue(-a))
		case DNEG:
			a := f.Pop().D
			f.Push(types.DoubleValue(-a))
		case ISHL:
			b, a := f.Pop().I, f.Pop().I
			f.Push(types.IntValue(a << (uint32(b) & 0x1f)))
		case LSHL:
			b, a := f.Pop().I, f.Pop().J
			f.Push(types.LongValue(a << (uint32(b) & 0x3f)))
		case ISHR:
			b, a := f.Pop().I, f.Pop().I
			f.Push(types.IntValue(a >> (uint32(b) & 0x1f)))
		case LSHR:
			b, a := f.Pop().I, f.Pop().J
			f.Push(types.LongValue(a >> (uint32(b) & 0x3f)))
		case IUSHR:
			b, a := f.Pop().I, f.Pop().I
			f.Push(types.IntValue(int32(uint32(a) >> (uint32(b) & 0x1f))))
		case LUSHR:
			b, a := f.Pop().I, f.Pop().J
			f.Push(types.LongValue(int64(uint64(a) >> (uint32(b) & 0x3f))))
		case IAND:
			b, a := f.Pop().I, f.Pop().I
			f.Push(types.IntValue(a & b))
		case LAND:
			b, a := f.Pop().J, f.Pop().J
			f.Push(types.LongValue(a & b))
		case IOR:
			b, a := f.Pop().I, f.Pop().I
			f.Push(types.IntValue(a | b))
		case LOR:
			b, a := f.Pop().J, f.Pop().J
			f.Push(types.LongValue(a | b))
		case IXOR:
			b, a := f.Pop().I, f.Pop().I
			f.Push(types.IntValue(a ^ b))
		case LXOR:
			b, a := f.Pop().J, f.Pop().J
			f.Push(types.LongValue(a ^ b))
		case IINC:
			i := int(code[f.PC])
			delta := int8(code[f.PC+1])
			f.PC += 2
			v := f.GetLocal(i)
			f.SetLocal(i, types.IntValue(v.I+int32(delta)))

		case I2L:
			f.Push(types.LongValue(int64(f.Pop().I)))
		case I2F:
			f.Push(types.FloatValue(float32(f.Pop().I)))
		case I2D:
			f.Push(types.DoubleValue(float64(f.Pop().I)))
		case L2I:
			f.Push(types.IntValue(int32(f.Pop().J)))
		case L2F:
			f.Push(types.FloatValue(float32(f.Pop().J)))
		case L2D:
			f.Push(types.DoubleValue(float64(f.Pop().J)))
		case F2I:
			f.Push(types.IntValue(int32(f.Pop().F)))
		case F2L:
			f.Push(types.LongValue(int64(f.Pop().F)))
		case F2D:
			f.Push(types.DoubleValue(float64(f.Pop().F)))
		case D2I:
			f.Push(types.IntValue(int32(f.Pop().D)))
		case D2L:
			f.Push(types.LongValue(int64(f.Pop().D)))
		case D2F:
			f.Push(types.FloatValue(float32(f.Pop().D)))
		case I2B:
			f.Push(types.IntValue(int32(int8(f.Pop().I))))
		case I2C:
			f.Push(types.IntValue(int32(uint16(f.Pop().I))))
		case I2S:
			f.Push(types.IntValue(int32(int16(f.Pop().I))))

		case LCMP:
			b, a := f.Pop().J, f.Pop().J
			f.Push(types.IntValue(compare(a, b)))
		case FCMPL, FCMPG:
			b, a := f.Pop().F, f.Pop().F
			f.Push(types.IntValue(floatCompare(float64(a), float64(b), op == FCMPG)))
		case DCMPL, DCMPG:
			b, a := f.Pop().D, f.Pop().D
			f.Push(types.IntValue(floatCompare(a, b, op == DCMPG)))

		case IFEQ, IFNE, IFLT, IFGE, IFGT, IFLE:
			v := f.Pop().I
			if branchTaken(op, IFEQ, v, 0) {
				f.PC = startPC + int(int16(u2(code, f.PC)))
			} else {
				f.PC += 2
			}
		case IF_ICMPEQ, IF_ICMPNE, IF_ICMPLT, IF_ICMPGE, IF_ICMPGT, IF_ICMPLE:
			b, a := f.Pop().I, f.Pop().I
			if branchTaken(op, IF_ICMPEQ, a, b) {
				f.PC = startPC + int(int16(u2(code, f.PC)))
			} else {
				f.PC += 2
			}
		case IF_ACMPEQ, IF_ACMPNE:
			b, a := f.Pop(), f.Pop()
			eq := a.Ref == b.Ref
			taken := eq
			if op == IF_ACMPNE {
				taken = !eq
			}
			if taken {
				f.PC = startPC + int(int16(u2(code, f.PC)))
			} else {
				f.PC += 2
			}
		case IFNULL, IFNONNULL:
			v := f.Pop()
			isNull := v.Ref == nil
			taken := isNull
			if op == IFNONNULL {
				taken = !isNull
			}
			if taken {
				f.PC = startPC + int(int16(u2(code, f.PC)))
			} else {
				f.PC += 2
			}
		case GOTO:
			f.PC = startPC + int(int16(u2(code, f.PC)))
		case GOTO_W:
			f.PC = startPC + int(int32(u4(code, f.PC)))
		case JSR:
			target := startPC + int(int16(u2(code, f.PC)))
			f.PC += 2
			f.Push(types.ReturnAddress(f.PC))
			f.PC = target
		case JSR_W:
			target := startPC + int(int32(u4(code, f.PC)))
			f.PC += 4
			f.Push(types.ReturnAddress(f.PC))
			f.PC = target
		case RET:
			i := int(code[f.PC])
			f.PC = f.GetLocal(i).Addr

		case TABLESWITCH:
			f.PC = doTableSwitch(f, code, startPC)
		case LOOKUPSWITCH:
			f.PC = doLookupSwitch(f, code, startPC)

		case IRETURN, FRETURN, LRETURN, DRETURN, ARETURN:
			return f.Pop(), nil
		case RETURN:
			return types.Value{}, nil

		case GETSTATIC:
			idx := int(u2(code, f.PC))
			f.PC += 2
			v, t2 := doGetStatic(t, f.Class, idx)
			if t2 != nil {
				thr = t2
				break
			}
			f.Push(v)
		case PUTSTATIC:
			idx := int(u2(code, f.PC))
			f.PC += 2
			thr = doPutStatic(t, f.Class, idx, f.Pop())
		case GETFIELD:
			idx := int(u2(code, f.PC))
			f.PC += 2
			v, t2 := doGetField(f.Class, idx, f.Pop())
			if t2 != nil {
				thr = t2
				break
			}
			f.Push(v)
		case PUTFIELD:
			idx := int(u2(code, f.PC))
			f.PC += 2
			val := f.Pop()
			recv := f.Pop()
			thr = doPutField(f.Class, idx, recv, val)

		case INVOKEVIRTUAL, INVOKESPECIAL, INVOKESTATIC, INVOKEINTERFACE:
			idx := int(u2(code, f.PC))
			f.PC += 2
			if op == INVOKEINTERFACE {
				f.PC += 2 // count, 0 -- unused by this core's dispatch
			}
			var ret types.Value
			ret, thr = doInvoke(t, f, op, idx)
			if thr == nil && f.Method != nil {
				pushIfNonVoid(f, op, idx, ret)
			}

		case INVOKEDYNAMIC:
			thr = newThrow(excNames.UnsupportedOperationException, "invokedynamic not implemented")
			f.PC += 4

		case NEW:
			idx := int(u2(code, f.PC))
			f.PC += 2
			var v types.Value
			v, thr = doNew(t, f.Class, idx)
			if thr == nil {
				f.Push(v)
			}
		case NEWARRAY:
			atype := code[f.PC]
			f.PC++
			count := f.Pop().I
			if count < 0 {
				thr = negativeArraySizeError("%d", count)
				break
			}
			arr := object.NewArray(primitiveFieldType(atype), int(count))
			trackNewArray(arr)
			f.Push(types.Value{Kind: types.VArrayRef, Ref: arr})
		case ANEWARRAY:
			idx := int(u2(code, f.PC))
			f.PC += 2
			count := f.Pop().I
			if count < 0 {
				thr = negativeArraySizeError("%d", count)
				break
			}
			className, err := resolveClassNameByIndex(f.Class, idx)
			if err != nil {
				thr = newThrow(excNames.NoSuchFieldError, "%s", err.Error())
				break
			}
			elemType := types.FieldType{Kind: types.KindClass, ClassName: className}
			arr := object.NewArray(elemType, int(count))
			trackNewArray(arr)
			f.Push(types.Value{Kind: types.VArrayRef, Ref: arr})
		case MULTIANEWARRAY:
			idx := int(u2(code, f.PC))
			dims := int(code[f.PC+2])
			f.PC += 3
			var v types.Value
			v, thr = doMultiANewArray(f, idx, dims)
			if thr == nil {
				f.Push(v)
			}
		case ARRAYLENGTH:
			v := f.Pop()
			arr, ok := v.Ref.(*object.Array)
			if !ok || arr == nil {
				thr = nullPointer("arraylength on null reference")
				break
			}
			f.Push(types.IntValue(int32(arr.Length())))

		case ATHROW:
			v := f.Pop()
			if v.Ref == nil {
				thr = nullPointer("athrow with null reference")
				break
			}
			thr = throwFromValue(v)

		case CHECKCAST:
			idx := int(u2(code, f.PC))
			f.PC += 2
			v := f.Peek()
			thr = doCheckCast(f.Class, idx, v)
		case INSTANCEOF:
			idx := int(u2(code, f.PC))
			f.PC += 2
			v := f.Pop()
			f.Push(types.IntValue(doInstanceOf(f.Class, idx, v)))

		case MONITORENTER, MONITOREXIT:
			f.Pop() // no real monitor support; concurrency is out of scope

		case WIDE:
			f.PC = doWide(f, code)

		default:
			thr = newThrow(excNames.VerifyError, "unknown opcode 0x%02x at pc %d", op, startPC)
		}

		if thr != nil {
			if handlerPC, ok := findHandler(f.Method, startPC, thr.ClassName); ok {
				f.OperandStack = f.OperandStack[:0]
				f.Push(thr.throwableValue())
				f.PC = handlerPC
				continue
			}
			return types.Value{}, thr
		}
	}
}

func u2(code []byte, pc int) uint16 { return binary.BigEndian.Uint16(code[pc:]) }
func u4(code []byte, pc int) uint32 { return binary.BigEndian.Uint32(code[pc:]) }

func compare(a, b int64) int32 {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// floatCompare implements fcmpl/fcmpg and dcmpl/dcmpg: NaN compares as
// "greater" under the *g variant and "less" under the *l variant, the
// standard trick for making `x > NaN`/`x < NaN` both false (spec §4.8).
func floatCompare(a, b float64, nanGreater bool) int32 {
	if math.IsNaN(a) || math.IsNaN(b) {
		if nanGreater {
			return 1
		}
		return -1
	}
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func branchTaken(op, base int, a, b int32) bool {
	switch op - base {
	case 0:
		return a == b
	case 1:
		return a != b
	case 2:
		return a < b
	case 3:
		return a >= b
	case 4:
		return a > b
	case 5:
		return a <= b
	}
	return false
}

func primitiveFieldType(atype byte) types.FieldType {
	switch atype {
	case tBoolean:
		return types.FieldType{Kind: types.KindBoolean}
	case tChar:
		return types.FieldType{Kind: types.KindChar}
	case tFloat:
		return types.FieldType{Kind: types.KindFloat}
	case tDouble:
		return types.FieldType{Kind: types.KindDouble}
	case tByte:
		return types.FieldType{Kind: types.KindByte}
	case tShort:
		return types.FieldType{Kind: types.KindShort}
	case tLong:
		return types.FieldType{Kind: types.KindLong}
	default:
		return types.FieldType{Kind: types.KindInt}
	}
}

func doArrayLoad(f *frames.Frame) *javaThrow {
	idx := f.Pop().I
	v := f.Pop()
	arr, ok := v.Ref.(*object.Array)
	if !ok || arr == nil {
		return nullPointer("array load on null reference")
	}
	elem, ok := arr.Get(int(idx))
	if !ok {
		return arrayIndexError("index %d out of bounds for length %d", idx, arr.Length())
	}
	f.Push(elem)
	return nil
}

func doArrayStore(f *frames.Frame) *javaThrow {
	val := f.Pop()
	idx := f.Pop().I
	v := f.Pop()
	arr, ok := v.Ref.(*object.Array)
	if !ok || arr == nil {
		return nullPointer("array store on null reference")
	}
	if !arr.Set(int(idx), val) {
		return arrayIndexError("index %d out of bounds for length %d", idx, arr.Length())
	}
	return nil
}

func doTableSwitch(f *frames.Frame, code []byte, startPC int) int {
	key := f.Pop().I
	pc := alignedPC(startPC)
	defaultOffset := int32(u4(code, pc))
	low := int32(u4(code, pc+4))
	high := int32(u4(code, pc+8))
	pc += 12
	if key < low || key > high {
		return startPC + int(defaultOffset)
	}
	entryPC := pc + int(key-low)*4
	offset := int32(u4(code, entryPC))
	return startPC + int(offset)
}

func doLookupSwitch(f *frames.Frame, code []byte, startPC int) int {
	key := f.Pop().I
	pc := alignedPC(startPC)
	defaultOffset := int32(u4(code, pc))
	npairs := int32(u4(code, pc+4))
	pc += 8
	for i := int32(0); i < npairs; i++ {
		matchVal := int32(u4(code, pc))
		offset := int32(u4(code, pc+4))
		if matchVal == key {
			return startPC + int(offset)
		}
		pc += 8
	}
	return startPC + int(defaultOffset)
}

// alignedPC returns the first 4-byte-aligned offset at or after the byte
// following the opcode, per *switch's padding rule (spec §6 "four-byte
// wide branches and switches").
func alignedPC(startPC int) int {
	pc := startPC + 1
	for pc%4 != 0 {
		pc++
	}
	return pc
}

func doWide(f *frames.Frame, code []byte) int {
	pc := f.PC
	modified := code[pc]
	pc++
	if modified == IINC {
		i := int(u2(code, pc))
		delta := int16(u2(code, pc+2))
		pc += 4
		v := f.GetLocal(i)
		f.SetLocal(i, types.IntValue(v.I+int32(delta)))
		return pc
	}
	i := int(u2(code, pc))
	pc += 2
	switch modified {
	case ILOAD, FLOAD, ALOAD, LLOAD, DLOAD:
		f.Push(f.GetLocal(i))
	case ISTORE, FSTORE, ASTORE, LSTORE, DSTORE:
		f.SetLocal(i, f.Pop())
	case RET:
		return f.GetLocal(i).Addr
	}
	return pc
}

func throwFromValue(v types.Value) *javaThrow {
	inst, ok := v.Ref.(*object.ClassInstance)
	if !ok || inst == nil || inst.Unit == nil {
		return newThrow(excNames.IllegalStateException, "thrown value is not a throwable instance")
	}
	return &javaThrow{ClassName: inst.Unit.Name, Message: inst.ToString(), Instance: inst}
}

func resolveClassNameByIndex(cls *classloader.Unit, idx int) (string, error) {
	if l, ok := cls.Pool.Loadables[idx]; ok && l.Kind == classloader.LCClass {
		return l.ClassName, nil
	}
	return "", classloader.CFE("constant pool index does not resolve to a class")
}

func doCheckCast(cls *classloader.Unit, idx int, v types.Value) *javaThrow {
	if v.Ref == nil {
		return nil
	}
	className, err := resolveClassNameByIndex(cls, idx)
	if err != nil {
		return newThrow(excNames.NoSuchFieldError, "%s", err.Error())
	}
	inst, ok := v.Ref.(*object.ClassInstance)
	if !ok || !inst.IsInstanceOf(className) {
		return classCastError("object is not an instance of %s", className)
	}
	return nil
}

func doInstanceOf(cls *classloader.Unit, idx int, v types.Value) int32 {
	if v.Ref == nil {
		return types.JavaBoolFalse
	}
	className, err := resolveClassNameByIndex(cls, idx)
	if err != nil {
		return types.JavaBoolFalse
	}
	inst, ok := v.Ref.(*object.ClassInstance)
	if ok && inst.IsInstanceOf(className) {
		return types.JavaBoolTrue
	}
	return types.JavaBoolFalse
}

func pushIfNonVoid(f *frames.Frame, op int, idx int, ret types.Value) {
	mr, ok := resolveMethodRef(f.Class, op, idx)
	if !ok || mr.Desc.ReturnType == nil {
		return
	}
	f.Push(ret)
}
