/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"javelin/classloader"
	"javelin/thread"
	"javelin/types"
)

func runMethod(t *testing.T, cls *classloader.Unit, code []byte, maxStack, maxLocals int) (types.Value, *javaThrow) {
	m := &classloader.MethodDef{
		Name: "test",
		Desc: types.MethodDescriptor{},
		Code: &classloader.CodeAttrib{Code: code, MaxStack: maxStack, MaxLocals: maxLocals},
	}
	return InvokeMethod(thread.New(), cls, m, nil)
}

func TestArithmeticAndReturn(t *testing.T) {
	// iconst_2, iconst_3, iadd, ireturn
	code := []byte{ICONST_2, ICONST_3, IADD, IRETURN}
	v, thr := runMethod(t, &classloader.Unit{Name: "T"}, code, 2, 0)
	assert.Nil(t, thr)
	assert.Equal(t, int32(5), v.I)
}

func TestDivideByZeroThrowsArithmeticException(t *testing.T) {
	// iconst_1, iconst_0, idiv, ireturn
	code := []byte{ICONST_1, ICONST_0, IDIV, IRETURN}
	_, thr := runMethod(t, &classloader.Unit{Name: "T"}, code, 2, 0)
	assert.NotNil(t, thr)
	assert.Equal(t, "java/lang/ArithmeticException", thr.ClassName)
}

func TestBranchNotTaken(t *testing.T) {
	// iconst_0, ifne +7 (not taken), iconst_1, ireturn, iconst_2, ireturn
	code := []byte{
		ICONST_0,
		IFNE, 0x00, 0x07,
		ICONST_1,
		IRETURN,
		ICONST_2,
		IRETURN,
	}
	v, thr := runMethod(t, &classloader.Unit{Name: "T"}, code, 2, 0)
	assert.Nil(t, thr)
	assert.Equal(t, int32(1), v.I)
}

func TestBranchTaken(t *testing.T) {
	// iconst_1, ifne +5 (taken, skips the iconst_1/ireturn pair), iconst_2, ireturn
	code := []byte{
		ICONST_1,
		IFNE, 0x00, 0x05,
		ICONST_1,
		IRETURN,
		ICONST_2,
		IRETURN,
	}
	v, thr := runMethod(t, &classloader.Unit{Name: "T"}, code, 2, 0)
	assert.Nil(t, thr)
	assert.Equal(t, int32(2), v.I)
}

func TestDupAndStackDiscipline(t *testing.T) {
	// iconst_5, dup, iadd, ireturn -> 10
	code := []byte{ICONST_5, DUP, IADD, IRETURN}
	v, thr := runMethod(t, &classloader.Unit{Name: "T"}, code, 2, 0)
	assert.Nil(t, thr)
	assert.Equal(t, int32(10), v.I)
}

func TestLocalStoreAndLoad(t *testing.T) {
	// bipush 7, istore_0, iload_0, iload_0, imul, ireturn -> 49
	code := []byte{
		BIPUSH, 7,
		ISTORE_0,
		ILOAD_0,
		ILOAD_0,
		IMUL,
		IRETURN,
	}
	v, thr := runMethod(t, &classloader.Unit{Name: "T"}, code, 2, 1)
	assert.Nil(t, thr)
	assert.Equal(t, int32(49), v.I)
}

func TestExceptionTableCatchesMatchingThrow(t *testing.T) {
	classloader.ResetMethodArea()
	excUnit := &classloader.Unit{Name: "java/lang/ArithmeticException", Linked: true}
	classloader.MethAreaInsert("java/lang/ArithmeticException", excUnit)

	cls := &classloader.Unit{Name: "T"}
	// iconst_1, iconst_0, idiv (throws ArithmeticException at pc 2),
	// handler at pc 5 pops the throwable and returns iconst_1 via pc 6..7
	code := []byte{
		ICONST_1, // 0
		ICONST_0, // 1
		IDIV,     // 2 -- throws here
		IRETURN,  // 3 (unreachable on throw)
		NOP,      // 4 padding so handler starts clean
		POP,      // 5 handler: discard throwable
		ICONST_1, // 6
		IRETURN,  // 7
	}
	m := &classloader.MethodDef{
		Name: "test",
		Code: &classloader.CodeAttrib{
			MaxStack: 2, MaxLocals: 0, Code: code,
			Exceptions: []classloader.ExceptionHandler{
				{StartPc: 0, EndPc: 3, HandlerPc: 5, CatchType: "java/lang/ArithmeticException"},
			},
		},
	}
	v, thr := InvokeMethod(thread.New(), cls, m, nil)
	assert.Nil(t, thr)
	assert.Equal(t, int32(1), v.I)
}
