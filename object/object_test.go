/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"javelin/classloader"
	"javelin/types"
)

func testUnit(name, superName string) *classloader.Unit {
	return &classloader.Unit{
		Name:      name,
		SuperName: superName,
		Fields: []classloader.FieldDef{
			{Name: "count", Desc: types.FieldType{Kind: types.KindInt}},
		},
		Methods: make(map[string]*classloader.MethodDef),
		Statics: make(map[string]types.Value),
	}
}

func TestNewClassInstanceChainsSuper(t *testing.T) {
	classloader.ResetMethodArea()
	base := testUnit("base", "")
	base.Linked = true
	classloader.MethAreaInsert("base", base)
	derived := testUnit("derived", "base")
	classloader.MethAreaInsert("derived", derived)
	derived.Super = base

	inst := NewClassInstance(derived)
	assert.NotNil(t, inst.Super)
	assert.Equal(t, "base", inst.Super.Unit.Name)

	v, ok := inst.GetField("count")
	assert.True(t, ok)
	assert.Equal(t, int32(0), v.I)
}

func TestSetFieldWalksChain(t *testing.T) {
	base := testUnit("base2", "")
	inst := NewClassInstance(base)
	ok := inst.SetField("count", types.IntValue(42))
	assert.True(t, ok)
	v, _ := inst.GetField("count")
	assert.Equal(t, int32(42), v.I)

	assert.False(t, inst.SetField("nosuchfield", types.IntValue(1)))
}

func TestArrayGetSetBounds(t *testing.T) {
	arr := NewArray(types.FieldType{Kind: types.KindInt}, 3)
	assert.Equal(t, 3, arr.Length())

	ok := arr.Set(1, types.IntValue(7))
	assert.True(t, ok)
	v, ok := arr.Get(1)
	assert.True(t, ok)
	assert.Equal(t, int32(7), v.I)

	_, ok = arr.Get(5)
	assert.False(t, ok)
	assert.False(t, arr.Set(-1, types.IntValue(0)))
}

func TestHeapRefCounting(t *testing.T) {
	h := NewHeap()
	var collected []int
	h.OnUnreachable = func(id int, value interface{}) {
		collected = append(collected, id)
	}

	id := h.Alloc(&Array{})
	h.IncRef(id)
	h.IncRef(id)
	assert.Equal(t, 1, h.Live())

	h.DecRef(id)
	assert.Equal(t, 1, h.Live())
	h.DecRef(id)
	assert.Equal(t, 0, h.Live())
	assert.Equal(t, []int{id}, collected)
}

func TestStringObjectRoundTrip(t *testing.T) {
	obj := NewStringObject("hello")
	assert.Equal(t, "hello", GoStringFromStringObject(obj))
}

func TestJavaByteArrayRoundTrip(t *testing.T) {
	s := "abc"
	jb := JavaByteArrayFromGoString(s)
	assert.Equal(t, s, GoStringFromJavaByteArray(jb))
	assert.True(t, JavaByteArrayEquals(jb, JavaByteArrayFromGoString(s)))
	assert.False(t, JavaByteArrayEquals(jb, JavaByteArrayFromGoString("xyz")))
}
