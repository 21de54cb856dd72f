/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"javelin/classloader"
	"javelin/object"
	"javelin/thread"
	"javelin/types"
)

func TestTrackNewInstanceRegistersInstanceWithHeap(t *testing.T) {
	classloader.ResetMethodArea()
	before := GetHeap().Live()

	u := &classloader.Unit{
		Name:    "widget",
		Methods: map[string]*classloader.MethodDef{},
		Statics: map[string]types.Value{},
		ClInit:  types.NoClinit,
		Linked:  true,
	}
	classloader.MethAreaInsert("widget", u)

	inst, thr := InstantiateClass(thread.New(), u)
	assert.Nil(t, thr)
	trackNewInstance(inst)

	assert.NotZero(t, inst.HeapID)
	assert.Equal(t, before+1, GetHeap().Live())
	assert.Same(t, inst, GetHeap().Get(inst.HeapID))
}

func TestBuildMultiArrayRegistersEveryLevelWithHeap(t *testing.T) {
	before := GetHeap().Live()
	elemType := types.FieldType{
		Kind: types.KindArray,
		Elem: &types.FieldType{Kind: types.KindInt},
	}

	v := buildMultiArray(elemType, []int32{2, 3})

	// one outer array plus two inner arrays, all heap-tracked.
	assert.Equal(t, before+3, GetHeap().Live())
	assert.NotZero(t, v.Ref.(*object.Array).HeapID)
}
