/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import "javelin/types"

// Array is a runtime Java array: a homogeneous, fixed-length, zero-indexed
// vector of types.Value, created by newarray/anewarray/multianewarray
// (spec §4.7 "Array").
type Array struct {
	ElemType types.FieldType
	Elements []types.Value

	// HeapID is the id Heap.Alloc returned for this array (spec §4.7 "the
	// heap owns every allocated object"). Zero means not yet heap-tracked.
	HeapID int
}

// NewArray allocates an array of length elements of elemType, each set to
// elemType's default value (spec §4.7 "array elements are
// default-initialized, like fields").
func NewArray(elemType types.FieldType, length int) *Array {
	elems := make([]types.Value, length)
	for i := range elems {
		elems[i] = types.DefaultValueFor(elemType)
	}
	return &Array{ElemType: elemType, Elements: elems}
}

// Length returns the array's fixed length.
func (a *Array) Length() int { return len(a.Elements) }

// Get returns element i, or ok=false if i is out of bounds -- callers
// translate that into an ArrayIndexOutOfBoundsException (spec §7).
func (a *Array) Get(i int) (types.Value, bool) {
	if i < 0 || i >= len(a.Elements) {
		return types.Value{}, false
	}
	return a.Elements[i], true
}

// Set stores value into element i, reporting ok=false if i is out of
// bounds.
func (a *Array) Set(i int, value types.Value) bool {
	if i < 0 || i >= len(a.Elements) {
		return false
	}
	a.Elements[i] = value
	return true
}
