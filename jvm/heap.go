/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import "javelin/object"

// vmHeap is the one heap every allocation site registers into (spec §4.7
// "the heap owns every allocated object"). A single process-wide store,
// the way the teacher's method area is a single process-wide map.
var vmHeap = object.NewHeap()

// GetHeap returns the process-wide heap.
func GetHeap() *object.Heap { return vmHeap }

// trackNewInstance registers a freshly built ClassInstance with the heap
// and gives it an initial reference for the stack slot the NEW opcode is
// about to push it into.
func trackNewInstance(inst *object.ClassInstance) {
	if inst == nil {
		return
	}
	inst.HeapID = vmHeap.Alloc(inst)
	vmHeap.IncRef(inst.HeapID)
}

// trackNewArray registers a freshly built Array the same way
// trackNewInstance does for objects.
func trackNewArray(arr *object.Array) {
	if arr == nil {
		return
	}
	arr.HeapID = vmHeap.Alloc(arr)
	vmHeap.IncRef(arr.HeapID)
}
