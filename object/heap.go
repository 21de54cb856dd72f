/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import "sync"

// Heap is a reference-counted object store (spec §4.7 "Heap"). The
// interpreter's allocation sites (new, newarray, anewarray, multianewarray)
// register each object they create and take one reference to it; no
// interpreter path calls DecRef, so nothing is reclaimed during a run and
// there is no reachability pass. When a count drops to zero through
// DecRef, OnUnreachable (if set) is notified before the entry is dropped,
// giving java.lang.ref-style hooks and finalization a place to attach
// without this package knowing about them.
type Heap struct {
	mu            sync.Mutex
	objects       map[int]*entry
	nextID        int
	OnUnreachable func(id int, value interface{})
}

type entry struct {
	refCount int
	value    interface{} // *ClassInstance or *Array
}

// NewHeap returns an empty heap.
func NewHeap() *Heap {
	return &Heap{objects: make(map[int]*entry)}
}

// Alloc stores value (a *ClassInstance or *Array) and returns its heap id
// with an initial reference count of zero; the first IncRef call (made by
// whatever slot receives the allocation) brings it to one.
func (h *Heap) Alloc(value interface{}) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.objects[id] = &entry{value: value}
	return id
}

// Get returns the value stored at id, or nil if it has been collected or
// never existed.
func (h *Heap) Get(id int) interface{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.objects[id]
	if !ok {
		return nil
	}
	return e.value
}

// IncRef increments id's reference count.
func (h *Heap) IncRef(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.objects[id]; ok {
		e.refCount++
	}
}

// DecRef decrements id's reference count, removing and reporting it via
// OnUnreachable once the count reaches zero.
func (h *Heap) DecRef(id int) {
	h.mu.Lock()
	e, ok := h.objects[id]
	if !ok {
		h.mu.Unlock()
		return
	}
	e.refCount--
	unreachable := e.refCount <= 0
	if unreachable {
		delete(h.objects, id)
	}
	hook := h.OnUnreachable
	value := e.value
	h.mu.Unlock()

	if unreachable && hook != nil {
		hook(id, value)
	}
}

// Live returns the number of objects still reachable, for diagnostics and
// tests.
func (h *Heap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.objects)
}
