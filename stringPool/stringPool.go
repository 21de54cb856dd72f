/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package stringPool interns modified-UTF-8-decoded strings (chiefly class
// and member names) so that every reference to the same name shares one
// backing string, addressed by a stable uint32 index. Grounded on the
// teacher's stringPool.GetStringPointer/ interning pattern used throughout
// classloader.go.
package stringPool

import (
	"sync"

	"javelin/types"
)

var (
	mutex sync.RWMutex
	pool  []string
	index map[string]uint32
)

func init() {
	Reset()
}

// Reset empties the pool and re-interns "java/lang/Object" at index 0, so
// types.ObjectPoolStringIndex stays valid. Mainly useful for tests that want
// a pristine pool.
func Reset() {
	mutex.Lock()
	defer mutex.Unlock()
	pool = nil
	index = make(map[string]uint32)
	pool = append(pool, "java/lang/Object")
	index["java/lang/Object"] = 0
}

// Insert interns s, returning its (possibly pre-existing) index.
func Insert(s string) uint32 {
	mutex.Lock()
	defer mutex.Unlock()
	if idx, ok := index[s]; ok {
		return idx
	}
	idx := uint32(len(pool))
	pool = append(pool, s)
	index[s] = idx
	return idx
}

// GetStringPointer returns a pointer to the interned string at idx, or nil
// if idx is out of range.
func GetStringPointer(idx uint32) *string {
	mutex.RLock()
	defer mutex.RUnlock()
	if idx == types.InvalidStringIndex || int(idx) >= len(pool) {
		return nil
	}
	return &pool[idx]
}

// GetStringIndex returns the index of s if already interned, and whether it
// was found.
func GetStringIndex(s string) (uint32, bool) {
	mutex.RLock()
	defer mutex.RUnlock()
	idx, ok := index[s]
	return idx, ok
}

// Size returns the number of interned strings.
func Size() int {
	mutex.RLock()
	defer mutex.RUnlock()
	return len(pool)
}
