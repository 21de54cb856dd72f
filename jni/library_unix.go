//go:build !windows

/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jni

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Library is a loaded native shared object, the handle LoadLibrary/
// UnloadLibrary pass to a future native-method resolver (spec §4.10
// "LoadLibrary/UnloadLibrary... resolve and release platform shared
// objects").
type Library struct {
	Path   string
	handle uintptr
}

var (
	loadedMu sync.Mutex
	loaded   = map[string]*Library{}
)

// loadLibrary checks that path exists with stat(2) -- the path is used as
// given, with no search-path resolution -- and records it in loaded. A
// repeated load of the same path returns the same *Library; loads are not
// counted, so one unloadLibrary call forgets the path however many loads
// preceded it. No dlopen(3) call is made (that requires cgo, which this
// core doesn't take on); handle holds the file's inode number.
func loadLibrary(path string) (*Library, error) {
	loadedMu.Lock()
	defer loadedMu.Unlock()

	if lib, ok := loaded[path]; ok {
		return lib, nil
	}
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, fmt.Errorf("LoadLibrary: %s: %w", path, err)
	}
	lib := &Library{Path: path, handle: uintptr(st.Ino)}
	loaded[path] = lib
	return lib, nil
}

func unloadLibrary(lib *Library) error {
	loadedMu.Lock()
	defer loadedMu.Unlock()
	if lib == nil {
		return nil
	}
	delete(loaded, lib.Path)
	return nil
}
