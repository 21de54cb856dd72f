/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"

	"javelin/util"
)

// ByteSource abstracts where a class's raw bytes come from: a directory
// tree, a JAR, or a JMOD module image (spec §6 "External Interfaces").
type ByteSource interface {
	ReadClass(name string) ([]byte, error)
}

// DirByteSource reads "name.class" relative to Root. Class files of
// mmapThreshold bytes or more are read through an mmap and copied into a
// fresh slice before the mapping is released; smaller ones are read with
// io.ReadAll. Either way the caller gets its own allocation per class.
type DirByteSource struct {
	Root string
}

const mmapThreshold = 64 * 1024

func (d DirByteSource) ReadClass(name string) ([]byte, error) {
	path := filepath.Join(d.Root, util.ConvertToPlatformPathSeparators(name)+".class")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("DirByteSource: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("DirByteSource: %w", err)
	}
	if info.Size() < mmapThreshold {
		return io.ReadAll(f)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("DirByteSource: mmap %s: %w", path, err)
	}
	defer m.Unmap()
	raw := make([]byte, len(m))
	copy(raw, m)
	return raw, nil
}

// JarByteSource reads "name.class" as a member of a .jar archive.
type JarByteSource struct {
	Path string
}

func (j JarByteSource) ReadClass(name string) ([]byte, error) {
	r, err := zip.OpenReader(j.Path)
	if err != nil {
		return nil, fmt.Errorf("JarByteSource: opening %s: %w", j.Path, err)
	}
	defer r.Close()

	member := util.ConvertToPlatformPathSeparators(name) + ".class"
	for _, f := range r.File {
		if f.Name == member {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("JarByteSource: opening member %s: %w", member, err)
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("JarByteSource: %s not found in %s", member, j.Path)
}

// MainClassFromManifest reads the Main-Class attribute out of
// META-INF/MANIFEST.MF, returning "" if absent.
func (j JarByteSource) MainClassFromManifest() (string, error) {
	r, err := zip.OpenReader(j.Path)
	if err != nil {
		return "", fmt.Errorf("JarByteSource: opening %s: %w", j.Path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "META-INF/MANIFEST.MF" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(string(raw), "\n") {
			line = strings.TrimRight(line, "\r")
			if strings.HasPrefix(line, "Main-Class: ") {
				return strings.TrimPrefix(line, "Main-Class: "), nil
			}
		}
	}
	return "", nil
}

// JmodByteSource reads "name.class" from a .jmod module image. JMOD files
// are a zip archive with classes stored under a "classes/" member prefix,
// preceded by a 4-byte "JM" + version header that unzip implementations
// ignore; we treat the header as Non-goal scope (see DESIGN.md) and read
// the archive as a plain zip.
type JmodByteSource struct {
	Path string
}

func (j JmodByteSource) ReadClass(name string) ([]byte, error) {
	r, err := zip.OpenReader(j.Path)
	if err != nil {
		return nil, fmt.Errorf("JmodByteSource: opening %s: %w", j.Path, err)
	}
	defer r.Close()

	member := "classes/" + util.ConvertToPlatformPathSeparators(name) + ".class"
	for _, f := range r.File {
		if f.Name == member {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("JmodByteSource: opening member %s: %w", member, err)
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("JmodByteSource: %s not found in %s", member, j.Path)
}
