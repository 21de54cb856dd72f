/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"javelin/excNames"
	"javelin/globals"
	"javelin/trace"
	"javelin/types"
)

// Classloader mirrors the JVM's three-tier delegation model: Bootstrap,
// Extension and App, each consulting a list of byte sources in order. See
// https://docs.oracle.com/javase/specs/jvms/se17/html/jvms-5.html#jvms-5.3
type Classloader struct {
	Name       string
	Parent     string
	Sources    []ByteSource
	ClassCount int
	mu         sync.Mutex
}

var (
	BootstrapCL Classloader
	ExtensionCL Classloader
	AppCL       Classloader
)

// Init wires the three classloaders to each other and to the classpath
// recorded in globals, and primes the method area.
func Init() error {
	BootstrapCL = Classloader{Name: "bootstrap", Parent: ""}
	ExtensionCL = Classloader{Name: "extension", Parent: "bootstrap"}
	AppCL = Classloader{Name: "app", Parent: "extension"}

	g := globals.GetGlobalRef()
	for _, cp := range g.Classpath {
		AppCL.Sources = append(AppCL.Sources, DirByteSource{Root: cp})
	}
	if g.StartingJar != "" {
		AppCL.Sources = append(AppCL.Sources, JarByteSource{Path: g.StartingJar})
	}
	ResetMethodArea()
	return nil
}

// LoadClassFromNameOnly loads a class (in java/lang/Object slash-form) and,
// recursively, every superclass and interface it declares that isn't
// already in the method area -- the closure the spec's linker requires
// before any instance of the class may be created.
func LoadClassFromNameOnly(cl *Classloader, name string) error {
	if name == "" {
		return cfe("LoadClassFromNameOnly: empty class name")
	}
	if MethAreaFetch(name) != nil {
		return nil
	}
	if strings.HasPrefix(name, types.Array) {
		return nil // array classes are synthesized, not loaded from bytes
	}

	raw, err := readClassBytes(cl, name)
	if err != nil {
		errMsg := fmt.Sprintf("LoadClassFromNameOnly: %s: %v", name, err)
		trace.Error(errMsg)
		globals.GetGlobalRef().FuncThrowException(excNames.ClassNotFoundException, errMsg)
		return err
	}

	u, err := LoadClassFromBytes(cl, name, raw)
	if err != nil {
		return err
	}

	if u.SuperName != "" {
		if err := LoadClassFromNameOnly(cl, u.SuperName); err != nil {
			return err
		}
	}
	for _, ifaceName := range u.InterfaceNames {
		if err := LoadClassFromNameOnly(cl, ifaceName); err != nil {
			return err
		}
	}
	return nil
}

func readClassBytes(cl *Classloader, name string) ([]byte, error) {
	var lastErr error
	for _, src := range cl.Sources {
		raw, err := src.ReadClass(name)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	if cl.Parent != "" {
		var parent *Classloader
		switch cl.Parent {
		case "bootstrap":
			parent = &BootstrapCL
		case "extension":
			parent = &ExtensionCL
		}
		if parent != nil {
			if raw, err := readClassBytes(parent, name); err == nil {
				return raw, nil
			}
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no byte source configured")
	}
	return nil, lastErr
}

// LoadClassFromFile reads name.class directly off the local filesystem
// (used by the CLI to load the starting class given on the command line,
// and by tests) and posts it to the method area.
func LoadClassFromFile(cl *Classloader, fname string) (*Unit, error) {
	filename := fname
	if !strings.HasSuffix(filename, ".class") {
		filename += ".class"
	}
	rawBytes, err := os.ReadFile(filename)
	if err != nil {
		errMsg := fmt.Sprintf("LoadClassFromFile: %s: %v", filename, err)
		globals.GetGlobalRef().FuncThrowException(excNames.ClassNotFoundException, errMsg)
		return nil, fmt.Errorf(errMsg)
	}
	return LoadClassFromBytes(cl, filename, rawBytes)
}

// LoadClassFromBytes decodes, lifts, format-checks and posts a class to the
// method area, recording it against cl's class count.
func LoadClassFromBytes(cl *Classloader, filename string, rawBytes []byte) (*Unit, error) {
	g := globals.GetGlobalRef()
	if g.TraceClass {
		trace.Trace("LoadClassFromBytes: " + filename)
	}

	rc, err := DecodeClassBytes(rawBytes)
	if err != nil {
		trace.Error("LoadClassFromBytes: " + filename + ": " + err.Error())
		return nil, err
	}

	u, err := assembleUnit(rc)
	if err != nil {
		trace.Error("LoadClassFromBytes: " + filename + ": " + err.Error())
		return nil, err
	}

	if err := formatCheckClass(rc, u); err != nil {
		trace.Error("LoadClassFromBytes: format-checking " + filename + ": " + err.Error())
		return nil, err
	}

	MethAreaInsert(u.Name, u)

	cl.mu.Lock()
	cl.ClassCount++
	cl.mu.Unlock()

	if g.TraceClass {
		trace.Trace("LoadClassFromBytes: " + u.Name + " posted to method area")
	}
	return u, nil
}

// GetCountOfLoadedClasses returns the number of classes this loader has
// posted to the method area.
func (cl *Classloader) GetCountOfLoadedClasses() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.ClassCount
}

// normalizeClassReference strips the array-type decoration a field or
// method descriptor's class-name component may carry ("[Ljava/lang/String;"
// -> "java/lang/String"), returning "" for plain array-of-primitive
// references which have no associated class to load.
func normalizeClassReference(ref string) string {
	if strings.HasPrefix(ref, types.RefArray) {
		ref = strings.TrimPrefix(ref, types.RefArray)
		return strings.TrimSuffix(ref, ";")
	}
	if strings.HasPrefix(ref, types.Array) {
		return ""
	}
	return ref
}
