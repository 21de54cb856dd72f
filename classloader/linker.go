/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"
	"sync"

	"javelin/types"
)

// Field flag bits used out of the class-file access_flags (spec §6).
// AccInterface and AccAnnotation are declared in format_check.go.
const (
	AccStatic    = 0x0008
	AccFinal     = 0x0010
	AccNative    = 0x0100
	AccAbstract  = 0x0400
	AccSynthetic = 0x1000
	AccEnum      = 0x4000
	AccModule    = 0x8000
)

// UnitKind is the class-file category a Unit belongs to (spec §3 "Unit is
// one of Class, Interface, Module, Record"). Record is not its own
// access-flag bit -- the class file marks it with a class-level Record
// attribute -- so Kind is decided after the access flags and attributes are
// both in hand.
type UnitKind int

const (
	ClassUnit UnitKind = iota
	InterfaceUnit
	ModuleUnit
	RecordUnit
)

// RecordComponent is one component of a Record unit's canonical state
// (spec §4.4 "Record... promotes a Class unit to Record with its
// components").
type RecordComponent struct {
	Name string
	Desc types.FieldType
}

// FieldDef is a lifted field declaration.
type FieldDef struct {
	Name        string
	Desc        types.FieldType
	AccessFlags uint16
	IsStatic    bool
}

// MethodDef is a lifted method declaration, with its Code attribute
// re-decoded if present (abstract and native methods carry none).
type MethodDef struct {
	Name        string
	Desc        types.MethodDescriptor
	AccessFlags uint16
	Code        *CodeAttrib
	Deprecated  bool
	Synthetic   bool
}

// IsStatic, IsNative, IsAbstract classify a MethodDef by its access flags.
func (m *MethodDef) IsStatic() bool   { return m.AccessFlags&AccStatic != 0 }
func (m *MethodDef) IsNative() bool   { return m.AccessFlags&AccNative != 0 }
func (m *MethodDef) IsAbstract() bool { return m.AccessFlags&AccAbstract != 0 }

// key is how a Unit's method table is addressed: name+descriptor, since Java
// allows overloads that differ only by signature.
func methodKey(name, desc string) string { return name + desc }

// kindFromAccessFlags classifies a unit by its access_flags alone; Record is
// decided afterward, once the class-level Record attribute (if any) has been
// seen, since it has no dedicated access-flag bit.
func kindFromAccessFlags(flags uint16) UnitKind {
	switch {
	case flags&AccModule != 0:
		return ModuleUnit
	case flags&AccInterface != 0:
		return InterfaceUnit
	default:
		return ClassUnit
	}
}

// decodeRecordAttribute parses a Record attribute's components table (spec
// §4.4): each component is a name, a field descriptor, and its own
// (ignored) attributes -- identical shape to a field_info minus the access
// flags.
func decodeRecordAttribute(content []byte, cp *CPool) ([]RecordComponent, error) {
	r := &reader{b: content}
	count, err := r.u2()
	if err != nil {
		return nil, cfe("short read parsing Record components_count")
	}
	out := make([]RecordComponent, 0, count)
	for i := 0; i < int(count); i++ {
		nameIdx, e1 := r.u2()
		descIdx, e2 := r.u2()
		if e1 != nil || e2 != nil {
			return nil, cfe("short read parsing Record component")
		}
		name, err := utf8Str(cp, nameIdx)
		if err != nil {
			return nil, err
		}
		descStr, err := utf8Str(cp, descIdx)
		if err != nil {
			return nil, err
		}
		ft, err := types.ParseFieldType(descStr)
		if err != nil {
			return nil, cfe("invalid record component descriptor for " + name + ": " + err.Error())
		}

		attrCount, err := r.u2()
		if err != nil {
			return nil, cfe("short read parsing Record component attributes_count")
		}
		for j := 0; j < int(attrCount); j++ {
			if _, err := parseAttribute(r); err != nil {
				return nil, err
			}
		}

		out = append(out, RecordComponent{Name: name, Desc: ft})
	}
	return out, nil
}

// Unit is the fully linked, resolvable form of one class (spec §3 "Unit"):
// promoted from a RawClass via liftConstantPool + assembleUnit, then given
// its Super/InterfaceUnits pointers once those units are themselves present
// in the method area (spec §4.4's closure-sweep).
type Unit struct {
	Name          string
	SuperName     string // "" only for java/lang/Object
	Super         *Unit
	InterfaceNames []string
	InterfaceUnits []*Unit
	AccessFlags   uint16
	Pool          *ResolvedPool
	Fields        []FieldDef
	Methods       map[string]*MethodDef
	SourceFile    string

	Kind             UnitKind
	RecordComponents []RecordComponent
	Deprecated       bool
	Synthetic        bool
	Signature        string

	StaticsMu    sync.RWMutex
	Statics      map[string]types.Value

	ClInit     byte // types.NoClinit / ClInitNotRun / ClInitInProgress / ClInitRun
	ClInitLock sync.Mutex

	Linked bool // true once Super/InterfaceUnits are resolved
}

// FindMethod looks up a method by name+descriptor in this unit only (no
// superclass search -- callers walk the Super chain themselves, spec §4.8
// "virtual dispatch searches the class, then its ancestors").
func (u *Unit) FindMethod(name, desc string) *MethodDef {
	return u.Methods[methodKey(name, desc)]
}

// assembleUnit lifts a RawClass's constant pool and promotes its fields,
// methods and Code attributes into a Unit. The unit is not yet linked: its
// Super/InterfaceUnits pointers are nil until the linker's closure sweep
// resolves them (spec §4.4).
func assembleUnit(rc *RawClass) (*Unit, error) {
	pool, err := liftConstantPool(&rc.CP)
	if err != nil {
		return nil, err
	}

	name, err := classNameAt(&rc.CP, rc.ThisClass)
	if err != nil {
		return nil, err
	}
	superName, err := classNameAt(&rc.CP, rc.SuperClass)
	if err != nil {
		return nil, err
	}

	u := &Unit{
		Name:        name,
		SuperName:   superName,
		AccessFlags: rc.AccessFlags,
		Pool:        pool,
		Methods:     make(map[string]*MethodDef),
		Statics:     make(map[string]types.Value),
		ClInit:      types.NoClinit,
		Kind:        kindFromAccessFlags(rc.AccessFlags),
	}

	for _, ifaceIdx := range rc.Interfaces {
		ifaceName, err := classNameAt(&rc.CP, ifaceIdx)
		if err != nil {
			return nil, err
		}
		u.InterfaceNames = append(u.InterfaceNames, ifaceName)
	}

	for _, rf := range rc.Fields {
		fieldName, err := utf8Str(&rc.CP, rf.NameIndex)
		if err != nil {
			return nil, err
		}
		descStr, err := utf8Str(&rc.CP, rf.DescIndex)
		if err != nil {
			return nil, err
		}
		ft, err := types.ParseFieldType(descStr)
		if err != nil {
			return nil, cfe("invalid field descriptor for " + fieldName + ": " + err.Error())
		}
		fd := FieldDef{Name: fieldName, Desc: ft, AccessFlags: rf.AccessFlags, IsStatic: rf.AccessFlags&AccStatic != 0}
		u.Fields = append(u.Fields, fd)
		if fd.IsStatic {
			u.Statics[fieldName] = types.DefaultValueFor(ft)
		}
	}

	for _, rm := range rc.Methods {
		methName, err := utf8Str(&rc.CP, rm.NameIndex)
		if err != nil {
			return nil, err
		}
		descStr, err := utf8Str(&rc.CP, rm.DescIndex)
		if err != nil {
			return nil, err
		}
		md, err := types.ParseMethodDescriptor(descStr)
		if err != nil {
			return nil, cfe("invalid method descriptor for " + methName + ": " + err.Error())
		}
		m := &MethodDef{Name: methName, Desc: md, AccessFlags: rm.AccessFlags}

		resolveClassName := func(cpIndex uint16) (string, error) { return classNameAt(&rc.CP, cpIndex) }
		for _, ra := range rm.Attributes {
			attrName, err := utf8Str(&rc.CP, ra.NameIndex)
			if err != nil {
				return nil, err
			}
			if attrName == "Deprecated" {
				m.Deprecated = true
				continue
			}
			if attrName == "Synthetic" {
				m.Synthetic = true
				continue
			}
			if attrName != "Code" {
				continue
			}
			ca, nested, err := decodeCodeAttribute(ra.Content, resolveClassName)
			if err != nil {
				return nil, err
			}
			for _, na := range nested {
				nestedName, err := utf8Str(&rc.CP, na.NameIndex)
				if err != nil {
					return nil, err
				}
				switch nestedName {
				case "LineNumberTable":
					ln, err := decodeLineNumberTable(na.Content)
					if err != nil {
						return nil, err
					}
					ca.LineNumbers = ln
				case "LocalVariableTable":
					lv, err := decodeLocalVariableTable(na.Content, func(idx uint16) (string, error) { return utf8Str(&rc.CP, idx) })
					if err != nil {
						return nil, err
					}
					ca.LocalVariables = lv
				case "LocalVariableTypeTable":
					lv, err := decodeLocalVariableTable(na.Content, func(idx uint16) (string, error) { return utf8Str(&rc.CP, idx) })
					if err != nil {
						return nil, err
					}
					ca.LocalVarTypes = lv
				case "StackMapTable":
					sm, err := decodeStackMapTable(na.Content)
					if err != nil {
						return nil, err
					}
					ca.StackMapFrames = sm
				}
			}
			m.Code = &ca
		}
		u.Methods[methodKey(methName, descStr)] = m
	}

	for _, ra := range rc.Attributes {
		attrName, err := utf8Str(&rc.CP, ra.NameIndex)
		if err != nil {
			return nil, err
		}
		switch attrName {
		case "SourceFile":
			if len(ra.Content) < 2 {
				continue
			}
			r := &reader{b: ra.Content}
			idx, _ := r.u2()
			if sf, err := utf8Str(&rc.CP, idx); err == nil {
				u.SourceFile = sf
			}
		case "Deprecated":
			u.Deprecated = true
		case "Synthetic":
			u.Synthetic = true
		case "Signature":
			if len(ra.Content) < 2 {
				continue
			}
			r := &reader{b: ra.Content}
			idx, _ := r.u2()
			if sig, err := utf8Str(&rc.CP, idx); err == nil {
				u.Signature = sig
			}
		case "Record":
			comps, err := decodeRecordAttribute(ra.Content, &rc.CP)
			if err != nil {
				return nil, err
			}
			u.RecordComponents = comps
			u.Kind = RecordUnit
		}
	}

	if _, hasClinit := u.Methods[methodKey("<clinit>", "()V")]; hasClinit {
		u.ClInit = types.ClInitNotRun
	}

	return u, nil
}

// --- method area (spec §4.4 "class repository") ---

var (
	methAreaMu sync.RWMutex
	methArea   = make(map[string]*Unit)
	// deferred holds units awaiting a superclass/interface that has not yet
	// been loaded; the sweep retries them as new units arrive, per spec's
	// "required vs. deferred units" design note.
	deferred []*Unit
)

// MethAreaInsert posts a Unit into the method area and attempts to link it
// (and any previously deferred units) immediately, sweeping the pending set
// again for as long as a sweep links at least one unit.
func MethAreaInsert(name string, u *Unit) {
	methAreaMu.Lock()
	methArea[name] = u
	pending := append([]*Unit{u}, deferred...)
	deferred = nil
	methAreaMu.Unlock()

	for {
		progress := false
		var still []*Unit
		for _, candidate := range pending {
			if linkUnit(candidate) {
				progress = true
			} else {
				still = append(still, candidate)
			}
		}
		pending = still
		if !progress || len(pending) == 0 {
			break
		}
	}
	if len(pending) > 0 {
		methAreaMu.Lock()
		deferred = append(deferred, pending...)
		methAreaMu.Unlock()
	}
}

// MethAreaFetch returns the Unit for name, or nil if not yet loaded.
func MethAreaFetch(name string) *Unit {
	methAreaMu.RLock()
	defer methAreaMu.RUnlock()
	return methArea[name]
}

// GetCountOfLoadedClasses returns the number of units currently in the
// method area, linked or not.
func GetCountOfLoadedClasses() int {
	methAreaMu.RLock()
	defer methAreaMu.RUnlock()
	return len(methArea)
}

// linkUnit resolves u's Super and InterfaceUnits pointers against the
// method area, returning false (and leaving u unlinked) if a dependency
// hasn't loaded yet. Dependencies are themselves required to already be
// linked, so the fixed-point sweep in MethAreaInsert converges in the
// super-before-sub order spec §4.4 specifies without a topological sort.
func linkUnit(u *Unit) bool {
	if u.Linked {
		return true
	}
	methAreaMu.RLock()
	defer methAreaMu.RUnlock()

	if u.SuperName != "" {
		super, ok := methArea[u.SuperName]
		if !ok || !super.Linked {
			return false
		}
		u.Super = super
	}
	ifaceUnits := make([]*Unit, 0, len(u.InterfaceNames))
	for _, ifaceName := range u.InterfaceNames {
		iface, ok := methArea[ifaceName]
		if !ok || !iface.Linked {
			return false
		}
		ifaceUnits = append(ifaceUnits, iface)
	}
	u.InterfaceUnits = ifaceUnits
	u.Linked = true
	return true
}

// ResolveInstanceField walks u and its superclass chain looking for an
// instance field declaration named fieldName (spec §4.7 "field resolution
// climbs the inheritance chain").
func ResolveInstanceField(u *Unit, fieldName string) (*Unit, *FieldDef, error) {
	for cur := u; cur != nil; cur = cur.Super {
		for i := range cur.Fields {
			if !cur.Fields[i].IsStatic && cur.Fields[i].Name == fieldName {
				return cur, &cur.Fields[i], nil
			}
		}
	}
	return nil, nil, cfe(fmt.Sprintf("no such field: %s.%s", u.Name, fieldName))
}

// ResolveStaticField walks u and its superclass chain looking for the unit
// that declares a static field named fieldName.
func ResolveStaticField(u *Unit, fieldName string) (*Unit, error) {
	for cur := u; cur != nil; cur = cur.Super {
		cur.StaticsMu.RLock()
		_, ok := cur.Statics[fieldName]
		cur.StaticsMu.RUnlock()
		if ok {
			return cur, nil
		}
	}
	return nil, cfe(fmt.Sprintf("no such static field: %s.%s", u.Name, fieldName))
}

// MTableEntry is one cached result of a virtual/static method lookup: the
// unit that actually declares the method, which may sit above u in the
// superclass chain.
type MTableEntry struct {
	Owner  *Unit
	Method *MethodDef
}

// MTable is the global method table (spec §4.8's lookup result cache): once
// ResolveMethod has walked a class's ancestor chain for a name+descriptor,
// the answer is remembered here so repeat call sites -- the common case for
// a hot loop's invokevirtual -- skip the walk entirely.
var (
	mtableMu sync.RWMutex
	MTable   = make(map[string]MTableEntry)
)

func mtableKey(u *Unit, name, desc string) string {
	return u.Name + "." + name + desc
}

// ResolveMethod performs virtual/static method lookup: the class itself,
// then its ancestors (spec §4.8), caching the result in MTable keyed by the
// searching class so a later call against the same receiver type is O(1).
func ResolveMethod(u *Unit, name, desc string) (*Unit, *MethodDef, error) {
	key := mtableKey(u, name, desc)

	mtableMu.RLock()
	if e, ok := MTable[key]; ok {
		mtableMu.RUnlock()
		return e.Owner, e.Method, nil
	}
	mtableMu.RUnlock()

	for cur := u; cur != nil; cur = cur.Super {
		if m := cur.FindMethod(name, desc); m != nil {
			mtableMu.Lock()
			MTable[key] = MTableEntry{Owner: cur, Method: m}
			mtableMu.Unlock()
			return cur, m, nil
		}
	}
	return nil, nil, cfe(fmt.Sprintf("no such method: %s.%s%s", u.Name, name, desc))
}

// IsSubclassOf reports whether u is class name or a (transitive) subclass
// of it -- used for ClassCastException / instanceof and exception-handler
// catch-type matching (spec §7).
func IsSubclassOf(u *Unit, name string) bool {
	for cur := u; cur != nil; cur = cur.Super {
		if cur.Name == name {
			return true
		}
	}
	return false
}

// ImplementsInterface reports whether u or an ancestor implements the named
// interface, directly or transitively through a super-interface.
func ImplementsInterface(u *Unit, name string) bool {
	for cur := u; cur != nil; cur = cur.Super {
		for _, iface := range cur.InterfaceUnits {
			if interfaceExtends(iface, name) {
				return true
			}
		}
	}
	return false
}

func interfaceExtends(iface *Unit, name string) bool {
	if iface.Name == name {
		return true
	}
	for _, super := range iface.InterfaceUnits {
		if interfaceExtends(super, name) {
			return true
		}
	}
	return false
}

// ResetMethodArea clears the method area; used only by tests that need a
// fresh linker state.
func ResetMethodArea() {
	methAreaMu.Lock()
	methArea = make(map[string]*Unit)
	deferred = nil
	methAreaMu.Unlock()

	mtableMu.Lock()
	MTable = make(map[string]MTableEntry)
	mtableMu.Unlock()
}
