/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

// Constant-pool tag values (spec §6 "External Interfaces"). Module=19 and
// Package=20 follow the standard, resolving the Open Question spec.md §9
// raises about a source that swaps them.
const (
	Dummy              = 0 // placeholder: index 0, and the slot after a Long/Double
	UTF8               = 1
	IntConst           = 3
	FloatConst         = 4
	LongConst          = 5
	DoubleConst        = 6
	ClassRef           = 7
	StringConst        = 8
	FieldRef           = 9
	MethodRef          = 10
	Interface          = 11
	NameAndType        = 12
	MethodHandle       = 15
	MethodType         = 16
	DynamicEntry       = 17
	InvokeDynamicEntry = 18
	ModuleEntry        = 19
	PackageEntry       = 20
)

// Method-handle reference kinds (spec §6).
const (
	RefGetField         = 1
	RefGetStatic        = 2
	RefPutField         = 3
	RefPutStatic        = 4
	RefInvokeVirtual    = 5
	RefInvokeStatic     = 6
	RefInvokeSpecial    = 7
	RefNewInvokeSpecial = 8
	RefInvokeInterface  = 9
)

// CpEntry is one syntactic constant-pool slot: a tag plus an index into the
// tag-specific typed slice below. This mirrors the teacher's CpEntry{Type,
// Slot} shape exactly (classes.go), rather than a discriminated-union struct
// per entry, to keep per-entry memory small.
type CpEntry struct {
	Type uint16
	Slot uint16
}

// CPool is the syntactic (pre-lift) constant pool: one CpIndex per original
// pool slot (1-indexed; slot 0 and the filler after a Long/Double are
// Dummy), plus the tag-specific backing slices.
type CPool struct {
	CpIndex        []CpEntry
	Utf8Refs       []string
	IntConsts      []int32
	FloatConsts    []float32
	LongConsts     []int64
	DoubleConsts   []float64
	ClassRefs      []uint16 // index into Utf8Refs-bearing CpIndex slot (name index)
	StringRefs     []uint16 // index into a Utf8 CP slot
	FieldRefs      []MemberRefEntry
	MethodRefs     []MemberRefEntry
	InterfaceRefs  []MemberRefEntry
	NameAndTypes   []NameAndTypeEntry
	MethodHandles  []MethodHandleEntry
	MethodTypes    []uint16 // index into a Utf8 CP slot (descriptor)
	Dynamics       []DynamicRefEntry
	InvokeDynamics []DynamicRefEntry
	ModuleRefs     []uint16
	PackageRefs    []uint16
}

// MemberRefEntry backs Fieldref/Methodref/InterfaceMethodref: both fields
// are CP indices (not slot indices), resolved during lifting.
type MemberRefEntry struct {
	ClassIndex      uint16
	NameAndTypeIndex uint16
}

// NameAndTypeEntry backs CONSTANT_NameAndType: both fields are CP indices.
type NameAndTypeEntry struct {
	NameIndex uint16
	DescIndex uint16
}

// MethodHandleEntry backs CONSTANT_MethodHandle.
type MethodHandleEntry struct {
	RefKind  uint16
	RefIndex uint16 // CP index, kind depends on RefKind
}

// DynamicRefEntry backs CONSTANT_Dynamic / CONSTANT_InvokeDynamic.
type DynamicRefEntry struct {
	BootstrapIndex   uint16
	NameAndTypeIndex uint16
}

// entryCount returns how many CpIndex slots tag occupies (2 for Long/Double,
// which reserve the following slot as a Dummy placeholder; 1 otherwise).
func entryCount(tag uint16) int {
	if tag == LongConst || tag == DoubleConst {
		return 2
	}
	return 1
}
