/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

// parseConstantPool decodes the constant_pool_count and constant_pool[]
// class-file sections into rc.CP. Index 0 and the slot following a
// Long/Double are left as Dummy placeholders, matching spec §3's "Constant
// pool (syntactic form)".
func parseConstantPool(r *reader, rc *RawClass) error {
	count, err := r.u2()
	if err != nil {
		return cfe("short read parsing constant_pool_count")
	}

	cp := &rc.CP
	cp.CpIndex = make([]CpEntry, count) // index 0 stays the zero-value Dummy entry

	for i := 1; i < int(count); i++ {
		tag, err := r.u1()
		if err != nil {
			return cfe("short read parsing CP tag at index " + itoa(i))
		}

		switch uint16(tag) {
		case UTF8:
			length, err := r.u2()
			if err != nil {
				return cfe("short read parsing Utf8 length at index " + itoa(i))
			}
			raw, err := r.bytes(int(length))
			if err != nil {
				return cfe("short read parsing Utf8 bytes at index " + itoa(i))
			}
			s, err := decodeModifiedUTF8(raw)
			if err != nil {
				return cfe("invalid modified-utf8 at CP index " + itoa(i) + ": " + err.Error())
			}
			cp.CpIndex[i] = CpEntry{Type: UTF8, Slot: uint16(len(cp.Utf8Refs))}
			cp.Utf8Refs = append(cp.Utf8Refs, s)

		case IntConst:
			v, err := r.u4()
			if err != nil {
				return cfe("short read parsing Integer at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: IntConst, Slot: uint16(len(cp.IntConsts))}
			cp.IntConsts = append(cp.IntConsts, int32(v))

		case FloatConst:
			v, err := r.u4()
			if err != nil {
				return cfe("short read parsing Float at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: FloatConst, Slot: uint16(len(cp.FloatConsts))}
			cp.FloatConsts = append(cp.FloatConsts, float32frombits(v))

		case LongConst:
			hi, err := r.u4()
			if err != nil {
				return cfe("short read parsing Long (high) at index " + itoa(i))
			}
			lo, err := r.u4()
			if err != nil {
				return cfe("short read parsing Long (low) at index " + itoa(i))
			}
			v := (int64(hi) << 32) | int64(lo)
			cp.CpIndex[i] = CpEntry{Type: LongConst, Slot: uint16(len(cp.LongConsts))}
			cp.LongConsts = append(cp.LongConsts, v)
			i++ // the following slot is a Dummy placeholder

		case DoubleConst:
			hi, err := r.u4()
			if err != nil {
				return cfe("short read parsing Double (high) at index " + itoa(i))
			}
			lo, err := r.u4()
			if err != nil {
				return cfe("short read parsing Double (low) at index " + itoa(i))
			}
			// Open Question resolved: bit-pattern assembly, not a cast.
			bits := (uint64(hi) << 32) | uint64(lo)
			cp.CpIndex[i] = CpEntry{Type: DoubleConst, Slot: uint16(len(cp.DoubleConsts))}
			cp.DoubleConsts = append(cp.DoubleConsts, float64frombits(bits))
			i++ // the following slot is a Dummy placeholder

		case ClassRef:
			nameIdx, err := r.u2()
			if err != nil {
				return cfe("short read parsing Class at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: ClassRef, Slot: uint16(len(cp.ClassRefs))}
			cp.ClassRefs = append(cp.ClassRefs, nameIdx)

		case StringConst:
			utf8Idx, err := r.u2()
			if err != nil {
				return cfe("short read parsing String at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: StringConst, Slot: uint16(len(cp.StringRefs))}
			cp.StringRefs = append(cp.StringRefs, utf8Idx)

		case FieldRef:
			e, err := parseMemberRef(r)
			if err != nil {
				return cfe("short read parsing Fieldref at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: FieldRef, Slot: uint16(len(cp.FieldRefs))}
			cp.FieldRefs = append(cp.FieldRefs, e)

		case MethodRef:
			e, err := parseMemberRef(r)
			if err != nil {
				return cfe("short read parsing Methodref at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: MethodRef, Slot: uint16(len(cp.MethodRefs))}
			cp.MethodRefs = append(cp.MethodRefs, e)

		case Interface:
			e, err := parseMemberRef(r)
			if err != nil {
				return cfe("short read parsing InterfaceMethodref at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: Interface, Slot: uint16(len(cp.InterfaceRefs))}
			cp.InterfaceRefs = append(cp.InterfaceRefs, e)

		case NameAndType:
			nameIdx, err := r.u2()
			if err != nil {
				return cfe("short read parsing NameAndType at index " + itoa(i))
			}
			descIdx, err := r.u2()
			if err != nil {
				return cfe("short read parsing NameAndType at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: NameAndType, Slot: uint16(len(cp.NameAndTypes))}
			cp.NameAndTypes = append(cp.NameAndTypes, NameAndTypeEntry{NameIndex: nameIdx, DescIndex: descIdx})

		case MethodHandle:
			kind, err := r.u1()
			if err != nil {
				return cfe("short read parsing MethodHandle at index " + itoa(i))
			}
			refIdx, err := r.u2()
			if err != nil {
				return cfe("short read parsing MethodHandle at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: MethodHandle, Slot: uint16(len(cp.MethodHandles))}
			cp.MethodHandles = append(cp.MethodHandles, MethodHandleEntry{RefKind: uint16(kind), RefIndex: refIdx})

		case MethodType:
			descIdx, err := r.u2()
			if err != nil {
				return cfe("short read parsing MethodType at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: MethodType, Slot: uint16(len(cp.MethodTypes))}
			cp.MethodTypes = append(cp.MethodTypes, descIdx)

		case DynamicEntry:
			bsIdx, err := r.u2()
			if err != nil {
				return cfe("short read parsing Dynamic at index " + itoa(i))
			}
			natIdx, err := r.u2()
			if err != nil {
				return cfe("short read parsing Dynamic at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: DynamicEntry, Slot: uint16(len(cp.Dynamics))}
			cp.Dynamics = append(cp.Dynamics, DynamicRefEntry{BootstrapIndex: bsIdx, NameAndTypeIndex: natIdx})

		case InvokeDynamicEntry:
			bsIdx, err := r.u2()
			if err != nil {
				return cfe("short read parsing InvokeDynamic at index " + itoa(i))
			}
			natIdx, err := r.u2()
			if err != nil {
				return cfe("short read parsing InvokeDynamic at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: InvokeDynamicEntry, Slot: uint16(len(cp.InvokeDynamics))}
			cp.InvokeDynamics = append(cp.InvokeDynamics, DynamicRefEntry{BootstrapIndex: bsIdx, NameAndTypeIndex: natIdx})

		case ModuleEntry:
			nameIdx, err := r.u2()
			if err != nil {
				return cfe("short read parsing Module at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: ModuleEntry, Slot: uint16(len(cp.ModuleRefs))}
			cp.ModuleRefs = append(cp.ModuleRefs, nameIdx)

		case PackageEntry:
			nameIdx, err := r.u2()
			if err != nil {
				return cfe("short read parsing Package at index " + itoa(i))
			}
			cp.CpIndex[i] = CpEntry{Type: PackageEntry, Slot: uint16(len(cp.PackageRefs))}
			cp.PackageRefs = append(cp.PackageRefs, nameIdx)

		default:
			return cfe("impossible constant pool tag " + itoa(int(tag)) + " at index " + itoa(i))
		}
	}

	return nil
}

func parseMemberRef(r *reader) (MemberRefEntry, error) {
	classIdx, err := r.u2()
	if err != nil {
		return MemberRefEntry{}, err
	}
	natIdx, err := r.u2()
	if err != nil {
		return MemberRefEntry{}, err
	}
	return MemberRefEntry{ClassIndex: classIdx, NameAndTypeIndex: natIdx}, nil
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
