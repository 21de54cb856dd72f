/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"encoding/binary"
	"errors"
	"io"
	"strconv"

	"javelin/globals"
	"javelin/log"
)

// magic is the historical JVM class-file marker (spec §6).
const magic = 0xCAFEBABE

// RawClass is the syntactic tree the decoder produces: everything is still
// in index form, with attribute bodies carried as opaque bytes. The
// semantic lifter (lift.go) promotes this into a Unit.
type RawClass struct {
	MinorVersion uint16
	MajorVersion uint16
	CP           CPool
	AccessFlags  uint16
	ThisClass    uint16
	SuperClass   uint16 // 0 means absent (only java/lang/Object)
	Interfaces   []uint16
	Fields       []RawField
	Methods      []RawMethod
	Attributes   []RawAttribute
}

// RawAttribute is {name-index, length, opaque bytes}: the decoder does not
// interpret attribute bodies, per spec §4.3.
type RawAttribute struct {
	NameIndex uint16
	Length    uint32
	Content   []byte
}

type RawField struct {
	AccessFlags uint16
	NameIndex   uint16
	DescIndex   uint16
	Attributes  []RawAttribute
}

type RawMethod struct {
	AccessFlags uint16
	NameIndex   uint16
	DescIndex   uint16
	Attributes  []RawAttribute
}

// reader wraps a byte slice with a cursor and the big-endian primitive reads
// the format needs. A short read at any point is a Format error.
type reader struct {
	b   []byte
	pos int
}

func (r *reader) u1() (byte, error) {
	if r.pos+1 > len(r.b) {
		return 0, errShortRead
	}
	v := r.b[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) u2() (uint16, error) {
	if r.pos+2 > len(r.b) {
		return 0, errShortRead
	}
	v := binary.BigEndian.Uint16(r.b[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) u4() (uint32, error) {
	if r.pos+4 > len(r.b) {
		return 0, errShortRead
	}
	v := binary.BigEndian.Uint32(r.b[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.b) {
		return nil, errShortRead
	}
	v := r.b[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

var errShortRead = errors.New("class format error: short read")

// DecodeClassBytes parses a raw class-file byte stream into a RawClass.
// Every failure here is fatal for the unit (spec §4.3).
func DecodeClassBytes(raw []byte) (*RawClass, error) {
	r := &reader{b: raw}

	m, err := r.u4()
	if err != nil {
		return nil, cfe("short read parsing magic number")
	}
	if m != magic {
		return nil, cfe("bad magic number: expected 0xCAFEBABE")
	}

	rc := &RawClass{}
	if rc.MinorVersion, err = r.u2(); err != nil {
		return nil, cfe(err.Error())
	}
	if rc.MajorVersion, err = r.u2(); err != nil {
		return nil, cfe(err.Error())
	}
	if int(rc.MajorVersion) > globals.GetGlobalRef().MaxJavaVersionRaw {
		return nil, cfe("unsupported class file major version")
	}

	if err := parseConstantPool(r, rc); err != nil {
		return nil, err
	}

	if rc.AccessFlags, err = r.u2(); err != nil {
		return nil, cfe(err.Error())
	}
	if rc.ThisClass, err = r.u2(); err != nil {
		return nil, cfe(err.Error())
	}
	if rc.SuperClass, err = r.u2(); err != nil {
		return nil, cfe(err.Error())
	}

	ifaceCount, err := r.u2()
	if err != nil {
		return nil, cfe(err.Error())
	}
	for i := 0; i < int(ifaceCount); i++ {
		idx, err := r.u2()
		if err != nil {
			return nil, cfe(err.Error())
		}
		rc.Interfaces = append(rc.Interfaces, idx)
	}

	fieldCount, err := r.u2()
	if err != nil {
		return nil, cfe(err.Error())
	}
	for i := 0; i < int(fieldCount); i++ {
		f, err := parseField(r)
		if err != nil {
			return nil, err
		}
		rc.Fields = append(rc.Fields, f)
	}

	methodCount, err := r.u2()
	if err != nil {
		return nil, cfe(err.Error())
	}
	for i := 0; i < int(methodCount); i++ {
		mth, err := parseMethod(r)
		if err != nil {
			return nil, err
		}
		rc.Methods = append(rc.Methods, mth)
	}

	attrCount, err := r.u2()
	if err != nil {
		return nil, cfe(err.Error())
	}
	for i := 0; i < int(attrCount); i++ {
		a, err := parseAttribute(r)
		if err != nil {
			return nil, err
		}
		rc.Attributes = append(rc.Attributes, a)
	}

	_ = log.Log("DecodeClassBytes: parsed class with major version "+strconv.Itoa(int(rc.MajorVersion)), log.FINEST)
	return rc, nil
}

// Decode is the io.Reader-accepting convenience wrapper.
func Decode(r io.Reader) (*RawClass, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, cfe("short read: " + err.Error())
	}
	return DecodeClassBytes(raw)
}

func parseAttribute(r *reader) (RawAttribute, error) {
	nameIdx, err := r.u2()
	if err != nil {
		return RawAttribute{}, cfe(err.Error())
	}
	length, err := r.u4()
	if err != nil {
		return RawAttribute{}, cfe(err.Error())
	}
	content, err := r.bytes(int(length))
	if err != nil {
		return RawAttribute{}, cfe(err.Error())
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return RawAttribute{NameIndex: nameIdx, Length: length, Content: cp}, nil
}

func parseField(r *reader) (RawField, error) {
	var f RawField
	var err error
	if f.AccessFlags, err = r.u2(); err != nil {
		return f, cfe(err.Error())
	}
	if f.NameIndex, err = r.u2(); err != nil {
		return f, cfe(err.Error())
	}
	if f.DescIndex, err = r.u2(); err != nil {
		return f, cfe(err.Error())
	}
	attrCount, err := r.u2()
	if err != nil {
		return f, cfe(err.Error())
	}
	for i := 0; i < int(attrCount); i++ {
		a, err := parseAttribute(r)
		if err != nil {
			return f, err
		}
		f.Attributes = append(f.Attributes, a)
	}
	return f, nil
}

func parseMethod(r *reader) (RawMethod, error) {
	var m RawMethod
	var err error
	if m.AccessFlags, err = r.u2(); err != nil {
		return m, cfe(err.Error())
	}
	if m.NameIndex, err = r.u2(); err != nil {
		return m, cfe(err.Error())
	}
	if m.DescIndex, err = r.u2(); err != nil {
		return m, cfe(err.Error())
	}
	attrCount, err := r.u2()
	if err != nil {
		return m, cfe(err.Error())
	}
	for i := 0; i < int(attrCount); i++ {
		a, err := parseAttribute(r)
		if err != nil {
			return m, err
		}
		m.Attributes = append(m.Attributes, a)
	}
	return m, nil
}
