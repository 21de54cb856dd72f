/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"javelin/types"
)

func TestKindFromAccessFlags(t *testing.T) {
	assert.Equal(t, ClassUnit, kindFromAccessFlags(AccFinal))
	assert.Equal(t, InterfaceUnit, kindFromAccessFlags(AccInterface|AccAbstract))
	assert.Equal(t, ModuleUnit, kindFromAccessFlags(AccModule))
}

func unitWithMethod(name string, m *MethodDef) *Unit {
	u := &Unit{
		Name:    name,
		Methods: map[string]*MethodDef{},
		Statics: map[string]types.Value{},
		Linked:  true,
	}
	u.Methods[methodKey(m.Name, m.Desc.String())] = m
	return u
}

func TestResolveMethodPopulatesAndReusesMTable(t *testing.T) {
	ResetMethodArea()
	base := unitWithMethod("base", &MethodDef{Name: "greet", Desc: types.MethodDescriptor{}})
	derived := &Unit{
		Name: "derived", SuperName: "base", Super: base,
		Methods: map[string]*MethodDef{}, Statics: map[string]types.Value{}, Linked: true,
	}
	MethAreaInsert("base", base)
	MethAreaInsert("derived", derived)

	owner, m, err := ResolveMethod(derived, "greet", "()V")
	assert.NoError(t, err)
	assert.Same(t, base, owner)
	assert.NotNil(t, m)

	entry, ok := MTable[mtableKey(derived, "greet", "()V")]
	assert.True(t, ok)
	assert.Same(t, base, entry.Owner)

	// second resolve must hit the cache, not re-walk (same pointer back).
	owner2, m2, err2 := ResolveMethod(derived, "greet", "()V")
	assert.NoError(t, err2)
	assert.Same(t, owner, owner2)
	assert.Same(t, m, m2)
}

func TestResetMethodAreaClearsMTable(t *testing.T) {
	ResetMethodArea()
	u := unitWithMethod("once", &MethodDef{Name: "m", Desc: types.MethodDescriptor{}})
	MethAreaInsert("once", u)
	_, _, err := ResolveMethod(u, "m", "()V")
	assert.NoError(t, err)
	assert.NotEmpty(t, MTable)

	ResetMethodArea()
	assert.Empty(t, MTable)
}

func TestDecodeRecordAttributePromotesComponents(t *testing.T) {
	cp := CPool{
		CpIndex: []CpEntry{
			{}, // index 0 unused
			{Type: UTF8, Slot: 0},
			{Type: UTF8, Slot: 1},
		},
		Utf8Refs: []string{"x", "I"},
	}
	// components_count=1, name_index=1, descriptor_index=2, attributes_count=0
	content := []byte{0x00, 0x01, 0x00, 0x01, 0x00, 0x02, 0x00, 0x00}

	comps, err := decodeRecordAttribute(content, &cp)
	assert.NoError(t, err)
	assert.Len(t, comps, 1)
	assert.Equal(t, "x", comps[0].Name)
	assert.Equal(t, types.KindInt, comps[0].Desc.Kind)
}
