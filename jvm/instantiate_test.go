/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"javelin/classloader"
	"javelin/thread"
	"javelin/types"
)

func noopClinit() *classloader.MethodDef {
	return &classloader.MethodDef{
		Name: "<clinit>",
		Code: &classloader.CodeAttrib{Code: []byte{RETURN}},
	}
}

func TestRunClinitOrdersSuperBeforeSub(t *testing.T) {
	classloader.ResetMethodArea()

	base := &classloader.Unit{
		Name: "base", Methods: map[string]*classloader.MethodDef{}, Statics: map[string]types.Value{},
		ClInit: types.ClInitNotRun, Linked: true,
	}
	base.Methods["<clinit>()V"] = noopClinit()

	derived := &classloader.Unit{
		Name: "derived", SuperName: "base", Super: base,
		Methods: map[string]*classloader.MethodDef{}, Statics: map[string]types.Value{},
		ClInit: types.ClInitNotRun, Linked: true,
	}
	derived.Methods["<clinit>()V"] = noopClinit()

	classloader.MethAreaInsert("base", base)
	classloader.MethAreaInsert("derived", derived)

	thr := RunClinit(thread.New(), derived)
	assert.Nil(t, thr)
	assert.Equal(t, types.ClInitRun, base.ClInit)
	assert.Equal(t, types.ClInitRun, derived.ClInit)
}

func TestRunClinitIsIdempotent(t *testing.T) {
	classloader.ResetMethodArea()
	u := &classloader.Unit{
		Name: "once", Methods: map[string]*classloader.MethodDef{}, Statics: map[string]types.Value{},
		ClInit: types.ClInitNotRun, Linked: true,
	}
	u.Methods["<clinit>()V"] = noopClinit()
	classloader.MethAreaInsert("once", u)

	tr := thread.New()
	assert.Nil(t, RunClinit(tr, u))
	assert.Equal(t, types.ClInitRun, u.ClInit)
	// second run must be a no-op, not a re-execution or deadlock.
	assert.Nil(t, RunClinit(tr, u))
}

func TestInstantiateClassWithoutClinitAllocates(t *testing.T) {
	classloader.ResetMethodArea()
	u := &classloader.Unit{
		Name:    "widget",
		Fields:  []classloader.FieldDef{{Name: "count", Desc: types.FieldType{Kind: types.KindInt}}},
		Methods: map[string]*classloader.MethodDef{},
		Statics: map[string]types.Value{},
		ClInit:  types.NoClinit,
		Linked:  true,
	}
	classloader.MethAreaInsert("widget", u)

	inst, thr := InstantiateClass(thread.New(), u)
	assert.Nil(t, thr)
	assert.NotNil(t, inst)
	// no <clinit> to run: RunClinit is a pure no-op and the status byte is
	// left untouched rather than advanced to ClInitRun.
	assert.Equal(t, types.NoClinit, u.ClInit)
}
