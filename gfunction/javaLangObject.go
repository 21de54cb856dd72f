/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"unsafe"

	"javelin/object"
)

// Load_Lang_Object registers the primordial native methods every class
// inherits: java/lang/Object itself has no bytecode body for these, so the
// interpreter must always find them here (spec §7 "Object is the one class
// every method table implicitly extends").
func Load_Lang_Object() {
	MethodSignatures["java/lang/Object.<init>()V"] = GMeth{ParamSlots: 0, GFunction: objectInit}
	MethodSignatures["java/lang/Object.hashCode()I"] = GMeth{ParamSlots: 0, GFunction: objectHashCode}
	MethodSignatures["java/lang/Object.equals(Ljava/lang/Object;)Z"] = GMeth{ParamSlots: 1, GFunction: objectEquals}
	MethodSignatures["java/lang/Object.toString()Ljava/lang/String;"] = GMeth{ParamSlots: 0, GFunction: objectToString}
	MethodSignatures["java/lang/Object.getClass()Ljava/lang/Class;"] = GMeth{ParamSlots: 0, GFunction: objectGetClass}
}

func objectInit(params []interface{}) interface{} {
	return nil
}

// objectHashCode derives the identity hash from the object's own address,
// the way the teacher's Mark.Hash field does in instantiateClass().
func objectHashCode(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	return int32(uintptr(unsafe.Pointer(recv)))
}

func objectEquals(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	other, _ := params[1].(*object.ClassInstance)
	return recv == other
}

func objectToString(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	return object.NewStringObject(recv.ToString())
}

func objectGetClass(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	if recv == nil || recv.Unit == nil {
		return object.NewStringObject("")
	}
	return object.NewStringObject(recv.Unit.Name)
}
