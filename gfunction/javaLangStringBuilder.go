/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"strconv"
	"strings"

	"javelin/object"
)

// Load_Lang_StringBuilder registers the StringBuilder natives: its
// backing buffer is kept in the instance's "buf" field as a Go
// *strings.Builder held in that field value's Ref, sidestepping
// the real JDK's resizable char-array implementation since nothing else
// in this core needs to observe that representation.
func Load_Lang_StringBuilder() {
	MethodSignatures["java/lang/StringBuilder.<init>()V"] = GMeth{ParamSlots: 0, GFunction: sbInit}
	MethodSignatures["java/lang/StringBuilder.<init>(Ljava/lang/String;)V"] = GMeth{ParamSlots: 1, GFunction: sbInitFromString}
	MethodSignatures["java/lang/StringBuilder.append(Ljava/lang/String;)Ljava/lang/StringBuilder;"] = GMeth{ParamSlots: 1, GFunction: sbAppendString}
	MethodSignatures["java/lang/StringBuilder.append(I)Ljava/lang/StringBuilder;"] = GMeth{ParamSlots: 1, GFunction: sbAppendInt}
	MethodSignatures["java/lang/StringBuilder.toString()Ljava/lang/String;"] = GMeth{ParamSlots: 0, GFunction: sbToString}
	MethodSignatures["java/lang/StringBuilder.length()I"] = GMeth{ParamSlots: 0, GFunction: sbLength}
}

func sbBuilder(recv *object.ClassInstance) *strings.Builder {
	v, ok := recv.Fields["buf"]
	if ok {
		if b, ok := v.Ref.(*strings.Builder); ok {
			return b
		}
	}
	b := &strings.Builder{}
	recv.Fields["buf"] = wrapRef(b)
	return b
}

func sbInit(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	sbBuilder(recv)
	return nil
}

func sbInitFromString(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	b := sbBuilder(recv)
	b.WriteString(recvStringAt(params, 1))
	return nil
}

func sbAppendString(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	sbBuilder(recv).WriteString(recvStringAt(params, 1))
	return recv
}

func sbAppendInt(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	v, _ := params[1].(int32)
	sbBuilder(recv).WriteString(strconv.FormatInt(int64(v), 10))
	return recv
}

func sbToString(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	return object.NewStringObject(sbBuilder(recv).String())
}

func sbLength(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	return int32(sbBuilder(recv).Len())
}
