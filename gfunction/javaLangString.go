/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"strconv"
	"strings"

	"javelin/excNames"
	"javelin/object"
)

// Load_Lang_String registers the String natives this core implements
// directly in Go rather than by interpreting java/lang/String's own
// bytecode -- the same shortcut the teacher takes, since String's
// constructors and accessors are on every hot path.
func Load_Lang_String() {
	MethodSignatures["java/lang/String.<init>()V"] = GMeth{ParamSlots: 0, GFunction: stringInitEmpty}
	MethodSignatures["java/lang/String.<init>([B)V"] = GMeth{ParamSlots: 1, GFunction: stringInitFromBytes}
	MethodSignatures["java/lang/String.<init>(Ljava/lang/String;)V"] = GMeth{ParamSlots: 1, GFunction: stringInitFromString}
	MethodSignatures["java/lang/String.length()I"] = GMeth{ParamSlots: 0, GFunction: stringLength}
	MethodSignatures["java/lang/String.charAt(I)C"] = GMeth{ParamSlots: 1, GFunction: stringCharAt}
	MethodSignatures["java/lang/String.equals(Ljava/lang/Object;)Z"] = GMeth{ParamSlots: 1, GFunction: stringEquals}
	MethodSignatures["java/lang/String.concat(Ljava/lang/String;)Ljava/lang/String;"] = GMeth{ParamSlots: 1, GFunction: stringConcat}
	MethodSignatures["java/lang/String.toString()Ljava/lang/String;"] = GMeth{ParamSlots: 0, GFunction: stringToString}
	MethodSignatures["java/lang/String.hashCode()I"] = GMeth{ParamSlots: 0, GFunction: stringHashCode}
	MethodSignatures["java/lang/String.isEmpty()Z"] = GMeth{ParamSlots: 0, GFunction: stringIsEmpty}
	MethodSignatures["java/lang/String.substring(I)Ljava/lang/String;"] = GMeth{ParamSlots: 1, GFunction: stringSubstring1}
	MethodSignatures["java/lang/String.substring(II)Ljava/lang/String;"] = GMeth{ParamSlots: 2, GFunction: stringSubstring2}
	MethodSignatures["java/lang/String.valueOf(I)Ljava/lang/String;"] = GMeth{ParamSlots: 1, GFunction: stringValueOfInt}
	MethodSignatures["java/lang/String.toUpperCase()Ljava/lang/String;"] = GMeth{ParamSlots: 0, GFunction: stringToUpper}
	MethodSignatures["java/lang/String.toLowerCase()Ljava/lang/String;"] = GMeth{ParamSlots: 0, GFunction: stringToLower}
	MethodSignatures["java/lang/String.<clinit>()V"] = GMeth{ParamSlots: 0, GFunction: stringClinit}
}

func recvString(params []interface{}) string {
	s, _ := params[0].(*object.ClassInstance)
	return object.GoStringFromStringObject(s)
}

func stringInitEmpty(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	recv.Fields["value"] = object.NewStringObject("").Fields["value"]
	return nil
}

func stringInitFromBytes(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	var bytes []byte
	if arr, ok := params[1].(*object.Array); ok && arr != nil {
		for _, e := range arr.Elements {
			bytes = append(bytes, byte(e.I))
		}
	} else {
		bytes, _ = params[1].([]byte)
	}
	recv.Fields["value"] = object.NewStringObject(string(bytes)).Fields["value"]
	return nil
}

func stringInitFromString(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	other := recvStringAt(params, 1)
	recv.Fields["value"] = object.NewStringObject(other).Fields["value"]
	return nil
}

func recvStringAt(params []interface{}, i int) string {
	s, _ := params[i].(*object.ClassInstance)
	return object.GoStringFromStringObject(s)
}

func stringLength(params []interface{}) interface{} {
	return int32(len(recvString(params)))
}

func stringCharAt(params []interface{}) interface{} {
	s := recvString(params)
	idx, _ := params[1].(int32)
	if int(idx) < 0 || int(idx) >= len(s) {
		return newGErr(excNames.IndexOutOfBoundsException, "String index out of range: %d", idx)
	}
	return int32(s[idx])
}

func stringEquals(params []interface{}) interface{} {
	other, ok := params[1].(*object.ClassInstance)
	if !ok || other == nil {
		return false
	}
	return recvString(params) == object.GoStringFromStringObject(other)
}

func stringConcat(params []interface{}) interface{} {
	return object.NewStringObject(recvString(params) + recvStringAt(params, 1))
}

func stringToString(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	return recv
}

func stringHashCode(params []interface{}) interface{} {
	s := recvString(params)
	var h int32
	for i := 0; i < len(s); i++ {
		h = 31*h + int32(s[i])
	}
	return h
}

func stringIsEmpty(params []interface{}) interface{} {
	return len(recvString(params)) == 0
}

func stringSubstring1(params []interface{}) interface{} {
	s := recvString(params)
	start, _ := params[1].(int32)
	if int(start) < 0 || int(start) > len(s) {
		return newGErr(excNames.IndexOutOfBoundsException, "begin %d, length %d", start, len(s))
	}
	return object.NewStringObject(s[start:])
}

func stringSubstring2(params []interface{}) interface{} {
	s := recvString(params)
	start, _ := params[1].(int32)
	end, _ := params[2].(int32)
	if start < 0 || end > int32(len(s)) || start > end {
		return newGErr(excNames.IndexOutOfBoundsException, "begin %d, end %d, length %d", start, end, len(s))
	}
	return object.NewStringObject(s[start:end])
}

func stringValueOfInt(params []interface{}) interface{} {
	v, _ := params[0].(int32)
	return object.NewStringObject(strconv.FormatInt(int64(v), 10))
}

func stringToUpper(params []interface{}) interface{} {
	return object.NewStringObject(strings.ToUpper(recvString(params)))
}

func stringToLower(params []interface{}) interface{} {
	return object.NewStringObject(strings.ToLower(recvString(params)))
}

// stringClinit is registered but does nothing: String's static
// initialization is a compile-time artifact of the real JDK we don't ship,
// and String instances are always created fully formed by the
// constructors above.
func stringClinit(params []interface{}) interface{} { return nil }
