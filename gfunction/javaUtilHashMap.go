/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import "javelin/object"

// hashMapEntry is the key actually stored in the backing Go map: HashMap
// keys are compared with equals()/hashCode(), but since the only keys this
// core's natives see in practice are Strings, we key on the Go string form
// of whatever was passed and fall back to identity for anything else.
type hashMapEntry struct {
	strKey   string
	isString bool
	ref      interface{}
}

func mapKeyOf(v interface{}) hashMapEntry {
	if s, ok := v.(*object.ClassInstance); ok && s != nil {
		if _, isStr := s.GetField("value"); isStr {
			return hashMapEntry{strKey: object.GoStringFromStringObject(s), isString: true}
		}
	}
	return hashMapEntry{ref: v}
}

// Load_Util_HashMap registers a minimal java/util/HashMap backed by a Go
// map, boxed into the instance the same way StringBuilder boxes its
// *strings.Builder.
func Load_Util_HashMap() {
	MethodSignatures["java/util/HashMap.<init>()V"] = GMeth{ParamSlots: 0, GFunction: hashMapInit}
	MethodSignatures["java/util/HashMap.put(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;"] = GMeth{ParamSlots: 2, GFunction: hashMapPut}
	MethodSignatures["java/util/HashMap.get(Ljava/lang/Object;)Ljava/lang/Object;"] = GMeth{ParamSlots: 1, GFunction: hashMapGet}
	MethodSignatures["java/util/HashMap.containsKey(Ljava/lang/Object;)Z"] = GMeth{ParamSlots: 1, GFunction: hashMapContainsKey}
	MethodSignatures["java/util/HashMap.remove(Ljava/lang/Object;)Ljava/lang/Object;"] = GMeth{ParamSlots: 1, GFunction: hashMapRemove}
	MethodSignatures["java/util/HashMap.size()I"] = GMeth{ParamSlots: 0, GFunction: hashMapSize}
	MethodSignatures["java/util/HashMap.isEmpty()Z"] = GMeth{ParamSlots: 0, GFunction: hashMapIsEmpty}
}

func hashMapBacking(recv *object.ClassInstance) map[hashMapEntry]interface{} {
	v, ok := recv.Fields["table"]
	if ok {
		if m, ok := v.Ref.(map[hashMapEntry]interface{}); ok {
			return m
		}
	}
	m := make(map[hashMapEntry]interface{})
	recv.Fields["table"] = wrapRef(m)
	return m
}

func hashMapInit(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	hashMapBacking(recv)
	return nil
}

func hashMapPut(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	m := hashMapBacking(recv)
	key := mapKeyOf(params[1])
	prev := m[key]
	m[key] = params[2]
	return prev
}

func hashMapGet(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	m := hashMapBacking(recv)
	return m[mapKeyOf(params[1])]
}

func hashMapContainsKey(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	m := hashMapBacking(recv)
	_, ok := m[mapKeyOf(params[1])]
	return ok
}

func hashMapRemove(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	m := hashMapBacking(recv)
	key := mapKeyOf(params[1])
	prev := m[key]
	delete(m, key)
	return prev
}

func hashMapSize(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	return int32(len(hashMapBacking(recv)))
}

func hashMapIsEmpty(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	return len(hashMapBacking(recv)) == 0
}
