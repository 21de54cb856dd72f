/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import "javelin/object"

// Load_Lang_Thread registers a minimal java/lang/Thread: this core runs a
// single interpreter thread, so Thread is a bookkeeping object rather than
// a real concurrent unit of execution (see DESIGN.md for the Non-goal this
// narrows).
func Load_Lang_Thread() {
	MethodSignatures["java/lang/Thread.<init>()V"] = GMeth{ParamSlots: 0, GFunction: threadInit}
	MethodSignatures["java/lang/Thread.<init>(Ljava/lang/String;)V"] = GMeth{ParamSlots: 1, GFunction: threadInitNamed}
	MethodSignatures["java/lang/Thread.getName()Ljava/lang/String;"] = GMeth{ParamSlots: 0, GFunction: threadGetName}
	MethodSignatures["java/lang/Thread.setName(Ljava/lang/String;)V"] = GMeth{ParamSlots: 1, GFunction: threadSetName}
	MethodSignatures["java/lang/Thread.currentThread()Ljava/lang/Thread;"] = GMeth{ParamSlots: 0, GFunction: threadCurrentThread}
	MethodSignatures["java/lang/Thread.run()V"] = GMeth{ParamSlots: 0, GFunction: threadRunNoop}
}

func threadInit(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	recv.Fields["name"] = object.NewStringObject("Thread-0").Fields["value"]
	return nil
}

func threadInitNamed(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	recv.Fields["name"] = object.NewStringObject(recvStringAt(params, 1)).Fields["value"]
	return nil
}

func threadGetName(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	v, ok := recv.GetField("name")
	if !ok {
		return object.NewStringObject("Thread-0")
	}
	if sp, ok := v.Ref.(*string); ok {
		return object.NewStringObject(*sp)
	}
	return object.NewStringObject("Thread-0")
}

func threadSetName(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	recv.Fields["name"] = object.NewStringObject(recvStringAt(params, 1)).Fields["value"]
	return nil
}

func threadCurrentThread(params []interface{}) interface{} {
	return nil
}

func threadRunNoop(params []interface{}) interface{} {
	return nil
}
