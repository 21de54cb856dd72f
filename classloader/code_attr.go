/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

// CodeAttrib is the lifted form of the Code attribute (spec §3 "Method" /
// §4.4 "the Code attribute is re-parsed from its opaque bytes").
type CodeAttrib struct {
	MaxStack   int
	MaxLocals  int
	Code       []byte
	Exceptions []ExceptionHandler
	LineNumbers      []LineNumberEntry
	LocalVariables   []LocalVariableEntry
	LocalVarTypes    []LocalVariableEntry
	StackMapFrames   []StackMapFrame
}

// ExceptionHandler is one entry of the Code attribute's exception table
// (spec §3 "Exception handler"). CatchType == "" denotes a catch-any
// handler (catch_type == 0 in the class file, spec §4.8).
type ExceptionHandler struct {
	StartPc   int
	EndPc     int // exclusive
	HandlerPc int
	CatchType string
}

type LineNumberEntry struct {
	StartPc    int
	LineNumber int
}

type LocalVariableEntry struct {
	StartPc   int
	Length    int
	Name      string
	Desc      string
	Index     int
}

// StackMapFrame is a discriminated verification hint (spec §3 "Stack-map
// frame"): carried through but not interpreted by this core, the verifier
// being out of scope.
type StackMapFrame struct {
	FrameType  byte
	OffsetDelta int
	Locals     []VerificationType
	Stack      []VerificationType
}

// VerificationType tags (spec §6): 0..8 map to
// {Top, Integer, Float, Long, Double, Null, UninitializedThis, Object(cp-index), Uninitialized(offset)}.
type VerificationType struct {
	Tag       byte
	CPIndex   uint16 // valid when Tag == 7 (Object)
	Offset    uint16 // valid when Tag == 8 (Uninitialized)
}

// decodeCodeAttribute re-parses a Code attribute's opaque bytes, resolving
// exception catch types against the already-lifted class-name table.
func decodeCodeAttribute(content []byte, resolveClassName func(cpIndex uint16) (string, error)) (CodeAttrib, []RawAttribute, error) {
	r := &reader{b: content}
	var ca CodeAttrib

	maxStack, err := r.u2()
	if err != nil {
		return ca, nil, cfe("short read parsing Code max_stack")
	}
	maxLocals, err := r.u2()
	if err != nil {
		return ca, nil, cfe("short read parsing Code max_locals")
	}
	ca.MaxStack = int(maxStack)
	ca.MaxLocals = int(maxLocals)

	// Open Question resolved: code_length counts bytes, the code vector is a
	// byte stream (not 8-byte chunks).
	codeLength, err := r.u4()
	if err != nil {
		return ca, nil, cfe("short read parsing Code code_length")
	}
	code, err := r.bytes(int(codeLength))
	if err != nil {
		return ca, nil, cfe("short read parsing Code bytecode")
	}
	ca.Code = append([]byte(nil), code...)

	excCount, err := r.u2()
	if err != nil {
		return ca, nil, cfe("short read parsing Code exception_table_length")
	}
	for i := 0; i < int(excCount); i++ {
		startPc, err1 := r.u2()
		endPc, err2 := r.u2()
		handlerPc, err3 := r.u2()
		catchTypeIdx, err4 := r.u2()
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return ca, nil, cfe("short read parsing Code exception_table entry")
		}
		eh := ExceptionHandler{StartPc: int(startPc), EndPc: int(endPc), HandlerPc: int(handlerPc)}
		if catchTypeIdx != 0 { // 0 denotes catch-any
			name, err := resolveClassName(catchTypeIdx)
			if err != nil {
				return ca, nil, err
			}
			eh.CatchType = name
		}
		ca.Exceptions = append(ca.Exceptions, eh)
	}

	attrCount, err := r.u2()
	if err != nil {
		return ca, nil, cfe("short read parsing Code attributes_count")
	}
	var nested []RawAttribute
	for i := 0; i < int(attrCount); i++ {
		a, err := parseAttribute(r)
		if err != nil {
			return ca, nil, err
		}
		nested = append(nested, a)
	}

	return ca, nested, nil
}

// decodeLineNumberTable parses a LineNumberTable attribute body.
func decodeLineNumberTable(content []byte) ([]LineNumberEntry, error) {
	r := &reader{b: content}
	count, err := r.u2()
	if err != nil {
		return nil, cfe("short read parsing LineNumberTable length")
	}
	out := make([]LineNumberEntry, 0, count)
	for i := 0; i < int(count); i++ {
		startPc, err1 := r.u2()
		lineNo, err2 := r.u2()
		if err1 != nil || err2 != nil {
			return nil, cfe("short read parsing LineNumberTable entry")
		}
		out = append(out, LineNumberEntry{StartPc: int(startPc), LineNumber: int(lineNo)})
	}
	return out, nil
}

// decodeLocalVariableTable parses a LocalVariableTable or
// LocalVariableTypeTable attribute body (identical shape; the descriptor
// slot carries a type signature for the latter).
func decodeLocalVariableTable(content []byte, utf8At func(idx uint16) (string, error)) ([]LocalVariableEntry, error) {
	r := &reader{b: content}
	count, err := r.u2()
	if err != nil {
		return nil, cfe("short read parsing LocalVariableTable length")
	}
	out := make([]LocalVariableEntry, 0, count)
	for i := 0; i < int(count); i++ {
		startPc, e1 := r.u2()
		length, e2 := r.u2()
		nameIdx, e3 := r.u2()
		descIdx, e4 := r.u2()
		index, e5 := r.u2()
		if e1 != nil || e2 != nil || e3 != nil || e4 != nil || e5 != nil {
			return nil, cfe("short read parsing LocalVariableTable entry")
		}
		name, err := utf8At(nameIdx)
		if err != nil {
			return nil, err
		}
		desc, err := utf8At(descIdx)
		if err != nil {
			return nil, err
		}
		out = append(out, LocalVariableEntry{
			StartPc: int(startPc), Length: int(length), Name: name, Desc: desc, Index: int(index),
		})
	}
	return out, nil
}

// decodeStackMapTable parses a StackMapTable attribute body into a list of
// discriminated frames (spec §6 frame-type ranges), without acting on them.
func decodeStackMapTable(content []byte) ([]StackMapFrame, error) {
	r := &reader{b: content}
	count, err := r.u2()
	if err != nil {
		return nil, cfe("short read parsing StackMapTable length")
	}
	frames := make([]StackMapFrame, 0, count)
	for i := 0; i < int(count); i++ {
		frameType, err := r.u1()
		if err != nil {
			return nil, cfe("short read parsing StackMapTable frame type")
		}
		f := StackMapFrame{FrameType: frameType}
		switch {
		case frameType <= 63: // Same
		case frameType <= 127: // SameLocals1StackItem
			vt, err := decodeVerificationType(r)
			if err != nil {
				return nil, err
			}
			f.Stack = []VerificationType{vt}
		case frameType == 247: // SameLocals1StackItemExtended
			delta, err := r.u2()
			if err != nil {
				return nil, cfe("short read parsing StackMapTable offset_delta")
			}
			f.OffsetDelta = int(delta)
			vt, err := decodeVerificationType(r)
			if err != nil {
				return nil, err
			}
			f.Stack = []VerificationType{vt}
		case frameType >= 248 && frameType <= 250: // Chop
			delta, err := r.u2()
			if err != nil {
				return nil, cfe("short read parsing StackMapTable offset_delta")
			}
			f.OffsetDelta = int(delta)
		case frameType == 251: // SameExtended
			delta, err := r.u2()
			if err != nil {
				return nil, cfe("short read parsing StackMapTable offset_delta")
			}
			f.OffsetDelta = int(delta)
		case frameType >= 252 && frameType <= 254: // Append
			delta, err := r.u2()
			if err != nil {
				return nil, cfe("short read parsing StackMapTable offset_delta")
			}
			f.OffsetDelta = int(delta)
			numLocals := int(frameType) - 251
			for j := 0; j < numLocals; j++ {
				vt, err := decodeVerificationType(r)
				if err != nil {
					return nil, err
				}
				f.Locals = append(f.Locals, vt)
			}
		case frameType == 255: // Full
			delta, err := r.u2()
			if err != nil {
				return nil, cfe("short read parsing StackMapTable offset_delta")
			}
			f.OffsetDelta = int(delta)
			numLocals, err := r.u2()
			if err != nil {
				return nil, cfe("short read parsing StackMapTable number_of_locals")
			}
			for j := 0; j < int(numLocals); j++ {
				vt, err := decodeVerificationType(r)
				if err != nil {
					return nil, err
				}
				f.Locals = append(f.Locals, vt)
			}
			numStack, err := r.u2()
			if err != nil {
				return nil, cfe("short read parsing StackMapTable number_of_stack_items")
			}
			for j := 0; j < int(numStack); j++ {
				vt, err := decodeVerificationType(r)
				if err != nil {
					return nil, err
				}
				f.Stack = append(f.Stack, vt)
			}
		default:
			return nil, cfe("impossible StackMapTable frame type")
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func decodeVerificationType(r *reader) (VerificationType, error) {
	tag, err := r.u1()
	if err != nil {
		return VerificationType{}, cfe("short read parsing verification_type_info tag")
	}
	vt := VerificationType{Tag: tag}
	switch tag {
	case 7: // Object
		idx, err := r.u2()
		if err != nil {
			return vt, cfe("short read parsing Object verification_type_info")
		}
		vt.CPIndex = idx
	case 8: // Uninitialized
		off, err := r.u2()
		if err != nil {
			return vt, cfe("short read parsing Uninitialized verification_type_info")
		}
		vt.Offset = off
	}
	return vt, nil
}
