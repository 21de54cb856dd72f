/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"javelin/excNames"
	"javelin/object"
)

// Load_Io_InputStreamReader registers java/io/InputStreamReader's decoding
// natives. The real class streams from an underlying InputStream and
// decodes with a pluggable Charset; this core only backs it with an
// in-memory byte source (the bytes read out of an already-materialized
// array), and always decodes as UTF-8 via golang.org/x/text/encoding/unicode
// rather than hand-rolling the decoder.
func Load_Io_InputStreamReader() {
	MethodSignatures["java/io/InputStreamReader.<init>(Ljava/io/InputStream;)V"] = GMeth{ParamSlots: 1, GFunction: isrInit}
	MethodSignatures["java/io/InputStreamReader.read()I"] = GMeth{ParamSlots: 0, GFunction: isrRead}
	MethodSignatures["java/io/InputStreamReader.ready()Z"] = GMeth{ParamSlots: 0, GFunction: isrReady}
	MethodSignatures["java/io/InputStreamReader.close()V"] = GMeth{ParamSlots: 0, GFunction: isrClose}
}

func isrInit(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	src, _ := params[1].(*object.ClassInstance)
	var raw []byte
	if src != nil {
		if v, ok := src.GetField("buf"); ok {
			if b, ok := v.Ref.([]byte); ok {
				raw = b
			} else if arr, ok := v.Ref.(*object.Array); ok && arr != nil {
				for _, e := range arr.Elements {
					raw = append(raw, byte(e.I))
				}
			}
		}
	}
	decoder := unicode.UTF8.NewDecoder()
	r := bufio.NewReader(transform.NewReader(bytes.NewReader(raw), decoder))
	recv.Fields["reader"] = wrapRef(r)
	return nil
}

func isrReader(recv *object.ClassInstance) *bufio.Reader {
	v, ok := recv.Fields["reader"]
	if !ok {
		return nil
	}
	r, _ := v.Ref.(*bufio.Reader)
	return r
}

func isrRead(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	r := isrReader(recv)
	if r == nil {
		return newGErr(excNames.IOException, "stream closed")
	}
	ru, _, err := r.ReadRune()
	if err == io.EOF {
		return int32(-1)
	}
	if err != nil {
		return newGErr(excNames.IOException, "%v", err)
	}
	return int32(ru)
}

func isrReady(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	r := isrReader(recv)
	if r == nil {
		return false
	}
	return r.Buffered() > 0
}

func isrClose(params []interface{}) interface{} {
	recv, _ := params[0].(*object.ClassInstance)
	delete(recv.Fields, "reader")
	return nil
}
