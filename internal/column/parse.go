package column

import (
	"bytes"
	"strconv"
)

// classified is the result of attempting to parse one field as a number.
type classified struct {
	kind    Kind
	intVal  int64
	u64Val  uint64
	isUnsig bool
	f64Val  float64
	ok      bool
}

// classifyNumeric attempts integer then float parses of data, trimming
// surrounding whitespace as the float grammar allows. Bool is not
// produced as a distinct classification; boolean-looking tokens ("0",
// "1") are realized as the narrowest integer kind like any other integer
// literal.
func classifyNumeric(data []byte) classified {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return classified{}
	}

	if trimmed[0] != '-' {
		if u, err := strconv.ParseUint(string(trimmed), 10, 64); err == nil {
			return classified{kind: minIntKind(int64(u), true), u64Val: u, isUnsig: true, ok: true}
		}
	}
	if i, err := strconv.ParseInt(string(trimmed), 10, 64); err == nil {
		return classified{kind: minIntKind(i, false), intVal: i, ok: true}
	}
	if f, err := strconv.ParseFloat(string(trimmed), 64); err == nil {
		return classified{kind: KindFloat64, f64Val: f, ok: true}
	}
	return classified{}
}
