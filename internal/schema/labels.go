package schema

import (
	"fmt"

	"github.com/wiseio/paratext/internal/column"
)

func semanticsLabel(s column.Semantics) (string, error) {
	switch s {
	case column.SemanticsNumeric:
		return "numeric", nil
	case column.SemanticsCategorical:
		return "categorical", nil
	case column.SemanticsText:
		return "text", nil
	default:
		return "", fmt.Errorf("schema: cannot force column to semantics %v", s)
	}
}

func labelSemantics(label string) (column.Semantics, error) {
	switch label {
	case "numeric":
		return column.SemanticsNumeric, nil
	case "categorical":
		return column.SemanticsCategorical, nil
	case "text":
		return column.SemanticsText, nil
	default:
		return column.SemanticsUnknown, fmt.Errorf("schema: unrecognized forced semantics label %q", label)
	}
}

var kindLabels = map[column.Kind]string{
	column.KindUnknown:     "unknown",
	column.KindBool:        "bool",
	column.KindUInt8:       "uint8",
	column.KindInt8:        "int8",
	column.KindUInt16:      "uint16",
	column.KindInt16:       "int16",
	column.KindUInt32:      "uint32",
	column.KindInt32:       "int32",
	column.KindUInt64:      "uint64",
	column.KindInt64:       "int64",
	column.KindFloat64:     "float64",
	column.KindCategorical: "categorical",
	column.KindText:        "text",
}

func kindLabel(k column.Kind) string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return "unknown"
}

func labelKind(label string) (column.Kind, error) {
	for k, l := range kindLabels {
		if l == label {
			return k, nil
		}
	}
	return column.KindUnknown, fmt.Errorf("schema: unrecognized kind label %q", label)
}
