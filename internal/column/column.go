// Package column implements per-worker typed column builders and the
// monotone type-promotion lattice that drives inference as fields arrive.
package column

import "github.com/wiseio/paratext/internal/errs"

// Kind is a position in the promotion lattice.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindBool
	KindUInt8
	KindInt8
	KindUInt16
	KindInt16
	KindUInt32
	KindInt32
	KindUInt64
	KindInt64
	KindFloat64
	KindCategorical
	KindText
)

// Semantics is the coarse public type a final column carries: the last
// three lattice positions plus Unknown for all-empty columns.
type Semantics uint8

const (
	SemanticsUnknown Semantics = iota
	SemanticsNumeric
	SemanticsCategorical
	SemanticsText
)

// Semantics maps a Kind onto its coarse column semantics.
func (k Kind) Semantics() Semantics {
	switch k {
	case KindUnknown:
		return SemanticsUnknown
	case KindCategorical:
		return SemanticsCategorical
	case KindText:
		return SemanticsText
	default:
		return SemanticsNumeric
	}
}

// IsNumeric reports whether k is one of the numeric lattice positions
// (including Float64, excluding Categorical/Text/Unknown).
func (k Kind) IsNumeric() bool {
	return k >= KindBool && k <= KindFloat64
}

// IsInteger reports whether k is an integer lattice position.
func (k Kind) IsInteger() bool {
	return k >= KindBool && k <= KindInt64
}

// Options configures a worker's column builders.
type Options struct {
	MaxLevels          int
	MaxLevelNameLength int
	// ForcedSemantics pins the column's semantics; inference is skipped
	// and non-parseable cells under a forced numeric column are recorded
	// as missing plus a ForcedTypeParseFailure anomaly.
	ForcedSemantics Semantics
	ForcedSet       bool
	ExpectedName    string
	// SeedLevels, when non-empty, is interned into a new CategoricalBuilder
	// before any row data arrives, in order, so this worker's dictionary
	// codes match a previously persisted dictionary (internal/schema's
	// profile cache) instead of being renumbered from scratch.
	SeedLevels [][]byte
}

// DefaultOptions returns the default categorical escalation limits:
// 10,000 distinct levels and 255-byte level names.
func DefaultOptions() Options {
	return Options{MaxLevels: 10000, MaxLevelNameLength: 255}
}

// Builder accumulates one column's worth of fields for one worker. Append
// may return a different Builder than the receiver when the column's
// current type can no longer represent the new field; callers must
// replace their reference with the returned value.
type Builder interface {
	Kind() Kind
	Len() int
	// Append consumes one field's raw bytes (already sanitized by the
	// tokenizer) and returns the builder to use for subsequent fields —
	// itself, unless this field forced a promotion.
	Append(data []byte, wasQuoted bool, anomalies *errs.Anomalies) Builder
}

// NewBuilder returns the initial builder for a column: Unknown unless
// opts pins a forced kind.
func NewBuilder(opts Options) Builder {
	if opts.ForcedSet {
		return newForcedBuilder(opts)
	}
	return &unknownBuilder{opts: opts}
}
