package column

import "github.com/wiseio/paratext/internal/errs"

// forcedNumericBuilder pins a column to Numeric: inference never runs,
// and a field that fails to parse is recorded as missing plus a
// ForcedTypeParseFailure anomaly instead of promoting the column.
type forcedNumericBuilder struct {
	*NumericBuilder
}

func (b *forcedNumericBuilder) Append(data []byte, wasQuoted bool, anomalies *errs.Anomalies) Builder {
	if len(data) == 0 {
		b.appendMissing()
		return b
	}
	c := classifyNumeric(data)
	if !c.ok {
		anomalies.ForcedTypeParseFailure++
		b.appendMissing()
		return b
	}
	if c.kind == KindFloat64 {
		b.ensureFloat()
		b.floats = append(b.floats, c.f64Val)
		b.missing = append(b.missing, false)
		b.kind = KindFloat64
		return b
	}
	val := c.intVal
	if c.isUnsig {
		val = int64(c.u64Val)
	}
	b.kind = widenNumeric(b.kind, c.kind)
	if b.isFloat {
		b.floats = append(b.floats, float64(val))
	} else {
		b.ints = append(b.ints, val)
	}
	b.missing = append(b.missing, false)
	return b
}

func newForcedBuilder(opts Options) Builder {
	switch opts.ForcedSemantics {
	case SemanticsNumeric:
		return &forcedNumericBuilder{NumericBuilder: newNumericBuilder(opts, 0, KindUnknown)}
	case SemanticsCategorical:
		return newCategoricalBuilder(opts, 0)
	case SemanticsText:
		return newTextBuilder(opts, 0)
	default:
		return &unknownBuilder{opts: opts}
	}
}
