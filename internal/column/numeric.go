package column

import "github.com/wiseio/paratext/internal/errs"

// NumericBuilder accumulates a column inferred as an integer of some
// width, or Float64 once any field has forced a float promotion. Values
// are kept as int64/float64 internally regardless of the current Kind;
// Kind only records the narrowest lattice position observed so far, and
// is used to choose the output array's storage width at finalize time.
type NumericBuilder struct {
	opts    Options
	kind    Kind
	ints    []int64
	floats  []float64
	missing []bool
	isFloat bool
}

func newNumericBuilder(opts Options, rows int, kind Kind) *NumericBuilder {
	b := &NumericBuilder{
		opts:    opts,
		kind:    kind,
		ints:    make([]int64, rows, rows+1),
		missing: make([]bool, rows, rows+1),
	}
	for i := range b.missing {
		b.missing[i] = true
	}
	return b
}

func (b *NumericBuilder) Kind() Kind { return b.kind }
func (b *NumericBuilder) Len() int {
	if b.isFloat {
		return len(b.floats)
	}
	return len(b.ints)
}

func (b *NumericBuilder) Append(data []byte, wasQuoted bool, anomalies *errs.Anomalies) Builder {
	if len(data) == 0 {
		b.appendMissing()
		return b
	}
	c := classifyNumeric(data)
	if !c.ok {
		return b.promoteToCategorical(data, anomalies)
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

func (b *NumericBuilder) appendMissing() {
	b.missing = append(b.missing, true)
	if b.isFloat {
		b.floats = append(b.floats, 0)
	} else {
		b.ints = append(b.ints, 0)
	}
}

func (b *NumericBuilder) ensureFloat() {
	if b.isFloat {
		return
	}
	b.floats = make([]float64, len(b.ints))
	for i, v := range b.ints {
		b.floats[i] = float64(v)
	}
	b.ints = nil
	b.isFloat = true
}

// promoteToCategorical hands every row accumulated so far, re-stringified
// via each value's canonical literal, to a fresh CategoricalBuilder, then
// appends the field that forced the promotion.
func (b *NumericBuilder) promoteToCategorical(data []byte, anomalies *errs.Anomalies) Builder {
	cb := newCategoricalBuilder(b.opts, 0)
	for i := 0; i < b.Len(); i++ {
		if b.missing[i] {
			cb.appendMissing()
			continue
		}
		cb.appendLiteral(b.literalAt(i))
	}
	return cb.Append(data, false, anomalies)
}

func (b *NumericBuilder) literalAt(i int) []byte {
	if b.isFloat {
		return formatFloat(b.floats[i])
	}
	return formatInt(b.ints[i])
}

// Fragment returns the builder's finalized view: missing mask plus either
// an int64 or float64 value array (the frame assembler narrows further
// when casting to the column's final joined Kind).
func (b *NumericBuilder) Fragment() NumericFragment {
	return NumericFragment{
		Kind:    b.kind,
		Missing: b.missing,
		Ints:    b.ints,
		Floats:  b.floats,
		IsFloat: b.isFloat,
	}
}

// NumericFragment is one worker's finalized numeric column.
type NumericFragment struct {
	Kind    Kind
	Missing []bool
	Ints    []int64
	Floats  []float64
	IsFloat bool
}
