package column

import "github.com/wiseio/paratext/internal/errs"

// unknownBuilder is the initial state of every inferred column: no
// non-empty field has been seen yet, so nothing is known beyond a row
// count. The first non-empty field promotes it to NumericBuilder,
// CategoricalBuilder, or TextBuilder.
type unknownBuilder struct {
	opts Options
	rows int
}

func (b *unknownBuilder) Kind() Kind { return KindUnknown }
func (b *unknownBuilder) Len() int   { return b.rows }

func (b *unknownBuilder) Append(data []byte, wasQuoted bool, anomalies *errs.Anomalies) Builder {
	if len(data) == 0 {
		b.rows++
		return b
	}
	c := classifyNumeric(data)
	if c.ok {
		nb := newNumericBuilder(b.opts, b.rows, KindUnknown)
		return nb.Append(data, wasQuoted, anomalies)
	}
	cb := newCategoricalBuilder(b.opts, b.rows)
	return cb.Append(data, wasQuoted, anomalies)
}

// Fragment reports an all-missing column: semantically Unknown, but
// represented as a numeric fragment with one missing row per row seen so
// the frame assembler
// has something concrete to join and concatenate if every worker saw
// only empty values for this column.
func (b *unknownBuilder) Fragment() NumericFragment {
	missing := make([]bool, b.rows)
	for i := range missing {
		missing[i] = true
	}
	return NumericFragment{Kind: KindUnknown, Missing: missing, Ints: make([]int64, b.rows)}
}
