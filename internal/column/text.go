package column

import "github.com/wiseio/paratext/internal/errs"

// TextBuilder accumulates a column that has escaped both numeric and
// categorical classification: one that overflowed max_levels or
// max_level_name_length, or whose fields are otherwise too varied. Text
// is the top of the lattice; once reached a column never demotes.
type TextBuilder struct {
	opts   Options
	values [][]byte
}

func newTextBuilder(opts Options, rows int) *TextBuilder {
	return &TextBuilder{opts: opts, values: make([][]byte, rows, rows+1)}
}

func (b *TextBuilder) Kind() Kind { return KindText }
func (b *TextBuilder) Len() int   { return len(b.values) }

func (b *TextBuilder) Append(data []byte, wasQuoted bool, anomalies *errs.Anomalies) Builder {
	if len(data) == 0 {
		b.values = append(b.values, nil)
		return b
	}
	b.values = append(b.values, append([]byte(nil), data...))
	return b
}

// Fragment returns the builder's finalized view.
func (b *TextBuilder) Fragment() TextFragment {
	return TextFragment{Values: b.values}
}

// TextFragment is one worker's finalized text column.
type TextFragment struct {
	Values [][]byte
}
