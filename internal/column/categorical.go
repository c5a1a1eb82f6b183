package column

import (
	"strconv"

	"github.com/wiseio/paratext/internal/dictionary"
	"github.com/wiseio/paratext/internal/errs"
)

// CategoricalBuilder accumulates a column whose fields do not all parse
// as numbers: each distinct string is interned once into a worker-local
// Dictionary, and rows are stored as dictionary codes.
type CategoricalBuilder struct {
	opts  Options
	dict  *dictionary.Dictionary
	codes []dictionary.Code
}

func newCategoricalBuilder(opts Options, rows int) *CategoricalBuilder {
	b := &CategoricalBuilder{
		opts:  opts,
		dict:  dictionary.New(64),
		codes: make([]dictionary.Code, rows, rows+1),
	}
	for _, level := range opts.SeedLevels {
		b.dict.Intern(level)
	}
	return b
}

func (b *CategoricalBuilder) Kind() Kind { return KindCategorical }
func (b *CategoricalBuilder) Len() int   { return len(b.codes) }

func (b *CategoricalBuilder) appendMissing() {
	b.codes = append(b.codes, 0)
}

func (b *CategoricalBuilder) appendLiteral(s []byte) {
	// Seeding from already-accepted numeric literals is not checked
	// against MaxLevels or MaxLevelNameLength; the level count is checked
	// again when the field that triggered the promotion is appended.
	code, _ := b.dict.Intern(s)
	b.codes = append(b.codes, code)
}

func (b *CategoricalBuilder) Append(data []byte, wasQuoted bool, anomalies *errs.Anomalies) Builder {
	if len(data) == 0 {
		b.appendMissing()
		return b
	}
	// MaxLevels of 0 is a deliberate configuration (forces every
	// categorical column to Text on its first distinct value), not
	// "unset" — DefaultOptions is the only place that supplies 10000.
	maxLevels := b.opts.MaxLevels
	maxLen := b.opts.MaxLevelNameLength
	if maxLen <= 0 {
		maxLen = 255
	}
	if len(data) > maxLen {
		anomalies.CategoricalOverflow = true
		return b.promoteToText().Append(data, wasQuoted, anomalies)
	}
	code, isNew := b.dict.Intern(data)
	if isNew && b.dict.Len() > maxLevels {
		anomalies.CategoricalOverflow = true
		return b.promoteToText().Append(data, wasQuoted, anomalies)
	}
	b.codes = append(b.codes, code)
	return b
}

// promoteToText expands every accumulated code back to its string value
// and hands them to a fresh TextBuilder.
func (b *CategoricalBuilder) promoteToText() *TextBuilder {
	tb := newTextBuilder(b.opts, 0)
	for _, c := range b.codes {
		tb.values = append(tb.values, append([]byte(nil), b.dict.Level(c)...))
	}
	return tb
}

// Fragment returns the builder's finalized view.
func (b *CategoricalBuilder) Fragment() CategoricalFragment {
	return CategoricalFragment{Dict: b.dict, Codes: b.codes}
}

// CategoricalFragment is one worker's finalized categorical column.
type CategoricalFragment struct {
	Dict  *dictionary.Dictionary
	Codes []dictionary.Code
}

func formatInt(v int64) []byte {
	return []byte(strconv.FormatInt(v, 10))
}

func formatFloat(v float64) []byte {
	return []byte(strconv.FormatFloat(v, 'g', -1, 64))
}
