// Package frame merges per-worker column fragments into unified,
// in-memory columns: joining inferred types, unifying categorical
// dictionaries, and concatenating storage in worker order.
package frame

import (
	"strconv"

	"github.com/wiseio/paratext/internal/column"
	"github.com/wiseio/paratext/internal/dictionary"
	"github.com/wiseio/paratext/internal/errs"
)

func formatIntForText(v int64) string     { return strconv.FormatInt(v, 10) }
func formatFloatForText(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Column is the assembled, final representation of one column across
// every worker.
type Column struct {
	Name      string
	Semantics column.Semantics
	Kind      column.Kind

	// Numeric storage (Semantics == SemanticsNumeric or SemanticsUnknown).
	Missing []bool
	Ints    []int64
	Floats  []float64
	IsFloat bool

	// Categorical storage (Semantics == SemanticsCategorical).
	Codes []dictionary.Code
	Dict  *dictionary.Dictionary

	// Text storage (Semantics == SemanticsText).
	Texts [][]byte
}

// Len returns the column's row count.
func (c *Column) Len() int {
	switch c.Semantics {
	case column.SemanticsCategorical:
		return len(c.Codes)
	case column.SemanticsText:
		return len(c.Texts)
	default:
		if c.IsFloat {
			return len(c.Floats)
		}
		return len(c.Ints)
	}
}

// Assemble joins per-worker fragments for a single column (in
// worker-index order) into one final Column named name.
func Assemble(name string, perWorker []column.Builder) (*Column, error) {
	if len(perWorker) == 0 {
		return &Column{Name: name, Semantics: column.SemanticsUnknown}, nil
	}

	finalKind := column.KindUnknown
	for _, b := range perWorker {
		finalKind = column.Join(finalKind, b.Kind())
	}

	out := &Column{Name: name, Kind: finalKind, Semantics: finalKind.Semantics()}

	switch out.Semantics {
	case column.SemanticsCategorical:
		out.Dict = dictionary.New(256)
		for _, b := range perWorker {
			frag := upgradeToCategorical(b)
			mapping := dictionary.Unify(out.Dict, frag.Dict)
			for _, code := range frag.Codes {
				out.Codes = append(out.Codes, mapping[code])
			}
		}
	case column.SemanticsText:
		for _, b := range perWorker {
			out.Texts = append(out.Texts, upgradeToText(b)...)
		}
	default: // Numeric or Unknown
		anyFloat := false
		for _, b := range perWorker {
			if numericFragmentOf(b).IsFloat {
				anyFloat = true
			}
		}
		out.IsFloat = anyFloat
		for _, b := range perWorker {
			frag := numericFragmentOf(b)
			out.Missing = append(out.Missing, frag.Missing...)
			if anyFloat {
				if frag.IsFloat {
					out.Floats = append(out.Floats, frag.Floats...)
				} else {
					for _, v := range frag.Ints {
						out.Floats = append(out.Floats, float64(v))
					}
				}
			} else {
				out.Ints = append(out.Ints, frag.Ints...)
			}
		}
	}

	return out, nil
}

// VerifyRowCounts checks that every column in cols has the same total
// row count, returning a RowCountMismatchError naming the offenders
// otherwise.
func VerifyRowCounts(cols []*Column) error {
	if len(cols) == 0 {
		return nil
	}
	want := cols[0].Len()
	counts := make(map[string]int64, len(cols))
	mismatched := false
	for _, c := range cols {
		n := c.Len()
		counts[c.Name] = int64(n)
		if n != want {
			mismatched = true
		}
	}
	if mismatched {
		return &errs.RowCountMismatchError{Counts: counts}
	}
	return nil
}

func numericFragmentOf(b column.Builder) column.NumericFragment {
	switch v := b.(type) {
	case *column.NumericBuilder:
		return v.Fragment()
	case interface{ Fragment() column.NumericFragment }:
		return v.Fragment()
	default:
		return column.NumericFragment{}
	}
}

func upgradeToCategorical(b column.Builder) column.CategoricalFragment {
	switch v := b.(type) {
	case *column.CategoricalBuilder:
		return v.Fragment()
	case *column.NumericBuilder:
		return numericToCategorical(v.Fragment())
	case *column.TextBuilder:
		// Text never demotes; reaching here means every worker's join
		// landed on Categorical while one worker individually produced
		// Text, which cannot happen since Join never narrows. Guard
		// defensively by re-expanding as a single-worker dictionary.
		return textToCategorical(v.Fragment())
	default:
		return column.CategoricalFragment{Dict: dictionary.New(1), Codes: make([]dictionary.Code, b.Len())}
	}
}

func upgradeToText(b column.Builder) [][]byte {
	switch v := b.(type) {
	case *column.TextBuilder:
		return v.Fragment().Values
	case *column.CategoricalBuilder:
		frag := v.Fragment()
		out := make([][]byte, len(frag.Codes))
		for i, c := range frag.Codes {
			out[i] = append([]byte(nil), frag.Dict.Level(c)...)
		}
		return out
	case *column.NumericBuilder:
		frag := v.Fragment()
		n := len(frag.Missing)
		out := make([][]byte, n)
		for i := 0; i < n; i++ {
			if frag.Missing[i] {
				continue
			}
			if frag.IsFloat {
				out[i] = []byte(formatFloatForText(frag.Floats[i]))
			} else {
				out[i] = []byte(formatIntForText(frag.Ints[i]))
			}
		}
		return out
	default:
		return make([][]byte, b.Len())
	}
}

func numericToCategorical(frag column.NumericFragment) column.CategoricalFragment {
	d := dictionary.New(len(frag.Missing))
	codes := make([]dictionary.Code, len(frag.Missing))
	for i := range codes {
		if frag.Missing[i] {
			continue
		}
		var lit string
		if frag.IsFloat {
			lit = formatFloatForText(frag.Floats[i])
		} else {
			lit = formatIntForText(frag.Ints[i])
		}
		code, _ := d.Intern([]byte(lit))
		codes[i] = code
	}
	return column.CategoricalFragment{Dict: d, Codes: codes}
}

func textToCategorical(frag column.TextFragment) column.CategoricalFragment {
	d := dictionary.New(len(frag.Values))
	codes := make([]dictionary.Code, len(frag.Values))
	for i, v := range frag.Values {
		code, _ := d.Intern(v)
		codes[i] = code
	}
	return column.CategoricalFragment{Dict: d, Codes: codes}
}
