package paratext

import (
	"fmt"

	"github.com/wiseio/paratext/internal/errs"
	"github.com/wiseio/paratext/internal/frame"
)

// Frame is the fully assembled result of one Load call: a set of named,
// typed columns all sharing the same row count.
type Frame struct {
	inner     *frame.Frame
	Anomalies map[string]errs.Anomalies
}

// NumColumns returns the number of columns in the frame.
func (f *Frame) NumColumns() int { return len(f.inner.Columns) }

// ColumnInfo returns column i's name and coarse semantics without
// touching its data.
func (f *Frame) ColumnInfo(i int) (name string, kind Semantics, err error) {
	if i < 0 || i >= len(f.inner.Columns) {
		return "", SemanticsUnknown, fmt.Errorf("paratext: column index %d out of range", i)
	}
	c := f.inner.Columns[i]
	return c.Name, c.Semantics, nil
}

// Column is one column's transferred data. Exactly one of Ints/Floats,
// Codes, or Texts is populated depending on Semantics.
type Column struct {
	Name      string
	Semantics Semantics

	Missing []bool
	Ints    []int64
	Floats  []float64
	IsFloat bool

	Codes  []uint32
	Levels [][]byte

	Texts [][]byte
}

// Column transfers column i's data to the caller, expanding any
// categorical column to its plain representation (codes plus levels);
// use Cursor for the forget/expand streaming contract instead when
// transferring every column in order.
func (f *Frame) Column(i int) (Column, error) {
	if i < 0 || i >= len(f.inner.Columns) {
		return Column{}, fmt.Errorf("paratext: column index %d out of range", i)
	}
	c := f.inner.Columns[i]
	out := Column{Name: c.Name, Semantics: c.Semantics, Missing: c.Missing, Ints: c.Ints, Floats: c.Floats, IsFloat: c.IsFloat, Texts: c.Texts}
	if c.Semantics == SemanticsCategorical && c.Dict != nil {
		out.Codes = make([]uint32, len(c.Codes))
		for i, code := range c.Codes {
			out.Codes[i] = uint32(code)
		}
		out.Levels = c.Dict.Levels()
	}
	return out, nil
}

// Cursor returns a lazy column-transfer cursor over the frame: forget
// frees each column's backing storage as soon as it is emitted, and
// expand materializes categorical columns as text instead of codes plus
// levels.
func (f *Frame) Cursor(forgetColumns, expandCategoricals bool) *frame.Cursor {
	return frame.NewCursor(f.inner, forgetColumns, expandCategoricals)
}

// Levels returns column i's categorical dictionary, ordered by first
// appearance, or nil if the column is not Categorical.
func (f *Frame) Levels(i int) ([][]byte, error) {
	if i < 0 || i >= len(f.inner.Columns) {
		return nil, fmt.Errorf("paratext: column index %d out of range", i)
	}
	c := f.inner.Columns[i]
	if c.Semantics != SemanticsCategorical || c.Dict == nil {
		return nil, nil
	}
	return c.Dict.Levels(), nil
}

// ForgetColumn releases column i's backing storage without transferring
// it, freeing memory for a column the caller has decided not to read.
func (f *Frame) ForgetColumn(i int) {
	if i < 0 || i >= len(f.inner.Columns) {
		return
	}
	c := f.inner.Columns[i]
	c.Missing = nil
	c.Ints = nil
	c.Floats = nil
	c.Codes = nil
	c.Dict = nil
	c.Texts = nil
}
