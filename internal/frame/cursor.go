package frame

import "github.com/wiseio/paratext/internal/column"

// Cursor yields a Frame's columns one at a time, optionally freeing each
// column's backing storage as soon as it is emitted (forget) and
// optionally expanding categorical columns to text before emission
// (expand), matching the column-transfer contract: callers that forget
// keep peak memory proportional to one column rather than the whole
// frame.
type Cursor struct {
	frame  *Frame
	i      int
	forget bool
	expand bool
}

// NewCursor returns a Cursor over f's columns in their declared order.
func NewCursor(f *Frame, forget, expand bool) *Cursor {
	return &Cursor{frame: f, forget: forget, expand: expand}
}

// Emitted is one transferred column: its name, semantics, and data.
// Levels is non-nil only for a categorical column transferred without
// expand; Texts holds the data for both Text columns and expanded
// Categorical columns.
type Emitted struct {
	Name      string
	Semantics column.Semantics
	Kind      column.Kind

	Missing []bool
	Ints    []int64
	Floats  []float64
	IsFloat bool

	Codes  []uint32
	Levels [][]byte

	Texts [][]byte
}

// Next returns the next column, or (nil, false) once every column has
// been emitted.
func (c *Cursor) Next() (*Emitted, bool) {
	if c.i >= len(c.frame.Columns) {
		return nil, false
	}
	col := c.frame.Columns[c.i]
	c.i++

	e := &Emitted{Name: col.Name, Semantics: col.Semantics, Kind: col.Kind}

	switch col.Semantics {
	case column.SemanticsCategorical:
		if c.expand {
			e.Semantics = column.SemanticsText
			e.Texts = make([][]byte, len(col.Codes))
			for i, code := range col.Codes {
				e.Texts[i] = col.Dict.Level(code)
			}
		} else {
			e.Codes = make([]uint32, len(col.Codes))
			for i, code := range col.Codes {
				e.Codes[i] = uint32(code)
			}
			e.Levels = col.Dict.Levels()
		}
	case column.SemanticsText:
		e.Texts = col.Texts
	default:
		e.Missing = col.Missing
		e.Ints = col.Ints
		e.Floats = col.Floats
		e.IsFloat = col.IsFloat
	}

	if c.forget {
		col.Missing = nil
		col.Ints = nil
		col.Floats = nil
		col.Codes = nil
		col.Dict = nil
		col.Texts = nil
	}

	return e, true
}

// Remaining reports how many columns have not yet been emitted.
func (c *Cursor) Remaining() int { return len(c.frame.Columns) - c.i }
