package frame

import (
	"github.com/wiseio/paratext/internal/column"
	"github.com/wiseio/paratext/internal/errs"
)

// Frame is the fully assembled in-memory result of one load: every
// column joined, unified, and concatenated across workers.
type Frame struct {
	Columns []*Column
}

// ColumnNames returns the frame's column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

// ByName returns the column named name, or nil if absent.
func (f *Frame) ByName(name string) *Column {
	for _, c := range f.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// WorkerColumns is one worker's finished builders, indexed by column
// position (column alignment is positional: every worker produces
// builders in the same column order, taken from worker 0's header).
type WorkerColumns []column.Builder

// AssembleFrame joins every column across all workers' finished builders
// into a single Frame, then verifies every column's row count agrees.
func AssembleFrame(names []string, perWorker []WorkerColumns) (*Frame, error) {
	f := &Frame{Columns: make([]*Column, len(names))}
	for colIdx, name := range names {
		builders := make([]column.Builder, len(perWorker))
		for w, cols := range perWorker {
			if colIdx >= len(cols) {
				builders[w] = &emptyBuilder{}
				continue
			}
			builders[w] = cols[colIdx]
		}
		col, err := Assemble(name, builders)
		if err != nil {
			return nil, err
		}
		f.Columns[colIdx] = col
	}
	if err := VerifyRowCounts(f.Columns); err != nil {
		return nil, err
	}
	return f, nil
}

// emptyBuilder stands in for a worker that, by construction, should
// never actually be missing a column (every worker parses the same
// header); it exists purely so AssembleFrame degrades to a zero-length
// contribution instead of panicking if that invariant is ever violated.
type emptyBuilder struct{}

func (emptyBuilder) Kind() column.Kind { return column.KindUnknown }
func (emptyBuilder) Len() int          { return 0 }
func (b emptyBuilder) Append(data []byte, wasQuoted bool, anomalies *errs.Anomalies) column.Builder {
	return b
}
