package paratext

import (
	"github.com/wiseio/paratext/internal/column"
	"github.com/wiseio/paratext/internal/errs"
	"github.com/wiseio/paratext/internal/schema"
	"github.com/wiseio/paratext/internal/tokenizer"
)

// runWorker tokenizes one worker's byte range and accumulates one
// column.Builder per name, in order. skipHeader drops the first emitted
// record (used only by the worker whose range starts at byte offset
// zero, when a header is present).
func runWorker(data []byte, names []string, skipHeader bool, opts Options, profile *schema.Profile) workerResult {
	builders := make([]column.Builder, len(names))
	anomalies := make([]errs.Anomalies, len(names))
	for i, name := range names {
		builders[i] = column.NewBuilder(opts.columnOptions(name, profile))
	}

	tok := tokenizer.New(tokenizer.Options{
		Separator:           ',',
		AllowQuotedNewlines: opts.AllowQuotedNewlines,
		ConvertNullToSpace:  opts.ConvertNullToSpace,
		ValidateUTF8In:      opts.ValidateUTF8In,
	})

	rows := 0
	seenHeader := !skipHeader
	n, err := tok.Run(data, func(row int, fields []tokenizer.Field) error {
		if !seenHeader {
			seenHeader = true
			return nil
		}
		rows++
		for i := range builders {
			if i >= len(fields) {
				builders[i] = builders[i].Append(nil, false, &anomalies[i])
				continue
			}
			f := fields[i]
			builders[i] = builders[i].Append(f.Data, f.WasQuoted, &anomalies[i])
		}
		if len(fields) != len(builders) {
			for i := range anomalies {
				anomalies[i].FieldCountAnomaly++
			}
		}
		return nil
	})
	if err != nil {
		return workerResult{err: err}
	}
	_ = n

	return workerResult{builders: builders, anomalies: anomalies, recordLevel: tok.Anomalies, rows: rows}
}
