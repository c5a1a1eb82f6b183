package baseline

import (
	"strconv"
	"sync"

	"github.com/wiseio/paratext/internal/chunk"
	"github.com/wiseio/paratext/internal/source"
	"github.com/wiseio/paratext/internal/tokenizer"
)

// ColumnAverage is one column's running numeric mean: sum and count of
// cells that parsed as a float64, with no further type inference.
type ColumnAverage struct {
	Sum   float64
	Count int64
}

// Mean returns Sum/Count, or 0 if no cell in this column ever parsed.
func (c ColumnAverage) Mean() float64 {
	if c.Count == 0 {
		return 0
	}
	return c.Sum / float64(c.Count)
}

// AverageColumns scans path in parallel byte ranges and accumulates a
// running float64 sum per column position, skipping cells that don't
// parse as a number and skipping the header row. It never classifies a
// column's type or promotes anything — the cheapest possible per-column
// numeric signal, useful for sanity-checking the full loader's inferred
// numeric columns against an independent pass.
func AverageColumns(path string, allowQuotedNewlines bool) ([]ColumnAverage, error) {
	src, err := source.Open(path, true)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, ok := src.Bytes()
	if !ok || len(data) == 0 {
		return nil, nil
	}

	chunkOpts := chunk.DefaultOptions()
	chunkOpts.AllowQuotedNewlines = allowQuotedNewlines
	n := workerCount(int64(len(data)))
	ranges, err := chunk.Plan(chunk.BytesSource{Data: data}, int64(len(data)), n, chunkOpts)
	if err != nil {
		return nil, err
	}

	perWorker := make([][]ColumnAverage, len(ranges))
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, r chunk.Range) {
			defer wg.Done()
			perWorker[i] = scanRangeForAverages(data[r.Start:r.End], i == 0, allowQuotedNewlines)
		}(i, r)
	}
	wg.Wait()

	var merged []ColumnAverage
	for _, cols := range perWorker {
		for i, c := range cols {
			if i >= len(merged) {
				merged = append(merged, ColumnAverage{})
			}
			merged[i].Sum += c.Sum
			merged[i].Count += c.Count
		}
	}
	return merged, nil
}

func scanRangeForAverages(data []byte, skipFirstRecord, allowQuotedNewlines bool) []ColumnAverage {
	var cols []ColumnAverage
	tokOpts := tokenizer.DefaultOptions()
	tokOpts.AllowQuotedNewlines = allowQuotedNewlines
	tok := tokenizer.New(tokOpts)
	row := 0
	_, _ = tok.Run(data, func(rowIdx int, fields []tokenizer.Field) error {
		if skipFirstRecord && row == 0 {
			row++
			return nil
		}
		row++
		for i, f := range fields {
			if i >= len(cols) {
				cols = append(cols, ColumnAverage{})
			}
			v, err := strconv.ParseFloat(string(f.Data), 64)
			if err != nil {
				continue
			}
			cols[i].Sum += v
			cols[i].Count++
		}
		return nil
	})
	return cols
}
