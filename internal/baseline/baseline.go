// Package baseline implements degenerate, single-purpose scans that share
// the same byte-range planning as the full columnar loader without
// building any columns: counting records, copying a file into memory
// verbatim, and averaging each column's numeric fields. These exist to
// give a cheap, independently-checkable reference point when diagnosing
// whether the full loader's row or column counts look wrong.
package baseline

import (
	"bytes"
	"runtime"
	"sync"

	"github.com/wiseio/paratext/internal/chunk"
	"github.com/wiseio/paratext/internal/source"
)

func workerCount(size int64) int {
	n := runtime.NumCPU()
	if n > 16 {
		n = 16
	}
	const minChunk = 1024 * 1024
	if size/int64(n) < minChunk {
		n = 1
	}
	if n < 1 {
		n = 1
	}
	return n
}

// CountNewlines counts the number of data records in the file at path,
// assuming one header row. It mmaps the whole file and counts '\n' bytes
// in parallel byte ranges, matching boundary semantics with the full
// loader by sharing chunk.Plan rather than dividing the file naively.
func CountNewlines(path string) (int64, error) {
	src, err := source.Open(path, true)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	data, ok := src.Bytes()
	if !ok {
		return 0, nil
	}
	if len(data) == 0 {
		return 0, nil
	}

	n := workerCount(int64(len(data)))
	ranges, err := chunk.Plan(chunk.BytesSource{Data: data}, int64(len(data)), n, chunk.DefaultOptions())
	if err != nil {
		return 0, err
	}

	counts := make([]int64, len(ranges))
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, r chunk.Range) {
			defer wg.Done()
			counts[i] = int64(bytes.Count(data[r.Start:r.End], []byte{'\n'}))
		}(i, r)
	}
	wg.Wait()

	var total int64
	for _, c := range counts {
		total += c
	}
	if data[len(data)-1] != '\n' {
		total++
	}
	if total > 0 {
		total-- // header row
	}
	return total, nil
}
