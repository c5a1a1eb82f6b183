package paratext

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/wiseio/paratext/internal/chunk"
	"github.com/wiseio/paratext/internal/column"
	"github.com/wiseio/paratext/internal/errs"
	"github.com/wiseio/paratext/internal/frame"
	"github.com/wiseio/paratext/internal/schema"
	"github.com/wiseio/paratext/internal/source"
	"github.com/wiseio/paratext/internal/tokenizer"
)

// Load ingests path and returns a fully assembled, in-memory columnar
// Frame. Column names are determined once, up front, from the file's
// first record (the header row, unless opts.NoHeader); the file is then
// split into opts.NumThreads (or a default) byte ranges, each worker
// tokenizes and infers types over its own range independently (skipping
// the header record if its range starts at offset zero), and the
// per-worker column fragments are joined into one Frame.
func Load(path string, opts Options) (*Frame, error) {
	opts = opts.normalize()
	runID := source.NewRunID().String()

	var profile *schema.Profile
	if opts.UseSchemaProfile {
		p, err := schema.Load(path)
		if err != nil {
			return nil, fmt.Errorf("paratext: loading schema profile: %w", err)
		}
		profile = p
	}

	src, err := source.Open(path, opts.Mmap)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	size := src.Size()
	if size == 0 {
		return &Frame{inner: &frame.Frame{}}, nil
	}

	names, err := resolveColumnNames(src, opts)
	if err != nil {
		return nil, err
	}

	recordSource, err := newRecordSource(src)
	if err != nil {
		return nil, err
	}

	chunkOpts := chunk.DefaultOptions()
	chunkOpts.BlockSize = opts.BlockSize
	chunkOpts.AllowQuotedNewlines = opts.AllowQuotedNewlines

	ranges, err := chunk.Plan(recordSource, size, opts.NumThreads, chunkOpts)
	if err != nil {
		return nil, &errs.LoadError{RunID: runID, Worker: -1, Cause: err}
	}

	var reporter *progressReporter
	if opts.Verbose {
		reporter = newProgressReporter(runID, len(ranges))
		reporter.start()
		defer reporter.stop()
	}

	results := make([]workerResult, len(ranges))
	var aborted atomic.Bool
	var wg sync.WaitGroup

	for w, r := range ranges {
		wg.Add(1)
		go func(w int, r chunk.Range) {
			defer wg.Done()
			data, rerr := readRange(src, w, r)
			if rerr != nil {
				aborted.Store(true)
				results[w].err = &errs.LoadError{RunID: runID, Worker: w, Offset: r.Start, Cause: rerr}
				return
			}
			skipHeader := r.Start == 0 && !opts.NoHeader
			res := runWorker(data, names, skipHeader, opts, profile)
			if aborted.Load() {
				return
			}
			results[w] = res
			if reporter != nil {
				reporter.recordRows(w, res.rows)
			}
		}(w, r)
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
	}

	perWorker := make([]frame.WorkerColumns, len(results))
	for w, r := range results {
		perWorker[w] = frame.WorkerColumns(r.builders)
	}

	assembled, err := frame.AssembleFrame(names, perWorker)
	if err != nil {
		return nil, err
	}

	anomalies := make(map[string]errs.Anomalies, len(names)+1)
	for i, name := range names {
		var total errs.Anomalies
		for _, r := range results {
			if i < len(r.anomalies) {
				total.Merge(r.anomalies[i])
			}
		}
		anomalies[name] = total
	}
	var recordLevel errs.Anomalies
	for _, r := range results {
		recordLevel.Merge(r.recordLevel)
	}
	if recordLevel != (errs.Anomalies{}) {
		anomalies[""] = recordLevel
	}

	if profile != nil {
		for _, c := range assembled.Columns {
			profile.RecordInferredKind(c.Name, c.Kind)
			if c.Semantics == column.SemanticsCategorical {
				if err := profile.SaveDictionary(c.Name, c.Dict); err != nil {
					return nil, fmt.Errorf("paratext: saving schema profile dictionary for %q: %w", c.Name, err)
				}
			}
		}
		for name, s := range opts.forced {
			if err := profile.ForceSemantics(name, s); err != nil {
				return nil, fmt.Errorf("paratext: recording forced semantics for %q: %w", name, err)
			}
		}
		if err := profile.Save(); err != nil {
			return nil, fmt.Errorf("paratext: saving schema profile: %w", err)
		}
	}

	return &Frame{inner: assembled, Anomalies: anomalies}, nil
}

// newRecordSource adapts a source.Source into chunk.RecordSource for
// boundary resolution, using the whole-file slice when mmap-backed or a
// dedicated positioned-read handle otherwise.
func newRecordSource(src source.Source) (chunk.RecordSource, error) {
	if data, ok := src.Bytes(); ok {
		return chunk.BytesSource{Data: data}, nil
	}
	r, err := src.Reader(-1)
	if err != nil {
		return nil, err
	}
	return chunk.ReaderSource{R: r}, nil
}

// readRange materializes one worker's byte range, either as a slice into
// the shared mmap or via its own positioned-read handle into a fresh
// buffer.
func readRange(src source.Source, w int, r chunk.Range) ([]byte, error) {
	if data, ok := src.Bytes(); ok {
		return data[r.Start:r.End], nil
	}
	reader, err := src.Reader(w)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	buf := make([]byte, r.Len())
	n, err := reader.ReadAt(buf, r.Start)
	if err != nil && n < len(buf) {
		return nil, err
	}
	return buf[:n], nil
}

// resolveColumnNames peeks the file's first record — from a small prefix
// read, not the whole file — to determine column names: the record's
// fields verbatim when a header is present, or synthesized column_0,
// column_1, ... names sized to its field count when opts.NoHeader.
func resolveColumnNames(src source.Source, opts Options) ([]string, error) {
	const peekSize = 1 << 20 // 1 MiB: enough to contain any reasonable header row
	size := src.Size()
	n := peekSize
	if int64(n) > size {
		n = int(size)
	}

	var prefix []byte
	if data, ok := src.Bytes(); ok {
		prefix = data[:n]
	} else {
		reader, err := src.Reader(0)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		buf := make([]byte, n)
		read, err := reader.ReadAt(buf, 0)
		if err != nil && read < len(buf) {
			return nil, err
		}
		prefix = buf[:read]
	}

	tok := tokenizer.New(tokenizer.Options{Separator: ',', ValidateUTF8In: opts.ValidateUTF8In})
	var first []string
	found := false
	_, err := tok.Run(prefix, func(row int, fields []tokenizer.Field) error {
		if found {
			return nil
		}
		first = make([]string, len(fields))
		for i, f := range fields {
			first[i] = string(f.Data)
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("paratext: could not find a complete first record within the first %d bytes", n)
	}

	if opts.NoHeader {
		names := make([]string, len(first))
		for i := range names {
			names[i] = fmt.Sprintf("column_%d", i)
		}
		return names, nil
	}
	return first, nil
}

type workerResult struct {
	builders []column.Builder
	// anomalies holds per-column counters; recordLevel holds counters the
	// tokenizer could not attribute to a single column (e.g. a malformed
	// quote sequence spanning a field boundary).
	anomalies   []errs.Anomalies
	recordLevel errs.Anomalies
	rows        int
	err         error
}
