package chunk

import (
	"bytes"
	"fmt"

	"github.com/wiseio/paratext/internal/errs"
)

// resolveUnquoted advances hint to the byte just past the next newline,
// scanning forward from hint. This is safe whenever the input contains no
// quoted fields spanning a newline: every '\n' is a genuine record
// terminator, so the byte after it starts a record.
func resolveUnquoted(data RecordSource, hint, size int64) (int64, error) {
	if hint >= size {
		return size, nil
	}
	const window = 64 * 1024
	buf := make([]byte, window)
	pos := hint
	for pos < size {
		n, err := data.ReadWindow(pos, buf)
		if err != nil {
			return 0, fmt.Errorf("%w: scanning for record boundary at %d: %v", errs.ErrIO, pos, err)
		}
		if n == 0 {
			break
		}
		if idx := bytes.IndexByte(buf[:n], '\n'); idx >= 0 {
			return pos + int64(idx) + 1, nil
		}
		pos += int64(n)
	}
	// No newline found before the end of input: this worker's range
	// yields entirely to its left neighbor.
	return size, nil
}

// resolveQuoted advances hint to a record boundary that survives a
// quote-parity check: starting from hint, it walks forward tracking
// whether it is inside an open quoted field, and only commits to a
// newline as a boundary once an even number of quote characters have been
// seen since the last committed boundary (the "widow/orphan" ambiguity
// check — a lone leading quote byte at the start of the scanned window
// cannot by itself be classified as opening or closing a field). The walk
// is bounded by opts.MaxReinforcementBlocks*opts.BlockSize bytes; if it
// exhausts that budget without finding a confidently-parity-balanced
// newline, it reports ErrBoundaryResolutionFailed rather than guessing.
func resolveQuoted(data RecordSource, hint, size int64, opts Options) (int64, error) {
	if hint >= size {
		return size, nil
	}
	blockSize := opts.BlockSize
	if blockSize <= 0 {
		blockSize = 32 * 1024
	}
	maxBlocks := opts.MaxReinforcementBlocks
	if maxBlocks <= 0 {
		maxBlocks = 64
	}

	buf := make([]byte, blockSize)
	pos := hint
	quoteParityEven := true // true until we've seen evidence we're inside quotes

	for block := 0; block < maxBlocks && pos < size; block++ {
		n, err := data.ReadWindow(pos, buf)
		if err != nil {
			return 0, fmt.Errorf("%w: scanning for record boundary at %d: %v", errs.ErrIO, pos, err)
		}
		if n == 0 {
			break
		}
		chunk := buf[:n]
		for i := 0; i < n; i++ {
			switch chunk[i] {
			case '"':
				quoteParityEven = !quoteParityEven
			case '\n':
				if quoteParityEven {
					candidate := pos + int64(i) + 1
					if opts.ExpectedFieldCount <= 0 {
						return candidate, nil
					}
					if recordLooksValid(data, candidate, size, opts.ExpectedFieldCount) {
						return candidate, nil
					}
				}
			}
		}
		pos += int64(n)
	}

	if pos >= size {
		return size, nil
	}
	return 0, fmt.Errorf("%w: exhausted %d blocks of %d bytes from offset %d without a confident boundary",
		errs.ErrBoundaryResolutionFailed, maxBlocks, blockSize, hint)
}

// recordLooksValid does a cheap unquoted-aware field count of the record
// starting at off, returning whether it matches want. Used to reinforce a
// quote-parity boundary candidate against a known header field count.
func recordLooksValid(data RecordSource, off, size int64, want int) bool {
	const probeWindow = 8 * 1024
	buf := make([]byte, probeWindow)
	n, err := data.ReadWindow(off, buf)
	if err != nil || n == 0 {
		return false
	}
	fields := 1
	inQuotes := false
	for i := 0; i < n; i++ {
		switch buf[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				fields++
			}
		case '\n':
			if !inQuotes {
				return fields == want
			}
		}
	}
	// Record extends past the probe window; accept only if the field
	// count seen so far already equals want.
	return fields == want
}
