// Package source provides random-access byte sources for the chunked
// loader: either a read-only memory map of the whole file, or a set of
// per-worker positioned-read (pread-style) file handles. Workers never
// share a file cursor: each gets its own *os.File or a slice into the
// shared mapping.
package source

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/wiseio/paratext/internal/errs"
)

// Source is a random-access view over the input file's bytes.
type Source interface {
	// Size returns the total byte length of the input.
	Size() int64
	// Reader returns an io.ReaderAt-like positioned reader scoped to one
	// worker. Workers must not share the returned value.
	Reader(workerID int) (WorkerReader, error)
	// Bytes returns the whole input as a single slice when the source is
	// mmap-backed; it returns (nil, false) for handle-based sources, in
	// which case callers must use Reader instead.
	Bytes() ([]byte, bool)
	// Close releases the source (unmaps memory / closes handles).
	Close() error
}

// WorkerReader reads a byte range via positioned reads, independent of any
// other worker's read position.
type WorkerReader interface {
	ReadAt(p []byte, off int64) (int, error)
	Close() error
}

// RunID is a process-unique identifier for one Load() invocation, used to
// correlate progress-reporter output with a LoadError a concurrent test
// run might see.
type RunID = uuid.UUID

// NewRunID returns a fresh run identifier.
func NewRunID() RunID { return uuid.New() }

// Open opens path as a random-access Source. useMmap selects a whole-file
// memory map; otherwise each worker gets its own *os.File opened against
// the same path for positioned reads.
//
// Unseekable inputs (pipes, sockets) and other non-regular files cannot be
// chunked in parallel; Open rejects them with errs.ErrUnsupportedProtocol.
func Open(path string, useMmap bool) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	if !stat.Mode().IsRegular() {
		// Not a regular file: named pipe, socket, device, etc.
		return nil, fmt.Errorf("%w: %s is not a regular file", errs.ErrUnsupportedProtocol, path)
	}

	if useMmap {
		return openMmap(path, stat.Size())
	}
	return &handleSource{path: path, size: stat.Size()}, nil
}

// handleSource hands each worker its own *os.File for positioned reads.
type handleSource struct {
	path string
	size int64
}

func (h *handleSource) Size() int64 { return h.size }

func (h *handleSource) Bytes() ([]byte, bool) { return nil, false }

func (h *handleSource) Reader(workerID int) (WorkerReader, error) {
	f, err := os.Open(h.path)
	if err != nil {
		return nil, fmt.Errorf("%w: worker %d: %v", errs.ErrIO, workerID, err)
	}
	return &fileWorkerReader{f: f}, nil
}

func (h *handleSource) Close() error { return nil }

type fileWorkerReader struct{ f *os.File }

func (r *fileWorkerReader) ReadAt(p []byte, off int64) (int, error) { return r.f.ReadAt(p, off) }
func (r *fileWorkerReader) Close() error                            { return r.f.Close() }
