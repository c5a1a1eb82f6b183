//go:build windows

package source

import (
	"fmt"
	"io"
	"os"

	"github.com/wiseio/paratext/internal/errs"
)

// mmapSource falls back to a full read on Windows, avoiding unsafe
// pointer arithmetic for a file mapping implementation.
type mmapSource struct {
	data []byte
	size int64
}

func openMmap(path string, size int64) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	return &mmapSource{data: data, size: size}, nil
}

func (m *mmapSource) Size() int64          { return m.size }
func (m *mmapSource) Bytes() ([]byte, bool) { return m.data, true }

func (m *mmapSource) Reader(workerID int) (WorkerReader, error) {
	return &mmapWorkerReader{data: m.data}, nil
}

func (m *mmapSource) Close() error { m.data = nil; return nil }

type mmapWorkerReader struct{ data []byte }

func (r *mmapWorkerReader) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(r.data)) {
		return 0, fmt.Errorf("%w: offset %d past end of mapping (%d bytes)", errs.ErrIO, off, len(r.data))
	}
	return copy(p, r.data[off:]), nil
}

func (r *mmapWorkerReader) Close() error { return nil }
