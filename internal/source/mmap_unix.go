//go:build !windows

package source

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/wiseio/paratext/internal/errs"
)

// mmapSource is a whole-file read-only memory map, shared by every worker.
type mmapSource struct {
	data []byte
	size int64
}

func openMmap(path string, size int64) (Source, error) {
	if size == 0 {
		return &mmapSource{data: nil, size: 0}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	defer f.Close()

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap: %v", errs.ErrIO, err)
	}
	return &mmapSource{data: data, size: size}, nil
}

func (m *mmapSource) Size() int64 { return m.size }

func (m *mmapSource) Bytes() ([]byte, bool) { return m.data, true }

func (m *mmapSource) Reader(workerID int) (WorkerReader, error) {
	return &mmapWorkerReader{data: m.data}, nil
}

func (m *mmapSource) Close() error {
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	return unix.Munmap(data)
}

// mmapWorkerReader implements WorkerReader over the shared mapping; no
// syscalls are issued per read, just a slice into mapped memory.
type mmapWorkerReader struct{ data []byte }

func (r *mmapWorkerReader) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(r.data)) {
		return 0, fmt.Errorf("%w: offset %d past end of mapping (%d bytes)", errs.ErrIO, off, len(r.data))
	}
	n := copy(p, r.data[off:])
	return n, nil
}

func (r *mmapWorkerReader) Close() error { return nil }
