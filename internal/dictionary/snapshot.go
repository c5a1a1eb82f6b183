package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// magicSnapshot tags an LZ4-compressed dictionary snapshot file so
// WriteSnapshot/ReadSnapshot reject mismatched inputs early.
const magicSnapshot = "PTDICT01"

// WriteSnapshot writes d's levels, in order, to w as an LZ4-compressed
// stream: a magic header, then one big-endian uint32 length prefix per
// level followed by its bytes. Used to persist a forced column's
// inferred dictionary across runs (internal/schema's profile cache).
func WriteSnapshot(w io.Writer, d *Dictionary) error {
	if _, err := io.WriteString(w, magicSnapshot); err != nil {
		return err
	}
	lw := lz4.NewWriter(w)
	if err := lw.Apply(lz4.BlockSizeOption(lz4.Block64Kb)); err != nil {
		return err
	}
	bw := bufio.NewWriter(lw)

	var lenBuf [4]byte
	for _, level := range d.levels[1:] { // code 0 (empty string) is implicit
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(level)))
		if _, err := bw.Write(lenBuf[:]); err != nil {
			return err
		}
		if _, err := bw.Write(level); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return lw.Close()
}

// ReadSnapshot reconstructs a Dictionary previously written by
// WriteSnapshot, re-registering every level in its original order so
// codes are stable across save/load.
func ReadSnapshot(r io.Reader) (*Dictionary, error) {
	magic := make([]byte, len(magicSnapshot))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("dictionary snapshot: reading magic: %w", err)
	}
	if string(magic) != magicSnapshot {
		return nil, fmt.Errorf("dictionary snapshot: bad magic %q", magic)
	}

	lr := lz4.NewReader(r)
	br := bufio.NewReader(lr)

	d := New(64)
	var lenBuf [4]byte
	for {
		if _, err := io.ReadFull(br, lenBuf[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("dictionary snapshot: reading length: %w", err)
		}
		n := binary.BigEndian.Uint32(lenBuf[:])
		level := make([]byte, n)
		if _, err := io.ReadFull(br, level); err != nil {
			return nil, fmt.Errorf("dictionary snapshot: reading level: %w", err)
		}
		d.Intern(level)
	}
	return d, nil
}
