// Package errs defines the error taxonomy shared across the loader
// pipeline: fatal errors that abort a load, and the per-column anomaly
// counters that do not.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel fatal errors. Matched with errors.Is by callers.
var (
	// ErrIO wraps a read failure from the byte source.
	ErrIO = errors.New("paratext: io error")
	// ErrUnsupportedProtocol is returned for a non-file input reference.
	ErrUnsupportedProtocol = errors.New("paratext: unsupported protocol")
	// ErrBoundaryResolutionFailed is returned when the quoted-newline
	// recovery walk exhausts its reinforcement window without committing.
	ErrBoundaryResolutionFailed = errors.New("paratext: boundary resolution failed")
	// ErrRowCountMismatch is returned when the assembler finds unequal
	// per-column fragment totals.
	ErrRowCountMismatch = errors.New("paratext: row count mismatch")
)

// LoadError is the single summary carried out of Load on a fatal error.
// It names the offending worker, the byte offset it was processing, the
// RunID of the Load call that produced it (so a verbose progress
// reporter's stderr output can be matched back to this error in
// concurrent test runs), and wraps the underlying cause so callers can
// errors.Is/As against it.
type LoadError struct {
	RunID  string
	Worker int
	Offset int64
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("paratext: run %s: worker %d at offset %d: %v", e.RunID, e.Worker, e.Offset, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }

// RowCountMismatchError carries the per-column counts that disagreed.
type RowCountMismatchError struct {
	Counts map[string]int64
}

func (e *RowCountMismatchError) Error() string {
	return fmt.Sprintf("paratext: row count mismatch across columns: %v", e.Counts)
}

func (e *RowCountMismatchError) Unwrap() error { return ErrRowCountMismatch }

// Anomalies counts non-fatal parse events, surfaced per-column after Load
// returns. A zero value means nothing anomalous was observed.
type Anomalies struct {
	FieldCountAnomaly    int64
	EncodingAnomaly      int64
	ForcedTypeParseFailure int64
	CategoricalOverflow  bool
}

// Merge folds other's counters into a, in place.
func (a *Anomalies) Merge(other Anomalies) {
	a.FieldCountAnomaly += other.FieldCountAnomaly
	a.EncodingAnomaly += other.EncodingAnomaly
	a.ForcedTypeParseFailure += other.ForcedTypeParseFailure
	a.CategoricalOverflow = a.CategoricalOverflow || other.CategoricalOverflow
}
