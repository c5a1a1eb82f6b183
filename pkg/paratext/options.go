// Package paratext is the public interface to the parallel columnar CSV
// loader: Load ingests a delimited text file and returns an in-memory
// Frame of typed columns.
package paratext

import (
	"fmt"
	"runtime"

	"github.com/wiseio/paratext/internal/column"
	"github.com/wiseio/paratext/internal/schema"
)

// Semantics is a column's coarse public type.
type Semantics = column.Semantics

const (
	SemanticsUnknown     = column.SemanticsUnknown
	SemanticsNumeric     = column.SemanticsNumeric
	SemanticsCategorical = column.SemanticsCategorical
	SemanticsText        = column.SemanticsText
)

// Options configures a Load call.
type Options struct {
	// NumThreads is the worker count; 0 selects max(runtime.GOMAXPROCS(0), 4).
	NumThreads int
	// BlockSize is the I/O read granularity in bytes; 0 selects 32768.
	BlockSize int
	// AllowQuotedNewlines enables the bounded quoted-newline recovery walk.
	AllowQuotedNewlines bool
	// NoHeader treats the first record as data rather than column names.
	NoHeader bool
	// NumberOnly skips the non-numeric branches of inference: a field that
	// fails numeric parsing is recorded as missing plus an anomaly, rather
	// than widening the column to Categorical.
	NumberOnly bool
	// MaxLevels is the categorical cardinality ceiling before a column
	// escalates to Text. DefaultOptions sets this to 10000; an Options
	// built by hand and left at the zero value means 0, which forces
	// every categorical column straight to Text on its first distinct
	// value — this is a valid, deliberate configuration, not "unset".
	MaxLevels int
	// MaxLevelNameLength is the per-value byte length ceiling before a
	// column escalates to Text; 0 selects 255.
	MaxLevelNameLength int
	// ConvertNullToSpace replaces 0x00 bytes within fields with 0x20
	// before inference.
	ConvertNullToSpace bool
	// ValidateUTF8In replaces invalid UTF-8 sequences with U+FFFD.
	ValidateUTF8In bool
	// Mmap selects a whole-file memory map over per-worker positioned
	// reads.
	Mmap bool
	// Verbose enables ticker-driven progress reporting to stderr.
	Verbose bool
	// UseSchemaProfile, if set, loads (and on a successful Load, updates
	// and saves) a "<path>_schema.json" sidecar of forced semantics and
	// cached inferred kinds next to the file being loaded, letting a
	// repeat load re-apply the persisted forced semantics. The cached
	// inferred kinds are written but not used to seed inference.
	UseSchemaProfile bool

	forced map[string]column.Semantics
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		BlockSize:          32768,
		MaxLevels:          10000,
		MaxLevelNameLength: 255,
		ValidateUTF8In:     true,
	}
}

// ForceSemantics pins name's column to kind, skipping inference for it.
// It must be called before Load; kind must be Numeric, Categorical, or
// Text.
func (o *Options) ForceSemantics(name string, kind Semantics) error {
	switch kind {
	case column.SemanticsNumeric, column.SemanticsCategorical, column.SemanticsText:
	default:
		return fmt.Errorf("paratext: cannot force column %q to semantics %v", name, kind)
	}
	if o.forced == nil {
		o.forced = make(map[string]column.Semantics)
	}
	o.forced[name] = kind
	return nil
}

// normalize fills in zero-valued fields with their defaults and resolves
// the worker count.
func (o Options) normalize() Options {
	if o.BlockSize <= 0 {
		o.BlockSize = 32768
	}
	if o.MaxLevelNameLength <= 0 {
		o.MaxLevelNameLength = 255
	}
	if o.NumThreads <= 0 {
		o.NumThreads = runtime.GOMAXPROCS(0)
		if o.NumThreads < 4 {
			o.NumThreads = 4
		}
	}
	return o
}

// columnOptions derives internal/column.Options for name, applying any
// forced semantics (from Options.ForceSemantics or a loaded SchemaProfile)
// and the shared cardinality thresholds.
func (o Options) columnOptions(name string, profile *schema.Profile) column.Options {
	co := column.Options{
		MaxLevels:          o.MaxLevels,
		MaxLevelNameLength: o.MaxLevelNameLength,
		ExpectedName:       name,
	}
	if s, ok := o.forced[name]; ok {
		co.ForcedSemantics = s
		co.ForcedSet = true
	}
	if !co.ForcedSet && profile != nil {
		if s, ok := profile.ForcedSemantics(name); ok {
			co.ForcedSemantics = s
			co.ForcedSet = true
		}
	}
	if !co.ForcedSet && o.NumberOnly {
		co.ForcedSemantics = column.SemanticsNumeric
		co.ForcedSet = true
	}
	if co.ForcedSet && co.ForcedSemantics == column.SemanticsCategorical && profile != nil {
		if d, ok, err := profile.LoadDictionary(name); err == nil && ok {
			co.SeedLevels = d.Levels()[1:] // code 0 (empty string) is implicit
		}
	}
	return co
}
