// Package schema persists a small JSON sidecar describing how a CSV file's
// columns should be loaded: per-column forced semantics, which a repeat
// load re-applies, and, once a file has been loaded at least once, each
// column's last inferred Kind. The inferred Kinds are recorded and can be
// read back with InferredKind; pkg/paratext.Load does not seed its column
// builders from them.
package schema

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/wiseio/paratext/internal/column"
	"github.com/wiseio/paratext/internal/dictionary"
)

// ColumnEntry is one column's recorded semantics in a profile.
type ColumnEntry struct {
	// Forced, when non-empty, pins the column to "numeric", "categorical",
	// or "text" and skips inference for it on the next load.
	Forced string `json:"forced,omitempty"`
	// InferredKind records the lattice Kind this column, by name, was
	// assembled at the last time it was loaded. Load does not seed
	// builders from it; every column that is not forced still starts
	// from Unknown.
	InferredKind string `json:"inferred_kind,omitempty"`
}

// Profile is the on-disk sidecar: one entry per column name, keyed in
// load order.
type Profile struct {
	Columns []string               `json:"columns"`
	Entries map[string]ColumnEntry `json:"entries"`

	path string
	mu   sync.Mutex
}

// sidecarPath mirrors a CSV path to its profile path: "data.csv" ->
// "data.csv_schema.json", alongside the source file.
func sidecarPath(csvPath string) string {
	dir := filepath.Dir(csvPath)
	base := filepath.Base(csvPath)
	return filepath.Join(dir, base+"_schema.json")
}

// Load reads csvPath's sidecar profile if it exists, or returns an empty
// profile ready to be populated and saved.
func Load(csvPath string) (*Profile, error) {
	p := &Profile{
		Entries: make(map[string]ColumnEntry),
		path:    sidecarPath(csvPath),
	}

	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	if p.Entries == nil {
		p.Entries = make(map[string]ColumnEntry)
	}
	return p, nil
}

// Save writes the profile to its sidecar path, creating or overwriting it.
func (p *Profile) Save() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0644)
}

// ForceSemantics pins name's semantics for the next load. semantics must
// be SemanticsNumeric, SemanticsCategorical, or SemanticsText, stored as
// the label "numeric", "categorical", or "text"; any other value is
// rejected.
func (p *Profile) ForceSemantics(name string, semantics column.Semantics) error {
	label, err := semanticsLabel(semantics)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	e := p.Entries[name]
	e.Forced = label
	p.Entries[name] = e
	if !p.hasColumn(name) {
		p.Columns = append(p.Columns, name)
	}
	return nil
}

// ForcedSemantics reports whether name carries a pinned semantics, and
// what it is.
func (p *Profile) ForcedSemantics(name string) (column.Semantics, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.Entries[name]
	if !ok || e.Forced == "" {
		return column.SemanticsUnknown, false
	}
	s, err := labelSemantics(e.Forced)
	if err != nil {
		return column.SemanticsUnknown, false
	}
	return s, true
}

// RecordInferredKind caches kind as the last-observed inference result
// for name. Load records it but does not read it back when building
// columns.
func (p *Profile) RecordInferredKind(name string, kind column.Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e := p.Entries[name]
	e.InferredKind = kindLabel(kind)
	p.Entries[name] = e
	if !p.hasColumn(name) {
		p.Columns = append(p.Columns, name)
	}
}

// InferredKind returns the cached Kind for name, if one was recorded by
// a prior load.
func (p *Profile) InferredKind(name string) (column.Kind, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.Entries[name]
	if !ok || e.InferredKind == "" {
		return column.KindUnknown, false
	}
	k, err := labelKind(e.InferredKind)
	if err != nil {
		return column.KindUnknown, false
	}
	return k, true
}

// dictionaryPath returns the sidecar path for name's persisted
// categorical dictionary snapshot, stored next to the JSON sidecar
// rather than inside it since a dictionary can be far larger than the
// rest of the profile.
func (p *Profile) dictionaryPath(name string) string {
	return p.path + "." + url.PathEscape(name) + ".dict"
}

// SaveDictionary persists d's levels, in order, as name's categorical
// dictionary snapshot (internal/dictionary.WriteSnapshot). A future Load
// that forces name to Categorical seeds its worker-local dictionaries
// from this snapshot via LoadDictionary, so dictionary codes stay stable
// across repeat loads of a similarly shaped file instead of being
// renumbered from scratch.
func (p *Profile) SaveDictionary(name string, d *dictionary.Dictionary) error {
	f, err := os.Create(p.dictionaryPath(name))
	if err != nil {
		return err
	}
	defer f.Close()
	return dictionary.WriteSnapshot(f, d)
}

// LoadDictionary restores name's previously persisted dictionary
// snapshot. It returns ok == false, with no error, when no snapshot has
// been saved for name yet.
func (p *Profile) LoadDictionary(name string) (d *dictionary.Dictionary, ok bool, err error) {
	f, err := os.Open(p.dictionaryPath(name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()
	d, err = dictionary.ReadSnapshot(f)
	if err != nil {
		return nil, false, err
	}
	return d, true, nil
}

func (p *Profile) hasColumn(name string) bool {
	for _, c := range p.Columns {
		if c == name {
			return true
		}
	}
	return false
}
