// Package dictionary implements the worker-local categorical interner:
// an insertion-ordered string-to-code map used by column builders once a
// column has been promoted to Categorical.
package dictionary

// Code indexes into a Dictionary's level table. Code 0 is always the
// empty string, reserved for missing/empty tokens.
type Code uint32

// Dictionary is an insertion-ordered interner. Code 0 maps to "" and is
// pre-registered by New. Lookups for a string already seen are
// accelerated by a Bloom filter pre-check that can answer "definitely
// not present" without touching the map.
type Dictionary struct {
	codes  map[string]Code
	levels [][]byte
	bloom  *bloomFilter
}

// New creates an empty Dictionary sized for an expected number of
// distinct levels (sizes the Bloom filter and the initial map and level
// capacity; the map and level slice grow unbounded).
func New(expectedLevels int) *Dictionary {
	d := &Dictionary{
		codes:  make(map[string]Code, expectedLevels+1),
		levels: make([][]byte, 1, expectedLevels+1),
		bloom:  newBloomFilter(expectedLevels+1, 0.01),
	}
	d.codes[""] = 0
	d.bloom.Add(nil)
	return d
}

// Len returns the number of distinct levels, including the empty string.
func (d *Dictionary) Len() int { return len(d.levels) }

// Level returns the byte string for code, or nil if code is out of range.
func (d *Dictionary) Level(code Code) []byte {
	if int(code) >= len(d.levels) {
		return nil
	}
	return d.levels[code]
}

// Intern returns the code for s, registering a new level if s has not
// been seen before. The returned bool is true when a new level was
// created (useful for enforcing max_levels at the call site).
func (d *Dictionary) Intern(s []byte) (Code, bool) {
	if len(s) == 0 {
		return 0, false
	}
	if d.bloom.MightContain(s) {
		if code, ok := d.codes[string(s)]; ok {
			return code, false
		}
	}
	code := Code(len(d.levels))
	key := string(s) // single copy backing both the map key and the level
	d.codes[key] = code
	d.levels = append(d.levels, []byte(key))
	d.bloom.Add(s)
	return code, true
}

// MaxLevelLength returns the length in bytes of the longest registered
// level, used to enforce max_level_name_length.
func (d *Dictionary) MaxLevelLength() int {
	max := 0
	for _, l := range d.levels {
		if len(l) > max {
			max = len(l)
		}
	}
	return max
}

// Levels returns the insertion-ordered level table. The slice must not be
// mutated by callers.
func (d *Dictionary) Levels() [][]byte { return d.levels }

// CodeWidth reports the smallest unsigned integer width in bytes (1, 2,
// 4, or 8) that can represent every code currently registered.
func (d *Dictionary) CodeWidth() int {
	n := uint64(len(d.levels))
	switch {
	case n <= 1<<8:
		return 1
	case n <= 1<<16:
		return 2
	case n <= 1<<32:
		return 4
	default:
		return 8
	}
}
