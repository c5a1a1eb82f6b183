package tokenizer

import "github.com/wiseio/paratext/internal/simd"

// nextUnquotedBoundary returns the earliest position at or after i where
// an Unquoted-state byte requires a state transition (the separator or a
// newline). An Unquoted field's default-case bytes have no other side
// effect, so everything strictly between i and the result can be skipped
// without being classified individually.
func nextUnquotedBoundary(classes simd.Classes, i, n int) int {
	sep := simd.NextSet(classes.Separator, i, n)
	nl := simd.NextSet(classes.Newlines, i, n)
	if sep < nl {
		return sep
	}
	return nl
}

// nextQuotedBoundary returns the earliest position at or after i where a
// Quoted-state byte requires a state transition: a quote always, a
// newline only when quoted newlines are not allowed (in which case a
// bare newline inside quotes terminates the record instead of being
// appended as content).
func nextQuotedBoundary(classes simd.Classes, i, n int, allowQuotedNewlines bool) int {
	q := simd.NextSet(classes.Quotes, i, n)
	if allowQuotedNewlines {
		return q
	}
	nl := simd.NextSet(classes.Newlines, i, n)
	if q < nl {
		return q
	}
	return nl
}
