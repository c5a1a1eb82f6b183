package frame

import (
	"testing"

	"github.com/wiseio/paratext/internal/column"
	"github.com/wiseio/paratext/internal/errs"
)

func buildColumn(t *testing.T, opts column.Options, fields ...string) column.Builder {
	t.Helper()
	var an errs.Anomalies
	b := column.NewBuilder(opts)
	for _, f := range fields {
		var data []byte
		if f != "" {
			data = []byte(f)
		}
		b = b.Append(data, false, &an)
	}
	return b
}

func TestAssembleNumericJoinsAcrossWorkers(t *testing.T) {
	opts := column.DefaultOptions()
	w0 := buildColumn(t, opts, "1", "2")
	w1 := buildColumn(t, opts, "300", "4")

	col, err := Assemble("n", []column.Builder{w0, w1})
	if err != nil {
		t.Fatal(err)
	}
	if col.Semantics != column.SemanticsNumeric {
		t.Fatalf("expected numeric, got %v", col.Semantics)
	}
	if col.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", col.Len())
	}
	if col.Ints[2] != 300 {
		t.Fatalf("expected worker1's values concatenated after worker0's, got %v", col.Ints)
	}
}

func TestAssembleMixedNumericAndTextJoinsToText(t *testing.T) {
	opts := column.DefaultOptions()
	w0 := buildColumn(t, opts, "1", "2")
	opts2 := column.DefaultOptions()
	opts2.MaxLevels = 1
	w1 := buildColumn(t, opts2, "a", "b", "c")

	col, err := Assemble("mixed", []column.Builder{w0, w1})
	if err != nil {
		t.Fatal(err)
	}
	if col.Semantics != column.SemanticsText {
		t.Fatalf("expected text (one worker escalated to text), got %v", col.Semantics)
	}
	if col.Len() != 5 {
		t.Fatalf("expected 5 rows, got %d", col.Len())
	}
	if string(col.Texts[0]) != "1" || string(col.Texts[2]) != "a" {
		t.Fatalf("unexpected text values: %q %q", col.Texts[0], col.Texts[2])
	}
}

func TestAssembleCategoricalUnifiesDictionaryInFirstSeenOrder(t *testing.T) {
	opts := column.DefaultOptions()
	w0 := buildColumn(t, opts, "blue", "green")
	w1 := buildColumn(t, opts, "green", "red")

	col, err := Assemble("color", []column.Builder{w0, w1})
	if err != nil {
		t.Fatal(err)
	}
	if col.Semantics != column.SemanticsCategorical {
		t.Fatalf("expected categorical, got %v", col.Semantics)
	}
	wantOrder := []string{"", "blue", "green", "red"}
	for i, want := range wantOrder {
		if string(col.Dict.Levels()[i]) != want {
			t.Fatalf("global level %d: got %q want %q", i, col.Dict.Levels()[i], want)
		}
	}
	if col.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", col.Len())
	}
	if string(col.Dict.Level(col.Codes[2])) != "green" {
		t.Fatalf("worker1's first code should decode to green, got %q", col.Dict.Level(col.Codes[2]))
	}
}

func TestVerifyRowCountsDetectsMismatch(t *testing.T) {
	a := &Column{Name: "a", Semantics: column.SemanticsNumeric, Ints: []int64{1, 2, 3}, Missing: []bool{false, false, false}}
	b := &Column{Name: "b", Semantics: column.SemanticsNumeric, Ints: []int64{1, 2}, Missing: []bool{false, false}}
	err := VerifyRowCounts([]*Column{a, b})
	if err == nil {
		t.Fatal("expected a row count mismatch error")
	}
	var mismatch *errs.RowCountMismatchError
	if !asRowCountMismatch(err, &mismatch) {
		t.Fatalf("expected *errs.RowCountMismatchError, got %T", err)
	}
}

func asRowCountMismatch(err error, target **errs.RowCountMismatchError) bool {
	if e, ok := err.(*errs.RowCountMismatchError); ok {
		*target = e
		return true
	}
	return false
}

func TestCursorForgetReleasesStorage(t *testing.T) {
	col := &Column{Name: "n", Semantics: column.SemanticsNumeric, Ints: []int64{1, 2, 3}, Missing: []bool{false, false, false}}
	f := &Frame{Columns: []*Column{col}}
	c := NewCursor(f, true, false)

	e, ok := c.Next()
	if !ok {
		t.Fatal("expected one column")
	}
	if len(e.Ints) != 3 {
		t.Fatalf("expected emitted values, got %v", e.Ints)
	}
	if col.Ints != nil {
		t.Fatal("expected forget to release the column's backing storage")
	}
	if _, ok := c.Next(); ok {
		t.Fatal("expected no more columns")
	}
}

func TestCursorExpandMaterializesCategoricalAsText(t *testing.T) {
	opts := column.DefaultOptions()
	w0 := buildColumn(t, opts, "red", "blue")
	col, err := Assemble("color", []column.Builder{w0})
	if err != nil {
		t.Fatal(err)
	}
	f := &Frame{Columns: []*Column{col}}
	c := NewCursor(f, false, true)

	e, ok := c.Next()
	if !ok {
		t.Fatal("expected one column")
	}
	if e.Semantics != column.SemanticsText {
		t.Fatalf("expected expand to report Text semantics, got %v", e.Semantics)
	}
	if len(e.Levels) != 0 {
		t.Fatal("expand must not produce a levels array")
	}
	if string(e.Texts[0]) != "red" || string(e.Texts[1]) != "blue" {
		t.Fatalf("unexpected expanded values: %q", e.Texts)
	}
}
