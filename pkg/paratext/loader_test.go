package paratext

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadInfersNumericAndCategoricalColumns(t *testing.T) {
	path := writeTempCSV(t, "id,name,score\n1,alice,9.5\n2,bob,7\n3,carol,8.25\n")
	opts := DefaultOptions()
	opts.NumThreads = 1

	f, err := Load(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if f.NumColumns() != 3 {
		t.Fatalf("expected 3 columns, got %d", f.NumColumns())
	}
	name, kind, err := f.ColumnInfo(0)
	if err != nil {
		t.Fatal(err)
	}
	if name != "id" || kind != SemanticsNumeric {
		t.Fatalf("column 0: got name=%q kind=%v", name, kind)
	}
	col, err := f.Column(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(col.Ints) != 3 || col.Ints[0] != 1 {
		t.Fatalf("unexpected id column: %+v", col)
	}

	nameCol, err := f.Column(1)
	if err != nil {
		t.Fatal(err)
	}
	if nameCol.Semantics != SemanticsCategorical {
		t.Fatalf("expected name column to be categorical (low cardinality strings), got %v", nameCol.Semantics)
	}
}

func TestLoadNoHeaderSynthesizesColumnNames(t *testing.T) {
	path := writeTempCSV(t, "1,2\n3,4\n")
	opts := DefaultOptions()
	opts.NumThreads = 1
	opts.NoHeader = true

	f, err := Load(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	name, _, err := f.ColumnInfo(0)
	if err != nil {
		t.Fatal(err)
	}
	if name != "column_0" {
		t.Fatalf("expected synthesized name column_0, got %q", name)
	}
	col, err := f.Column(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(col.Ints) != 2 {
		t.Fatalf("expected 2 data rows (no header consumed), got %d", len(col.Ints))
	}
}

func TestLoadForceSemanticsPinsColumnType(t *testing.T) {
	path := writeTempCSV(t, "zip,pop\n00501,100\n00544,200\n")
	opts := DefaultOptions()
	opts.NumThreads = 1
	if err := opts.ForceSemantics("zip", SemanticsText); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, kind, err := f.ColumnInfo(0)
	if err != nil {
		t.Fatal(err)
	}
	if kind != SemanticsText {
		t.Fatalf("expected zip forced to Text, got %v", kind)
	}
	col, err := f.Column(0)
	if err != nil {
		t.Fatal(err)
	}
	if string(col.Texts[0]) != "00501" {
		t.Fatalf("expected leading zero preserved as text, got %q", col.Texts[0])
	}
}

func TestLoadEmptyFileReturnsEmptyFrame(t *testing.T) {
	path := writeTempCSV(t, "")
	f, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if f.NumColumns() != 0 {
		t.Fatalf("expected 0 columns for an empty file, got %d", f.NumColumns())
	}
}

func TestLoadMultiWorkerRowCountMatchesSingleWorker(t *testing.T) {
	var content string
	for i := 0; i < 500; i++ {
		content += "abcdefgh,123\n"
	}
	path := writeTempCSV(t, "letters,n\n"+content)

	one := DefaultOptions()
	one.NumThreads = 1
	fOne, err := Load(path, one)
	if err != nil {
		t.Fatal(err)
	}

	many := DefaultOptions()
	many.NumThreads = 4
	fMany, err := Load(path, many)
	if err != nil {
		t.Fatal(err)
	}

	colOne, _ := fOne.Column(1)
	colMany, _ := fMany.Column(1)
	if len(colOne.Ints) != len(colMany.Ints) {
		t.Fatalf("row count mismatch between 1 and 4 workers: %d vs %d", len(colOne.Ints), len(colMany.Ints))
	}
	if len(colMany.Ints) != 500 {
		t.Fatalf("expected 500 data rows, got %d", len(colMany.Ints))
	}
}

func TestLoadSchemaProfilePersistsCategoricalDictionary(t *testing.T) {
	path := writeTempCSV(t, "color\na\nb\na\nc\n")

	opts := DefaultOptions()
	opts.NumThreads = 1
	opts.UseSchemaProfile = true
	if err := opts.ForceSemantics("color", SemanticsCategorical); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, opts); err != nil {
		t.Fatal(err)
	}

	dictPath := path + "_schema.json.color.dict"
	if _, err := os.Stat(dictPath); err != nil {
		t.Fatalf("expected categorical dictionary snapshot to be written: %v", err)
	}

	reload := DefaultOptions()
	reload.NumThreads = 1
	reload.UseSchemaProfile = true
	if err := reload.ForceSemantics("color", SemanticsCategorical); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path, reload)
	if err != nil {
		t.Fatal(err)
	}
	levels, err := f.Levels(0)
	if err != nil {
		t.Fatal(err)
	}
	wantOrder := []string{"", "a", "b", "c"}
	if len(levels) != len(wantOrder) {
		t.Fatalf("expected %d levels, got %d (%v)", len(wantOrder), len(levels), levels)
	}
	for i, want := range wantOrder {
		if string(levels[i]) != want {
			t.Fatalf("level %d: got %q want %q", i, levels[i], want)
		}
	}
}

func TestLoadSchemaProfilePersistsAndReappliesForcedSemantics(t *testing.T) {
	path := writeTempCSV(t, "id,code\n1,001\n2,002\n")

	opts := DefaultOptions()
	opts.NumThreads = 1
	opts.UseSchemaProfile = true
	if err := opts.ForceSemantics("code", SemanticsText); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, opts); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path + "_schema.json"); err != nil {
		t.Fatalf("expected schema profile to be written: %v", err)
	}

	reload := DefaultOptions()
	reload.NumThreads = 1
	reload.UseSchemaProfile = true
	f, err := Load(path, reload)
	if err != nil {
		t.Fatal(err)
	}
	_, kind, err := f.ColumnInfo(1)
	if err != nil {
		t.Fatal(err)
	}
	if kind != SemanticsText {
		t.Fatalf("expected the persisted profile to re-pin code as Text, got %v", kind)
	}
}
