package baseline

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

func TestCountNewlinesCountsDataRowsExcludingHeader(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n3,4\n5,6\n")
	n, err := CountNewlines(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 data rows, got %d", n)
	}
}

func TestCountNewlinesHandlesMissingTrailingNewline(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n3,4")
	n, err := CountNewlines(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 data rows, got %d", n)
	}
}

func TestCountNewlinesEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")
	n, err := CountNewlines(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows for an empty file, got %d", n)
	}
}

func TestDiskToMemReturnsExactBytes(t *testing.T) {
	content := "a,b\n1,2\n"
	path := writeTempCSV(t, content)
	data, err := DiskToMem(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Fatalf("got %q want %q", data, content)
	}
}

func TestAverageColumnsSkipsHeaderAndNonNumericCells(t *testing.T) {
	path := writeTempCSV(t, "name,age\nalice,10\nbob,20\ncarol,30\n")
	avgs, err := AverageColumns(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(avgs) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(avgs))
	}
	if avgs[0].Count != 0 {
		t.Fatalf("expected the name column to have no numeric cells, got count %d", avgs[0].Count)
	}
	if avgs[1].Count != 3 {
		t.Fatalf("expected the age column to have 3 numeric cells, got %d", avgs[1].Count)
	}
	if got := avgs[1].Mean(); got != 20 {
		t.Fatalf("expected mean age 20, got %v", got)
	}
}

func TestAverageColumnsEmptyFileReturnsNoColumns(t *testing.T) {
	path := writeTempCSV(t, "")
	avgs, err := AverageColumns(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if avgs != nil {
		t.Fatalf("expected no columns for an empty file, got %v", avgs)
	}
}
