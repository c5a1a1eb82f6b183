package tokenizer

import (
	"bytes"
	"testing"
)

func fieldStrings(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f.Data)
	}
	return out
}

func runAll(t *testing.T, tk *Tokenizer, data []byte) [][]string {
	t.Helper()
	var records [][]string
	_, err := tk.Run(data, func(row int, fields []Field) error {
		records = append(records, fieldStrings(fields))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func equalRecords(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func TestTokenizerBasic(t *testing.T) {
	tk := New(DefaultOptions())
	got := runAll(t, tk, []byte("a,b,c\n1,2,3\n"))
	want := [][]string{{"a", "b", "c"}, {"1", "2", "3"}}
	if !equalRecords(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizerNoTrailingNewline(t *testing.T) {
	tk := New(DefaultOptions())
	got := runAll(t, tk, []byte("a,b\n1,2"))
	want := [][]string{{"a", "b"}, {"1", "2"}}
	if !equalRecords(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizerEmptyFields(t *testing.T) {
	tk := New(DefaultOptions())
	got := runAll(t, tk, []byte(",,\n"))
	want := [][]string{{"", "", ""}}
	if !equalRecords(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizerQuotedField(t *testing.T) {
	tk := New(DefaultOptions())
	got := runAll(t, tk, []byte(`"hello, world",2` + "\n"))
	want := [][]string{{"hello, world", "2"}}
	if !equalRecords(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizerEscapedQuote(t *testing.T) {
	tk := New(DefaultOptions())
	got := runAll(t, tk, []byte(`"she said ""hi""",2`+"\n"))
	want := [][]string{{`she said "hi"`, "2"}}
	if !equalRecords(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizerEscapedQuoteFollowedByLongRun(t *testing.T) {
	// Once an escaped quote puts the field into copy mode, every
	// subsequent byte up to the closing quote must still land in the
	// copied buffer even when the bitmap fast path skips a long run of
	// them in one jump.
	tk := New(DefaultOptions())
	long := make([]byte, 200)
	for i := range long {
		long[i] = byte('a' + i%26)
	}
	row := []byte(`"""` + string(long) + `",2` + "\n")
	got := runAll(t, tk, row)
	want := [][]string{{`"` + string(long), "2"}}
	if !equalRecords(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizerLongUnquotedField(t *testing.T) {
	tk := New(DefaultOptions())
	long := make([]byte, 300)
	for i := range long {
		long[i] = byte('a' + i%26)
	}
	got := runAll(t, tk, []byte(string(long)+",2\n"))
	want := [][]string{{string(long), "2"}}
	if !equalRecords(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizerCRLF(t *testing.T) {
	tk := New(DefaultOptions())
	got := runAll(t, tk, []byte("a,b\r\n1,2\r\n"))
	want := [][]string{{"a", "b"}, {"1", "2"}}
	if !equalRecords(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizerQuotedNewlineDisallowedIsAnomaly(t *testing.T) {
	tk := New(DefaultOptions())
	got := runAll(t, tk, []byte("\"line1\nline2\",2\n3,4\n"))
	if tk.Anomalies.FieldCountAnomaly == 0 {
		t.Fatal("expected a field count anomaly for the unescaped quoted newline")
	}
	if len(got) < 2 {
		t.Fatalf("expected at least 2 records from the recovery, got %d: %v", len(got), got)
	}
}

func TestTokenizerQuotedNewlineAllowed(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowQuotedNewlines = true
	tk := New(opts)
	got := runAll(t, tk, []byte("\"line1\nline2\",2\n"))
	want := [][]string{{"line1\nline2", "2"}}
	if !equalRecords(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizerCustomSeparator(t *testing.T) {
	opts := DefaultOptions()
	opts.Separator = '\t'
	tk := New(opts)
	got := runAll(t, tk, []byte("a\tb\n1,2\t3\n"))
	want := [][]string{{"a", "b"}, {"1,2", "3"}}
	if !equalRecords(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizerConvertNullToSpace(t *testing.T) {
	opts := DefaultOptions()
	opts.ConvertNullToSpace = true
	tk := New(opts)
	data := []byte("a\x00b,c\n")
	got := runAll(t, tk, data)
	want := [][]string{{"a b", "c"}}
	if !equalRecords(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizerInvalidUTF8Replaced(t *testing.T) {
	tk := New(DefaultOptions())
	data := []byte{'a', 0xff, 'b', ',', 'c', '\n'}
	var got []byte
	_, err := tk.Run(data, func(row int, fields []Field) error {
		got = append([]byte(nil), fields[0].Data...)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(got, []byte("�")) {
		t.Fatalf("expected replacement char in %q", got)
	}
	if tk.Anomalies.EncodingAnomaly == 0 {
		t.Fatal("expected an encoding anomaly to be counted")
	}
}

func TestTokenizerWasQuotedFlag(t *testing.T) {
	tk := New(DefaultOptions())
	var quoted []bool
	_, err := tk.Run([]byte(`"q",u`+"\n"), func(row int, fields []Field) error {
		for _, f := range fields {
			quoted = append(quoted, f.WasQuoted)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(quoted) != 2 || !quoted[0] || quoted[1] {
		t.Fatalf("unexpected quoted flags: %v", quoted)
	}
}
