package labelclean

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func texts(records []RawRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Text
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseInputRecords(t *testing.T) {
	t.Parallel()

	t.Run("txt with raw_text header is read as csv", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "input.txt", []byte("raw_text\nAirlines\n\"Airline, Company\"\n\nAd-Hoc Queries\n"))
		records, err := ParseInputRecords(path, InputParseOptions{})
		if err != nil {
			t.Fatalf("ParseInputRecords: %v", err)
		}
		want := []string{"Airlines", "Airline, Company", "Ad-Hoc Queries"}
		if got := texts(records); !equalStrings(got, want) {
			t.Errorf("texts = %q, want %q", got, want)
		}
		for i, r := range records {
			if r.Index != i {
				t.Errorf("records[%d].Index = %d", i, r.Index)
			}
		}
	})

	t.Run("plain text lines", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "labels.txt", []byte("Airlines\r\n\r\n  \nAirline Company\r\n"))
		records, err := ParseInputRecords(path, InputParseOptions{})
		if err != nil {
			t.Fatalf("ParseInputRecords: %v", err)
		}
		want := []string{"Airlines", "Airline Company"}
		if got := texts(records); !equalStrings(got, want) {
			t.Errorf("texts = %q, want %q", got, want)
		}
	})

	t.Run("csv detects column among several", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "in.csv", []byte("id,raw_text,extra\n1,Airlines,x\n2,,y\n3\n"))
		records, err := ParseInputRecords(path, InputParseOptions{})
		if err != nil {
			t.Fatalf("ParseInputRecords: %v", err)
		}
		want := []string{"Airlines", "", ""}
		if got := texts(records); !equalStrings(got, want) {
			t.Errorf("texts = %q, want %q", got, want)
		}
	})

	t.Run("tsv with explicit column index and no header", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "in.tsv", []byte("1\tAirlines\n2\tAd-Hoc Queries\n"))
		records, err := ParseInputRecords(path, InputParseOptions{TextColumn: "#2"})
		if err != nil {
			t.Fatalf("ParseInputRecords: %v", err)
		}
		want := []string{"Airlines", "Ad-Hoc Queries"}
		if got := texts(records); !equalStrings(got, want) {
			t.Errorf("texts = %q, want %q", got, want)
		}
	})

	t.Run("explicit column name", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "in.csv", []byte("Firma,Other\nAirlines,a\n"))
		records, err := ParseInputRecords(path, InputParseOptions{TextColumn: "firma"})
		if err != nil {
			t.Fatalf("ParseInputRecords: %v", err)
		}
		if got := texts(records); !equalStrings(got, []string{"Airlines"}) {
			t.Errorf("texts = %q", got)
		}
	})

	t.Run("missing explicit column", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "in.csv", []byte("a,b\n1,2\n"))
		_, err := ParseInputRecords(path, InputParseOptions{TextColumn: "nope"})
		if !errors.Is(err, ErrColumnNotFound) {
			t.Errorf("err = %v, want ErrColumnNotFound", err)
		}
	})

	t.Run("column index out of range", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "in.csv", []byte("a,b\n1,2\n"))
		if _, err := ParseInputRecords(path, InputParseOptions{TextColumn: "#3"}); err == nil {
			t.Error("expected error for out of range column")
		}
		if _, err := ParseInputRecords(path, InputParseOptions{TextColumn: "#0"}); err == nil {
			t.Error("expected error for zero column index")
		}
	})

	t.Run("header only is empty input", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "in.csv", []byte("raw_text\n"))
		_, err := ParseInputRecords(path, InputParseOptions{})
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("err = %v, want ErrEmptyInput", err)
		}
	})

	t.Run("utf-8 bom", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "in.csv", []byte("\xef\xbb\xbfraw_text\nAirlines\n"))
		records, err := ParseInputRecords(path, InputParseOptions{})
		if err != nil {
			t.Fatalf("ParseInputRecords: %v", err)
		}
		if got := texts(records); !equalStrings(got, []string{"Airlines"}) {
			t.Errorf("texts = %q", got)
		}
	})

	t.Run("utf-16 with bom", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		var buf bytes.Buffer
		buf.Write([]byte{0xff, 0xfe})
		for _, r := range "raw_text\nAirlines\n" {
			buf.Write([]byte{byte(r), 0})
		}
		path := writeFile(t, dir, "in.csv", buf.Bytes())
		records, err := ParseInputRecords(path, InputParseOptions{})
		if err != nil {
			t.Fatalf("ParseInputRecords: %v", err)
		}
		if got := texts(records); !equalStrings(got, []string{"Airlines"}) {
			t.Errorf("texts = %q", got)
		}
	})

	t.Run("latin1 label", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "in.csv", []byte("raw_text\nCaf\xe9 Company\n"))
		records, err := ParseInputRecords(path, InputParseOptions{Encoding: "windows-1252"})
		if err != nil {
			t.Fatalf("ParseInputRecords: %v", err)
		}
		if got := texts(records); !equalStrings(got, []string{"Café Company"}) {
			t.Errorf("texts = %q", got)
		}
	})

	t.Run("unknown encoding", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "in.csv", []byte("raw_text\nx\n"))
		if _, err := ParseInputRecords(path, InputParseOptions{Encoding: "klingon"}); err == nil {
			t.Error("expected error for unknown encoding")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := ParseInputRecords(filepath.Join(t.TempDir(), "nope.csv"), InputParseOptions{})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("err = %v, want os.ErrNotExist", err)
		}
	})
}

func TestWriteColumn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteColumn(&buf, "key", []string{"airlin", "", "a, b", "say \"hi\""}); err != nil {
		t.Fatalf("WriteColumn: %v", err)
	}
	want := "key\nairlin\n\"\"\n\"a, b\"\n\"say \"\"hi\"\"\"\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteOutputFilesRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keyPath := filepath.Join(dir, "nested", "deeper", "test.csv")
	cleanedPath := filepath.Join(dir, "out", "output.txt")

	svc := NewService(nil, Config{}, nil)
	inputs := []string{"Airlines", "Something Unrelated", "Ad-Hoc Queries", "!!!"}
	results := make([]ResultRecord, len(inputs))
	for i, in := range inputs {
		results[i] = svc.Clean(in)
	}

	if err := WriteKeyFile(keyPath, results); err != nil {
		t.Fatalf("WriteKeyFile: %v", err)
	}
	if err := WriteCleanedFile(cleanedPath, results); err != nil {
		t.Fatalf("WriteCleanedFile: %v", err)
	}

	keys, err := ParseInputRecords(keyPath, InputParseOptions{TextColumn: KeyColumn})
	if err != nil {
		t.Fatalf("read keys: %v", err)
	}
	wantKeys := []string{"airlin", "someth unrel", "adhoc queri", ""}
	if got := texts(keys); !equalStrings(got, wantKeys) {
		t.Errorf("keys = %q, want %q", got, wantKeys)
	}

	data, err := os.ReadFile(cleanedPath)
	if err != nil {
		t.Fatalf("read cleaned: %v", err)
	}
	wantCleaned := "cleaned_text\nAIRLINES\n\"\"\nADHOC QUERIES\n\"\"\n"
	if string(data) != wantCleaned {
		t.Errorf("cleaned file = %q, want %q", string(data), wantCleaned)
	}
	if lines := strings.Count(string(data), "\n"); lines != len(inputs)+1 {
		t.Errorf("cleaned file has %d lines, want %d", lines, len(inputs)+1)
	}
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	if err := EnsureDir("relative.csv"); err != nil {
		t.Errorf("EnsureDir on bare file name: %v", err)
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c.csv")
	if err := EnsureDir(target); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if info, err := os.Stat(filepath.Dir(target)); err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}

func TestSetColumnCandidates(t *testing.T) {
	SetColumnCandidates(ColumnCandidates{Text: []string{"Firma"}})
	t.Cleanup(func() { SetColumnCandidates(ColumnCandidates{}) })

	dir := t.TempDir()
	path := writeFile(t, dir, "labels.txt", []byte("id,firma\n1,Airlines\n"))
	records, err := ParseInputRecords(path, InputParseOptions{})
	if err != nil {
		t.Fatalf("ParseInputRecords: %v", err)
	}
	if got := texts(records); !equalStrings(got, []string{"Airlines"}) {
		t.Errorf("texts = %q", got)
	}

	SetColumnCandidates(ColumnCandidates{})
	if got := getColumnCandidates().Text; !equalStrings(got, DefaultColumnCandidates().Text) {
		t.Errorf("nil candidates should restore defaults, got %q", got)
	}
}

func TestResolveTextColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		firstRow   []string
		explicit   string
		wantCol    int
		wantHeader bool
		wantErr    error
	}{
		{"candidate", []string{"id", "Company"}, "", 1, true, nil},
		{"bom prefixed", []string{"\ufeffraw_text", "x"}, "", 0, true, nil},
		{"leftmost candidate wins", []string{"name", "raw_text"}, "", 0, true, nil},
		{"explicit name", []string{"label", "firma"}, "Firma", 1, true, nil},
		{"explicit index", []string{"a", "text"}, "#1", 0, false, nil},
		{"no header falls back to first column", []string{"Airlines", "x"}, "", 0, false, nil},
		{"missing explicit name", []string{"a", "b"}, "nope", -1, false, ErrColumnNotFound},
		{"empty row", nil, "", -1, false, ErrColumnNotFound},
	}
	for _, tt := range tests {
		col, header, err := ResolveTextColumn(tt.firstRow, tt.explicit)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: err = %v, want %v", tt.name, err, tt.wantErr)
			}
			continue
		}
		if err != nil || col != tt.wantCol || header != tt.wantHeader {
			t.Errorf("%s: ResolveTextColumn = (%d, %v, %v), want (%d, %v)", tt.name, col, header, err, tt.wantCol, tt.wantHeader)
		}
	}
}

func TestColumnRecordsKeepsBlankCells(t *testing.T) {
	t.Parallel()

	rows := [][]string{{"id", "raw_text"}, {"1", "Airlines"}, {"2", ""}, {"3"}, {"4", "Ad-Hoc Queries"}}
	records := ColumnRecords(rows, 1, true)
	want := []string{"Airlines", "", "", "Ad-Hoc Queries"}
	if got := texts(records); !equalStrings(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}
	for i, r := range records {
		if r.Index != i {
			t.Errorf("records[%d].Index = %d", i, r.Index)
		}
	}
	if got := ColumnRecords(rows[:1], 1, false); len(got) != 1 || got[0].Text != "raw_text" {
		t.Errorf("headerless = %+v", got)
	}
	if got := ColumnRecords(nil, 0, true); len(got) != 0 {
		t.Errorf("nil rows = %+v", got)
	}
}

func TestInputDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  string
		delim rune
		ok    bool
	}{
		{"in.csv", "a\n", ',', true},
		{"IN.TSV", "a\n", '\t', true},
		{"labels.txt", "raw_text\nAirlines\n", ',', true},
		{"labels.txt", "Airlines\nAirline Company\n", 0, false},
	}
	for _, tt := range tests {
		delim, ok := InputDelimiter(tt.name, []byte(tt.data), InputParseOptions{})
		if delim != tt.delim || ok != tt.ok {
			t.Errorf("InputDelimiter(%s, %q) = (%q, %v), want (%q, %v)", tt.name, tt.data, delim, ok, tt.delim, tt.ok)
		}
	}
}
