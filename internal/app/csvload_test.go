package app

import (
	"bytes"
	"strings"
	"testing"

	"yashubustudio/labelclean/labelclean"
)

func TestSplitNonEmptyLines(t *testing.T) {
	t.Parallel()

	got := splitNonEmptyLines("Airlines\r\n\n  Airline Company  \n\t\nAd-Hoc Queries")
	want := []string{"Airlines", "Airline Company", "Ad-Hoc Queries"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("splitNonEmptyLines = %q, want %q", got, want)
	}

	records := linesToRecords(got)
	for i, rec := range records {
		if rec.Index != i || rec.Text != want[i] {
			t.Errorf("records[%d] = %+v", i, rec)
		}
	}
}

func TestLoadedFileKeepsBlankRows(t *testing.T) {
	t.Parallel()

	data := []byte("raw_text\nAirlines\n\"\"\nAd-Hoc Queries\n")
	opts := labelclean.InputParseOptions{}
	delim, ok := labelclean.InputDelimiter("labels.csv", data, opts)
	if !ok || delim != ',' {
		t.Fatalf("InputDelimiter = %q, %v", delim, ok)
	}
	rows, err := labelclean.ReadDelimitedRows(bytes.NewReader(data), delim)
	if err != nil {
		t.Fatalf("ReadDelimitedRows: %v", err)
	}
	col, hasHeader, err := labelclean.ResolveTextColumn(rows[0], "")
	if err != nil || col != 0 || !hasHeader {
		t.Fatalf("ResolveTextColumn = %d, %v, %v", col, hasHeader, err)
	}
	loaded := labelclean.ColumnRecords(rows, col, hasHeader)
	text := recordsText(loaded)

	got := recordsForInput(text, loaded, text)
	want, err := labelclean.ParseRecords("labels.csv", data, opts)
	if err != nil {
		t.Fatalf("ParseRecords: %v", err)
	}
	if len(got) != 3 || len(got) != len(want) {
		t.Fatalf("got %d records, file parse gives %d, want 3", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("records[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	if got[1].Text != "" {
		t.Errorf("blank cell became %q", got[1].Text)
	}
}

func TestRecordsForInputEditedText(t *testing.T) {
	t.Parallel()

	loaded := []labelclean.RawRecord{{Index: 0, Text: "Airlines"}, {Index: 1, Text: ""}}
	text := recordsText(loaded)
	if text != "Airlines\n" {
		t.Fatalf("recordsText = %q", text)
	}

	edited := recordsForInput(text+"Airline Company", loaded, text)
	if len(edited) != 2 || edited[1].Text != "Airline Company" {
		t.Errorf("edited = %+v", edited)
	}
	pasted := recordsForInput(" Airlines \n\n", nil, "")
	if len(pasted) != 1 || pasted[0].Text != "Airlines" {
		t.Errorf("pasted = %+v", pasted)
	}
}

func TestBuildCSVColumnChoices(t *testing.T) {
	t.Parallel()

	records := [][]string{
		{"id", "label"},
		{"1", ""},
		{"2", "An extremely long airline company name"},
	}
	choices := buildCSVColumnChoices(records, true)
	if len(choices) != 2 {
		t.Fatalf("len(choices) = %d", len(choices))
	}
	if choices[0].Label != "[1] id (例: 1)" {
		t.Errorf("choices[0] = %q", choices[0].Label)
	}
	if choices[1].Index != 1 || !strings.HasSuffix(choices[1].Label, "…)") {
		t.Errorf("choices[1] = %+v", choices[1])
	}

	noHeader := buildCSVColumnChoices([][]string{{"a", "b"}}, false)
	if noHeader[1].Label != "[2] 列2 (例: b)" {
		t.Errorf("noHeader[1] = %q", noHeader[1].Label)
	}
}
