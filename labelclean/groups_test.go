package labelclean

import (
	"context"
	"testing"
)

func cleanTexts(t *testing.T, texts ...string) ([]RawRecord, []ResultRecord) {
	t.Helper()
	records := newRecords(texts...)
	results, err := NewService(nil, Config{}, nil).CleanAll(context.Background(), records, nil)
	if err != nil {
		t.Fatalf("CleanAll: %v", err)
	}
	return records, results
}

func TestGroupByKey(t *testing.T) {
	t.Parallel()

	records, results := cleanTexts(t,
		"Airlines",
		"Something Unrelated",
		"AIRLINES",
		"airline",
		"Airlines",
		"unrelated something",
		"Airline Company",
	)
	groups := GroupByKey(records, results)
	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3: %+v", len(groups), groups)
	}

	first := groups[0]
	if first.Key != "airlin" || first.Count != 4 || !first.Resolved || first.Value != "AIRLINES" {
		t.Errorf("groups[0] = %+v", first)
	}
	wantSpellings := []string{"Airlines", "AIRLINES", "airline"}
	if !equalStrings(first.Spellings, wantSpellings) {
		t.Errorf("spellings = %q, want %q", first.Spellings, wantSpellings)
	}

	// equal counts fall back to key order
	if groups[1].Key != "someth unrel" || groups[1].Count != 2 || groups[1].Resolved {
		t.Errorf("groups[1] = %+v", groups[1])
	}
	if groups[2].Key != "airlin compani" || groups[2].Count != 1 {
		t.Errorf("groups[2] = %+v", groups[2])
	}
}

func TestGroupByKeyMismatchedLengths(t *testing.T) {
	t.Parallel()

	records, results := cleanTexts(t, "Airlines", "Airlines")
	groups := GroupByKey(records, results[:1])
	if len(groups) != 1 || groups[0].Count != 1 {
		t.Errorf("groups = %+v", groups)
	}
	if got := GroupByKey(nil, nil); len(got) != 0 {
		t.Errorf("GroupByKey(nil, nil) = %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	_, results := cleanTexts(t, "Airlines", "airline", "nope", "", "   ", "Ad-Hoc Queries")
	got := Summarize(results)
	want := Summary{Rows: 6, Keys: 4, Resolved: 3, Unresolved: 3}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}
