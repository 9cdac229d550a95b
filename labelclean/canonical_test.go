package labelclean

import "testing"

func TestCanonicalTableResolve(t *testing.T) {
	t.Parallel()

	table := DefaultCanonicalTable()
	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"analyt applic", "Analytics Application", true},
		{"analyt model", "ANALYTICS MODEL", true},
		{"adhoc queri", "ADHOC QUERIES", true},
		{"ad hoc queri", "ADHOC QUERIES", true},
		{"agricultur product", "AGRICULTURAL PRODUCTS", true},
		{"airlin compani", "AIRLINE COMPANY", true},
		{"airlin", "AIRLINES", true},
		{"someth unrel", "", false},
		{"", "", false},
		{"Airlin", "", false},
		{" airlin", "", false},
	}
	for _, tt := range tests {
		got, ok := table.Resolve(tt.key)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCanonicalTableEntries(t *testing.T) {
	t.Parallel()

	table := DefaultCanonicalTable()
	if table.Len() != len(DefaultCanonicalEntries()) {
		t.Fatalf("Len = %d, want %d", table.Len(), len(DefaultCanonicalEntries()))
	}
	entries := table.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key >= entries[i].Key {
			t.Fatalf("entries not sorted at %d: %q >= %q", i, entries[i-1].Key, entries[i].Key)
		}
	}

	entries[0].Value = "mutated"
	if v, _ := table.Resolve(entries[0].Key); v == "mutated" {
		t.Error("Entries must return a copy")
	}
}

func TestCanonicalTableEveryKeyIsReachable(t *testing.T) {
	t.Parallel()

	if suspect := DefaultCanonicalTable().Suspect(); len(suspect) != 0 {
		t.Errorf("Suspect() = %v, want none", suspect)
	}
	// the spaced variant is produced by ordinary input, not only by the key text
	if got := Fingerprint("Ad Hoc Queries"); got != "ad hoc queri" {
		t.Errorf("Fingerprint(Ad Hoc Queries) = %q, want %q", got, "ad hoc queri")
	}
}

func TestCanonicalTableSuspect(t *testing.T) {
	t.Parallel()

	table := NewCanonicalTable([]CanonicalEntry{
		{Key: "airlin", Value: "AIRLINES"},
		{Key: "Airlines", Value: "never matches"},
		{Key: "queri adhoc", Value: "unsorted"},
	})
	got := table.Suspect()
	want := []string{"Airlines", "queri adhoc"}
	if len(got) != len(want) {
		t.Fatalf("Suspect() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Suspect()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNilCanonicalTable(t *testing.T) {
	t.Parallel()

	var table *CanonicalTable
	if v, ok := table.Resolve("airlin"); ok || v != "" {
		t.Errorf("nil table Resolve = (%q, %v)", v, ok)
	}
	if table.Len() != 0 || table.Entries() != nil {
		t.Error("nil table should be empty")
	}
}
