package labelclean

import "sort"

// CanonicalEntry maps a fingerprint key to its approved display value.
type CanonicalEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DefaultCanonicalEntries returns the curated key to display-value table.
func DefaultCanonicalEntries() []CanonicalEntry {
	return []CanonicalEntry{
		{Key: "analyt applic", Value: "Analytics Application"},
		{Key: "analyt model", Value: "ANALYTICS MODEL"},
		{Key: "adhoc queri", Value: "ADHOC QUERIES"},
		// "ad hoc queries" written with a space
		{Key: "ad hoc queri", Value: "ADHOC QUERIES"},
		{Key: "agricultur product", Value: "AGRICULTURAL PRODUCTS"},
		{Key: "airlin compani", Value: "AIRLINE COMPANY"},
		{Key: "airlin", Value: "AIRLINES"},
	}
}

// CanonicalTable is a read-only lookup from fingerprint key to display value.
// It is safe for concurrent use.
type CanonicalTable struct {
	entries map[string]string
}

var defaultCanonicalTable = NewCanonicalTable(DefaultCanonicalEntries())

// DefaultCanonicalTable returns the shared table built from
// DefaultCanonicalEntries.
func DefaultCanonicalTable() *CanonicalTable {
	return defaultCanonicalTable
}

// NewCanonicalTable copies entries into a new table. Later duplicates of a
// key win.
func NewCanonicalTable(entries []CanonicalEntry) *CanonicalTable {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return &CanonicalTable{entries: m}
}

// Resolve looks up key exactly. A miss returns ("", false).
func (t *CanonicalTable) Resolve(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.entries[key]
	return v, ok
}

// Len returns the number of keys in the table.
func (t *CanonicalTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the table sorted by key.
func (t *CanonicalTable) Entries() []CanonicalEntry {
	if t == nil {
		return nil
	}
	out := make([]CanonicalEntry, 0, len(t.entries))
	for k, v := range t.entries {
		out = append(out, CanonicalEntry{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Suspect lists the keys that are not fixed points of Fingerprint. A fixed
// point is always reachable, since the key text itself fingerprints to the
// key. Any other entry can only match through stems that do not re-stem to
// themselves and should be reviewed.
func (t *CanonicalTable) Suspect() []string {
	var out []string
	for _, e := range t.Entries() {
		if Fingerprint(e.Key) != e.Key {
			out = append(out, e.Key)
		}
	}
	return out
}
