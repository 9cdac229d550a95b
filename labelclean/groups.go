package labelclean

import "sort"

// Group collects the rows that share one fingerprint key.
type Group struct {
	Key       string
	Value     string
	Resolved  bool
	Count     int
	Spellings []string
}

// GroupByKey groups rows by exact key equality. Spellings keeps the distinct
// raw texts of a group in first-seen order. Groups are ordered by size, then
// by key. records and results must be parallel slices; extra entries in the
// longer one are ignored.
func GroupByKey(records []RawRecord, results []ResultRecord) []Group {
	n := min(len(records), len(results))
	index := make(map[string]int)
	groups := make([]Group, 0)
	seen := make(map[string]map[string]struct{})
	for i := 0; i < n; i++ {
		res := results[i]
		gi, ok := index[res.Key]
		if !ok {
			gi = len(groups)
			index[res.Key] = gi
			groups = append(groups, Group{Key: res.Key, Value: res.Cleaned, Resolved: res.Resolved})
			seen[res.Key] = make(map[string]struct{})
		}
		groups[gi].Count++
		text := records[i].Text
		if _, dup := seen[res.Key][text]; dup {
			continue
		}
		seen[res.Key][text] = struct{}{}
		groups[gi].Spellings = append(groups[gi].Spellings, text)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count == groups[j].Count {
			return groups[i].Key < groups[j].Key
		}
		return groups[i].Count > groups[j].Count
	})
	return groups
}

// Summary holds aggregate counts over a cleaned batch.
type Summary struct {
	Rows       int
	Keys       int
	Resolved   int
	Unresolved int
}

// Summarize counts rows, distinct keys and resolved rows.
func Summarize(results []ResultRecord) Summary {
	keys := make(map[string]struct{}, len(results))
	s := Summary{Rows: len(results)}
	for _, r := range results {
		keys[r.Key] = struct{}{}
		if r.Resolved {
			s.Resolved++
		} else {
			s.Unresolved++
		}
	}
	s.Keys = len(keys)
	return s
}
