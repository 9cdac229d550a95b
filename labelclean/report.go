package labelclean

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
)

// maxReportSpellings caps the spellings listed per group in the report.
const maxReportSpellings = 5

// WriteMarkdownReport renders a summary of a cleaned batch: overall counts, the
// key groups and the keys that found no canonical value.
func WriteMarkdownReport(w io.Writer, records []RawRecord, results []ResultRecord) error {
	md := markdown.NewMarkdown(w)
	summary := Summarize(results)
	groups := GroupByKey(records, results)

	md.H1("Label Fingerprint Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Rows", strconv.Itoa(summary.Rows)},
			{"Distinct keys", strconv.Itoa(summary.Keys)},
			{"Resolved rows", strconv.Itoa(summary.Resolved)},
			{"Unresolved rows", strconv.Itoa(summary.Unresolved)},
		},
	})
	md.PlainText("")

	md.H2("Groups")
	md.PlainText("")
	if len(groups) == 0 {
		md.PlainText("No rows.")
		md.PlainText("")
	} else {
		rows := make([][]string, 0, len(groups))
		for _, g := range groups {
			value := "-"
			if g.Resolved {
				value = escapeCell(g.Value)
			}
			rows = append(rows, []string{
				codeCell(g.Key),
				value,
				strconv.Itoa(g.Count),
				spellingsCell(g.Spellings),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Key", "Canonical value", "Rows", "Spellings"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	var unresolved []string
	for _, g := range groups {
		if !g.Resolved {
			unresolved = append(unresolved, codeCell(g.Key))
		}
	}
	md.H2("Unresolved keys")
	md.PlainText("")
	if len(unresolved) == 0 {
		md.Tip("Every row resolved to a canonical value.")
	} else {
		md.BulletList(unresolved...)
	}
	md.PlainText("")

	return md.Build()
}

func codeCell(key string) string {
	if key == "" {
		return "(empty)"
	}
	return "`" + escapeCell(key) + "`"
}

func spellingsCell(spellings []string) string {
	shown := spellings
	if len(shown) > maxReportSpellings {
		shown = shown[:maxReportSpellings]
	}
	parts := make([]string, len(shown))
	for i, s := range shown {
		parts[i] = escapeCell(strings.TrimSpace(s))
	}
	out := strings.Join(parts, "; ")
	if extra := len(spellings) - len(shown); extra > 0 {
		out += " (+" + strconv.Itoa(extra) + " more)"
	}
	return out
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
