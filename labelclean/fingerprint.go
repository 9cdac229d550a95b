package labelclean

import (
	"sort"
	"strings"
)

// asciiPunctuation is the full printable ASCII punctuation set.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	hyphenRemover = strings.NewReplacer("-", "")
	punctRemover  = newDeleter(asciiPunctuation)
)

func newDeleter(chars string) *strings.Replacer {
	pairs := make([]string, 0, len(chars)*2)
	for _, c := range chars {
		pairs = append(pairs, string(c), "")
	}
	return strings.NewReplacer(pairs...)
}

// Fingerprint derives the collision key for a label. The text is trimmed and
// lower-cased, hyphens and then all other ASCII punctuation are deleted (so
// "ad-hoc" becomes the single token "adhoc"), the result is split on
// whitespace, each token is stemmed, and the distinct stems are sorted and
// joined with single spaces.
//
// Fingerprint is total: empty, blank or punctuation-only input yields "".
func Fingerprint(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = hyphenRemover.Replace(text)
	text = punctRemover.Replace(text)
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(tokens))
	stems := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		s := Stem(tok)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		stems = append(stems, s)
	}
	sort.Strings(stems)
	return strings.Join(stems, " ")
}

// FingerprintAll fingerprints a slice of strings, keeping order.
func FingerprintAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Fingerprint(t)
	}
	return out
}
