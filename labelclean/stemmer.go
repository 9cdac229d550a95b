package labelclean

import (
	"strings"
	"unicode/utf8"
)

// Stem reduces an English word to its Porter stem. The rules follow the
// published Porter algorithm together with the NLTK extensions (irregular
// forms, short-word passthrough, the ies/ied length-4 rules, the y->i
// consonant condition and the alli/fulli/logi step-2 rules), so stems agree
// with the keys stored in the canonical table.
//
// Stem expects lower-case input. Lengths and positions count runes; any
// letter outside a, e, i, o, u (and y after a vowel) is a consonant.
func Stem(word string) string {
	if s, ok := irregularForms[word]; ok {
		return s
	}
	if utf8.RuneCountInString(word) <= 2 {
		return word
	}
	word = step1a(word)
	word = step1b(word)
	word = step1c(word)
	word = step2(word)
	word = step3(word)
	word = step4(word)
	word = step5a(word)
	word = step5b(word)
	return word
}

var irregularForms = map[string]string{
	"sky":      "sky",
	"skies":    "sky",
	"dying":    "die",
	"lying":    "lie",
	"tying":    "tie",
	"news":     "news",
	"innings":  "inning",
	"inning":   "inning",
	"outings":  "outing",
	"outing":   "outing",
	"cannings": "canning",
	"canning":  "canning",
	"howe":     "howe",
	"proceed":  "proceed",
	"exceed":   "exceed",
	"succeed":  "succeed",
}

// suffixRule replaces suffix by replacement when cond holds for the remaining
// stem. A rule whose suffix matches but whose condition fails ends the rule
// list.
type suffixRule struct {
	suffix      string
	replacement string
	cond        func(stem string) bool
}

// doubleConsonant is a pseudo-suffix matching a trailing double consonant.
const doubleConsonant = "*d"

func applyRules(word string, rules []suffixRule) string {
	for _, r := range rules {
		if r.suffix == doubleConsonant && endsDoubleConsonant(word) {
			_, size := utf8.DecodeLastRuneInString(word)
			stem := word[:len(word)-2*size]
			if r.cond == nil || r.cond(stem) {
				return stem + r.replacement
			}
			return word
		}
		if strings.HasSuffix(word, r.suffix) {
			stem := word[:len(word)-len(r.suffix)]
			if r.cond == nil || r.cond(stem) {
				return stem + r.replacement
			}
			return word
		}
	}
	return word
}

func isConsonant(word []rune, i int) bool {
	switch word[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		if i == 0 {
			return true
		}
		return !isConsonant(word, i-1)
	}
	return true
}

// measure counts the VC sequences of stem, the m in [C](VC)^m[V].
func measure(stem string) int {
	runes := []rune(stem)
	m := 0
	prevVowel := false
	for i := range runes {
		c := isConsonant(runes, i)
		if c && prevVowel {
			m++
		}
		prevVowel = !c
	}
	return m
}

func positiveMeasure(stem string) bool { return measure(stem) > 0 }

func measureGreaterThanOne(stem string) bool { return measure(stem) > 1 }

func containsVowel(stem string) bool {
	runes := []rune(stem)
	for i := range runes {
		if !isConsonant(runes, i) {
			return true
		}
	}
	return false
}

func endsDoubleConsonant(word string) bool {
	runes := []rune(word)
	n := len(runes)
	return n >= 2 && runes[n-1] == runes[n-2] && isConsonant(runes, n-1)
}

// endsCVC reports the *o condition: consonant-vowel-consonant where the last
// consonant is not w, x or y. Two-letter words of the form vowel-consonant
// also qualify.
func endsCVC(word string) bool {
	runes := []rune(word)
	n := len(runes)
	if n >= 3 &&
		isConsonant(runes, n-3) &&
		!isConsonant(runes, n-2) &&
		isConsonant(runes, n-1) &&
		runes[n-1] != 'w' && runes[n-1] != 'x' && runes[n-1] != 'y' {
		return true
	}
	return n == 2 && !isConsonant(runes, 0) && isConsonant(runes, 1)
}

func step1a(word string) string {
	if strings.HasSuffix(word, "ies") && utf8.RuneCountInString(word) == 4 {
		return word[:len(word)-3] + "ie"
	}
	return applyRules(word, []suffixRule{
		{"sses", "ss", nil},
		{"ies", "i", nil},
		{"ss", "ss", nil},
		{"s", "", nil},
	})
}

func step1b(word string) string {
	if strings.HasSuffix(word, "ied") {
		if utf8.RuneCountInString(word) == 4 {
			return word[:len(word)-3] + "ie"
		}
		return word[:len(word)-3] + "i"
	}
	if strings.HasSuffix(word, "eed") {
		stem := word[:len(word)-3]
		if measure(stem) > 0 {
			return stem + "ee"
		}
		return word
	}

	var stem string
	matched := false
	for _, suffix := range []string{"ed", "ing"} {
		if strings.HasSuffix(word, suffix) {
			stem = word[:len(word)-len(suffix)]
			if containsVowel(stem) {
				matched = true
				break
			}
		}
	}
	if !matched {
		return word
	}

	last, _ := utf8.DecodeLastRuneInString(stem)
	return applyRules(stem, []suffixRule{
		{"at", "ate", nil},
		{"bl", "ble", nil},
		{"iz", "ize", nil},
		{doubleConsonant, string(last), func(string) bool {
			return last != 'l' && last != 's' && last != 'z'
		}},
		{"", "e", func(s string) bool {
			return measure(s) == 1 && endsCVC(s)
		}},
	})
}

func step1c(word string) string {
	return applyRules(word, []suffixRule{
		{"y", "i", func(stem string) bool {
			runes := []rune(stem)
			return len(runes) > 1 && isConsonant(runes, len(runes)-1)
		}},
	})
}

func step2(word string) string {
	if strings.HasSuffix(word, "alli") && positiveMeasure(word[:len(word)-4]) {
		return step2(word[:len(word)-4] + "al")
	}
	return applyRules(word, []suffixRule{
		{"ational", "ate", positiveMeasure},
		{"tional", "tion", positiveMeasure},
		{"enci", "ence", positiveMeasure},
		{"anci", "ance", positiveMeasure},
		{"izer", "ize", positiveMeasure},
		{"bli", "ble", positiveMeasure},
		{"alli", "al", positiveMeasure},
		{"entli", "ent", positiveMeasure},
		{"eli", "e", positiveMeasure},
		{"ousli", "ous", positiveMeasure},
		{"ization", "ize", positiveMeasure},
		{"ation", "ate", positiveMeasure},
		{"ator", "ate", positiveMeasure},
		{"alism", "al", positiveMeasure},
		{"iveness", "ive", positiveMeasure},
		{"fulness", "ful", positiveMeasure},
		{"ousness", "ous", positiveMeasure},
		{"aliti", "al", positiveMeasure},
		{"iviti", "ive", positiveMeasure},
		{"biliti", "ble", positiveMeasure},
		{"fulli", "ful", positiveMeasure},
		// the l of logi stays with the stem so geo/theo behave like archaeo/philo
		{"logi", "log", func(string) bool {
			return positiveMeasure(word[:len(word)-3])
		}},
	})
}

func step3(word string) string {
	return applyRules(word, []suffixRule{
		{"icate", "ic", positiveMeasure},
		{"ative", "", positiveMeasure},
		{"alize", "al", positiveMeasure},
		{"iciti", "ic", positiveMeasure},
		{"ical", "ic", positiveMeasure},
		{"ful", "", positiveMeasure},
		{"ness", "", positiveMeasure},
	})
}

func step4(word string) string {
	return applyRules(word, []suffixRule{
		{"al", "", measureGreaterThanOne},
		{"ance", "", measureGreaterThanOne},
		{"ence", "", measureGreaterThanOne},
		{"er", "", measureGreaterThanOne},
		{"ic", "", measureGreaterThanOne},
		{"able", "", measureGreaterThanOne},
		{"ible", "", measureGreaterThanOne},
		{"ant", "", measureGreaterThanOne},
		{"ement", "", measureGreaterThanOne},
		{"ment", "", measureGreaterThanOne},
		{"ent", "", measureGreaterThanOne},
		{"ion", "", func(stem string) bool {
			return measure(stem) > 1 && (stem[len(stem)-1] == 's' || stem[len(stem)-1] == 't')
		}},
		{"ou", "", measureGreaterThanOne},
		{"ism", "", measureGreaterThanOne},
		{"ate", "", measureGreaterThanOne},
		{"iti", "", measureGreaterThanOne},
		{"ous", "", measureGreaterThanOne},
		{"ive", "", measureGreaterThanOne},
		{"ize", "", measureGreaterThanOne},
	})
}

func step5a(word string) string {
	if !strings.HasSuffix(word, "e") {
		return word
	}
	stem := word[:len(word)-1]
	m := measure(stem)
	if m > 1 {
		return stem
	}
	if m == 1 && !endsCVC(stem) {
		return stem
	}
	return word
}

func step5b(word string) string {
	return applyRules(word, []suffixRule{
		{"ll", "l", func(string) bool {
			return measure(word[:len(word)-1]) > 1
		}},
	})
}
