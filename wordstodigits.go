package timespeak

import (
	"strconv"
	"strings"
)

// numberWords is the canonical English number vocabulary. Locale packs
// normalize their own number words to these before digit conversion.
var numberWords = map[string]int{
	"zero":      0,
	"one":       1,
	"two":       2,
	"three":     3,
	"four":      4,
	"five":      5,
	"six":       6,
	"seven":     7,
	"eight":     8,
	"nine":      9,
	"ten":       10,
	"eleven":    11,
	"twelve":    12,
	"thirteen":  13,
	"fourteen":  14,
	"fifteen":   15,
	"sixteen":   16,
	"seventeen": 17,
	"eighteen":  18,
	"nineteen":  19,
	"twenty":    20,
	"thirty":    30,
	"forty":     40,
	"fifty":     50,
	"sixty":     60,
	"seventy":   70,
	"eighty":    80,
	"ninety":    90,
	"hundred":   100,
	"thousand":  1000,
}

var tensWords = map[string]int{
	"twenty":  20,
	"thirty":  30,
	"forty":   40,
	"fifty":   50,
	"sixty":   60,
	"seventy": 70,
	"eighty":  80,
	"ninety":  90,
}

var unitWords = map[string]int{
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
	"eight": 8,
	"nine":  9,
}

// ConvertWordsToDigits rewrites spelled-out numbers in a sentence into digit
// strings, combining two-word tens+units compounds ("twenty one" -> "21").
func ConvertWordsToDigits(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	out := make([]string, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		tens, isTens := tensWords[tokens[i]]
		if isTens && i+1 < len(tokens) {
			if unit, isUnit := unitWords[tokens[i+1]]; isUnit {
				out = append(out, strconv.Itoa(tens+unit))
				i++
				continue
			}
		}
		if value, ok := numberWords[tokens[i]]; ok {
			out = append(out, strconv.Itoa(value))
			continue
		}
		out = append(out, tokens[i])
	}

	return strings.Join(out, " ")
}

// containsNumberWord reports whether any token is a known number word,
// the cheap fast path guarding digit conversion.
func containsNumberWord(tokens []string) bool {
	for _, token := range tokens {
		if _, ok := numberWords[token]; ok {
			return true
		}
	}
	return false
}
