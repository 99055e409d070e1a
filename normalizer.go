package timespeak

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// collectionOrder is the fixed vocabulary substitution order. Numbers run
// twice so that words revealed by earlier substitutions still convert.
// Fractions run before durations so "three quarters" resolves before a lone
// "quarter" can be substituted elsewhere, and direct translations run before
// durations so whole idioms ("anderthalb stunden") are still intact when
// they are looked up. The order is load bearing.
var collectionOrder = []Category{
	CategoryNumbers,
	CategoryTimeOfDay,
	CategoryDays,
	CategoryFractions,
	CategoryDirect,
	CategoryDurations,
	CategoryOperators,
	CategoryNumbers,
	CategoryMeridiem,
	CategorySpecialHours,
	CategoryOtherWords,
}

// punctuation stripped before tokenizing. Periods survive so meridiem forms
// like "p.m." keep their shape until vocabulary substitution.
const strippedPunctuation = `,;!?'"`

// fusedMeridiemPattern separates a meridiem suffix fused onto digits, so
// "9am" tokenizes as "9 am".
var fusedMeridiemPattern = regexp.MustCompile(`(\d)(am|pm)\b`)

// Normalizer rewrites a sentence in an arbitrary supported language into the
// canonical token stream the pattern matcher understands. Stateless apart
// from the read-only pack cache; safe for concurrent use.
type Normalizer struct {
	store        *PackStore
	logger       *slog.Logger
	stripUnknown bool

	mu    sync.RWMutex
	rules map[string]*packRules
}

// packRules holds the regexes compiled once per pack.
type packRules struct {
	decimal   *regexp.Regexp
	compounds []compoundRule
}

type compoundRule struct {
	re       *regexp.Regexp
	template string
	params   []string
}

// NewNormalizer creates a normalizer over store. A nil logger falls back to
// slog.Default.
func NewNormalizer(store *PackStore, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		store:  store,
		logger: logger,
		rules:  make(map[string]*packRules),
	}
}

// Normalize rewrites sentence into the canonical token stream for locale.
// An unknown locale falls back to English; if no pack loads at all the input
// is returned unchanged and pattern matching will surface the decode error.
func (n *Normalizer) Normalize(sentence, locale string) string {
	pack, err := n.store.Resolve(locale)
	if err != nil {
		n.logger.Warn("no language pack, returning sentence unmodified", "locale", locale, "error", err)
		return sentence
	}
	return n.normalizeWithPack(sentence, pack)
}

func (n *Normalizer) normalizeWithPack(sentence string, pack *LanguagePack) string {
	rules := n.packRules(pack)

	s := strings.ToLower(strings.TrimSpace(sentence))
	if rules.decimal != nil {
		s = rules.decimal.ReplaceAllString(s, "$1.$2")
	}
	s = stripPunctuation(s)
	s = fusedMeridiemPattern.ReplaceAllString(s, "$1 $2")

	s = n.unpackCompoundWords(s, rules)

	tokens := strings.Fields(s)
	for _, category := range collectionOrder {
		tokens = translateCollection(tokens, pack.Collection(category))
	}

	tokens = removePhrases(tokens, pack.RemovePhrases())

	if containsNumberWord(tokens) {
		tokens = strings.Fields(ConvertWordsToDigits(strings.Join(tokens, " ")))
	}

	if n.stripUnknown {
		tokens = stripUnknownTokens(tokens, pack)
	}

	return strings.Join(tokens, " ")
}

// packRules returns the compiled per-pack rules, building them on first use.
func (n *Normalizer) packRules(pack *LanguagePack) *packRules {
	n.mu.RLock()
	rules, ok := n.rules[pack.Locale]
	n.mu.RUnlock()
	if ok {
		return rules
	}

	rules = compilePackRules(pack, n.logger)

	n.mu.Lock()
	if cached, ok := n.rules[pack.Locale]; ok {
		rules = cached
	} else {
		n.rules[pack.Locale] = rules
	}
	n.mu.Unlock()
	return rules
}

func compilePackRules(pack *LanguagePack, logger *slog.Logger) *packRules {
	rules := &packRules{}

	if sep := pack.DecimalSeparator; sep != "" && sep != "." {
		rules.decimal = regexp.MustCompile(`(\d+)` + regexp.QuoteMeta(sep) + `(\d+)`)
	}

	for compound, template := range pack.CompoundWords {
		rule, err := compileCompound(pack, compound, template)
		if err != nil {
			logger.Warn("skipping unusable compound word", "locale", pack.Locale, "compound", compound, "error", err)
			continue
		}
		rules.compounds = append(rules.compounds, rule)
	}

	return rules
}

var compoundParamPattern = regexp.MustCompile(`\{(.*?)\}`)

// compileCompound turns a parameterized surface phrase into a regex plus its
// canonical rewrite template. Parameters may be typed ("{n:numbers}"), which
// restricts the capture to that category's variant words, or untyped, which
// captures a single word.
func compileCompound(pack *LanguagePack, compound, template string) (compoundRule, error) {
	params := compoundParamPattern.FindAllStringSubmatch(compound, -1)
	pattern := regexp.QuoteMeta(strings.ToLower(compound))

	names := make([]string, 0, len(params))
	for _, param := range params {
		raw := param[1]
		name, typeName, typed := strings.Cut(raw, ":")
		names = append(names, name)

		placeholder := regexp.QuoteMeta("{" + raw + "}")
		capture := `(?P<` + name + `>\S+)`
		if typed {
			variants := pack.flatVariants(Category(typeName))
			if len(variants) == 0 {
				return compoundRule{}, fmt.Errorf("no %q variants for parameter %q", typeName, raw)
			}
			quoted := make([]string, len(variants))
			for i, variant := range variants {
				quoted[i] = regexp.QuoteMeta(variant)
			}
			capture = `(?P<` + name + `>` + strings.Join(quoted, "|") + `)`
		}
		pattern = strings.Replace(pattern, placeholder, capture, 1)
	}

	re, err := regexp.Compile(`(^|\s)` + pattern + `(\s|$)`)
	if err != nil {
		return compoundRule{}, err
	}
	return compoundRule{re: re, template: template, params: names}, nil
}

// unpackCompoundWords rewrites locale specific multi-word idioms into their
// canonical fixed-order phrase, substituting captured parameter values.
func (n *Normalizer) unpackCompoundWords(s string, rules *packRules) string {
	if len(rules.compounds) == 0 {
		return s
	}

	for _, rule := range rules.compounds {
		// Bounded loop: each replacement consumes its match, but guard
		// against templates that re-introduce their own trigger.
		for iter := 0; iter < 10; iter++ {
			padded := " " + s + " "
			loc := rule.re.FindStringSubmatchIndex(padded)
			if loc == nil {
				break
			}
			replacement := rule.template
			for _, name := range rule.params {
				idx := rule.re.SubexpIndex(name)
				if idx < 0 || 2*idx+1 >= len(loc) || loc[2*idx] < 0 {
					continue
				}
				replacement = strings.ReplaceAll(replacement, "{"+name+"}", padded[loc[2*idx]:loc[2*idx+1]])
			}
			s = strings.Join(strings.Fields(padded[:loc[0]]+" "+replacement+" "+padded[loc[1]:]), " ")
		}
	}
	return s
}

// translateCollection replaces variant phrases with their canonical tokens,
// scanning left to right and preferring the longest variant at each position.
func translateCollection(tokens []string, entries []VocabEntry) []string {
	if len(entries) == 0 || len(tokens) == 0 {
		return tokens
	}

	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		matched := false
		for _, entry := range entries {
			if phraseAt(tokens, i, entry.Words) {
				out = append(out, strings.Fields(entry.Canonical)...)
				i += len(entry.Words)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, tokens[i])
			i++
		}
	}
	return out
}

// phraseAt reports whether the phrase occurs in tokens starting at i.
func phraseAt(tokens []string, i int, phrase []string) bool {
	if i+len(phrase) > len(tokens) {
		return false
	}
	for j, word := range phrase {
		if tokens[i+j] != word {
			return false
		}
	}
	return true
}

// removePhrases drops declared filler phrases from the token stream.
func removePhrases(tokens []string, phrases [][]string) []string {
	if len(phrases) == 0 {
		return tokens
	}

	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		skipped := false
		for _, phrase := range phrases {
			if phraseAt(tokens, i, phrase) {
				i += len(phrase)
				skipped = true
				break
			}
		}
		if !skipped {
			out = append(out, tokens[i])
			i++
		}
	}
	return out
}

// stripPunctuation removes sentence punctuation but keeps periods, which
// carry meaning in decimals and dotted meridiem forms. Characters are deleted
// rather than replaced so contractions collapse ("o'clock" becomes "oclock").
// Trailing periods are trimmed per word.
func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(strippedPunctuation, r) {
			continue
		}
		b.WriteRune(r)
	}

	tokens := strings.Fields(b.String())
	for i, token := range tokens {
		tokens[i] = strings.TrimRight(token, ".")
	}
	return strings.Join(tokens, " ")
}

// stripUnknownTokens keeps only digits and words the pack knows about,
// discarding anything the vocabulary could not translate.
func stripUnknownTokens(tokens []string, pack *LanguagePack) []string {
	known := make(map[string]struct{})
	for _, category := range collectionOrder {
		for canonical := range pack.vocab[category] {
			for _, word := range strings.Fields(canonical) {
				known[word] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, err := strconv.ParseFloat(token, 64); err == nil {
			out = append(out, token)
			continue
		}
		if token != "" && token[0] >= '0' && token[0] <= '9' {
			continue
		}
		if _, ok := known[token]; ok {
			out = append(out, token)
		}
	}
	return out
}
