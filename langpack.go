package timespeak

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category names a semantic vocabulary group inside a language pack.
type Category string

const (
	CategoryNumbers      Category = "numbers"
	CategoryDays         Category = "days"
	CategoryDurations    Category = "durations"
	CategoryOperators    Category = "operators"
	CategoryTimeOfDay    Category = "time_of_day"
	CategoryFractions    Category = "fractions"
	CategoryMeridiem     Category = "meridiem"
	CategorySpecialHours Category = "special_hours"
	CategoryOtherWords   Category = "other_words"
	CategoryDirect       Category = "direct_translations"
)

// VocabEntry maps one surface variant (tokenized) to its canonical token.
type VocabEntry struct {
	Canonical string
	Words     []string
}

// LanguagePack is the immutable, per-locale vocabulary and template data
// driving normalization and response rendering. Built once per pack file
// and safe for concurrent reads.
type LanguagePack struct {
	Locale           string
	DecimalSeparator string

	// CompoundWords maps a parameterized surface phrase to its canonical
	// rewrite, e.g. "in {n:numbers} minuten" -> "in {n} minutes".
	CompoundWords map[string]string

	// Structures is the ordered list of structural templates per group.
	Structures map[string][]string

	// Responses maps response ids to {param} templates.
	Responses map[string]string

	removeWords [][]string
	vocab       map[Category]map[string][]string
	collections map[Category][]VocabEntry
}

// variantList accepts either a single string or a list of strings, the two
// shapes the pack file format allows for variant words.
type variantList []string

func (v *variantList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = variantList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*v = variantList(many)
	return nil
}

func (v *variantList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*v = variantList{single}
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return err
	}
	*v = variantList(many)
	return nil
}

type rawPack struct {
	Numbers            map[string]variantList `json:"numbers" yaml:"numbers"`
	Days               map[string]variantList `json:"days" yaml:"days"`
	Durations          map[string]variantList `json:"durations" yaml:"durations"`
	Operators          map[string]variantList `json:"operators" yaml:"operators"`
	TimeOfDay          map[string]variantList `json:"time_of_day" yaml:"time_of_day"`
	Fractions          map[string]variantList `json:"fractions" yaml:"fractions"`
	Meridiem           map[string]variantList `json:"meridiem" yaml:"meridiem"`
	SpecialHours       map[string]variantList `json:"special_hours" yaml:"special_hours"`
	OtherWords         map[string]variantList `json:"other_words" yaml:"other_words"`
	DirectTranslations map[string]variantList `json:"direct_translations" yaml:"direct_translations"`
	CompoundWords      map[string]string      `json:"compound_words" yaml:"compound_words"`
	RemoveWords        []string               `json:"remove_words" yaml:"remove_words"`
	DecimalSeparator   string                 `json:"decimal_separator" yaml:"decimal_separator"`
	Structures         map[string][]string    `json:"structures" yaml:"structures"`
	Responses          map[string]string      `json:"responses" yaml:"responses"`
}

// ParsePack decodes a language pack file. The format is selected by the file
// extension, .json or .yaml/.yml, matching the loader contract.
func ParsePack(locale, path string, data []byte) (*LanguagePack, error) {
	var raw rawPack

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("timespeak: decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("timespeak: decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("timespeak: unsupported pack extension %s", ext)
	}

	return buildPack(locale, raw)
}

func buildPack(locale string, raw rawPack) (*LanguagePack, error) {
	pack := &LanguagePack{
		Locale:           locale,
		DecimalSeparator: raw.DecimalSeparator,
		CompoundWords:    raw.CompoundWords,
		Structures:       raw.Structures,
		Responses:        raw.Responses,
		vocab:            make(map[Category]map[string][]string),
		collections:      make(map[Category][]VocabEntry),
	}

	groups := map[Category]map[string]variantList{
		CategoryNumbers:      raw.Numbers,
		CategoryDays:         raw.Days,
		CategoryDurations:    raw.Durations,
		CategoryOperators:    raw.Operators,
		CategoryTimeOfDay:    raw.TimeOfDay,
		CategoryFractions:    raw.Fractions,
		CategoryMeridiem:     raw.Meridiem,
		CategorySpecialHours: raw.SpecialHours,
		CategoryOtherWords:   raw.OtherWords,
		CategoryDirect:       raw.DirectTranslations,
	}

	for category, group := range groups {
		if len(group) == 0 {
			continue
		}
		vocab := make(map[string][]string, len(group))
		var entries []VocabEntry
		for canonical, variants := range group {
			if canonical == "" {
				return nil, fmt.Errorf("timespeak: empty canonical token in %s/%s", locale, category)
			}
			if len(variants) == 0 {
				return nil, fmt.Errorf("timespeak: no variants for %s in %s/%s", canonical, locale, category)
			}
			vocab[canonical] = append([]string(nil), variants...)
			for _, variant := range variants {
				words := strings.Fields(strings.ToLower(variant))
				if len(words) == 0 {
					continue
				}
				entries = append(entries, VocabEntry{Canonical: canonical, Words: words})
			}
		}
		sortLongestFirst(entries)
		pack.vocab[category] = vocab
		pack.collections[category] = entries
	}

	for _, word := range raw.RemoveWords {
		words := strings.Fields(strings.ToLower(word))
		if len(words) == 0 {
			continue
		}
		pack.removeWords = append(pack.removeWords, words)
	}
	sort.SliceStable(pack.removeWords, func(i, j int) bool {
		return len(pack.removeWords[i]) > len(pack.removeWords[j])
	})

	return pack, nil
}

// sortLongestFirst orders entries so that multi word variants come before
// shorter ones, avoiding partial-word collisions such as "three quarter"
// being eaten by a lone "quarter" substitution. Equal-length variants sort
// lexicographically so the order never depends on map iteration.
func sortLongestFirst(entries []VocabEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if len(entries[i].Words) != len(entries[j].Words) {
			return len(entries[i].Words) > len(entries[j].Words)
		}
		if a, b := phraseLen(entries[i].Words), phraseLen(entries[j].Words); a != b {
			return a > b
		}
		if a, b := strings.Join(entries[i].Words, " "), strings.Join(entries[j].Words, " "); a != b {
			return a < b
		}
		return entries[i].Canonical < entries[j].Canonical
	})
}

func phraseLen(words []string) int {
	total := 0
	for _, w := range words {
		total += len(w)
	}
	return total
}

// Collection returns the variant entries for a category, longest first.
// The returned slice must not be mutated.
func (p *LanguagePack) Collection(category Category) []VocabEntry {
	if p == nil {
		return nil
	}
	return p.collections[category]
}

// Canonicals returns the canonical tokens declared for a category.
func (p *LanguagePack) Canonicals(category Category) []string {
	if p == nil || p.vocab[category] == nil {
		return nil
	}
	out := make([]string, 0, len(p.vocab[category]))
	for canonical := range p.vocab[category] {
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

// Variants returns the surface variants for one canonical token.
func (p *LanguagePack) Variants(category Category, canonical string) []string {
	if p == nil || p.vocab[category] == nil {
		return nil
	}
	return p.vocab[category][canonical]
}

// flatVariants collects every variant word in a category, used when compound
// word templates reference a category as a parameter type.
func (p *LanguagePack) flatVariants(category Category) []string {
	entries := p.Collection(category)
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, strings.Join(entry.Words, " "))
	}
	return out
}

// RemovePhrases returns the tokenized filler phrases to strip, longest first.
func (p *LanguagePack) RemovePhrases() [][]string {
	if p == nil {
		return nil
	}
	return p.removeWords
}
