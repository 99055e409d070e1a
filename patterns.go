package timespeak

import (
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// regexLookup is the closed placeholder vocabulary for structural templates.
// Each placeholder expands into a regex fragment with named capture groups.
// The table is static; language packs compose templates from it but cannot
// extend it.
var regexLookup = map[string]string{
	"std_time":      `(?P<hours>\d{1,2})(?::|h|\s)?(?P<minutes>\d{1,2})?`,
	"days":          `(?P<days>\d+)`,
	"hours":         `(?P<hours>\d{1,2})`,
	"minutes":       `(?P<minutes>\d{1,2})`,
	"seconds":       `(?P<seconds>\d{1,2})`,
	"fractions":     `(?P<fractions>half|quarter|threequarter)`,
	"time_of_day":   `(?P<time_of_day>am|pm|morning|afternoon|evening|night|tonight)`,
	"meridiem":      `(?P<meridiem>am|pm)`,
	"day":           `(?P<day>monday|tuesday|wednesday|thursday|friday|saturday|sunday|today|tomorrow)`,
	"special_hour":  `(?P<special_hour>noon|midnight)`,
	"operator":      `(?P<operator>and|minus|after|before)`,
	"joiner_words":  `(?:on|this|at)`,
	"fraction_unit": `(?P<unit>day|hour|minute|second)`,
}

// defaultStdTimePatterns are the explicit clock-time templates tried before
// any pack structure, so duration patterns cannot mis-capture digit times.
// Used when the normalizer pack declares no "std_time" structure group.
var defaultStdTimePatterns = []string{
	"{special_hour}",
	"{std_time}",
	"{std_time}{time_of_day}",
	"{std_time} {time_of_day}",
	"{std_time} {time_of_day} {day}",
	"{std_time} {day}",
	"{std_time} {day} {time_of_day}",
	"{std_time} {joiner_words} {time_of_day}",
	"{std_time} {joiner_words} {day}",
	"{std_time} {joiner_words} {day} {time_of_day}",
	"{day} {std_time}",
	"{day} {std_time} {time_of_day}",
	"{day} {joiner_words} {std_time}",
	"{day} {joiner_words} {std_time} {time_of_day}",
	"{day} {joiner_words} {time_of_day}",
	"{day} {joiner_words} {special_hour}",
}

// duration fragments for the generic additive-duration fallback. Each unit
// is optional; unit words cover canonical tokens plus common abbreviations.
const (
	durationDays    = `((?P<days>\d{1,3}(\.\d+)?)\s?(?:days|day|d)\b)?`
	durationHours   = `((?P<hours>\d{1,3}(\.\d+)?)\s?(?:hours|hour|hrs|hr|h)\b)?`
	durationMinutes = `((?P<minutes>\d{1,3}(\.\d+)?)\s?(?:minutes|minute|mins|min|m)\b)?`
	durationSeconds = `((?P<seconds>\d{1,3})\s?(?:seconds|second|secs|sec|s)\b)?`
	durationJoin    = `(?:\sand\s|\s)?`
)

const basicTimeRef = "{basic_time}"

// MatchResult carries the named fields extracted by the first template that
// fully matched, plus the template itself and the phase's type hint.
type MatchResult struct {
	Fields  map[string]string
	Pattern string
	Hint    TypeHint
}

// PatternMatcher tries structural templates against a normalized sentence in
// a fixed priority order: standard time patterns, then pack declared
// structures, then the generic duration fallback. The first full match wins;
// there is no backtracking across templates.
type PatternMatcher struct {
	store  *PackStore
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*regexp.Regexp
}

// NewPatternMatcher creates a matcher over store. A nil logger falls back to
// slog.Default.
func NewPatternMatcher(store *PackStore, logger *slog.Logger) *PatternMatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &PatternMatcher{
		store:  store,
		logger: logger,
		cache:  make(map[string]*regexp.Regexp),
	}
}

// Match runs the template phases against a normalized sentence using the
// structures declared by pack. It returns false if nothing matched.
func (m *PatternMatcher) Match(normalized string, pack *LanguagePack) (*MatchResult, bool) {
	s := prepareForMatch(normalized)
	if s == "" {
		return nil, false
	}

	for _, template := range m.stdTimePatterns() {
		if fields := m.run(template, s); fields != nil {
			return &MatchResult{Fields: fields, Pattern: template, Hint: HintTime}, true
		}
	}

	if result, ok := m.matchStructures(s, pack); ok {
		return result, true
	}

	duration := "^" + durationDays + durationJoin + durationHours + durationJoin + durationMinutes + durationJoin + durationSeconds + "$"
	if fields := m.run(duration, s); hasAnyField(fields) {
		return &MatchResult{Fields: fields, Pattern: "durations", Hint: HintInterval}, true
	}

	m.logger.Debug("no pattern match", "sentence", s)
	return nil, false
}

// matchStructures evaluates the pack's structure groups in sorted group
// order, preserving the declared template order within each group. Templates
// may reference {basic_time}, which expands to each entry of the pack's
// basic_time group in turn.
func (m *PatternMatcher) matchStructures(s string, pack *LanguagePack) (*MatchResult, bool) {
	if pack == nil || len(pack.Structures) == 0 {
		return nil, false
	}

	groups := make([]string, 0, len(pack.Structures))
	for group := range pack.Structures {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	basics := pack.Structures["basic_time"]

	for _, group := range groups {
		for _, template := range pack.Structures[group] {
			if strings.Contains(template, basicTimeRef) {
				for _, basic := range basics {
					expanded := strings.ReplaceAll(template, basicTimeRef, basic)
					if fields := m.run(expanded, s); fields != nil {
						return &MatchResult{Fields: fields, Pattern: expanded, Hint: structureHint(fields)}, true
					}
				}
				continue
			}
			if fields := m.run(template, s); fields != nil {
				return &MatchResult{Fields: fields, Pattern: template, Hint: structureHint(fields)}, true
			}
		}
	}
	return nil, false
}

// run matches a single template and returns the named capture groups, or nil.
func (m *PatternMatcher) run(template, s string) map[string]string {
	re, err := m.compile(template)
	if err != nil {
		m.logger.Warn("unusable structural template", "template", template, "error", err)
		return nil
	}

	match := re.FindStringSubmatch(s)
	if match == nil {
		return nil
	}

	fields := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name == "" || i >= len(match) || match[i] == "" {
			continue
		}
		fields[name] = match[i]
	}
	return fields
}

// compile resolves a template to its anchored regex, caching per distinct
// template so decode calls never recompile.
func (m *PatternMatcher) compile(template string) (*regexp.Regexp, error) {
	m.mu.RLock()
	re, ok := m.cache[template]
	m.mu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(templateToRegex(template))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[template] = re
	m.mu.Unlock()
	return re, nil
}

var optionalSegmentPattern = regexp.MustCompile(`\[(.*?)\]\s?`)

// templateToRegex substitutes the placeholder vocabulary into a template and
// converts bracketed optional segments ("[this, at]") into optional
// alternation groups. The result is fully anchored. Templates already
// containing a ^ anchor pass through unchanged.
func templateToRegex(template string) string {
	if strings.HasPrefix(template, "^") {
		return template
	}

	pattern := template
	for key, fragment := range regexLookup {
		pattern = strings.ReplaceAll(pattern, "{"+key+"}", fragment)
	}

	pattern = optionalSegmentPattern.ReplaceAllStringFunc(pattern, func(segment string) string {
		inner := optionalSegmentPattern.FindStringSubmatch(segment)[1]
		options := strings.Split(inner, ",")
		for i, option := range options {
			options[i] = strings.TrimSpace(option)
		}
		return `(?:(?:` + strings.Join(options, "|") + `)\s)?`
	})

	return "^" + pattern + "$"
}

// stdTimePatterns returns the explicit clock-time templates, honouring a
// "std_time" structure group in the normalizer pack when one is declared.
func (m *PatternMatcher) stdTimePatterns() []string {
	if m.store != nil {
		if pack, err := m.store.Normalizer(); err == nil && pack != nil {
			if patterns := pack.Structures["std_time"]; len(patterns) > 0 {
				return patterns
			}
		}
	}
	return defaultStdTimePatterns
}

// durationUnitTokens guard the compact-time rewrite: "200 minute" must stay
// a duration, not become "2:00 minute".
var durationUnitTokens = map[string]struct{}{
	"day": {}, "days": {}, "d": {},
	"hour": {}, "hours": {}, "hr": {}, "hrs": {}, "h": {},
	"minute": {}, "minutes": {}, "min": {}, "mins": {},
	"second": {}, "seconds": {}, "sec": {}, "secs": {},
}

// prepareForMatch drops "oclock" markers and splits compact digit clumps
// ("1600" -> "16:00", "430" -> "4:30") before template evaluation. The
// compact rewrite is skipped when the sentence carries duration unit words.
func prepareForMatch(s string) string {
	tokens := strings.Fields(s)

	hasUnits := false
	for _, token := range tokens {
		if _, ok := durationUnitTokens[token]; ok {
			hasUnits = true
			break
		}
	}

	out := tokens[:0]
	for _, token := range tokens {
		if token == "oclock" {
			continue
		}
		if !hasUnits {
			token = splitCompactTime(token)
		}
		out = append(out, token)
	}
	return strings.Join(out, " ")
}

// splitCompactTime rewrites a bare 3 or 4 digit token as h:mm when it forms
// a plausible clock reading. Anything else passes through untouched.
func splitCompactTime(token string) string {
	if len(token) != 3 && len(token) != 4 {
		return token
	}
	if _, err := strconv.Atoi(token); err != nil {
		return token
	}

	split := 1
	if len(token) == 4 {
		split = 2
	}
	hours, _ := strconv.Atoi(token[:split])
	minutes, _ := strconv.Atoi(token[split:])
	if hours > 23 || minutes > 59 {
		return token
	}
	return token[:split] + ":" + token[split:]
}

func hasAnyField(fields map[string]string) bool {
	return len(fields) > 0
}

// structureHint classifies a structure match. A captured bare unit word
// ("half hour") marks a duration phrase; everything else stays undecided
// for the caller's hint.
func structureHint(fields map[string]string) TypeHint {
	if fields["unit"] != "" {
		return HintInterval
	}
	return HintNone
}
