package timespeak

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// ResponseRenderer formats resolved results back into locale-appropriate
// spoken confirmations using the response templates of the language packs.
type ResponseRenderer struct {
	store  *PackStore
	logger *slog.Logger
}

// NewResponseRenderer creates a renderer over store. A nil logger falls back
// to slog.Default.
func NewResponseRenderer(store *PackStore, logger *slog.Logger) *ResponseRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResponseRenderer{store: store, logger: logger}
}

// Render looks up the response template for id, walking the locale fallback
// chain down to English, and substitutes {param} placeholders. A synthesized
// "time" parameter prefers the locale specific "time_<lang>" value over the
// generic "time_en" one, echoing the user's own phrasing when available.
func (r *ResponseRenderer) Render(id string, params map[string]string, locale string) (string, error) {
	template, err := r.lookup(id, locale)
	if err != nil {
		return "", err
	}

	merged := make(map[string]string, len(params)+1)
	for k, v := range params {
		merged[k] = v
	}
	if localized, ok := params["time_"+baseLanguage(locale)]; ok {
		merged["time"] = localized
	} else if generic, ok := params["time_en"]; ok {
		merged["time"] = generic
	}

	out := template
	for k, v := range merged {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out, nil
}

func (r *ResponseRenderer) lookup(id, locale string) (string, error) {
	for _, name := range localeFallbackChain(locale) {
		pack, err := r.store.Pack(name)
		if err != nil {
			if errors.Is(err, ErrPackNotFound) {
				continue
			}
			return "", err
		}
		if template, ok := pack.Responses[id]; ok {
			return template, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingResponse, id, locale)
}

// FormatDuration renders an interval as a spoken phrase ("2 hours
// 30 minutes") using the locale's duration vocabulary. By pack convention
// the first variant of a duration token is its singular form and the second,
// when present, its plural.
func (r *ResponseRenderer) FormatDuration(locale string, d ResolvedDuration) (string, error) {
	pack, err := r.store.Resolve(locale)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, unit := range []struct {
		token string
		value int
	}{
		{"day", d.Days},
		{"hour", d.Hours},
		{"minute", d.Minutes},
		{"second", d.Seconds},
	} {
		if unit.value == 0 {
			continue
		}
		parts = append(parts, strconv.Itoa(unit.value)+" "+unitWord(pack, unit.token, unit.value))
	}

	if len(parts) == 0 {
		return "0 " + unitWord(pack, "second", 0), nil
	}
	return strings.Join(parts, " "), nil
}

// FormatTime renders a resolved time as a spoken phrase, e.g.
// "friday 16:15", using the locale's day vocabulary for the weekday word.
func (r *ResponseRenderer) FormatTime(locale string, t ResolvedTime) (string, error) {
	clock := t.At.Format("15:04")
	if t.DayOfWeek == "" {
		return clock, nil
	}

	pack, err := r.store.Resolve(locale)
	if err != nil {
		return "", err
	}

	day := t.DayOfWeek
	if variants := pack.Variants(CategoryDays, t.DayOfWeek); len(variants) > 0 {
		day = variants[0]
	}
	return day + " " + clock, nil
}

func unitWord(pack *LanguagePack, token string, value int) string {
	variants := pack.Variants(CategoryDurations, token)
	if len(variants) == 0 {
		return token
	}
	if value == 1 || len(variants) < 2 {
		return variants[0]
	}
	return variants[1]
}
