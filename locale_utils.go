package timespeak

import (
	"strings"

	"golang.org/x/text/language"
)

// fallbackLocale is the locale of last resort. Packs for it ship embedded,
// so it is always loadable.
const fallbackLocale = "en"

// normalizeLocale canonicalizes a locale identifier: trimmed, lowercased
// language part, underscores treated as hyphens ("de_DE" -> "de-de").
func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}

// baseLanguage reduces a locale to its two character language code, the only
// part pack files are keyed by ("de-DE" -> "de"). Unparsable input falls
// back to a plain prefix cut.
func baseLanguage(locale string) string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return ""
	}

	if tag, err := language.Parse(locale); err == nil {
		base, confidence := tag.Base()
		if confidence != language.No {
			return base.String()
		}
	}

	if idx := strings.IndexAny(locale, "-"); idx > 0 {
		return locale[:idx]
	}
	if len(locale) > 2 {
		return locale[:2]
	}
	return locale
}

// localeFallbackChain returns the pack names to try for a locale, most
// specific first, always ending in English.
func localeFallbackChain(locale string) []string {
	chain := make([]string, 0, 2)
	if base := baseLanguage(locale); base != "" && base != fallbackLocale {
		chain = append(chain, base)
	}
	return append(chain, fallbackLocale)
}
