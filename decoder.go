package timespeak

import (
	"log/slog"
	"time"
)

// Decoder is the normalize, match, build, resolve pipeline. It owns no
// mutable state beyond the read-only pack caches and is safe for concurrent
// use across locales.
type Decoder struct {
	defaultLocale string

	store      *PackStore
	normalizer *Normalizer
	matcher    *PatternMatcher
	renderer   *ResponseRenderer

	clock  func() time.Time
	loc    *time.Location
	logger *slog.Logger
	hooks  []DecodeHook
}

// New builds a Decoder from options. With no options it serves the embedded
// language packs with English as the default locale.
func New(opts ...Option) (*Decoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.BuildDecoder()
}

// Decode converts a spoken sentence into a resolved time or duration.
// It returns ErrNoMatch when the sentence fits no known pattern.
func (d *Decoder) Decode(sentence, locale string) (*Result, error) {
	return d.DecodeHint(sentence, locale, HintNone)
}

// DecodeHint is Decode with a classification tie-breaker for sentences that
// carry neither time nor interval markers.
func (d *Decoder) DecodeHint(sentence, locale string, hint TypeHint) (*Result, error) {
	if locale == "" {
		locale = d.defaultLocale
	}

	ctx := &DecodeHookContext{Sentence: sentence, Locale: locale, Hint: hint}
	for _, hook := range d.hooks {
		hook.BeforeDecode(ctx)
	}

	result, err := d.decode(ctx.Sentence, ctx.Locale, ctx.Hint)

	ctx.Result = result
	ctx.Err = err
	for _, hook := range d.hooks {
		hook.AfterDecode(ctx)
	}
	return ctx.Result, ctx.Err
}

func (d *Decoder) decode(sentence, locale string, hint TypeHint) (*Result, error) {
	normalized := d.normalizer.Normalize(sentence, locale)

	// A failed pack resolve only disables locale structures; the standard
	// time and duration phases still run on the raw sentence.
	pack, err := d.store.Resolve(locale)
	if err != nil {
		pack = nil
	}

	match, ok := d.matcher.Match(normalized, pack)
	if !ok {
		d.logger.Warn("unable to decode sentence", "sentence", sentence, "normalized", normalized, "locale", locale)
		return nil, ErrNoMatch
	}

	effective := hint
	if match.Hint != HintNone {
		effective = match.Hint
	}

	info := buildTimerInfo(match.Fields, sentence, match.Pattern, effective)

	result := &Result{
		Input:      sentence,
		Normalized: normalized,
		Locale:     locale,
		Pattern:    match.Pattern,
		Info:       info,
		IsTime:     info.IsTime,
	}

	if info.IsTime {
		resolved := resolveTime(info, d.clock(), d.loc)
		result.Time = &resolved
	} else {
		resolved := resolveDuration(info)
		result.Interval = &resolved
	}

	d.logger.Debug("decoded sentence",
		"sentence", sentence,
		"normalized", normalized,
		"pattern", match.Pattern,
		"is_time", info.IsTime)
	return result, nil
}

// Normalize exposes the normalization step on its own, mainly for tooling
// and tests.
func (d *Decoder) Normalize(sentence, locale string) string {
	if locale == "" {
		locale = d.defaultLocale
	}
	return d.normalizer.Normalize(sentence, locale)
}

// Respond renders the response template id for locale with {param}
// substitution. See ResponseRenderer.Render.
func (d *Decoder) Respond(id string, params map[string]string, locale string) (string, error) {
	if locale == "" {
		locale = d.defaultLocale
	}
	return d.renderer.Render(id, params, locale)
}

// Renderer returns the response renderer for spoken time and duration
// formatting.
func (d *Decoder) Renderer() *ResponseRenderer {
	return d.renderer
}

// Locales lists the locale packs available to this decoder.
func (d *Decoder) Locales() []string {
	return d.store.Locales()
}
