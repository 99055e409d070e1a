package timespeak

import "errors"

// ErrNoMatch indicates that a sentence matched no time or duration pattern.
// This is the only decode failure callers are expected to branch on.
var ErrNoMatch = errors.New("timespeak: no pattern match")

// ErrPackNotFound indicates that no language pack could be loaded for a
// locale, including the English fallback.
var ErrPackNotFound = errors.New("timespeak: language pack not found")

// ErrMissingResponse indicates that a response id is not defined in the
// locale's pack or in any of its fallbacks.
var ErrMissingResponse = errors.New("timespeak: missing response template")
