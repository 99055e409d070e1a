package timespeak

import (
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// PackStore caches loaded language packs keyed by pack name. Packs are
// loaded lazily, once per name, and never evicted: they are small and the
// set of locales is bounded. Safe for concurrent use; concurrent first
// requests for the same pack share a single load.
type PackStore struct {
	loader PackLoader
	logger *slog.Logger

	group singleflight.Group

	mu    sync.RWMutex
	packs map[string]*LanguagePack
}

// NewPackStore creates a store over loader. A nil loader serves only
// ErrPackNotFound; a nil logger falls back to slog.Default.
func NewPackStore(loader PackLoader, logger *slog.Logger) *PackStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PackStore{
		loader: loader,
		logger: logger,
		packs:  make(map[string]*LanguagePack),
	}
}

// Pack returns the pack for the exact name, loading it on first use.
func (s *PackStore) Pack(name string) (*LanguagePack, error) {
	if s == nil || s.loader == nil {
		return nil, ErrPackNotFound
	}

	s.mu.RLock()
	pack, ok := s.packs[name]
	s.mu.RUnlock()
	if ok {
		return pack, nil
	}

	loaded, err, _ := s.group.Do(name, func() (any, error) {
		s.mu.RLock()
		cached, ok := s.packs[name]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		pack, err := s.loader.Load(name)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.packs[name] = pack
		s.mu.Unlock()
		return pack, nil
	})
	if err != nil {
		return nil, err
	}
	return loaded.(*LanguagePack), nil
}

// Resolve returns the pack for a locale, walking the fallback chain down to
// English. The requested locale may be any BCP 47 style code; only its base
// language selects the pack file.
func (s *PackStore) Resolve(locale string) (*LanguagePack, error) {
	var lastErr error
	for _, name := range localeFallbackChain(locale) {
		pack, err := s.Pack(name)
		if err == nil {
			if name != baseLanguage(locale) {
				s.logger.Debug("language pack fallback", "requested", locale, "using", name)
			}
			return pack, nil
		}
		if !errors.Is(err, ErrPackNotFound) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// Normalizer returns the shared normalizer pack.
func (s *PackStore) Normalizer() (*LanguagePack, error) {
	return s.Pack(NormalizerPackName)
}

// Locales lists the locale packs reachable through the loader, excluding
// the normalizer pack.
func (s *PackStore) Locales() []string {
	if s == nil {
		return nil
	}
	lister, ok := s.loader.(packLister)
	if !ok {
		return nil
	}
	names := lister.Names()
	out := names[:0]
	for _, name := range names {
		if name == NormalizerPackName {
			continue
		}
		out = append(out, name)
	}
	return out
}
